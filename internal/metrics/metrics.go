// Copyright 2024 The Memfs Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package metrics exposes the disk's occupancy as Prometheus gauges. A
// nil *prometheus.Registry passed to New disables instrumentation
// entirely, so the disk has no hard dependency on a running metrics
// pipeline, matching the teacher's pluggable-metrics-handle convention
// (common/oc_metrics.go, common/noop_metrics.go).
package metrics

import "github.com/prometheus/client_golang/prometheus"

// DiskHandle is the set of gauges the disk updates as blocks are
// allocated, freed, or reclaimed from the cache.
type DiskHandle struct {
	allocatedBytes prometheus.Gauge
	cachedBytes    prometheus.Gauge
	cachedBlocks   prometheus.Gauge
}

// NewDiskHandle registers the disk's gauges against reg. If reg is nil,
// the returned handle's Set* methods are no-ops.
func NewDiskHandle(reg *prometheus.Registry) *DiskHandle {
	if reg == nil {
		return nil
	}
	h := &DiskHandle{
		allocatedBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "memfs_disk_allocated_bytes",
			Help: "Bytes currently allocated to live files.",
		}),
		cachedBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "memfs_disk_cached_bytes",
			Help: "Bytes held in the free-block cache, available for reuse.",
		}),
		cachedBlocks: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "memfs_disk_cached_blocks",
			Help: "Number of blocks held in the free-block cache.",
		}),
	}

	if reg != nil {
		reg.MustRegister(h.allocatedBytes, h.cachedBytes, h.cachedBlocks)
	}

	return h
}

// SetAllocatedBytes records the disk's current allocated-byte count.
func (h *DiskHandle) SetAllocatedBytes(n int64) {
	if h == nil {
		return
	}
	h.allocatedBytes.Set(float64(n))
}

// SetCache records the free-block cache's current byte and block counts.
func (h *DiskHandle) SetCache(bytes int64, blocks int) {
	if h == nil {
		return
	}
	h.cachedBytes.Set(float64(bytes))
	h.cachedBlocks.Set(float64(blocks))
}
