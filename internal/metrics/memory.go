package metrics

import (
	"runtime"

	"github.com/agbru/bigcalc/internal/allocator"
	"github.com/agbru/bigcalc/internal/sysmon"
)

// MemorySnapshot pairs the Go runtime's view of memory with the word
// accounting of an allocator.
type MemorySnapshot struct {
	HeapAlloc uint64 // bytes in use by the process heap
	Sys       uint64 // total bytes obtained from the OS
	NumGC     uint32 // completed GC cycles

	Backend   string          // allocator backend name
	Allocator allocator.Stats // word-level accounting

	Host sysmon.Stats // host and process usage
}

// LiveBytes returns the bytes held by live BigUint storage.
func (s MemorySnapshot) LiveBytes() uint64 { return s.Allocator.LiveWords * 4 }

// MemoryCollector reads runtime memory statistics together with an
// allocator's counters.
type MemoryCollector struct {
	alloc *allocator.Allocator
}

// NewMemoryCollector creates a collector for alloc. A nil allocator yields
// snapshots with runtime figures only.
func NewMemoryCollector(alloc *allocator.Allocator) *MemoryCollector {
	return &MemoryCollector{alloc: alloc}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	snap := MemorySnapshot{
		HeapAlloc: m.HeapAlloc,
		Sys:       m.Sys,
		NumGC:     m.NumGC,
		Host:      sysmon.Sample(),
	}
	if mc.alloc != nil {
		snap.Backend = mc.alloc.Name()
		snap.Allocator = mc.alloc.Stats()
	}
	return snap
}
