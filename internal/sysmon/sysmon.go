// Package sysmon samples host and process resource usage for the memory
// reports of the REPL and the dashboard.
package sysmon

import (
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats is one snapshot of resource usage.
type Stats struct {
	CPUPercent float64 // host-wide, 0..100
	MemPercent float64 // host-wide, 0..100
	HostTotal  uint64  // host physical memory in bytes
	MaxRSS     uint64  // peak resident set of this process in bytes, 0 if unknown
}

// Sample collects a snapshot. CPU usage is the delta since the previous
// call. Fields that cannot be read are left at zero.
func Sample() Stats {
	var s Stats
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		s.MemPercent = vm.UsedPercent
		s.HostTotal = vm.Total
	}
	s.MaxRSS = maxRSS()
	return s
}
