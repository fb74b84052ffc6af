//go:build unix

package sysmon

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// maxRSS reads the process high-water resident set from getrusage.
func maxRSS() uint64 {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil || ru.Maxrss <= 0 {
		return 0
	}
	// Linux reports kilobytes, the BSDs and macOS bytes.
	if runtime.GOOS == "linux" {
		return uint64(ru.Maxrss) * 1024
	}
	return uint64(ru.Maxrss)
}
