//go:build !unix

package sysmon

func maxRSS() uint64 { return 0 }
