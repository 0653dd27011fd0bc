//go:build linux

package main

import "golang.org/x/sys/unix"

func registerPlatformSources(reg *SourceRegistry) {
	reg.Register(NewFuncSource("uptime", "Uptime", "h", 1, readUptimeHours))
}

func readUptimeHours() (float64, bool) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0, false
	}
	return float64(info.Uptime) / 3600, true
}
