//go:build !linux

// File: control/platform_other.go
// License: Apache-2.0

package control

import "runtime"

// RegisterPlatformProbes adds probes describing the host.
func RegisterPlatformProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.os", func() any { return runtime.GOOS })
	dp.RegisterProbe("platform.cpus", func() any { return runtime.NumCPU() })
}
