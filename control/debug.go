// File: control/debug.go
// License: Apache-2.0
//
// Named probes evaluated on demand.

package control

import (
	"fmt"
	"sort"
	"sync"
)

// Probe reports one value when the state is dumped.
type Probe func() any

// DebugProbes is a registry of probes, typically reader statistics and host
// facts printed when a command exits.
type DebugProbes struct {
	mu     sync.Mutex
	probes map[string]Probe
}

// NewDebugProbes creates an empty registry.
func NewDebugProbes() *DebugProbes {
	return &DebugProbes{probes: make(map[string]Probe)}
}

// RegisterProbe inserts or replaces a named probe.
func (dp *DebugProbes) RegisterProbe(name string, fn Probe) {
	dp.mu.Lock()
	dp.probes[name] = fn
	dp.mu.Unlock()
}

// Unregister drops a probe, e.g. when the object it reads from goes away.
func (dp *DebugProbes) Unregister(name string) {
	dp.mu.Lock()
	delete(dp.probes, name)
	dp.mu.Unlock()
}

// Names returns the registered probe names in sorted order.
func (dp *DebugProbes) Names() []string {
	dp.mu.Lock()
	names := make([]string, 0, len(dp.probes))
	for k := range dp.probes {
		names = append(names, k)
	}
	dp.mu.Unlock()
	sort.Strings(names)
	return names
}

// DumpState evaluates every probe. Probes run without the registry lock, so
// they may register or drop others; a panicking probe reports the panic as
// its value.
func (dp *DebugProbes) DumpState() map[string]any {
	dp.mu.Lock()
	snapshot := make(map[string]Probe, len(dp.probes))
	for k, fn := range dp.probes {
		snapshot[k] = fn
	}
	dp.mu.Unlock()

	out := make(map[string]any, len(snapshot))
	for k, fn := range snapshot {
		out[k] = evaluate(fn)
	}
	return out
}

func evaluate(fn Probe) (v any) {
	defer func() {
		if p := recover(); p != nil {
			v = fmt.Sprintf("panic: %v", p)
		}
	}()
	return fn()
}
