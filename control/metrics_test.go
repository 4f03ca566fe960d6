package control_test

import (
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cactorium/nix/control"
)

func TestMetricsCounters(t *testing.T) {
	mr := control.NewMetricsRegistry()
	assert.True(t, mr.Updated().IsZero())

	assert.Equal(t, int64(1), mr.Inc("IN_CREATE"))
	assert.Equal(t, int64(4), mr.Add("IN_CREATE", 3))
	mr.Set("watches", 2)

	v, ok := mr.Get("IN_CREATE")
	require.True(t, ok)
	assert.Equal(t, int64(4), v)
	assert.Equal(t, []string{"IN_CREATE", "watches"}, mr.Keys())
	assert.False(t, mr.Updated().IsZero())

	// A gauge turned into a counter restarts from the delta.
	assert.Equal(t, int64(1), mr.Inc("watches"))
}

func TestMetricsSnapshotIsCopy(t *testing.T) {
	mr := control.NewMetricsRegistry()
	mr.Inc("a")
	snap := mr.GetSnapshot()
	snap["a"] = int64(100)
	snap["b"] = 1

	v, _ := mr.Get("a")
	assert.Equal(t, int64(1), v)
	_, ok := mr.Get("b")
	assert.False(t, ok)
}

func TestMetricsConcurrentInc(t *testing.T) {
	mr := control.NewMetricsRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				mr.Inc("n")
			}
		}()
	}
	wg.Wait()
	v, _ := mr.Get("n")
	assert.Equal(t, int64(8000), v)
}

func TestDebugProbes(t *testing.T) {
	dp := control.NewDebugProbes()
	n := 0
	dp.RegisterProbe("calls", func() any { n++; return n })
	control.RegisterPlatformProbes(dp)

	state := dp.DumpState()
	assert.Equal(t, 1, state["calls"])
	assert.Equal(t, runtime.GOOS, state["platform.os"])
	assert.Equal(t, runtime.NumCPU(), state["platform.cpus"])

	assert.Equal(t, 2, dp.DumpState()["calls"])
}

func TestDebugProbesNamesAndUnregister(t *testing.T) {
	dp := control.NewDebugProbes()
	dp.RegisterProbe("reader.reads", func() any { return uint64(3) })
	dp.RegisterProbe("backend", func() any { return "inotify" })
	assert.Equal(t, []string{"backend", "reader.reads"}, dp.Names())

	dp.Unregister("backend")
	assert.Equal(t, []string{"reader.reads"}, dp.Names())
	assert.Equal(t, map[string]any{"reader.reads": uint64(3)}, dp.DumpState())
}

func TestDebugProbePanicIsReported(t *testing.T) {
	dp := control.NewDebugProbes()
	dp.RegisterProbe("bad", func() any { panic("gone") })
	dp.RegisterProbe("self", func() any {
		dp.RegisterProbe("late", func() any { return 1 })
		return "ok"
	})

	state := dp.DumpState()
	assert.Equal(t, "panic: gone", state["bad"])
	assert.Equal(t, "ok", state["self"])
	assert.Contains(t, dp.Names(), "late")
}
