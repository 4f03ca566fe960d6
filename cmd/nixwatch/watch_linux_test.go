package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cactorium/nix/control"
	"github.com/cactorium/nix/inotify"
	"github.com/cactorium/nix/internal/logging"
)

func TestRunStopsWhenWatchesAreGone(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o700))

	var out, diag bytes.Buffer
	require.NoError(t, logging.Setup("info", &diag))
	defer logging.Setup("info", os.Stderr)

	metrics := control.NewMetricsRegistry()
	errc := make(chan error, 1)
	go func() {
		errc <- run(&out, []watchSpec{{path: sub, mask: inotify.Create | inotify.DeleteSelf}},
			inotify.DefaultBufferSize, metrics, control.NewDebugProbes())
	}()

	// Give run time to add its watch.
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if _, ok := metrics.Get("watches"); ok {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	require.NoError(t, os.WriteFile(filepath.Join(sub, "f"), nil, 0o600))
	require.NoError(t, os.RemoveAll(sub))

	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after its only watch was removed")
	}

	assert.Equal(t, "IN_CREATE "+filepath.Join(sub, "f")+"\n"+
		"IN_DELETE_SELF "+sub+"\n"+
		"IN_IGNORED "+sub+"\n", out.String())
	assert.Empty(t, diag.String(), "event lines are not log output")

	snap := metrics.GetSnapshot()
	assert.Equal(t, int64(1), snap["events.IN_CREATE"])
	assert.Equal(t, int64(1), snap["events.IN_DELETE_SELF"])
	assert.Equal(t, int64(1), snap["events.IN_IGNORED"])
}
