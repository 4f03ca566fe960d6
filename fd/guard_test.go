//go:build unix

package fd_test

import (
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/cactorium/nix/api"
	"github.com/cactorium/nix/fd"
)

func pipe(t *testing.T) (r, w int) {
	t.Helper()
	var p [2]int
	require.NoError(t, unix.Pipe(p[:]))
	return p[0], p[1]
}

func isOpen(raw int) bool {
	_, err := unix.FcntlInt(uintptr(raw), unix.F_GETFD, 0)
	return err == nil
}

func TestGuardCloseOnce(t *testing.T) {
	r, w := pipe(t)
	defer unix.Close(w)

	g := fd.New(r)
	assert.Equal(t, r, g.Fd())
	assert.True(t, g.Valid())

	require.NoError(t, g.Close())
	assert.False(t, isOpen(r))
	assert.Equal(t, -1, g.Fd())
	assert.ErrorIs(t, g.Close(), api.ErrClosed)
	assert.Equal(t, -1, g.Release())
}

func TestGuardRelease(t *testing.T) {
	r, w := pipe(t)
	defer unix.Close(w)

	g := fd.New(r)
	raw := g.Release()
	assert.Equal(t, r, raw)
	assert.False(t, g.Valid())
	assert.ErrorIs(t, g.Close(), api.ErrClosed)

	// Ownership moved to us: the descriptor must still be usable.
	assert.True(t, isOpen(raw))
	require.NoError(t, unix.Close(raw))
}

func TestGuardCloseReleaseRace(t *testing.T) {
	for i := 0; i < 100; i++ {
		r, w := pipe(t)
		g := fd.New(r)

		var (
			wg       sync.WaitGroup
			closeErr error
			released int
		)
		wg.Add(2)
		go func() { defer wg.Done(); closeErr = g.Close() }()
		go func() { defer wg.Done(); released = g.Release() }()
		wg.Wait()

		if released >= 0 {
			assert.ErrorIs(t, closeErr, api.ErrClosed)
			require.NoError(t, unix.Close(released))
		} else {
			assert.NoError(t, closeErr)
		}
		unix.Close(w)
	}
}

func TestGuardFinalizerCloses(t *testing.T) {
	r, w := pipe(t)
	defer unix.Close(w)

	func() {
		g := fd.New(r)
		_ = g.Fd()
	}()

	// Once the read end is gone, writes fail with EPIPE.
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		runtime.GC()
		if _, err := unix.Write(w, []byte{'x'}); err == unix.EPIPE {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("leaked guard was never finalized")
}

func TestNilGuard(t *testing.T) {
	var g *fd.Guard
	assert.Equal(t, -1, g.Fd())
	assert.Equal(t, -1, g.Release())
	assert.ErrorIs(t, g.Close(), api.ErrClosed)
	assert.Equal(t, "fd(released)", g.String())
}
