// File: internal/reactor/waker_linux.go
// License: Apache-2.0
//
// Self-pipe used to interrupt Poll from another goroutine or a signal
// handler.

package reactor

import (
	"runtime"

	"golang.org/x/sys/unix"

	"github.com/cactorium/nix/api"
	"github.com/cactorium/nix/fd"
)

// Waker makes its read side readable on Wake. Register Fd with EventRead
// and call Drain from the callback.
type Waker struct {
	r, w *fd.Guard
}

// NewWaker creates a non-blocking pipe pair.
func NewWaker() (*Waker, error) {
	var p [2]int
	if err := unix.Pipe2(p[:], unix.O_NONBLOCK|unix.O_CLOEXEC); err != nil {
		return nil, api.Check("pipe2", err)
	}
	return &Waker{r: fd.New(p[0]), w: fd.New(p[1])}, nil
}

// Fd returns the descriptor to register.
func (w *Waker) Fd() int { return w.r.Fd() }

// Wake makes Fd readable. Wakes that arrive before Drain coalesce.
func (w *Waker) Wake() error {
	raw := w.w.Fd()
	if raw < 0 {
		return api.ErrClosed.WithContext("op", "wake")
	}
	_, err := unix.Write(raw, []byte{1})
	runtime.KeepAlive(w.w)
	if err == unix.EAGAIN {
		// Pipe full: already readable.
		return nil
	}
	return api.Check("write", err)
}

// Drain consumes pending wakes.
func (w *Waker) Drain() {
	raw := w.r.Fd()
	if raw < 0 {
		return
	}
	var buf [64]byte
	for {
		n, err := unix.Read(raw, buf[:])
		if n <= 0 || err != nil {
			break
		}
	}
	runtime.KeepAlive(w.r)
}

// Close closes both ends and returns the first error.
func (w *Waker) Close() error {
	err := w.r.Close()
	if werr := w.w.Close(); err == nil {
		err = werr
	}
	return err
}
