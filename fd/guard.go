// File: fd/guard.go
// License: Apache-2.0
//
// Exactly-once descriptor ownership.

package fd

import (
	"runtime"
	"strconv"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/cactorium/nix/api"
)

// Guard owns one raw descriptor. Create it with New; a zero Guard would
// claim descriptor 0.
type Guard struct {
	fd atomic.Int64
}

// New takes ownership of an already-open descriptor. It never fails.
func New(raw int) *Guard {
	g := &Guard{}
	g.fd.Store(int64(raw))
	runtime.SetFinalizer(g, (*Guard).finalize)
	return g
}

// Fd returns the owned descriptor, or -1 once it was released or closed.
// The value must not be used after the guard is closed.
func (g *Guard) Fd() int {
	if g == nil {
		return -1
	}
	return int(g.fd.Load())
}

// Valid reports whether the guard still owns a descriptor.
func (g *Guard) Valid() bool { return g.Fd() >= 0 }

// Release gives up ownership without closing and returns the raw value. The
// caller becomes responsible for closing it. A second Release returns -1.
func (g *Guard) Release() int {
	if g == nil {
		return -1
	}
	raw := int(g.fd.Swap(-1))
	runtime.SetFinalizer(g, nil)
	return raw
}

// Close closes the descriptor. The guard is emptied before the close call,
// so whatever close reports it is never attempted twice. Closing an empty
// guard returns api.ErrClosed.
func (g *Guard) Close() error {
	if g == nil {
		return api.ErrClosed
	}
	raw := int(g.fd.Swap(-1))
	if raw < 0 {
		return api.ErrClosed
	}
	runtime.SetFinalizer(g, nil)
	return api.Check("close", closeFd(raw))
}

// String renders the guard for log fields.
func (g *Guard) String() string {
	raw := g.Fd()
	if raw < 0 {
		return "fd(released)"
	}
	return "fd(" + strconv.Itoa(raw) + ")"
}

func (g *Guard) finalize() {
	raw := int(g.fd.Swap(-1))
	if raw < 0 {
		return
	}
	if err := closeFd(raw); err != nil {
		logrus.WithField("fd", raw).WithError(err).Debug("fd: close of leaked descriptor failed")
	}
}
