//go:build !linux

// File: internal/reactor/reactor_stub.go
// License: Apache-2.0

package reactor

import (
	"time"

	"github.com/cactorium/nix/api"
)

// Reactor is unavailable on this platform.
type Reactor struct{}

// New always fails with api.ErrNotSupported.
func New() (*Reactor, error) { return nil, api.ErrNotSupported }

func (r *Reactor) Register(fd int, events EventType, cb Callback) error { return api.ErrNotSupported }
func (r *Reactor) Unregister(fd int) error                              { return api.ErrNotSupported }
func (r *Reactor) Poll(timeout time.Duration) (int, error)              { return 0, api.ErrNotSupported }
func (r *Reactor) Close() error                                         { return api.ErrNotSupported }

// Waker is unavailable on this platform.
type Waker struct{}

// NewWaker always fails with api.ErrNotSupported.
func NewWaker() (*Waker, error) { return nil, api.ErrNotSupported }

func (w *Waker) Fd() int      { return -1 }
func (w *Waker) Wake() error  { return api.ErrNotSupported }
func (w *Waker) Drain()       {}
func (w *Waker) Close() error { return api.ErrNotSupported }
