//go:build !linux

// File: inotify/inotify_stub.go
// License: Apache-2.0
//
// inotify exists only on Linux.

package inotify

import (
	"io"

	"github.com/cactorium/nix/api"
)

// FD is an inotify instance. It cannot be created on this platform.
type FD struct{}

// New always fails with api.ErrNotSupported.
func New(flags CreateFlags) (*FD, error) { return nil, api.ErrNotSupported }

func (f *FD) Add(path string, mask EventMask) (Watch, error) { return -1, api.ErrNotSupported }
func (f *FD) Remove(w Watch) error                           { return api.ErrNotSupported }
func (f *FD) Read(p []byte) (int, error)                     { return 0, api.ErrNotSupported }
func (f *FD) ReadEvents(buf []byte) ([]Event, error)         { return nil, api.ErrNotSupported }
func (f *FD) Fd() int                                        { return -1 }
func (f *FD) Close() error                                   { return api.ErrNotSupported }
func (f *FD) Release() int                                   { return -1 }

var _ io.ReadCloser = (*FD)(nil)
