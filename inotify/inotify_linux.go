// File: inotify/inotify_linux.go
// License: Apache-2.0
//
// inotify_init1 / inotify_add_watch / inotify_rm_watch.

package inotify

import (
	"io"
	"runtime"

	"golang.org/x/sys/unix"

	"github.com/cactorium/nix/api"
	"github.com/cactorium/nix/fd"
)

func (f CreateFlags) sys() int {
	var v int
	if f.Has(NonBlock) {
		v |= unix.IN_NONBLOCK
	}
	if f.Has(CloseOnExec) {
		v |= unix.IN_CLOEXEC
	}
	return v
}

// FD is an inotify instance. The kernel closes it, and drops every watch,
// when the last descriptor referring to it is closed.
type FD struct {
	g *fd.Guard
}

// New creates an inotify instance (inotify_init1).
func New(flags CreateFlags) (*FD, error) {
	raw, err := unix.InotifyInit1(flags.sys())
	if err != nil {
		return nil, api.Check("inotify_init1", err)
	}
	return &FD{g: fd.New(raw)}, nil
}

func (f *FD) raw(op string) (int, error) {
	if f == nil {
		return -1, api.ErrClosed.WithContext("op", op)
	}
	raw := f.g.Fd()
	if raw < 0 {
		return -1, api.ErrClosed.WithContext("op", op)
	}
	return raw, nil
}

// Add watches path for the events in mask (inotify_add_watch). If path is
// already watched by f the existing watch is updated and returned; MaskAdd
// merges instead of replacing, MaskCreate turns the update into EEXIST.
func (f *FD) Add(path string, mask EventMask) (Watch, error) {
	raw, err := f.raw("inotify_add_watch")
	if err != nil {
		return -1, err
	}
	wd, err := unix.InotifyAddWatch(raw, path, uint32(mask))
	runtime.KeepAlive(f.g)
	if err != nil {
		return -1, api.Check("inotify_add_watch "+path, err)
	}
	return Watch(wd), nil
}

// Remove drops a watch (inotify_rm_watch). The kernel queues an Ignored
// event for it. Removing an unknown watch fails with EINVAL.
func (f *FD) Remove(w Watch) error {
	raw, err := f.raw("inotify_rm_watch")
	if err != nil {
		return err
	}
	_, err = unix.InotifyRmWatch(raw, uint32(w))
	runtime.KeepAlive(f.g)
	return api.Check("inotify_rm_watch", err)
}

// Read reads packed event records into p. p must hold at least one whole
// event; MinBufferSize always does.
func (f *FD) Read(p []byte) (int, error) {
	raw, err := f.raw("read")
	if err != nil {
		return 0, err
	}
	n, err := unix.Read(raw, p)
	runtime.KeepAlive(f.g)
	if err != nil {
		return 0, api.Check("read", err)
	}
	if n == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return n, nil
}

// ReadEvents performs one Read into buf and decodes everything it returned.
func (f *FD) ReadEvents(buf []byte) ([]Event, error) {
	n, err := f.Read(buf)
	if err != nil {
		return nil, err
	}
	return DecodeAll(buf[:n])
}

// Fd returns the raw descriptor, or -1 after Close or Release.
func (f *FD) Fd() int { return f.g.Fd() }

// Close closes the instance. It is never retried.
func (f *FD) Close() error {
	if f == nil {
		return api.ErrClosed
	}
	return f.g.Close()
}

// Release transfers ownership of the descriptor to the caller.
func (f *FD) Release() int {
	if f == nil {
		return -1
	}
	return f.g.Release()
}

var _ io.ReadCloser = (*FD)(nil)
