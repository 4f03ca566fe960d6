//go:build linux || darwin

// File: pty/device.go
// License: Apache-2.0
//
// Guarded master and slave handles.

package pty

import (
	"io"
	"os"
	"runtime"

	"golang.org/x/sys/unix"

	"github.com/cactorium/nix/api"
	"github.com/cactorium/nix/fd"
)

// Winsize is the kernel window size structure, passed through unmodified.
type Winsize = unix.Winsize

// Termios is the kernel terminal attribute structure, passed through unmodified.
type Termios = unix.Termios

// SessionID identifies a session by the process id of its leader.
type SessionID = int

// device is the part shared by both ends of a pair.
type device struct {
	g    *fd.Guard
	name string
}

func (d *device) raw(op string) (int, error) {
	if d == nil {
		return -1, api.ErrClosed.WithContext("op", op)
	}
	raw := d.g.Fd()
	if raw < 0 {
		return -1, api.ErrClosed.WithContext("op", op)
	}
	return raw, nil
}

// Fd returns the raw descriptor, or -1 after Close or Release.
func (d *device) Fd() int { return d.g.Fd() }

// Close closes the descriptor. It is never retried.
func (d *device) Close() error { return d.g.Close() }

// Release transfers ownership of the descriptor to the caller without
// closing it.
func (d *device) Release() int { return d.g.Release() }

// File transfers ownership into an *os.File. It returns nil if the
// descriptor was already released or closed.
func (d *device) File() *os.File {
	raw := d.g.Release()
	if raw < 0 {
		return nil
	}
	return os.NewFile(uintptr(raw), d.name)
}

// Read reads from the device. A zero-length read is reported as io.EOF.
func (d *device) Read(p []byte) (int, error) {
	raw, err := d.raw("read")
	if err != nil {
		return 0, err
	}
	n, err := unix.Read(raw, p)
	runtime.KeepAlive(d.g)
	if err != nil {
		return 0, api.Check("read", err)
	}
	if n == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return n, nil
}

// Write writes p to the device.
func (d *device) Write(p []byte) (int, error) {
	raw, err := d.raw("write")
	if err != nil {
		return 0, err
	}
	n, err := unix.Write(raw, p)
	runtime.KeepAlive(d.g)
	if n < 0 {
		n = 0
	}
	return n, api.Check("write", err)
}

// Winsize returns the current window size.
func (d *device) Winsize() (*Winsize, error) {
	raw, err := d.raw("ioctl(TIOCGWINSZ)")
	if err != nil {
		return nil, err
	}
	ws, err := unix.IoctlGetWinsize(raw, unix.TIOCGWINSZ)
	runtime.KeepAlive(d.g)
	return api.SystemCall("ioctl(TIOCGWINSZ)", ws, err)
}

// SetWinsize changes the window size. The foreground process group of the
// slave receives SIGWINCH.
func (d *device) SetWinsize(ws *Winsize) error {
	raw, err := d.raw("ioctl(TIOCSWINSZ)")
	if err != nil {
		return err
	}
	err = unix.IoctlSetWinsize(raw, unix.TIOCSWINSZ, ws)
	runtime.KeepAlive(d.g)
	return api.Check("ioctl(TIOCSWINSZ)", err)
}

// Master is the master side of a PTY pair. It can only be obtained from
// OpenMaster.
type Master struct {
	device
}

// Slave is an opened slave device.
type Slave struct {
	device
}

// Name returns the path the slave was opened from.
func (s *Slave) Name() string { return s.name }

// Termios returns the slave's current terminal settings.
func (s *Slave) Termios() (*Termios, error) {
	raw, err := s.raw("ioctl(TCGETS)")
	if err != nil {
		return nil, err
	}
	t, err := unix.IoctlGetTermios(raw, ioctlGetTermios)
	runtime.KeepAlive(s.g)
	return api.SystemCall("ioctl(TCGETS)", t, err)
}

// SetTermios applies terminal settings immediately.
func (s *Slave) SetTermios(t *Termios) error {
	raw, err := s.raw("ioctl(TCSETS)")
	if err != nil {
		return err
	}
	err = unix.IoctlSetTermios(raw, ioctlSetTermios, t)
	runtime.KeepAlive(s.g)
	return api.Check("ioctl(TCSETS)", err)
}

var (
	_ io.ReadWriteCloser = (*Master)(nil)
	_ io.ReadWriteCloser = (*Slave)(nil)
)
