//go:build linux || darwin

// File: pty/pty.go
// License: Apache-2.0
//
// posix_openpt / grantpt / unlockpt / ptsname / openpty.

package pty

import (
	"errors"
	"os"
	"runtime"

	"golang.org/x/sys/unix"

	"github.com/cactorium/nix/api"
	"github.com/cactorium/nix/fd"
)

const ptmx = "/dev/ptmx"

func (f OpenFlags) sys() int {
	var v int
	if f.Has(ReadWrite) {
		v |= unix.O_RDWR
	}
	if f.Has(NonBlock) {
		v |= unix.O_NONBLOCK
	}
	if f.Has(NoCtty) {
		v |= unix.O_NOCTTY
	}
	if f.Has(CloseOnExec) {
		v |= unix.O_CLOEXEC
	}
	return v
}

// OpenMaster returns an unused PTY master device (posix_openpt).
func OpenMaster(flags OpenFlags) (*Master, error) {
	raw, err := unix.Open(ptmx, flags.sys(), 0)
	if err != nil {
		return nil, api.Check("posix_openpt", err)
	}
	return &Master{device{g: fd.New(raw), name: ptmx}}, nil
}

// Grant makes the slave device corresponding to m accessible to the calling
// user (grantpt). It must succeed before the slave is opened.
func Grant(m *Master) error {
	raw, err := m.raw("grantpt")
	if err != nil {
		return err
	}
	err = grantpt(raw)
	runtime.KeepAlive(m.g)
	return err
}

// Unlock removes the lock that keeps the slave from being opened
// (unlockpt). Call it after Grant and before opening the slave.
func Unlock(m *Master) error {
	raw, err := m.raw("unlockpt")
	if err != nil {
		return err
	}
	err = unlockpt(raw)
	runtime.KeepAlive(m.g)
	return err
}

// ptsnameBuf backs every Ptsname call, the way the C library backs ptsname(3)
// with one static buffer.
var ptsnameBuf [ptsnameMax]byte

// Ptsname returns the path of the slave device of m (ptsname).
//
// Ptsname writes through one process-wide buffer and is not safe for
// concurrent use: parallel calls, on any masters, can corrupt each other's
// result. Serialize calls or use PtsnameR where available.
func Ptsname(m *Master) (string, error) {
	raw, err := m.raw("ptsname")
	if err != nil {
		return "", err
	}
	n, err := ptsname(raw, ptsnameBuf[:])
	runtime.KeepAlive(m.g)
	if err != nil {
		return "", err
	}
	return string(ptsnameBuf[:n]), nil
}

// OpenSlave opens a slave device by path. Grant and Unlock must have
// succeeded on its master first.
func OpenSlave(name string, flags OpenFlags) (*Slave, error) {
	raw, err := unix.Open(name, flags.sys(), 0)
	if err != nil {
		return nil, api.Check("open "+name, err)
	}
	return &Slave{device{g: fd.New(raw), name: name}}, nil
}

// OpenptyResult is a freshly allocated pair. Both descriptors are open and
// owned by the caller. Name is the path of the slave device.
type OpenptyResult struct {
	Master int
	Slave  int
	Name   string
}

// Close closes both descriptors and marks them -1. It reports the first
// failure; neither close is retried.
func (r *OpenptyResult) Close() error {
	var errs []error
	for _, p := range []*int{&r.Master, &r.Slave} {
		if *p < 0 {
			continue
		}
		raw := *p
		*p = -1
		if err := unix.Close(raw); err != nil {
			errs = append(errs, api.Check("close", err))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs[0]
}

// Files transfers both descriptors into *os.File values and clears r.
func (r *OpenptyResult) Files() (master, slave *os.File) {
	if r.Master >= 0 {
		master = os.NewFile(uintptr(r.Master), ptmx)
	}
	if r.Slave >= 0 {
		name := r.Name
		if name == "" {
			name = "pts"
		}
		slave = os.NewFile(uintptr(r.Slave), name)
	}
	r.Master, r.Slave = -1, -1
	return master, slave
}

// Openpty allocates a master/slave pair in one call (openpty). A nil ws or
// t leaves the kernel defaults in place; otherwise they are applied to the
// slave. Nothing stays open when an error is returned.
func Openpty(ws *Winsize, t *Termios) (OpenptyResult, error) {
	failed := OpenptyResult{Master: -1, Slave: -1}

	m, err := OpenMaster(ReadWrite | NoCtty | CloseOnExec)
	if err != nil {
		return failed, err
	}
	defer m.Close()

	if err := Grant(m); err != nil {
		return failed, err
	}
	if err := Unlock(m); err != nil {
		return failed, err
	}
	s, err := openPeer(m, ReadWrite|NoCtty|CloseOnExec)
	if err != nil {
		return failed, err
	}
	defer s.Close()

	if t != nil {
		if err := s.SetTermios(t); err != nil {
			return failed, err
		}
	}
	if ws != nil {
		if err := s.SetWinsize(ws); err != nil {
			return failed, err
		}
	}
	return OpenptyResult{Master: m.Release(), Slave: s.Release(), Name: s.Name()}, nil
}

// openByName opens the slave of m through the filesystem.
func openByName(m *Master, flags OpenFlags) (*Slave, error) {
	var buf [ptsnameMax]byte
	raw, err := m.raw("ptsname")
	if err != nil {
		return nil, err
	}
	n, err := ptsname(raw, buf[:])
	runtime.KeepAlive(m.g)
	if err != nil {
		return nil, err
	}
	return OpenSlave(string(buf[:n]), flags)
}

// isErrno reports whether err is a *api.SystemError for one of codes.
func isErrno(err error, codes ...unix.Errno) bool {
	var se *api.SystemError
	if !errors.As(err, &se) {
		return false
	}
	for _, c := range codes {
		if se.Errno == c {
			return true
		}
	}
	return false
}
