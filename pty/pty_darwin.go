//go:build darwin

// File: pty/pty_darwin.go
// License: Apache-2.0
//
// XNU implementation of the PTY primitives.

package pty

import (
	"bytes"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/cactorium/nix/api"
)

const (
	// TIOCPTYGNAME fills exactly this many bytes.
	ptsnameMax = 128

	ioctlGetTermios = unix.TIOCGETA
	ioctlSetTermios = unix.TIOCSETA
)

func grantpt(raw int) error {
	return api.Check("grantpt", unix.IoctlSetInt(raw, unix.TIOCPTYGRANT, 0))
}

func unlockpt(raw int) error {
	return api.Check("unlockpt", unix.IoctlSetInt(raw, unix.TIOCPTYUNLK, 0))
}

// ptsname writes the slave path of raw into buf and returns its length.
func ptsname(raw int, buf []byte) (int, error) {
	var out [ptsnameMax]byte
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(raw), uintptr(unix.TIOCPTYGNAME), uintptr(unsafe.Pointer(&out[0])))
	if errno != 0 {
		return 0, api.Errno("ptsname", errno)
	}
	name := out[:]
	if i := bytes.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}
	if len(name) > len(buf) {
		return 0, &api.SystemError{Op: "ptsname", Errno: unix.ERANGE}
	}
	return copy(buf, name), nil
}

// openPeer opens the slave by path; XNU has no TIOCGPTPEER.
func openPeer(m *Master, flags OpenFlags) (*Slave, error) {
	return openByName(m, flags)
}
