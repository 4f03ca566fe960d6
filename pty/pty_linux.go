//go:build linux

// File: pty/pty_linux.go
// License: Apache-2.0
//
// devpts implementation of the PTY primitives.

package pty

import (
	"runtime"
	"strconv"

	"golang.org/x/sys/unix"

	"github.com/cactorium/nix/api"
	"github.com/cactorium/nix/fd"
)

const (
	ptsnameMax = 64
	ptsPrefix  = "/dev/pts/"

	ioctlGetTermios = unix.TCGETS
	ioctlSetTermios = unix.TCSETS
)

// ptsNumber asks devpts for the slave index of a master.
func ptsNumber(op string, raw int) (uint32, error) {
	n, err := unix.IoctlGetUint32(raw, unix.TIOCGPTN)
	return api.SystemCall(op, n, err)
}

// grantpt has nothing to chown on devpts; the slave is created with the
// right owner. It still rejects descriptors that are not PTY masters.
func grantpt(raw int) error {
	_, err := ptsNumber("grantpt", raw)
	if isErrno(err, unix.ENOTTY) {
		return &api.SystemError{Op: "grantpt", Errno: unix.EINVAL}
	}
	return err
}

func unlockpt(raw int) error {
	return api.Check("unlockpt", unix.IoctlSetPointerInt(raw, unix.TIOCSPTLCK, 0))
}

// ptsname writes the slave path of raw into buf and returns its length.
func ptsname(raw int, buf []byte) (int, error) {
	n, err := ptsNumber("ptsname", raw)
	if err != nil {
		return 0, err
	}
	var tmp [ptsnameMax]byte
	name := strconv.AppendUint(append(tmp[:0], ptsPrefix...), uint64(n), 10)
	if len(name) > len(buf) {
		return 0, &api.SystemError{Op: "ptsname", Errno: unix.ERANGE}
	}
	return copy(buf, name), nil
}

// openPeer opens the slave through the master itself (TIOCGPTPEER, Linux
// 4.13+), which cannot be redirected by a swapped /dev/pts entry. Kernels
// without it get the path-based open.
func openPeer(m *Master, flags OpenFlags) (*Slave, error) {
	raw, err := m.raw("ioctl(TIOCGPTPEER)")
	if err != nil {
		return nil, err
	}
	r, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(raw), unix.TIOCGPTPEER, uintptr(flags.sys()))
	runtime.KeepAlive(m.g)
	switch errno {
	case 0:
	case unix.EINVAL, unix.ENOTTY:
		return openByName(m, flags)
	default:
		return nil, api.Errno("ioctl(TIOCGPTPEER)", errno)
	}
	s := &Slave{device{g: fd.New(int(r))}}
	var buf [ptsnameMax]byte
	n, err := ptsname(raw, buf[:])
	runtime.KeepAlive(m.g)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.name = string(buf[:n])
	return s, nil
}
