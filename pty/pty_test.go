//go:build linux || darwin

package pty_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/cactorium/nix/api"
	"github.com/cactorium/nix/pty"
)

// readN reads until exactly n bytes arrived.
func readN(t *testing.T, r io.Reader, n int) []byte {
	t.Helper()
	buf := make([]byte, 0, n)
	chunk := make([]byte, n)
	for len(buf) < n {
		k, err := r.Read(chunk[:n-len(buf)])
		require.NoError(t, err)
		buf = append(buf, chunk[:k]...)
	}
	return buf
}

func TestOpenptyRoundTrip(t *testing.T) {
	res, err := pty.Openpty(nil, nil)
	require.NoError(t, err)
	assert.Greater(t, res.Master, 0)
	assert.Greater(t, res.Slave, 0)

	master, slave := res.Files()
	defer master.Close()
	defer slave.Close()
	assert.Equal(t, -1, res.Master, "ownership moved to the files")

	_, err = master.Write([]byte("foofoofoo\n"))
	require.NoError(t, err)
	assert.Equal(t, "foofoofoo\n", string(readN(t, slave, 10)))

	// Echo comes back through the line discipline with NL mapped to CR NL.
	assert.Equal(t, "foofoofoo\r\n", string(readN(t, master, 11)))

	_, err = slave.Write([]byte("barbarbarbar\n"))
	require.NoError(t, err)
	assert.Equal(t, "barbarbarbar\r\n", string(readN(t, master, 14)))
}

func TestOpenptyAppliesWinsize(t *testing.T) {
	res, err := pty.Openpty(&pty.Winsize{Row: 24, Col: 80, Xpixel: 640, Ypixel: 480}, nil)
	require.NoError(t, err)
	defer res.Close()

	ws, err := unix.IoctlGetWinsize(res.Slave, unix.TIOCGWINSZ)
	require.NoError(t, err)
	assert.Equal(t, uint16(24), ws.Row)
	assert.Equal(t, uint16(80), ws.Col)
	assert.Equal(t, uint16(640), ws.Xpixel)
}

func TestOpenptyAppliesTermios(t *testing.T) {
	ref, err := pty.Openpty(nil, nil)
	require.NoError(t, err)
	base, err := unix.IoctlGetTermios(ref.Slave, termiosGet)
	require.NoError(t, err)
	require.NotZero(t, base.Lflag&unix.ECHO, "kernel default echoes")
	require.NoError(t, ref.Close())

	noEcho := *base
	noEcho.Lflag &^= unix.ECHO

	res, err := pty.Openpty(nil, &noEcho)
	require.NoError(t, err)
	defer res.Close()

	got, err := unix.IoctlGetTermios(res.Slave, termiosGet)
	require.NoError(t, err)
	assert.Zero(t, got.Lflag&unix.ECHO)
}

func TestOpenptyResultClose(t *testing.T) {
	res, err := pty.Openpty(nil, nil)
	require.NoError(t, err)
	master, slave := res.Master, res.Slave

	require.NoError(t, res.Close())
	assert.Equal(t, -1, res.Master)
	assert.Equal(t, -1, res.Slave)
	assert.NoError(t, res.Close(), "second close is a no-op")

	_, err = unix.FcntlInt(uintptr(master), unix.F_GETFD, 0)
	assert.ErrorIs(t, err, unix.EBADF)
	_, err = unix.FcntlInt(uintptr(slave), unix.F_GETFD, 0)
	assert.ErrorIs(t, err, unix.EBADF)
}

func TestManualSequence(t *testing.T) {
	m, err := pty.OpenMaster(pty.ReadWrite | pty.NoCtty | pty.CloseOnExec)
	require.NoError(t, err)
	defer m.Close()

	require.NoError(t, pty.Grant(m))
	require.NoError(t, pty.Unlock(m))

	name, err := pty.Ptsname(m)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix([]byte(name), []byte("/dev/")), name)

	s, err := pty.OpenSlave(name, pty.ReadWrite|pty.NoCtty)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, name, s.Name())

	_, err = s.Write([]byte("ping\n"))
	require.NoError(t, err)
	assert.Equal(t, "ping\r\n", string(readN(t, m, 6)))
}

func TestMasterWinsize(t *testing.T) {
	m, err := pty.OpenMaster(pty.ReadWrite | pty.NoCtty | pty.CloseOnExec)
	require.NoError(t, err)
	defer m.Close()

	require.NoError(t, m.SetWinsize(&pty.Winsize{Row: 50, Col: 132}))
	ws, err := m.Winsize()
	require.NoError(t, err)
	assert.Equal(t, uint16(50), ws.Row)
	assert.Equal(t, uint16(132), ws.Col)
}

func TestReleasedMasterFailsCleanly(t *testing.T) {
	m, err := pty.OpenMaster(pty.ReadWrite | pty.NoCtty | pty.CloseOnExec)
	require.NoError(t, err)
	require.NoError(t, m.Close())

	assert.ErrorIs(t, pty.Grant(m), api.ErrClosed)
	assert.ErrorIs(t, pty.Unlock(m), api.ErrClosed)
	_, err = pty.Ptsname(m)
	assert.ErrorIs(t, err, api.ErrClosed)
	_, err = m.Write([]byte("x"))
	assert.ErrorIs(t, err, api.ErrClosed)
	assert.ErrorIs(t, m.Close(), api.ErrClosed)
	assert.Nil(t, m.File())
}

func TestMasterRelease(t *testing.T) {
	m, err := pty.OpenMaster(pty.ReadWrite | pty.NoCtty | pty.CloseOnExec)
	require.NoError(t, err)

	f := m.File()
	require.NotNil(t, f)
	defer f.Close()
	assert.Equal(t, -1, m.Fd())

	_, err = unix.FcntlInt(f.Fd(), unix.F_GETFD, 0)
	assert.NoError(t, err, "File must not close the descriptor")
}

func TestOpenSlaveMissing(t *testing.T) {
	_, err := pty.OpenSlave("/dev/pts/does-not-exist", pty.ReadWrite)
	var se *api.SystemError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, unix.ENOENT, se.Errno)
}

func TestOpenptyFilesNameTheSlave(t *testing.T) {
	res, err := pty.Openpty(nil, nil)
	require.NoError(t, err)
	require.NotEmpty(t, res.Name)

	master, slave := res.Files()
	defer master.Close()
	defer slave.Close()
	assert.Equal(t, res.Name, slave.Name())

	var byPath, byFd unix.Stat_t
	require.NoError(t, unix.Stat(slave.Name(), &byPath))
	require.NoError(t, unix.Fstat(int(slave.Fd()), &byFd))
	assert.Equal(t, byFd.Rdev, byPath.Rdev, "name must point at the same device")
}
