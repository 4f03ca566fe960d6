//go:build linux

// File: pty/ptsname_r_linux.go
// License: Apache-2.0

package pty

import (
	"bytes"
	"runtime"

	"github.com/cactorium/nix/api"
)

// PtsnameR returns the path of the slave device of m (ptsname_r). It writes
// only into buf, so concurrent calls are safe as long as each caller passes
// its own buffer. A nil buf uses a fresh 64-byte buffer.
//
// A buffer too small for the name fails with ERANGE. Bytes that are not
// valid UTF-8 are reported as *api.DecodingError.
func PtsnameR(m *Master, buf []byte) (string, error) {
	if buf == nil {
		buf = make([]byte, ptsnameMax)
	}
	raw, err := m.raw("ptsname_r")
	if err != nil {
		return "", err
	}
	n, err := ptsname(raw, buf)
	runtime.KeepAlive(m.g)
	if err != nil {
		return "", err
	}
	name := buf[:n]
	if i := bytes.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}
	return api.DecodeText("ptsname_r", name)
}
