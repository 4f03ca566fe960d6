// File: pty/flags.go
// License: Apache-2.0
//
// Open flags for master and slave devices, as an explicit bit set.

package pty

import "strings"

// OpenFlags selects how a PTY device is opened. The values are independent
// bits, translated to the platform's O_* flags at the syscall boundary.
type OpenFlags uint8

const (
	// ReadWrite opens the device for reading and writing (O_RDWR).
	ReadWrite OpenFlags = 1 << iota
	// NonBlock makes reads and writes non-blocking (O_NONBLOCK).
	NonBlock
	// NoCtty keeps the device from becoming the controlling terminal (O_NOCTTY).
	NoCtty
	// CloseOnExec closes the descriptor across exec (O_CLOEXEC).
	CloseOnExec
)

var flagNames = []struct {
	flag OpenFlags
	name string
}{
	{ReadWrite, "O_RDWR"},
	{NonBlock, "O_NONBLOCK"},
	{NoCtty, "O_NOCTTY"},
	{CloseOnExec, "O_CLOEXEC"},
}

// Has reports whether every bit of o is set in f.
func (f OpenFlags) Has(o OpenFlags) bool { return f&o == o }

// Union returns the bits set in either f or o.
func (f OpenFlags) Union(o OpenFlags) OpenFlags { return f | o }

// Intersect returns the bits set in both f and o.
func (f OpenFlags) Intersect(o OpenFlags) OpenFlags { return f & o }

// Without returns f with the bits of o cleared.
func (f OpenFlags) Without(o OpenFlags) OpenFlags { return f &^ o }

func (f OpenFlags) String() string {
	if f == 0 {
		return "O_RDONLY"
	}
	var parts []string
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			parts = append(parts, fn.name)
		}
	}
	return strings.Join(parts, "|")
}
