//go:build unix

// File: fd/guard_unix.go
// License: Apache-2.0

package fd

import "golang.org/x/sys/unix"

func closeFd(raw int) error {
	return unix.Close(raw)
}
