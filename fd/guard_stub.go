//go:build !unix

// File: fd/guard_stub.go
// License: Apache-2.0
//
// Stub for platforms without POSIX descriptors.

package fd

import "github.com/cactorium/nix/api"

func closeFd(raw int) error {
	return api.ErrNotSupported
}
