// Package api
// License: Apache-2.0
//
// Shared contracts for the nix packages: the error taxonomy and the helpers
// that turn raw syscall results into it.
//
// Two kinds of failure reach callers:
//   - *SystemError carries the kernel errno verbatim. It is never retried.
//   - *DecodingError is returned when kernel bytes must become text and are
//     not valid UTF-8.
//
// Structured *Error values (ErrClosed, ErrNotSupported, ErrCorruptEvent)
// cover conditions detected by the library itself.
package api
