// File: api/syscall.go
// License: Apache-2.0
//
// Translation of raw syscall failures into *SystemError.

package api

import (
	"errors"
	"syscall"
)

// Check converts a failed syscall into a *SystemError tagged with op. Errors
// that carry no errno pass through untouched; nil stays nil.
func Check(op string, err error) error {
	if err == nil {
		return nil
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return &SystemError{Op: op, Errno: errno}
	}
	return err
}

// SystemCall is Check for calls that also produce a value. On failure the
// zero value of T is returned.
func SystemCall[T any](op string, v T, err error) (T, error) {
	if err = Check(op, err); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// Errno builds a *SystemError from a raw error number, for call sites that
// get an errno back instead of an error value.
func Errno(op string, errno syscall.Errno) error {
	if errno == 0 {
		return nil
	}
	return &SystemError{Op: op, Errno: errno}
}
