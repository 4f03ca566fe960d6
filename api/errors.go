// File: api/errors.go
// License: Apache-2.0
//
// Error taxonomy shared by the pty and inotify packages.

package api

import (
	"fmt"
	"syscall"
	"unicode/utf8"
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeSystem
	ErrCodeDecoding
	ErrCodeCorrupt
	ErrCodeClosed
	ErrCodeNotSupported
)

var codeNames = map[ErrorCode]string{
	ErrCodeOK:           "ok",
	ErrCodeSystem:       "system",
	ErrCodeDecoding:     "decoding",
	ErrCodeCorrupt:      "corrupt",
	ErrCodeClosed:       "closed",
	ErrCodeNotSupported: "not supported",
}

func (c ErrorCode) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return fmt.Sprintf("ErrorCode(%d)", int(c))
}

// Common errors used across the library. Match them with errors.Is.
var (
	ErrClosed       = NewError(ErrCodeClosed, "descriptor already released")
	ErrNotSupported = NewError(ErrCodeNotSupported, "operation not supported on this platform")
	ErrCorruptEvent = NewError(ErrCodeCorrupt, "corrupt inotify event record")
)

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// Is reports whether target is an *Error carrying the same code, so a
// contextualised copy still matches the package sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WithContext returns a copy of e carrying the extra key. Sentinels are
// shared, so they are never mutated in place.
func (e *Error) WithContext(key string, value any) *Error {
	ctx := make(map[string]any, len(e.Context)+1)
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &Error{Code: e.Code, Message: e.Message, Context: ctx}
}

// SystemError is a kernel-reported failure. Errno is the raw code exactly as
// the kernel returned it.
type SystemError struct {
	Op    string
	Errno syscall.Errno
}

func (e *SystemError) Error() string {
	return e.Op + ": " + e.Errno.Error()
}

// Unwrap exposes the errno so callers can use errors.Is(err, unix.EINVAL).
func (e *SystemError) Unwrap() error { return e.Errno }

// Code returns the raw error number.
func (e *SystemError) Code() int { return int(e.Errno) }

// Temporary reports whether retrying the call might succeed. The library
// itself never retries.
func (e *SystemError) Temporary() bool { return e.Errno.Temporary() }

// DecodingError reports kernel-returned bytes that are not valid text.
type DecodingError struct {
	Op     string
	Raw    []byte
	Offset int
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("%s: invalid UTF-8 at byte %d of %q", e.Op, e.Offset, e.Raw)
}

// DecodeText returns raw as a string, or a *DecodingError pointing at the
// first invalid byte. The returned string never aliases raw.
func DecodeText(op string, raw []byte) (string, error) {
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	off := 0
	for off < len(raw) {
		r, size := utf8.DecodeRune(raw[off:])
		if r == utf8.RuneError && size <= 1 {
			break
		}
		off += size
	}
	cp := make([]byte, len(raw))
	copy(cp, raw)
	return "", &DecodingError{Op: op, Raw: cp, Offset: off}
}
