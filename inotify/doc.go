// Copyright (c) 2025
// License: Apache-2.0

// Package inotify wraps the Linux inotify(7) interface.
//
// An FD owns one inotify instance. Watches are added and removed by path and
// event mask; the kernel keeps the watch table, so nothing is tracked here.
// Adding a path that is already watched on the same instance updates the
// existing watch and returns the same Watch value.
//
// Reads return one or more packed event records. NewDecoder walks such a
// buffer lazily, validating every declared name length against the bytes
// that were actually read. Names are copied out and stripped of their NUL
// padding, so an Event stays valid after the buffer is reused.
//
// Reader combines reads and decoding and hands out one event at a time,
// recycling read buffers through package pool.
//
// Closing an FD while another goroutine is blocked in Read is best-effort
// cancellation only: depending on the kernel the read may fail at once or
// stay blocked until the next event. Use NonBlock and an external poller when
// prompt shutdown matters.
//
// The decoder and Reader work on any platform; New returns
// api.ErrNotSupported outside Linux.
package inotify
