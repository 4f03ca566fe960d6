// File: inotify/mask.go
// License: Apache-2.0
//
// Event masks and creation flags.

package inotify

import (
	"fmt"
	"strings"
)

// EventMask is a set of inotify event bits. The values are the kernel ABI
// and identical on every architecture.
type EventMask uint32

// Events that can be requested and reported.
const (
	Access       EventMask = 0x00000001 // IN_ACCESS
	Modify       EventMask = 0x00000002 // IN_MODIFY
	Attrib       EventMask = 0x00000004 // IN_ATTRIB
	CloseWrite   EventMask = 0x00000008 // IN_CLOSE_WRITE
	CloseNoWrite EventMask = 0x00000010 // IN_CLOSE_NOWRITE
	Open         EventMask = 0x00000020 // IN_OPEN
	MovedFrom    EventMask = 0x00000040 // IN_MOVED_FROM
	MovedTo      EventMask = 0x00000080 // IN_MOVED_TO
	Create       EventMask = 0x00000100 // IN_CREATE
	Delete       EventMask = 0x00000200 // IN_DELETE
	DeleteSelf   EventMask = 0x00000400 // IN_DELETE_SELF
	MoveSelf     EventMask = 0x00000800 // IN_MOVE_SELF

	Close               = CloseWrite | CloseNoWrite
	Move                = MovedFrom | MovedTo
	AllEvents EventMask = 0x00000fff
)

// Generated by the kernel only.
const (
	Unmount   EventMask = 0x00002000 // IN_UNMOUNT
	QOverflow EventMask = 0x00004000 // IN_Q_OVERFLOW
	Ignored   EventMask = 0x00008000 // IN_IGNORED
	IsDir     EventMask = 0x40000000 // IN_ISDIR
)

// Modifiers accepted by Add.
const (
	OnlyDir    EventMask = 0x01000000 // IN_ONLYDIR
	DontFollow EventMask = 0x02000000 // IN_DONT_FOLLOW
	ExclUnlink EventMask = 0x04000000 // IN_EXCL_UNLINK
	MaskCreate EventMask = 0x10000000 // IN_MASK_CREATE
	MaskAdd    EventMask = 0x20000000 // IN_MASK_ADD
	OneShot    EventMask = 0x80000000 // IN_ONESHOT
)

var maskNames = []struct {
	mask EventMask
	name string
}{
	{Access, "IN_ACCESS"},
	{Modify, "IN_MODIFY"},
	{Attrib, "IN_ATTRIB"},
	{CloseWrite, "IN_CLOSE_WRITE"},
	{CloseNoWrite, "IN_CLOSE_NOWRITE"},
	{Open, "IN_OPEN"},
	{MovedFrom, "IN_MOVED_FROM"},
	{MovedTo, "IN_MOVED_TO"},
	{Create, "IN_CREATE"},
	{Delete, "IN_DELETE"},
	{DeleteSelf, "IN_DELETE_SELF"},
	{MoveSelf, "IN_MOVE_SELF"},
	{Unmount, "IN_UNMOUNT"},
	{QOverflow, "IN_Q_OVERFLOW"},
	{Ignored, "IN_IGNORED"},
	{OnlyDir, "IN_ONLYDIR"},
	{DontFollow, "IN_DONT_FOLLOW"},
	{ExclUnlink, "IN_EXCL_UNLINK"},
	{MaskCreate, "IN_MASK_CREATE"},
	{MaskAdd, "IN_MASK_ADD"},
	{IsDir, "IN_ISDIR"},
	{OneShot, "IN_ONESHOT"},
}

// Has reports whether every bit of o is set in m.
func (m EventMask) Has(o EventMask) bool { return m&o == o }

// Any reports whether at least one bit of o is set in m.
func (m EventMask) Any(o EventMask) bool { return m&o != 0 }

// Union returns the bits set in either m or o.
func (m EventMask) Union(o EventMask) EventMask { return m | o }

// Intersect returns the bits set in both m and o.
func (m EventMask) Intersect(o EventMask) EventMask { return m & o }

// Without returns m with the bits of o cleared.
func (m EventMask) Without(o EventMask) EventMask { return m &^ o }

// String renders m as IN_* names joined by '|'. Unknown bits are shown in
// hex.
func (m EventMask) String() string {
	if m == 0 {
		return "0"
	}
	var parts []string
	rest := m
	for _, mn := range maskNames {
		if m.Has(mn.mask) {
			parts = append(parts, mn.name)
			rest &^= mn.mask
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}

var maskAliases = map[string]EventMask{
	"ALL":   AllEvents,
	"CLOSE": Close,
	"MOVE":  Move,
}

// ParseMask parses a list of event names separated by ',' or '|'. Names are
// case-insensitive and the IN_ prefix is optional, so "create,moved_to" and
// "IN_CREATE|IN_MOVED_TO" are equal. "all", "close" and "move" name the
// usual unions.
func ParseMask(s string) (EventMask, error) {
	var m EventMask
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '|' })
	for _, f := range fields {
		name := strings.ToUpper(strings.TrimSpace(f))
		name = strings.TrimPrefix(name, "IN_")
		if name == "" {
			continue
		}
		if v, ok := maskAliases[name]; ok {
			m |= v
			continue
		}
		v, ok := lookupMask("IN_" + name)
		if !ok {
			return 0, fmt.Errorf("inotify: unknown event %q", strings.TrimSpace(f))
		}
		m |= v
	}
	return m, nil
}

func lookupMask(name string) (EventMask, bool) {
	for _, mn := range maskNames {
		if mn.name == name {
			return mn.mask, true
		}
	}
	return 0, false
}

// CreateFlags configures a new inotify instance.
type CreateFlags uint8

const (
	// NonBlock makes reads fail with EAGAIN instead of blocking (IN_NONBLOCK).
	NonBlock CreateFlags = 1 << iota
	// CloseOnExec closes the instance across exec (IN_CLOEXEC).
	CloseOnExec
)

// Has reports whether every bit of o is set in f.
func (f CreateFlags) Has(o CreateFlags) bool { return f&o == o }

// Union returns the bits set in either f or o.
func (f CreateFlags) Union(o CreateFlags) CreateFlags { return f | o }

func (f CreateFlags) String() string {
	var parts []string
	if f.Has(NonBlock) {
		parts = append(parts, "IN_NONBLOCK")
	}
	if f.Has(CloseOnExec) {
		parts = append(parts, "IN_CLOEXEC")
	}
	if len(parts) == 0 {
		return "0"
	}
	return strings.Join(parts, "|")
}
