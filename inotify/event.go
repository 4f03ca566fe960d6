// File: inotify/event.go
// License: Apache-2.0
//
// Decoding of packed inotify event records.

package inotify

import (
	"bytes"
	"encoding/binary"
	"iter"
	"strconv"

	"github.com/cactorium/nix/api"
)

// HeaderSize is the fixed part of every record: wd, mask, cookie and len,
// four 32-bit fields in host byte order.
const HeaderSize = 16

// NameMax is the longest file name the kernel reports.
const NameMax = 255

// MinBufferSize is the smallest read buffer that can hold any single event.
// Shorter reads fail with EINVAL.
const MinBufferSize = HeaderSize + NameMax + 1

// Watch identifies a watch within one inotify instance. Values are only
// meaningful on the instance that returned them and may be reused after
// removal.
type Watch int32

func (w Watch) String() string { return "wd:" + strconv.Itoa(int(w)) }

// Event is one decoded record. Name is empty when the event concerns the
// watched object itself.
type Event struct {
	Watch  Watch
	Mask   EventMask
	Cookie uint32
	Name   string
}

// Has reports whether every bit of m is set on the event.
func (e Event) Has(m EventMask) bool { return e.Mask.Has(m) }

// IsDir reports whether the subject of the event is a directory.
func (e Event) IsDir() bool { return e.Mask.Has(IsDir) }

// Overflow reports whether the kernel dropped events for this instance.
func (e Event) Overflow() bool { return e.Mask.Has(QOverflow) }

func (e Event) String() string {
	s := e.Watch.String() + " " + e.Mask.String()
	if e.Cookie != 0 {
		s += " cookie:" + strconv.FormatUint(uint64(e.Cookie), 10)
	}
	if e.Name != "" {
		s += " " + strconv.Quote(e.Name)
	}
	return s
}

// Decoder walks the records of one read buffer. It is not restartable:
// once Next returns false it stays false.
//
//	d := inotify.NewDecoder(buf[:n])
//	for d.Next() {
//		handle(d.Event())
//	}
//	if err := d.Err(); err != nil { ... }
type Decoder struct {
	buf []byte
	off int
	ev  Event
	err error
}

// NewDecoder returns a decoder over buf, which must contain only bytes
// returned by a read.
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

// Next decodes the following record. It returns false at the end of the
// buffer or on the first malformed record; Err tells the two apart.
func (d *Decoder) Next() bool {
	if d.err != nil || d.off >= len(d.buf) {
		return false
	}
	rest := d.buf[d.off:]
	if len(rest) < HeaderSize {
		d.err = d.corrupt(HeaderSize, len(rest))
		return false
	}
	ne := binary.NativeEndian
	nameLen := ne.Uint32(rest[12:16])
	if uint64(nameLen) > uint64(len(rest)-HeaderSize) {
		d.err = d.corrupt(uint64(HeaderSize)+uint64(nameLen), len(rest))
		return false
	}
	end := HeaderSize + int(nameLen)
	name := bytes.TrimRight(rest[HeaderSize:end], "\x00")

	d.ev = Event{
		Watch:  Watch(int32(ne.Uint32(rest[0:4]))),
		Mask:   EventMask(ne.Uint32(rest[4:8])),
		Cookie: ne.Uint32(rest[8:12]),
		Name:   string(name),
	}
	d.off += end
	return true
}

func (d *Decoder) corrupt(need uint64, have int) error {
	return api.ErrCorruptEvent.
		WithContext("offset", d.off).
		WithContext("declared", need).
		WithContext("available", have)
}

// Event returns the record decoded by the last successful Next.
func (d *Decoder) Event() Event { return d.ev }

// Err returns the reason decoding stopped early, or nil if the buffer was
// consumed completely. The error matches api.ErrCorruptEvent.
func (d *Decoder) Err() error { return d.err }

// Offset returns the number of bytes consumed so far.
func (d *Decoder) Offset() int { return d.off }

// Events iterates over the records of buf. A malformed record ends the
// sequence with a zero Event and the error.
func Events(buf []byte) iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		d := NewDecoder(buf)
		for d.Next() {
			if !yield(d.Event(), nil) {
				return
			}
		}
		if err := d.Err(); err != nil {
			yield(Event{}, err)
		}
	}
}

// DecodeAll decodes every record of buf. On a malformed record it returns
// the events decoded before it together with the error.
func DecodeAll(buf []byte) ([]Event, error) {
	var out []Event
	d := NewDecoder(buf)
	for d.Next() {
		out = append(out, d.Event())
	}
	return out, d.Err()
}
