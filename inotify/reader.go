// File: inotify/reader.go
// License: Apache-2.0
//
// Event-at-a-time reader over an inotify stream.

package inotify

import (
	"errors"
	"io"

	"github.com/eapache/queue"

	"github.com/cactorium/nix/api"
	"github.com/cactorium/nix/pool"
)

// DefaultBufferSize holds several events per read.
const DefaultBufferSize = 16 * MinBufferSize

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithBufferSize sets the size of every read. Values below MinBufferSize are
// raised to it.
func WithBufferSize(n int) ReaderOption {
	return func(r *Reader) {
		if n < MinBufferSize {
			n = MinBufferSize
		}
		r.size = n
	}
}

// WithBufferPool shares read buffers with other readers. The pool's size
// overrides WithBufferSize.
func WithBufferPool(p *pool.BytePool) ReaderOption {
	return func(r *Reader) { r.bufs = p }
}

// Reader turns the packed records of an inotify stream into single events.
// One read may yield many events; they are queued and handed out in order.
// A Reader is not safe for concurrent use.
type Reader struct {
	src     io.Reader
	size    int
	bufs    *pool.BytePool
	pending *queue.Queue
	err     error
	reads   uint64
}

// NewReader returns a Reader pulling from src, normally an *FD.
func NewReader(src io.Reader, opts ...ReaderOption) *Reader {
	r := &Reader{src: src, size: DefaultBufferSize, pending: queue.New()}
	for _, opt := range opts {
		opt(r)
	}
	if r.bufs == nil {
		r.bufs = pool.NewBytePool(r.size)
	}
	return r
}

// Next returns the next event, reading from the source when nothing is
// queued. Read errors are returned as is and may be retried, e.g. EAGAIN on
// a non-blocking instance. A malformed record is permanent: events decoded
// before it are still delivered, then every call returns the error.
func (r *Reader) Next() (Event, error) {
	for r.pending.Length() == 0 {
		if r.err != nil {
			return Event{}, r.err
		}
		if err := r.fill(); err != nil {
			return Event{}, err
		}
	}
	return r.pending.Remove().(Event), nil
}

// Buffered returns the number of events decoded but not yet returned.
func (r *Reader) Buffered() int { return r.pending.Length() }

// Reads returns the number of successful reads from the source.
func (r *Reader) Reads() uint64 { return r.reads }

func (r *Reader) fill() error {
	buf := r.bufs.GetBuffer()
	defer r.bufs.PutBuffer(buf)

	n, err := r.src.Read(buf)
	if n > 0 {
		r.reads++
		d := NewDecoder(buf[:n])
		for d.Next() {
			r.pending.Add(d.Event())
		}
		if derr := d.Err(); derr != nil {
			r.err = derr
		}
	}
	switch {
	case err != nil:
		return err
	case n == 0:
		return io.ErrNoProgress
	}
	return nil
}

// IsCorrupt reports whether err came from a malformed record.
func IsCorrupt(err error) bool { return errors.Is(err, api.ErrCorruptEvent) }
