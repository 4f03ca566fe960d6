// File: pool/bytepool.go
// License: Apache-2.0
//
// Fixed-size byte buffers for kernel reads.

package pool

import "sync"

// BytePool hands out buffers of exactly one size. Buffers are stored as
// *[]byte so Put does not allocate.
type BytePool struct {
	pool sync.Pool
	size int
}

// NewBytePool returns a pool of size-byte buffers. size must be positive.
func NewBytePool(size int) *BytePool {
	if size <= 0 {
		panic("pool: buffer size must be positive")
	}
	bp := &BytePool{size: size}
	bp.pool.New = func() any {
		b := make([]byte, size)
		return &b
	}
	return bp
}

// Size returns the length of every buffer handed out by the pool.
func (b *BytePool) Size() int { return b.size }

// GetBuffer returns a buffer of length Size. Its contents are unspecified.
func (b *BytePool) GetBuffer() []byte {
	return (*b.pool.Get().(*[]byte))[:b.size]
}

// PutBuffer returns a buffer to the pool. Buffers that did not come from
// this pool (wrong capacity) are left to the GC.
func (b *BytePool) PutBuffer(buf []byte) {
	if cap(buf) != b.size {
		return
	}
	buf = buf[:b.size]
	b.pool.Put(&buf)
}
