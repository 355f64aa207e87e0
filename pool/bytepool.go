// File: pool/bytepool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"sync/atomic"
)

// BytePool recycles fixed-size byte slices through a typed ObjectPool.
// All slices handed out have length equal to the pool's class size.
type BytePool struct {
	size int
	pool ObjectPool[[]byte]

	// statistics
	gets int64
	news int64
}

// NewBytePool creates a pool for slices of the given size.
func NewBytePool(size int) *BytePool {
	b := &BytePool{size: size}
	b.pool = NewObjectPool(func() []byte {
		atomic.AddInt64(&b.news, 1)
		return make([]byte, size)
	})
	return b
}

// Size returns the slice class size.
func (b *BytePool) Size() int { return b.size }

// GetBuffer returns a buffer from the pool.
func (b *BytePool) GetBuffer() []byte {
	atomic.AddInt64(&b.gets, 1)
	return b.pool.Get()
}

// PutBuffer returns a buffer to the pool. Foreign-sized slices are
// discarded so a later GetBuffer never shrinks.
func (b *BytePool) PutBuffer(buf []byte) {
	if cap(buf) < b.size {
		return
	}
	b.pool.Put(buf[:b.size])
}

// Stats reports pool hit accounting.
func (b *BytePool) Stats() map[string]int64 {
	gets := atomic.LoadInt64(&b.gets)
	news := atomic.LoadInt64(&b.news)
	return map[string]int64{
		"gets":   gets,
		"allocs": news,
		"reuses": gets - news,
	}
}
