// File: ring/ring.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fixed-capacity byte ring over caller-supplied storage. The ring never
// allocates or frees; the caller owns the backing slice for the ring's
// lifetime. Not safe for concurrent use on its own: callers serialize
// access externally (the pipe holds its lock across every call).

package ring

// Buffer is a circular byte buffer with head/tail bookkeeping.
// head == tail is ambiguous at full occupancy, so an explicit full flag
// disambiguates it.
type Buffer struct {
	buf  []byte
	head int // index of the oldest unread byte
	tail int // index of the next write position
	full bool
}

// New wraps the given storage in a ready-to-use Buffer.
func New(storage []byte) *Buffer {
	b := &Buffer{}
	b.Init(storage)
	return b
}

// Init adopts storage and zeroes all bookkeeping. The previous contents
// of storage are ignored.
func (b *Buffer) Init(storage []byte) {
	b.buf = storage
	b.head, b.tail, b.full = 0, 0, false
}

// Initialized reports whether the buffer has been given storage.
func (b *Buffer) Initialized() bool { return b.buf != nil }

// Cap returns the fixed capacity in bytes.
func (b *Buffer) Cap() int { return len(b.buf) }

// Len returns the current utilization: buffered, unread bytes.
func (b *Buffer) Len() int {
	if b.full {
		return len(b.buf)
	}
	if b.tail >= b.head {
		return b.tail - b.head
	}
	return len(b.buf) - b.head + b.tail
}

// Space returns the number of bytes that can be written without wrapping
// past unread data.
func (b *Buffer) Space() int { return b.Cap() - b.Len() }

// Empty reports zero utilization.
func (b *Buffer) Empty() bool { return b.Len() == 0 }

// Full reports capacity utilization. A zero-capacity buffer is
// permanently full.
func (b *Buffer) Full() bool { return b.full || len(b.buf) == 0 }

// Put copies min(len(p), Space()) bytes into the ring in at most two
// chunks across the wrap boundary and returns the count. Partial puts
// are the norm, not an error.
func (b *Buffer) Put(p []byte) int {
	n := len(p)
	if sp := b.Space(); n > sp {
		n = sp
	}
	if n == 0 {
		return 0
	}
	first := len(b.buf) - b.tail
	if first > n {
		first = n
	}
	copy(b.buf[b.tail:], p[:first])
	copy(b.buf, p[first:n])
	b.tail = (b.tail + n) % len(b.buf)
	// head only advances on Get, so tail catching head means full.
	if b.tail == b.head {
		b.full = true
	}
	return n
}

// Get copies min(len(p), Len()) bytes out of the ring in at most two
// chunks and returns the count.
func (b *Buffer) Get(p []byte) int {
	n := len(p)
	if l := b.Len(); n > l {
		n = l
	}
	if n == 0 {
		return 0
	}
	first := len(b.buf) - b.head
	if first > n {
		first = n
	}
	copy(p[:first], b.buf[b.head:b.head+first])
	copy(p[first:n], b.buf)
	b.head = (b.head + n) % len(b.buf)
	b.full = false
	return n
}

// Reset discards all buffered content. The storage is retained.
func (b *Buffer) Reset() {
	b.head, b.tail, b.full = 0, 0, false
}
