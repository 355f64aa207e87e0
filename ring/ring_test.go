// File: ring/ring_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package ring

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuffer_PutGet(t *testing.T) {
	b := New(make([]byte, 8))

	require.Equal(t, 8, b.Cap())
	require.True(t, b.Empty())
	require.False(t, b.Full())

	n := b.Put([]byte("abc"))
	assert.Equal(t, 3, n)
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, 5, b.Space())

	out := make([]byte, 3)
	n = b.Get(out)
	assert.Equal(t, 3, n)
	assert.Equal(t, "abc", string(out))
	assert.True(t, b.Empty())
}

func TestBuffer_FullFlag(t *testing.T) {
	b := New(make([]byte, 4))

	n := b.Put([]byte("wxyz"))
	require.Equal(t, 4, n)
	assert.True(t, b.Full())
	assert.Equal(t, 4, b.Len())
	assert.Equal(t, 0, b.Space())

	// Head and tail coincide when full; Put must not accept more.
	assert.Equal(t, 0, b.Put([]byte("q")))

	out := make([]byte, 1)
	require.Equal(t, 1, b.Get(out))
	assert.False(t, b.Full())
	assert.Equal(t, 3, b.Len())
}

func TestBuffer_WrapAround(t *testing.T) {
	b := New(make([]byte, 8))

	require.Equal(t, 8, b.Put([]byte("ABCDEFGH")))

	out := make([]byte, 3)
	require.Equal(t, 3, b.Get(out))
	require.Equal(t, "ABC", string(out))

	// "XY" wraps: X lands at index 0 after the tail hits the boundary.
	require.Equal(t, 2, b.Put([]byte("XY")))
	assert.Equal(t, 7, b.Len())

	rest := make([]byte, 7)
	require.Equal(t, 7, b.Get(rest))
	assert.Equal(t, "DEFGHXY", string(rest))
	assert.True(t, b.Empty())
}

func TestBuffer_PartialPut(t *testing.T) {
	b := New(make([]byte, 4))

	require.Equal(t, 3, b.Put([]byte("abc")))
	// Only one byte of space left: partial put, not an error.
	assert.Equal(t, 1, b.Put([]byte("defg")))
	assert.True(t, b.Full())

	out := make([]byte, 8)
	assert.Equal(t, 4, b.Get(out))
	assert.Equal(t, "abcd", string(out[:4]))
}

func TestBuffer_Reset(t *testing.T) {
	b := New(make([]byte, 8))
	b.Put([]byte("junk"))

	b.Reset()
	assert.True(t, b.Empty())
	assert.Equal(t, 8, b.Space())

	// Post-reset writes start at position zero again.
	require.Equal(t, 2, b.Put([]byte("ok")))
	out := make([]byte, 2)
	require.Equal(t, 2, b.Get(out))
	assert.Equal(t, "ok", string(out))
}

func TestBuffer_ManyRevolutions(t *testing.T) {
	b := New(make([]byte, 8))

	var wrote, read bytes.Buffer
	chunk := []byte("0123456789")
	out := make([]byte, 5)
	for i := 0; i < 100; i++ {
		n := b.Put(chunk[i%7 : i%7+3])
		wrote.Write(chunk[i%7 : i%7+n])
		m := b.Get(out)
		read.Write(out[:m])
	}
	m := b.Get(out)
	read.Write(out[:m])

	assert.Equal(t, wrote.String(), read.String())
	assert.True(t, b.Empty())
}

func TestBuffer_ZeroValueUninitialized(t *testing.T) {
	var b Buffer
	assert.False(t, b.Initialized())
	assert.Equal(t, 0, b.Cap())
	assert.Equal(t, 0, b.Put([]byte("x")))
}
