// File: pool/objpool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import "sync"

// ObjectPool recycles values of a single type.
type ObjectPool[T any] interface {
	Get() T
	Put(T)
}

// typedPool adapts sync.Pool to a typed surface. It backs BytePool's
// slice recycling and is usable directly for scratch-object classes.
type typedPool[T any] struct {
	inner sync.Pool
}

// NewObjectPool creates a pool seeded by newFn, invoked whenever the
// pool is empty.
func NewObjectPool[T any](newFn func() T) ObjectPool[T] {
	p := &typedPool[T]{}
	p.inner.New = func() any { return newFn() }
	return p
}

func (p *typedPool[T]) Get() T  { return p.inner.Get().(T) }
func (p *typedPool[T]) Put(v T) { p.inner.Put(v) }
