package wfl

import "sync/atomic"

// Shared is a reference-counted handle. The holder that drops the last
// reference runs the release hook; the value itself stays readable.
type Shared[T any] struct {
	ref *sharedRef[T]
}

type sharedRef[T any] struct {
	value   T
	refs    atomic.Int64
	release func(T)
}

// Share creates a handle holding one reference to value.
func Share[T any](value T, release func(T)) Shared[T] {
	ref := &sharedRef[T]{value: value, release: release}
	ref.refs.Store(1)
	return Shared[T]{ref: ref}
}

func (s Shared[T]) Valid() bool { return s.ref != nil }

func (s Shared[T]) Value() T {
	if s.ref == nil {
		var zero T
		return zero
	}
	return s.ref.value
}

// Retain adds a reference and returns the same handle for the new holder.
func (s Shared[T]) Retain() Shared[T] {
	if s.ref != nil {
		s.ref.refs.Add(1)
	}
	return s
}

// Release drops one reference and reports whether it was the last one.
func (s Shared[T]) Release() bool {
	if s.ref == nil {
		return false
	}
	for {
		n := s.ref.refs.Load()
		if n <= 0 {
			return false
		}
		if s.ref.refs.CompareAndSwap(n, n-1) {
			if n == 1 {
				if s.ref.release != nil {
					s.ref.release(s.ref.value)
				}
				return true
			}
			return false
		}
	}
}

func (s Shared[T]) Refs() int64 {
	if s.ref == nil {
		return 0
	}
	return s.ref.refs.Load()
}
