package attachment

import (
	"sync"
	"sync/atomic"
)

// Deferred is a value computed on first Get and memoized afterwards.
// It is safe for concurrent use.
type Deferred[T any] struct {
	fn    func() T
	value T
	once  sync.Once
	done  atomic.Bool
}

// Defer wraps fn. A nil fn yields the zero value.
func Defer[T any](fn func() T) *Deferred[T] {
	return &Deferred[T]{fn: fn}
}

// Ready wraps an already computed value.
func Ready[T any](v T) *Deferred[T] {
	return Defer(func() T { return v })
}

// Get evaluates the provider once and returns the memoized value.
func (d *Deferred[T]) Get() T {
	d.once.Do(func() {
		if d.fn != nil {
			d.value = d.fn()
		}
		d.fn = nil
		d.done.Store(true)
	})
	return d.value
}

// Evaluated reports whether the provider has run.
func (d *Deferred[T]) Evaluated() bool {
	return d.done.Load()
}
