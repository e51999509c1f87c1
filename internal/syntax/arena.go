// Package syntax is a minimal syntax-tree stand-in: just enough TypeScript-
// shaped node kinds to drive the fixture scenarios the checker is tested
// against. It is deliberately not a parser — callers build trees directly
// with the New* constructors, the way a test fixture or a lowerer fed by an
// external frontend would.
package syntax

import (
	"fmt"

	"fortio.org/safecast"
)

// Arena is a generic typed arena for allocating elements, addressed by a
// 1-based index so the zero value of an ID type means "absent".
type Arena[T any] struct {
	data []*T
}

// NewArena creates an Arena[T] with a capacity hint; zero is allowed.
func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{data: make([]*T, 0, capHint)}
}

// Allocate appends value and returns its 1-based index.
func (a *Arena[T]) Allocate(value T) uint32 {
	elem := new(T)
	*elem = value
	a.data = append(a.data, elem)
	return a.Len()
}

// Get returns a pointer to the element at the given 1-based index, or nil
// for index 0.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 {
		return nil
	}
	return a.data[index-1]
}

// Len returns the number of elements in the arena.
func (a *Arena[T]) Len() uint32 {
	n, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("syntax: arena len overflow: %w", err))
	}
	return n
}
