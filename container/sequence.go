package container

import (
	"encoding/json"
	"fmt"
	"iter"
	"slices"
)

// Sequence is an insertion ordered container.
type Sequence[T any] interface {
	Len() int
	// At returns the element at index i, it panics if i is out of range
	At(i int) T
	All() iter.Seq[T]
	// Slice returns a copy of the elements, in order
	Slice() []T

	// Add appends v to the end of the sequence
	Add(v T) error
	// AddAll appends all elements of other, in order
	AddAll(other Sequence[T]) error

	ImmutableClone() Sequence[T]
	MutableClone() *MutableSequence[T]

	json.Marshaler
	fmt.Stringer
}

// MutableSequence is a growable Sequence. it is not safe for concurrent mutation.
// A nil *MutableSequence reads as an empty sequence, mutating it panics.
type MutableSequence[T any] struct {
	elements []T
}

func NewMutableSequence[T any]() *MutableSequence[T] {
	return &MutableSequence[T]{}
}

// MutableSequenceOf creates a mutable sequence holding a copy of values
func MutableSequenceOf[T any](values ...T) *MutableSequence[T] {
	return &MutableSequence[T]{elements: slices.Clone(values)}
}

func (m *MutableSequence[T]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.elements)
}

func (m *MutableSequence[T]) At(i int) T {
	return m.elements[i]
}

func (m *MutableSequence[T]) All() iter.Seq[T] {
	if m == nil {
		return func(func(T) bool) {}
	}
	return slices.Values(m.elements)
}

func (m *MutableSequence[T]) Slice() []T {
	if m == nil {
		return []T{}
	}
	return slices.Clone(m.elements)
}

func (m *MutableSequence[T]) Add(v T) error {
	m.elements = append(m.elements, v)
	return nil
}

func (m *MutableSequence[T]) AddAll(other Sequence[T]) error {
	if other == nil {
		return nil
	}
	for v := range other.All() {
		m.elements = append(m.elements, v)
	}
	return nil
}

func (m *MutableSequence[T]) ImmutableClone() Sequence[T] {
	return immutableSequence[T]{elements: slices.Clone(m.elements)}
}

func (m *MutableSequence[T]) MutableClone() *MutableSequence[T] {
	return MutableSequenceOf(m.elements...)
}

func (m *MutableSequence[T]) MarshalJSON() ([]byte, error) {
	return marshalSequence(m.elements)
}

func (m *MutableSequence[T]) String() string {
	return fmt.Sprintf("%v", m.elements)
}

type immutableSequence[T any] struct {
	elements []T
}

func (s immutableSequence[T]) Len() int {
	return len(s.elements)
}

func (s immutableSequence[T]) At(i int) T {
	return s.elements[i]
}

func (s immutableSequence[T]) All() iter.Seq[T] {
	return slices.Values(s.elements)
}

func (s immutableSequence[T]) Slice() []T {
	return slices.Clone(s.elements)
}

func (s immutableSequence[T]) Add(_ T) error {
	return ErrImmutable
}

func (s immutableSequence[T]) AddAll(_ Sequence[T]) error {
	return ErrImmutable
}

// ImmutableClone returns s itself, nothing can change it
func (s immutableSequence[T]) ImmutableClone() Sequence[T] {
	return s
}

func (s immutableSequence[T]) MutableClone() *MutableSequence[T] {
	return MutableSequenceOf(s.elements...)
}

func (s immutableSequence[T]) MarshalJSON() ([]byte, error) {
	return marshalSequence(s.elements)
}

func (s immutableSequence[T]) String() string {
	return fmt.Sprintf("%v", s.elements)
}

func marshalSequence[T any](elements []T) ([]byte, error) {
	// Empty sequences are arrays, never null
	if elements == nil {
		elements = []T{}
	}
	return json.Marshal(elements)
}
