package container

import (
	"encoding/json"
	"fmt"
	"iter"

	mapset "github.com/deckarep/golang-set/v2"
)

// Set is an unordered container of distinct elements, membership is decided by Go equality.
type Set[T comparable] interface {
	Len() int
	Contains(v T) bool
	// All iterates the elements in no particular order
	All() iter.Seq[T]
	// Slice returns the elements in no particular order
	Slice() []T
	Equal(other Set[T]) bool

	// Add inserts v, adding an element that is already present is a no-op
	Add(v T) error
	AddAll(other Set[T]) error
	Remove(v T) error

	ImmutableClone() Set[T]
	MutableClone() *MutableSet[T]

	json.Marshaler
	fmt.Stringer
}

// MutableSet is a Set that can be modified. it is not safe for concurrent mutation.
// A nil *MutableSet reads as an empty set, mutating it panics.
type MutableSet[T comparable] struct {
	set mapset.Set[T]
}

func NewMutableSet[T comparable]() *MutableSet[T] {
	return &MutableSet[T]{set: mapset.NewThreadUnsafeSet[T]()}
}

// MutableSetOf creates a mutable set holding the distinct values
func MutableSetOf[T comparable](values ...T) *MutableSet[T] {
	return &MutableSet[T]{set: mapset.NewThreadUnsafeSet[T](values...)}
}

func (m *MutableSet[T]) Len() int {
	if m == nil {
		return 0
	}
	return m.set.Cardinality()
}

func (m *MutableSet[T]) Contains(v T) bool {
	if m == nil {
		return false
	}
	return m.set.ContainsOne(v)
}

func (m *MutableSet[T]) All() iter.Seq[T] {
	if m == nil {
		return func(func(T) bool) {}
	}
	return allOf(m.set)
}

func (m *MutableSet[T]) Slice() []T {
	if m == nil {
		return []T{}
	}
	return m.set.ToSlice()
}

func (m *MutableSet[T]) Equal(other Set[T]) bool {
	return equalSets(m, other)
}

func (m *MutableSet[T]) Add(v T) error {
	m.set.Add(v)
	return nil
}

func (m *MutableSet[T]) AddAll(other Set[T]) error {
	if other == nil {
		return nil
	}
	for v := range other.All() {
		m.set.Add(v)
	}
	return nil
}

func (m *MutableSet[T]) Remove(v T) error {
	m.set.Remove(v)
	return nil
}

func (m *MutableSet[T]) ImmutableClone() Set[T] {
	return immutableSet[T]{set: m.set.Clone()}
}

func (m *MutableSet[T]) MutableClone() *MutableSet[T] {
	return &MutableSet[T]{set: m.set.Clone()}
}

func (m *MutableSet[T]) MarshalJSON() ([]byte, error) {
	return marshalSet(m.set)
}

func (m *MutableSet[T]) String() string {
	return m.set.String()
}

type immutableSet[T comparable] struct {
	set mapset.Set[T]
}

func (s immutableSet[T]) Len() int {
	return s.set.Cardinality()
}

func (s immutableSet[T]) Contains(v T) bool {
	return s.set.ContainsOne(v)
}

func (s immutableSet[T]) All() iter.Seq[T] {
	return allOf(s.set)
}

func (s immutableSet[T]) Slice() []T {
	return s.set.ToSlice()
}

func (s immutableSet[T]) Equal(other Set[T]) bool {
	return equalSets(s, other)
}

func (s immutableSet[T]) Add(_ T) error {
	return ErrImmutable
}

func (s immutableSet[T]) AddAll(_ Set[T]) error {
	return ErrImmutable
}

func (s immutableSet[T]) Remove(_ T) error {
	return ErrImmutable
}

func (s immutableSet[T]) ImmutableClone() Set[T] {
	return s
}

func (s immutableSet[T]) MutableClone() *MutableSet[T] {
	return &MutableSet[T]{set: s.set.Clone()}
}

func (s immutableSet[T]) MarshalJSON() ([]byte, error) {
	return marshalSet(s.set)
}

func (s immutableSet[T]) String() string {
	return s.set.String()
}

func allOf[T comparable](set mapset.Set[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		// Each stops when the callback returns true
		set.Each(func(v T) bool {
			return !yield(v)
		})
	}
}

func equalSets[T comparable](one Set[T], other Set[T]) bool {
	if other == nil || one.Len() != other.Len() {
		return false
	}
	for v := range one.All() {
		if !other.Contains(v) {
			return false
		}
	}
	return true
}

func marshalSet[T comparable](set mapset.Set[T]) ([]byte, error) {
	elements := set.ToSlice()
	if elements == nil {
		elements = []T{}
	}
	return json.Marshal(elements)
}
