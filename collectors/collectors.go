// Package collectors provides stream collectors that deposit the elements of a stream into the
// sequence and set containers of the container package.
//
// Example:
//
//	set, err := stream.CollectWith(ctx, s, collectors.ToSet[int]())
package collectors

import (
	"github.com/shpandrak/shpancollect/container"
	"github.com/shpandrak/shpancollect/stream"
)

// ToMutableSet collects the elements into a mutable set, duplicates collapse.
// The result is owned by the caller and can be modified after the collection is done.
func ToMutableSet[T comparable]() stream.Collector[T, *container.MutableSet[T], *container.MutableSet[T]] {
	return stream.NewIdentityCollector[T](
		container.NewMutableSet[T],
		addToSet[T],
		combineSets[T],
		stream.Unordered,
	)
}

// ToSet collects the elements into an immutable set, mutating it fails with container.ErrImmutable.
func ToSet[T comparable]() stream.Collector[T, *container.MutableSet[T], container.Set[T]] {
	return stream.NewCollector[T](
		container.NewMutableSet[T],
		addToSet[T],
		combineSets[T],
		func(acc *container.MutableSet[T]) container.Set[T] {
			return acc.ImmutableClone()
		},
		stream.Unordered,
	)
}

// ToMutableSequence collects the elements into a mutable sequence, in encounter order.
func ToMutableSequence[T any]() stream.Collector[T, *container.MutableSequence[T], *container.MutableSequence[T]] {
	return stream.NewIdentityCollector[T](
		container.NewMutableSequence[T],
		appendToSequence[T],
		combineSequences[T],
	)
}

// ToSequence collects the elements into an immutable sequence, in encounter order.
// Mutating the result fails with container.ErrImmutable.
func ToSequence[T any]() stream.Collector[T, *container.MutableSequence[T], container.Sequence[T]] {
	return stream.NewCollector[T](
		container.NewMutableSequence[T],
		appendToSequence[T],
		combineSequences[T],
		func(acc *container.MutableSequence[T]) container.Sequence[T] {
			return acc.ImmutableClone()
		},
	)
}

// addToSet inserts v into the accumulator
func addToSet[T comparable](acc *container.MutableSet[T], v T) {
	_ = acc.Add(v)
}

// combineSets merges right into left and returns left
func combineSets[T comparable](left *container.MutableSet[T], right *container.MutableSet[T]) *container.MutableSet[T] {
	_ = left.AddAll(right)
	return left
}

// appendToSequence appends v at the end of the accumulator
func appendToSequence[T any](acc *container.MutableSequence[T], v T) {
	_ = acc.Add(v)
}

// combineSequences appends the elements of right after those of left and returns left
func combineSequences[T any](left *container.MutableSequence[T], right *container.MutableSequence[T]) *container.MutableSequence[T] {
	_ = left.AddAll(right)
	return left
}
