package stream

import (
	"strings"
)

// Characteristics are hints a Collector gives the collecting engine about legal optimizations.
type Characteristics uint8

const (
	// Unordered means the collection result does not depend on the encounter order of the elements,
	// partial results may be combined in any order.
	Unordered Characteristics = 1 << iota
	// IdentityFinish means the accumulator is the result, the finisher may be skipped.
	IdentityFinish
)

// Has reports whether all the characteristics in other are set
func (c Characteristics) Has(other Characteristics) bool {
	return c&other == other
}

func (c Characteristics) String() string {
	var names []string
	if c.Has(Unordered) {
		names = append(names, "UNORDERED")
	}
	if c.Has(IdentityFinish) {
		names = append(names, "IDENTITY_FINISH")
	}
	return "[" + strings.Join(names, ",") + "]"
}

// Collector describes a mutable reduction of a stream of T into a result R, through an accumulator of type A.
// The supplier creates a fresh empty accumulator for each (partial) reduction, the accumulator folds one element in,
// the combiner merges two partial accumulators (it may mutate and return left, right is never used again)
// and the finisher converts the final accumulator to the result.
// A Collector holds no state, the same Collector can be used by any number of concurrent collections.
type Collector[T any, A any, R any] struct {
	supplier        func() A
	accumulator     func(acc A, v T)
	combiner        func(left A, right A) A
	finisher        func(acc A) R
	characteristics Characteristics
}

// NewCollector creates a Collector. finisher may be nil only when A and R are the same type,
// in which case the collector behaves as if created by NewIdentityCollector.
// It panics if supplier, accumulator or combiner is nil, or a nil finisher cannot be an identity.
// When A is an interface type the identity can't be verified here, a mismatching accumulator
// then fails the collection when the result is finished.
func NewCollector[T any, A any, R any](
	supplier func() A,
	accumulator func(acc A, v T),
	combiner func(left A, right A) A,
	finisher func(acc A) R,
	characteristics ...Characteristics,
) Collector[T, A, R] {
	if supplier == nil || accumulator == nil || combiner == nil {
		panic("collector supplier, accumulator and combiner are required")
	}
	c := Collector[T, A, R]{
		supplier:        supplier,
		accumulator:     accumulator,
		combiner:        combiner,
		finisher:        finisher,
		characteristics: mergeCharacteristics(characteristics),
	}
	if finisher == nil {
		c.finisher = func(acc A) R {
			return any(acc).(R)
		}
		c.characteristics |= IdentityFinish
		var zeroAcc A
		if _, ok := any(zeroAcc).(R); !ok && any(zeroAcc) != nil {
			panic("collector without a finisher must have the same accumulator and result types")
		}
	}
	return c
}

// NewIdentityCollector creates a Collector whose accumulator is also its result.
func NewIdentityCollector[T any, A any](
	supplier func() A,
	accumulator func(acc A, v T),
	combiner func(left A, right A) A,
	characteristics ...Characteristics,
) Collector[T, A, A] {
	return NewCollector[T, A, A](
		supplier,
		accumulator,
		combiner,
		func(acc A) A {
			return acc
		},
		append(characteristics, IdentityFinish)...,
	)
}

func (c Collector[T, A, R]) Supplier() func() A {
	return c.supplier
}

func (c Collector[T, A, R]) Accumulator() func(acc A, v T) {
	return c.accumulator
}

func (c Collector[T, A, R]) Combiner() func(left A, right A) A {
	return c.combiner
}

func (c Collector[T, A, R]) Finisher() func(acc A) R {
	return c.finisher
}

func (c Collector[T, A, R]) Characteristics() Characteristics {
	return c.characteristics
}

// finish converts the final accumulator, skipping the finisher for identity collectors
func (c Collector[T, A, R]) finish(acc A) R {
	if c.characteristics.Has(IdentityFinish) {
		if r, ok := any(acc).(R); ok {
			return r
		}
	}
	return c.finisher(acc)
}

func mergeCharacteristics(characteristics []Characteristics) Characteristics {
	var ret Characteristics
	for _, c := range characteristics {
		ret |= c
	}
	return ret
}
