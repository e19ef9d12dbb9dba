// Package container provides ordered sequence and set containers, each with a mutable and an immutable flavor.
// Mutable containers are meant to be filled by a single goroutine (e.g. a stream collector accumulator),
// immutable ones are snapshots that are safe to share.
package container

import (
	"errors"
	"fmt"
)

// ErrImmutable is returned by every mutating method of an immutable container.
var ErrImmutable = fmt.Errorf("container is immutable: %w", errors.ErrUnsupported)
