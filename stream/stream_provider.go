package stream

import "context"

// Provider is what a stream source implements: the Lifecycle methods Open and Close
// plus Emit, a generator returning the next item of the stream.
type Provider[T any] interface {
	Lifecycle

	// Emit returns the next item in the stream, or an error.
	// When the stream is done, it should return io.EOF, which is never propagated to the consumer.
	// Emit is never called concurrently, even when collecting in parallel, only the accumulation is.
	Emit(ctx context.Context) (T, error)
}

// Lifecycle hooks a resource into a stream materialization, Open is called before the first Emit
// and Close after the last one (only if Open succeeded).
type Lifecycle interface {
	Open(ctx context.Context) error
	Close()
}

type funcLifecycle struct {
	openFunc  func(ctx context.Context) error
	closeFunc func()
}

// NewLifecycle creates a Lifecycle out of functions, both may be nil
func NewLifecycle(openFunc func(ctx context.Context) error, closeFunc func()) Lifecycle {
	return &funcLifecycle{openFunc: openFunc, closeFunc: closeFunc}
}

func (l *funcLifecycle) Open(ctx context.Context) error {
	if l.openFunc == nil {
		return nil
	}
	return l.openFunc(ctx)
}

func (l *funcLifecycle) Close() {
	if l.closeFunc != nil {
		l.closeFunc()
	}
}
