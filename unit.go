package unitreg

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
)

// lazyUnit is the holder for one named, lazily-constructed resource.
//
// The value pointer is published atomically so the unlocked fast path in get
// never observes a partially constructed resource. Construction and close
// are serialized by mu; a close that races with an in-flight construction
// waits for it and then tears the fresh value down, so no resource is leaked.
type lazyUnit[T any] struct {
	name string
	lc   Lifecycle[T]

	mu     sync.Mutex
	value  atomic.Pointer[T]
	closed atomic.Bool
}

func newLazyUnit[T any](name string, lc Lifecycle[T]) *lazyUnit[T] {
	return &lazyUnit[T]{name: name, lc: lc}
}

// get returns the constructed resource, constructing it on first call.
//
// A failed construction leaves the unit unconstructed; a later call will
// attempt construction again. Whether a repeated attempt is safe is the
// factory's concern, construction failures are normally fatal at process
// level anyway.
func (u *lazyUnit[T]) get(ctx context.Context) (T, error) {
	if v := u.value.Load(); v != nil {
		return *v, nil
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	var zero T
	if u.closed.Load() {
		return zero, &UnitClosedError{Name: u.name}
	}
	if v := u.value.Load(); v != nil {
		return *v, nil
	}

	v, err := u.lc.Construct(ctx, u.name)
	if err != nil {
		return zero, &ConstructError{Name: u.name, Err: err}
	}
	u.value.Store(&v)
	return v, nil
}

// close marks the unit closed and tears down the constructed resource, if
// any. It is idempotent; the second and later calls are no-ops. A closed
// unit can never be resurrected.
func (u *lazyUnit[T]) close(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.closed.Store(true)
	v := u.value.Swap(nil)
	if v == nil {
		return nil
	}
	if err := u.teardown(ctx, *v); err != nil {
		return &TeardownError{Name: u.name, Err: err}
	}
	return nil
}

func (u *lazyUnit[T]) teardown(ctx context.Context, v T) error {
	if u.lc.Teardown != nil {
		return u.lc.Teardown(ctx, v)
	}
	if closer, ok := any(v).(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// started reports whether the unit holds a constructed resource and has not
// been closed. Intended for shutdown-time branching and introspection, not
// for correctness decisions.
func (u *lazyUnit[T]) started() bool {
	return !u.closed.Load() && u.value.Load() != nil
}

func (u *lazyUnit[T]) state() UnitState {
	switch {
	case u.closed.Load():
		return StateClosed
	case u.value.Load() != nil:
		return StateStarted
	default:
		return StateUnstarted
	}
}
