package unitreg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Registry owns a fixed set of named lazy units plus the names that were
// deactivated through configuration. It is built once; the set of units
// never changes afterwards except for the wholesale clearing at Shutdown.
type Registry[T any] struct {
	logger *slog.Logger

	mu          sync.RWMutex
	units       map[string]*lazyUnit[T]
	deactivated map[string]struct{}

	requestScopedSession bool
}

// Option modifies a Registry during construction.
type Option[T any] func(*Registry[T])

// WithLogger sets the logger used for deactivation and shutdown reporting.
// The default discards everything.
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(r *Registry[T]) { r.logger = logger }
}

// New builds a registry from descriptors and runtime configuration.
//
// Every descriptor name ends up in exactly one of the two partitions: units
// configured active get a fresh lazy unit, units with an explicit
// active=false in cfg are recorded as deactivated and never get one.
func New[T any](lc Lifecycle[T], descriptors []Descriptor, cfg Config, opts ...Option[T]) (*Registry[T], error) {
	if lc.Construct == nil {
		return nil, fmt.Errorf("new registry: construct func is nil")
	}

	r := &Registry[T]{
		logger:               slog.New(slog.DiscardHandler),
		units:                make(map[string]*lazyUnit[T], len(descriptors)),
		deactivated:          make(map[string]struct{}),
		requestScopedSession: cfg.RequestScopedSession,
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, d := range descriptors {
		if d.Name == "" {
			return nil, fmt.Errorf("new registry: descriptor name is empty")
		}
		if _, exists := r.units[d.Name]; exists {
			return nil, &DuplicateUnitError{Name: d.Name}
		}
		if _, exists := r.deactivated[d.Name]; exists {
			return nil, &DuplicateUnitError{Name: d.Name}
		}

		if !cfg.active(d.configKey()) {
			r.logger.Info("unit deactivated through configuration", "unit", d.Name)
			r.deactivated[d.Name] = struct{}{}
			continue
		}
		r.units[d.Name] = newLazyUnit(d.Name, lc)
	}
	return r, nil
}

// StartAll eagerly constructs every registered unit in parallel and blocks
// until all of them report.
//
// On the first construction failure the shared context is canceled so
// factories that honor it exit early; units that already finished stay
// constructed, nothing is rolled back. The failure is returned wrapped in
// *StartError. Cancellation of the caller's context surfaces as
// *StartInterruptedError instead.
func (r *Registry[T]) StartAll(ctx context.Context) error {
	units := r.snapshotUnits()

	// A single unit constructs inline on the caller, spawning is pointless.
	if len(units) == 1 {
		for _, u := range units {
			if _, err := u.get(ctx); err != nil {
				return startFailure(ctx, err)
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, u := range units {
		g.Go(func() error {
			_, err := u.get(gctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return startFailure(ctx, err)
	}
	return nil
}

func startFailure(ctx context.Context, err error) error {
	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return &StartInterruptedError{Err: err}
	}
	return &StartError{Err: err}
}

// Get returns the resource of the named unit, constructing it on first
// access. The empty name is a shorthand for the sole registered unit and
// fails with *AmbiguousUnitError when the registry holds zero or more than
// one unit.
//
// Unknown names fail with *UnitNotFoundError; names that were deactivated
// through configuration fail with the more specific *UnitDeactivatedError.
func (r *Registry[T]) Get(ctx context.Context, name string) (T, error) {
	var zero T

	r.mu.RLock()
	var u *lazyUnit[T]
	if name == "" {
		if len(r.units) != 1 {
			registered := len(r.units)
			r.mu.RUnlock()
			return zero, &AmbiguousUnitError{Registered: registered}
		}
		for _, sole := range r.units {
			u = sole
		}
	} else {
		u = r.units[name]
	}
	if u == nil {
		_, deactivated := r.deactivated[name]
		r.mu.RUnlock()
		if deactivated {
			return zero, &UnitDeactivatedError{Name: name}
		}
		return zero, &UnitNotFoundError{Name: name}
	}
	r.mu.RUnlock()

	return u.get(ctx)
}

// ActiveNames returns the names of all registered, active units in
// lexicographic order.
func (r *Registry[T]) ActiveNames() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.units))
	for name := range r.units {
		names = append(names, name)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}

// DeactivatedNames returns the names of all units that were deactivated
// through configuration, in lexicographic order.
func (r *Registry[T]) DeactivatedNames() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.deactivated))
	for name := range r.deactivated {
		names = append(names, name)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}

// RequestScopedSession reports whether request-scoped sessions were enabled
// in the runtime configuration.
func (r *Registry[T]) RequestScopedSession() bool {
	return r.requestScopedSession
}

// Shutdown closes every registered unit and empties the registry, so later
// lookups fail with *UnitNotFoundError. Each unit is closed independently;
// a teardown failure is logged and collected but never stops the remaining
// units from being attempted. The collected failures are joined into the
// returned error.
func (r *Registry[T]) Shutdown(ctx context.Context) error {
	r.logger.Debug("shutting down units")

	r.mu.Lock()
	units := r.units
	r.units = make(map[string]*lazyUnit[T])
	r.mu.Unlock()

	var errs []error
	for name, u := range units {
		if u.started() {
			r.logger.Debug("closing unit", "unit", name)
		} else {
			r.logger.Debug("closing unit that never started", "unit", name)
		}
		if err := u.close(ctx); err != nil {
			r.logger.Warn("unable to close unit", "unit", name, "error", err)
			errs = append(errs, err)
		}
	}

	r.logger.Debug("finished shutting down units")
	return errors.Join(errs...)
}

func (r *Registry[T]) snapshotUnits() map[string]*lazyUnit[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	units := make(map[string]*lazyUnit[T], len(r.units))
	for name, u := range r.units {
		units[name] = u
	}
	return units
}
