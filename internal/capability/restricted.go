package capability

import (
	"context"
	"errors"
	"slices"

	"github.com/rshade/reviewdeck/internal/lifecycle"
)

// Restricted is a view of a Capability limited to a fixed set of operation names and
// bound to the lifecycle token of the component that owns it.
type Restricted struct {
	base    Capability
	token   *lifecycle.Token
	names   []string
	allowed map[string]struct{}
}

// Restrict narrows c to names. Names are checked lazily: asking for an operation c does not
// provide only fails when that operation is called. A nil token disables the lifecycle guard.
func Restrict(c Capability, token *lifecycle.Token, names ...string) *Restricted {
	allowed := make(map[string]struct{}, len(names))
	for _, name := range names {
		allowed[name] = struct{}{}
	}
	sorted := slices.Clone(names)
	slices.Sort(sorted)
	return &Restricted{
		base:    c,
		token:   token,
		names:   slices.Compact(sorted),
		allowed: allowed,
	}
}

// Names returns the exposed operation names.
func (r *Restricted) Names() []string {
	return slices.Clone(r.names)
}

// Lookup implements Capability. The returned operation is guarded like Call.
func (r *Restricted) Lookup(name string) (Operation, bool) {
	if _, ok := r.allowed[name]; !ok {
		return nil, false
	}
	if r.base == nil {
		return nil, false
	}
	if _, ok := r.base.Lookup(name); !ok {
		return nil, false
	}
	return func(ctx context.Context, id any, args ...any) (any, error) {
		return r.Call(ctx, name, id, args...)
	}, true
}

// Call invokes name on the underlying capability. It returns a *MissingOperationError when
// name is outside the restricted set or absent from the capability, and
// lifecycle.ErrUnmounted when the owner was torn down before the result arrived.
func (r *Restricted) Call(ctx context.Context, name string, id any, args ...any) (any, error) {
	if _, ok := r.allowed[name]; !ok {
		return nil, &MissingOperationError{Name: name}
	}
	if r.token != nil {
		if err := r.token.Err(); err != nil {
			return nil, err
		}
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if r.token != nil {
		stop := context.AfterFunc(r.token.Context(), cancel)
		defer stop()
	}

	v, err := invoke(ctx, r.base, name, id, args...)
	if r.token != nil && !r.token.Mounted() {
		return nil, lifecycle.ErrUnmounted
	}
	return v, err
}

// Go runs Call on its own goroutine and hands the outcome to done, unless the owner has
// been torn down by then, in which case done is never called. done runs under the owner's
// lifecycle guard, so it must not tear the owner down synchronously; it may start the
// teardown on another goroutine.
func (r *Restricted) Go(ctx context.Context, name string, id any, done func(any, error), args ...any) {
	go func() {
		v, err := r.Call(ctx, name, id, args...)
		if errors.Is(err, lifecycle.ErrUnmounted) {
			return
		}
		if r.token == nil {
			done(v, err)
			return
		}
		r.token.Guard(func() { done(v, err) })
	}()
}
