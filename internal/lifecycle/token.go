package lifecycle

import (
	"context"
	"errors"
	"sync"
)

// ErrUnmounted marks a result that resolved after its owner was torn down.
var ErrUnmounted = errors.New("component unmounted")

// Token tracks whether a component is still attached.
type Token struct {
	mu      sync.RWMutex
	mounted bool

	ctx    context.Context
	cancel context.CancelFunc
}

// New returns a mounted token whose context derives from parent.
func New(parent context.Context) *Token {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	return &Token{
		mounted: true,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Mounted reports whether Unmount has not been called yet.
func (t *Token) Mounted() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.mounted
}

// Unmount moves the token to the unmounted state. Calls after the first are no-ops.
// It reports whether this call performed the transition.
func (t *Token) Unmount() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.mounted {
		return false
	}
	t.mounted = false
	t.cancel()
	return true
}

// Guard runs fn while holding the token mounted. Unmount blocks until fn returns,
// so no guarded body runs after Unmount has returned. fn must not call Unmount on the
// same token: it would wait on itself. Schedule the unmount on another goroutine instead.
func (t *Token) Guard(fn func()) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if !t.mounted {
		return false
	}
	fn()
	return true
}

// Context returns a context cancelled on Unmount.
func (t *Token) Context() context.Context {
	return t.ctx
}

// Done is closed once the token is unmounted or its parent context ends.
func (t *Token) Done() <-chan struct{} {
	return t.ctx.Done()
}

// Err returns ErrUnmounted after Unmount and nil before it.
func (t *Token) Err() error {
	if t.Mounted() {
		return nil
	}
	return ErrUnmounted
}
