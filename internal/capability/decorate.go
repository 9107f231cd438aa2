package capability

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// Key renders an identifier and arguments as a cache key.
func Key(id any, args ...any) string {
	return fmt.Sprintf("%#v|%#v", id, args)
}

// Shared collapses concurrent calls with the same key into one call of op.
// The shared call is detached from the callers' cancellation: a caller whose ctx ends
// returns early while the call carries on for the others.
func Shared(op Operation) Operation {
	var group singleflight.Group
	return func(ctx context.Context, id any, args ...any) (any, error) {
		ch := group.DoChan(Key(id, args...), func() (any, error) {
			return op(context.WithoutCancel(ctx), id, args...)
		})
		select {
		case res := <-ch:
			return res.Val, res.Err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Cached memoizes successful results of op for ttl. Failures are never cached.
func Cached(op Operation, ttl time.Duration) Operation {
	store := gocache.New(ttl, 2*ttl)
	return func(ctx context.Context, id any, args ...any) (any, error) {
		key := Key(id, args...)
		if v, ok := store.Get(key); ok {
			return v, nil
		}
		v, err := op(ctx, id, args...)
		if err != nil {
			return nil, err
		}
		store.SetDefault(key, v)
		return v, nil
	}
}

// Decorate returns a copy of s with fn applied to every operation.
func Decorate(s Set, fn func(Operation) Operation) Set {
	out := make(Set, len(s))
	for name, op := range s {
		out[name] = fn(op)
	}
	return out
}
