package capability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/reviewdeck/internal/lifecycle"
)

func TestRestrict_Names(t *testing.T) {
	set := Set{"getReviews": echo, "deleteReview": echo}
	r := Restrict(set, nil, "getReviews", "getReviews")

	assert.Equal(t, []string{"getReviews"}, r.Names())

	_, ok := r.Lookup("getReviews")
	assert.True(t, ok)
	_, ok = r.Lookup("deleteReview")
	assert.False(t, ok)
}

func TestRestricted_Call(t *testing.T) {
	set := Set{"getReviews": echo, "deleteReview": echo}

	t.Run("exposed operation", func(t *testing.T) {
		r := Restrict(set, lifecycle.New(context.Background()), "getReviews")
		v, err := r.Call(context.Background(), "getReviews", 123)
		require.NoError(t, err)
		assert.Equal(t, 123, v)
	})

	t.Run("operation outside the restricted set", func(t *testing.T) {
		r := Restrict(set, nil, "getReviews")
		_, err := r.Call(context.Background(), "deleteReview", 123)
		assert.ErrorIs(t, err, ErrMissingOperation)
	})

	t.Run("missing on the capability fails at call time", func(t *testing.T) {
		r := Restrict(set, nil, "getReview")
		_, err := r.Call(context.Background(), "getReview", 123)
		assert.ErrorIs(t, err, ErrMissingOperation)
	})

	t.Run("nil capability", func(t *testing.T) {
		r := Restrict(nil, nil, "getReviews")
		_, err := r.Call(context.Background(), "getReviews", 1)
		assert.ErrorIs(t, err, ErrMissingOperation)
		_, ok := r.Lookup("getReviews")
		assert.False(t, ok)
	})

	t.Run("call after teardown", func(t *testing.T) {
		tok := lifecycle.New(context.Background())
		tok.Unmount()
		calls := 0
		r := Restrict(Set{"getReviews": func(context.Context, any, ...any) (any, error) {
			calls++
			return nil, nil
		}}, tok, "getReviews")

		_, err := r.Call(context.Background(), "getReviews", 1)
		assert.ErrorIs(t, err, lifecycle.ErrUnmounted)
		assert.Equal(t, 0, calls)
	})

	t.Run("resolution after teardown is suppressed", func(t *testing.T) {
		tok := lifecycle.New(context.Background())
		started := make(chan struct{})
		release := make(chan struct{})
		slow := Set{"getReviews": func(context.Context, any, ...any) (any, error) {
			close(started)
			<-release
			return "late", nil
		}}
		r := Restrict(slow, tok, "getReviews")

		errs := make(chan error, 1)
		go func() {
			_, err := r.Call(context.Background(), "getReviews", 1)
			errs <- err
		}()

		<-started
		tok.Unmount()
		close(release)
		assert.ErrorIs(t, <-errs, lifecycle.ErrUnmounted)
	})

	t.Run("teardown cancels the operation context", func(t *testing.T) {
		tok := lifecycle.New(context.Background())
		started := make(chan struct{})
		r := Restrict(Set{"getReviews": func(ctx context.Context, _ any, _ ...any) (any, error) {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		}}, tok, "getReviews")

		errs := make(chan error, 1)
		go func() {
			_, err := r.Call(context.Background(), "getReviews", 1)
			errs <- err
		}()

		<-started
		tok.Unmount()
		select {
		case err := <-errs:
			assert.ErrorIs(t, err, lifecycle.ErrUnmounted)
		case <-time.After(time.Second):
			t.Fatal("operation did not observe teardown")
		}
	})
}

func TestRestricted_Go(t *testing.T) {
	t.Run("delivers while mounted", func(t *testing.T) {
		r := Restrict(Set{"getReviews": echo}, lifecycle.New(context.Background()), "getReviews")
		got := make(chan any, 1)
		r.Go(context.Background(), "getReviews", 5, func(v any, err error) {
			assert.NoError(t, err)
			got <- v
		})
		select {
		case v := <-got:
			assert.Equal(t, 5, v)
		case <-time.After(time.Second):
			t.Fatal("callback not invoked")
		}
	})

	t.Run("never delivers after teardown", func(t *testing.T) {
		tok := lifecycle.New(context.Background())
		started := make(chan struct{})
		release := make(chan struct{})
		finished := make(chan struct{})
		r := Restrict(Set{"getReviews": func(context.Context, any, ...any) (any, error) {
			close(started)
			<-release
			defer close(finished)
			return "late", nil
		}}, tok, "getReviews")

		called := make(chan struct{}, 1)
		r.Go(context.Background(), "getReviews", 1, func(any, error) { called <- struct{}{} })

		<-started
		tok.Unmount()
		close(release)
		<-finished

		select {
		case <-called:
			t.Fatal("callback invoked after teardown")
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("callback may schedule its owner's teardown", func(t *testing.T) {
		tok := lifecycle.New(context.Background())
		r := Restrict(Set{"getReviews": echo}, tok, "getReviews")

		delivered := make(chan struct{})
		r.Go(context.Background(), "getReviews", 1, func(any, error) {
			go tok.Unmount()
			close(delivered)
		})

		select {
		case <-delivered:
		case <-time.After(time.Second):
			t.Fatal("callback not invoked")
		}
		select {
		case <-tok.Done():
		case <-time.After(time.Second):
			t.Fatal("owner not torn down after the callback returned")
		}
		assert.False(t, tok.Mounted())

		called := make(chan struct{}, 1)
		r.Go(context.Background(), "getReviews", 2, func(any, error) { called <- struct{}{} })
		select {
		case <-called:
			t.Fatal("callback invoked after teardown")
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("reports missing operation", func(t *testing.T) {
		r := Restrict(Set{}, lifecycle.New(context.Background()), "getReviews")
		errs := make(chan error, 1)
		r.Go(context.Background(), "getReviews", 1, func(_ any, err error) { errs <- err })
		assert.ErrorIs(t, <-errs, ErrMissingOperation)
	})
}
