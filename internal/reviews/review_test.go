package reviews

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/reviewdeck/internal/capability"
	"github.com/rshade/reviewdeck/internal/lifecycle"
)

func TestOperations(t *testing.T) {
	set := Operations(NewStub(WithReview(123, Review{Name: "X", Rating: 3})))
	assert.Equal(t, []string{OpGetReviews}, set.Names())

	tests := []struct {
		name string
		id   any
	}{
		{"typed id", ID(123)},
		{"int id", 123},
		{"int64 id", int64(123)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := set.Call(context.Background(), OpGetReviews, tt.id)
			require.NoError(t, err)
			assert.Equal(t, Review{Name: "X", Rating: 3}, v)
		})
	}

	t.Run("invalid id", func(t *testing.T) {
		_, err := set.Call(context.Background(), OpGetReviews, "123")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid review id")
	})
}

func TestClient(t *testing.T) {
	t.Run("round trip through a restricted capability", func(t *testing.T) {
		stub := NewStub(WithFallback(StubReview()))
		restricted := capability.Restrict(Operations(stub), lifecycle.New(context.Background()), OpGetReviews)

		r, err := NewClient(restricted).GetReviews(context.Background(), 42)
		require.NoError(t, err)
		assert.Equal(t, StubReview(), r)
		assert.Equal(t, int64(1), stub.Calls())
	})

	t.Run("missing operation", func(t *testing.T) {
		_, err := NewClient(capability.Set{}).GetReviews(context.Background(), 1)
		assert.ErrorIs(t, err, capability.ErrMissingOperation)
	})

	t.Run("wrong result type", func(t *testing.T) {
		set := capability.Set{OpGetReviews: func(context.Context, any, ...any) (any, error) {
			return "not a review", nil
		}}
		_, err := NewClient(set).GetReviews(context.Background(), 1)
		assert.ErrorIs(t, err, ErrUnexpectedResult)
	})
}

func TestStub(t *testing.T) {
	t.Run("unknown id without fallback", func(t *testing.T) {
		_, err := NewStub().GetReviews(context.Background(), 9)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("per-id delay", func(t *testing.T) {
		stub := NewStub(
			WithReview(1, Review{Name: "slow"}),
			WithReview(2, Review{Name: "fast"}),
			WithDelay(1, 80*time.Millisecond),
			WithDefaultDelay(0),
		)

		start := time.Now()
		_, err := stub.GetReviews(context.Background(), 2)
		require.NoError(t, err)
		assert.Less(t, time.Since(start), 50*time.Millisecond)

		start = time.Now()
		_, err = stub.GetReviews(context.Background(), 1)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	})

	t.Run("honors cancellation", func(t *testing.T) {
		stub := NewStub(WithDefaultDelay(time.Hour), WithFallback(StubReview()))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := stub.GetReviews(ctx, 1)
		assert.True(t, errors.Is(err, context.Canceled))
	})

	t.Run("set", func(t *testing.T) {
		stub := NewStub(WithReview(3, Review{Name: "c"}))
		stub.Set(1, Review{Name: "a"})
		r, err := stub.GetReviews(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "a", r.Name)
	})
}
