package reviews

import (
	"context"
	"errors"
	"fmt"

	"github.com/rshade/reviewdeck/internal/capability"
)

// OpGetReviews is the capability operation name for fetching a review.
const OpGetReviews = "getReviews"

// MaxRating is the number of stars a review is rated out of.
const MaxRating = 5

// ErrNotFound is returned for an id with no review.
var ErrNotFound = errors.New("review not found")

// ErrUnexpectedResult is returned when a capability answers getReviews with something
// other than a Review.
var ErrUnexpectedResult = errors.New("unexpected getReviews result")

// ID identifies a review.
type ID int

// Review is a reviewed item and its star rating.
type Review struct {
	Name   string `yaml:"name" json:"name"`
	Rating int    `yaml:"rating" json:"rating"`
}

// Getter fetches reviews.
type Getter interface {
	GetReviews(ctx context.Context, id ID) (Review, error)
}

// Operations exposes g as a capability.Set with a single getReviews operation.
func Operations(g Getter) capability.Set {
	return capability.Set{
		OpGetReviews: func(ctx context.Context, id any, _ ...any) (any, error) {
			rid, err := toID(id)
			if err != nil {
				return nil, err
			}
			return g.GetReviews(ctx, rid)
		},
	}
}

// Client turns a capability.Caller back into a typed Getter.
type Client struct {
	caller capability.Caller
}

// NewClient returns a Getter calling getReviews on caller.
func NewClient(caller capability.Caller) *Client {
	return &Client{caller: caller}
}

// GetReviews implements Getter.
func (c *Client) GetReviews(ctx context.Context, id ID) (Review, error) {
	v, err := c.caller.Call(ctx, OpGetReviews, id)
	if err != nil {
		return Review{}, err
	}
	r, ok := v.(Review)
	if !ok {
		return Review{}, fmt.Errorf("%w: %T", ErrUnexpectedResult, v)
	}
	return r, nil
}

func toID(v any) (ID, error) {
	switch id := v.(type) {
	case ID:
		return id, nil
	case int:
		return ID(id), nil
	case int64:
		return ID(id), nil
	default:
		return 0, fmt.Errorf("invalid review id %v (%T)", v, v)
	}
}
