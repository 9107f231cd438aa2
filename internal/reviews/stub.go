package reviews

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Sample review shown by the deck.
const (
	SampleName   = "Francine Periwinkle's Peticoat Blues"
	SampleRating = 3
)

// StubReview returns the deck's sample review.
func StubReview() Review {
	return Review{Name: SampleName, Rating: SampleRating}
}

// Stub is an in-memory Getter with configurable per-id latency.
// Ids without an entry resolve to the fallback review, if one is set, or ErrNotFound.
type Stub struct {
	mu       sync.RWMutex
	reviews  map[ID]Review
	delays   map[ID]time.Duration
	delay    time.Duration
	fallback *Review

	calls atomic.Int64
}

// StubOption configures a Stub.
type StubOption func(*Stub)

// WithDefaultDelay sets the latency for ids without their own delay.
func WithDefaultDelay(d time.Duration) StubOption {
	return func(s *Stub) {
		s.delay = d
	}
}

// WithDelay sets the latency for one id.
func WithDelay(id ID, d time.Duration) StubOption {
	return func(s *Stub) {
		s.delays[id] = d
	}
}

// WithReview registers a review for id.
func WithReview(id ID, r Review) StubOption {
	return func(s *Stub) {
		s.reviews[id] = r
	}
}

// WithFallback answers unknown ids with r.
func WithFallback(r Review) StubOption {
	return func(s *Stub) {
		s.fallback = &r
	}
}

// NewStub returns a stub configured by opts.
func NewStub(opts ...StubOption) *Stub {
	s := &Stub{
		reviews: make(map[ID]Review),
		delays:  make(map[ID]time.Duration),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetReviews implements Getter. It waits for the id's delay or until ctx ends.
func (s *Stub) GetReviews(ctx context.Context, id ID) (Review, error) {
	s.calls.Add(1)

	s.mu.RLock()
	delay, ok := s.delays[id]
	if !ok {
		delay = s.delay
	}
	r, found := s.reviews[id]
	fallback := s.fallback
	s.mu.RUnlock()

	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return Review{}, ctx.Err()
		}
	}

	if found {
		return r, nil
	}
	if fallback != nil {
		return *fallback, nil
	}
	return Review{}, fmt.Errorf("%w: %d", ErrNotFound, id)
}

// Set registers or replaces the review for id.
func (s *Stub) Set(id ID, r Review) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews[id] = r
}

// Calls returns how many times GetReviews was called.
func (s *Stub) Calls() int64 {
	return s.calls.Load()
}
