// Package reviews is the review-summary domain: the Review type, the getReviews capability,
// an in-memory stub with per-id latency, and YAML fixtures for the stub.
package reviews
