package cli

import (
	"fmt"
	"strconv"

	"github.com/rshade/reviewdeck/internal/capability"
	"github.com/rshade/reviewdeck/internal/config"
	"github.com/rshade/reviewdeck/internal/reviews"
)

// defaultReviewID is shown when no ids are given.
const defaultReviewID reviews.ID = 123

// buildCapability assembles the review capability described by cfg: the fixture-backed stub
// exposed as named operations, wrapped in the configured cache and in-flight sharing.
func buildCapability(cfg *config.Config) (capability.Set, *reviews.Stub, error) {
	fixtures := reviews.DefaultFixtures()
	fixtures.DefaultDelay = cfg.Stub.DefaultDelay
	if cfg.Stub.Fixtures != "" {
		loaded, err := reviews.LoadFixtures(cfg.Stub.Fixtures)
		if err != nil {
			return nil, nil, err
		}
		if loaded.DefaultDelay == 0 {
			loaded.DefaultDelay = cfg.Stub.DefaultDelay
		}
		fixtures = loaded
	}

	stub := fixtures.Stub()
	ops := reviews.Operations(stub)
	if ttl := cfg.Capability.CacheTTL; ttl > 0 {
		ops = capability.Decorate(ops, func(op capability.Operation) capability.Operation {
			return capability.Cached(op, ttl)
		})
	}
	if cfg.Capability.ShareInflight {
		ops = capability.Decorate(ops, capability.Shared)
	}

	logger.Debug().
		Str("fixtures", cfg.Stub.Fixtures).
		Dur("cache_ttl", cfg.Capability.CacheTTL).
		Bool("share_inflight", cfg.Capability.ShareInflight).
		Strs("operations", ops.Names()).
		Msg("review capability built")

	return ops, stub, nil
}

// parseIDs converts review id arguments, defaulting to the sample review.
func parseIDs(args []string) ([]reviews.ID, error) {
	if len(args) == 0 {
		return []reviews.ID{defaultReviewID}, nil
	}
	ids := make([]reviews.ID, 0, len(args))
	for _, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid review id %q: %w", arg, err)
		}
		ids = append(ids, reviews.ID(n))
	}
	return ids, nil
}
