package config

import (
	"fmt"
	"strconv"
	"time"
)

// Cache TTL bounds. Zero is always accepted and disables caching.
const (
	MinCacheTTL = time.Second
	MaxCacheTTL = 24 * time.Hour
)

// ErrInvalidTTL is returned for a cache TTL outside the accepted range.
var ErrInvalidTTL = fmt.Errorf("TTL must be 0 or between %s and %s", MinCacheTTL, MaxCacheTTL)

// ValidateTTL checks ttl against the cache bounds.
func ValidateTTL(ttl time.Duration) error {
	if ttl == 0 {
		return nil
	}
	if ttl < MinCacheTTL || ttl > MaxCacheTTL {
		return fmt.Errorf("%w: got %s", ErrInvalidTTL, ttl)
	}
	return nil
}

// ParseTTL parses a TTL given as integer seconds ("300") or a duration ("5m").
func ParseTTL(s string) (time.Duration, error) {
	var ttl time.Duration
	if seconds, err := strconv.Atoi(s); err == nil {
		ttl = time.Duration(seconds) * time.Second
	} else {
		d, parseErr := time.ParseDuration(s)
		if parseErr != nil {
			return 0, fmt.Errorf("invalid TTL format: %w", parseErr)
		}
		ttl = d
	}
	if err := ValidateTTL(ttl); err != nil {
		return 0, err
	}
	return ttl, nil
}
