package cli

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Sort orders accepted by --sort.
const (
	sortOrderAsc  = "asc"
	sortOrderDesc = "desc"
)

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

var (
	errInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'rating:desc')")
	errInvalidSortField  = errors.New("invalid sort field")
	errInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
)

// fetchSortFields are the fields fetch results can be sorted by.
//
//nolint:gochecknoglobals // Read-only lookup table.
var fetchSortFields = []string{"id", "name", "rating"}

// parseSort parses "field" or "field:order". An empty string keeps argument order.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func parseSort(sortStr string) (field, order string, err error) {
	if sortStr == "" {
		return "", sortOrderAsc, nil
	}

	parts := strings.Split(sortStr, ":")
	switch len(parts) {
	case 1:
		field, order = strings.TrimSpace(parts[0]), sortOrderAsc
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	default:
		return "", "", fmt.Errorf("%w: %q", errInvalidSortFormat, sortStr)
	}

	if !slices.Contains(fetchSortFields, field) {
		return "", "", fmt.Errorf("%w: %q (valid: %s)", errInvalidSortField, field,
			strings.Join(fetchSortFields, ", "))
	}
	if order != sortOrderAsc && order != sortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", errInvalidSortOrder, order)
	}
	return field, order, nil
}

// sortResults returns a sorted copy of results. Failed fetches sort after successful ones
// in either order.
func sortResults(results []fetchResult, field, order string) []fetchResult {
	sorted := slices.Clone(results)
	if field == "" {
		return sorted
	}

	slices.SortStableFunc(sorted, func(a, b fetchResult) int {
		if (a.Review == nil) != (b.Review == nil) {
			if a.Review == nil {
				return 1
			}
			return -1
		}

		var c int
		switch {
		case field == "id" || a.Review == nil:
			c = int(a.ID) - int(b.ID)
		case field == "name":
			c = strings.Compare(a.Review.Name, b.Review.Name)
		case field == "rating":
			c = a.Review.Rating - b.Review.Rating
		}
		if order == sortOrderDesc {
			c = -c
		}
		return c
	})
	return sorted
}
