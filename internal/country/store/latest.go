package store

import (
	"fmt"
	"slices"
	"strings"

	"countryref/internal/country/models"
	"countryref/pkg/platform/sentinel"
)

// headActive applies the currency rule to a newest-first sequence: only the
// newest version can be current, and only while it is neither expired nor a
// tombstone. A deleted head hides every older version of the chain.
func headActive(newestFirst []models.Country) (models.Country, bool) {
	if len(newestFirst) == 0 {
		return models.Country{}, false
	}
	head := newestFirst[0]
	if !head.IsActive() {
		return models.Country{}, false
	}
	return head.Clone(), true
}

// reduceLatest runs the listing algorithm over an unordered scan of versions:
// group by Alpha2 keeping the superseding version, drop expired and deleted
// results, then sort by Alpha2.
func reduceLatest(all []models.Country) []models.Country {
	latest := make(map[string]models.Country, len(all))
	for _, v := range all {
		cur, ok := latest[v.Alpha2]
		if !ok || v.Supersedes(cur) {
			latest[v.Alpha2] = v
		}
	}

	out := make([]models.Country, 0, len(latest))
	for _, v := range latest {
		if v.IsActive() {
			out = append(out, v.Clone())
		}
	}
	slices.SortFunc(out, func(a, b models.Country) int {
		return strings.Compare(a.Alpha2, b.Alpha2)
	})
	return out
}

// paginate skips offset entries then takes up to limit.
func paginate(sorted []models.Country, limit, offset int) []models.Country {
	if limit <= 0 || offset >= len(sorted) {
		return []models.Country{}
	}
	if offset < 0 {
		offset = 0
	}
	end := offset + limit
	if end > len(sorted) || end < offset {
		end = len(sorted)
	}
	return sorted[offset:end]
}

// sortNewestFirst orders a chain by descending version order.
func sortNewestFirst(versions []models.Country) {
	slices.SortFunc(versions, func(a, b models.Country) int {
		switch {
		case a.Supersedes(b):
			return -1
		case b.Supersedes(a):
			return 1
		default:
			return 0
		}
	})
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, sentinel.ErrUnavailable, err)
}

func corrupt(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, sentinel.ErrInvalidState, err)
}
