package store

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"countryref/internal/country/models"
)

// indexEntry points from an alternate code back into a chain.
type indexEntry struct {
	alpha2    string
	createdAt time.Time
}

// InMemory keeps every chain as a newest-first slice keyed by Alpha2, plus
// newest-first secondary indexes for Alpha3 and Numeric codes.
type InMemory struct {
	mu        sync.RWMutex
	chains    map[string][]models.Country
	byAlpha3  map[string][]indexEntry
	byNumeric map[string][]indexEntry
}

// NewInMemory creates an empty in-memory version store.
func NewInMemory() *InMemory {
	return &InMemory{
		chains:    make(map[string][]models.Country),
		byAlpha3:  make(map[string][]indexEntry),
		byNumeric: make(map[string][]indexEntry),
	}
}

// Append stores c as a new version. A version with the same Alpha2 and
// CreatedAt as an existing one replaces it.
func (s *InMemory) Append(_ context.Context, c models.Country) (models.Country, error) {
	c = c.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()

	chain := s.chains[c.Alpha2]
	if i := slices.IndexFunc(chain, func(v models.Country) bool { return v.CreatedAt.Equal(c.CreatedAt) }); i >= 0 {
		old := chain[i]
		s.byAlpha3[old.Alpha3] = removeEntry(s.byAlpha3[old.Alpha3], old.Alpha2, old.CreatedAt)
		s.byNumeric[old.Numeric] = removeEntry(s.byNumeric[old.Numeric], old.Alpha2, old.CreatedAt)
		chain = slices.Delete(chain, i, i+1)
	}
	chain = append(chain, c)
	sortNewestFirst(chain)
	s.chains[c.Alpha2] = chain

	entry := indexEntry{alpha2: c.Alpha2, createdAt: c.CreatedAt}
	s.byAlpha3[c.Alpha3] = insertEntry(s.byAlpha3[c.Alpha3], entry)
	s.byNumeric[c.Numeric] = insertEntry(s.byNumeric[c.Numeric], entry)

	return c.Clone(), nil
}

func (s *InMemory) LatestByAlpha2(_ context.Context, alpha2 string) (models.Country, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := headActive(s.chains[alpha2])
	return c, ok, nil
}

func (s *InMemory) LatestByAlpha3(_ context.Context, alpha3 string) (models.Country, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.resolveHead(s.byAlpha3[alpha3])
	return c, ok, nil
}

func (s *InMemory) LatestByNumeric(_ context.Context, numeric string) (models.Country, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.resolveHead(s.byNumeric[numeric])
	return c, ok, nil
}

// ListLatest scans every stored version and reduces it to one active version
// per chain, ordered by Alpha2.
func (s *InMemory) ListLatest(_ context.Context, limit, offset int) ([]models.Country, error) {
	s.mu.RLock()
	all := make([]models.Country, 0, len(s.chains))
	for _, chain := range s.chains {
		all = append(all, chain...)
	}
	s.mu.RUnlock()

	return paginate(reduceLatest(all), limit, offset), nil
}

// History returns every version of a chain, newest first.
func (s *InMemory) History(_ context.Context, alpha2 string) ([]models.Country, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	chain := s.chains[alpha2]
	out := make([]models.Country, 0, len(chain))
	for _, v := range chain {
		out = append(out, v.Clone())
	}
	return out, nil
}

// resolveHead follows the newest index entry back into its chain.
// Caller holds the read lock.
func (s *InMemory) resolveHead(entries []indexEntry) (models.Country, bool) {
	if len(entries) == 0 {
		return models.Country{}, false
	}
	head := entries[0]
	for _, v := range s.chains[head.alpha2] {
		if v.CreatedAt.Equal(head.createdAt) {
			return headActive([]models.Country{v})
		}
	}
	return models.Country{}, false
}

// insertEntry keeps entries ordered newest first; ties order by Alpha2 descending.
func insertEntry(entries []indexEntry, e indexEntry) []indexEntry {
	i, _ := slices.BinarySearchFunc(entries, e, compareEntries)
	return slices.Insert(entries, i, e)
}

func removeEntry(entries []indexEntry, alpha2 string, createdAt time.Time) []indexEntry {
	return slices.DeleteFunc(entries, func(e indexEntry) bool {
		return e.alpha2 == alpha2 && e.createdAt.Equal(createdAt)
	})
}

func compareEntries(a, b indexEntry) int {
	if c := b.createdAt.Compare(a.createdAt); c != 0 {
		return c
	}
	return strings.Compare(b.alpha2, a.alpha2)
}
