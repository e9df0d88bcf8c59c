package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/cockroachdb/pebble"

	"countryref/internal/country/models"
)

// Key layout (all byte-ordered, newest version first within a prefix):
//
//	v/<alpha2>/<stamp>              -> JSON version
//	a3/<alpha3>/<stamp>/<^alpha2>   -> empty
//	num/<numeric>/<stamp>/<^alpha2> -> empty
//
// <stamp> is descendingStamp(CreatedAt) and <^alpha2> is the alpha2 with
// every byte inverted, so index entries sharing a stamp order by alpha2
// descending like the other backends. Codes are fixed width, so the
// separators never collide with code bytes.
const (
	versionPrefix = "v/"
	alpha3Prefix  = "a3/"
	numericPrefix = "num/"
	stampLen      = 8
)

// PebbleStore keeps versions in a pebble LSM; prefix iteration gives chain
// and index reads in descending create order without sorting.
type PebbleStore struct {
	db *pebble.DB
	// writeMu serialises read-modify-write of index entries when a version
	// replaces one with the same key.
	writeMu sync.Mutex
}

// OpenPebble opens (or creates) a pebble database under dir.
func OpenPebble(dir string, opts *pebble.Options) (*PebbleStore, error) {
	if opts == nil {
		opts = &pebble.Options{}
	}
	db, err := pebble.Open(dir, opts)
	if err != nil {
		return nil, fmt.Errorf("open pebble at %s: %w", dir, err)
	}
	return NewPebble(db), nil
}

// NewPebble wraps an already opened database.
func NewPebble(db *pebble.DB) *PebbleStore {
	return &PebbleStore{db: db}
}

// Close closes the underlying database.
func (s *PebbleStore) Close() error {
	return s.db.Close()
}

func (s *PebbleStore) Append(_ context.Context, c models.Country) (models.Country, error) {
	val, err := encodeVersion(c)
	if err != nil {
		return models.Country{}, fmt.Errorf("encode version: %w", err)
	}
	key := versionKey(c.Alpha2, descendingStamp(c.CreatedAt))

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	batch := s.db.NewBatch()
	defer batch.Close()

	old, found, err := s.get(key)
	if err != nil {
		return models.Country{}, unavailable("append version", err)
	}
	if found {
		if err := batch.Delete(indexKey(alpha3Prefix, old.Alpha3, old), nil); err != nil {
			return models.Country{}, unavailable("append version", err)
		}
		if err := batch.Delete(indexKey(numericPrefix, old.Numeric, old), nil); err != nil {
			return models.Country{}, unavailable("append version", err)
		}
	}
	if err := batch.Set(key, val, nil); err != nil {
		return models.Country{}, unavailable("append version", err)
	}
	if err := batch.Set(indexKey(alpha3Prefix, c.Alpha3, c), nil, nil); err != nil {
		return models.Country{}, unavailable("append version", err)
	}
	if err := batch.Set(indexKey(numericPrefix, c.Numeric, c), nil, nil); err != nil {
		return models.Country{}, unavailable("append version", err)
	}
	if err := batch.Commit(pebble.Sync); err != nil {
		return models.Country{}, unavailable("append version", err)
	}
	return c.Clone(), nil
}

func (s *PebbleStore) LatestByAlpha2(_ context.Context, alpha2 string) (models.Country, bool, error) {
	iter, err := s.db.NewIter(prefixBounds(versionPrefix + alpha2 + "/"))
	if err != nil {
		return models.Country{}, false, unavailable("find latest by alpha2", err)
	}
	defer iter.Close()

	if !iter.First() {
		return models.Country{}, false, wrapIterErr("find latest by alpha2", iter.Error())
	}
	head, err := decodeVersion(iter.Value())
	if err != nil {
		return models.Country{}, false, corrupt("find latest by alpha2", err)
	}
	c, ok := headActive([]models.Country{head})
	return c, ok, nil
}

func (s *PebbleStore) LatestByAlpha3(_ context.Context, alpha3 string) (models.Country, bool, error) {
	return s.latestByIndex(alpha3Prefix, alpha3)
}

func (s *PebbleStore) LatestByNumeric(_ context.Context, numeric string) (models.Country, bool, error) {
	return s.latestByIndex(numericPrefix, numeric)
}

// ListLatest scans the whole version keyspace and reduces it in memory.
func (s *PebbleStore) ListLatest(_ context.Context, limit, offset int) ([]models.Country, error) {
	iter, err := s.db.NewIter(prefixBounds(versionPrefix))
	if err != nil {
		return nil, unavailable("list latest", err)
	}
	defer iter.Close()

	var all []models.Country
	for iter.First(); iter.Valid(); iter.Next() {
		v, err := decodeVersion(iter.Value())
		if err != nil {
			return nil, corrupt("list latest", err)
		}
		all = append(all, v)
	}
	if err := iter.Error(); err != nil {
		return nil, unavailable("list latest", err)
	}
	return paginate(reduceLatest(all), limit, offset), nil
}

func (s *PebbleStore) History(_ context.Context, alpha2 string) ([]models.Country, error) {
	iter, err := s.db.NewIter(prefixBounds(versionPrefix + alpha2 + "/"))
	if err != nil {
		return nil, unavailable("history", err)
	}
	defer iter.Close()

	out := []models.Country{}
	for iter.First(); iter.Valid(); iter.Next() {
		v, err := decodeVersion(iter.Value())
		if err != nil {
			return nil, corrupt("history", err)
		}
		out = append(out, v)
	}
	if err := iter.Error(); err != nil {
		return nil, unavailable("history", err)
	}
	return out, nil
}

func (s *PebbleStore) latestByIndex(prefix, code string) (models.Country, bool, error) {
	op := "find latest by " + prefix[:len(prefix)-1]
	iter, err := s.db.NewIter(prefixBounds(prefix + code + "/"))
	if err != nil {
		return models.Country{}, false, unavailable(op, err)
	}
	defer iter.Close()

	if !iter.First() {
		return models.Country{}, false, wrapIterErr(op, iter.Error())
	}
	alpha2, stamp, err := parseIndexKey(iter.Key(), len(prefix)+len(code)+1)
	if err != nil {
		return models.Country{}, false, corrupt(op, err)
	}
	head, found, err := s.get(versionKey(alpha2, stamp))
	if err != nil {
		return models.Country{}, false, unavailable(op, err)
	}
	if !found {
		return models.Country{}, false, nil
	}
	c, ok := headActive([]models.Country{head})
	return c, ok, nil
}

func (s *PebbleStore) get(key []byte) (models.Country, bool, error) {
	val, closer, err := s.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return models.Country{}, false, nil
	}
	if err != nil {
		return models.Country{}, false, err
	}
	defer closer.Close()

	c, err := decodeVersion(val)
	if err != nil {
		return models.Country{}, false, err
	}
	return c, true, nil
}

func versionKey(alpha2 string, stamp []byte) []byte {
	key := make([]byte, 0, len(versionPrefix)+len(alpha2)+1+stampLen)
	key = append(key, versionPrefix...)
	key = append(key, alpha2...)
	key = append(key, '/')
	return append(key, stamp...)
}

func indexKey(prefix, code string, c models.Country) []byte {
	key := make([]byte, 0, len(prefix)+len(code)+2+stampLen+len(c.Alpha2))
	key = append(key, prefix...)
	key = append(key, code...)
	key = append(key, '/')
	key = append(key, descendingStamp(c.CreatedAt)...)
	key = append(key, '/')
	return append(key, invertBytes([]byte(c.Alpha2))...)
}

// parseIndexKey splits "<prefix><code>/" + stamp + "/" + ^alpha2 at start.
func parseIndexKey(key []byte, start int) (string, []byte, error) {
	if len(key) < start+stampLen+2 || key[start+stampLen] != '/' {
		return "", nil, fmt.Errorf("malformed index key %q", key)
	}
	stamp := bytes.Clone(key[start : start+stampLen])
	return string(invertBytes(bytes.Clone(key[start+stampLen+1:]))), stamp, nil
}

func invertBytes(b []byte) []byte {
	for i := range b {
		b[i] = ^b[i]
	}
	return b
}

// prefixBounds returns iterator bounds covering exactly the keys with prefix.
// Every prefix used here ends in '/', whose successor '0' is a valid bound.
func prefixBounds(prefix string) *pebble.IterOptions {
	upper := []byte(prefix)
	upper[len(upper)-1]++
	return &pebble.IterOptions{
		LowerBound: []byte(prefix),
		UpperBound: upper,
	}
}

func wrapIterErr(op string, err error) error {
	if err != nil {
		return unavailable(op, err)
	}
	return nil
}
