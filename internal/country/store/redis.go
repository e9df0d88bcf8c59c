package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"countryref/internal/country/models"
)

const (
	// Redis key layout:
	//   country:v:<alpha2>:<micros>      -> JSON version
	//   country:chain:<alpha2>           -> zset of <micros>, score = micros
	//   country:idx:alpha3:<alpha3>      -> zset of <alpha2>:<micros>, score = micros
	//   country:idx:numeric:<numeric>    -> zset of <alpha2>:<micros>, score = micros
	redisVersionPrefix = "country:v:"
	redisChainPrefix   = "country:chain:"
	redisAlpha3Prefix  = "country:idx:alpha3:"
	redisNumericPrefix = "country:idx:numeric:"

	redisScanCount = 500
)

// RedisStore keeps versions as JSON strings and orders chains and secondary
// indexes with sorted sets scored by create time in microseconds.
type RedisStore struct {
	client *redis.Client
}

// NewRedis constructs a Redis-backed version store.
func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Append(ctx context.Context, c models.Country) (models.Country, error) {
	val, err := encodeVersion(c)
	if err != nil {
		return models.Country{}, fmt.Errorf("encode version: %w", err)
	}
	micros := c.CreatedAt.UnixMicro()
	key := redisVersionKey(c.Alpha2, micros)
	member := redisIndexMember(c.Alpha2, micros)
	score := float64(micros)

	// A replaced version may have carried other alternate codes.
	old, found, err := s.get(ctx, key)
	if err != nil {
		return models.Country{}, unavailable("append version", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if found {
			pipe.ZRem(ctx, redisAlpha3Prefix+old.Alpha3, member)
			pipe.ZRem(ctx, redisNumericPrefix+old.Numeric, member)
		}
		pipe.Set(ctx, key, val, 0)
		pipe.ZAdd(ctx, redisChainPrefix+c.Alpha2, redis.Z{Score: score, Member: strconv.FormatInt(micros, 10)})
		pipe.ZAdd(ctx, redisAlpha3Prefix+c.Alpha3, redis.Z{Score: score, Member: member})
		pipe.ZAdd(ctx, redisNumericPrefix+c.Numeric, redis.Z{Score: score, Member: member})
		return nil
	})
	if err != nil {
		return models.Country{}, unavailable("append version", err)
	}
	return c.Clone(), nil
}

func (s *RedisStore) LatestByAlpha2(ctx context.Context, alpha2 string) (models.Country, bool, error) {
	members, err := s.client.ZRevRange(ctx, redisChainPrefix+alpha2, 0, 0).Result()
	if err != nil {
		return models.Country{}, false, unavailable("find latest by alpha2", err)
	}
	if len(members) == 0 {
		return models.Country{}, false, nil
	}
	micros, err := strconv.ParseInt(members[0], 10, 64)
	if err != nil {
		return models.Country{}, false, corrupt("find latest by alpha2", err)
	}
	return s.resolveHead(ctx, "find latest by alpha2", redisVersionKey(alpha2, micros))
}

func (s *RedisStore) LatestByAlpha3(ctx context.Context, alpha3 string) (models.Country, bool, error) {
	return s.latestByIndex(ctx, "find latest by alpha3", redisAlpha3Prefix+alpha3)
}

func (s *RedisStore) LatestByNumeric(ctx context.Context, numeric string) (models.Country, bool, error) {
	return s.latestByIndex(ctx, "find latest by numeric", redisNumericPrefix+numeric)
}

// ListLatest SCANs every version key and reduces the snapshot in memory.
// The snapshot is not isolated from concurrent writers.
func (s *RedisStore) ListLatest(ctx context.Context, limit, offset int) ([]models.Country, error) {
	var (
		all    []models.Country
		cursor uint64
	)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, redisVersionPrefix+"*", redisScanCount).Result()
		if err != nil {
			return nil, unavailable("list latest", err)
		}
		versions, err := s.mget(ctx, keys)
		if err != nil {
			return nil, err
		}
		all = append(all, versions...)
		if next == 0 {
			break
		}
		cursor = next
	}
	return paginate(reduceLatest(all), limit, offset), nil
}

func (s *RedisStore) History(ctx context.Context, alpha2 string) ([]models.Country, error) {
	members, err := s.client.ZRevRange(ctx, redisChainPrefix+alpha2, 0, -1).Result()
	if err != nil {
		return nil, unavailable("history", err)
	}
	keys := make([]string, 0, len(members))
	for _, m := range members {
		micros, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return nil, corrupt("history", err)
		}
		keys = append(keys, redisVersionKey(alpha2, micros))
	}
	out, err := s.mget(ctx, keys)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *RedisStore) latestByIndex(ctx context.Context, op, indexKey string) (models.Country, bool, error) {
	members, err := s.client.ZRevRange(ctx, indexKey, 0, 0).Result()
	if err != nil {
		return models.Country{}, false, unavailable(op, err)
	}
	if len(members) == 0 {
		return models.Country{}, false, nil
	}
	alpha2, micros, err := parseIndexMember(members[0])
	if err != nil {
		return models.Country{}, false, corrupt(op, err)
	}
	return s.resolveHead(ctx, op, redisVersionKey(alpha2, micros))
}

// resolveHead loads the version an index or chain points at. A dangling
// pointer is treated as absence: the index may briefly lead the data.
func (s *RedisStore) resolveHead(ctx context.Context, op, key string) (models.Country, bool, error) {
	head, found, err := s.get(ctx, key)
	if err != nil {
		return models.Country{}, false, unavailable(op, err)
	}
	if !found {
		return models.Country{}, false, nil
	}
	c, ok := headActive([]models.Country{head})
	return c, ok, nil
}

func (s *RedisStore) get(ctx context.Context, key string) (models.Country, bool, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Country{}, false, nil
	}
	if err != nil {
		return models.Country{}, false, err
	}
	c, err := decodeVersion(raw)
	if err != nil {
		return models.Country{}, false, err
	}
	return c, true, nil
}

func (s *RedisStore) mget(ctx context.Context, keys []string) ([]models.Country, error) {
	if len(keys) == 0 {
		return []models.Country{}, nil
	}
	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, unavailable("load versions", err)
	}
	out := make([]models.Country, 0, len(vals))
	for _, v := range vals {
		raw, ok := v.(string)
		if !ok {
			// deleted between SCAN/ZRANGE and MGET
			continue
		}
		c, err := decodeVersion([]byte(raw))
		if err != nil {
			return nil, corrupt("load versions", err)
		}
		out = append(out, c)
	}
	return out, nil
}

func redisVersionKey(alpha2 string, micros int64) string {
	return redisVersionPrefix + alpha2 + ":" + strconv.FormatInt(micros, 10)
}

func redisIndexMember(alpha2 string, micros int64) string {
	return alpha2 + ":" + strconv.FormatInt(micros, 10)
}

func parseIndexMember(member string) (string, int64, error) {
	alpha2, rawMicros, ok := strings.Cut(member, ":")
	if !ok {
		return "", 0, fmt.Errorf("malformed index member %q", member)
	}
	micros, err := strconv.ParseInt(rawMicros, 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("malformed index member %q: %w", member, err)
	}
	return alpha2, micros, nil
}
