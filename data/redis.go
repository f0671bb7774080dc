package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ncobase/measure/config"
	"github.com/ncobase/measure/query"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps one sorted set per measurement, scored by the point's
// unix milliseconds, and evaluates statements in process.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
	retention time.Duration
	now       func() time.Time
}

// NewRedisStore creates a store on an existing client.
func NewRedisStore(client *redis.Client, keyPrefix string, retention time.Duration) *RedisStore {
	return &RedisStore{
		client:    client,
		keyPrefix: keyPrefix,
		retention: retention,
		now:       time.Now,
	}
}

// newRedisClient creates a client from the database config. The client
// connects lazily.
func newRedisClient(conf *config.Database) (*redis.Client, error) {
	if conf == nil || conf.Host == "" {
		return nil, errors.New("redis configuration is nil or empty")
	}

	db := 0
	if conf.Redis != nil {
		db = conf.Redis.Db
	}

	return redis.NewClient(&redis.Options{
		Addr:     conf.Addr(),
		Username: conf.Username,
		Password: conf.Password,
		DB:       db,
		PoolSize: 10,
	}), nil
}

func (r *RedisStore) key(measurement string) string {
	return fmt.Sprintf("%s:series:%s", r.keyPrefix, measurement)
}

// Write adds the point to its measurement's sorted set.
func (r *RedisStore) Write(ctx context.Context, p Point) error {
	if p.Time.IsZero() {
		p.Time = r.now()
	}
	member, err := json.Marshal(p)
	if err != nil {
		return err
	}

	key := r.key(p.Measurement)
	pipe := r.client.TxPipeline()
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(p.Time.UnixMilli()), Member: string(member)})
	if r.retention > 0 {
		pipe.Expire(ctx, key, r.retention)
		pipe.ZRemRangeByScore(ctx, key, "-inf", "("+strconv.FormatInt(r.now().Add(-r.retention).UnixMilli(), 10))
	}
	_, err = pipe.Exec(ctx)
	return err
}

// Query loads the candidate points of the statement's measurement and
// evaluates the statement over them.
func (r *RedisStore) Query(ctx context.Context, stmt query.Statement) ([]Series, error) {
	now := r.now()
	lower := "-inf"
	if stmt.Since > 0 {
		lower = "(" + strconv.FormatInt(now.Add(-stmt.Since).UnixMilli(), 10)
	}

	members, err := r.client.ZRangeByScore(ctx, r.key(stmt.Measurement), &redis.ZRangeBy{
		Min: lower,
		Max: "+inf",
	}).Result()
	if err != nil {
		return nil, err
	}

	points := make([]Point, 0, len(members))
	for _, member := range members {
		var p Point
		if err := json.Unmarshal([]byte(member), &p); err != nil {
			continue
		}
		points = append(points, p)
	}

	return evaluate(points, stmt, now), nil
}

// Ping checks the connection.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the client.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
