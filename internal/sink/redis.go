package sink

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/gomodule/redigo/redis"
)

// RedisSink keeps every entry in a list "<prefix>:<id>" and tracks known
// entries in the set "<prefix>:entries".
type RedisSink struct {
	pool   *redis.Pool
	prefix string
}

func NewRedisSink(pool *redis.Pool, prefix string) *RedisSink {
	if prefix == "" {
		prefix = "sink"
	}

	return &RedisSink{
		pool:   pool,
		prefix: prefix,
	}
}

func (s *RedisSink) Append(ctx context.Context, kind string, at time.Time, message string) error {
	conn, err := s.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("get redis connection: %w", err)
	}
	defer conn.Close()

	id := EntryID(kind, at)

	if err := conn.Send("MULTI"); err != nil {
		return fmt.Errorf("redis MULTI: %w", err)
	}
	if err := conn.Send("RPUSH", s.entryKey(id), FormatLine(at, message)); err != nil {
		return fmt.Errorf("redis RPUSH: %w", err)
	}
	if err := conn.Send("SADD", s.indexKey(), id); err != nil {
		return fmt.Errorf("redis SADD: %w", err)
	}
	if _, err := conn.Do("EXEC"); err != nil {
		return fmt.Errorf("redis EXEC: %w", err)
	}

	return nil
}

func (s *RedisSink) List(ctx context.Context) ([]string, error) {
	conn, err := s.pool.GetContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("get redis connection: %w", err)
	}
	defer conn.Close()

	ids, err := redis.Strings(conn.Do("SMEMBERS", s.indexKey()))
	if err != nil {
		return nil, fmt.Errorf("redis SMEMBERS: %w", err)
	}
	sort.Strings(ids)

	return ids, nil
}

func (s *RedisSink) Delete(ctx context.Context, id string) error {
	conn, err := s.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("get redis connection: %w", err)
	}
	defer conn.Close()

	if err := conn.Send("MULTI"); err != nil {
		return fmt.Errorf("redis MULTI: %w", err)
	}
	if err := conn.Send("DEL", s.entryKey(id)); err != nil {
		return fmt.Errorf("redis DEL: %w", err)
	}
	if err := conn.Send("SREM", s.indexKey(), id); err != nil {
		return fmt.Errorf("redis SREM: %w", err)
	}
	if _, err := conn.Do("EXEC"); err != nil {
		return fmt.Errorf("redis EXEC: %w", err)
	}

	return nil
}

func (s *RedisSink) entryKey(id string) string {
	return s.prefix + ":" + id
}

func (s *RedisSink) indexKey() string {
	return s.prefix + ":entries"
}
