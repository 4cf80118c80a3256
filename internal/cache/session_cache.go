package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"senior_living_backend/internal/quiz"

	"github.com/go-redis/redis/v8"
)

// SessionCache stores in-flight quiz sessions. A missing or expired session
// reads back as nil with no error.
type SessionCache interface {
	Save(ctx context.Context, s *quiz.Session) error
	Get(ctx context.Context, id string) (*quiz.Session, error)
	Delete(ctx context.Context, id string) error
	// Update applies fn to the stored session and writes the result back
	// atomically. A missing session yields nil with no error. When fn fails
	// the stored value is left unchanged.
	Update(ctx context.Context, id string, fn func(*quiz.Session) error) (*quiz.Session, error)
}

const updateRetries = 3

var errSessionMissing = errors.New("session missing")

type sessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionCache(client *redis.Client, ttl time.Duration) SessionCache {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &sessionCache{client: client, ttl: ttl}
}

func (c *sessionCache) key(id string) string {
	return fmt.Sprintf("quiz_session:%s", id)
}

func (c *sessionCache) Save(ctx context.Context, s *quiz.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(s.ID), data, c.ttl).Err()
}

func (c *sessionCache) Get(ctx context.Context, id string) (*quiz.Session, error) {
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var s quiz.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *sessionCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id)).Err()
}

func (c *sessionCache) Update(ctx context.Context, id string, fn func(*quiz.Session) error) (*quiz.Session, error) {
	key := c.key(id)
	var updated *quiz.Session

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err == redis.Nil {
			return errSessionMissing
		}
		if err != nil {
			return err
		}
		var s quiz.Session
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if err := fn(&s); err != nil {
			return err
		}
		out, err := json.Marshal(&s)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, c.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		updated = &s
		return nil
	}

	// 并发修改同一会话时重试，后到的请求会看到新状态
	for i := 0; i < updateRetries; i++ {
		err := c.client.Watch(ctx, txf, key)
		switch {
		case err == nil:
			return updated, nil
		case errors.Is(err, errSessionMissing):
			return nil, nil
		case errors.Is(err, redis.TxFailedErr):
			continue
		default:
			return nil, err
		}
	}
	return nil, redis.TxFailedErr
}
