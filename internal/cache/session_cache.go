package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"patternquiz/internal/model"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrUpdateConflict is returned when an update keeps losing to concurrent writers
var ErrUpdateConflict = errors.New("session changed concurrently, retries exhausted")

const maxUpdateRetries = 100

// SessionCache holds in-progress quiz sessions so each answer is saved as it is given
type SessionCache interface {
	Set(ctx context.Context, session *model.Session) error
	// Restore stores session only if no cached copy exists
	Restore(ctx context.Context, session *model.Session) (bool, error)
	Get(ctx context.Context, id string) (*model.Session, error)
	// Update applies fn to the cached session under WATCH and stores the result.
	// A missing session yields (nil, nil); an error from fn aborts without writing.
	Update(ctx context.Context, id string, fn func(*model.Session) error) (*model.Session, error)
	Delete(ctx context.Context, id string) error
}

type sessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionCache creates a session cache; sessions expire ttl after their last change
func NewSessionCache(client *redis.Client, ttl time.Duration) SessionCache {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &sessionCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *sessionCache) key(id string) string {
	return fmt.Sprintf("session:%s", id)
}

func (c *sessionCache) Set(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(session.ID), data, c.ttl).Err()
}

func (c *sessionCache) Restore(ctx context.Context, session *model.Session) (bool, error) {
	data, err := json.Marshal(session)
	if err != nil {
		return false, err
	}
	return c.client.SetNX(ctx, c.key(session.ID), data, c.ttl).Result()
}

func (c *sessionCache) Get(ctx context.Context, id string) (*model.Session, error) {
	data, err := c.client.Get(ctx, c.key(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session model.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *sessionCache) Update(ctx context.Context, id string, fn func(*model.Session) error) (*model.Session, error) {
	key := c.key(id)
	var updated *model.Session

	txf := func(tx *redis.Tx) error {
		updated = nil
		data, err := tx.Get(ctx, key).Bytes()
		if err == redis.Nil {
			return nil
		}
		if err != nil {
			return err
		}
		var session model.Session
		if err := json.Unmarshal(data, &session); err != nil {
			return err
		}
		if err := fn(&session); err != nil {
			return err
		}
		out, err := json.Marshal(&session)
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
		updated = &session
		return nil
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := c.client.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	return nil, ErrUpdateConflict
}

func (c *sessionCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id)).Err()
}
