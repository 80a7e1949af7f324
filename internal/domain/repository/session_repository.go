package repository

import (
	"blogboard/internal/common"
	"blogboard/internal/domain/model"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionRepository persists the server-side session records that back
// issued tokens. A record that is gone (expired or revoked) makes its token
// worthless regardless of the token's own expiry.
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session, ttl time.Duration) error
	Find(ctx context.Context, id string) (*model.Session, error)
	Delete(ctx context.Context, id string) error
}

type redisSessionRepository struct {
	rdb *redis.Client
}

func NewRedisSessionRepository(rdb *redis.Client) SessionRepository {
	return &redisSessionRepository{rdb: rdb}
}

func sessionKey(id string) string {
	return "session:" + id
}

func (r *redisSessionRepository) Create(ctx context.Context, session *model.Session, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redisSessionRepository.Create marshal: %w", err)
	}
	if err := r.rdb.Set(ctx, sessionKey(session.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("redisSessionRepository.Create: %w", err)
	}
	return nil
}

func (r *redisSessionRepository) Find(ctx context.Context, id string) (*model.Session, error) {
	data, err := r.rdb.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("redisSessionRepository.Find: %w", err)
	}
	session := &model.Session{}
	if err := json.Unmarshal(data, session); err != nil {
		return nil, fmt.Errorf("redisSessionRepository.Find unmarshal: %w", err)
	}
	return session, nil
}

func (r *redisSessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.rdb.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("redisSessionRepository.Delete: %w", err)
	}
	return nil
}
