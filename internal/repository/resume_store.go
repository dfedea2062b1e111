package repository

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/tramites-portal/internal/persistence"
)

const resumeKeyPrefix = "currentSessionId:"

// ResumeStore holds the one durable value kept outside the record store:
// the active session id for a client, so a later sign-out can locate the
// record even across reconnects. A missing token is a normal condition.
type ResumeStore interface {
	Get(ctx context.Context, clientID string) (string, error)
	Set(ctx context.Context, clientID, sessionID string) error
	Clear(ctx context.Context, clientID string) error
}

type redisResumeStore struct {
	client *redis.Client
}

// NewResumeStore returns the Redis-backed implementation.
func NewResumeStore(r *persistence.Redis) ResumeStore {
	return &redisResumeStore{client: r.Client}
}

// Get returns the stored session id, or "" when none is stored.
func (s *redisResumeStore) Get(ctx context.Context, clientID string) (string, error) {
	val, err := s.client.Get(ctx, resumeKeyPrefix+clientID).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *redisResumeStore) Set(ctx context.Context, clientID, sessionID string) error {
	return s.client.Set(ctx, resumeKeyPrefix+clientID, sessionID, 0).Err()
}

func (s *redisResumeStore) Clear(ctx context.Context, clientID string) error {
	return s.client.Del(ctx, resumeKeyPrefix+clientID).Err()
}
