package repository

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"wordduel/internal/models"
)

const sessionKeyPrefix = "wordduel:session:"

// RedisSessionRepository stores sessions as JSON values in Redis
type RedisSessionRepository struct {
	client *redis.Client
}

// NewRedisSessionRepository creates a Redis backed session store
func NewRedisSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

// Get retrieves a session by id
func (r *RedisSessionRepository) Get(ctx context.Context, id string) (*models.GameSession, error) {
	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to get session")
	}
	return decodeSession(data)
}

// Save inserts a new session or replaces the stored one inside a WATCH transaction
func (r *RedisSessionRepository) Save(ctx context.Context, s *models.GameSession) error {
	next := s.Clone()
	next.Version = s.Version + 1
	data, err := json.Marshal(next)
	if err != nil {
		return errors.Wrap(err, "failed to marshal session")
	}
	key := sessionKey(s.ID)

	if s.Version == 0 {
		created, err := r.client.SetNX(ctx, key, data, 0).Result()
		if err != nil {
			return errors.Wrap(err, "failed to insert session")
		}
		if !created {
			return ErrVersionConflict
		}
		s.Version = next.Version
		return nil
	}

	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		if err := checkVersion(ctx, tx, key, s.Version); err != nil {
			return err
		}
		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	}, key)
	if err := mapTxError(err, "failed to update session"); err != nil {
		return err
	}
	s.Version = next.Version
	return nil
}

// Delete removes a session if its stored version matches
func (r *RedisSessionRepository) Delete(ctx context.Context, s *models.GameSession) error {
	key := sessionKey(s.ID)
	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		if err := checkVersion(ctx, tx, key, s.Version); err != nil {
			return err
		}
		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			return nil
		})
		return err
	}, key)
	return mapTxError(err, "failed to delete session")
}

// List scans every session key, oldest session first
func (r *RedisSessionRepository) List(ctx context.Context) ([]*models.GameSession, error) {
	var sessions []*models.GameSession
	iter := r.client.Scan(ctx, 0, sessionKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		data, err := r.client.Get(ctx, iter.Val()).Bytes()
		if err == redis.Nil {
			// deleted between SCAN and GET
			continue
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to get session")
		}
		s, err := decodeSession(data)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to scan sessions")
	}

	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) {
			return sessions[i].ID < sessions[j].ID
		}
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})
	return sessions, nil
}

func checkVersion(ctx context.Context, tx *redis.Tx, key string, version int64) error {
	data, err := tx.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return ErrVersionConflict
	}
	if err != nil {
		return errors.Wrap(err, "failed to read session")
	}
	current, err := decodeSession(data)
	if err != nil {
		return err
	}
	if current.Version != version {
		return ErrVersionConflict
	}
	return nil
}

func mapTxError(err error, msg string) error {
	switch {
	case err == nil:
		return nil
	case err == redis.TxFailedErr, errors.Is(err, ErrVersionConflict):
		return ErrVersionConflict
	default:
		return errors.Wrap(err, msg)
	}
}

func decodeSession(data []byte) (*models.GameSession, error) {
	var s models.GameSession
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal session")
	}
	if s.UsedLetters == nil {
		s.UsedLetters = []string{}
	}
	return &s, nil
}
