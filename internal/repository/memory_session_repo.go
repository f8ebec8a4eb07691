package repository

import (
	"context"
	"sort"
	"sync"

	"wordduel/internal/models"
)

// MemorySessionRepository keeps sessions in process memory. Records are
// copied on the way in and out so callers never share state with the store.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*models.GameSession
}

// NewMemorySessionRepository creates an empty in-memory store
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{sessions: make(map[string]*models.GameSession)}
}

func (r *MemorySessionRepository) Get(ctx context.Context, id string) (*models.GameSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s.Clone(), nil
}

func (r *MemorySessionRepository) Save(ctx context.Context, s *models.GameSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.sessions[s.ID]
	if s.Version == 0 {
		if exists {
			return ErrVersionConflict
		}
	} else if !exists || current.Version != s.Version {
		return ErrVersionConflict
	}

	s.Version++
	r.sessions[s.ID] = s.Clone()
	return nil
}

func (r *MemorySessionRepository) Delete(ctx context.Context, s *models.GameSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.sessions[s.ID]
	if !ok || current.Version != s.Version {
		return ErrVersionConflict
	}
	delete(r.sessions, s.ID)
	return nil
}

func (r *MemorySessionRepository) List(ctx context.Context) ([]*models.GameSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessions := make([]*models.GameSession, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s.Clone())
	}
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) {
			return sessions[i].ID < sessions[j].ID
		}
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})
	return sessions, nil
}
