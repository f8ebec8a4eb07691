package repository

import (
	"context"

	"github.com/pkg/errors"

	"wordduel/internal/models"
)

var (
	// ErrNotFound is returned when no session exists for an id
	ErrNotFound = errors.New("session not found")
	// ErrVersionConflict is returned when a session changed since it was read
	ErrVersionConflict = errors.New("session version conflict")
)

// SessionStore persists game sessions keyed by session id.
//
// Save inserts a session whose Version is 0 and otherwise replaces the stored
// record only if its version still equals s.Version. On success s.Version is
// advanced to the stored version. Delete applies the same version check.
type SessionStore interface {
	Get(ctx context.Context, id string) (*models.GameSession, error)
	Save(ctx context.Context, s *models.GameSession) error
	Delete(ctx context.Context, s *models.GameSession) error
	List(ctx context.Context) ([]*models.GameSession, error)
}
