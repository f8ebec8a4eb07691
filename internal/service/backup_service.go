package service

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"wordduel/internal/database"
	"wordduel/internal/game"
	"wordduel/internal/models"
	"wordduel/internal/repository"
)

// BackupVersion is the format version written into exported documents
const BackupVersion = "1.0"

// BackupData represents the complete session backup document
type BackupData struct {
	Version     string                `json:"version"`
	ExportedAt  time.Time             `json:"exported_at"`
	StoreDriver string                `json:"store_driver"`
	Sessions    []*models.GameSession `json:"sessions"`
}

// ImportStats summarises an import run. Rejected counts records that fail
// session validation.
type ImportStats struct {
	Imported int
	Skipped  int
	Rejected int
	Cleared  int
}

// BackupService handles export and restore of game sessions
type BackupService struct {
	store  repository.SessionStore
	db     *database.DB
	driver string
	now    func() time.Time
}

// NewBackupService creates a backup service for store. When db is non-nil
// the store is SQL backed and imports run inside one transaction.
func NewBackupService(store repository.SessionStore, driver string, db *database.DB) *BackupService {
	return &BackupService{store: store, db: db, driver: driver, now: time.Now}
}

// Export writes every stored session to outputPath
func (s *BackupService) Export(ctx context.Context, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return errors.Wrap(err, "failed to create output file")
	}
	defer file.Close()

	if err := s.ExportToWriter(ctx, file); err != nil {
		return err
	}
	return file.Close()
}

// ExportToWriter writes the backup document to w
func (s *BackupService) ExportToWriter(ctx context.Context, w io.Writer) error {
	sessions, err := s.store.List(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to list sessions")
	}
	if sessions == nil {
		sessions = []*models.GameSession{}
	}

	backup := &BackupData{
		Version:     BackupVersion,
		ExportedAt:  s.now().UTC(),
		StoreDriver: s.driver,
		Sessions:    sessions,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return errors.Wrap(err, "failed to encode backup")
	}

	log.Info().Int("sessions", len(sessions)).Msg("export completed")
	return nil
}

// Import restores sessions from inputPath. With clear set all existing
// sessions are removed first; otherwise sessions whose id already exists
// are skipped.
func (s *BackupService) Import(ctx context.Context, inputPath string, clear bool) (*ImportStats, error) {
	file, err := os.Open(inputPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open input file")
	}
	defer file.Close()

	return s.ImportFromReader(ctx, file, clear)
}

// ImportFromReader restores sessions from a backup document read from r
func (s *BackupService) ImportFromReader(ctx context.Context, r io.Reader, clear bool) (*ImportStats, error) {
	var backup BackupData
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return nil, errors.Wrap(err, "failed to decode backup")
	}
	if backup.Version != BackupVersion {
		return nil, errors.Errorf("unsupported backup version %q", backup.Version)
	}

	log.Info().
		Str("version", backup.Version).
		Time("exported_at", backup.ExportedAt).
		Str("source_driver", backup.StoreDriver).
		Int("sessions", len(backup.Sessions)).
		Msg("starting import")

	var (
		stats *ImportStats
		err   error
	)
	if s.db != nil {
		err = s.db.WithTx(ctx, func(tx *database.Tx) error {
			repo := repository.NewSQLSessionRepository(tx)
			var cleared int64
			if clear {
				if cleared, err = repo.DeleteAll(ctx); err != nil {
					return err
				}
			}
			stats, err = importSessions(ctx, repo, backup.Sessions, false)
			if err != nil {
				return err
			}
			stats.Cleared = int(cleared)
			return nil
		})
	} else {
		stats, err = importSessions(ctx, s.store, backup.Sessions, clear)
	}
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("imported", stats.Imported).
		Int("skipped", stats.Skipped).
		Int("rejected", stats.Rejected).
		Int("cleared", stats.Cleared).
		Msg("import completed")
	return stats, nil
}

func importSessions(ctx context.Context, store repository.SessionStore, sessions []*models.GameSession, clear bool) (*ImportStats, error) {
	stats := &ImportStats{}

	if clear {
		existing, err := store.List(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to list sessions")
		}
		for _, session := range existing {
			if err := store.Delete(ctx, session); err != nil {
				return nil, errors.Wrapf(err, "failed to clear session %s", session.ID)
			}
			stats.Cleared++
		}
	}

	for _, session := range sessions {
		if err := game.ValidateSession(session); err != nil {
			log.Warn().Err(err).Msg("rejected session record")
			stats.Rejected++
			continue
		}
		_, err := store.Get(ctx, session.ID)
		if err == nil {
			stats.Skipped++
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, errors.Wrapf(err, "failed to check session %s", session.ID)
		}

		restored := session.Clone()
		restored.Version = 0
		if restored.UsedLetters == nil {
			restored.UsedLetters = []string{}
		}
		if restored.CreatedAt.IsZero() {
			restored.CreatedAt = time.Now().UTC()
		}
		if restored.UpdatedAt.IsZero() {
			restored.UpdatedAt = restored.CreatedAt
		}
		if err := store.Save(ctx, restored); err != nil {
			return nil, errors.Wrapf(err, "failed to import session %s", session.ID)
		}
		stats.Imported++
	}
	return stats, nil
}
