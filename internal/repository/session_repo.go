package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"

	"wordduel/internal/database"
	"wordduel/internal/models"
)

const sessionColumns = `id, word, script, first_player_id, first_player_username, first_player_name,
	second_player_id, second_player_username, second_player_name, attempts_remaining, used_letters,
	inline_message_id, version, created_at, updated_at`

// SQLSessionRepository stores sessions in the game_sessions table
type SQLSessionRepository struct {
	db database.DBTX
}

// NewSQLSessionRepository creates a repository over a database or transaction
func NewSQLSessionRepository(db database.DBTX) *SQLSessionRepository {
	return &SQLSessionRepository{db: db}
}

// Get retrieves a session by id
func (r *SQLSessionRepository) Get(ctx context.Context, id string) (*models.GameSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM game_sessions WHERE id = ?`
	s, err := scanSession(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get session")
	}
	return s, nil
}

// Save inserts a new session or updates an existing one if its version matches
func (r *SQLSessionRepository) Save(ctx context.Context, s *models.GameSession) error {
	letters, err := json.Marshal(s.UsedLetters)
	if err != nil {
		return errors.Wrap(err, "failed to marshal used letters")
	}
	secondID, secondUsername, secondName := secondPlayerColumns(s.SecondPlayer)

	if s.Version == 0 {
		query := `INSERT INTO game_sessions (` + sessionColumns + `)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := r.db.ExecContext(ctx, query,
			s.ID, s.Word, s.Script, s.FirstPlayer.ID, s.FirstPlayer.Username, s.FirstPlayer.FirstName,
			secondID, secondUsername, secondName, s.AttemptsRemaining, string(letters),
			s.InlineMessageID, 1, s.CreatedAt, s.UpdatedAt)
		if err != nil {
			return errors.Wrap(err, "failed to insert session")
		}
		s.Version = 1
		return nil
	}

	query := `UPDATE game_sessions
		SET second_player_id = ?, second_player_username = ?, second_player_name = ?,
			attempts_remaining = ?, used_letters = ?, inline_message_id = ?, updated_at = ?,
			version = version + 1
		WHERE id = ? AND version = ?`
	result, err := r.db.ExecContext(ctx, query,
		secondID, secondUsername, secondName, s.AttemptsRemaining, string(letters),
		s.InlineMessageID, s.UpdatedAt, s.ID, s.Version)
	if err != nil {
		return errors.Wrap(err, "failed to update session")
	}
	if err := expectOneRow(result); err != nil {
		return err
	}
	s.Version++
	return nil
}

// Delete removes a session if its version matches
func (r *SQLSessionRepository) Delete(ctx context.Context, s *models.GameSession) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM game_sessions WHERE id = ? AND version = ?`, s.ID, s.Version)
	if err != nil {
		return errors.Wrap(err, "failed to delete session")
	}
	return expectOneRow(result)
}

// List returns every stored session, oldest first
func (r *SQLSessionRepository) List(ctx context.Context) ([]*models.GameSession, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+sessionColumns+` FROM game_sessions ORDER BY created_at, id`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sessions")
	}
	defer rows.Close()

	var sessions []*models.GameSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan session")
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// DeleteAll removes every session and reports how many were removed. Used by
// backup imports that replace data.
func (r *SQLSessionRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM game_sessions`)
	if err != nil {
		return 0, errors.Wrap(err, "failed to clear sessions")
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "failed to read affected rows")
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row rowScanner) (*models.GameSession, error) {
	var (
		s              models.GameSession
		secondID       sql.NullInt64
		secondUsername string
		secondName     string
		letters        string
	)
	err := row.Scan(&s.ID, &s.Word, &s.Script, &s.FirstPlayer.ID, &s.FirstPlayer.Username, &s.FirstPlayer.FirstName,
		&secondID, &secondUsername, &secondName, &s.AttemptsRemaining, &letters,
		&s.InlineMessageID, &s.Version, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if secondID.Valid {
		s.SecondPlayer = &models.Player{ID: secondID.Int64, Username: secondUsername, FirstName: secondName}
	}
	if err := json.Unmarshal([]byte(letters), &s.UsedLetters); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal used letters")
	}
	if s.UsedLetters == nil {
		s.UsedLetters = []string{}
	}
	return &s, nil
}

func secondPlayerColumns(p *models.Player) (sql.NullInt64, string, string) {
	if p == nil {
		return sql.NullInt64{}, "", ""
	}
	return sql.NullInt64{Int64: p.ID, Valid: true}, p.Username, p.FirstName
}

func expectOneRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read affected rows")
	}
	if n == 0 {
		return ErrVersionConflict
	}
	return nil
}
