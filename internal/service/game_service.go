package service

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"wordduel/internal/game"
	"wordduel/internal/models"
	"wordduel/internal/repository"
	"wordduel/internal/security"
)

// GuessResult describes an accepted guess and the session state after it.
// Terminal sessions are already removed from the store when this is returned.
type GuessResult struct {
	Session *models.GameSession
	Outcome game.Outcome
	Letter  string
}

// GameService runs session transitions against a store. Each transition
// holds the per-session lock and commits through the store's version check,
// so concurrent events for one session apply one at a time.
type GameService struct {
	store      repository.SessionStore
	locks      *keyedMutex
	maxRetries int
	logger     zerolog.Logger

	now   func() time.Time
	newID func() string
}

// NewGameService creates a game service. maxRetries bounds how often a
// transition is replayed after a version conflict.
func NewGameService(store repository.SessionStore, maxRetries int, logger zerolog.Logger) *GameService {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &GameService{
		store:      store,
		locks:      newKeyedMutex(),
		maxRetries: maxRetries,
		logger:     logger.With().Str("component", "game").Logger(),
		now:        time.Now,
		newID:      security.GenerateSessionID,
	}
}

// NewGame creates and stores an open session for word
func (s *GameService) NewGame(ctx context.Context, word string, creator models.Player) (*models.GameSession, error) {
	session, err := game.NewSession(s.newID(), word, creator, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, s.storeError(err, session.ID)
	}

	s.logger.Info().
		Str("session", session.ID).
		Int64("creator", creator.ID).
		Str("script", session.Script).
		Int("length", len([]rune(session.Word))).
		Msg("game created")
	return session, nil
}

// Join makes joiner the guesser of session id
func (s *GameService) Join(ctx context.Context, id string, joiner models.Player, messageRef string) (*models.GameSession, error) {
	session, err := s.update(ctx, id, func(session *models.GameSession) (bool, error) {
		return false, game.Join(session, joiner, messageRef, s.now())
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("session", id).Int64("player", joiner.ID).Msg("game joined")
	return session, nil
}

// Guess applies letter to session id on behalf of player
func (s *GameService) Guess(ctx context.Context, id string, player models.Player, letter string) (*GuessResult, error) {
	var outcome game.Outcome
	session, err := s.update(ctx, id, func(session *models.GameSession) (bool, error) {
		var err error
		outcome, err = game.Guess(session, player, letter, s.now())
		return outcome.Terminal(), err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("session", id).
		Int64("player", player.ID).
		Str("outcome", string(outcome)).
		Int("attempts", session.AttemptsRemaining).
		Msg("guess applied")
	if outcome.Terminal() {
		s.logger.Info().Str("session", id).Str("outcome", string(outcome)).Msg("game finished")
	}

	return &GuessResult{Session: session, Outcome: outcome, Letter: strings.ToLower(letter)}, nil
}

// Get returns the stored session
func (s *GameService) Get(ctx context.Context, id string) (*models.GameSession, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, s.storeError(err, id)
	}
	return session, nil
}

// update loads session id, applies mutate to a copy and commits it. When
// mutate reports a terminal state the record is deleted instead of saved.
func (s *GameService) update(ctx context.Context, id string, mutate func(*models.GameSession) (bool, error)) (*models.GameSession, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	for attempt := 0; ; attempt++ {
		current, err := s.store.Get(ctx, id)
		if err != nil {
			return nil, s.storeError(err, id)
		}

		next := current.Clone()
		terminal, err := mutate(next)
		if err != nil {
			return nil, err
		}

		if terminal {
			err = s.store.Delete(ctx, current)
		} else {
			err = s.store.Save(ctx, next)
		}
		if err == nil {
			return next, nil
		}

		if errors.Is(err, repository.ErrVersionConflict) && attempt < s.maxRetries {
			s.logger.Debug().Str("session", id).Int("attempt", attempt+1).Msg("version conflict, retrying")
			continue
		}
		return nil, s.storeError(err, id)
	}
}

func (s *GameService) storeError(err error, id string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return game.ErrSessionNotFound
	}
	s.logger.Error().Err(err).Str("session", id).Msg("session store failure")
	return errors.Wrapf(game.ErrStoreUnavailable, "session %s: %v", id, err)
}

// PruneOpen deletes sessions nobody joined that were created before cutoff.
// Inline queries create a session per keystroke, so most of these were never
// posted. A session joined while pruning runs is left alone.
func (s *GameService) PruneOpen(ctx context.Context, cutoff time.Time) (int, error) {
	sessions, err := s.store.List(ctx)
	if err != nil {
		return 0, s.storeError(err, "*")
	}

	pruned := 0
	for _, session := range sessions {
		if session.Status() != models.StatusOpen || !session.CreatedAt.Before(cutoff) {
			continue
		}

		unlock := s.locks.Lock(session.ID)
		err := s.store.Delete(ctx, session)
		unlock()

		if errors.Is(err, repository.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return pruned, s.storeError(err, session.ID)
		}
		pruned++
	}

	s.logger.Info().Int("pruned", pruned).Time("cutoff", cutoff).Msg("open sessions pruned")
	return pruned, nil
}
