// Package game implements the session state machine: creating a game,
// joining it and resolving letter guesses.
package game

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"

	"wordduel/internal/alphabet"
	"wordduel/internal/models"
)

const (
	// MaxAttempts is the number of wrong guesses a player may make
	MaxAttempts = 5
	// MaxWordLength keeps the word rows plus the letter grid inside
	// Telegram's inline keyboard limits.
	MaxWordLength = 32
)

// Outcome is the result of an accepted guess
type Outcome string

const (
	OutcomeRightLetter Outcome = "right_letter"
	OutcomeWrongLetter Outcome = "wrong_letter"
	OutcomeWon         Outcome = "won"
	OutcomeLost        Outcome = "lost"
)

// Terminal reports whether the outcome ends the game
func (o Outcome) Terminal() bool {
	return o == OutcomeWon || o == OutcomeLost
}

// NewSession creates an open game for word seeded by creator
func NewSession(id, word string, creator models.Player, now time.Time) (*models.GameSession, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if n := utf8.RuneCountInString(word); n > MaxWordLength {
		return nil, errors.Wrapf(ErrInvalidWord, "%d letters, at most %d allowed", n, MaxWordLength)
	}
	script, ok := alphabet.Detect(word)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidWord, "%q", word)
	}

	return &models.GameSession{
		ID:                id,
		Word:              word,
		Script:            string(script),
		FirstPlayer:       creator,
		AttemptsRemaining: MaxAttempts,
		UsedLetters:       []string{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// Join makes joiner the guesser of an open game. messageRef is the chat
// platform's id for the rendered message and is only recorded when set.
func Join(s *models.GameSession, joiner models.Player, messageRef string, now time.Time) error {
	if joiner.ID == s.FirstPlayer.ID {
		return ErrSelfJoin
	}
	if s.SecondPlayer != nil {
		return ErrAlreadyJoined
	}

	p := joiner
	s.SecondPlayer = &p
	if messageRef != "" {
		s.InlineMessageID = messageRef
	}
	s.UpdatedAt = now
	return nil
}

// Guess resolves one letter guess by player. The session is only mutated
// when the guess is accepted.
func Guess(s *models.GameSession, player models.Player, letter string, now time.Time) (Outcome, error) {
	if s.SecondPlayer != nil && s.SecondPlayer.ID != player.ID {
		return "", ErrNotGuesser
	}
	if s.Status() != models.StatusActive {
		return "", errors.Wrapf(ErrInvalidState, "session is %s", s.Status())
	}

	letter = strings.ToLower(letter)
	if !alphabet.Contains(alphabet.Script(s.Script), letter) {
		return "", errors.Wrapf(ErrInvalidLetter, "%q", letter)
	}
	if s.HasUsed(letter) {
		return "", ErrAlreadyGuessed
	}

	s.UsedLetters = append(s.UsedLetters, letter)
	s.UpdatedAt = now

	if !strings.Contains(s.Word, letter) {
		s.AttemptsRemaining--
		if s.AttemptsRemaining <= 0 {
			s.AttemptsRemaining = 0
			return OutcomeLost, nil
		}
		return OutcomeWrongLetter, nil
	}

	if s.IsSolved() {
		return OutcomeWon, nil
	}
	return OutcomeRightLetter, nil
}
