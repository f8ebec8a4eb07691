package game

import (
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"

	"wordduel/internal/alphabet"
	"wordduel/internal/models"
)

// ValidateSession checks a session read from outside the state machine, such
// as a backup document. It accepts only records the transitions could have
// produced for a game that is still open or active.
func ValidateSession(s *models.GameSession) error {
	if s == nil || s.ID == "" {
		return errors.Wrap(ErrInvalidSession, "missing id")
	}

	script := alphabet.Script(s.Script)
	n := utf8.RuneCountInString(s.Word)
	if n == 0 || n > MaxWordLength {
		return errors.Wrapf(ErrInvalidSession, "word length %d", n)
	}
	for _, r := range s.Word {
		if !alphabet.Contains(script, string(r)) {
			return errors.Wrapf(ErrInvalidSession, "word %q is not in script %q", s.Word, s.Script)
		}
	}

	if s.SecondPlayer != nil && s.SecondPlayer.ID == s.FirstPlayer.ID {
		return errors.Wrap(ErrInvalidSession, "creator joined own game")
	}
	if s.SecondPlayer == nil && len(s.UsedLetters) > 0 {
		return errors.Wrap(ErrInvalidSession, "letters guessed before join")
	}

	seen := make(map[string]bool, len(s.UsedLetters))
	misses := 0
	for _, l := range s.UsedLetters {
		if !alphabet.Contains(script, l) {
			return errors.Wrapf(ErrInvalidSession, "used letter %q not in script %q", l, s.Script)
		}
		if seen[l] {
			return errors.Wrapf(ErrInvalidSession, "letter %q used twice", l)
		}
		seen[l] = true
		if !strings.Contains(s.Word, l) {
			misses++
		}
	}

	if s.AttemptsRemaining != MaxAttempts-misses {
		return errors.Wrapf(ErrInvalidSession, "%d attempts left after %d misses", s.AttemptsRemaining, misses)
	}
	if status := s.Status(); status != models.StatusOpen && status != models.StatusActive {
		return errors.Wrapf(ErrInvalidSession, "session is %s", status)
	}
	return nil
}
