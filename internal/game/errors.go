package game

import "github.com/pkg/errors"

// Every error a transition can return, plus ErrInvalidSession for records
// rejected by ValidateSession. Transition errors are recoverable and meant
// to be shown to the acting player.
var (
	ErrInvalidWord      = errors.New("invalid word")
	ErrSessionNotFound  = errors.New("session not found")
	ErrSelfJoin         = errors.New("cannot join own game")
	ErrAlreadyJoined    = errors.New("game already joined")
	ErrInvalidState     = errors.New("invalid state for action")
	ErrAlreadyGuessed   = errors.New("letter already guessed")
	ErrInvalidLetter    = errors.New("letter not in game alphabet")
	ErrNotGuesser       = errors.New("player is not the guesser")
	ErrStoreUnavailable = errors.New("session store unavailable")
	ErrInvalidSession   = errors.New("invalid session record")
)
