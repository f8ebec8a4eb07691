package models

import "time"

// Status is the lifecycle state of a game session. It is derived from the
// session fields and never stored.
type Status string

const (
	StatusOpen   Status = "open"
	StatusActive Status = "active"
	StatusWon    Status = "won"
	StatusLost   Status = "lost"
)

// Player identifies a chat user taking part in a game
type Player struct {
	ID        int64  `json:"id"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
}

// DisplayName returns the best human readable name for the player
func (p Player) DisplayName() string {
	if p.Username != "" {
		return "@" + p.Username
	}
	return p.FirstName
}

// GameSession is one game between the player who seeded the word and the
// player who joined to guess it.
type GameSession struct {
	ID                string    `json:"id"`
	Word              string    `json:"word"`
	Script            string    `json:"script"`
	FirstPlayer       Player    `json:"first_player"`
	SecondPlayer      *Player   `json:"second_player,omitempty"`
	AttemptsRemaining int       `json:"attempts_remaining"`
	UsedLetters       []string  `json:"used_letters"`
	InlineMessageID   string    `json:"inline_message_id,omitempty"`
	Version           int64     `json:"version"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// HasUsed reports whether letter was already guessed in this session
func (s *GameSession) HasUsed(letter string) bool {
	for _, l := range s.UsedLetters {
		if l == letter {
			return true
		}
	}
	return false
}

// IsSolved reports whether every letter of the word has been guessed
func (s *GameSession) IsSolved() bool {
	for _, r := range s.Word {
		if !s.HasUsed(string(r)) {
			return false
		}
	}
	return true
}

// Status derives the lifecycle state from the session fields
func (s *GameSession) Status() Status {
	switch {
	case s.SecondPlayer == nil:
		return StatusOpen
	case s.AttemptsRemaining <= 0:
		return StatusLost
	case s.IsSolved():
		return StatusWon
	default:
		return StatusActive
	}
}

// Clone returns a deep copy so a transition never mutates a shared record
func (s *GameSession) Clone() *GameSession {
	c := *s
	if s.SecondPlayer != nil {
		p := *s.SecondPlayer
		c.SecondPlayer = &p
	}
	if s.UsedLetters != nil {
		c.UsedLetters = make([]string, len(s.UsedLetters))
		copy(c.UsedLetters, s.UsedLetters)
	}
	return &c
}
