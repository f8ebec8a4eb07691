package models

import (
	"testing"
)

func TestGameSessionStatus(t *testing.T) {
	joiner := &Player{ID: 2, FirstName: "Olena"}

	tests := []struct {
		name    string
		session GameSession
		want    Status
	}{
		{
			name:    "no second player",
			session: GameSession{Word: "кіт", AttemptsRemaining: 5},
			want:    StatusOpen,
		},
		{
			name:    "joined and in progress",
			session: GameSession{Word: "кіт", AttemptsRemaining: 5, SecondPlayer: joiner, UsedLetters: []string{"к"}},
			want:    StatusActive,
		},
		{
			name:    "all letters guessed",
			session: GameSession{Word: "кіт", AttemptsRemaining: 2, SecondPlayer: joiner, UsedLetters: []string{"т", "а", "к", "і"}},
			want:    StatusWon,
		},
		{
			name:    "out of attempts",
			session: GameSession{Word: "кіт", AttemptsRemaining: 0, SecondPlayer: joiner, UsedLetters: []string{"а", "б", "в", "г", "ґ"}},
			want:    StatusLost,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.session.Status(); got != tt.want {
				t.Errorf("Status() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGameSessionCloneIsDeep(t *testing.T) {
	orig := &GameSession{
		ID:           "abc",
		Word:         "кіт",
		SecondPlayer: &Player{ID: 2},
		UsedLetters:  []string{"к"},
	}

	c := orig.Clone()
	c.UsedLetters = append(c.UsedLetters, "і")
	c.UsedLetters[0] = "x"
	c.SecondPlayer.ID = 99

	if len(orig.UsedLetters) != 1 || orig.UsedLetters[0] != "к" {
		t.Errorf("original letters changed: %v", orig.UsedLetters)
	}
	if orig.SecondPlayer.ID != 2 {
		t.Errorf("original second player changed: %d", orig.SecondPlayer.ID)
	}
}

func TestPlayerDisplayName(t *testing.T) {
	if got := (Player{ID: 1, Username: "taras", FirstName: "Taras"}).DisplayName(); got != "@taras" {
		t.Errorf("DisplayName() = %q, want %q", got, "@taras")
	}
	if got := (Player{ID: 1, FirstName: "Taras"}).DisplayName(); got != "Taras" {
		t.Errorf("DisplayName() = %q, want %q", got, "Taras")
	}
}
