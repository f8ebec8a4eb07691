// Package dispatch routes player events to game transitions and turns their
// results into notices and message renders.
package dispatch

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"wordduel/internal/alphabet"
	"wordduel/internal/game"
	"wordduel/internal/keyboard"
	"wordduel/internal/models"
	"wordduel/internal/service"
)

// Kind tags an Event
type Kind int

const (
	KindUnknown Kind = iota
	KindNewGame
	KindChosen
	KindJoin
	KindGuess
)

func (k Kind) String() string {
	switch k {
	case KindNewGame:
		return "new_game"
	case KindChosen:
		return "chosen"
	case KindJoin:
		return "join"
	case KindGuess:
		return "guess"
	default:
		return "unknown"
	}
}

// Event is one player action decoded from the chat transport
type Event struct {
	Kind   Kind
	Player models.Player
	// Word is the proposed secret word of a new game.
	Word string
	// SessionID addresses the game for join and guess events.
	SessionID string
	// Letter is the guessed letter.
	Letter string
	// MessageRef is the transport's id for the rendered message, if any.
	MessageRef string
}

// Render replaces the game message. A nil Keyboard removes the keyboard.
type Render struct {
	Text      string
	Keyboard  keyboard.Grid
	SessionID string
}

// Response holds the side effects of one event. Notice is a transient message
// for the acting player; Err is the transition error, if any.
type Response struct {
	Notice string
	Render *Render
	Err    error
}

// GameRunner is the set of transitions the dispatcher drives
type GameRunner interface {
	NewGame(ctx context.Context, word string, creator models.Player) (*models.GameSession, error)
	Join(ctx context.Context, id string, joiner models.Player, messageRef string) (*models.GameSession, error)
	Guess(ctx context.Context, id string, player models.Player, letter string) (*service.GuessResult, error)
}

// Dispatcher maps events to transitions
type Dispatcher struct {
	games  GameRunner
	logger zerolog.Logger
}

// New creates a dispatcher over games
func New(games GameRunner, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{games: games, logger: logger.With().Str("component", "dispatch").Logger()}
}

// Dispatch applies ev and describes what to show. It never panics on
// malformed events; anything it cannot route gets the unavailable notice.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) Response {
	switch ev.Kind {
	case KindNewGame:
		return d.newGame(ctx, ev)
	case KindChosen:
		d.logger.Debug().Str("session", ev.SessionID).Int64("player", ev.Player.ID).Msg("game message posted")
		return Response{}
	case KindJoin:
		return d.join(ctx, ev)
	case KindGuess:
		return d.guess(ctx, ev)
	default:
		return Response{Notice: TextUnavailable}
	}
}

func (d *Dispatcher) newGame(ctx context.Context, ev Event) Response {
	s, err := d.games.NewGame(ctx, ev.Word, ev.Player)
	if err != nil {
		return d.failure(ev, err)
	}
	return Response{Render: &Render{
		Text:      TextStartGame,
		Keyboard:  sessionKeyboard(s, true),
		SessionID: s.ID,
	}}
}

func (d *Dispatcher) join(ctx context.Context, ev Event) Response {
	if ev.SessionID == "" {
		return Response{Notice: TextUnavailable}
	}
	s, err := d.games.Join(ctx, ev.SessionID, ev.Player, ev.MessageRef)
	if err != nil {
		return d.failure(ev, err)
	}
	return Response{
		Notice: TextJoinedNotice,
		Render: &Render{Text: TextJoinedRender, Keyboard: sessionKeyboard(s, false), SessionID: s.ID},
	}
}

func (d *Dispatcher) guess(ctx context.Context, ev Event) Response {
	if ev.SessionID == "" || ev.Letter == "" {
		return Response{Notice: TextUnavailable}
	}
	res, err := d.games.Guess(ctx, ev.SessionID, ev.Player, ev.Letter)
	if err != nil {
		return d.failure(ev, err)
	}

	s := res.Session
	switch res.Outcome {
	case game.OutcomeWon:
		return Response{Notice: TextWonNotice, Render: &Render{Text: wonRender(s.Word), SessionID: s.ID}}
	case game.OutcomeLost:
		return Response{Notice: TextLostNotice, Render: &Render{Text: lostRender(s.Word), SessionID: s.ID}}
	case game.OutcomeRightLetter:
		return Response{
			Notice: rightLetterNotice(s.AttemptsRemaining),
			Render: &Render{Text: rightLetterRender(res.Letter), Keyboard: sessionKeyboard(s, false), SessionID: s.ID},
		}
	default:
		return Response{
			Notice: wrongLetterNotice(s.AttemptsRemaining),
			Render: &Render{Text: wrongLetterRender(res.Letter), Keyboard: sessionKeyboard(s, false), SessionID: s.ID},
		}
	}
}

func (d *Dispatcher) failure(ev Event, err error) Response {
	evt := d.logger.Debug()
	if !isPlayerError(err) {
		evt = d.logger.Warn()
	}
	evt.Err(err).Str("kind", ev.Kind.String()).Str("session", ev.SessionID).Int64("player", ev.Player.ID).Msg("event rejected")
	return Response{Notice: UserMessage(err, strings.ToLower(ev.Letter)), Err: err}
}

func isPlayerError(err error) bool {
	for _, target := range []error{
		game.ErrInvalidWord, game.ErrSessionNotFound, game.ErrSelfJoin, game.ErrAlreadyJoined,
		game.ErrInvalidState, game.ErrAlreadyGuessed, game.ErrInvalidLetter, game.ErrNotGuesser,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func sessionKeyboard(s *models.GameSession, join bool) keyboard.Grid {
	return keyboard.Project(keyboard.Layout{
		Word:           s.Word,
		Revealed:       s.UsedLetters,
		Letters:        alphabet.For(alphabet.Script(s.Script)),
		SessionID:      s.ID,
		JoinAffordance: join,
	})
}
