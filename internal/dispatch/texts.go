package dispatch

import (
	"fmt"

	"github.com/pkg/errors"

	"wordduel/internal/game"
)

// Texts shown to players
const (
	TextGreeting       = "Вгадай слово"
	TextPlayWithFriend = "Грати з другом"
	TextStartGame      = "Почати Гру"
	TextJoinedNotice   = "Ви прийняли гру!"
	TextJoinedRender   = "Гру прийнято!"
	TextWonNotice      = "Ви виграли!"
	TextLostNotice     = "Ви програли!"
	TextUnavailable    = "Не доступно!"
	TextRateLimited    = "Забагато запитів, спробуйте пізніше"

	textInvalidWord      = "Слово має складатися з літер однієї абетки!"
	textSessionNotFound  = "Даної гри не існує, будь ласка, створіть нову гру!"
	textSelfJoin         = "Ви не можете прийняти свою ж гру!"
	textAlreadyJoined    = "Гру вже прийняв інший гравець!"
	textStoreUnavailable = "Сервіс тимчасово недоступний, спробуйте пізніше"
)

func rightLetterNotice(attempts int) string {
	return fmt.Sprintf("Буква вгадана, залишилось спроб: %d!", attempts)
}

func wrongLetterNotice(attempts int) string {
	return fmt.Sprintf("Буква не вгадана, залишилось спроб: %d!", attempts)
}

func rightLetterRender(letter string) string {
	return fmt.Sprintf("Буква вгадана: %s", letter)
}

func wrongLetterRender(letter string) string {
	return fmt.Sprintf("Буква не вгадана: %s", letter)
}

func wonRender(word string) string {
	return fmt.Sprintf("Ви виграли! слово: %q", word)
}

func lostRender(word string) string {
	return fmt.Sprintf("Ви програли! слово: %q", word)
}

// UserMessage maps a transition error to the notice shown to the acting
// player. letter is only used for duplicate guesses.
func UserMessage(err error, letter string) string {
	switch {
	case errors.Is(err, game.ErrInvalidWord):
		return textInvalidWord
	case errors.Is(err, game.ErrSessionNotFound):
		return textSessionNotFound
	case errors.Is(err, game.ErrSelfJoin):
		return textSelfJoin
	case errors.Is(err, game.ErrAlreadyJoined):
		return textAlreadyJoined
	case errors.Is(err, game.ErrAlreadyGuessed):
		return fmt.Sprintf("Ви вже обирали дану букву!(%s)", letter)
	case errors.Is(err, game.ErrInvalidState),
		errors.Is(err, game.ErrNotGuesser),
		errors.Is(err, game.ErrInvalidLetter):
		// guesses outside a running game of your own are simply not available
		return TextUnavailable
	default:
		return textStoreUnavailable
	}
}
