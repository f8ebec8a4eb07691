// Package telegram adapts Telegram bot updates to game events and applies the
// resulting notices and renders through the Bot API.
package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"wordduel/internal/dispatch"
	"wordduel/internal/keyboard"
	"wordduel/internal/security"
)

// API is the part of *tgbotapi.BotAPI the bot uses
type API interface {
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// EventDispatcher resolves one game event
type EventDispatcher interface {
	Dispatch(ctx context.Context, ev dispatch.Event) dispatch.Response
}

// Bot routes updates to the dispatcher
type Bot struct {
	api        API
	dispatcher EventDispatcher
	limiter    *security.RateLimiter
	workers    int
	logger     zerolog.Logger
}

// NewBot creates a bot. limiter may be nil to disable rate limiting.
func NewBot(api API, dispatcher EventDispatcher, limiter *security.RateLimiter, workers int, logger zerolog.Logger) *Bot {
	if workers < 1 {
		workers = 1
	}
	return &Bot{
		api:        api,
		dispatcher: dispatcher,
		limiter:    limiter,
		workers:    workers,
		logger:     logger.With().Str("component", "telegram").Logger(),
	}
}

// Poll handles updates until ctx is done or the channel closes, running at
// most the configured number of handlers at once.
func (b *Bot) Poll(ctx context.Context, updates <-chan tgbotapi.Update) error {
	g := new(errgroup.Group)
	g.SetLimit(b.workers)
	// in-flight updates finish even after polling stops
	handlerCtx := context.WithoutCancel(ctx)

	defer func() {
		if err := g.Wait(); err != nil {
			b.logger.Error().Err(err).Msg("update worker failed")
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			g.Go(func() error {
				if err := b.HandleUpdate(handlerCtx, update); err != nil {
					b.logger.Error().Err(err).Int("update", update.UpdateID).Msg("failed to handle update")
				}
				return nil
			})
		}
	}
}

// HandleUpdate processes a single update
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) error {
	switch {
	case update.InlineQuery != nil:
		return b.handleInlineQuery(ctx, update.InlineQuery)
	case update.ChosenInlineResult != nil:
		r := update.ChosenInlineResult
		b.dispatcher.Dispatch(ctx, dispatch.Event{
			Kind:       dispatch.KindChosen,
			Player:     playerFrom(r.From),
			SessionID:  r.ResultID,
			MessageRef: r.InlineMessageID,
		})
		return nil
	case update.CallbackQuery != nil:
		return b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.Text != "":
		return b.greet(update.Message)
	default:
		return nil
	}
}

func (b *Bot) handleInlineQuery(ctx context.Context, q *tgbotapi.InlineQuery) error {
	answer := tgbotapi.InlineConfig{
		InlineQueryID: q.ID,
		Results:       []interface{}{},
		CacheTime:     0,
		IsPersonal:    true,
	}

	word := strings.TrimSpace(q.Query)
	if word != "" && b.allow(playerFrom(q.From).ID) {
		resp := b.dispatcher.Dispatch(ctx, dispatch.Event{
			Kind:   dispatch.KindNewGame,
			Player: playerFrom(q.From),
			Word:   word,
		})
		if resp.Render != nil {
			article := tgbotapi.NewInlineQueryResultArticle(resp.Render.SessionID, resp.Render.Text, resp.Render.Text)
			article.Description = maskedWord(resp.Render.Keyboard)
			article.ReplyMarkup = inlineMarkup(resp.Render.Keyboard)
			answer.Results = append(answer.Results, article)
		}
	}

	if _, err := b.api.Request(answer); err != nil {
		return errors.Wrap(err, "failed to answer inline query")
	}
	return nil
}

func (b *Bot) handleCallback(ctx context.Context, q *tgbotapi.CallbackQuery) error {
	player := playerFrom(q.From)

	var resp dispatch.Response
	if !b.allow(player.ID) {
		resp = dispatch.Response{Notice: dispatch.TextRateLimited}
	} else {
		resp = b.dispatcher.Dispatch(ctx, callbackEvent(q))
	}

	if _, err := b.api.Request(tgbotapi.NewCallback(q.ID, resp.Notice)); err != nil {
		return errors.Wrap(err, "failed to answer callback")
	}
	if resp.Render == nil {
		return nil
	}

	edit := tgbotapi.EditMessageTextConfig{
		BaseEdit: tgbotapi.BaseEdit{
			InlineMessageID: q.InlineMessageID,
			ReplyMarkup:     inlineMarkup(resp.Render.Keyboard),
		},
		Text: resp.Render.Text,
	}
	if q.InlineMessageID == "" && q.Message != nil {
		edit.ChatID = q.Message.Chat.ID
		edit.MessageID = q.Message.MessageID
	}
	if _, err := b.api.Request(edit); err != nil {
		if strings.Contains(err.Error(), "message is not modified") {
			b.logger.Debug().Str("session", resp.Render.SessionID).Msg("render unchanged")
			return nil
		}
		return errors.Wrap(err, "failed to edit game message")
	}
	return nil
}

func callbackEvent(q *tgbotapi.CallbackQuery) dispatch.Event {
	ev := dispatch.Event{Player: playerFrom(q.From), MessageRef: q.InlineMessageID}

	payload := keyboard.ParsePayload(q.Data)
	ev.SessionID = payload.SessionID
	switch payload.Action {
	case keyboard.ActionJoin:
		ev.Kind = dispatch.KindJoin
	case keyboard.ActionGuess:
		ev.Kind = dispatch.KindGuess
		ev.Letter = payload.Letter
	default:
		ev.Kind = dispatch.KindUnknown
	}
	return ev
}

func (b *Bot) greet(m *tgbotapi.Message) error {
	msg := tgbotapi.NewMessage(m.Chat.ID, dispatch.TextGreeting)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonSwitch(dispatch.TextPlayWithFriend, "")),
	)
	if _, err := b.api.Send(msg); err != nil {
		return errors.Wrap(err, "failed to send greeting")
	}
	return nil
}

func (b *Bot) allow(playerID int64) bool {
	if b.limiter == nil || b.limiter.AllowPlayer(playerID) {
		return true
	}
	b.logger.Warn().Int64("player", playerID).Msg("rate limited")
	return false
}

// maskedWord reads the word progress back out of the rendered rows above the
// separator, for the inline result description.
func maskedWord(grid keyboard.Grid) string {
	var sb strings.Builder
	for _, row := range grid {
		if len(row) == 1 && row[0].Label == keyboard.SeparatorLabel {
			break
		}
		for _, cell := range row {
			if strings.TrimSpace(cell.Label) != "" {
				sb.WriteString(cell.Label)
			}
		}
	}
	return sb.String()
}
