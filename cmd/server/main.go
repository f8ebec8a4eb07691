package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"wordduel/internal/config"
	"wordduel/internal/dispatch"
	"wordduel/internal/handlers"
	"wordduel/internal/logging"
	"wordduel/internal/repository"
	"wordduel/internal/security"
	"wordduel/internal/service"
	"wordduel/internal/telegram"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Session store (sql, redis or memory)
	backend, err := repository.OpenBackend(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to open session store")
	}
	defer backend.Close()

	games := service.NewGameService(backend.Store, cfg.MaxRetries, logger)
	dispatcher := dispatch.New(games, logger)

	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to telegram")
	}
	log.Info().Str("bot", api.Self.UserName).Msg("authorized")

	limiter := security.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	defer limiter.Stop()

	bot := telegram.NewBot(api, dispatcher, limiter, cfg.Workers, logger)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      handlers.NewRouter(bot, cfg.WebhookSecret, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", server.Addr).Msg("http server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if cfg.IsProduction() {
		// Telegram pushes updates to the webhook route
		if err := telegram.RegisterWebhook(api, telegram.WebhookURL(cfg.BotURL, cfg.WebhookSecret)); err != nil {
			log.Fatal().Err(err).Msg("failed to register webhook")
		}
		log.Info().Msg("webhook registered")
	} else {
		if err := telegram.DeleteWebhook(api); err != nil {
			log.Fatal().Err(err).Msg("failed to remove webhook")
		}

		u := tgbotapi.NewUpdate(0)
		u.Timeout = 60
		updates := api.GetUpdatesChan(u)

		g.Go(func() error {
			<-gctx.Done()
			api.StopReceivingUpdates()
			return nil
		})
		g.Go(func() error {
			log.Info().Int("workers", cfg.Workers).Msg("long polling started")
			err := bot.Poll(gctx, updates)
			if err == context.Canceled {
				return nil
			}
			return err
		})
	}

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}
