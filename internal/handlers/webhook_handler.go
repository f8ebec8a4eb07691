package handlers

import (
	"context"
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// UpdateHandler processes one Telegram update
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, update tgbotapi.Update) error
}

// WebhookHandler receives updates pushed by Telegram
type WebhookHandler struct {
	bot    UpdateHandler
	secret string
	logger zerolog.Logger
}

// NewWebhookHandler creates a webhook handler that only accepts requests
// addressed to secret
func NewWebhookHandler(bot UpdateHandler, secret string, logger zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{bot: bot, secret: secret, logger: logger}
}

// Receive decodes an update and hands it to the bot. Update failures are
// logged and still acknowledged so Telegram does not redeliver them.
func (h *WebhookHandler) Receive(c *gin.Context) {
	if subtle.ConstantTimeCompare([]byte(c.Param("secret")), []byte(h.secret)) != 1 {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		respondWithError(c, http.StatusBadRequest, "invalid update", "failed to decode update", err)
		return
	}

	if err := h.bot.HandleUpdate(c.Request.Context(), update); err != nil {
		h.logger.Error().Err(err).Int("update", update.UpdateID).Msg("failed to handle update")
	}
	c.Status(http.StatusOK)
}

// Health reports that the server is up
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "time": time.Now().UTC()})
}

// NewRouter builds the HTTP surface: the webhook route and the health check
func NewRouter(bot UpdateHandler, secret string, logger zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(logger))

	r.GET("/health", Health)
	r.POST("/telegram/:secret", NewWebhookHandler(bot, secret, logger).Receive)
	return r
}
