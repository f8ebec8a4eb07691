package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
)

// WebhookPath is the route Telegram posts updates to
func WebhookPath(secret string) string {
	return "/telegram/" + secret
}

// WebhookURL joins the public base url and the webhook path
func WebhookURL(baseURL, secret string) string {
	return strings.TrimRight(baseURL, "/") + WebhookPath(secret)
}

// RegisterWebhook points Telegram at url
func RegisterWebhook(api API, url string) error {
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return errors.Wrap(err, "invalid webhook url")
	}
	if _, err := api.Request(wh); err != nil {
		return errors.Wrap(err, "failed to set webhook")
	}
	return nil
}

// DeleteWebhook removes any webhook so long polling can receive updates
func DeleteWebhook(api API) error {
	if _, err := api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		return errors.Wrap(err, "failed to delete webhook")
	}
	return nil
}
