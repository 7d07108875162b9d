package handler

import (
	"strings"
	"unicode"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"gatekeeper/internal/captcha"
	"gatekeeper/internal/domain"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleCallback routes every callback press into the captcha dispatcher.
// Presses that no pending challenge claims are acknowledged and dropped.
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil || callback.Message == nil || c.Sender() == nil {
		return nil
	}

	cb := captcha.Callback{
		ID: callback.ID,
		User: domain.User{
			ID:        c.Sender().ID,
			Username:  c.Sender().Username,
			FirstName: c.Sender().FirstName,
			LastName:  c.Sender().LastName,
		},
		Message: captcha.MessageRef{
			ChatID:    callback.Message.Chat.ID,
			MessageID: callback.Message.ID,
		},
		Data: cleanCallbackData(callback.Data),
	}

	if !h.events.Dispatch(cb) {
		h.logger.Debug("callback matched no pending challenge",
			zap.Int64("chat_id", cb.Message.ChatID),
			zap.Int64("user_id", cb.User.ID),
			zap.String("data", cb.Data),
		)
		return c.Respond()
	}
	return nil
}
