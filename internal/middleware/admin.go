package middleware

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"gatekeeper/internal/captcha"
)

// AdminOnly gates a handler behind chat-admin identity. Commands from
// non-admins are silently dropped; a nil checker disables the gated
// handlers entirely.
func AdminOnly(admins captcha.AdminChecker, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Chat() == nil || c.Sender() == nil {
				return nil
			}
			if admins == nil || !admins.IsAdmin(c.Chat().ID, c.Sender().ID) {
				logger.Debug("dropping admin command from non-admin",
					zap.Int64("chat_id", c.Chat().ID),
					zap.Int64("user_id", c.Sender().ID),
				)
				return nil
			}
			return next(c)
		}
	}
}
