package handler

import (
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"gatekeeper/internal/domain"
)

// settingsAckTTL is how long the "Settings updated" acknowledgement stays
// in the chat before it is deleted
const settingsAckTTL = 5 * time.Second

func (h *Handler) handleUseButton(c tele.Context) error {
	return h.switchProvider(c, domain.DefaultButtonConfig())
}

func (h *Handler) handleUseSlotMachine(c tele.Context) error {
	return h.switchProvider(c, domain.DefaultSlotMachineConfig())
}

func (h *Handler) handleUseExpression(c tele.Context) error {
	return h.switchProvider(c, domain.DefaultExpressionConfig())
}

// switchProvider replaces the chat's provider with fresh defaults of the
// chosen variant; nothing carries over from the previous provider
func (h *Handler) switchProvider(c tele.Context, provider domain.ProviderConfig) error {
	chatID := c.Chat().ID

	if err := h.settings.SetProvider(chatID, provider); err != nil {
		h.logger.Error("failed to switch captcha provider",
			zap.Int64("chat_id", chatID),
			zap.String("provider", string(provider.Type)),
			zap.Error(err),
		)
		return nil
	}

	h.logger.Info("captcha provider switched",
		zap.Int64("chat_id", chatID),
		zap.String("provider", string(provider.Type)),
	)

	h.maybeDeleteCommand(c, chatID)
	h.acknowledge(c, chatID)
	return nil
}

func (h *Handler) handleAutoDeleteCommandsOn(c tele.Context) error {
	return h.toggle(c, "auto_remove_commands", func(chatID int64) error {
		return h.settings.SetAutoRemoveCommands(chatID, true)
	})
}

func (h *Handler) handleAutoDeleteCommandsOff(c tele.Context) error {
	return h.toggle(c, "auto_remove_commands", func(chatID int64) error {
		return h.settings.SetAutoRemoveCommands(chatID, false)
	})
}

func (h *Handler) handleAutoDeleteEventsOn(c tele.Context) error {
	return h.toggle(c, "auto_remove_events", func(chatID int64) error {
		return h.settings.SetAutoRemoveEvents(chatID, true)
	})
}

func (h *Handler) handleAutoDeleteEventsOff(c tele.Context) error {
	return h.toggle(c, "auto_remove_events", func(chatID int64) error {
		return h.settings.SetAutoRemoveEvents(chatID, false)
	})
}

func (h *Handler) handleEnableCaptcha(c tele.Context) error {
	return h.toggle(c, "enabled", func(chatID int64) error {
		return h.settings.SetEnabled(chatID, true)
	})
}

func (h *Handler) handleDisableCaptcha(c tele.Context) error {
	return h.toggle(c, "enabled", func(chatID int64) error {
		return h.settings.SetEnabled(chatID, false)
	})
}

func (h *Handler) toggle(c tele.Context, field string, apply func(chatID int64) error) error {
	chatID := c.Chat().ID

	if err := apply(chatID); err != nil {
		h.logger.Error("failed to update settings",
			zap.Int64("chat_id", chatID),
			zap.String("field", field),
			zap.Error(err),
		)
		return nil
	}

	h.maybeDeleteCommand(c, chatID)
	return nil
}

// maybeDeleteCommand removes the triggering command message when the chat
// opted into command auto-removal
func (h *Handler) maybeDeleteCommand(c tele.Context, chatID int64) {
	settings, err := h.settings.Settings(chatID)
	if err != nil {
		h.logger.Warn("failed to load settings for command cleanup",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		return
	}
	if !settings.AutoRemoveCommands {
		return
	}
	if err := c.Delete(); err != nil {
		h.logger.Debug("failed to delete command message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// acknowledge sends a short-lived "Settings updated" message
func (h *Handler) acknowledge(c tele.Context, chatID int64) {
	ack, err := h.bot.Send(c.Chat(), "Settings updated")
	if err != nil {
		h.logger.Debug("failed to send settings acknowledgement",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		return
	}

	go func() {
		time.Sleep(settingsAckTTL)
		if err := h.bot.Delete(ack); err != nil {
			h.logger.Debug("failed to delete settings acknowledgement",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
		}
	}()
}
