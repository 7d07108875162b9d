package handler

import (
	"context"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"gatekeeper/internal/captcha"
	"gatekeeper/internal/middleware"
	"gatekeeper/internal/service"
)

// Handler wires bot updates into the captcha engine
type Handler struct {
	bot        *tele.Bot
	supervisor *captcha.Supervisor
	events     *captcha.Dispatcher
	settings   *service.SettingsService
	admins     captcha.AdminChecker // may be nil
	logger     *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	supervisor *captcha.Supervisor,
	events *captcha.Dispatcher,
	settings *service.SettingsService,
	admins captcha.AdminChecker,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:        bot,
		supervisor: supervisor,
		events:     events,
		settings:   settings,
		admins:     admins,
		logger:     logger,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	h.bot.Handle(tele.OnUserJoined, h.handleUserJoined)
	h.bot.Handle(tele.OnAddedToGroup, h.handleUserJoined)
	h.bot.Handle(tele.OnCallback, h.handleCallback)

	// Admin commands; all of them silently no-op for non-admins
	gate := middleware.AdminOnly(h.admins, h.logger)
	for command, handler := range map[string]tele.HandlerFunc{
		"/captcha_use_simple":               h.handleUseButton,
		"/captcha_use_slot_machine":         h.handleUseSlotMachine,
		"/captcha_use_expression":           h.handleUseExpression,
		"/captcha_auto_delete_commands_on":  h.handleAutoDeleteCommandsOn,
		"/captcha_auto_delete_commands_off": h.handleAutoDeleteCommandsOff,
		"/captcha_auto_delete_events_on":    h.handleAutoDeleteEventsOn,
		"/captcha_auto_delete_events_off":   h.handleAutoDeleteEventsOff,
		"/enable_captcha":                   h.handleEnableCaptcha,
		"/disable_captcha":                  h.handleDisableCaptcha,
	} {
		h.bot.Handle(command, handler, gate)
	}
}

// Commands returns the command menu registered with the platform at startup
func Commands() []tele.Command {
	return []tele.Command{
		{Text: "captcha_use_simple", Description: "Change captcha method to a simple button"},
		{Text: "captcha_use_slot_machine", Description: "Change captcha method to slot machine"},
		{Text: "captcha_use_expression", Description: "Change captcha method to expressions"},
		{Text: "captcha_auto_delete_commands_on", Description: "Enable auto removing of captcha commands"},
		{Text: "captcha_auto_delete_commands_off", Description: "Disable auto removing of captcha commands"},
		{Text: "captcha_auto_delete_events_on", Description: "Enable auto removing of join messages"},
		{Text: "captcha_auto_delete_events_off", Description: "Disable auto removing of join messages"},
		{Text: "enable_captcha", Description: "Enable the captcha for this chat"},
		{Text: "disable_captcha", Description: "Disable the captcha for this chat"},
	}
}

// background is the root context of verification sessions spawned from
// updates; sessions bound their own deadlines
func (h *Handler) background() context.Context {
	return context.Background()
}
