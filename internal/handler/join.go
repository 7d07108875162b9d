package handler

import (
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"gatekeeper/internal/domain"
)

// handleUserJoined starts a verification session for a new-members event.
// Only group chats are gatekept; private chats and channels are ignored.
func (h *Handler) handleUserJoined(c tele.Context) error {
	msg := c.Message()
	if msg == nil || msg.Chat == nil {
		return nil
	}
	if msg.Chat.Type != tele.ChatGroup && msg.Chat.Type != tele.ChatSuperGroup {
		return nil
	}

	chatID := msg.Chat.ID
	users := joinedUsers(msg)
	if len(users) == 0 {
		return nil
	}

	eventTime := msg.Time()
	if eventTime.IsZero() {
		eventTime = time.Now()
	}

	h.logger.Info("new members joined",
		zap.Int64("chat_id", chatID),
		zap.Int("count", len(users)),
	)

	// The session blocks until its deadline; it must not hold up the
	// update loop.
	go h.supervisor.HandleJoin(h.background(), chatID, users, eventTime)

	h.maybeDeleteEventMessage(c, chatID)
	return nil
}

func (h *Handler) maybeDeleteEventMessage(c tele.Context, chatID int64) {
	settings, err := h.settings.Settings(chatID)
	if err != nil {
		h.logger.Warn("failed to load settings for event cleanup",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		return
	}
	if !settings.AutoRemoveEvents {
		return
	}
	if err := c.Delete(); err != nil {
		h.logger.Debug("failed to delete join message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

func joinedUsers(msg *tele.Message) []domain.User {
	var joined []*tele.User
	if len(msg.UsersJoined) > 0 {
		for i := range msg.UsersJoined {
			joined = append(joined, &msg.UsersJoined[i])
		}
	} else if msg.UserJoined != nil {
		joined = append(joined, msg.UserJoined)
	}

	users := make([]domain.User, 0, len(joined))
	for _, u := range joined {
		if u.IsBot {
			continue
		}
		users = append(users, domain.User{
			ID:        u.ID,
			Username:  u.Username,
			FirstName: u.FirstName,
			LastName:  u.LastName,
		})
	}
	return users
}
