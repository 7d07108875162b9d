package captcha

import (
	"context"
	"fmt"
	"math/rand"

	"go.uber.org/zap"
)

// ButtonProvider challenges the user with a single button carrying a random
// token. Any press of that token by the challenged user passes; the deadline
// passing first fails.
type ButtonProvider struct{}

// Run executes the button protocol for one task. It returns when the task
// reaches a terminal outcome or ctx is cancelled; a cancelled wait leaves
// the outcome to the supervisor's deadline path.
func (ButtonProvider) Run(ctx context.Context, s *Session, t *Task) {
	cfg := s.Settings.Provider.Button
	token := NewButtonToken(rand.New(rand.NewSource(rand.Int63())))

	msg, err := s.api.SendMessage(
		s.ChatID,
		fmt.Sprintf("%s, %s", t.User.Mention(), cfg.PromptText),
		ButtonKeyboard(cfg.ButtonText, token, s.admins != nil),
	)
	if err != nil {
		s.logger.Warn("failed to send button challenge",
			zap.Int64("chat_id", s.ChatID),
			zap.Int64("user_id", t.User.ID),
			zap.Error(err),
		)
		// the send failed, not the user; hold the task open so the
		// deadline settles it
		<-ctx.Done()
		return
	}
	s.track(msg)

	presses := s.events.Watch(ctx, func(cb Callback) bool {
		if cb.Message != msg {
			return false
		}
		return (cb.User.ID == t.User.ID && cb.Data == token) || cb.Data == AdminCancelData
	})

	for {
		select {
		case <-ctx.Done():
			return
		case cb := <-presses:
			if cb.Data == AdminCancelData {
				if s.adminCancel(t, cb) {
					s.deleteNow(msg)
					return
				}
				continue
			}
			if s.pass(t) {
				s.deleteNow(msg)
			}
			return
		}
	}
}
