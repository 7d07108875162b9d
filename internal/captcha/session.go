package captcha

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"gatekeeper/internal/domain"
)

// Session is the shared state of one join-event verification. It carries the
// settings snapshot captured at join time; later admin edits never affect a
// running session.
type Session struct {
	ChatID   int64
	Settings *domain.ChatSettings
	Deadline time.Time

	api       ChatAPI
	events    *Dispatcher
	admins    AdminChecker
	logger    *zap.Logger
	leftPerms Permissions

	tasks []*Task
	msgs  messageSink
}

// track records a message for deletion when the session closes
func (s *Session) track(msg MessageRef) {
	s.msgs.add(msg)
}

// deleteNow deletes messages a resolving task no longer needs. One attempt
// per message, never retried; the sink forgets them so the final purge does
// not delete them again.
func (s *Session) deleteNow(msgs ...MessageRef) {
	for _, msg := range msgs {
		s.msgs.remove(msg)
		if err := s.api.DeleteMessage(msg); err != nil {
			s.logger.Debug("failed to delete challenge message",
				zap.Int64("chat_id", msg.ChatID),
				zap.Int("message_id", msg.MessageID),
				zap.Error(err),
			)
		}
	}
}

// purge deletes every message still tracked by the session
func (s *Session) purge() {
	s.deleteNow(s.msgs.drain()...)
}

// pass resolves the task as Passed and lifts the join-time restriction.
// Reports whether this signal won the task.
func (s *Session) pass(t *Task) bool {
	if !t.resolve(Passed) {
		return false
	}
	s.liftRestrictions(t.User)
	return true
}

// adminCancel resolves the task as CancelledByAdmin when cb is the cancel
// button pressed by a chat admin. Cancelled users are treated as passed:
// restrictions are lifted and no kick happens. Returns false when cb is not
// an admin cancel press.
func (s *Session) adminCancel(t *Task, cb Callback) bool {
	if cb.Data != AdminCancelData {
		return false
	}
	if s.admins == nil || !s.admins.IsAdmin(s.ChatID, cb.User.ID) {
		return false
	}
	if t.resolve(CancelledByAdmin) {
		s.liftRestrictions(t.User)
		s.notify(fmt.Sprintf("%s cancelled captcha for %s", cb.User.DisplayName(), t.User.DisplayName()))
	}
	return true
}

// fail resolves the task as Failed and applies the fail path: kick when the
// provider is configured to, otherwise the user simply stays restricted.
// Reports whether this signal won the task.
func (s *Session) fail(t *Task) bool {
	if !t.resolve(Failed) {
		return false
	}
	if s.Settings.Provider.KickOnFail() {
		s.kick(t.User)
	}
	return true
}

// kick bans a failed user. Restrictions are restored before the ban because
// the platform rejects banning a member without restriction context. Errors
// are swallowed; a best-effort notice is the only escalation.
func (s *Session) kick(user domain.User) {
	err := s.api.Restrict(s.ChatID, user.ID, s.leftPerms)
	if err == nil {
		err = s.api.Ban(s.ChatID, user.ID)
	}
	if err != nil {
		s.logger.Warn("failed to kick user",
			zap.Int64("chat_id", s.ChatID),
			zap.Int64("user_id", user.ID),
			zap.Error(err),
		)
		s.notify(fmt.Sprintf("%s failed captcha", user.Mention()))
	}
}

func (s *Session) liftRestrictions(user domain.User) {
	if err := s.api.Restrict(s.ChatID, user.ID, s.leftPerms); err != nil {
		s.logger.Warn("failed to lift restrictions",
			zap.Int64("chat_id", s.ChatID),
			zap.Int64("user_id", user.ID),
			zap.Error(err),
		)
	}
}

// notify sends a best-effort service message that is not tracked for deletion
func (s *Session) notify(text string) {
	if _, err := s.api.SendMessage(s.ChatID, text, nil); err != nil {
		s.logger.Debug("failed to send notice", zap.Int64("chat_id", s.ChatID), zap.Error(err))
	}
}

// answer acknowledges a callback press, best effort
func (s *Session) answer(cb Callback, text string, showAlert bool) {
	if err := s.api.AnswerCallback(cb.ID, text, showAlert); err != nil {
		s.logger.Debug("failed to answer callback", zap.String("callback_id", cb.ID), zap.Error(err))
	}
}

// messageSink collects message refs from concurrently running tasks and is
// drained once at session close
type messageSink struct {
	mu   sync.Mutex
	msgs []MessageRef
}

func (s *messageSink) add(msg MessageRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, msg)
}

func (s *messageSink) remove(msg MessageRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, m := range s.msgs {
		if m == msg {
			s.msgs = append(s.msgs[:i], s.msgs[i+1:]...)
			return
		}
	}
}

func (s *messageSink) drain() []MessageRef {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := s.msgs
	s.msgs = nil
	return msgs
}
