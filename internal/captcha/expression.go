package captcha

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"

	"go.uber.org/zap"
)

// ExpressionProvider challenges the user with an arithmetic expression and a
// grid of answer buttons. Wrong presses burn attempts; running out of
// attempts fails immediately, independent of the deadline.
type ExpressionProvider struct{}

// Run executes the expression protocol for one task. Exactly one of
// {correct press, attempts exhausted, admin cancel, deadline} determines the
// terminal outcome; whichever happens first wins.
func (ExpressionProvider) Run(ctx context.Context, s *Session, t *Task) {
	cfg := s.Settings.Provider.Expression
	rng := rand.New(rand.NewSource(rand.Int63()))

	expr := NewExpression(rng, cfg.MaxOperand, cfg.OperationCount)
	answers := ExpressionAnswers(rng, expr.Result, cfg.AnswerChoiceCount, cfg.MaxOperand, cfg.OperationCount)
	correct := strconv.Itoa(expr.Result)

	msg, err := s.api.SendMessage(
		s.ChatID,
		fmt.Sprintf("%s, %s %s", t.User.Mention(), cfg.PromptText, expr.Text),
		ExpressionKeyboard(answers, s.admins != nil),
	)
	if err != nil {
		s.logger.Warn("failed to send expression challenge",
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
		return cb.Message == msg
	})

	attempts := cfg.MaxAttempts
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
			}
			if cb.User.ID == t.User.ID && cb.Data == correct {
				if s.pass(t) {
					s.deleteNow(msg)
				}
				return
			}

			attempts--
			if attempts <= 0 {
				if s.fail(t) {
					s.deleteNow(msg)
				}
				return
			}
			s.answer(cb, cfg.RetryText+strconv.Itoa(attempts), false)
		}
	}
}
