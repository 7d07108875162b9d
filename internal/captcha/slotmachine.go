package captcha

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// SlotMachineProvider challenges the user with an animated slot-machine roll.
// The user must click the three rolled reel symbols in order; a wrong click
// only rejects the press, already-matched reels keep their progress.
type SlotMachineProvider struct{}

// Run executes the slot-machine protocol for one task
func (SlotMachineProvider) Run(ctx context.Context, s *Session, t *Task) {
	cfg := s.Settings.Provider.SlotMachine

	prompt, err := s.api.SendMessage(
		s.ChatID,
		fmt.Sprintf("%s, %s", t.User.Mention(), cfg.PromptText),
		nil,
	)
	if err != nil {
		s.logger.Warn("failed to send slot-machine prompt",
			zap.Int64("chat_id", s.ChatID),
			zap.Int64("user_id", t.User.ID),
			zap.Error(err),
		)
		// the send failed, not the user; hold the task open so the
		// deadline settles it
		<-ctx.Done()
		return
	}
	s.track(prompt)

	dice, value, err := s.api.SendSlotMachine(s.ChatID, prompt, SlotMachineKeyboard(nil))
	if err != nil {
		s.logger.Warn("failed to send slot-machine roll",
			zap.Int64("chat_id", s.ChatID),
			zap.Int64("user_id", t.User.ID),
			zap.Error(err),
		)
		<-ctx.Done()
		return
	}
	s.track(dice)

	reels := ReelsFromValue(value)

	presses := s.events.Watch(ctx, func(cb Callback) bool {
		return cb.Message == dice && cb.User.ID == t.User.ID
	})

	matched := make([]string, 0, len(reels))
	for len(matched) < len(reels) {
		select {
		case <-ctx.Done():
			return
		case cb := <-presses:
			if cb.Data != reels[len(matched)] {
				s.answer(cb, "Nope", false)
				continue
			}
			matched = append(matched, cb.Data)
			if len(matched) < len(reels) {
				s.answer(cb, "Ok, next one", false)
				if err := s.api.EditKeyboard(dice, SlotMachineKeyboard(matched)); err != nil {
					s.logger.Debug("failed to edit slot-machine keyboard", zap.Error(err))
				}
			} else {
				s.answer(cb, "Thank you and welcome", true)
			}
		}
	}

	if s.pass(t) {
		s.deleteNow(prompt, dice)
	}
}
