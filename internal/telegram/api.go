package telegram

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"gatekeeper/internal/captcha"
)

// API implements captcha.ChatAPI on top of telebot
type API struct {
	bot    *tele.Bot
	logger *zap.Logger
}

// NewAPI creates the telebot-backed connector adapter
func NewAPI(bot *tele.Bot, logger *zap.Logger) *API {
	return &API{bot: bot, logger: logger}
}

// SendMessage sends a text message with an optional inline keyboard
func (a *API) SendMessage(chatID int64, text string, kb captcha.Keyboard) (captcha.MessageRef, error) {
	msg, err := a.bot.Send(tele.ChatID(chatID), text, &tele.SendOptions{
		ReplyMarkup: Markup(kb),
	})
	if err != nil {
		return captcha.MessageRef{}, err
	}
	return messageRef(msg), nil
}

// SendSlotMachine sends the animated slot-machine dice as a reply and
// returns the rolled value
func (a *API) SendSlotMachine(chatID int64, replyTo captcha.MessageRef, kb captcha.Keyboard) (captcha.MessageRef, int, error) {
	msg, err := a.bot.Send(tele.ChatID(chatID), tele.Slot, &tele.SendOptions{
		ReplyTo:     &tele.Message{ID: replyTo.MessageID, Chat: &tele.Chat{ID: replyTo.ChatID}},
		ReplyMarkup: Markup(kb),
	})
	if err != nil {
		return captcha.MessageRef{}, 0, err
	}
	if msg.Dice == nil {
		return messageRef(msg), 0, fmt.Errorf("slot-machine message carries no dice value")
	}
	return messageRef(msg), msg.Dice.Value, nil
}

// EditKeyboard replaces the message's inline keyboard
func (a *API) EditKeyboard(msg captcha.MessageRef, kb captcha.Keyboard) error {
	_, err := a.bot.EditReplyMarkup(storedMessage(msg), Markup(kb))
	return err
}

// DeleteMessage issues a single delete attempt
func (a *API) DeleteMessage(msg captcha.MessageRef) error {
	return a.bot.Delete(storedMessage(msg))
}

// AnswerCallback acknowledges a callback press
func (a *API) AnswerCallback(callbackID, text string, showAlert bool) error {
	return a.bot.Respond(&tele.Callback{ID: callbackID}, &tele.CallbackResponse{
		Text:      text,
		ShowAlert: showAlert,
	})
}

// Restrict applies the given permissions to a chat member
func (a *API) Restrict(chatID, userID int64, perms captcha.Permissions) error {
	return a.bot.Restrict(&tele.Chat{ID: chatID}, &tele.ChatMember{
		User:   &tele.User{ID: userID},
		Rights: rights(perms),
	})
}

// Ban removes a chat member and blocks rejoining
func (a *API) Ban(chatID, userID int64) error {
	return a.bot.Ban(&tele.Chat{ID: chatID}, &tele.ChatMember{
		User: &tele.User{ID: userID},
	})
}

// Markup converts a captcha keyboard into telebot inline markup.
// A nil keyboard yields nil markup so plain messages stay plain.
func Markup(kb captcha.Keyboard) *tele.ReplyMarkup {
	if kb == nil {
		return nil
	}
	rows := make([][]tele.InlineButton, 0, len(kb))
	for _, row := range kb {
		buttons := make([]tele.InlineButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, tele.InlineButton{Text: b.Text, Data: b.Data})
		}
		rows = append(rows, buttons)
	}
	return &tele.ReplyMarkup{InlineKeyboard: rows}
}

func rights(perms captcha.Permissions) tele.Rights {
	return tele.Rights{
		CanSendMessages: perms.CanSendMessages,
		CanSendMedia:    perms.CanSendMedia,
		CanSendPolls:    perms.CanSendPolls,
		CanSendOther:    perms.CanSendOther,
		CanAddPreviews:  perms.CanAddPreviews,
		CanInviteUsers:  perms.CanInviteUsers,
	}
}

func messageRef(msg *tele.Message) captcha.MessageRef {
	return captcha.MessageRef{ChatID: msg.Chat.ID, MessageID: msg.ID}
}

func storedMessage(msg captcha.MessageRef) tele.StoredMessage {
	return tele.StoredMessage{
		MessageID: strconv.Itoa(msg.MessageID),
		ChatID:    msg.ChatID,
	}
}
