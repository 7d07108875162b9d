package testutil

import (
	"sync"

	"gatekeeper/internal/captcha"
)

// SentMessage is one message recorded by FakeChat
type SentMessage struct {
	Ref      captcha.MessageRef
	Text     string
	Keyboard captcha.Keyboard
	Slot     bool
}

// RestrictCall records one Restrict invocation
type RestrictCall struct {
	ChatID int64
	UserID int64
	Perms  captcha.Permissions
}

// AnswerCall records one AnswerCallback invocation
type AnswerCall struct {
	CallbackID string
	Text       string
	ShowAlert  bool
}

// EditCall records one EditKeyboard invocation
type EditCall struct {
	Ref      captcha.MessageRef
	Keyboard captcha.Keyboard
}

// FakeChat implements captcha.ChatAPI recording every call, for tests that
// drive the verification engine without a real platform
type FakeChat struct {
	mu sync.Mutex

	// SlotValue is returned as the rolled dice value (1..64)
	SlotValue int

	nextID     int
	sent       []SentMessage
	deleted    []captcha.MessageRef
	restricted []RestrictCall
	banned     []int64
	answered   []AnswerCall
	edited     []EditCall
}

// NewFakeChat creates a fake connector rolling the given slot value
func NewFakeChat(slotValue int) *FakeChat {
	return &FakeChat{SlotValue: slotValue}
}

func (f *FakeChat) SendMessage(chatID int64, text string, kb captcha.Keyboard) (captcha.MessageRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	ref := captcha.MessageRef{ChatID: chatID, MessageID: f.nextID}
	f.sent = append(f.sent, SentMessage{Ref: ref, Text: text, Keyboard: kb})
	return ref, nil
}

func (f *FakeChat) SendSlotMachine(chatID int64, replyTo captcha.MessageRef, kb captcha.Keyboard) (captcha.MessageRef, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	ref := captcha.MessageRef{ChatID: chatID, MessageID: f.nextID}
	f.sent = append(f.sent, SentMessage{Ref: ref, Keyboard: kb, Slot: true})
	return ref, f.SlotValue, nil
}

func (f *FakeChat) EditKeyboard(msg captcha.MessageRef, kb captcha.Keyboard) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edited = append(f.edited, EditCall{Ref: msg, Keyboard: kb})
	return nil
}

func (f *FakeChat) DeleteMessage(msg captcha.MessageRef) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, msg)
	return nil
}

func (f *FakeChat) AnswerCallback(callbackID, text string, showAlert bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answered = append(f.answered, AnswerCall{CallbackID: callbackID, Text: text, ShowAlert: showAlert})
	return nil
}

func (f *FakeChat) Restrict(chatID, userID int64, perms captcha.Permissions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.restricted = append(f.restricted, RestrictCall{ChatID: chatID, UserID: userID, Perms: perms})
	return nil
}

func (f *FakeChat) Ban(chatID, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.banned = append(f.banned, userID)
	return nil
}

// Sent returns a snapshot of recorded messages
func (f *FakeChat) Sent() []SentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]SentMessage(nil), f.sent...)
}

// Deleted returns a snapshot of deleted message refs
func (f *FakeChat) Deleted() []captcha.MessageRef {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]captcha.MessageRef(nil), f.deleted...)
}

// Restricted returns a snapshot of restrict calls
func (f *FakeChat) Restricted() []RestrictCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]RestrictCall(nil), f.restricted...)
}

// Banned returns a snapshot of banned user ids
func (f *FakeChat) Banned() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int64(nil), f.banned...)
}

// Answered returns a snapshot of callback answers
func (f *FakeChat) Answered() []AnswerCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]AnswerCall(nil), f.answered...)
}

// Edited returns a snapshot of keyboard edits
func (f *FakeChat) Edited() []EditCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]EditCall(nil), f.edited...)
}

var _ captcha.ChatAPI = (*FakeChat)(nil)
