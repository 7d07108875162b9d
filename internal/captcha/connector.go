package captcha

import "gatekeeper/internal/domain"

// MessageRef identifies one message sent to a chat
type MessageRef struct {
	ChatID    int64
	MessageID int
}

// Button is one inline keyboard button carrying callback data
type Button struct {
	Text string
	Data string
}

// Keyboard is rows of inline buttons
type Keyboard [][]Button

// Callback is an inbound button press delivered by the chat platform
type Callback struct {
	ID      string
	User    domain.User
	Message MessageRef
	Data    string
}

// Permissions is the subset of chat member rights the bot toggles
// during verification
type Permissions struct {
	CanSendMessages bool
	CanSendMedia    bool
	CanSendPolls    bool
	CanSendOther    bool
	CanAddPreviews  bool
	CanInviteUsers  bool
}

// NoPermissions is the join-time restriction: the member can do nothing
// until the challenge resolves
func NoPermissions() Permissions {
	return Permissions{}
}

// LeftRestrictions are the rights restored to a member who passed
func LeftRestrictions() Permissions {
	return Permissions{
		CanSendMessages: true,
		CanSendMedia:    true,
		CanSendPolls:    true,
		CanSendOther:    true,
		CanAddPreviews:  true,
		CanInviteUsers:  true,
	}
}

// ChatAPI is the outbound half of the chat-platform connector.
// Implementations live outside this package; tests use a fake.
type ChatAPI interface {
	SendMessage(chatID int64, text string, kb Keyboard) (MessageRef, error)

	// SendSlotMachine sends the animated slot-machine roll as a reply to
	// replyTo and returns the sent message together with the rolled dice
	// value (1..64).
	SendSlotMachine(chatID int64, replyTo MessageRef, kb Keyboard) (MessageRef, int, error)

	EditKeyboard(msg MessageRef, kb Keyboard) error

	// DeleteMessage issues a single delete attempt. Callers never retry.
	DeleteMessage(msg MessageRef) error

	AnswerCallback(callbackID, text string, showAlert bool) error

	Restrict(chatID, userID int64, perms Permissions) error
	Ban(chatID, userID int64) error
}

// AdminChecker reports whether a user administers a chat. A nil checker
// disables admin-cancel buttons and admin-gated behavior entirely.
type AdminChecker interface {
	IsAdmin(chatID, userID int64) bool
}

// SettingsSource provides the per-chat settings snapshot for a session,
// creating defaults when the chat has none stored yet
type SettingsSource interface {
	Settings(chatID int64) (*domain.ChatSettings, error)
}
