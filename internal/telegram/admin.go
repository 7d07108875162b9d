package telegram

import (
	"sync"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"gatekeeper/internal/captcha"
)

// adminCacheTTL bounds how long a chat's admin list is reused before the
// Bot API is asked again
const adminCacheTTL = 5 * time.Minute

// AdminCache implements captcha.AdminChecker against the Bot API with a
// short per-chat cache. Lookup failures are treated as "not an admin".
type AdminCache struct {
	bot    *tele.Bot
	logger *zap.Logger

	mu    sync.Mutex
	chats map[int64]adminEntry
}

type adminEntry struct {
	ids     map[int64]struct{}
	fetched time.Time
}

// NewAdminCache creates an admin checker backed by the bot
func NewAdminCache(bot *tele.Bot, logger *zap.Logger) *AdminCache {
	return &AdminCache{
		bot:    bot,
		logger: logger,
		chats:  make(map[int64]adminEntry),
	}
}

// IsAdmin reports whether the user administers the chat
func (c *AdminCache) IsAdmin(chatID, userID int64) bool {
	c.mu.Lock()
	entry, ok := c.chats[chatID]
	c.mu.Unlock()

	if !ok || time.Since(entry.fetched) > adminCacheTTL {
		fresh, err := c.fetch(chatID)
		if err != nil {
			c.logger.Warn("failed to fetch chat admins",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			return false
		}
		entry = fresh
	}

	_, isAdmin := entry.ids[userID]
	return isAdmin
}

func (c *AdminCache) fetch(chatID int64) (adminEntry, error) {
	admins, err := c.bot.AdminsOf(&tele.Chat{ID: chatID})
	if err != nil {
		return adminEntry{}, err
	}

	ids := make(map[int64]struct{}, len(admins))
	for _, member := range admins {
		if member.User != nil {
			ids[member.User.ID] = struct{}{}
		}
	}

	entry := adminEntry{ids: ids, fetched: time.Now()}
	c.mu.Lock()
	c.chats[chatID] = entry
	c.mu.Unlock()
	return entry, nil
}

var _ captcha.AdminChecker = (*AdminCache)(nil)
