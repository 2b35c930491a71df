// Package filters отсекает сообщения из чужих чатов.
// Игра живёт в личке и (опционально) в одном общем игровом чате.
package filters

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

type ChatFilter struct {
	gameChatID int64
}

func NewChatFilter(gameChatID int64) *ChatFilter {
	return &ChatFilter{gameChatID: gameChatID}
}

// CheckAccess решает, обрабатывать ли сообщение.
// Личка разрешена всегда: регистрация игрока происходит на первом же
// сообщении. Групповые чаты — только настроенный игровой чат.
func (f *ChatFilter) CheckAccess(message *tgbotapi.Message) bool {
	if message == nil || message.Chat == nil || message.From == nil {
		log.WithField("component", "ChatFilter").Warn("nil message/chat/from")
		return false
	}

	if message.Chat.IsPrivate() {
		return true
	}

	if f.gameChatID != 0 && message.Chat.ID == f.gameChatID {
		return true
	}

	log.WithFields(log.Fields{
		"component": "ChatFilter",
		"chat_id":   message.Chat.ID,
		"chat_type": message.Chat.Type,
	}).Debug("deny: чужой чат")
	return false
}
