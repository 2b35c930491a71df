// Package members — handlers.go обрабатывает команды профиля.
package members

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// Handler обрабатывает команды игрока.
type Handler struct {
	service *Service
	bot     *tgbotapi.BotAPI
}

// NewHandler создаёт новый обработчик команд профиля.
func NewHandler(service *Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{service: service, bot: bot}
}

// HandleTimezone обрабатывает команду !пояс <IANA-имя>.
// Без аргумента показывает текущий пояс игрока.
func (h *Handler) HandleTimezone(ctx context.Context, chatID, userID int64, args []string) {
	if len(args) == 0 {
		loc := h.service.Location(ctx, userID)
		h.sendMessage(chatID, fmt.Sprintf("🕒 Твой часовой пояс: %s\nСменить: !пояс Asia/Novosibirsk", loc))
		return
	}

	if err := h.service.SetTimezone(ctx, userID, args[0]); err != nil {
		h.sendMessage(chatID, "❌ Неизвестный часовой пояс. Пример: Europe/Moscow")
		return
	}
	h.sendMessage(chatID, fmt.Sprintf("✅ Часовой пояс обновлён: %s\nГраница игрового дня теперь считается по нему", args[0]))
}

func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}
