// Package economy — handlers.go обрабатывает команды !баланс, !отсыпать и !транзакции.
package economy

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"pixelferma.ru/idle-bot/internal/common"
	"pixelferma.ru/idle-bot/internal/features/members"
)

// Handler обрабатывает команды экономики.
type Handler struct {
	service       *Service
	memberService *members.Service
	bot           *tgbotapi.BotAPI
}

// NewHandler создаёт новый обработчик команд экономики.
func NewHandler(service *Service, memberService *members.Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{service: service, memberService: memberService, bot: bot}
}

// HandleBalance обрабатывает команду !баланс.
func (h *Handler) HandleBalance(ctx context.Context, chatID, userID int64) {
	b, err := h.service.GetBalance(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Ошибка получения баланса")
		h.sendMessage(chatID, "❌ Ошибка получения баланса")
		return
	}

	text := fmt.Sprintf(
		"💰 Твой счёт\n\nМонеты: %s\nКристаллы: %s\n\nЗа всё время: %s, %s",
		common.FormatCoins(b.Coins),
		common.FormatCrystals(b.Crystals),
		common.FormatCoins(b.LifetimeCoins),
		common.FormatCrystals(b.LifetimeCrystals),
	)
	h.sendMessage(chatID, text)
}

// HandleTransfer обрабатывает команду !отсыпать @username <сумма>.
func (h *Handler) HandleTransfer(ctx context.Context, chatID, userID int64, args []string) {
	if len(args) < 2 {
		h.sendMessage(chatID, "Использование: !отсыпать @username <сумма>")
		return
	}

	username := strings.TrimPrefix(args[0], "@")
	amount, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || amount <= 0 {
		h.sendMessage(chatID, "❌ Сумма должна быть положительным числом")
		return
	}

	recipient, err := h.memberService.GetByUsername(ctx, username)
	if err != nil {
		h.sendMessage(chatID, "❌ Игрок @"+username+" не найден")
		return
	}

	err = h.service.Transfer(ctx, userID, recipient.UserID, amount)
	switch {
	case errors.Is(err, common.ErrSelfTransfer):
		h.sendMessage(chatID, "❌ Нельзя переводить монеты самому себе")
	case errors.Is(err, common.ErrInsufficientBalance):
		h.sendMessage(chatID, "❌ Не хватает монет")
	case err != nil:
		log.WithError(err).Error("Ошибка перевода")
		h.sendMessage(chatID, "❌ Перевод не удался")
	default:
		h.sendMessage(chatID, fmt.Sprintf("✅ Перевод выполнен: %s → %s",
			common.FormatCoins(amount), recipient.DisplayName()))
	}
}

// HandleTransactions обрабатывает команду !транзакции.
func (h *Handler) HandleTransactions(ctx context.Context, chatID, userID int64) {
	loc := h.memberService.Location(ctx, userID)
	text, err := h.service.FormatTransactionHistory(ctx, userID, loc)
	if err != nil {
		log.WithError(err).Error("Ошибка получения истории транзакций")
		h.sendMessage(chatID, "❌ Ошибка получения истории")
		return
	}
	h.sendMessage(chatID, text)
}

func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}
