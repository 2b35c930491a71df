// Package farm — handlers.go обрабатывает команды !ферма, !улучшить и !собрать.
package farm

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"pixelferma.ru/idle-bot/internal/common"
)

// Handler обрабатывает команды фермы.
type Handler struct {
	service *Service
	bot     *tgbotapi.BotAPI
}

// NewHandler создаёт новый обработчик команд фермы.
func NewHandler(service *Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{service: service, bot: bot}
}

// HandleFarm обрабатывает команду !ферма — показывает состояние фермы.
func (h *Handler) HandleFarm(ctx context.Context, chatID, userID int64) {
	farm, err := h.service.GetFarm(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Ошибка получения фермы")
		h.sendMessage(chatID, "❌ Ошибка получения данных фермы")
		return
	}

	income, err := h.service.IncomePerMinute(ctx, userID)
	if err != nil {
		income = 0
	}
	ready, waiting, _ := h.service.PendingCrates(ctx, userID)

	text := fmt.Sprintf(
		"🌾 Твоя ферма\n\nУровень: %d\nДоход: %.1f монет/мин\nСледующий уровень: %s\n\n📦 Сундуки: %d готово, %d в пути",
		farm.Level,
		income,
		common.FormatCoins(h.service.UpgradeCost(farm.Level)),
		ready, waiting,
	)
	h.sendMessage(chatID, text)
}

// HandleUpgrade обрабатывает команду !улучшить.
func (h *Handler) HandleUpgrade(ctx context.Context, chatID, userID int64) {
	farm, err := h.service.Upgrade(ctx, userID)
	if errors.Is(err, common.ErrUpgradeTooExpensive) {
		h.sendMessage(chatID, "❌ Не хватает монет на улучшение")
		return
	}
	if err != nil {
		log.WithError(err).Error("Ошибка улучшения фермы")
		h.sendMessage(chatID, "❌ Улучшение не удалось")
		return
	}
	h.sendMessage(chatID, fmt.Sprintf("⬆️ Ферма улучшена до уровня %d!", farm.Level))
}

// HandleCollect обрабатывает команду !собрать — сбор готовых сундуков.
func (h *Handler) HandleCollect(ctx context.Context, chatID, userID int64) {
	count, total, err := h.service.CollectCrates(ctx, userID)
	if errors.Is(err, common.ErrNothingToCollect) {
		h.sendMessage(chatID, "📦 Пока нечего собирать")
		return
	}
	if err != nil {
		log.WithError(err).Error("Ошибка сбора сундуков")
		h.sendMessage(chatID, "❌ Сбор не удался")
		return
	}
	h.sendMessage(chatID, fmt.Sprintf("📦 Собрано %d %s: +%s",
		count, common.PluralizeCrates(count), common.FormatCoins(total)))
}

func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}
