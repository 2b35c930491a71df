// Package dailyreward — handlers.go обрабатывает команды !награда, !забрать и !серия.
package dailyreward

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"pixelferma.ru/idle-bot/internal/common"
)

// Handler обрабатывает команды ежедневных наград.
type Handler struct {
	service *Service
	bot     *tgbotapi.BotAPI
}

// NewHandler создаёт новый обработчик команд ежедневных наград.
func NewHandler(service *Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{service: service, bot: bot}
}

// HandleReward обрабатывает команду !награда — предпросмотр награды дня.
func (h *Handler) HandleReward(ctx context.Context, chatID, userID int64) {
	state, reward, err := h.service.Preview(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Ошибка предпросмотра награды")
		h.sendMessage(chatID, "❌ Не удалось показать награду дня")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🎁 Награда дня %d: %s\n%s\n\n%s",
		reward.StreakDay, reward.Title, reward.Description, describeReward(reward)))
	if state.HasClaimedToday {
		sb.WriteString("\n\n✅ Сегодняшняя награда уже получена, приходи завтра")
	} else {
		sb.WriteString("\n\nЗабрать: !забрать")
	}
	h.sendMessage(chatID, sb.String())
}

// HandleClaim обрабатывает команду !забрать — выдачу награды дня.
func (h *Handler) HandleClaim(ctx context.Context, chatID, userID int64) {
	reward, err := h.service.ClaimToday(ctx, userID)
	if errors.Is(err, common.ErrAlreadyClaimed) {
		// Штатная ситуация, не ошибка
		h.sendMessage(chatID, "✅ Сегодняшняя награда уже получена, приходи завтра")
		return
	}
	if err != nil {
		log.WithError(err).Error("Ошибка выдачи награды")
		h.sendMessage(chatID, "❌ Не удалось выдать награду")
		return
	}

	h.sendMessage(chatID, fmt.Sprintf("🎉 %s\n\n%s", reward.Title, describeReward(reward)))
}

// HandleStreak обрабатывает команду !серия — состояние серии входов.
func (h *Handler) HandleStreak(ctx context.Context, chatID, userID int64) {
	state, err := h.service.EnsureToday(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Ошибка получения серии")
		h.sendMessage(chatID, "❌ Не удалось получить данные серии")
		return
	}

	claimed := "ещё нет"
	if state.HasClaimedToday {
		claimed = "да"
	}
	h.sendMessage(chatID, fmt.Sprintf(
		"🔥 Твоя серия входов\n\nДень серии: %d из %d\nНаграда сегодня получена: %s\nВсего дней в игре: %d",
		state.CurrentStreakDay, h.service.sched.StreakLength, claimed, state.TotalLoginDays,
	))
}

// describeReward возвращает человекочитаемое описание содержимого награды.
func describeReward(r *GeneratedReward) string {
	switch r.Type {
	case RewardCoins:
		n := roundAmount(r.Amount)
		return fmt.Sprintf("💰 %s", common.FormatCoins(n))
	case RewardCrystals:
		n := roundAmount(r.Amount)
		return fmt.Sprintf("💎 %s", common.FormatCrystals(n))
	case RewardCoinsBoost:
		return fmt.Sprintf("🚀 +%.0f%% к доходу фермы на %s", r.Amount, formatDuration(r.BoostDuration))
	case RewardCrystalsBoost:
		return fmt.Sprintf("🚀 +%.0f%% к кристаллам на %s", r.Amount, formatDuration(r.BoostDuration))
	case RewardCrates:
		n := int(r.Amount)
		return fmt.Sprintf("📦 %d %s появятся на ферме", n, common.PluralizeCrates(n))
	case RewardToken:
		return "🎫 Особый жетон"
	}
	return ""
}

func formatDuration(d time.Duration) string {
	if d >= time.Hour && d%time.Hour == 0 {
		return fmt.Sprintf("%d ч", int(d.Hours()))
	}
	return fmt.Sprintf("%d мин", int(d.Minutes()))
}

func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}
