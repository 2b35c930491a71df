// Package admin — handlers.go обрабатывает взаимодействие с админ-панелью.
// Панель работает в личных сообщениях.
// Поток: аутентификация → команды (!выдать, !статистика, !выход).
package admin

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"pixelferma.ru/idle-bot/internal/common"
	"pixelferma.ru/idle-bot/internal/features/economy"
)

// Handler обрабатывает админ-команды.
type Handler struct {
	service *Service
	bot     *tgbotapi.BotAPI
}

// NewHandler создаёт обработчик админ-панели.
func NewHandler(service *Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{service: service, bot: bot}
}

// HandleAdminMessage обрабатывает сообщение от администратора в DM.
// Возвращает true, если сообщение обработано панелью.
func (h *Handler) HandleAdminMessage(ctx context.Context, chatID, userID int64, text string) bool {
	if !h.service.IsAdmin(userID) {
		return false
	}

	// Сначала состояние диалога: ждём пароль
	state := h.service.GetState(userID)
	if state != nil && state.State == StateAwaitingPassword {
		h.handlePasswordInput(ctx, chatID, userID, text)
		return true
	}

	cmd, args := splitCommand(text)
	switch cmd {
	case "!админ":
		if h.service.HasActiveSession(ctx, userID) {
			h.sendMessage(chatID, adminHelp)
			return true
		}
		h.sendMessage(chatID, "🔐 Введите пароль для доступа к админ-панели:")
		h.service.SetState(userID, StateAwaitingPassword, nil)
		return true

	case "!выдать":
		h.handleGrant(ctx, chatID, userID, args)
		return true

	case "!статистика":
		h.handleStats(ctx, chatID, userID)
		return true

	case "!выход":
		if err := h.service.Logout(ctx, userID); err != nil {
			log.WithError(err).Error("Ошибка выхода из админ-панели")
		}
		h.sendMessage(chatID, "👋 Сессия завершена")
		return true
	}

	return false
}

const adminHelp = `🔧 Админ-панель

!выдать @игрок <сумма> [монеты|кристаллы]
!статистика — сводка по игре
!выход — завершить сессию`

// handlePasswordInput обрабатывает ввод пароля.
func (h *Handler) handlePasswordInput(ctx context.Context, chatID, userID int64, password string) {
	h.service.ClearState(userID)

	err := h.service.VerifyPassword(ctx, userID, password)
	switch {
	case errors.Is(err, common.ErrTooManyAttempts):
		h.sendMessage(chatID, "⛔ Слишком много попыток, подождите час")
	case errors.Is(err, common.ErrWrongPassword):
		h.sendMessage(chatID, "❌ Неверный пароль")
	case err != nil:
		log.WithError(err).Error("Ошибка аутентификации админа")
		h.sendMessage(chatID, "❌ Ошибка аутентификации")
	default:
		h.sendMessage(chatID, "✅ Аутентификация успешна!\n\n"+adminHelp)
	}
}

// handleGrant обрабатывает !выдать @игрок <сумма> [монеты|кристаллы].
func (h *Handler) handleGrant(ctx context.Context, chatID, userID int64, args []string) {
	if len(args) < 2 {
		h.sendMessage(chatID, "Формат: !выдать @игрок <сумма> [монеты|кристаллы]")
		return
	}

	amount, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || amount <= 0 {
		h.sendMessage(chatID, "❌ Сумма должна быть положительным числом")
		return
	}

	currency := economy.CurrencyCoins
	if len(args) >= 3 && strings.HasPrefix(strings.ToLower(args[2]), "кристалл") {
		currency = economy.CurrencyCrystals
	}

	err = h.service.Grant(ctx, userID, args[0], amount, currency)
	switch {
	case errors.Is(err, common.ErrSessionExpired):
		h.sendMessage(chatID, "🔐 Сессия истекла, введите !админ")
	case errors.Is(err, common.ErrUserNotFound):
		h.sendMessage(chatID, "❌ Игрок не найден")
	case err != nil:
		log.WithError(err).Error("Ошибка выдачи валюты")
		h.sendMessage(chatID, "❌ Выдача не удалась")
	default:
		h.sendMessage(chatID, fmt.Sprintf("✅ Выдано: %d (%s) игроку %s", amount, currency, args[0]))
	}
}

// handleStats обрабатывает !статистика.
func (h *Handler) handleStats(ctx context.Context, chatID, userID int64) {
	stats, err := h.service.GetStats(ctx, userID)
	if errors.Is(err, common.ErrSessionExpired) {
		h.sendMessage(chatID, "🔐 Сессия истекла, введите !админ")
		return
	}
	if err != nil {
		log.WithError(err).Error("Ошибка сбора статистики")
		h.sendMessage(chatID, "❌ Не удалось собрать статистику")
		return
	}

	h.sendMessage(chatID, fmt.Sprintf(
		"📊 Статистика игры\n\nИгроков: %d\nМонет в обороте: %d\nКристаллов в обороте: %d\nАктивных серий: %d\nЗабрали награду сегодня: %d\nМакс. уровень фермы: %d\nСундуков не собрано: %d",
		stats.Players, stats.TotalCoins, stats.TotalCrystals,
		stats.ActiveStreaks, stats.ClaimedToday, stats.FarmsMaxLevel, stats.CratesPending,
	))
}

func splitCommand(text string) (string, []string) {
	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}

func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}
