// Package bot содержит главный модуль бота — инициализацию, запуск и остановку.
// bot.go принимает апдейты, прогоняет их через фильтры и маршрутизирует команды.
package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"pixelferma.ru/idle-bot/internal/bot/filters"
	"pixelferma.ru/idle-bot/internal/bot/middleware"
	"pixelferma.ru/idle-bot/internal/config"
	"pixelferma.ru/idle-bot/internal/features/admin"
	"pixelferma.ru/idle-bot/internal/features/dailyreward"
	"pixelferma.ru/idle-bot/internal/features/economy"
	"pixelferma.ru/idle-bot/internal/features/farm"
	"pixelferma.ru/idle-bot/internal/features/members"
)

// Bot — главная структура бота, объединяющая все компоненты.
type Bot struct {
	api *tgbotapi.BotAPI
	cfg *config.Config

	chatFilter  *filters.ChatFilter
	rateLimiter *middleware.RateLimiter

	memberHandler  *members.Handler
	economyHandler *economy.Handler
	farmHandler    *farm.Handler
	rewardHandler  *dailyreward.Handler
	adminHandler   *admin.Handler

	memberService  *members.Service
	economyService *economy.Service
	farmService    *farm.Service
	rewardService  *dailyreward.Service

	parser *CommandParser

	// ограничитель параллелизма обработки апдейтов
	inflight chan struct{}
}

// New создаёт новый экземпляр бота со всеми зависимостями.
func New(
	api *tgbotapi.BotAPI,
	cfg *config.Config,
	memberService *members.Service,
	memberHandler *members.Handler,
	economyService *economy.Service,
	economyHandler *economy.Handler,
	farmService *farm.Service,
	farmHandler *farm.Handler,
	rewardService *dailyreward.Service,
	rewardHandler *dailyreward.Handler,
	adminHandler *admin.Handler,
	chatFilter *filters.ChatFilter,
) *Bot {
	maxInFlight := cfg.BotMaxInflight
	if maxInFlight <= 0 {
		maxInFlight = 64
	}

	return &Bot{
		api:            api,
		cfg:            cfg,
		chatFilter:     chatFilter,
		rateLimiter:    middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
		memberHandler:  memberHandler,
		economyHandler: economyHandler,
		farmHandler:    farmHandler,
		rewardHandler:  rewardHandler,
		adminHandler:   adminHandler,
		memberService:  memberService,
		economyService: economyService,
		farmService:    farmService,
		rewardService:  rewardService,
		parser:         NewCommandParser(),
		inflight:       make(chan struct{}, maxInFlight),
	}
}

// Start запускает polling обновлений от Telegram.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.BotUpdateTimeoutSeconds

	updates := b.api.GetUpdatesChan(u)

	log.WithFields(log.Fields{
		"max_inflight": b.cfg.BotMaxInflight,
		"timeout_sec":  b.cfg.BotUpdateTimeoutSeconds,
	}).Info("Бот запущен и ожидает сообщения...")

	for {
		select {
		case <-ctx.Done():
			log.Info("Бот останавливается (ctx done)...")
			b.api.StopReceivingUpdates()
			b.rateLimiter.Close()
			return

		case update, ok := <-updates:
			if !ok {
				log.Info("Канал updates закрыт, бот остановлен")
				return
			}

			// лимит параллелизма
			b.inflight <- struct{}{}
			go func(upd tgbotapi.Update) {
				defer func() { <-b.inflight }()
				b.handleUpdate(ctx, upd)
			}(update)
		}
	}
}

// handleUpdate обрабатывает одно обновление от Telegram.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer middleware.RecoverFromPanic()

	if update.Message == nil || update.Message.Text == "" {
		return
	}

	message := update.Message
	middleware.LogMessage(message)

	if !b.chatFilter.CheckAccess(message) {
		return
	}

	// Rate limiting
	if !b.rateLimiter.Allow(message.From.ID) {
		log.WithField("user_id", message.From.ID).Debug("rate limited")
		return
	}

	chatID := message.Chat.ID
	userID := message.From.ID

	// Первый контакт игрока с ботом: регистрация + стартовые счёт и ферма
	b.ensurePlayer(ctx, userID, message.From.UserName, message.From.FirstName, message.From.LastName)

	// Любое сообщение — это "вход в игру": актуализируем серию на сегодня.
	// В тот же день повторные вызовы ничего не делают.
	if b.cfg.FeatureDailyRewardEnabled {
		if _, err := b.rewardService.EnsureToday(ctx, userID); err != nil {
			log.WithError(err).WithField("user_id", userID).Warn("EnsureToday failed")
		}
	}

	// В личке сообщение может принадлежать админ-панели
	if message.Chat.IsPrivate() {
		if b.adminHandler.HandleAdminMessage(ctx, chatID, userID, message.Text) {
			return
		}
	}

	cmd, args, isCommand := b.parser.ParseCommand(message.Text)
	if isCommand {
		b.routeCommand(ctx, chatID, userID, cmd, args)
	}
}

// ensurePlayer гарантирует, что у игрока есть запись, счёт и ферма.
func (b *Bot) ensurePlayer(ctx context.Context, userID int64, username, firstName, lastName string) {
	if err := b.memberService.EnsureMember(ctx, userID, username, firstName, lastName); err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("EnsureMember failed")
		return
	}
	if err := b.economyService.CreateBalance(ctx, userID); err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("CreateBalance failed")
	}
	if err := b.farmService.CreateFarm(ctx, userID); err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("CreateFarm failed")
	}
}

// routeCommand маршрутизирует команду к нужному обработчику.
func (b *Bot) routeCommand(ctx context.Context, chatID, userID int64, cmd string, args []string) {
	log.WithFields(log.Fields{
		"cmd":  cmd,
		"args": args,
	}).Debug("routing command")

	switch cmd {
	case "start", "help", "помощь":
		b.sendMessage(chatID, helpText)

	case "награда":
		if b.cfg.FeatureDailyRewardEnabled {
			b.rewardHandler.HandleReward(ctx, chatID, userID)
		}

	case "забрать":
		if b.cfg.FeatureDailyRewardEnabled {
			b.rewardHandler.HandleClaim(ctx, chatID, userID)
		}

	case "серия":
		if b.cfg.FeatureDailyRewardEnabled {
			b.rewardHandler.HandleStreak(ctx, chatID, userID)
		}

	case "баланс":
		b.economyHandler.HandleBalance(ctx, chatID, userID)

	case "перевести":
		b.economyHandler.HandleTransfer(ctx, chatID, userID, args)

	case "транзакции":
		b.economyHandler.HandleTransactions(ctx, chatID, userID)

	case "ферма":
		if b.cfg.FeatureFarmEnabled {
			b.farmHandler.HandleFarm(ctx, chatID, userID)
		}

	case "улучшить":
		if b.cfg.FeatureFarmEnabled {
			b.farmHandler.HandleUpgrade(ctx, chatID, userID)
		}

	case "собрать":
		if b.cfg.FeatureFarmEnabled {
			b.farmHandler.HandleCollect(ctx, chatID, userID)
		}

	case "пояс":
		b.memberHandler.HandleTimezone(ctx, chatID, userID, args)
	}
}

const helpText = `🌾 ПиксельФерма

🎁 Ежедневная награда:
!награда — что ждёт сегодня
!забрать — получить награду дня
!серия — твоя серия входов

💰 Экономика:
!баланс, !перевести @игрок <сумма>, !транзакции

🌾 Ферма:
!ферма, !улучшить, !собрать

⚙️ Прочее:
!пояс <IANA-пояс> — свой часовой пояс (граница дня)`

// sendMessage — утилита для отправки сообщений.
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки сообщения")
	}
}

// SendMessageToUser отправляет сообщение игроку в личку (уведомления, напоминания).
func (b *Bot) SendMessageToUser(userID int64, text string) {
	msg := tgbotapi.NewMessage(userID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.WithError(err).WithField("user_id", userID).Debug("Не удалось отправить сообщение")
	}
}

// CommandParser парсит русские команды с префиксами !, . и /
type CommandParser struct {
	validPrefixes []string
}

// NewCommandParser создаёт парсер команд.
func NewCommandParser() *CommandParser {
	return &CommandParser{
		validPrefixes: []string{"!", ".", "/"},
	}
}

// ParseCommand разбирает текст на команду и аргументы.
func (p *CommandParser) ParseCommand(text string) (string, []string, bool) {
	text = strings.TrimSpace(text)

	hasPrefix := false
	for _, prefix := range p.validPrefixes {
		if strings.HasPrefix(text, prefix) {
			text = strings.TrimPrefix(text, prefix)
			hasPrefix = true
			break
		}
	}

	if !hasPrefix {
		return "", nil, false
	}

	text = strings.TrimSpace(text)
	parts := strings.Fields(text)

	if len(parts) == 0 {
		return "", nil, false
	}

	command := strings.ToLower(parts[0])
	var args []string
	if len(parts) > 1 {
		args = parts[1:]
	}

	return command, args, true
}
