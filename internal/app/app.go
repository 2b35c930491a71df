// Package app инициализирует все компоненты приложения.
// app.go — точка сборки: создаёт БД-пул, репозитории, сервисы, обработчики,
// подписывает бота на события наград и собирает всё в один объект.
package app

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"pixelferma.ru/idle-bot/internal/bot"
	"pixelferma.ru/idle-bot/internal/bot/filters"
	"pixelferma.ru/idle-bot/internal/common"
	"pixelferma.ru/idle-bot/internal/config"
	"pixelferma.ru/idle-bot/internal/db/postgres"
	"pixelferma.ru/idle-bot/internal/features/admin"
	"pixelferma.ru/idle-bot/internal/features/dailyreward"
	"pixelferma.ru/idle-bot/internal/features/economy"
	"pixelferma.ru/idle-bot/internal/features/farm"
	"pixelferma.ru/idle-bot/internal/features/members"
	"pixelferma.ru/idle-bot/internal/jobs"
)

// App содержит все компоненты приложения.
type App struct {
	Bot       *bot.Bot
	Scheduler *jobs.Scheduler
	DB        *pgxpool.Pool
	BotAPI    *tgbotapi.BotAPI
}

// New создаёт и инициализирует приложение.
// Порядок инициализации важен — компоненты зависят друг от друга.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === 1. База данных ===
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	if err := runMigrations(ctx, pool); err != nil {
		return nil, fmt.Errorf("ошибка миграций: %w", err)
	}

	// === 2. Telegram Bot API ===
	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания Telegram API: %w", err)
	}
	botAPI.Debug = cfg.AppEnv == "development"
	log.Infof("Авторизован как @%s", botAPI.Self.UserName)

	// === 3. Репозитории ===
	memberRepo := members.NewRepository(pool)
	economyRepo := economy.NewRepository(pool)
	farmRepo := farm.NewRepository(pool)
	rewardRepo := dailyreward.NewRepository(pool)
	adminRepo := admin.NewRepository(pool)

	// === 4. Сервисы ===
	memberService := members.NewService(memberRepo, cfg)
	economyService := economy.NewService(economyRepo, cfg.EconomyStartingCoins)
	farmService := farm.NewService(farmRepo, economyService, cfg)

	schedule, err := dailyreward.NewSchedule(cfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка расписания наград: %w", err)
	}

	metrics := farm.NewMetrics(farmService, economyService)
	executor := dailyreward.NewExecutor(economyService, farmService)
	dispatcher := dailyreward.NewDispatcher()
	appLoc := common.LoadLocation(cfg.AppTimezone)

	rewardService := dailyreward.NewService(
		rewardRepo, schedule, metrics, memberService,
		executor, dispatcher, cfg.RewardReminderThreshold, appLoc,
	)

	adminService := admin.NewService(adminRepo, memberService, economyService, cfg)

	// === 5. Обработчики ===
	memberHandler := members.NewHandler(memberService, botAPI)
	economyHandler := economy.NewHandler(economyService, memberService, botAPI)
	farmHandler := farm.NewHandler(farmService, botAPI)
	rewardHandler := dailyreward.NewHandler(rewardService, botAPI)
	adminHandler := admin.NewHandler(adminService, botAPI)

	// === 6. Фильтры ===
	chatFilter := filters.NewChatFilter(cfg.GameChatID)

	// === 7. Собираем бота ===
	b := bot.New(
		botAPI, cfg,
		memberService, memberHandler,
		economyService, economyHandler,
		farmService, farmHandler,
		rewardService, rewardHandler,
		adminHandler,
		chatFilter,
	)

	// === 8. Подписка на события наград ===
	subscribeNotifications(dispatcher, b)

	// === 9. Планировщик задач ===
	scheduler := jobs.NewScheduler(appLoc, farmService, economyService, rewardService)

	return &App{
		Bot:       b,
		Scheduler: scheduler,
		DB:        pool,
		BotAPI:    botAPI,
	}, nil
}

// subscribeNotifications подписывает бота на события движка наград.
// Уведомления идут игроку в личку; движок о Telegram ничего не знает.
func subscribeNotifications(dispatcher *dailyreward.Dispatcher, b *bot.Bot) {
	dispatcher.Subscribe(func(e dailyreward.Event) {
		switch ev := e.(type) {
		case dailyreward.FirstSessionEvent:
			b.SendMessageToUser(ev.UserID,
				"🌾 Добро пожаловать на ПиксельФерму!\n\nТебя уже ждёт первая награда: !забрать")

		case dailyreward.RewardAvailableEvent:
			b.SendMessageToUser(ev.UserID,
				"🎁 Новый день — новая награда! Посмотреть: !награда")

		case dailyreward.StreakExpiringEvent:
			b.SendMessageToUser(ev.UserID, fmt.Sprintf(
				"🔥 Твоя серия из %d %s сгорит, если не зайдёшь сегодня!",
				ev.Day, common.PluralizeDays(ev.Day)))
		}
	})
}

// runMigrations выполняет все SQL-миграции.
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	if err := postgres.EnsureMigrationTable(ctx, pool); err != nil {
		return err
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{1, migration001Members},
		{2, migration002Economy},
		{3, migration003Farms},
		{4, migration004LoginStreaks},
		{5, migration005Admin},
	}

	for _, m := range migrations {
		if err := postgres.ExecMigrationSQL(ctx, pool, m.version, m.sql); err != nil {
			return fmt.Errorf("миграция %d: %w", m.version, err)
		}
		log.Infof("Миграция %d применена", m.version)
	}

	return nil
}

// SQL-миграции встроены в код для упрощения деплоя.

var migration001Members = `
CREATE TABLE IF NOT EXISTS members (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT UNIQUE NOT NULL,
    username VARCHAR(255),
    first_name VARCHAR(255) NOT NULL,
    last_name VARCHAR(255),
    timezone VARCHAR(64) NOT NULL DEFAULT 'Europe/Moscow',
    is_admin BOOLEAN DEFAULT FALSE,
    is_banned BOOLEAN DEFAULT FALSE,
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_members_user_id ON members(user_id);
CREATE INDEX IF NOT EXISTS idx_members_username ON members(username);
`

var migration002Economy = `
CREATE TABLE IF NOT EXISTS balances (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT UNIQUE NOT NULL REFERENCES members(user_id),
    coins BIGINT DEFAULT 0,
    crystals BIGINT DEFAULT 0,
    lifetime_coins BIGINT DEFAULT 0,
    lifetime_crystals BIGINT DEFAULT 0,
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS transactions (
    id BIGSERIAL PRIMARY KEY,
    from_user_id BIGINT REFERENCES members(user_id),
    to_user_id BIGINT REFERENCES members(user_id),
    amount BIGINT NOT NULL,
    currency VARCHAR(16) NOT NULL DEFAULT 'coins',
    transaction_type VARCHAR(50) NOT NULL,
    description TEXT,
    reference VARCHAR(64) DEFAULT '',
    created_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_transactions_from_user ON transactions(from_user_id);
CREATE INDEX IF NOT EXISTS idx_transactions_to_user ON transactions(to_user_id);
CREATE INDEX IF NOT EXISTS idx_transactions_created_at ON transactions(created_at DESC);
CREATE TABLE IF NOT EXISTS boosts (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES members(user_id),
    kind VARCHAR(16) NOT NULL,
    percent DOUBLE PRECISION NOT NULL,
    expires_at TIMESTAMP NOT NULL,
    created_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_boosts_user_id ON boosts(user_id);
CREATE INDEX IF NOT EXISTS idx_boosts_expires_at ON boosts(expires_at);
`

var migration003Farms = `
CREATE TABLE IF NOT EXISTS farms (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT UNIQUE NOT NULL REFERENCES members(user_id),
    level INTEGER DEFAULT 1,
    last_accrued_at TIMESTAMP DEFAULT NOW(),
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS crates (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES members(user_id),
    coins BIGINT NOT NULL,
    available_at TIMESTAMP NOT NULL,
    collected_at TIMESTAMP,
    created_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_crates_user_id ON crates(user_id);
CREATE INDEX IF NOT EXISTS idx_crates_pending ON crates(user_id, available_at) WHERE collected_at IS NULL;
`

var migration004LoginStreaks = `
CREATE TABLE IF NOT EXISTS login_streaks (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT UNIQUE NOT NULL REFERENCES members(user_id),
    last_login_date DATE,
    current_streak_day INTEGER DEFAULT 1,
    has_claimed_today BOOLEAN DEFAULT FALSE,
    total_login_days INTEGER DEFAULT 0,
    yesterday_crystals DOUBLE PRECISION DEFAULT 0,
    reminder_sent_on DATE,
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_login_streaks_user_id ON login_streaks(user_id);
CREATE INDEX IF NOT EXISTS idx_login_streaks_last_login ON login_streaks(last_login_date);
`

var migration005Admin = `
CREATE TABLE IF NOT EXISTS admin_sessions (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT REFERENCES members(user_id),
    session_token VARCHAR(255) UNIQUE,
    authenticated_at TIMESTAMP DEFAULT NOW(),
    expires_at TIMESTAMP,
    last_activity TIMESTAMP DEFAULT NOW(),
    is_active BOOLEAN DEFAULT TRUE
);
CREATE INDEX IF NOT EXISTS idx_admin_sessions_user_id ON admin_sessions(user_id);
CREATE TABLE IF NOT EXISTS admin_login_attempts (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT,
    attempt_time TIMESTAMP DEFAULT NOW(),
    success BOOLEAN DEFAULT FALSE
);
`
