// Package config загружает конфигурацию бота из переменных окружения.
// Используется envconfig для маппинга переменных окружения на поля структуры.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config содержит ВСЕ настройки приложения.
type Config struct {
	// --- Telegram ---
	AdminIDsRaw      string  `envconfig:"ADMIN_IDS" required:"true"`
	AdminIDs         []int64 `envconfig:"-"` // заполним вручную из AdminIDsRaw
	TelegramBotToken string  `envconfig:"TELEGRAM_BOT_TOKEN" required:"true"`
	// Необязательный общий игровой чат. 0 — бот работает только в личке.
	GameChatID int64 `envconfig:"GAME_CHAT_ID" default:"0"`

	// --- Database ---
	// В Docker внутри контейнера "localhost" почти всегда неправильно.
	// Дефолт ставим "postgres" (имя сервиса в docker-compose), а для локалки переопределяй DB_HOST=localhost.
	DBHost     string `envconfig:"DB_HOST" default:"postgres"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"fermer"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" default:"pixelferma"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxConns int32  `envconfig:"DB_MAX_CONNS" default:"25"`
	DBMinConns int32  `envconfig:"DB_MIN_CONNS" default:"5"`

	// --- Application ---
	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"debug"`
	// Дефолтный пояс для игроков, не выбравших свой.
	// Граница календарного дня считается в поясе игрока.
	AppTimezone string `envconfig:"APP_TIMEZONE" default:"Europe/Moscow"`

	// --- Bot runtime ---
	// Сколько апдейтов обрабатываем параллельно. Иначе "go на каждый апдейт" = утечка памяти при флуде.
	BotMaxInflight int `envconfig:"BOT_MAX_INFLIGHT" default:"64"`
	// Таймаут long polling (секунды)
	BotUpdateTimeoutSeconds int `envconfig:"BOT_UPDATE_TIMEOUT_SECONDS" default:"60"`

	// --- Admin ---
	AdminPasswordHash string `envconfig:"ADMIN_PASSWORD_HASH" required:"true"`

	// --- Ежедневная награда ---
	// Длина цикла наград: после RewardStreakLength-го дня серия упирается в потолок.
	RewardStreakLength int `envconfig:"REWARD_STREAK_LENGTH" default:"7"`
	// Сбрасывать ли серию при пропуске. Если false — серия только
	// ограничивается сверху и никогда не сбрасывается.
	RewardResetOnMiss bool `envconfig:"REWARD_RESET_ON_MISS" default:"true"`
	// Грейс-период: пропуск НЕ БОЛЬШЕ этого числа дней не ломает серию.
	// Сброс происходит только при разрыве СТРОГО больше грейса.
	RewardGraceDays int `envconfig:"REWARD_GRACE_DAYS" default:"1"`
	// Монетная награда не может быть меньше дохода фермы за столько минут.
	RewardIncomeMinutes float64 `envconfig:"REWARD_INCOME_MINUTES" default:"2.0"`
	// База кристальной награды и процент от вчерашнего прогресса.
	RewardBaseCrystals    float64 `envconfig:"REWARD_BASE_CRYSTALS" default:"10"`
	RewardCrystalBonusPct float64 `envconfig:"REWARD_CRYSTAL_BONUS_PCT" default:"0.05"`
	// Напоминание о сгорании серии: минимальная серия и час простоя.
	RewardReminderThreshold int `envconfig:"REWARD_REMINDER_THRESHOLD" default:"3"`

	// --- Ферма ---
	FarmBaseIncomePerMinute float64 `envconfig:"FARM_BASE_INCOME_PER_MINUTE" default:"5"`
	FarmUpgradeBaseCost     int64   `envconfig:"FARM_UPGRADE_BASE_COST" default:"500"`
	// Сколько монет в одном бонусном сундуке.
	FarmCrateCoins int64 `envconfig:"FARM_CRATE_COINS" default:"100"`

	// --- Economy ---
	EconomyStartingCoins int64 `envconfig:"ECONOMY_STARTING_COINS" default:"100"`

	// --- Rate Limiting ---
	RateLimitRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"10"`
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`

	// --- Feature Flags ---
	FeatureDailyRewardEnabled bool `envconfig:"FEATURE_DAILY_REWARD_ENABLED" default:"true"`
	FeatureFarmEnabled        bool `envconfig:"FEATURE_FARM_ENABLED" default:"true"`
}

// DatabaseDSN возвращает строку подключения к PostgreSQL в формате DSN.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

// Validate проверяет согласованность настроек.
func (c *Config) Validate() error {
	if c.BotMaxInflight <= 0 {
		return fmt.Errorf("BOT_MAX_INFLIGHT должен быть > 0")
	}
	if c.BotUpdateTimeoutSeconds <= 0 {
		return fmt.Errorf("BOT_UPDATE_TIMEOUT_SECONDS должен быть > 0")
	}
	if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("некорректные DB_MIN_CONNS/DB_MAX_CONNS")
	}
	if c.RewardStreakLength <= 0 {
		return fmt.Errorf("REWARD_STREAK_LENGTH должен быть > 0")
	}
	if c.RewardGraceDays < 0 {
		return fmt.Errorf("REWARD_GRACE_DAYS не может быть отрицательным")
	}
	if c.RewardIncomeMinutes < 0 {
		return fmt.Errorf("REWARD_INCOME_MINUTES не может быть отрицательным")
	}
	return nil
}

// Load читает переменные окружения и заполняет структуру Config.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("не удалось загрузить конфигурацию: %w", err)
	}

	ids, err := parseInt64CSV(cfg.AdminIDsRaw)
	if err != nil {
		return nil, fmt.Errorf("ADMIN_IDS parse: %w", err)
	}
	cfg.AdminIDs = ids

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func parseInt64CSV(s string) ([]int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad int64 %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}
