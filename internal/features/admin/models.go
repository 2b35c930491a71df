// Package admin реализует админ-панель с парольной аутентификацией.
// models.go описывает структуры сессий, попыток входа и статистики.
package admin

import "time"

// Session — активная сессия администратора.
type Session struct {
	ID              int64     `db:"id"`
	UserID          int64     `db:"user_id"`
	SessionToken    string    `db:"session_token"`
	AuthenticatedAt time.Time `db:"authenticated_at"`
	ExpiresAt       time.Time `db:"expires_at"`
	LastActivity    time.Time `db:"last_activity"`
	IsActive        bool      `db:"is_active"`
}

// LoginAttempt — попытка входа (для защиты от brute-force).
type LoginAttempt struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	AttemptTime time.Time `db:"attempt_time"`
	Success     bool      `db:"success"`
}

// DialogState — состояние диалога с админом (конечный автомат).
// Панель работает по шагам: пароль → команды.
type DialogState struct {
	State     string
	Data      interface{}
	ExpiresAt time.Time
}

// Возможные состояния админ-диалога
const (
	StateNone             = ""                  // Нет активного состояния
	StateAwaitingPassword = "awaiting_password" // Ждём пароль
)

// Stats — сводная статистика игры для админ-панели.
type Stats struct {
	Players       int
	TotalCoins    int64
	TotalCrystals int64
	ActiveStreaks int // игроки, заходившие сегодня или вчера
	ClaimedToday  int
	FarmsMaxLevel int
	CratesPending int
}
