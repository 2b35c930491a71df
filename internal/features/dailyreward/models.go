// Package dailyreward реализует движок ежедневных наград за вход:
// учёт серии (стрика) календарных дней, генерацию награды дня
// и её выдачу не чаще одного раза в день.
//
// Движок разбит на три части:
//   - оценщик (evaluator.go) сверяет состояние с календарём при старте сессии;
//   - генератор (generator.go) считает награду текущего дня — чистая функция;
//   - выдача (claim.go) помечает награду полученной и выдаёт список эффектов.
//
// models.go описывает состояние серии и сгенерированную награду.
package dailyreward

import (
	"context"
	"time"
)

// RewardType — тип награды дня.
type RewardType string

const (
	// RewardCoins — монеты. Сумма снизу ограничена текущим доходом фермы,
	// чтобы фиксированный номинал не обесценивался с ростом экономики игрока.
	RewardCoins RewardType = "coins"
	// RewardCrystals — кристаллы. Сумма пропорциональна прогрессу
	// последнего активного дня.
	RewardCrystals RewardType = "crystals"
	// RewardCoinsBoost — временный множитель дохода монет.
	RewardCoinsBoost RewardType = "coins_boost"
	// RewardCrystalsBoost — временный множитель заработка кристаллов.
	RewardCrystalsBoost RewardType = "crystals_boost"
	// RewardCrates — бонусные сундуки, появляющиеся на ферме с задержкой.
	RewardCrates RewardType = "crates"
	// RewardToken — непрозрачный жетон: движок только передаёт его дальше,
	// интерпретация целиком на внешних системах.
	RewardToken RewardType = "token"
)

// StreakState — персистентное состояние серии входов. Одна запись на игрока.
// Мутируется только оценщиком (при смене календарного дня) и выдачей
// (при успешном клейме); после каждой мутации запись сохраняется в БД.
type StreakState struct {
	ID     int64 `db:"id"`
	UserID int64 `db:"user_id"`
	// Дата последнего входа (календарный день, без времени суток).
	// nil — игрок ещё ни разу не заходил.
	LastLoginDate *time.Time `db:"last_login_date"`
	// Текущий день серии. Инвариант: 1 <= CurrentStreakDay <= длина цикла.
	CurrentStreakDay int `db:"current_streak_day"`
	// Получена ли награда за текущий календарный день.
	HasClaimedToday bool `db:"has_claimed_today"`
	// Сколько различных календарных дней игрок заходил за всё время.
	// Только растёт; повторный вход в тот же день не считается.
	TotalLoginDays int `db:"total_login_days"`
	// Снимок пожизненного заработка кристаллов, сделанный оценщиком
	// при переходе на следующий день. Используется формулой кристальной награды.
	YesterdayCrystals float64   `db:"yesterday_crystals"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

// GeneratedReward — награда, рассчитанная для текущего дня серии.
// Эфемерный объект: не сохраняется, не несёт идентичности; до клейма
// его можно выбрасывать и генерировать заново сколько угодно раз.
type GeneratedReward struct {
	Type   RewardType
	Amount float64 // итоговая сумма после всех формул и множителя
	// Длительность буста (для типов *_boost), иначе 0.
	BoostDuration    time.Duration
	Title            string
	Description      string
	StreakDay        int
	StreakMultiplier float64
}

// LiveMetrics — живые показатели прогресса игрока, которые движок
// читает, но никогда не изменяет. Реализуется фермой и экономикой.
type LiveMetrics interface {
	// EstimatedIncomePerMinute — текущий доход игрока в монетах за минуту.
	EstimatedIncomePerMinute(ctx context.Context, userID int64) (float64, error)
	// LifetimeCrystals — пожизненный заработок кристаллов.
	LifetimeCrystals(ctx context.Context, userID int64) (float64, error)
}
