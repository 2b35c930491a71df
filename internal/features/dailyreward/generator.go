// Package dailyreward — generator.go считает награду текущего дня серии.
// Чистая функция: ничего не мутирует, её можно звать сколько угодно раз
// (например, для предпросмотра) — результат меняется только если
// "живые" метрики успели уплыть между вызовами.
package dailyreward

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"pixelferma.ru/idle-bot/internal/common"
)

// Generate возвращает награду для текущего дня серии.
//
// Формулы сумм:
//   - монеты: max(базовая сумма, доход_в_минуту * IncomeMinutesWorth) —
//     номинал не может отставать от экономики игрока;
//   - кристаллы: BaseSecondaryReward + снимок_прогресса * SecondaryBonusPercent;
//   - остальные типы: базовая сумма как есть.
//
// Последним применяется множитель дня серии.
func Generate(ctx context.Context, state *StreakState, sched *Schedule, metrics LiveMetrics) (*GeneratedReward, error) {
	if sched == nil {
		return nil, common.ErrMissingSchedule
	}

	day, err := sched.Day(state.CurrentStreakDay)
	if err != nil {
		return nil, err
	}

	amount := day.BaseAmount
	switch day.Type {
	case RewardCoins:
		income, err := metrics.EstimatedIncomePerMinute(ctx, state.UserID)
		if err != nil {
			// Метрика недоступна — остаёмся на базовом номинале
			log.WithError(err).WithField("user_id", state.UserID).
				Warn("Не удалось получить доход фермы для награды")
			income = 0
		}
		if floor := income * sched.IncomeMinutesWorth; floor > amount {
			amount = floor
		}

	case RewardCrystals:
		amount = sched.BaseSecondaryReward + state.YesterdayCrystals*sched.SecondaryBonusPercent
	}

	amount *= day.StreakMultiplier

	return &GeneratedReward{
		Type:             day.Type,
		Amount:           amount,
		BoostDuration:    time.Duration(day.BoostDurationSeconds * float64(time.Second)),
		Title:            day.Title,
		Description:      day.Description,
		StreakDay:        state.CurrentStreakDay,
		StreakMultiplier: day.StreakMultiplier,
	}, nil
}
