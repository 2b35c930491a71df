// Package dailyreward — evaluator.go сверяет состояние серии с календарём.
// Вызывается один раз при старте сессии; повторный вызов в тот же день —
// гарантированный no-op.
package dailyreward

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"pixelferma.ru/idle-bot/internal/common"
)

// Evaluate приводит состояние серии к дате today (календарный день
// в поясе игрока, время суток игнорируется) и возвращает события.
//
// Правила перехода на новый день:
//   - разрыв ровно в 1 день: серия растёт (но не выше длины цикла),
//     и ТОЛЬКО здесь обновляется снимок прогресса YesterdayCrystals;
//   - разрыв больше грейс-периода при включённом сбросе: серия падает
//     на день 1;
//   - иначе серия сохраняется как есть.
//
// Снимок прогресса намеренно живёт по первому правилу: после разрыва
// (даже прощённого грейсом) кристальная формула считает от последнего
// активного дня, а не от календарного "вчера".
//
// Пустой список событий означает, что состояние не менялось
// и сохранять его не нужно.
func Evaluate(ctx context.Context, state *StreakState, sched *Schedule, today time.Time, metrics LiveMetrics) []Event {
	today = common.DateOnly(today)

	// Самый первый вход игрока
	if state.LastLoginDate == nil {
		state.TotalLoginDays = 1
		state.CurrentStreakDay = 1
		state.HasClaimedToday = false
		state.LastLoginDate = &today
		return []Event{
			FirstSessionEvent{UserID: state.UserID},
			StreakUpdatedEvent{UserID: state.UserID, Day: 1},
		}
	}

	gapDays := common.DaysBetween(*state.LastLoginDate, today)
	if gapDays <= 0 {
		// Тот же день (или часы перевели назад) — ничего не делаем
		return nil
	}

	switch {
	case gapDays == 1:
		// Единственная точка обновления снимка прогресса
		if v, err := metrics.LifetimeCrystals(ctx, state.UserID); err == nil {
			state.YesterdayCrystals = v
		} else {
			log.WithError(err).WithField("user_id", state.UserID).
				Warn("Не удалось снять метрику прогресса, снимок остаётся прежним")
		}
		if state.CurrentStreakDay < sched.StreakLength {
			state.CurrentStreakDay++
		}

	case sched.ResetOnMiss && gapDays > sched.GracePeriodDays:
		// Разрыв больше грейса — серия начинается заново
		state.CurrentStreakDay = 1

	default:
		// Разрыв внутри грейс-периода (или сброс выключен) — серия сохраняется
	}

	state.TotalLoginDays++
	state.HasClaimedToday = false
	state.LastLoginDate = &today

	log.WithFields(log.Fields{
		"user_id":    state.UserID,
		"gap_days":   gapDays,
		"streak_day": state.CurrentStreakDay,
		"total_days": state.TotalLoginDays,
	}).Debug("Новый игровой день")

	return []Event{
		RewardAvailableEvent{UserID: state.UserID},
		StreakUpdatedEvent{UserID: state.UserID, Day: state.CurrentStreakDay},
	}
}
