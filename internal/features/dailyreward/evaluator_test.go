package dailyreward

import (
	"context"
	"errors"
	"testing"
	"time"
)

// stubMetrics — фиксированные метрики для тестов движка.
type stubMetrics struct {
	income   float64
	crystals float64
	err      error
}

func (m *stubMetrics) EstimatedIncomePerMinute(_ context.Context, _ int64) (float64, error) {
	return m.income, m.err
}

func (m *stubMetrics) LifetimeCrystals(_ context.Context, _ int64) (float64, error) {
	return m.crystals, m.err
}

func testSchedule() *Schedule {
	return &Schedule{
		StreakLength:          7,
		ResetOnMiss:           true,
		GracePeriodDays:       1,
		PerDay:                defaultPerDay,
		IncomeMinutesWorth:    2,
		BaseSecondaryReward:   10,
		SecondaryBonusPercent: 0.05,
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEvaluateFirstSession(t *testing.T) {
	state := &StreakState{UserID: 42}
	today := date(2024, 1, 5)

	events := Evaluate(context.Background(), state, testSchedule(), today, &stubMetrics{})

	if state.CurrentStreakDay != 1 {
		t.Errorf("CurrentStreakDay = %d, ожидается 1", state.CurrentStreakDay)
	}
	if state.TotalLoginDays != 1 {
		t.Errorf("TotalLoginDays = %d, ожидается 1", state.TotalLoginDays)
	}
	if state.HasClaimedToday {
		t.Error("HasClaimedToday должен быть false после первого входа")
	}
	if state.LastLoginDate == nil || !state.LastLoginDate.Equal(today) {
		t.Errorf("LastLoginDate = %v, ожидается %v", state.LastLoginDate, today)
	}

	if len(events) != 2 {
		t.Fatalf("получено %d событий, ожидается 2", len(events))
	}
	if _, ok := events[0].(FirstSessionEvent); !ok {
		t.Errorf("первое событие %T, ожидается FirstSessionEvent", events[0])
	}
	upd, ok := events[1].(StreakUpdatedEvent)
	if !ok || upd.Day != 1 {
		t.Errorf("второе событие %+v, ожидается StreakUpdatedEvent{Day: 1}", events[1])
	}
}

func TestEvaluateSameDayIdempotent(t *testing.T) {
	today := date(2024, 1, 5)
	last := today
	state := &StreakState{
		UserID:           42,
		LastLoginDate:    &last,
		CurrentStreakDay: 3,
		HasClaimedToday:  true,
		TotalLoginDays:   10,
	}

	events := Evaluate(context.Background(), state, testSchedule(), today, &stubMetrics{})

	if len(events) != 0 {
		t.Fatalf("повторный вход в тот же день дал %d событий, ожидается 0", len(events))
	}
	if !state.HasClaimedToday || state.CurrentStreakDay != 3 || state.TotalLoginDays != 10 {
		t.Error("повторный вход в тот же день не должен менять состояние")
	}
}

func TestEvaluateConsecutiveDay(t *testing.T) {
	last := date(2024, 1, 1)
	state := &StreakState{
		UserID:            42,
		LastLoginDate:     &last,
		CurrentStreakDay:  3,
		HasClaimedToday:   true,
		TotalLoginDays:    5,
		YesterdayCrystals: 50,
	}
	metrics := &stubMetrics{crystals: 200}

	events := Evaluate(context.Background(), state, testSchedule(), date(2024, 1, 2), metrics)

	if state.CurrentStreakDay != 4 {
		t.Errorf("CurrentStreakDay = %d, ожидается 4", state.CurrentStreakDay)
	}
	if state.YesterdayCrystals != 200 {
		t.Errorf("снимок прогресса = %v, ожидается обновление до 200", state.YesterdayCrystals)
	}
	if state.HasClaimedToday {
		t.Error("HasClaimedToday должен сбрасываться на новом дне")
	}
	if state.TotalLoginDays != 6 {
		t.Errorf("TotalLoginDays = %d, ожидается 6", state.TotalLoginDays)
	}

	if len(events) != 2 {
		t.Fatalf("получено %d событий, ожидается 2", len(events))
	}
	if _, ok := events[0].(RewardAvailableEvent); !ok {
		t.Errorf("первое событие %T, ожидается RewardAvailableEvent", events[0])
	}
}

func TestEvaluateResetAfterLongGap(t *testing.T) {
	// Разрыв в 5 дней при грейсе 2 — серия сбрасывается
	last := date(2024, 1, 1)
	state := &StreakState{
		UserID:            42,
		LastLoginDate:     &last,
		CurrentStreakDay:  3,
		TotalLoginDays:    5,
		YesterdayCrystals: 50,
	}
	sched := testSchedule()
	sched.GracePeriodDays = 2

	Evaluate(context.Background(), state, sched, date(2024, 1, 6), &stubMetrics{crystals: 999})

	if state.CurrentStreakDay != 1 {
		t.Errorf("CurrentStreakDay = %d, ожидается сброс на 1", state.CurrentStreakDay)
	}
	if state.YesterdayCrystals != 50 {
		t.Errorf("снимок = %v, на пути сброса он не обновляется", state.YesterdayCrystals)
	}
	if state.TotalLoginDays != 6 {
		t.Errorf("TotalLoginDays = %d, ожидается 6", state.TotalLoginDays)
	}
}

func TestEvaluateNoResetWhenDisabled(t *testing.T) {
	last := date(2024, 1, 1)
	state := &StreakState{
		UserID:           42,
		LastLoginDate:    &last,
		CurrentStreakDay: 3,
	}
	sched := testSchedule()
	sched.ResetOnMiss = false
	sched.GracePeriodDays = 2

	Evaluate(context.Background(), state, sched, date(2024, 1, 6), &stubMetrics{})

	if state.CurrentStreakDay != 3 {
		t.Errorf("CurrentStreakDay = %d, при выключенном сбросе серия сохраняется", state.CurrentStreakDay)
	}
}

func TestEvaluateGraceGapPreservesStreakAndSnapshot(t *testing.T) {
	// Разрыв ровно в грейс — серия живёт, но снимок остаётся со старого дня
	last := date(2024, 1, 1)
	state := &StreakState{
		UserID:            42,
		LastLoginDate:     &last,
		CurrentStreakDay:  4,
		YesterdayCrystals: 70,
	}
	sched := testSchedule()
	sched.GracePeriodDays = 2

	Evaluate(context.Background(), state, sched, date(2024, 1, 3), &stubMetrics{crystals: 500})

	if state.CurrentStreakDay != 4 {
		t.Errorf("CurrentStreakDay = %d, грейс должен сохранить серию", state.CurrentStreakDay)
	}
	if state.YesterdayCrystals != 70 {
		t.Errorf("снимок = %v, после грейс-разрыва он не обновляется", state.YesterdayCrystals)
	}
}

func TestEvaluateClampsAtStreakLength(t *testing.T) {
	last := date(2024, 1, 1)
	state := &StreakState{
		UserID:           42,
		LastLoginDate:    &last,
		CurrentStreakDay: 7,
	}

	Evaluate(context.Background(), state, testSchedule(), date(2024, 1, 2), &stubMetrics{})

	if state.CurrentStreakDay != 7 {
		t.Errorf("CurrentStreakDay = %d, ожидается потолок 7", state.CurrentStreakDay)
	}
}

func TestEvaluateKeepsSnapshotOnMetricsError(t *testing.T) {
	last := date(2024, 1, 1)
	state := &StreakState{
		UserID:            42,
		LastLoginDate:     &last,
		CurrentStreakDay:  2,
		YesterdayCrystals: 30,
	}
	metrics := &stubMetrics{err: errors.New("база недоступна")}

	Evaluate(context.Background(), state, testSchedule(), date(2024, 1, 2), metrics)

	if state.YesterdayCrystals != 30 {
		t.Errorf("снимок = %v, при ошибке метрики он остаётся прежним", state.YesterdayCrystals)
	}
	if state.CurrentStreakDay != 3 {
		t.Errorf("CurrentStreakDay = %d, ошибка метрики не должна мешать росту серии", state.CurrentStreakDay)
	}
}
