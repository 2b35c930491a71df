package dailyreward

import (
	"context"
	"errors"
	"testing"
	"time"

	"pixelferma.ru/idle-bot/internal/common"
)

func TestGenerateCoinsBaseWinsOverIncome(t *testing.T) {
	// День 7: монеты, база 1000, множитель 3.
	// Доход 250/мин * 2 мин = 500 < 1000 → берётся база.
	state := &StreakState{UserID: 42, CurrentStreakDay: 7}
	metrics := &stubMetrics{income: 250}

	reward, err := Generate(context.Background(), state, testSchedule(), metrics)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if reward.Type != RewardCoins {
		t.Fatalf("тип = %s, ожидается coins", reward.Type)
	}
	if reward.Amount != 3000 {
		t.Errorf("сумма = %v, ожидается max(1000, 500)*3 = 3000", reward.Amount)
	}
}

func TestGenerateCoinsIncomeFloorWins(t *testing.T) {
	// Доход 1000/мин * 2 мин = 2000 > база 1000 → номинал подтягивается к доходу
	state := &StreakState{UserID: 42, CurrentStreakDay: 7}
	metrics := &stubMetrics{income: 1000}

	reward, err := Generate(context.Background(), state, testSchedule(), metrics)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if reward.Amount != 6000 {
		t.Errorf("сумма = %v, ожидается max(1000, 2000)*3 = 6000", reward.Amount)
	}
}

func TestGenerateCoinsFallsBackOnMetricsError(t *testing.T) {
	state := &StreakState{UserID: 42, CurrentStreakDay: 1}
	metrics := &stubMetrics{err: errors.New("ферма недоступна")}

	reward, err := Generate(context.Background(), state, testSchedule(), metrics)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if reward.Amount != 300 {
		t.Errorf("сумма = %v, при ошибке метрики ожидается база 300", reward.Amount)
	}
}

func TestGenerateCrystalsFormula(t *testing.T) {
	// День 2: кристаллы, множитель 1.
	// 10 + 200 * 0.05 = 20.
	state := &StreakState{UserID: 42, CurrentStreakDay: 2, YesterdayCrystals: 200}

	reward, err := Generate(context.Background(), state, testSchedule(), &stubMetrics{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if reward.Type != RewardCrystals {
		t.Fatalf("тип = %s, ожидается crystals", reward.Type)
	}
	if reward.Amount != 20 {
		t.Errorf("сумма = %v, ожидается 10 + 200*0.05 = 20", reward.Amount)
	}
}

func TestGenerateCrystalsDoubledOnDaySix(t *testing.T) {
	// День 6: кристаллы с множителем 2
	state := &StreakState{UserID: 42, CurrentStreakDay: 6, YesterdayCrystals: 100}

	reward, err := Generate(context.Background(), state, testSchedule(), &stubMetrics{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if reward.Amount != 30 {
		t.Errorf("сумма = %v, ожидается (10 + 100*0.05)*2 = 30", reward.Amount)
	}
}

func TestGenerateBoostCarriesDuration(t *testing.T) {
	// День 4: буст дохода на час
	state := &StreakState{UserID: 42, CurrentStreakDay: 4}

	reward, err := Generate(context.Background(), state, testSchedule(), &stubMetrics{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if reward.Type != RewardCoinsBoost {
		t.Fatalf("тип = %s, ожидается coins_boost", reward.Type)
	}
	if reward.Amount != 25 {
		t.Errorf("процент = %v, ожидается 25", reward.Amount)
	}
	if reward.BoostDuration != time.Hour {
		t.Errorf("длительность = %v, ожидается 1h", reward.BoostDuration)
	}
}

func TestGenerateNilSchedule(t *testing.T) {
	state := &StreakState{UserID: 42, CurrentStreakDay: 1}

	_, err := Generate(context.Background(), state, nil, &stubMetrics{})
	if !errors.Is(err, common.ErrMissingSchedule) {
		t.Errorf("err = %v, ожидается ErrMissingSchedule", err)
	}
}

func TestGenerateDoesNotMutateState(t *testing.T) {
	state := &StreakState{UserID: 42, CurrentStreakDay: 3, TotalLoginDays: 5, YesterdayCrystals: 10}
	before := *state

	if _, err := Generate(context.Background(), state, testSchedule(), &stubMetrics{income: 100}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if *state != before {
		t.Error("Generate не должен менять состояние")
	}
}
