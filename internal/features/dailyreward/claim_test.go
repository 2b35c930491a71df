package dailyreward

import (
	"errors"
	"testing"
	"time"

	"pixelferma.ru/idle-bot/internal/common"
)

func TestClaimNilReward(t *testing.T) {
	state := &StreakState{UserID: 42}

	_, err := Claim(state, nil)
	if !errors.Is(err, common.ErrNilReward) {
		t.Errorf("err = %v, ожидается ErrNilReward", err)
	}
	if state.HasClaimedToday {
		t.Error("неудачный клейм не должен менять состояние")
	}
}

func TestClaimOncePerDay(t *testing.T) {
	state := &StreakState{UserID: 42, CurrentStreakDay: 1}
	reward := &GeneratedReward{Type: RewardCoins, Amount: 300, StreakDay: 1}

	effects, err := Claim(state, reward)
	if err != nil {
		t.Fatalf("первый клейм: %v", err)
	}
	if len(effects) != 1 {
		t.Fatalf("получено %d эффектов, ожидается 1", len(effects))
	}
	if !state.HasClaimedToday {
		t.Error("после клейма HasClaimedToday должен быть true")
	}

	// Повторный клейм того же дня: ошибка и никаких эффектов
	effects, err = Claim(state, reward)
	if !errors.Is(err, common.ErrAlreadyClaimed) {
		t.Errorf("err = %v, ожидается ErrAlreadyClaimed", err)
	}
	if effects != nil {
		t.Error("повторный клейм не должен выдавать эффекты")
	}
}

func TestClaimCoinsEffect(t *testing.T) {
	state := &StreakState{UserID: 42}
	reward := &GeneratedReward{Type: RewardCoins, Amount: 1499.6}

	effects, err := Claim(state, reward)
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if effects[0].Kind != EffectCreditCoins {
		t.Errorf("kind = %s, ожидается credit_coins", effects[0].Kind)
	}
	if effects[0].Amount != 1500 {
		t.Errorf("сумма = %d, ожидается округление до 1500", effects[0].Amount)
	}
	if effects[0].Delay != 0 {
		t.Errorf("начисление монет должно быть немедленным, delay = %v", effects[0].Delay)
	}
}

func TestClaimCratesStaggered(t *testing.T) {
	state := &StreakState{UserID: 42}
	reward := &GeneratedReward{Type: RewardCrates, Amount: 3}

	effects, err := Claim(state, reward)
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if len(effects) != 3 {
		t.Fatalf("получено %d эффектов, ожидается 3 сундука", len(effects))
	}
	for i, e := range effects {
		if e.Kind != EffectSpawnCrate {
			t.Errorf("эффект %d: kind = %s, ожидается spawn_crate", i, e.Kind)
		}
		want := time.Duration(i) * crateSpawnStagger
		if e.Delay != want {
			t.Errorf("эффект %d: delay = %v, ожидается %v", i, e.Delay, want)
		}
	}
}

func TestClaimBoostEffect(t *testing.T) {
	state := &StreakState{UserID: 42}
	reward := &GeneratedReward{Type: RewardCoinsBoost, Amount: 25, BoostDuration: time.Hour}

	effects, err := Claim(state, reward)
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	e := effects[0]
	if e.Kind != EffectApplyBoost || e.BoostKind != "coins" {
		t.Errorf("эффект = %+v, ожидается apply_boost для монет", e)
	}
	if e.BoostPercent != 25 || e.BoostDuration != time.Hour {
		t.Errorf("параметры буста = %v%% / %v, ожидается 25%% / 1h", e.BoostPercent, e.BoostDuration)
	}
}

func TestClaimTokenPassThrough(t *testing.T) {
	state := &StreakState{UserID: 42}
	reward := &GeneratedReward{Type: RewardToken, Amount: 1}

	effects, err := Claim(state, reward)
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if len(effects) != 1 || effects[0].Kind != EffectGrantToken {
		t.Errorf("эффекты = %+v, ожидается один grant_token", effects)
	}
}
