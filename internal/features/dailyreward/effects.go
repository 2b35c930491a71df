// Package dailyreward — effects.go описывает команды-эффекты.
// Движок только РЕШАЕТ, что должно произойти, и описывает это данными,
// включая намерение по времени (Delay); исполняет команды внешняя система.
package dailyreward

import "time"

// Виды команд-эффектов.
const (
	EffectCreditCoins    = "credit_coins"    // начислить монеты
	EffectCreditCrystals = "credit_crystals" // начислить кристаллы
	EffectApplyBoost     = "apply_boost"     // включить временный множитель
	EffectSpawnCrate     = "spawn_crate"     // заспавнить бонусный сундук
	EffectGrantToken     = "grant_token"     // передать непрозрачный жетон
)

// Сундуки появляются по одному с таким интервалом.
const crateSpawnStagger = 2 * time.Second

// EffectCommand — одна команда для внешних систем (экономика, ферма).
// Движок никогда не "ждёт": задержка — это данные, а не сон.
type EffectCommand struct {
	Kind string
	// Сумма начисления (округлённая) для credit_*-команд.
	Amount int64
	// Параметры буста для apply_boost.
	BoostKind     string
	BoostPercent  float64
	BoostDuration time.Duration
	// Через сколько исполнить команду. 0 — немедленно.
	Delay time.Duration
}

// buildEffects разворачивает награду в список команд.
func buildEffects(reward *GeneratedReward) []EffectCommand {
	switch reward.Type {
	case RewardCoins:
		return []EffectCommand{{Kind: EffectCreditCoins, Amount: roundAmount(reward.Amount)}}

	case RewardCrystals:
		return []EffectCommand{{Kind: EffectCreditCrystals, Amount: roundAmount(reward.Amount)}}

	case RewardCoinsBoost:
		return []EffectCommand{{
			Kind:          EffectApplyBoost,
			BoostKind:     "coins",
			BoostPercent:  reward.Amount,
			BoostDuration: reward.BoostDuration,
		}}

	case RewardCrystalsBoost:
		return []EffectCommand{{
			Kind:          EffectApplyBoost,
			BoostKind:     "crystals",
			BoostPercent:  reward.Amount,
			BoostDuration: reward.BoostDuration,
		}}

	case RewardCrates:
		// Сундуки появляются на ферме по одному, с нарастающей задержкой
		count := int(reward.Amount)
		cmds := make([]EffectCommand, 0, count)
		for i := 0; i < count; i++ {
			cmds = append(cmds, EffectCommand{
				Kind:  EffectSpawnCrate,
				Delay: time.Duration(i) * crateSpawnStagger,
			})
		}
		return cmds

	case RewardToken:
		return []EffectCommand{{Kind: EffectGrantToken, Amount: roundAmount(reward.Amount)}}
	}
	return nil
}

func roundAmount(v float64) int64 {
	if v < 0 {
		return 0
	}
	return int64(v + 0.5)
}
