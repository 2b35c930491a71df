// Package dailyreward — executor.go применяет команды-эффекты к внешним
// системам. Единственное место, где данные о задержке превращаются
// в реальное ожидание.
package dailyreward

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"pixelferma.ru/idle-bot/internal/features/economy"
)

// CrateSpawner спавнит бонусные сундуки. Реализуется фермой.
type CrateSpawner interface {
	SpawnCrate(ctx context.Context, userID int64, delay time.Duration) error
}

// Executor применяет эффекты награды к экономике и ферме.
type Executor struct {
	economy *economy.Service
	crates  CrateSpawner
}

// NewExecutor создаёт исполнитель эффектов.
func NewExecutor(economyService *economy.Service, crates CrateSpawner) *Executor {
	return &Executor{economy: economyService, crates: crates}
}

// Execute применяет все команды пакета. Команды одного пакета связаны
// общим UUID-референсом в журнале транзакций.
//
// Исполнитель прощающий: ошибка одной команды логируется, но не
// останавливает остальные. Команды с задержкой исполняются позже
// через таймер и не переживают рестарт процесса.
func (e *Executor) Execute(ctx context.Context, userID int64, reward *GeneratedReward, effects []EffectCommand) {
	batch := uuid.New().String()

	for _, cmd := range effects {
		cmd := cmd
		if cmd.Delay <= 0 {
			e.apply(ctx, userID, reward, cmd, batch)
			continue
		}
		time.AfterFunc(cmd.Delay, func() {
			// Родительский контекст к этому моменту может быть уже закрыт
			e.apply(context.Background(), userID, reward, cmd, batch)
		})
	}
}

func (e *Executor) apply(ctx context.Context, userID int64, reward *GeneratedReward, cmd EffectCommand, batch string) {
	var err error
	switch cmd.Kind {
	case EffectCreditCoins:
		err = e.economy.CreditCoins(ctx, userID, cmd.Amount,
			economy.TxTypeDailyReward, rewardDescription(reward), batch)

	case EffectCreditCrystals:
		err = e.economy.CreditCrystals(ctx, userID, cmd.Amount,
			economy.TxTypeDailyReward, rewardDescription(reward), batch)

	case EffectApplyBoost:
		err = e.economy.ApplyBoost(ctx, userID, cmd.BoostKind, cmd.BoostPercent, cmd.BoostDuration)

	case EffectSpawnCrate:
		err = e.crates.SpawnCrate(ctx, userID, 0)

	case EffectGrantToken:
		// Жетоны не интерпретируются, просто фиксируем факт выдачи
		log.WithFields(log.Fields{
			"user_id": userID,
			"amount":  cmd.Amount,
			"batch":   batch,
		}).Info("Выдан жетон ежедневной награды")

	default:
		log.WithField("kind", cmd.Kind).Error("Неизвестная команда-эффект")
		return
	}

	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"user_id": userID,
			"kind":    cmd.Kind,
			"batch":   batch,
		}).Error("Ошибка применения эффекта награды")
	}
}

func rewardDescription(reward *GeneratedReward) string {
	return fmt.Sprintf("Награда дня %d: %s", reward.StreakDay, reward.Title)
}
