// Package farm — service.go содержит бизнес-логику фермы:
// расчёт дохода, улучшения, пассивное начисление и сундуки.
package farm

import (
	"context"
	"fmt"
	"math"
	"time"

	log "github.com/sirupsen/logrus"

	"pixelferma.ru/idle-bot/internal/common"
	"pixelferma.ru/idle-bot/internal/config"
	"pixelferma.ru/idle-bot/internal/features/economy"
)

// Service управляет фермами.
type Service struct {
	repo    *Repository
	economy *economy.Service
	cfg     *config.Config
}

// NewService создаёт новый сервис ферм.
func NewService(repo *Repository, economyService *economy.Service, cfg *config.Config) *Service {
	return &Service{repo: repo, economy: economyService, cfg: cfg}
}

// CreateFarm создаёт начальную ферму для нового игрока.
func (s *Service) CreateFarm(ctx context.Context, userID int64) error {
	return s.repo.Create(ctx, userID)
}

// GetFarm возвращает ферму игрока.
func (s *Service) GetFarm(ctx context.Context, userID int64) (*Farm, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// IncomePerMinute возвращает текущий доход фермы в монетах за минуту,
// с учётом уровня и активных бустов. Это "живая" метрика: именно от неё
// считается нижняя граница монетной ежедневной награды.
func (s *Service) IncomePerMinute(ctx context.Context, userID int64) (float64, error) {
	farm, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	mult, err := s.economy.CoinsMultiplier(ctx, userID)
	if err != nil {
		return 0, err
	}
	return s.cfg.FarmBaseIncomePerMinute * float64(farm.Level) * mult, nil
}

// UpgradeCost возвращает цену следующего уровня.
// Цена растёт в полтора раза за уровень.
func (s *Service) UpgradeCost(level int) int64 {
	cost := float64(s.cfg.FarmUpgradeBaseCost) * math.Pow(1.5, float64(level-1))
	return int64(math.Round(cost))
}

// Upgrade покупает следующий уровень фермы за монеты.
func (s *Service) Upgrade(ctx context.Context, userID int64) (*Farm, error) {
	farm, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	cost := s.UpgradeCost(farm.Level)
	err = s.economy.DeductCoins(ctx, userID, cost,
		economy.TxTypeUpgrade, fmt.Sprintf("Улучшение фермы до уровня %d", farm.Level+1))
	if err != nil {
		return nil, common.ErrUpgradeTooExpensive
	}

	if err := s.repo.SetLevel(ctx, userID, farm.Level+1); err != nil {
		return nil, err
	}
	farm.Level++

	log.WithFields(log.Fields{
		"user_id": userID,
		"level":   farm.Level,
		"cost":    cost,
	}).Info("Ферма улучшена")
	return farm, nil
}

// AccrueAll начисляет пассивный доход всем фермам.
// Запускается кроном раз в час. Простой дольше maxOfflineMinutes не оплачивается.
func (s *Service) AccrueAll(ctx context.Context) error {
	farms, err := s.repo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("ошибка получения ферм: %w", err)
	}

	now := time.Now()
	for _, farm := range farms {
		minutes := now.Sub(farm.LastAccruedAt).Minutes()
		if minutes < 1 {
			continue
		}
		if minutes > maxOfflineMinutes {
			minutes = maxOfflineMinutes
		}

		mult, err := s.economy.CoinsMultiplier(ctx, farm.UserID)
		if err != nil {
			log.WithError(err).WithField("user_id", farm.UserID).Warn("Не удалось получить множитель")
			mult = 1.0
		}

		amount := int64(s.cfg.FarmBaseIncomePerMinute * float64(farm.Level) * mult * minutes)
		if amount <= 0 {
			continue
		}

		err = s.economy.CreditCoins(ctx, farm.UserID, amount,
			economy.TxTypeFarmIncome, "Доход фермы", "")
		if err != nil {
			log.WithError(err).WithField("user_id", farm.UserID).Error("Ошибка начисления дохода")
			continue
		}
		if err := s.repo.MarkAccrued(ctx, farm.UserID, now); err != nil {
			log.WithError(err).WithField("user_id", farm.UserID).Error("Ошибка отметки начисления")
		}
	}
	return nil
}

// SpawnCrate создаёт бонусный сундук, который станет доступен через delay.
// Вызывается исполнителем эффектов ежедневной награды.
func (s *Service) SpawnCrate(ctx context.Context, userID int64, delay time.Duration) error {
	return s.repo.SpawnCrate(ctx, userID, s.cfg.FarmCrateCoins, time.Now().Add(delay))
}

// CollectCrates собирает все готовые сундуки и начисляет их монеты.
func (s *Service) CollectCrates(ctx context.Context, userID int64) (int, int64, error) {
	count, total, err := s.repo.CollectCrates(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	if count == 0 {
		return 0, 0, common.ErrNothingToCollect
	}

	err = s.economy.CreditCoins(ctx, userID, total,
		economy.TxTypeCrate, fmt.Sprintf("Собрано сундуков: %d", count), "")
	if err != nil {
		return 0, 0, err
	}
	return count, total, nil
}

// PendingCrates возвращает число готовых и ожидающих сундуков.
func (s *Service) PendingCrates(ctx context.Context, userID int64) (ready, waiting int, err error) {
	return s.repo.CountPendingCrates(ctx, userID)
}
