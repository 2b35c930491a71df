// Package farm — metrics.go реализует интерфейс живых метрик
// для генератора ежедневной награды.
package farm

import (
	"context"

	"pixelferma.ru/idle-bot/internal/features/economy"
)

// Metrics отдаёт движку ежедневных наград показатели прогресса игрока.
// Реализует dailyreward.LiveMetrics.
type Metrics struct {
	farm    *Service
	economy *economy.Service
}

// NewMetrics создаёт провайдер метрик поверх фермы и экономики.
func NewMetrics(farmService *Service, economyService *economy.Service) *Metrics {
	return &Metrics{farm: farmService, economy: economyService}
}

// EstimatedIncomePerMinute возвращает текущий доход фермы (монет/мин).
func (m *Metrics) EstimatedIncomePerMinute(ctx context.Context, userID int64) (float64, error) {
	return m.farm.IncomePerMinute(ctx, userID)
}

// LifetimeCrystals возвращает пожизненный заработок кристаллов.
func (m *Metrics) LifetimeCrystals(ctx context.Context, userID int64) (float64, error) {
	return m.economy.LifetimeCrystals(ctx, userID)
}
