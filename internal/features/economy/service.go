// Package economy — service.go содержит бизнес-логику экономики.
// Валидация сумм, переводы, бусты и пожизненные метрики прогресса.
package economy

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"pixelferma.ru/idle-bot/internal/common"
)

// Service управляет экономикой игры.
type Service struct {
	repo          *Repository
	startingCoins int64
}

// NewService создаёт новый сервис экономики.
func NewService(repo *Repository, startingCoins int64) *Service {
	return &Service{repo: repo, startingCoins: startingCoins}
}

// CreateBalance создаёт стартовый счёт нового игрока.
func (s *Service) CreateBalance(ctx context.Context, userID int64) error {
	return s.repo.EnsureBalance(ctx, userID, s.startingCoins)
}

// GetBalance возвращает счёт игрока.
func (s *Service) GetBalance(ctx context.Context, userID int64) (*Balance, error) {
	return s.repo.GetBalance(ctx, userID)
}

// CreditCoins начисляет монеты.
// reference — UUID пакета эффектов для начислений ежедневной награды,
// пустая строка для остальных.
func (s *Service) CreditCoins(ctx context.Context, userID, amount int64, txType, description, reference string) error {
	if amount <= 0 {
		return common.ErrInvalidAmount
	}
	return s.repo.Credit(ctx, userID, amount, CurrencyCoins, txType, description, reference)
}

// CreditCrystals начисляет кристаллы.
func (s *Service) CreditCrystals(ctx context.Context, userID, amount int64, txType, description, reference string) error {
	if amount <= 0 {
		return common.ErrInvalidAmount
	}
	return s.repo.Credit(ctx, userID, amount, CurrencyCrystals, txType, description, reference)
}

// DeductCoins списывает монеты (покупки улучшений).
func (s *Service) DeductCoins(ctx context.Context, userID, amount int64, txType, description string) error {
	if amount <= 0 {
		return common.ErrInvalidAmount
	}
	return s.repo.DeductCoins(ctx, userID, amount, txType, description)
}

// Transfer переводит монеты от одного игрока к другому.
// Проверки: нельзя себе, сумма положительная, хватает монет.
func (s *Service) Transfer(ctx context.Context, fromUserID, toUserID, amount int64) error {
	if fromUserID == toUserID {
		return common.ErrSelfTransfer
	}
	if amount <= 0 {
		return common.ErrInvalidAmount
	}

	if err := s.repo.Transfer(ctx, fromUserID, toUserID, amount); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"from":   fromUserID,
		"to":     toUserID,
		"amount": amount,
	}).Info("Перевод выполнен")
	return nil
}

// ApplyBoost включает временный множитель дохода.
func (s *Service) ApplyBoost(ctx context.Context, userID int64, kind string, percent float64, duration time.Duration) error {
	if percent <= 0 || duration <= 0 {
		return common.ErrInvalidAmount
	}
	return s.repo.AddBoost(ctx, userID, kind, percent, time.Now().Add(duration))
}

// CoinsMultiplier возвращает суммарный множитель дохода монет
// с учётом всех активных бустов. Без бустов — 1.0.
func (s *Service) CoinsMultiplier(ctx context.Context, userID int64) (float64, error) {
	boosts, err := s.repo.GetActiveBoosts(ctx, userID)
	if err != nil {
		return 1.0, err
	}
	mult := 1.0
	for _, b := range boosts {
		if b.Kind == CurrencyCoins {
			mult += b.Percent / 100
		}
	}
	return mult, nil
}

// LifetimeCrystals возвращает пожизненный заработок кристаллов.
// Это метрика "прогресса" игрока: снимок этого значения использует
// генератор ежедневной награды.
func (s *Service) LifetimeCrystals(ctx context.Context, userID int64) (float64, error) {
	b, err := s.repo.GetBalance(ctx, userID)
	if err != nil {
		return 0, err
	}
	return float64(b.LifetimeCrystals), nil
}

// ExpireBoosts удаляет истёкшие бусты. Вызывается кроном.
func (s *Service) ExpireBoosts(ctx context.Context) error {
	n, err := s.repo.DeleteExpiredBoosts(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		log.WithField("count", n).Debug("Истёкшие бусты удалены")
	}
	return nil
}

// FormatTransactionHistory возвращает форматированную историю транзакций.
// Последние 10 операций. Если больше 5 — остальные прячутся в спойлер.
func (s *Service) FormatTransactionHistory(ctx context.Context, userID int64, loc *time.Location) (string, error) {
	transactions, err := s.repo.GetTransactions(ctx, userID, 10)
	if err != nil {
		return "", err
	}

	if len(transactions) == 0 {
		return "📋 У вас пока нет транзакций", nil
	}

	var sb strings.Builder
	sb.WriteString("📋 Последние операции:\n\n")

	var lines []string
	for i, tx := range transactions {
		// Знак: + если получили, - если отправили/потратили
		sign := "+"
		if tx.FromUserID != nil && *tx.FromUserID == userID {
			sign = "-"
		}
		unit := common.PluralizeCoins(tx.Amount)
		if tx.Currency == CurrencyCrystals {
			unit = common.PluralizeCrystals(tx.Amount)
		}
		lines = append(lines, fmt.Sprintf("%d. %s | %s%d %s | %s",
			i+1,
			common.FormatDateTime(tx.CreatedAt, loc),
			sign, tx.Amount, unit, tx.Description,
		))
	}

	// Если больше 5 — оборачиваем хвост в спойлер (||текст||)
	if len(lines) > 5 {
		for _, line := range lines[:5] {
			sb.WriteString(line + "\n")
		}
		sb.WriteString("\n||")
		for _, line := range lines[5:] {
			sb.WriteString(line + "\n")
		}
		sb.WriteString("||")
	} else {
		for _, line := range lines {
			sb.WriteString(line + "\n")
		}
	}

	return sb.String(), nil
}
