// Package economy — repository.go выполняет все операции с таблицами
// balances, transactions и boosts.
// Все денежные операции выполняются в транзакциях БД для целостности данных.
package economy

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"pixelferma.ru/idle-bot/internal/common"
)

// Repository предоставляет методы для работы с балансами, транзакциями и бустами.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий экономики.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// EnsureBalance гарантирует, что у игрока есть запись баланса.
// Если нет — создаёт со стартовым количеством монет.
func (r *Repository) EnsureBalance(ctx context.Context, userID, startingCoins int64) error {
	query := `
		INSERT INTO balances (user_id, coins, crystals, lifetime_coins, lifetime_crystals)
		VALUES ($1, $2, 0, $2, 0)
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, userID, startingCoins)
	if err != nil {
		return fmt.Errorf("ошибка создания баланса: %w", err)
	}
	return nil
}

// GetBalance возвращает счёт игрока.
func (r *Repository) GetBalance(ctx context.Context, userID int64) (*Balance, error) {
	query := `
		SELECT id, user_id, coins, crystals, lifetime_coins, lifetime_crystals, created_at, updated_at
		FROM balances
		WHERE user_id = $1
	`
	var b Balance
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&b.ID, &b.UserID, &b.Coins, &b.Crystals,
		&b.LifetimeCoins, &b.LifetimeCrystals, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения баланса: %w", err)
	}
	return &b, nil
}

// Credit начисляет валюту игроку и пишет транзакцию в историю.
// Обновление баланса, пожизненного счётчика и запись в ledger атомарны.
func (r *Repository) Credit(ctx context.Context, userID, amount int64, currency, txType, description, reference string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var query string
	switch currency {
	case CurrencyCoins:
		query = `
			UPDATE balances
			SET coins = coins + $2, lifetime_coins = lifetime_coins + $2, updated_at = NOW()
			WHERE user_id = $1
		`
	case CurrencyCrystals:
		query = `
			UPDATE balances
			SET crystals = crystals + $2, lifetime_crystals = lifetime_crystals + $2, updated_at = NOW()
			WHERE user_id = $1
		`
	default:
		return fmt.Errorf("неизвестная валюта %q", currency)
	}

	if _, err = tx.Exec(ctx, query, userID, amount); err != nil {
		return fmt.Errorf("ошибка начисления: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO transactions (to_user_id, amount, currency, transaction_type, description, reference)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, userID, amount, currency, txType, description, reference)
	if err != nil {
		return fmt.Errorf("ошибка записи транзакции: %w", err)
	}

	return tx.Commit(ctx)
}

// DeductCoins списывает монеты со счёта игрока.
// Проверяет под блокировкой строки, что баланс не станет отрицательным.
func (r *Repository) DeductCoins(ctx context.Context, userID, amount int64, txType, description string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var current int64
	err = tx.QueryRow(ctx,
		`SELECT coins FROM balances WHERE user_id = $1 FOR UPDATE`, userID,
	).Scan(&current)
	if err != nil {
		return fmt.Errorf("ошибка получения баланса: %w", err)
	}
	if current < amount {
		return common.ErrInsufficientBalance
	}

	_, err = tx.Exec(ctx, `
		UPDATE balances SET coins = coins - $2, updated_at = NOW() WHERE user_id = $1
	`, userID, amount)
	if err != nil {
		return fmt.Errorf("ошибка списания: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO transactions (from_user_id, amount, currency, transaction_type, description, reference)
		VALUES ($1, $2, 'coins', $3, $4, '')
	`, userID, amount, txType, description)
	if err != nil {
		return fmt.Errorf("ошибка записи транзакции: %w", err)
	}

	return tx.Commit(ctx)
}

// Transfer переводит монеты от одного игрока к другому.
// Атомарная операция: либо оба баланса обновятся, либо ни одного.
func (r *Repository) Transfer(ctx context.Context, fromUserID, toUserID, amount int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var senderCoins int64
	err = tx.QueryRow(ctx,
		`SELECT coins FROM balances WHERE user_id = $1 FOR UPDATE`, fromUserID,
	).Scan(&senderCoins)
	if err != nil {
		return fmt.Errorf("отправитель не найден: %w", err)
	}
	if senderCoins < amount {
		return common.ErrInsufficientBalance
	}

	_, err = tx.Exec(ctx, `
		UPDATE balances SET coins = coins - $2, updated_at = NOW() WHERE user_id = $1
	`, fromUserID, amount)
	if err != nil {
		return fmt.Errorf("ошибка списания у отправителя: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE balances
		SET coins = coins + $2, lifetime_coins = lifetime_coins + $2, updated_at = NOW()
		WHERE user_id = $1
	`, toUserID, amount)
	if err != nil {
		return fmt.Errorf("ошибка начисления получателю: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO transactions (from_user_id, to_user_id, amount, currency, transaction_type, description, reference)
		VALUES ($1, $2, $3, 'coins', 'transfer', $4, '')
	`, fromUserID, toUserID, amount, fmt.Sprintf("Перевод %d монет", amount))
	if err != nil {
		return fmt.Errorf("ошибка записи транзакции: %w", err)
	}

	return tx.Commit(ctx)
}

// GetTransactions возвращает последние N транзакций игрока.
func (r *Repository) GetTransactions(ctx context.Context, userID int64, limit int) ([]*Transaction, error) {
	query := `
		SELECT id, from_user_id, to_user_id, amount, currency, transaction_type, description, reference, created_at
		FROM transactions
		WHERE from_user_id = $1 OR to_user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения транзакций: %w", err)
	}
	defer rows.Close()

	var transactions []*Transaction
	for rows.Next() {
		var t Transaction
		err := rows.Scan(
			&t.ID, &t.FromUserID, &t.ToUserID, &t.Amount, &t.Currency,
			&t.TransactionType, &t.Description, &t.Reference, &t.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования транзакции: %w", err)
		}
		transactions = append(transactions, &t)
	}
	return transactions, rows.Err()
}

// AddBoost добавляет временный множитель дохода.
func (r *Repository) AddBoost(ctx context.Context, userID int64, kind string, percent float64, expiresAt time.Time) error {
	query := `
		INSERT INTO boosts (user_id, kind, percent, expires_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.Exec(ctx, query, userID, kind, percent, expiresAt)
	if err != nil {
		return fmt.Errorf("ошибка создания буста: %w", err)
	}
	return nil
}

// GetActiveBoosts возвращает действующие бусты игрока.
func (r *Repository) GetActiveBoosts(ctx context.Context, userID int64) ([]*Boost, error) {
	query := `
		SELECT id, user_id, kind, percent, expires_at, created_at
		FROM boosts
		WHERE user_id = $1 AND expires_at > NOW()
		ORDER BY expires_at
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения бустов: %w", err)
	}
	defer rows.Close()

	var boosts []*Boost
	for rows.Next() {
		var b Boost
		if err := rows.Scan(&b.ID, &b.UserID, &b.Kind, &b.Percent, &b.ExpiresAt, &b.CreatedAt); err != nil {
			return nil, err
		}
		boosts = append(boosts, &b)
	}
	return boosts, rows.Err()
}

// DeleteExpiredBoosts удаляет истёкшие бусты. Вызывается кроном.
func (r *Repository) DeleteExpiredBoosts(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM boosts WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("ошибка очистки бустов: %w", err)
	}
	return tag.RowsAffected(), nil
}
