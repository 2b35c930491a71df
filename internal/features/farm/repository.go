// Package farm — repository.go выполняет операции с таблицами farms и crates.
package farm

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository предоставляет методы для работы с фермами и сундуками.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий ферм.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create создаёт ферму первого уровня для нового игрока.
func (r *Repository) Create(ctx context.Context, userID int64) error {
	query := `
		INSERT INTO farms (user_id, level, last_accrued_at)
		VALUES ($1, 1, NOW())
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("ошибка создания фермы: %w", err)
	}
	return nil
}

// GetByUserID возвращает ферму игрока.
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*Farm, error) {
	query := `
		SELECT id, user_id, level, last_accrued_at, created_at, updated_at
		FROM farms
		WHERE user_id = $1
	`
	var f Farm
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&f.ID, &f.UserID, &f.Level, &f.LastAccruedAt, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("ферма не найдена (user_id=%d): %w", userID, err)
	}
	return &f, nil
}

// GetAll возвращает все фермы. Используется кроном начисления дохода.
func (r *Repository) GetAll(ctx context.Context) ([]*Farm, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, level, last_accrued_at, created_at, updated_at FROM farms
	`)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения ферм: %w", err)
	}
	defer rows.Close()

	var farms []*Farm
	for rows.Next() {
		var f Farm
		if err := rows.Scan(&f.ID, &f.UserID, &f.Level, &f.LastAccruedAt, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования фермы: %w", err)
		}
		farms = append(farms, &f)
	}
	return farms, rows.Err()
}

// SetLevel повышает уровень фермы.
func (r *Repository) SetLevel(ctx context.Context, userID int64, level int) error {
	query := `UPDATE farms SET level = $2, updated_at = NOW() WHERE user_id = $1`
	_, err := r.db.Exec(ctx, query, userID, level)
	if err != nil {
		return fmt.Errorf("ошибка повышения уровня: %w", err)
	}
	return nil
}

// MarkAccrued сдвигает отметку последнего начисления дохода.
func (r *Repository) MarkAccrued(ctx context.Context, userID int64, at time.Time) error {
	query := `UPDATE farms SET last_accrued_at = $2, updated_at = NOW() WHERE user_id = $1`
	_, err := r.db.Exec(ctx, query, userID, at)
	return err
}

// SpawnCrate создаёт бонусный сундук, доступный с availableAt.
func (r *Repository) SpawnCrate(ctx context.Context, userID, coins int64, availableAt time.Time) error {
	query := `
		INSERT INTO crates (user_id, coins, available_at)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.Exec(ctx, query, userID, coins, availableAt)
	if err != nil {
		return fmt.Errorf("ошибка создания сундука: %w", err)
	}
	return nil
}

// CollectCrates помечает все готовые сундуки игрока собранными
// и возвращает их количество и суммарные монеты.
func (r *Repository) CollectCrates(ctx context.Context, userID int64) (int, int64, error) {
	rows, err := r.db.Query(ctx, `
		UPDATE crates
		SET collected_at = NOW()
		WHERE user_id = $1 AND collected_at IS NULL AND available_at <= NOW()
		RETURNING coins
	`, userID)
	if err != nil {
		return 0, 0, fmt.Errorf("ошибка сбора сундуков: %w", err)
	}
	defer rows.Close()

	var count int
	var total int64
	for rows.Next() {
		var coins int64
		if err := rows.Scan(&coins); err != nil {
			return 0, 0, err
		}
		count++
		total += coins
	}
	return count, total, rows.Err()
}

// CountPendingCrates возвращает число несобранных сундуков (готовых и ожидающих).
func (r *Repository) CountPendingCrates(ctx context.Context, userID int64) (ready, waiting int, err error) {
	err = r.db.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE available_at <= NOW()),
			COUNT(*) FILTER (WHERE available_at > NOW())
		FROM crates
		WHERE user_id = $1 AND collected_at IS NULL
	`, userID).Scan(&ready, &waiting)
	if err != nil {
		return 0, 0, fmt.Errorf("ошибка подсчёта сундуков: %w", err)
	}
	return ready, waiting, nil
}
