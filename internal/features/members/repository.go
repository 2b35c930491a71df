// Package members — repository.go выполняет операции с таблицей members.
package members

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pixelferma.ru/idle-bot/internal/common"
)

// Repository предоставляет методы для работы с таблицей members.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий игроков.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const memberColumns = `id, user_id, username, first_name, last_name, timezone,
       is_admin, is_banned, created_at, updated_at`

func scanMember(row pgx.Row) (*Member, error) {
	var m Member
	err := row.Scan(
		&m.ID, &m.UserID, &m.Username, &m.FirstName, &m.LastName, &m.Timezone,
		&m.IsAdmin, &m.IsBanned, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create создаёт запись игрока.
func (r *Repository) Create(ctx context.Context, m *Member) error {
	query := `
		INSERT INTO members (user_id, username, first_name, last_name, timezone, is_admin, is_banned)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query,
		m.UserID, m.Username, m.FirstName, m.LastName, m.Timezone, m.IsAdmin, m.IsBanned,
	)
	if err != nil {
		return fmt.Errorf("ошибка создания игрока: %w", err)
	}
	return nil
}

// GetByUserID возвращает игрока по его Telegram user ID.
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE user_id = $1`
	m, err := scanMember(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка получения игрока (user_id=%d): %w", userID, err)
	}
	return m, nil
}

// GetByUsername возвращает игрока по @username (без @).
func (r *Repository) GetByUsername(ctx context.Context, username string) (*Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE username = $1`
	m, err := scanMember(r.db.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка получения игрока (@%s): %w", username, err)
	}
	return m, nil
}

// Exists проверяет, зарегистрирован ли игрок.
func (r *Repository) Exists(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM members WHERE user_id = $1)`, userID,
	).Scan(&exists)
	return exists, err
}

// UpdateInfo обновляет имя и username игрока.
func (r *Repository) UpdateInfo(ctx context.Context, userID int64, info UpdateInfo) error {
	query := `
		UPDATE members
		SET username = $2, first_name = $3, last_name = $4, updated_at = NOW()
		WHERE user_id = $1
	`
	_, err := r.db.Exec(ctx, query, userID, info.Username, info.FirstName, info.LastName)
	if err != nil {
		return fmt.Errorf("ошибка обновления игрока: %w", err)
	}
	return nil
}

// SetTimezone сохраняет часовой пояс игрока.
func (r *Repository) SetTimezone(ctx context.Context, userID int64, tz string) error {
	query := `UPDATE members SET timezone = $2, updated_at = NOW() WHERE user_id = $1`
	_, err := r.db.Exec(ctx, query, userID, tz)
	if err != nil {
		return fmt.Errorf("ошибка сохранения часового пояса: %w", err)
	}
	return nil
}

// GetAllUserIDs возвращает ID всех незабаненных игроков.
// Используется фоновыми задачами (напоминания, начисление дохода).
func (r *Repository) GetAllUserIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT user_id FROM members WHERE NOT is_banned`)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка игроков: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
