// Package dailyreward — repository.go выполняет операции с таблицей login_streaks.
package dailyreward

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository предоставляет методы для работы с таблицей login_streaks.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий серий входов.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const streakColumns = `id, user_id, last_login_date, current_streak_day,
       has_claimed_today, total_login_days, yesterday_crystals, created_at, updated_at`

func scanStreak(row pgx.Row) (*StreakState, error) {
	var s StreakState
	err := row.Scan(
		&s.ID, &s.UserID, &s.LastLoginDate, &s.CurrentStreakDay,
		&s.HasClaimedToday, &s.TotalLoginDays, &s.YesterdayCrystals, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetOrCreate возвращает состояние серии игрока, создавая пустое при
// первом обращении. У нового состояния last_login_date равен NULL:
// по нему оценщик распознаёт самый первый вход.
func (r *Repository) GetOrCreate(ctx context.Context, userID int64) (*StreakState, error) {
	query := `SELECT ` + streakColumns + ` FROM login_streaks WHERE user_id = $1`
	s, err := scanStreak(r.db.QueryRow(ctx, query, userID))
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("ошибка получения серии (user_id=%d): %w", userID, err)
	}

	insert := `
		INSERT INTO login_streaks (user_id, current_streak_day, has_claimed_today, total_login_days, yesterday_crystals)
		VALUES ($1, 1, FALSE, 0, 0)
		ON CONFLICT (user_id) DO UPDATE SET updated_at = NOW()
		RETURNING ` + streakColumns
	s, err = scanStreak(r.db.QueryRow(ctx, insert, userID))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания серии (user_id=%d): %w", userID, err)
	}
	return s, nil
}

// Save сохраняет изменённое состояние серии.
func (r *Repository) Save(ctx context.Context, s *StreakState) error {
	query := `
		UPDATE login_streaks
		SET last_login_date = $2, current_streak_day = $3, has_claimed_today = $4,
		    total_login_days = $5, yesterday_crystals = $6, updated_at = NOW()
		WHERE user_id = $1
	`
	_, err := r.db.Exec(ctx, query,
		s.UserID, s.LastLoginDate, s.CurrentStreakDay,
		s.HasClaimedToday, s.TotalLoginDays, s.YesterdayCrystals,
	)
	if err != nil {
		return fmt.Errorf("ошибка сохранения серии (user_id=%d): %w", s.UserID, err)
	}
	return nil
}

// GetAtRisk возвращает игроков, чья серия не короче minStreak и сгорит,
// если они не зайдут сегодня: последний вход был ровно вчера
// (по серверному дню yesterday), а напоминание сегодня ещё не отправлялось.
func (r *Repository) GetAtRisk(ctx context.Context, yesterday time.Time, minStreak int) ([]*StreakState, error) {
	query := `
		SELECT ` + streakColumns + `
		FROM login_streaks
		WHERE last_login_date = $1
		  AND current_streak_day >= $2
		  AND (reminder_sent_on IS NULL OR reminder_sent_on < $1 + INTERVAL '1 day')
	`
	rows, err := r.db.Query(ctx, query, yesterday, minStreak)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки серий под угрозой: %w", err)
	}
	defer rows.Close()

	var result []*StreakState
	for rows.Next() {
		s, err := scanStreak(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// MarkReminded отмечает, что напоминание игроку сегодня уже отправлено.
func (r *Repository) MarkReminded(ctx context.Context, userID int64, day time.Time) error {
	query := `UPDATE login_streaks SET reminder_sent_on = $2, updated_at = NOW() WHERE user_id = $1`
	_, err := r.db.Exec(ctx, query, userID, day)
	if err != nil {
		return fmt.Errorf("ошибка отметки напоминания (user_id=%d): %w", userID, err)
	}
	return nil
}
