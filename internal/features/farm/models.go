// Package farm реализует праздную (idle) часть игры: ферма производит
// монеты сама по себе, доход растёт с уровнем и временными бустами.
// models.go описывает структуры фермы и бонусных сундуков.
package farm

import "time"

// Farm представляет ферму игрока. У каждого игрока ровно одна.
type Farm struct {
	ID     int64 `db:"id"`
	UserID int64 `db:"user_id"`
	// Уровень фермы. Доход в минуту = базовый доход * уровень.
	Level int `db:"level"`
	// Когда пассивный доход начислялся в последний раз.
	LastAccruedAt time.Time `db:"last_accrued_at"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// Crate представляет бонусный сундук, появившийся на ферме.
// Сундуки спавнятся эффектами ежедневной награды с задержкой
// (available_at в будущем) и собираются командой !собрать.
type Crate struct {
	ID          int64      `db:"id"`
	UserID      int64      `db:"user_id"`
	Coins       int64      `db:"coins"`
	AvailableAt time.Time  `db:"available_at"`
	CollectedAt *time.Time `db:"collected_at"` // nil, пока не собран
	CreatedAt   time.Time  `db:"created_at"`
}

// Пассивный доход начисляется максимум за столько минут отсутствия.
// Дальше ферма "простаивает" — стимул заходить каждый день.
const maxOfflineMinutes = 480
