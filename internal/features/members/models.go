// Package members управляет игроками: регистрацией, профилем и часовым поясом.
// models.go описывает структуры данных для работы с таблицей members.
package members

import "time"

// Member представляет игрока в базе данных.
// Запись создаётся автоматически при первом обращении к боту.
type Member struct {
	ID        int64     `db:"id"`         // Автоинкрементный ID записи в БД
	UserID    int64     `db:"user_id"`    // Telegram user ID (уникальный)
	Username  string    `db:"username"`   // @username (может быть пустым)
	FirstName string    `db:"first_name"` // Имя игрока
	LastName  string    `db:"last_name"`  // Фамилия (может быть пустой)
	// IANA-имя часового пояса игрока. Граница календарного дня для
	// ежедневной награды считается именно в этом поясе.
	Timezone  string    `db:"timezone"`
	IsAdmin   bool      `db:"is_admin"`   // Флаг администратора
	IsBanned  bool      `db:"is_banned"`  // Флаг бана
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// UpdateInfo содержит данные для обновления информации об игроке.
// Используется, когда игрок возвращается и его имя/username могли измениться.
type UpdateInfo struct {
	Username  string
	FirstName string
	LastName  string
}

// DisplayName возвращает отображаемое имя игрока.
// Если есть @username — возвращает его, иначе — имя + фамилию.
func (m *Member) DisplayName() string {
	if m.Username != "" {
		return "@" + m.Username
	}
	name := m.FirstName
	if m.LastName != "" {
		name += " " + m.LastName
	}
	return name
}
