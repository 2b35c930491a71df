// Package economy управляет игровыми валютами: монетами и кристаллами.
// models.go описывает структуры балансов, транзакций и временных бустов.
package economy

import "time"

// Balance представляет счёт игрока.
// Каждый игрок имеет ровно одну запись в таблице balances.
type Balance struct {
	ID     int64 `db:"id"`
	UserID int64 `db:"user_id"`
	// Монеты — основная валюта (доход фермы, покупки улучшений).
	Coins int64 `db:"coins"`
	// Кристаллы — премиальная валюта (ежедневные награды).
	Crystals int64 `db:"crystals"`
	// Пожизненные счётчики заработка. Только растут, никогда не уменьшаются:
	// от lifetime_crystals считается "вчерашний прогресс" для ежедневной награды.
	LifetimeCoins    int64     `db:"lifetime_coins"`
	LifetimeCrystals int64     `db:"lifetime_crystals"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

// Transaction представляет одну операцию с валютой.
// Все движения монет и кристаллов записываются сюда.
type Transaction struct {
	ID         int64  `db:"id"`
	FromUserID *int64 `db:"from_user_id"` // Отправитель (nil для системных начислений)
	ToUserID   *int64 `db:"to_user_id"`   // Получатель (nil для системных списаний)
	Amount     int64  `db:"amount"`       // Сумма (всегда положительная)
	Currency   string `db:"currency"`     // 'coins' или 'crystals'
	// Тип: 'transfer', 'daily_reward', 'farm_income', 'crate', 'upgrade', ...
	TransactionType string `db:"transaction_type"`
	Description     string `db:"description"`
	// Ссылка на пакет эффектов ежедневной награды (UUID) либо пустая строка.
	// По ней можно найти все начисления одного клейма.
	Reference string    `db:"reference"`
	CreatedAt time.Time `db:"created_at"`
}

// Допустимые валюты
const (
	CurrencyCoins    = "coins"
	CurrencyCrystals = "crystals"
)

// Допустимые типы транзакций
const (
	TxTypeTransfer    = "transfer"     // Перевод между игроками
	TxTypeDailyReward = "daily_reward" // Ежедневная награда за вход
	TxTypeFarmIncome  = "farm_income"  // Пассивный доход фермы
	TxTypeCrate       = "crate"        // Сбор бонусного сундука
	TxTypeUpgrade     = "upgrade"      // Покупка улучшения фермы
	TxTypeAdminGive   = "admin_give"   // Выдача админом
)

// Boost представляет временный множитель дохода.
// Активен, пока expires_at в будущем; истёкшие записи чистит cron.
type Boost struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Kind      string    `db:"kind"`    // 'coins' или 'crystals' — какую валюту ускоряет
	Percent   float64   `db:"percent"` // Прибавка в процентах (25 = +25%)
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}
