// Package common — errors.go определяет пользовательские ошибки,
// которые используются во всех модулях бота.
// Эти ошибки позволяют обработчикам различать типы проблем
// и отправлять игроку понятные сообщения.
package common

import "errors"

// Ошибки ежедневной награды
var (
	// ErrMissingSchedule — расписание наград не загружено
	ErrMissingSchedule = errors.New("расписание наград не загружено")
	// ErrMissingDayDefinition — в расписании нет записи для этого дня серии
	ErrMissingDayDefinition = errors.New("в расписании нет записи для этого дня")
	// ErrNilReward — попытка забрать несуществующую награду
	ErrNilReward = errors.New("награда не сгенерирована")
	// ErrAlreadyClaimed — награда за сегодня уже получена.
	// Это не сбой: повторная попытка — штатная ситуация, тихий no-op.
	ErrAlreadyClaimed = errors.New("награда за сегодня уже получена")
)

// Ошибки экономики (монеты, кристаллы, переводы)
var (
	// ErrInsufficientBalance — недостаточно монет на счёте
	ErrInsufficientBalance = errors.New("недостаточно монет на счёте")
	// ErrSelfTransfer — попытка перевести монеты самому себе
	ErrSelfTransfer = errors.New("нельзя переводить монеты самому себе")
	// ErrInvalidAmount — некорректная сумма (ноль или отрицательная)
	ErrInvalidAmount = errors.New("сумма должна быть положительной")
	// ErrUserNotFound — игрок не найден в базе
	ErrUserNotFound = errors.New("игрок не найден")
)

// Ошибки фермы
var (
	// ErrNothingToCollect — нет сундуков, готовых к сбору
	ErrNothingToCollect = errors.New("нет сундуков, готовых к сбору")
	// ErrUpgradeTooExpensive — не хватает монет на улучшение фермы
	ErrUpgradeTooExpensive = errors.New("не хватает монет на улучшение")
)

// Ошибки админки
var (
	// ErrNotAdmin — пользователь не является администратором
	ErrNotAdmin = errors.New("у вас нет прав администратора")
	// ErrWrongPassword — неверный пароль
	ErrWrongPassword = errors.New("неверный пароль")
	// ErrTooManyAttempts — слишком много неудачных попыток входа
	ErrTooManyAttempts = errors.New("слишком много попыток, подождите 1 час")
	// ErrSessionExpired — сессия истекла
	ErrSessionExpired = errors.New("сессия истекла, авторизуйтесь заново")
)
