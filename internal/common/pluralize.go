// Package common — pluralize.go содержит русскую плюрализацию игровых слов.
package common

import (
	"fmt"
	"math"
)

// pluralForm выбирает форму слова по правилам русского языка:
//   - n%10==1 И n%100!=11 → единственное число (1, 21, 31, 101, ...)
//   - n%10 в [2,4] И n%100 НЕ в [12,14] → малое множественное (2, 3, 4, 22, ...)
//   - остальные случаи → большое множественное (0, 5-20, 25-30, ...)
func pluralForm(n int64, one, few, many string) string {
	absN := int64(math.Abs(float64(n)))
	lastDigit := absN % 10
	lastTwoDigits := absN % 100

	if lastDigit == 1 && lastTwoDigits != 11 {
		return one
	}
	if lastDigit >= 2 && lastDigit <= 4 && (lastTwoDigits < 12 || lastTwoDigits > 14) {
		return few
	}
	return many
}

// PluralizeCoins возвращает форму слова «монета» для числа n.
//
// Примеры:
//
//	PluralizeCoins(1)  → "монета"
//	PluralizeCoins(3)  → "монеты"
//	PluralizeCoins(11) → "монет"
func PluralizeCoins(n int64) string {
	return pluralForm(n, "монета", "монеты", "монет")
}

// PluralizeCrystals возвращает форму слова «кристалл» для числа n.
func PluralizeCrystals(n int64) string {
	return pluralForm(n, "кристалл", "кристалла", "кристаллов")
}

// PluralizeDays возвращает форму слова «день» для числа n.
func PluralizeDays(n int) string {
	return pluralForm(int64(n), "день", "дня", "дней")
}

// PluralizeCrates возвращает форму слова «сундук» для числа n.
func PluralizeCrates(n int) string {
	return pluralForm(int64(n), "сундук", "сундука", "сундуков")
}

// FormatCoins форматирует сумму монет в читабельную строку.
// Пример: FormatCoins(150) → "150 монет"
func FormatCoins(n int64) string {
	return fmt.Sprintf("%d %s", n, PluralizeCoins(n))
}

// FormatCrystals форматирует сумму кристаллов.
func FormatCrystals(n int64) string {
	return fmt.Sprintf("%d %s", n, PluralizeCrystals(n))
}
