// Package common содержит общие утилиты, используемые во всём проекте.
// dates.go — работа с календарными датами. Вся логика серий (стриков)
// сравнивает именно календарные дни в часовом поясе игрока,
// время суток игнорируется.
package common

import (
	"time"
)

// LoadLocation загружает часовой пояс по IANA-имени.
// Если имя пустое или пояс не найден — возвращает московское время
// (дефолтный пояс проекта), чтобы бот не падал из-за кривой настройки.
func LoadLocation(name string) *time.Location {
	if name == "" {
		name = "Europe/Moscow"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("MSK", 3*60*60)
	}
	return loc
}

// DateOnly обрезает время суток, оставляя полночь того же календарного дня
// в том же часовом поясе.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Today возвращает текущую календарную дату (без времени) в заданном поясе.
func Today(loc *time.Location) time.Time {
	return DateOnly(time.Now().In(loc))
}

// DaysBetween возвращает количество целых календарных дней между from и to.
// Считает по календарю, а не по 24-часовым интервалам: переходы на летнее
// время не влияют на результат.
//
// Примеры:
//
//	DaysBetween(1 янв, 2 янв)  → 1
//	DaysBetween(1 янв, 1 янв)  → 0
//	DaysBetween(2 янв, 1 янв)  → -1
func DaysBetween(from, to time.Time) int {
	// Приводим обе даты к полуночи UTC, чтобы деление на сутки было точным
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

// SameDay проверяет, что две метки времени приходятся на один календарный день.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// FormatDate форматирует дату в "02.01.2006" для отображения игроку.
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// FormatDateTime форматирует время в формат "02.01.2006 15:04".
// Используется для отображения дат транзакций.
func FormatDateTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("02.01.2006 15:04")
}
