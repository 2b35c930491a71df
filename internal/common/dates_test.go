package common

import (
	"testing"
	"time"
)

func TestDaysBetween(t *testing.T) {
	d := func(y int, m time.Month, day int) time.Time {
		return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	}

	cases := []struct {
		from, to time.Time
		want     int
	}{
		{d(2024, 1, 1), d(2024, 1, 2), 1},
		{d(2024, 1, 1), d(2024, 1, 1), 0},
		{d(2024, 1, 2), d(2024, 1, 1), -1},
		{d(2024, 1, 1), d(2024, 1, 6), 5},
		{d(2023, 12, 31), d(2024, 1, 1), 1},  // граница года
		{d(2024, 2, 28), d(2024, 3, 1), 2},   // високосный февраль
	}
	for _, c := range cases {
		if got := DaysBetween(c.from, c.to); got != c.want {
			t.Errorf("DaysBetween(%s, %s) = %d, ожидается %d",
				FormatDate(c.from), FormatDate(c.to), got, c.want)
		}
	}
}

func TestDaysBetweenIgnoresTimeOfDay(t *testing.T) {
	// 23:59 первого дня и 00:01 второго — всё равно один календарный день разницы
	from := time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC)
	to := time.Date(2024, 1, 2, 0, 1, 0, 0, time.UTC)

	if got := DaysBetween(from, to); got != 1 {
		t.Errorf("DaysBetween = %d, ожидается 1", got)
	}
}

func TestDaysBetweenAcrossDST(t *testing.T) {
	// Сутки перехода на летнее время короче 24 часов,
	// но календарных дней всё равно ровно один.
	loc := time.FixedZone("CEST", 2*60*60)
	locStd := time.FixedZone("CET", 1*60*60)
	from := time.Date(2024, 3, 30, 12, 0, 0, 0, locStd)
	to := time.Date(2024, 3, 31, 12, 0, 0, 0, loc)

	if got := DaysBetween(from, to); got != 1 {
		t.Errorf("DaysBetween через перевод часов = %d, ожидается 1", got)
	}
}

func TestDateOnly(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	tm := time.Date(2024, 5, 10, 18, 30, 45, 123, loc)

	got := DateOnly(tm)
	want := time.Date(2024, 5, 10, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("DateOnly = %v, ожидается %v", got, want)
	}
	if got.Location() != loc {
		t.Error("DateOnly должен сохранять часовой пояс")
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2024, 1, 1, 0, 1, 0, 0, time.UTC)
	b := time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC)
	c := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	if !SameDay(a, b) {
		t.Error("SameDay(a, b) = false, ожидается true")
	}
	if SameDay(a, c) {
		t.Error("SameDay(a, c) = true, ожидается false")
	}
}

func TestLoadLocationFallback(t *testing.T) {
	loc := LoadLocation("Народная/Ферма")
	if loc == nil {
		t.Fatal("LoadLocation не должен возвращать nil")
	}
	// Фоллбэк — UTC+3
	_, offset := time.Date(2024, 1, 1, 0, 0, 0, 0, loc).Zone()
	if offset != 3*60*60 {
		t.Errorf("смещение фоллбэка = %d, ожидается +3 часа", offset)
	}
}
