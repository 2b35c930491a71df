package dailyreward

import (
	"testing"
)

func TestScheduleValidateDefault(t *testing.T) {
	if err := testSchedule().Validate(); err != nil {
		t.Errorf("стандартное расписание должно проходить валидацию: %v", err)
	}
}

func TestScheduleValidateLengthMismatch(t *testing.T) {
	s := testSchedule()
	s.StreakLength = 5
	if err := s.Validate(); err == nil {
		t.Error("ожидается ошибка: в таблице 7 записей при длине цикла 5")
	}
}

func TestScheduleValidateBadMultiplier(t *testing.T) {
	s := testSchedule()
	perDay := make([]DayDefinition, len(defaultPerDay))
	copy(perDay, defaultPerDay)
	perDay[2].StreakMultiplier = 0
	s.PerDay = perDay

	if err := s.Validate(); err == nil {
		t.Error("ожидается ошибка: нулевой множитель дня")
	}
}

func TestScheduleValidateBoostWithoutDuration(t *testing.T) {
	s := testSchedule()
	perDay := make([]DayDefinition, len(defaultPerDay))
	copy(perDay, defaultPerDay)
	perDay[3].BoostDurationSeconds = 0
	s.PerDay = perDay

	if err := s.Validate(); err == nil {
		t.Error("ожидается ошибка: буст без длительности")
	}
}

func TestScheduleDayClamps(t *testing.T) {
	s := testSchedule()

	cases := []struct {
		day  int
		want RewardType
	}{
		{1, RewardCoins},
		{7, RewardCoins},
		{0, RewardCoins},   // ниже цикла — первый день
		{99, RewardCoins},  // выше цикла — последний день
		{2, RewardCrystals},
		{5, RewardCrates},
	}
	for _, c := range cases {
		d, err := s.Day(c.day)
		if err != nil {
			t.Fatalf("Day(%d): %v", c.day, err)
		}
		if d.Type != c.want {
			t.Errorf("Day(%d).Type = %s, ожидается %s", c.day, d.Type, c.want)
		}
	}

	// Зажатый день 99 должен дать именно седьмой день (джекпот)
	d, _ := s.Day(99)
	if d.StreakMultiplier != 3 {
		t.Errorf("Day(99) = %+v, ожидается награда последнего дня", d)
	}
}
