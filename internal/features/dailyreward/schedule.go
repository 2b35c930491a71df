// Package dailyreward — schedule.go описывает расписание наград:
// неизменяемую таблицу "день серии → награда" и глобальные коэффициенты.
package dailyreward

import (
	"fmt"

	"pixelferma.ru/idle-bot/internal/common"
	"pixelferma.ru/idle-bot/internal/config"
)

// DayDefinition — шаблон награды одного дня цикла.
type DayDefinition struct {
	Type RewardType
	// Базовая сумма. Для монет — нижний номинал, для сундуков — их число,
	// для бустов — процент прибавки. Для кристаллов не используется:
	// их сумма целиком считается формулой прогресса.
	BaseAmount float64
	// Множитель дня серии, применяется к сумме последним.
	StreakMultiplier float64
	// Длительность буста в секундах (только для типов *_boost).
	BoostDurationSeconds float64
	// Отображаемые строки, движок их не интерпретирует.
	Title       string
	Description string
}

// Schedule — полное расписание наград. Загружается один раз при старте
// и дальше только читается.
type Schedule struct {
	// Длина цикла: после последнего дня серия упирается в потолок.
	StreakLength int
	// Сбрасывать ли серию при пропуске больше грейс-периода.
	ResetOnMiss bool
	// Пропуск НЕ БОЛЬШЕ этого числа дней серию не ломает
	// (сброс строго при gap > GracePeriodDays).
	GracePeriodDays int
	// Таблица наград, по одной записи на день цикла.
	PerDay []DayDefinition
	// Монетная награда не меньше дохода фермы за столько минут.
	IncomeMinutesWorth float64
	// База кристальной награды и доля от снимка прогресса.
	BaseSecondaryReward   float64
	SecondaryBonusPercent float64
}

// defaultPerDay — стандартная недельная таблица наград.
var defaultPerDay = []DayDefinition{
	{Type: RewardCoins, BaseAmount: 300, StreakMultiplier: 1,
		Title: "Монеты на разгон", Description: "Немного монет, чтобы ферма не простаивала"},
	{Type: RewardCrystals, StreakMultiplier: 1,
		Title: "Кристаллы", Description: "Кристаллы за вчерашние успехи"},
	{Type: RewardCoins, BaseAmount: 500, StreakMultiplier: 1.5,
		Title: "Мешок монет", Description: "Монеты с прибавкой за серию"},
	{Type: RewardCoinsBoost, BaseAmount: 25, StreakMultiplier: 1, BoostDurationSeconds: 3600,
		Title: "Ускорение дохода", Description: "+25% к доходу фермы на час"},
	{Type: RewardCrates, BaseAmount: 3, StreakMultiplier: 1,
		Title: "Бонусные сундуки", Description: "Сундуки появятся на ферме один за другим"},
	{Type: RewardCrystals, StreakMultiplier: 2,
		Title: "Двойные кристаллы", Description: "Кристаллы с удвоением за серию"},
	{Type: RewardCoins, BaseAmount: 1000, StreakMultiplier: 3,
		Title: "Джекпот недели", Description: "Главная награда полного цикла"},
}

// NewSchedule собирает расписание из конфигурации и стандартной таблицы.
func NewSchedule(cfg *config.Config) (*Schedule, error) {
	s := &Schedule{
		StreakLength:          cfg.RewardStreakLength,
		ResetOnMiss:           cfg.RewardResetOnMiss,
		GracePeriodDays:       cfg.RewardGraceDays,
		PerDay:                defaultPerDay,
		IncomeMinutesWorth:    cfg.RewardIncomeMinutes,
		BaseSecondaryReward:   cfg.RewardBaseCrystals,
		SecondaryBonusPercent: cfg.RewardCrystalBonusPct,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate проверяет согласованность расписания.
func (s *Schedule) Validate() error {
	if s.StreakLength <= 0 {
		return fmt.Errorf("длина цикла должна быть > 0, получено %d", s.StreakLength)
	}
	if s.GracePeriodDays < 0 {
		return fmt.Errorf("грейс-период не может быть отрицательным")
	}
	if len(s.PerDay) != s.StreakLength {
		return fmt.Errorf("в таблице %d записей, а длина цикла %d", len(s.PerDay), s.StreakLength)
	}
	for i, d := range s.PerDay {
		if d.StreakMultiplier <= 0 {
			return fmt.Errorf("день %d: множитель должен быть > 0", i+1)
		}
		switch d.Type {
		case RewardCoinsBoost, RewardCrystalsBoost:
			if d.BoostDurationSeconds <= 0 {
				return fmt.Errorf("день %d: буст без длительности", i+1)
			}
		}
	}
	return nil
}

// Day возвращает запись таблицы для дня серии day (1-based).
// Выход за границы цикла зажимается, а не считается ошибкой:
// лучше выдать крайнюю награду, чем уронить выдачу из-за кривого состояния.
func (s *Schedule) Day(day int) (DayDefinition, error) {
	idx := day - 1
	if idx < 0 {
		idx = 0
	}
	if idx > s.StreakLength-1 {
		idx = s.StreakLength - 1
	}
	if idx < 0 || idx >= len(s.PerDay) {
		return DayDefinition{}, common.ErrMissingDayDefinition
	}
	return s.PerDay[idx], nil
}
