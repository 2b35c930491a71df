// Package jobs управляет фоновыми задачами (cron).
// scheduler.go настраивает расписание: ежечасное начисление дохода ферм,
// очистку истёкших бустов и напоминания о сгорающих сериях.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"pixelferma.ru/idle-bot/internal/features/dailyreward"
	"pixelferma.ru/idle-bot/internal/features/economy"
	"pixelferma.ru/idle-bot/internal/features/farm"
)

// Scheduler управляет фоновыми задачами.
type Scheduler struct {
	cron           *cron.Cron
	farmService    *farm.Service
	economyService *economy.Service
	rewardService  *dailyreward.Service
}

// NewScheduler создаёт планировщик задач в заданном часовом поясе.
func NewScheduler(
	loc *time.Location,
	farmService *farm.Service,
	economyService *economy.Service,
	rewardService *dailyreward.Service,
) *Scheduler {
	return &Scheduler{
		cron:           cron.New(cron.WithLocation(loc)),
		farmService:    farmService,
		economyService: economyService,
		rewardService:  rewardService,
	}
}

// Start запускает все фоновые задачи.
func (s *Scheduler) Start(ctx context.Context) {
	// Начисление пассивного дохода ферм каждый час
	s.cron.AddFunc("0 * * * *", func() {
		log.Debug("[CRON] Начисление дохода ферм")
		if err := s.farmService.AccrueAll(ctx); err != nil {
			log.WithError(err).Error("[CRON] Ошибка начисления дохода")
		}
	})

	// Очистка истёкших бустов каждые 10 минут
	s.cron.AddFunc("*/10 * * * *", func() {
		if err := s.economyService.ExpireBoosts(ctx); err != nil {
			log.WithError(err).Error("[CRON] Ошибка очистки бустов")
		}
	})

	// Напоминания о сгорающих сериях каждый час в :30
	s.cron.AddFunc("30 * * * *", func() {
		log.Debug("[CRON] Проверка напоминаний")
		if err := s.rewardService.RemindExpiring(ctx); err != nil {
			log.WithError(err).Error("[CRON] Ошибка напоминаний")
		}
	})

	s.cron.Start()
	log.Info("Планировщик задач запущен")
}

// Stop останавливает планировщик и дожидается завершения текущих задач.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Планировщик задач остановлен")
}
