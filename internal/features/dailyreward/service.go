// Package dailyreward — service.go связывает движок с базой, ботом
// и внешними системами: актуализация серии на входе, предпросмотр
// и выдача награды, напоминания о сгорающих сериях.
package dailyreward

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"pixelferma.ru/idle-bot/internal/common"
	"pixelferma.ru/idle-bot/internal/features/members"
)

// Service управляет ежедневными наградами.
type Service struct {
	repo     *Repository
	sched    *Schedule
	metrics  LiveMetrics
	members  *members.Service
	executor *Executor
	events   *Dispatcher
	// Напоминание отправляется только владельцам серий не короче порога.
	reminderThreshold int
	// Пояс приложения для фоновых задач, у которых нет "текущего" игрока.
	appLoc *time.Location
}

// NewService создаёт новый сервис ежедневных наград.
func NewService(
	repo *Repository,
	sched *Schedule,
	metrics LiveMetrics,
	membersService *members.Service,
	executor *Executor,
	events *Dispatcher,
	reminderThreshold int,
	appLoc *time.Location,
) *Service {
	return &Service{
		repo:              repo,
		sched:             sched,
		metrics:           metrics,
		members:           membersService,
		executor:          executor,
		events:            events,
		reminderThreshold: reminderThreshold,
		appLoc:            appLoc,
	}
}

// Events возвращает диспетчер событий для подписки при сборке приложения.
func (s *Service) Events() *Dispatcher {
	return s.events
}

// EnsureToday актуализирует серию игрока на сегодняшний календарный день
// (в поясе игрока). Вызывается на каждое входящее сообщение; повторные
// вызовы в тот же день ничего не делают и не пишут в базу.
func (s *Service) EnsureToday(ctx context.Context, userID int64) (*StreakState, error) {
	state, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := common.Today(s.members.Location(ctx, userID))
	events := Evaluate(ctx, state, s.sched, today, s.metrics)
	if len(events) == 0 {
		return state, nil
	}

	if err := s.repo.Save(ctx, state); err != nil {
		return nil, err
	}
	s.events.Dispatch(events...)
	return state, nil
}

// Preview возвращает награду текущего дня, не выдавая её.
// Генерация без клейма ничего не мутирует, поэтому предпросмотр
// можно звать сколько угодно раз.
func (s *Service) Preview(ctx context.Context, userID int64) (*StreakState, *GeneratedReward, error) {
	state, err := s.EnsureToday(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	reward, err := Generate(ctx, state, s.sched, s.metrics)
	if err != nil {
		return nil, nil, err
	}
	return state, reward, nil
}

// ClaimToday выдаёт награду текущего дня.
//
// Порядок намеренный: сначала применяются эффекты, потом сохраняется
// состояние. Если процесс умрёт между этими шагами, после рестарта
// игрок сможет забрать награду дня повторно: выдача гарантируется
// как минимум один раз. Обратный порядок был бы хуже: сохранённый
// клейм без эффектов — это молча потерянная награда.
func (s *Service) ClaimToday(ctx context.Context, userID int64) (*GeneratedReward, error) {
	state, err := s.EnsureToday(ctx, userID)
	if err != nil {
		return nil, err
	}

	reward, err := Generate(ctx, state, s.sched, s.metrics)
	if err != nil {
		return nil, err
	}

	effects, err := Claim(state, reward)
	if err != nil {
		return nil, err
	}

	s.executor.Execute(ctx, userID, reward, effects)

	if err := s.repo.Save(ctx, state); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"day":     reward.StreakDay,
		"type":    reward.Type,
		"amount":  reward.Amount,
	}).Info("Награда дня выдана")

	s.events.Dispatch(RewardClaimedEvent{UserID: userID, Reward: reward})
	return reward, nil
}

// RemindExpiring рассылает события о сгорающих сериях. Вызывается кроном
// раз в час; повторные напоминания в тот же день отсекаются отметкой
// в базе. Днём здесь считается день в поясе приложения: ради напоминания
// не стоит пересчитывать "вчера" отдельно для каждого игрока.
func (s *Service) RemindExpiring(ctx context.Context) error {
	today := common.Today(s.appLoc)
	yesterday := today.AddDate(0, 0, -1)

	atRisk, err := s.repo.GetAtRisk(ctx, yesterday, s.reminderThreshold)
	if err != nil {
		return err
	}

	for _, state := range atRisk {
		if err := s.repo.MarkReminded(ctx, state.UserID, today); err != nil {
			log.WithError(err).WithField("user_id", state.UserID).
				Error("Ошибка отметки напоминания")
			continue
		}
		s.events.Dispatch(StreakExpiringEvent{UserID: state.UserID, Day: state.CurrentStreakDay})
	}

	if len(atRisk) > 0 {
		log.WithField("count", len(atRisk)).Info("Отправлены напоминания о сериях")
	}
	return nil
}
