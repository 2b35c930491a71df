// Package dailyreward — events.go определяет события движка и диспетчер
// с явным списком подписчиков. События — fire-and-forget: подписчики
// ничего не возвращают и не могут повлиять на движок.
package dailyreward

import (
	log "github.com/sirupsen/logrus"
)

// Event — событие движка ежедневных наград.
type Event interface {
	isEvent()
}

// FirstSessionEvent — игрок зашёл в игру впервые.
type FirstSessionEvent struct {
	UserID int64
}

// RewardAvailableEvent — наступил новый календарный день, награда доступна.
type RewardAvailableEvent struct {
	UserID int64
}

// StreakUpdatedEvent — день серии пересчитан.
type StreakUpdatedEvent struct {
	UserID int64
	Day    int
}

// RewardClaimedEvent — награда дня успешно получена.
type RewardClaimedEvent struct {
	UserID int64
	Reward *GeneratedReward
}

// StreakExpiringEvent — серия игрока сгорит, если он не зайдёт сегодня.
type StreakExpiringEvent struct {
	UserID int64
	Day    int
}

func (FirstSessionEvent) isEvent()    {}
func (RewardAvailableEvent) isEvent() {}
func (StreakUpdatedEvent) isEvent()   {}
func (RewardClaimedEvent) isEvent()   {}
func (StreakExpiringEvent) isEvent()  {}

// Dispatcher рассылает события подписчикам.
// Подписка выполняется при сборке приложения, до запуска бота,
// поэтому список не защищён мьютексом.
type Dispatcher struct {
	subscribers []func(Event)
}

// NewDispatcher создаёт пустой диспетчер.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Subscribe добавляет подписчика.
func (d *Dispatcher) Subscribe(fn func(Event)) {
	d.subscribers = append(d.subscribers, fn)
}

// Dispatch синхронно рассылает события всем подписчикам.
// Паника подписчика не должна ронять движок.
func (d *Dispatcher) Dispatch(events ...Event) {
	for _, e := range events {
		for _, fn := range d.subscribers {
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.WithField("panic", r).Error("Паника в подписчике события")
					}
				}()
				fn(e)
			}()
		}
	}
}
