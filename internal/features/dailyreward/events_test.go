package dailyreward

import (
	"testing"
)

func TestDispatcherDeliversInOrder(t *testing.T) {
	d := NewDispatcher()

	var got []Event
	d.Subscribe(func(e Event) { got = append(got, e) })

	d.Dispatch(
		RewardAvailableEvent{UserID: 1},
		StreakUpdatedEvent{UserID: 1, Day: 3},
	)

	if len(got) != 2 {
		t.Fatalf("доставлено %d событий, ожидается 2", len(got))
	}
	if _, ok := got[0].(RewardAvailableEvent); !ok {
		t.Errorf("первое событие %T, порядок нарушен", got[0])
	}
	if upd, ok := got[1].(StreakUpdatedEvent); !ok || upd.Day != 3 {
		t.Errorf("второе событие %+v, ожидается StreakUpdatedEvent{Day: 3}", got[1])
	}
}

func TestDispatcherSurvivesPanickingSubscriber(t *testing.T) {
	d := NewDispatcher()

	delivered := false
	d.Subscribe(func(Event) { panic("кривой подписчик") })
	d.Subscribe(func(Event) { delivered = true })

	d.Dispatch(FirstSessionEvent{UserID: 1})

	if !delivered {
		t.Error("паника одного подписчика не должна мешать остальным")
	}
}

func TestDispatcherNoSubscribers(t *testing.T) {
	d := NewDispatcher()
	// Не должно паниковать
	d.Dispatch(RewardClaimedEvent{UserID: 1})
}
