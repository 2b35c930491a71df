package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterAllowsWithinLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	defer rl.Close()

	for i := 0; i < 3; i++ {
		if !rl.Allow(42) {
			t.Fatalf("запрос %d должен быть разрешён", i+1)
		}
	}
	if rl.Allow(42) {
		t.Error("четвёртый запрос в окне должен быть отклонён")
	}
}

func TestRateLimiterPerUser(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Close()

	if !rl.Allow(1) {
		t.Fatal("первый игрок должен пройти")
	}
	if !rl.Allow(2) {
		t.Error("лимит считается на игрока, второй игрок должен пройти")
	}
	if rl.Allow(1) {
		t.Error("повторный запрос первого игрока должен быть отклонён")
	}
}

func TestRateLimiterWindowSlides(t *testing.T) {
	rl := NewRateLimiter(1, 10*time.Millisecond)
	defer rl.Close()

	if !rl.Allow(42) {
		t.Fatal("первый запрос должен пройти")
	}
	time.Sleep(20 * time.Millisecond)
	if !rl.Allow(42) {
		t.Error("после истечения окна запрос должен пройти")
	}
}
