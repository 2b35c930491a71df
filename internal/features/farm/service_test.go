package farm

import (
	"testing"

	"pixelferma.ru/idle-bot/internal/config"
)

func TestUpgradeCostGrowth(t *testing.T) {
	s := NewService(nil, nil, &config.Config{FarmUpgradeBaseCost: 500})

	cases := []struct {
		level int
		want  int64
	}{
		{1, 500},
		{2, 750},
		{3, 1125},
	}
	for _, c := range cases {
		if got := s.UpgradeCost(c.level); got != c.want {
			t.Errorf("UpgradeCost(%d) = %d, ожидается %d", c.level, got, c.want)
		}
	}
}
