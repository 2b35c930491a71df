package common

import "testing"

func TestPluralizeCoins(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{1, "монета"},
		{2, "монеты"},
		{5, "монет"},
		{11, "монет"},
		{21, "монета"},
		{22, "монеты"},
		{111, "монет"},
		{0, "монет"},
	}
	for _, c := range cases {
		if got := PluralizeCoins(c.n); got != c.want {
			t.Errorf("PluralizeCoins(%d) = %q, ожидается %q", c.n, got, c.want)
		}
	}
}

func TestPluralizeDays(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{1, "день"},
		{3, "дня"},
		{7, "дней"},
		{12, "дней"},
		{31, "день"},
	}
	for _, c := range cases {
		if got := PluralizeDays(c.n); got != c.want {
			t.Errorf("PluralizeDays(%d) = %q, ожидается %q", c.n, got, c.want)
		}
	}
}

func TestPluralizeCrates(t *testing.T) {
	if got := PluralizeCrates(3); got != "сундука" {
		t.Errorf("PluralizeCrates(3) = %q, ожидается %q", got, "сундука")
	}
}

func TestFormatCoins(t *testing.T) {
	if got := FormatCoins(150); got != "150 монет" {
		t.Errorf("FormatCoins(150) = %q", got)
	}
	if got := FormatCrystals(1); got != "1 кристалл" {
		t.Errorf("FormatCrystals(1) = %q", got)
	}
}
