package entities

import "testing"

func TestLevelForXP(t *testing.T) {
	tests := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{1, 1},
		{999, 1},
		{1000, 2},
		{1999, 2},
		{2500, 3},
		{10000, 11},
	}

	for _, tt := range tests {
		if got := LevelForXP(tt.xp); got != tt.want {
			t.Errorf("LevelForXP(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

func TestLevelForXP_Monotonic(t *testing.T) {
	prev := LevelForXP(0)
	for xp := 1; xp <= 25000; xp += 7 {
		got := LevelForXP(xp)
		if got < prev {
			t.Fatalf("level dropped at xp=%d: %d < %d", xp, got, prev)
		}
		if want := xp/1000 + 1; got != want {
			t.Fatalf("LevelForXP(%d) = %d, want %d", xp, got, want)
		}
		prev = got
	}
}

func TestLevelProgress(t *testing.T) {
	tests := []struct {
		xp   int
		want float64
	}{
		{0, 0},
		{500, 0.5},
		{1000, 0},
		{1250, 0.25},
	}

	for _, tt := range tests {
		if got := LevelProgress(tt.xp, LevelForXP(tt.xp)); got != tt.want {
			t.Errorf("LevelProgress(%d) = %v, want %v", tt.xp, got, tt.want)
		}
	}
}

func TestNewLevelInfo(t *testing.T) {
	info := NewLevelInfo(2300)

	if info.Level != 3 {
		t.Errorf("level = %d, want 3", info.Level)
	}
	if info.XPInLevel != 300 {
		t.Errorf("xp in level = %d, want 300", info.XPInLevel)
	}
	if info.XPToNext != 700 {
		t.Errorf("xp to next = %d, want 700", info.XPToNext)
	}
}

func TestUserProgress_AddXP(t *testing.T) {
	p := NewUserProgress()

	if p.AddXP(999) {
		t.Error("999 XP should not level up")
	}
	if !p.AddXP(1) {
		t.Error("reaching 1000 XP should level up")
	}
	if p.CurrentLevel != 2 {
		t.Errorf("level = %d, want 2", p.CurrentLevel)
	}
}
