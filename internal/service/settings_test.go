package service

import (
	"context"
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/lingofusion/lingofusion/internal/domain/entities"
)

func TestSettingsService_CompleteOnboarding(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, nil, minutesChallenge)

	if err := e.progress.AddXP(ctx, 120); err != nil {
		t.Fatalf("AddXP: %v", err)
	}

	hour := 8
	err := e.settings.CompleteOnboarding(ctx, Onboarding{
		SelectedLanguages: []string{"it", "fr"},
		NativeLanguage:    "en",
		Difficulty:        entities.DifficultyIntermediate,
		DailyGoal:         500,
		Notifications:     true,
		ReminderHour:      &hour,
	})
	if err != nil {
		t.Fatalf("CompleteOnboarding: %v", err)
	}

	p := e.progress.Snapshot(ctx)
	if !p.OnboardingCompleted {
		t.Error("onboarding not marked complete")
	}
	if p.DailyGoal != entities.MaxDailyGoal {
		t.Errorf("daily goal = %d, want clamped %d", p.DailyGoal, entities.MaxDailyGoal)
	}
	if p.TotalXP != 120 {
		t.Errorf("onboarding dropped earned xp: %d", p.TotalXP)
	}
	prefs := p.Preferences
	if !slices.Equal(prefs.SelectedLanguages, []string{"it", "fr"}) || prefs.DifficultyPreference != entities.DifficultyIntermediate {
		t.Errorf("preferences = %+v", prefs)
	}
	if got := prefs.ReminderHour(testCal.Loc()); got != 8 {
		t.Errorf("reminder hour = %d, want 8", got)
	}
	if !e.settings.OnboardingCompleted(ctx) {
		t.Error("OnboardingCompleted = false")
	}
}

func TestSettingsService_Validation(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, nil, minutesChallenge)

	if err := e.settings.SetPermission(ctx, entities.Capability("gps"), true); err == nil {
		t.Error("unknown capability accepted")
	}
	if err := e.settings.SetReminderHour(ctx, 24); err == nil {
		t.Error("hour 24 accepted")
	}
	if err := e.settings.SetPermission(ctx, entities.CapabilityMicrophone, true); err != nil {
		t.Fatalf("SetPermission: %v", err)
	}
	if !e.settings.Preferences(ctx).MicrophonePermissionGranted {
		t.Error("microphone not granted")
	}
}

func TestReminderTime_DSTChange(t *testing.T) {
	rome, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		t.Skipf("tzdata not available: %v", err)
	}
	cal := entities.NewCalendar(rome, time.Monday)

	tests := []struct {
		name string
		now  time.Time
	}{
		{name: "clocks go forward", now: time.Date(2025, time.March, 30, 12, 0, 0, 0, rome)},
		{name: "clocks go back", now: time.Date(2025, time.October, 26, 12, 0, 0, 0, rome)},
		{name: "ordinary day", now: time.Date(2025, time.June, 10, 12, 0, 0, 0, rome)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := reminderTime(cal, tt.now, 19)
			prefs := entities.UserPreferences{ReminderTime: rt}
			if got := prefs.ReminderHour(rome); got != 19 {
				t.Errorf("ReminderHour = %d, want 19 (stored %v)", got, rt)
			}
			if !cal.SameDay(*rt, tt.now) {
				t.Errorf("reminder time %v not on %v", rt, tt.now)
			}
		})
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h"},
		{90, "1h 30m"},
		{125, "2h 5m"},
	}
	for _, tt := range tests {
		if got := FormatMinutes(tt.in); got != tt.want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMotivationalMessage(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))

	tests := []struct {
		name   string
		streak int
		goal   float64
		want   string
	}{
		{"week streak", 7, 0, "Week streak champion! 🏆"},
		{"short streak", 3, 2, "Streak master! 🔥"},
		{"goal", 1, 1, "Daily goal achieved! ⭐"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MotivationalMessage(tt.streak, tt.goal, rng); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	got := MotivationalMessage(0, 0.2, rng)
	if !slices.Contains(motivationalMessages, got) {
		t.Errorf("random message %q not in the list", got)
	}
}
