package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/lingofusion/lingofusion/internal/domain/entities"
	"github.com/lingofusion/lingofusion/internal/events"
)

// Onboarding holds the answers collected by the onboarding flow.
type Onboarding struct {
	SelectedLanguages []string
	NativeLanguage    string
	Difficulty        entities.Difficulty
	DailyGoal         int
	Notifications     bool
	ReminderHour      *int
}

var motivationalMessages = []string{
	"Keep up the great work! 🚀",
	"You're on fire! 🔥",
	"Learning streak is strong! ⚡",
	"Amazing progress today! ⭐",
	"You're becoming fluent! 🌟",
	"Consistency is key! 💪",
	"Every lesson counts! 📚",
	"You're unstoppable! 🎯",
}

// SettingsService edits the preferences stored on the progress record.
type SettingsService struct {
	progress *ProgressService
}

func NewSettingsService(progress *ProgressService) *SettingsService {
	return &SettingsService{progress: progress}
}

func (s *SettingsService) Preferences(ctx context.Context) entities.UserPreferences {
	return s.progress.Snapshot(ctx).Preferences
}

func (s *SettingsService) OnboardingCompleted(ctx context.Context) bool {
	return s.progress.Snapshot(ctx).OnboardingCompleted
}

// CompleteOnboarding stores the onboarding answers. Earned progress is kept.
func (s *SettingsService) CompleteOnboarding(ctx context.Context, o Onboarding) error {
	return s.progress.Update(ctx, func(p *entities.UserProgress, now time.Time) []events.Event {
		prefs := &p.Preferences
		if len(o.SelectedLanguages) > 0 {
			prefs.SelectedLanguages = append([]string(nil), o.SelectedLanguages...)
		}
		if o.NativeLanguage != "" {
			prefs.NativeLanguage = o.NativeLanguage
		}
		if o.Difficulty.Valid() {
			prefs.DifficultyPreference = o.Difficulty
		}
		prefs.NotificationsEnabled = o.Notifications
		if o.ReminderHour != nil {
			prefs.ReminderTime = reminderTime(s.progress.Calendar(), now, *o.ReminderHour)
		}

		if o.DailyGoal > 0 {
			p.DailyGoal = entities.ClampDailyGoal(o.DailyGoal)
		}
		p.OnboardingCompleted = true
		return nil
	})
}

func (s *SettingsService) SetDailyGoal(ctx context.Context, minutes int) (int, error) {
	return s.progress.SetDailyGoal(ctx, minutes)
}

// SetPermission records whether the capability was granted.
func (s *SettingsService) SetPermission(ctx context.Context, c entities.Capability, granted bool) error {
	switch c {
	case entities.CapabilityCamera, entities.CapabilityMicrophone:
	default:
		return fmt.Errorf("unknown capability %q", c)
	}

	return s.progress.UpdatePreferences(ctx, func(p *entities.UserPreferences) {
		if c == entities.CapabilityCamera {
			p.CameraPermissionGranted = granted
		} else {
			p.MicrophonePermissionGranted = granted
		}
	})
}

func (s *SettingsService) SetStudyReminders(ctx context.Context, enabled bool) error {
	return s.progress.UpdatePreferences(ctx, func(p *entities.UserPreferences) {
		p.StudyReminders = enabled
		if enabled {
			p.NotificationsEnabled = true
		}
	})
}

// SetReminderHour stores the local hour, 0-23, reminders go out at.
func (s *SettingsService) SetReminderHour(ctx context.Context, hour int) error {
	if hour < 0 || hour > 23 {
		return fmt.Errorf("reminder hour %d out of range", hour)
	}
	cal := s.progress.Calendar()
	now := s.progress.Now()
	return s.progress.UpdatePreferences(ctx, func(p *entities.UserPreferences) {
		p.ReminderTime = reminderTime(cal, now, hour)
	})
}

func reminderTime(cal entities.Calendar, now time.Time, hour int) *time.Time {
	y, m, d := now.In(cal.Loc()).Date()
	t := time.Date(y, m, d, hour, 0, 0, 0, cal.Loc())
	return &t
}

// FormatMinutes renders a duration as "45m", "2h" or "1h 30m".
func FormatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	h, m := minutes/60, minutes%60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// MotivationalMessage picks the headline for the progress screen. Streaks
// beat the daily goal; otherwise a random encouragement is drawn from rng.
func MotivationalMessage(streak int, goalProgress float64, rng *rand.Rand) string {
	switch {
	case streak >= 7:
		return "Week streak champion! 🏆"
	case streak >= 3:
		return "Streak master! 🔥"
	case goalProgress >= 1:
		return "Daily goal achieved! ⭐"
	}
	if rng == nil {
		return motivationalMessages[rand.IntN(len(motivationalMessages))]
	}
	return motivationalMessages[rng.IntN(len(motivationalMessages))]
}
