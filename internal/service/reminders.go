package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/lingofusion/lingofusion/internal/domain/entities"
)

// DefaultReminderSchedule checks at the top of every hour.
const DefaultReminderSchedule = "0 * * * *"

var ErrNotifierNotSet = errors.New("notifier not initialized")

// ReminderService sends one study reminder per day when the daily goal has
// not been met by the preferred reminder hour.
type ReminderService struct {
	mu       sync.Mutex
	lastSent time.Time

	progress *ProgressService
	notifier ReminderNotifier
	schedule string
	logger   *zap.Logger
}

func NewReminderService(progress *ProgressService, schedule string, logger *zap.Logger) *ReminderService {
	if schedule == "" {
		schedule = DefaultReminderSchedule
	}
	return &ReminderService{
		progress: progress,
		schedule: schedule,
		logger:   logger,
	}
}

// SetNotifier sets the notifier (called after the bot handler is created).
func (s *ReminderService) SetNotifier(notifier ReminderNotifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifier = notifier
}

// Start runs the cron scheduler until ctx is done.
func (s *ReminderService) Start(ctx context.Context) {
	s.logger.Info("reminder service started", zap.String("schedule", s.schedule))

	c := cron.New(cron.WithLocation(s.progress.Calendar().Loc()))

	_, err := c.AddFunc(s.schedule, func() {
		s.logger.Debug("cron triggered: checking study reminder")
		if _, err := s.CheckAndSend(ctx); err != nil {
			s.logger.Error("failed to send study reminder", zap.Error(err))
		}
	})
	if err != nil {
		s.logger.Error("failed to add cron job", zap.Error(err))
		return
	}

	c.Start()
	s.logger.Info("cron scheduler started")

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("reminder service stopped")
}

// Due reports whether a reminder should go out at now.
func (s *ReminderService) Due(p *entities.UserProgress, today entities.DailyProgress, now time.Time) bool {
	cal := s.progress.Calendar()
	prefs := p.Preferences

	if !prefs.NotificationsEnabled || !prefs.StudyReminders {
		return false
	}
	if now.In(cal.Loc()).Hour() != prefs.ReminderHour(cal.Loc()) {
		return false
	}
	if today.MinutesStudied >= p.DailyGoal {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSent.IsZero() || !cal.SameDay(s.lastSent, now)
}

// CheckAndSend sends the reminder when it is due. It reports whether a
// reminder was sent.
func (s *ReminderService) CheckAndSend(ctx context.Context) (bool, error) {
	now := s.progress.Now()
	p := s.progress.Snapshot(ctx)
	today := s.progress.TodayProgress(ctx)

	if !s.Due(p, today, now) {
		return false, nil
	}

	s.mu.Lock()
	notifier := s.notifier
	s.mu.Unlock()
	if notifier == nil {
		return false, ErrNotifierNotSet
	}

	payload := entities.ReminderPayload{
		MinutesToday:  today.MinutesStudied,
		DailyGoal:     p.DailyGoal,
		CurrentStreak: p.CurrentStreak,
	}
	if p.WeeklyChallenge.Active(now) {
		payload.Challenge = p.WeeklyChallenge
	}

	if err := notifier.SendReminder(ctx, payload); err != nil {
		return false, fmt.Errorf("send reminder: %w", err)
	}

	s.mu.Lock()
	s.lastSent = now
	s.mu.Unlock()

	s.logger.Info("study reminder sent",
		zap.Int("minutes_today", payload.MinutesToday),
		zap.Int("daily_goal", payload.DailyGoal),
	)
	return true, nil
}
