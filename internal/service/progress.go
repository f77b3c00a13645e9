package service

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lingofusion/lingofusion/internal/domain/entities"
	"github.com/lingofusion/lingofusion/internal/events"
	"github.com/lingofusion/lingofusion/internal/repository"
)

// XP constants shared by the practice and lesson flows.
const (
	LessonXPPerScore   = 50
	LessonStudyMinutes = 5
)

// MutateFunc changes the record in place and returns the events it caused.
type MutateFunc func(p *entities.UserProgress, now time.Time) []events.Event

// ProgressService owns the single UserProgress record. Every mutation goes
// through Update: the change is applied, derived state is recomputed, the
// whole record is saved and the collected events are published.
type ProgressService struct {
	mu     sync.Mutex
	cached *entities.UserProgress

	repo   ProgressRepository
	cal    entities.Calendar
	now    Clock
	rules  []Rule
	bus    Publisher
	logger *zap.Logger
}

func NewProgressService(
	repo ProgressRepository,
	cal entities.Calendar,
	bus Publisher,
	logger *zap.Logger,
	now Clock,
) *ProgressService {
	if now == nil {
		now = time.Now
	}
	return &ProgressService{
		repo:   repo,
		cal:    cal,
		now:    now,
		bus:    bus,
		logger: logger,
	}
}

// AddRule appends a derived-state rule. Rules run in the order they were added.
func (s *ProgressService) AddRule(r Rule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules = append(s.rules, r)
}

func (s *ProgressService) Calendar() entities.Calendar { return s.cal }

func (s *ProgressService) Now() time.Time { return s.now() }

// Update applies fn and persists the result. When saving fails the in-memory
// record keeps the change and the error is returned.
func (s *ProgressService) Update(ctx context.Context, fn MutateFunc) error {
	s.mu.Lock()

	p := s.loadLocked(ctx)
	now := s.now()

	var evs []events.Event
	if fn != nil {
		evs = fn(p, now)
	}
	evs = append(evs, s.deriveLocked(p, now)...)

	err := s.repo.Save(ctx, p)
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("failed to save progress", zap.Error(err))
	}

	// The in-memory record changed either way.
	if s.bus != nil {
		s.bus.Publish(evs...)
	}
	return err
}

// Load returns the persisted record, or a fresh one, with derived state
// brought up to date.
func (s *ProgressService) Load(ctx context.Context) (*entities.UserProgress, error) {
	if err := s.Update(ctx, nil); err != nil {
		return s.Snapshot(ctx), err
	}
	return s.Snapshot(ctx), nil
}

// Snapshot returns a copy of the current record.
func (s *ProgressService) Snapshot(ctx context.Context) *entities.UserProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx).Clone()
}

// Replace runs fn while holding the record lock and drops the cached record
// when fn succeeds. fn writes the new record to storage itself; no Update
// can run between that write and the cache being dropped.
func (s *ProgressService) Replace(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(); err != nil {
		return err
	}
	s.cached = nil
	return nil
}

func (s *ProgressService) loadLocked(ctx context.Context) *entities.UserProgress {
	if s.cached != nil {
		return s.cached
	}

	p, err := s.repo.Get(ctx)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrProgressNotFound):
		s.logger.Info("no saved progress, starting fresh")
		p = entities.NewUserProgress()
	default:
		s.logger.Warn("failed to load progress, starting fresh", zap.Error(err))
		p = entities.NewUserProgress()
	}

	s.cached = p
	return p
}

func (s *ProgressService) deriveLocked(p *entities.UserProgress, now time.Time) []events.Event {
	p.CurrentLevel = entities.LevelForXP(p.TotalXP)
	p.RecomputeStreaks()
	if n := p.RollUpClosedWeeks(s.cal, now); n > 0 {
		s.logger.Debug("closed weeks rolled up", zap.Int("weeks", n))
	}

	var evs []events.Event
	for _, r := range s.rules {
		evs = append(evs, r.Apply(p, now)...)
	}
	return evs
}

// awardXP adds amount to the record and reports it, plus a level-up if one happened.
func awardXP(p *entities.UserProgress, amount int, source string) []events.Event {
	from := p.CurrentLevel
	levelUp := p.AddXP(amount)

	evs := []events.Event{events.XPAwarded{Amount: amount, TotalXP: p.TotalXP, Source: source}}
	if levelUp {
		evs = append(evs, events.LevelUp{From: from, To: p.CurrentLevel})
	}
	return evs
}

// AddXP adds amount to the total and recomputes the level.
func (s *ProgressService) AddXP(ctx context.Context, amount int) error {
	return s.AwardXP(ctx, amount, "manual")
}

// AwardXP is AddXP with a source label for notifications and metrics.
func (s *ProgressService) AwardXP(ctx context.Context, amount int, source string) error {
	return s.Update(ctx, func(p *entities.UserProgress, _ time.Time) []events.Event {
		return awardXP(p, amount, source)
	})
}

// RecordStudy adds the four classic counters to today's entry.
func (s *ProgressService) RecordStudy(ctx context.Context, minutes, lessons, xp, cameraScans int) error {
	return s.RecordActivity(ctx, entities.Activity{
		Minutes:     minutes,
		Lessons:     lessons,
		XP:          xp,
		CameraScans: cameraScans,
	})
}

func (s *ProgressService) RecordActivity(ctx context.Context, a entities.Activity) error {
	return s.Update(ctx, func(p *entities.UserProgress, now time.Time) []events.Event {
		return recordActivity(p, s.cal, now, a)
	})
}

func recordActivity(p *entities.UserProgress, cal entities.Calendar, now time.Time, a entities.Activity) []events.Event {
	day := p.RecordActivity(cal, now, a)
	return []events.Event{events.StudyRecorded{Activity: a, Day: *day}}
}

// LessonXP converts a lesson score into XP. Scores are not clamped.
func LessonXP(score float64) int {
	return int(math.Floor(score * LessonXPPerScore))
}

// CompleteLesson counts a finished lesson, awards score based XP and logs
// five study minutes for it. It returns the XP awarded.
func (s *ProgressService) CompleteLesson(ctx context.Context, language, lessonID string, score float64) (int, error) {
	xp := LessonXP(score)
	err := s.Update(ctx, func(p *entities.UserProgress, now time.Time) []events.Event {
		p.LessonsCompleted++
		evs := awardXP(p, xp, "lesson")
		evs = append(evs, recordActivity(p, s.cal, now, entities.Activity{
			Minutes: LessonStudyMinutes,
			Lessons: 1,
			XP:      xp,
		})...)
		return append(evs, events.LessonCompleted{
			Language: language,
			LessonID: lessonID,
			Score:    score,
			XP:       xp,
		})
	})
	return xp, err
}

// ResetAll replaces the record with a fresh default.
func (s *ProgressService) ResetAll(ctx context.Context) error {
	return s.Update(ctx, func(p *entities.UserProgress, _ time.Time) []events.Event {
		*p = *entities.NewUserProgress()
		return []events.Event{events.ProgressReset{}}
	})
}

// SetDailyGoal stores the goal clamped to the allowed range and returns it.
func (s *ProgressService) SetDailyGoal(ctx context.Context, minutes int) (int, error) {
	goal := entities.ClampDailyGoal(minutes)
	err := s.Update(ctx, func(p *entities.UserProgress, _ time.Time) []events.Event {
		p.DailyGoal = goal
		return nil
	})
	return goal, err
}

// UpdatePreferences lets fn edit the preferences in place.
func (s *ProgressService) UpdatePreferences(ctx context.Context, fn func(*entities.UserPreferences)) error {
	return s.Update(ctx, func(p *entities.UserProgress, _ time.Time) []events.Event {
		fn(&p.Preferences)
		return nil
	})
}

// TodayProgress returns today's entry, or an empty placeholder.
func (s *ProgressService) TodayProgress(ctx context.Context) entities.DailyProgress {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	p := s.loadLocked(ctx)
	if e := p.Statistics.DayEntry(s.cal, now); e != nil {
		return *e
	}
	return entities.DailyProgress{Date: s.cal.StartOfDay(now)}
}

// TodayGoalProgress is today's minutes over the daily goal. It exceeds 1 when
// the goal is beaten.
func (s *ProgressService) TodayGoalProgress(ctx context.Context) float64 {
	today := s.TodayProgress(ctx)
	goal := s.Snapshot(ctx).DailyGoal
	if goal <= 0 {
		return 0
	}
	return float64(today.MinutesStudied) / float64(goal)
}

// StreakDays is the last 7 days, oldest first, with empty days filled in.
func (s *ProgressService) StreakDays(ctx context.Context) []entities.DailyProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.loadLocked(ctx)
	return entities.StreakDays(s.cal, p.Statistics.WeeklyProgress, s.now(), 7)
}

// WeeklySummary aggregates StreakDays.
func (s *ProgressService) WeeklySummary(ctx context.Context) entities.WeekSummary {
	return entities.SummarizeDays(s.StreakDays(ctx))
}

func (s *ProgressService) LevelInfo(ctx context.Context) entities.LevelInfo {
	return entities.NewLevelInfo(s.Snapshot(ctx).TotalXP)
}
