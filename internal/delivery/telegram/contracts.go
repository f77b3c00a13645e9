package telegram

import (
	"context"
	"time"

	"github.com/lingofusion/lingofusion/internal/domain/entities"
	"github.com/lingofusion/lingofusion/internal/service"
)

type ProgressService interface {
	Snapshot(ctx context.Context) *entities.UserProgress
	RecordStudy(ctx context.Context, minutes, lessons, xp, cameraScans int) error
	TodayProgress(ctx context.Context) entities.DailyProgress
	TodayGoalProgress(ctx context.Context) float64
	StreakDays(ctx context.Context) []entities.DailyProgress
	WeeklySummary(ctx context.Context) entities.WeekSummary
	LevelInfo(ctx context.Context) entities.LevelInfo
	Now() time.Time
}

type LessonService interface {
	Blocks(ctx context.Context) []entities.LanguageBlock
	Block(ctx context.Context, code string) (entities.LanguageBlock, bool)
	CompleteLesson(ctx context.Context, code, lessonID string, score float64) (service.LessonResult, error)
	TotalCompleted(ctx context.Context) int
	TotalAvailable(ctx context.Context) int
}

type VocabularyService interface {
	Add(ctx context.Context, word, translation, language string) (entities.UserVocabulary, error)
	List(ctx context.Context, language string) []entities.UserVocabulary
	Update(ctx context.Context, id, word, translation string) (bool, error)
	Remove(ctx context.Context, id string) (bool, error)
}

type PracticeService interface {
	ProcessRecognizedObject(ctx context.Context, name string) (service.ScanResult, error)
	ProcessSpeechResult(ctx context.Context, text string, accuracy float64) (service.SpeechResult, error)
}

type SettingsService interface {
	Preferences(ctx context.Context) entities.UserPreferences
	OnboardingCompleted(ctx context.Context) bool
	CompleteOnboarding(ctx context.Context, o service.Onboarding) error
	SetDailyGoal(ctx context.Context, minutes int) (int, error)
	SetPermission(ctx context.Context, c entities.Capability, granted bool) error
	SetStudyReminders(ctx context.Context, enabled bool) error
	SetReminderHour(ctx context.Context, hour int) error
}

type ResetService interface {
	ResetAll(ctx context.Context) error
}

// AchievementStats measures the record against the achievement catalogue.
type AchievementStats interface {
	Stats(p *entities.UserProgress) entities.AchievementStats
}

// PronunciationScorer turns a heard phrase into an accuracy.
type PronunciationScorer interface {
	Score(heard, expected string) float64
}

// Services bundles everything the handler talks to.
type Services struct {
	Progress     ProgressService
	Lessons      LessonService
	Vocabulary   VocabularyService
	Practice     PracticeService
	Settings     SettingsService
	Reset        ResetService
	Achievements AchievementStats
	Scorer       PronunciationScorer
}
