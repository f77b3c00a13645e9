package entities

import (
	"time"

	"github.com/google/uuid"
)

// Daily goal bounds, in minutes.
const (
	MinDailyGoal     = 5
	MaxDailyGoal     = 180
	DefaultDailyGoal = 15
)

// UserProgress is the single gamification record of the installation.
type UserProgress struct {
	TotalXP             int                `json:"totalXP"`
	CurrentLevel        int                `json:"currentLevel"`
	CurrentStreak       int                `json:"currentStreak"`
	LongestStreak       int                `json:"longestStreak"`
	LessonsCompleted    int                `json:"lessonsCompleted"`
	TotalStudyTime      int                `json:"totalStudyTime"` // minutes
	DailyGoal           int                `json:"dailyGoal"`      // minutes
	Achievements        []Achievement      `json:"achievements"`
	Statistics          LearningStatistics `json:"statistics"`
	WeeklyChallenge     *WeeklyChallenge   `json:"weeklyChallenge,omitempty"`
	Preferences         UserPreferences    `json:"preferences"`
	OnboardingCompleted bool               `json:"onboardingCompleted"`
}

// NewUserProgress returns the record a fresh installation starts with.
func NewUserProgress() *UserProgress {
	return &UserProgress{
		CurrentLevel: 1,
		DailyGoal:    DefaultDailyGoal,
		Achievements: []Achievement{},
		Statistics:   NewLearningStatistics(),
		Preferences:  NewUserPreferences(),
	}
}

// Normalize repairs fields a hand-edited or older record may lack.
func (p *UserProgress) Normalize() {
	if p.Achievements == nil {
		p.Achievements = []Achievement{}
	}
	if p.Statistics.WeeklyProgress == nil {
		p.Statistics.WeeklyProgress = []DailyProgress{}
	}
	if p.Statistics.MonthlyProgress == nil {
		p.Statistics.MonthlyProgress = []WeeklyStats{}
	}
	if p.DailyGoal == 0 {
		p.DailyGoal = DefaultDailyGoal
	}
	p.DailyGoal = ClampDailyGoal(p.DailyGoal)
	p.CurrentLevel = LevelForXP(p.TotalXP)
}

// AddXP adds amount and re-derives the level. It reports whether the level went up.
func (p *UserProgress) AddXP(amount int) (levelUp bool) {
	before := p.CurrentLevel
	p.TotalXP += amount
	p.CurrentLevel = LevelForXP(p.TotalXP)
	return p.CurrentLevel > before
}

// Activity is one batch of study counters for a single day.
type Activity struct {
	Minutes               int
	Lessons               int
	XP                    int
	CameraScans           int
	WordsLearned          int
	PronunciationSessions int
}

// RecordActivity accumulates a into the DailyProgress entry for the day of now,
// creating the entry if the day has none yet. XP is only logged here; the
// caller decides whether it also counts towards TotalXP.
func (p *UserProgress) RecordActivity(cal Calendar, now time.Time, a Activity) *DailyProgress {
	entry := p.Statistics.DayEntry(cal, now)
	if entry == nil {
		p.Statistics.WeeklyProgress = append(p.Statistics.WeeklyProgress, NewDailyProgress(cal.StartOfDay(now)))
		entry = &p.Statistics.WeeklyProgress[len(p.Statistics.WeeklyProgress)-1]
	}

	entry.MinutesStudied += a.Minutes
	entry.LessonsCompleted += a.Lessons
	entry.XPEarned += a.XP
	entry.CameraSessionsCompleted += a.CameraScans
	entry.WordsLearned += a.WordsLearned
	entry.PronunciationSessions += a.PronunciationSessions

	p.TotalStudyTime += a.Minutes
	return entry
}

// HasAchievement reports whether the template id is already on the record.
func (p *UserProgress) HasAchievement(id string) bool {
	for _, a := range p.Achievements {
		if a.ID == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy safe to hand out of a lock.
func (p *UserProgress) Clone() *UserProgress {
	if p == nil {
		return nil
	}
	c := *p
	c.Achievements = append([]Achievement{}, p.Achievements...)
	for i := range c.Achievements {
		if t := c.Achievements[i].UnlockedDate; t != nil {
			tt := *t
			c.Achievements[i].UnlockedDate = &tt
		}
	}
	c.Statistics = p.Statistics.clone()
	if p.WeeklyChallenge != nil {
		wc := *p.WeeklyChallenge
		c.WeeklyChallenge = &wc
	}
	c.Preferences = p.Preferences.clone()
	return &c
}

func ClampDailyGoal(minutes int) int {
	return min(max(minutes, MinDailyGoal), MaxDailyGoal)
}

// LearningStatistics aggregates lifetime counters and the per-day history.
type LearningStatistics struct {
	WordsLearned          int             `json:"wordsLearned"`
	PronunciationAccuracy float64         `json:"pronunciationAccuracy"`
	PronunciationSessions int             `json:"pronunciationSessions"`
	CameraScans           int             `json:"cameraScans"`
	FavoriteCategory      *string         `json:"favoriteCategory,omitempty"`
	StrongestSkill        *string         `json:"strongestSkill,omitempty"`
	WeeklyProgress        []DailyProgress `json:"weeklyProgress"`
	MonthlyProgress       []WeeklyStats   `json:"monthlyProgress"`
}

func NewLearningStatistics() LearningStatistics {
	return LearningStatistics{
		WeeklyProgress:  []DailyProgress{},
		MonthlyProgress: []WeeklyStats{},
	}
}

// DayEntry returns the entry for the calendar day of t, or nil.
func (s *LearningStatistics) DayEntry(cal Calendar, t time.Time) *DailyProgress {
	for i := range s.WeeklyProgress {
		if cal.SameDay(s.WeeklyProgress[i].Date, t) {
			return &s.WeeklyProgress[i]
		}
	}
	return nil
}

// EntriesSince returns the entries dated on or after from.
func (s *LearningStatistics) EntriesSince(from time.Time) []DailyProgress {
	var out []DailyProgress
	for _, e := range s.WeeklyProgress {
		if !e.Date.Before(from) {
			out = append(out, e)
		}
	}
	return out
}

func (s LearningStatistics) clone() LearningStatistics {
	c := s
	c.WeeklyProgress = append([]DailyProgress{}, s.WeeklyProgress...)
	c.MonthlyProgress = append([]WeeklyStats{}, s.MonthlyProgress...)
	if s.FavoriteCategory != nil {
		v := *s.FavoriteCategory
		c.FavoriteCategory = &v
	}
	if s.StrongestSkill != nil {
		v := *s.StrongestSkill
		c.StrongestSkill = &v
	}
	return c
}

// DailyProgress holds the counters of one calendar day.
type DailyProgress struct {
	ID                      string    `json:"id"`
	Date                    time.Time `json:"date"` // local start of day
	MinutesStudied          int       `json:"minutesStudied"`
	LessonsCompleted        int       `json:"lessonsCompleted"`
	XPEarned                int       `json:"xpEarned"`
	CameraSessionsCompleted int       `json:"cameraSessionsCompleted"`
	WordsLearned            int       `json:"wordsLearned"`
	PronunciationSessions   int       `json:"pronunciationSessions"`
}

func NewDailyProgress(day time.Time) DailyProgress {
	return DailyProgress{ID: uuid.NewString(), Date: day}
}

// WeeklyStats is the roll-up of one closed calendar week.
type WeeklyStats struct {
	ID              string    `json:"id"`
	WeekStartDate   time.Time `json:"weekStartDate"`
	TotalMinutes    int       `json:"totalMinutes"`
	TotalLessons    int       `json:"totalLessons"`
	TotalXP         int       `json:"totalXP"`
	AverageAccuracy float64   `json:"averageAccuracy"`
}

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// UserPreferences are the learner's settings chosen during onboarding.
type UserPreferences struct {
	SelectedLanguages           []string   `json:"selectedLanguages"`
	NativeLanguage              string     `json:"nativeLanguage"`
	DifficultyPreference        Difficulty `json:"difficultyPreference"`
	NotificationsEnabled        bool       `json:"notificationsEnabled"`
	ReminderTime                *time.Time `json:"reminderTime,omitempty"`
	StudyReminders              bool       `json:"studyReminders"`
	SoundEnabled                bool       `json:"soundEnabled"`
	HapticsEnabled              bool       `json:"hapticsEnabled"`
	CameraPermissionGranted     bool       `json:"cameraPermissionGranted"`
	MicrophonePermissionGranted bool       `json:"microphonePermissionGranted"`
}

func NewUserPreferences() UserPreferences {
	return UserPreferences{
		SelectedLanguages:    []string{"es"},
		NativeLanguage:       "en",
		DifficultyPreference: DifficultyBeginner,
		NotificationsEnabled: true,
		StudyReminders:       true,
		SoundEnabled:         true,
		HapticsEnabled:       true,
	}
}

// DefaultReminderHour is used when no reminder time was chosen.
const DefaultReminderHour = 19

// ReminderHour returns the local hour reminders should go out at.
func (p UserPreferences) ReminderHour(loc *time.Location) int {
	if p.ReminderTime == nil {
		return DefaultReminderHour
	}
	return p.ReminderTime.In(loc).Hour()
}

func (p UserPreferences) clone() UserPreferences {
	c := p
	c.SelectedLanguages = append([]string{}, p.SelectedLanguages...)
	if p.ReminderTime != nil {
		t := *p.ReminderTime
		c.ReminderTime = &t
	}
	return c
}
