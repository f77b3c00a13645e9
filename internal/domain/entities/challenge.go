package entities

import (
	"time"

	"github.com/google/uuid"
)

// ChallengeType names the metric a weekly challenge measures.
type ChallengeType string

const (
	ChallengeDailyStreak   ChallengeType = "daily_streak"
	ChallengeLessons       ChallengeType = "lessons_completed"
	ChallengeStudyMinutes  ChallengeType = "study_minutes"
	ChallengeWordsLearned  ChallengeType = "words_learned"
	ChallengeCameraScans   ChallengeType = "camera_scans"
	ChallengePronunciation ChallengeType = "pronunciation_practice"
)

const ChallengeDurationInDays = 7

// Label is the human readable name of the type.
func (t ChallengeType) Label() string {
	switch t {
	case ChallengeDailyStreak:
		return "Daily Streak"
	case ChallengeLessons:
		return "Lessons"
	case ChallengeStudyMinutes:
		return "Study Time"
	case ChallengeWordsLearned:
		return "Vocabulary"
	case ChallengeCameraScans:
		return "Camera Scans"
	case ChallengePronunciation:
		return "Pronunciation"
	}
	return string(t)
}

// Measure extracts this type's metric from a set of daily entries.
func (t ChallengeType) Measure(entries []DailyProgress) int {
	total := 0
	for _, e := range entries {
		switch t {
		case ChallengeDailyStreak:
			if e.MinutesStudied > 0 {
				total++
			}
		case ChallengeLessons:
			total += e.LessonsCompleted
		case ChallengeStudyMinutes:
			total += e.MinutesStudied
		case ChallengeWordsLearned:
			total += e.WordsLearned
		case ChallengeCameraScans:
			total += e.CameraSessionsCompleted
		case ChallengePronunciation:
			total += e.PronunciationSessions
		}
	}
	return total
}

// ChallengeTemplate is a catalogue entry a weekly challenge is drawn from.
type ChallengeTemplate struct {
	ID          string
	Title       string
	Description string
	Type        ChallengeType
	Target      int
	XPReward    int
}

var challengeTemplates = []ChallengeTemplate{
	{ID: "study_streak", Title: "Study Streak", Description: "Study for 5 days this week", Type: ChallengeDailyStreak, Target: 5, XPReward: 200},
	{ID: "lesson_marathon", Title: "Lesson Marathon", Description: "Complete 10 lessons this week", Type: ChallengeLessons, Target: 10, XPReward: 300},
	{ID: "time_investment", Title: "Time Investment", Description: "Study for 120 minutes this week", Type: ChallengeStudyMinutes, Target: 120, XPReward: 250},
	{ID: "vocabulary_boost", Title: "Vocabulary Boost", Description: "Learn 25 new words this week", Type: ChallengeWordsLearned, Target: 25, XPReward: 350},
	{ID: "camera_master", Title: "Camera Master", Description: "Scan 15 objects this week", Type: ChallengeCameraScans, Target: 15, XPReward: 200},
	{ID: "pronunciation_pro", Title: "Pronunciation Pro", Description: "Complete 8 pronunciation exercises", Type: ChallengePronunciation, Target: 8, XPReward: 300},
}

// ChallengeTemplates returns a copy of the catalogue.
func ChallengeTemplates() []ChallengeTemplate {
	return append([]ChallengeTemplate(nil), challengeTemplates...)
}

// WeeklyChallenge is the one active challenge instance.
type WeeklyChallenge struct {
	ID          string        `json:"id"`
	TemplateID  string        `json:"templateId"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Type        ChallengeType `json:"type"`
	Target      int           `json:"target"`
	Progress    int           `json:"progress"`
	StartDate   time.Time     `json:"startDate"`
	EndDate     time.Time     `json:"endDate"`
	XPReward    int           `json:"xpReward"`
	IsCompleted bool          `json:"isCompleted"`
}

// NewWeeklyChallenge stamps a fresh instance of t starting at now.
func NewWeeklyChallenge(t ChallengeTemplate, now time.Time) *WeeklyChallenge {
	return &WeeklyChallenge{
		ID:          uuid.NewString(),
		TemplateID:  t.ID,
		Title:       t.Title,
		Description: t.Description,
		Type:        t.Type,
		Target:      t.Target,
		StartDate:   now,
		EndDate:     now.AddDate(0, 0, ChallengeDurationInDays),
		XPReward:    t.XPReward,
	}
}

// Active reports whether the window is still open at now.
func (c *WeeklyChallenge) Active(now time.Time) bool {
	return c != nil && c.EndDate.After(now)
}

// Ratio is progress over target, capped at 1.
func (c *WeeklyChallenge) Ratio() float64 {
	if c.Target <= 0 {
		return 0
	}
	return min(float64(c.Progress)/float64(c.Target), 1)
}

// Recompute sets progress from the week's entries and completes the challenge
// when the target is reached. It returns true only on the transition to
// completed, so the reward is paid once.
func (c *WeeklyChallenge) Recompute(weekEntries []DailyProgress) (completedNow bool) {
	if c.IsCompleted {
		return false
	}
	c.Progress = min(c.Type.Measure(weekEntries), c.Target)
	if c.Progress >= c.Target {
		c.IsCompleted = true
		return true
	}
	return false
}
