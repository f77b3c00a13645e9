package entities

import "time"

type AchievementCategory string

const (
	CategoryStreak        AchievementCategory = "Streak"
	CategoryLessons       AchievementCategory = "Lessons"
	CategoryVocabulary    AchievementCategory = "Vocabulary"
	CategoryCamera        AchievementCategory = "Camera"
	CategoryPronunciation AchievementCategory = "Pronunciation"
	CategoryTranslation   AchievementCategory = "Translation"
	CategoryStudyTime     AchievementCategory = "Study Time"
)

// AchievementMetric selects the statistic a template is measured against.
type AchievementMetric int

const (
	MetricLessonsCompleted AchievementMetric = iota
	MetricCameraScans
	MetricWordsLearned
	MetricCurrentStreak
	MetricModulesCompleted
)

// AchievementStats is the input an achievement evaluation reads.
type AchievementStats struct {
	LessonsCompleted int
	CameraScans      int
	WordsLearned     int
	CurrentStreak    int
	ModulesCompleted int
}

func (s AchievementStats) Value(m AchievementMetric) int {
	switch m {
	case MetricLessonsCompleted:
		return s.LessonsCompleted
	case MetricCameraScans:
		return s.CameraScans
	case MetricWordsLearned:
		return s.WordsLearned
	case MetricCurrentStreak:
		return s.CurrentStreak
	case MetricModulesCompleted:
		return s.ModulesCompleted
	}
	return 0
}

// AchievementTemplate is a catalogue definition with a stable identity.
type AchievementTemplate struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Category    AchievementCategory
	Metric      AchievementMetric
	Requirement int
	XPReward    int
}

var achievementTemplates = []AchievementTemplate{
	{ID: "first_steps", Title: "First Steps", Description: "Complete your first lesson", Icon: "star.fill", Category: CategoryLessons, Metric: MetricLessonsCompleted, Requirement: 1, XPReward: 50},
	{ID: "camera_explorer", Title: "Camera Explorer", Description: "Scan 10 objects with the camera", Icon: "camera.fill", Category: CategoryCamera, Metric: MetricCameraScans, Requirement: 10, XPReward: 100},
	{ID: "vocabulary_builder", Title: "Vocabulary Builder", Description: "Learn 50 new words", Icon: "book.fill", Category: CategoryVocabulary, Metric: MetricWordsLearned, Requirement: 50, XPReward: 200},
	{ID: "week_warrior", Title: "Week Warrior", Description: "Study for 7 consecutive days", Icon: "flame.fill", Category: CategoryStreak, Metric: MetricCurrentStreak, Requirement: 7, XPReward: 300},
	{ID: "module_master", Title: "Module Master", Description: "Complete 3 learning modules", Icon: "trophy.fill", Category: CategoryLessons, Metric: MetricModulesCompleted, Requirement: 3, XPReward: 500},
}

func AchievementTemplates() []AchievementTemplate {
	return append([]AchievementTemplate(nil), achievementTemplates...)
}

// Achievement is an unlocked (or tracked) entry on the user's record.
type Achievement struct {
	ID           string              `json:"id"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Icon         string              `json:"icon"`
	Category     AchievementCategory `json:"category"`
	Requirement  int                 `json:"requirement"`
	Progress     int                 `json:"progress"`
	IsUnlocked   bool                `json:"isUnlocked"`
	XPReward     int                 `json:"xpReward"`
	UnlockedDate *time.Time          `json:"unlockedDate,omitempty"`
}

// Unlock builds the achievement record for t reached at now.
func (t AchievementTemplate) Unlock(progress int, now time.Time) Achievement {
	return Achievement{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		Icon:         t.Icon,
		Category:     t.Category,
		Requirement:  t.Requirement,
		Progress:     progress,
		IsUnlocked:   true,
		XPReward:     t.XPReward,
		UnlockedDate: &now,
	}
}

// AchievementProgress is a catalogue row joined with the user's state.
type AchievementProgress struct {
	Template AchievementTemplate
	Progress int
	Unlocked *Achievement
}

// AchievementBoard lists every template with current progress, unlocked first
// in catalogue order.
func AchievementBoard(p *UserProgress, stats AchievementStats) []AchievementProgress {
	board := make([]AchievementProgress, 0, len(achievementTemplates))
	for _, t := range achievementTemplates {
		row := AchievementProgress{Template: t, Progress: min(stats.Value(t.Metric), t.Requirement)}
		for i := range p.Achievements {
			if p.Achievements[i].ID == t.ID {
				a := p.Achievements[i]
				row.Unlocked = &a
				row.Progress = t.Requirement
				break
			}
		}
		board = append(board, row)
	}
	return board
}
