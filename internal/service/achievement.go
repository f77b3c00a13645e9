package service

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lingofusion/lingofusion/internal/domain/entities"
	"github.com/lingofusion/lingofusion/internal/events"
)

// AchievementEngine unlocks catalogue achievements the first time their
// threshold is met. Templates already on the record are skipped, so
// re-evaluation never pays twice.
type AchievementEngine struct {
	mu        sync.RWMutex
	modules   ModuleCounter
	templates []entities.AchievementTemplate
	logger    *zap.Logger
}

func NewAchievementEngine(logger *zap.Logger) *AchievementEngine {
	return &AchievementEngine{
		templates: entities.AchievementTemplates(),
		logger:    logger,
	}
}

// SetModuleCounter wires the lesson catalogue in after both services exist.
func (e *AchievementEngine) SetModuleCounter(m ModuleCounter) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.modules = m
}

// Stats collects the statistics the templates are measured against.
func (e *AchievementEngine) Stats(p *entities.UserProgress) entities.AchievementStats {
	e.mu.RLock()
	modules := e.modules
	e.mu.RUnlock()

	stats := entities.AchievementStats{
		LessonsCompleted: p.LessonsCompleted,
		CameraScans:      p.Statistics.CameraScans,
		WordsLearned:     p.Statistics.WordsLearned,
		CurrentStreak:    p.CurrentStreak,
	}
	if modules != nil {
		stats.ModulesCompleted = modules.CompletedBlocks()
	}
	return stats
}

func (e *AchievementEngine) Apply(p *entities.UserProgress, now time.Time) []events.Event {
	stats := e.Stats(p)

	var evs []events.Event
	for _, t := range e.templates {
		if p.HasAchievement(t.ID) {
			continue
		}
		value := stats.Value(t.Metric)
		if value < t.Requirement {
			continue
		}

		a := t.Unlock(min(value, t.Requirement), now)
		p.Achievements = append(p.Achievements, a)
		evs = append(evs, events.AchievementUnlocked{Achievement: a})
		evs = append(evs, awardXP(p, t.XPReward, "achievement")...)

		e.logger.Info("achievement unlocked",
			zap.String("achievement", t.ID),
			zap.Int("xp", t.XPReward),
		)
	}
	return evs
}
