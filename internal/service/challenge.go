package service

import (
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/lingofusion/lingofusion/internal/domain/entities"
	"github.com/lingofusion/lingofusion/internal/events"
)

// WeeklyChallengeEngine keeps one challenge active and pays its reward once.
type WeeklyChallengeEngine struct {
	cal       entities.Calendar
	rng       *rand.Rand
	templates []entities.ChallengeTemplate
	logger    *zap.Logger
}

func NewWeeklyChallengeEngine(cal entities.Calendar, rng *rand.Rand, logger *zap.Logger) *WeeklyChallengeEngine {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &WeeklyChallengeEngine{
		cal:       cal,
		rng:       rng,
		templates: entities.ChallengeTemplates(),
		logger:    logger,
	}
}

// Apply draws a new challenge when none is active, then recomputes progress
// from this calendar week's entries.
func (e *WeeklyChallengeEngine) Apply(p *entities.UserProgress, now time.Time) []events.Event {
	var evs []events.Event

	if !p.WeeklyChallenge.Active(now) {
		tmpl := e.templates[e.rng.IntN(len(e.templates))]
		p.WeeklyChallenge = entities.NewWeeklyChallenge(tmpl, now)
		e.logger.Info("weekly challenge started",
			zap.String("template", tmpl.ID),
			zap.Time("ends_at", p.WeeklyChallenge.EndDate),
		)
		evs = append(evs, events.ChallengeStarted{Challenge: *p.WeeklyChallenge})
	}

	c := p.WeeklyChallenge
	week := p.Statistics.EntriesSince(e.cal.StartOfWeek(now))
	if c.Recompute(week) {
		evs = append(evs, events.ChallengeCompleted{Challenge: *c})
		evs = append(evs, awardXP(p, c.XPReward, "challenge")...)
		e.logger.Info("weekly challenge completed",
			zap.String("template", c.TemplateID),
			zap.Int("xp", c.XPReward),
		)
	}

	return evs
}
