package entities

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// RollUpClosedWeeks appends a WeeklyStats for every calendar week before the
// current one that has daily entries but no roll-up yet. It returns how many
// weeks were added.
func (p *UserProgress) RollUpClosedWeeks(cal Calendar, now time.Time) int {
	current := cal.StartOfWeek(now)

	weeks := make(map[time.Time]*WeeklyStats)
	var order []time.Time
	for _, e := range p.Statistics.WeeklyProgress {
		start := cal.StartOfWeek(e.Date)
		if !start.Before(current) || p.hasWeek(cal, start) {
			continue
		}
		ws, ok := weeks[start]
		if !ok {
			ws = &WeeklyStats{
				ID:              uuid.NewString(),
				WeekStartDate:   start,
				AverageAccuracy: p.Statistics.PronunciationAccuracy,
			}
			weeks[start] = ws
			order = append(order, start)
		}
		ws.TotalMinutes += e.MinutesStudied
		ws.TotalLessons += e.LessonsCompleted
		ws.TotalXP += e.XPEarned
	}

	slices.SortFunc(order, func(a, b time.Time) int { return a.Compare(b) })
	for _, start := range order {
		p.Statistics.MonthlyProgress = append(p.Statistics.MonthlyProgress, *weeks[start])
	}
	return len(order)
}

func (p *UserProgress) hasWeek(cal Calendar, start time.Time) bool {
	for _, w := range p.Statistics.MonthlyProgress {
		if cal.SameDay(w.WeekStartDate, start) {
			return true
		}
	}
	return false
}
