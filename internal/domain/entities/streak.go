package entities

import (
	"slices"
	"time"
)

// CurrentStreak walks the entries newest first and counts them while they
// have study minutes. The first entry without minutes ends the run. Days
// that have no entry at all do not break it.
func CurrentStreak(entries []DailyProgress) int {
	sorted := slices.Clone(entries)
	slices.SortFunc(sorted, func(a, b DailyProgress) int {
		return b.Date.Compare(a.Date)
	})

	streak := 0
	for _, e := range sorted {
		if e.MinutesStudied <= 0 {
			break
		}
		streak++
	}
	return streak
}

// RecomputeStreaks refreshes the current streak and lifts the longest one.
func (p *UserProgress) RecomputeStreaks() {
	p.CurrentStreak = CurrentStreak(p.Statistics.WeeklyProgress)
	p.LongestStreak = max(p.LongestStreak, p.CurrentStreak)
}

// StreakDays returns the last n days ending today, oldest first. Days with no
// entry are zero placeholders dated at local midnight.
func StreakDays(cal Calendar, entries []DailyProgress, now time.Time, n int) []DailyProgress {
	today := cal.StartOfDay(now)
	out := make([]DailyProgress, 0, n)
	for i := n - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		placeholder := DailyProgress{Date: day}
		for _, e := range entries {
			if cal.SameDay(e.Date, day) {
				placeholder = e
				break
			}
		}
		out = append(out, placeholder)
	}
	return out
}

// WeekSummary aggregates a window of daily entries.
type WeekSummary struct {
	Minutes   int
	Lessons   int
	XP        int
	StudyDays int
}

func SummarizeDays(days []DailyProgress) WeekSummary {
	var s WeekSummary
	for _, d := range days {
		s.Minutes += d.MinutesStudied
		s.Lessons += d.LessonsCompleted
		s.XP += d.XPEarned
		if d.MinutesStudied > 0 {
			s.StudyDays++
		}
	}
	return s
}
