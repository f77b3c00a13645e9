package entities

// ReminderPayload carries what a study reminder message needs.
type ReminderPayload struct {
	MinutesToday  int
	DailyGoal     int
	CurrentStreak int
	Challenge     *WeeklyChallenge
}

// MinutesLeft is how far today is from the daily goal.
func (p ReminderPayload) MinutesLeft() int {
	return max(p.DailyGoal-p.MinutesToday, 0)
}
