package telegram

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/lingofusion/lingofusion/internal/domain/entities"
	"github.com/lingofusion/lingofusion/internal/events"
	"github.com/lingofusion/lingofusion/internal/service"
)

// progressView is everything the progress screen shows.
type progressView struct {
	Progress     *entities.UserProgress
	Today        entities.DailyProgress
	GoalProgress float64
	Level        entities.LevelInfo
	Week         entities.WeekSummary
	Days         []entities.DailyProgress
	Motivation   string
	Lessons      int
	LessonsTotal int
}

func renderProgress(v progressView) string {
	var sb strings.Builder

	sb.WriteString(bold("📊 Your progress"))
	sb.WriteString("\n")
	sb.WriteString(italic(v.Motivation))
	sb.WriteString("\n\n")

	sb.WriteString(bold(fmt.Sprintf("⭐ Level %d", v.Level.Level)))
	sb.WriteString(md(fmt.Sprintf(" · %d XP", v.Level.TotalXP)))
	sb.WriteString("\n")
	sb.WriteString(md(buildProgressBar(v.Level.XPInLevel, entities.XPPerLevel, 20)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("%d XP to level %d", v.Level.XPToNext, v.Level.Level+1)))
	sb.WriteString("\n\n")

	sb.WriteString(md(fmt.Sprintf("🎯 Today: %s of %s (%d%%)",
		service.FormatMinutes(v.Today.MinutesStudied),
		service.FormatMinutes(v.Progress.DailyGoal),
		int(math.Round(v.GoalProgress*100)),
	)))
	sb.WriteString("\n")
	sb.WriteString(md(buildProgressBar(v.Today.MinutesStudied, v.Progress.DailyGoal, 20)))
	sb.WriteString("\n\n")

	sb.WriteString(md(fmt.Sprintf("🔥 Streak: %d days (best %d)", v.Progress.CurrentStreak, v.Progress.LongestStreak)))
	sb.WriteString("\n")
	sb.WriteString(md(renderStreakDays(v.Days)))
	sb.WriteString("\n\n")

	sb.WriteString(md(fmt.Sprintf("📅 Last 7 days: %s · %d lessons · %d XP · %d study days",
		service.FormatMinutes(v.Week.Minutes), v.Week.Lessons, v.Week.XP, v.Week.StudyDays)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("📚 Lessons: %d / %d · ⏱ Total: %s",
		v.Lessons, v.LessonsTotal, service.FormatMinutes(v.Progress.TotalStudyTime))))
	sb.WriteString("\n")

	st := v.Progress.Statistics
	sb.WriteString(md(fmt.Sprintf("📷 Scans: %d · 🗣 Accuracy: %d%% · 🔤 Words: %d",
		st.CameraScans, int(math.Round(st.PronunciationAccuracy*100)), st.WordsLearned)))

	return sb.String()
}

// renderStreakDays draws one square per day, oldest first.
func renderStreakDays(days []entities.DailyProgress) string {
	var sb strings.Builder
	for _, d := range days {
		if d.MinutesStudied > 0 {
			sb.WriteString("🟩")
		} else {
			sb.WriteString("⬜")
		}
	}
	return sb.String()
}

// buildProgressBar creates ASCII progress bar.
func buildProgressBar(current, total, length int) string {
	if total <= 0 {
		return "[" + strings.Repeat("░", length) + "]"
	}

	filled := int(float64(current) / float64(total) * float64(length))
	filled = min(max(filled, 0), length)

	bar := strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
	return fmt.Sprintf("[%s]", bar)
}

func renderBlocks(blocks []entities.LanguageBlock, completed, total int) string {
	var sb strings.Builder

	sb.WriteString(bold("📚 Language blocks"))
	sb.WriteString("\n\n")
	for _, b := range blocks {
		sb.WriteString(md(fmt.Sprintf("%s %s (%s)", b.Language.Flag, b.Language.Name, b.Language.Code)))
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("%s %d/%d", buildProgressBar(b.CompletedLessons(), b.TotalLessons(), 10), b.CompletedLessons(), b.TotalLessons())))
		sb.WriteString("\n\n")
	}
	sb.WriteString(md(fmt.Sprintf("Completed %d of %d lessons.", completed, total)))

	return sb.String()
}

func renderBlock(b entities.LanguageBlock) string {
	var sb strings.Builder

	sb.WriteString(bold(fmt.Sprintf("%s %s", b.Language.Flag, b.Language.Name)))
	sb.WriteString("\n\n")
	for i, l := range b.Lessons {
		mark := "▫️"
		if l.IsCompleted {
			mark = "✅"
		}
		sb.WriteString(md(fmt.Sprintf("%s %d. %s", mark, i+1, l.Title)))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("Open one with /lesson %s N", b.Language.Code)))

	return sb.String()
}

func renderLesson(b entities.LanguageBlock, n int) string {
	l := b.Lessons[n-1]

	var sb strings.Builder
	sb.WriteString(bold(l.Title))
	if l.IsCompleted {
		sb.WriteString(md(" ✅"))
	}
	sb.WriteString("\n")
	sb.WriteString(italic(fmt.Sprintf("%s %s · lesson %d of %d", b.Language.Flag, b.Language.Name, n, len(b.Lessons))))
	sb.WriteString("\n\n")

	for _, w := range l.Words {
		sb.WriteString(bold(w.Word))
		sb.WriteString(md(" – " + w.Translation))
		if w.Pronunciation != "" {
			sb.WriteString(md(" [" + w.Pronunciation + "]"))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func renderLessonResult(title string, res service.LessonResult) string {
	var sb strings.Builder

	sb.WriteString(bold("🎉 Lesson complete: " + title))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("+%d XP", res.XP)))
	if !res.FirstCompletion {
		sb.WriteString(md(" (practice run)"))
	}
	if res.BlockCompleted {
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("🏅 Language block finished! +%d XP", service.BlockCompletionBonus)))
	}
	if res.MilestoneBonus > 0 {
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("🎯 Lesson milestone reached! +%d XP", res.MilestoneBonus)))
	}

	return sb.String()
}

func renderWords(words []entities.UserVocabulary, language string) string {
	if len(words) == 0 {
		if language != "" {
			return md(fmt.Sprintf("No saved %s words yet. Add one with /addword %s word = translation", language, language))
		}
		return md("Your vocabulary is empty. Add a word with /addword it ciao = hello")
	}

	var sb strings.Builder
	title := "🔤 Your vocabulary"
	if language != "" {
		title += " (" + language + ")"
	}
	sb.WriteString(bold(title))
	sb.WriteString("\n\n")
	for i, w := range words {
		sb.WriteString(md(fmt.Sprintf("%d. ", i+1)))
		sb.WriteString(bold(w.Word))
		sb.WriteString(md(fmt.Sprintf(" – %s [%s]", w.Translation, w.Language)))
		sb.WriteString("\n")
	}

	return sb.String()
}

func renderChallenge(c *entities.WeeklyChallenge, now time.Time) string {
	if !c.Active(now) {
		return md("No active challenge right now. A new one starts with your next activity.")
	}

	var sb strings.Builder
	sb.WriteString(bold("🏆 " + c.Title))
	sb.WriteString("\n")
	sb.WriteString(md(c.Description))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("%s %d/%d %s", buildProgressBar(c.Progress, c.Target, 20), c.Progress, c.Target, c.Type.Label())))
	sb.WriteString("\n")

	if c.IsCompleted {
		sb.WriteString(md(fmt.Sprintf("✅ Completed! +%d XP earned", c.XPReward)))
		return sb.String()
	}

	days := int(math.Ceil(c.EndDate.Sub(now).Hours() / 24))
	sb.WriteString(md(fmt.Sprintf("⏳ %d days left · reward %d XP", days, c.XPReward)))
	return sb.String()
}

func renderAchievements(board []entities.AchievementProgress) string {
	var sb strings.Builder

	sb.WriteString(bold("🏅 Achievements"))
	sb.WriteString("\n\n")
	for _, row := range board {
		t := row.Template
		if row.Unlocked != nil {
			sb.WriteString(md("✅ "))
			sb.WriteString(bold(t.Title))
			if row.Unlocked.UnlockedDate != nil {
				sb.WriteString(md(" · " + row.Unlocked.UnlockedDate.Format("Jan 2, 2006")))
			}
		} else {
			sb.WriteString(md("🔒 "))
			sb.WriteString(bold(t.Title))
			sb.WriteString(md(fmt.Sprintf(" · %d/%d", row.Progress, t.Requirement)))
		}
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("%s (+%d XP)", t.Description, t.XPReward)))
		sb.WriteString("\n\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

func renderScan(res service.ScanResult) string {
	var sb strings.Builder

	sb.WriteString(bold("📷 " + res.ObjectName))
	sb.WriteString("\n\n")
	if len(res.Translations) == 0 {
		sb.WriteString(md("No lesson has this word yet, but the scan still counts."))
	} else {
		codes := make([]string, 0, len(res.Translations))
		for code := range res.Translations {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		for _, code := range codes {
			sb.WriteString(md(fmt.Sprintf("%s: %s", code, res.Translations[code])))
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("+%d XP", res.XP)))

	return sb.String()
}

func renderSpeech(res service.SpeechResult) string {
	return md(fmt.Sprintf("🗣 Accuracy %d%% · average %d%%\n+%d XP",
		int(math.Round(res.Accuracy*100)),
		int(math.Round(res.Average*100)),
		res.XP,
	))
}

func renderPermissionNeeded(c entities.Capability, status entities.AuthorizationStatus) string {
	if status == entities.AuthorizationDenied {
		return md(fmt.Sprintf("🚫 %s access is denied. Grant it with /allow %s", c, c))
	}
	return md(fmt.Sprintf("%s access has not been granted yet. Use /allow %s", c, c))
}

func renderReminder(p entities.ReminderPayload, now time.Time) string {
	var sb strings.Builder

	sb.WriteString(bold("⏰ Time to practice!"))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("Today: %s of %s. Only %s left to hit your goal.",
		service.FormatMinutes(p.MinutesToday),
		service.FormatMinutes(p.DailyGoal),
		service.FormatMinutes(p.MinutesLeft()),
	)))
	if p.CurrentStreak > 0 {
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("🔥 Keep your %d day streak alive.", p.CurrentStreak)))
	}
	if c := p.Challenge; c.Active(now) && !c.IsCompleted {
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("🏆 %s: %d/%d", c.Title, c.Progress, c.Target)))
	}

	return sb.String()
}

// renderEvent turns the events worth a push message into text.
func renderEvent(e events.Event) (string, bool) {
	switch ev := e.(type) {
	case events.AchievementUnlocked:
		return md(fmt.Sprintf("🏅 Achievement unlocked: %s (+%d XP)", ev.Achievement.Title, ev.Achievement.XPReward)), true
	case events.LevelUp:
		return md(fmt.Sprintf("⭐ Level up! You reached level %d.", ev.To)), true
	case events.ChallengeCompleted:
		return md(fmt.Sprintf("🏆 Weekly challenge complete: %s (+%d XP)", ev.Challenge.Title, ev.Challenge.XPReward)), true
	case events.ChallengeStarted:
		return md(fmt.Sprintf("🆕 New weekly challenge: %s. %s", ev.Challenge.Title, ev.Challenge.Description)), true
	}
	return "", false
}
