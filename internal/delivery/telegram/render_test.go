package telegram

import (
	"strings"
	"testing"
	"time"

	"github.com/lingofusion/lingofusion/internal/domain/entities"
	"github.com/lingofusion/lingofusion/internal/events"
	"github.com/lingofusion/lingofusion/internal/service"
)

var renderNow = time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC)

func TestBuildProgressBar(t *testing.T) {
	tests := []struct {
		current, total, length int
		want                   string
	}{
		{0, 10, 4, "[░░░░]"},
		{5, 10, 4, "[██░░]"},
		{10, 10, 4, "[████]"},
		{25, 10, 4, "[████]"},
		{-3, 10, 4, "[░░░░]"},
		{3, 0, 3, "[░░░]"},
	}

	for _, tt := range tests {
		if got := buildProgressBar(tt.current, tt.total, tt.length); got != tt.want {
			t.Errorf("buildProgressBar(%d, %d, %d) = %q, want %q", tt.current, tt.total, tt.length, got, tt.want)
		}
	}
}

func TestRenderStreakDays(t *testing.T) {
	days := []entities.DailyProgress{{MinutesStudied: 10}, {}, {MinutesStudied: 1}}
	if got := renderStreakDays(days); got != "🟩⬜🟩" {
		t.Errorf("renderStreakDays = %q", got)
	}
}

func TestRenderLessonResult(t *testing.T) {
	first := renderLessonResult("Greetings", service.LessonResult{
		Found:           true,
		FirstCompletion: true,
		XP:              100,
		BlockCompleted:  true,
		MilestoneBonus:  100,
	})
	for _, want := range []string{md("+100 XP"), md("Language block finished!"), md("milestone reached! +100 XP")} {
		if !strings.Contains(first, want) {
			t.Errorf("result misses %q:\n%s", want, first)
		}
	}
	if strings.Contains(first, md("practice run")) {
		t.Error("first completion rendered as practice run")
	}

	again := renderLessonResult("Greetings", service.LessonResult{Found: true, XP: 50})
	if !strings.Contains(again, md("(practice run)")) {
		t.Errorf("repeat completion not marked:\n%s", again)
	}
}

func TestRenderWords(t *testing.T) {
	if got := renderWords(nil, "it"); !strings.Contains(got, md("No saved it words yet")) {
		t.Errorf("empty list = %q", got)
	}

	words := []entities.UserVocabulary{
		{Word: "ciao", Translation: "hello", Language: "it"},
		{Word: "merci", Translation: "thanks", Language: "fr"},
	}
	got := renderWords(words, "")
	if !strings.Contains(got, md("1. ")+bold("ciao")) || !strings.Contains(got, md("2. ")+bold("merci")) {
		t.Errorf("words not numbered:\n%s", got)
	}
}

func TestRenderChallenge(t *testing.T) {
	if got := renderChallenge(nil, renderNow); !strings.Contains(got, md("No active challenge")) {
		t.Errorf("nil challenge = %q", got)
	}

	c := &entities.WeeklyChallenge{
		Title:     "Study Marathon",
		Type:      entities.ChallengeStudyMinutes,
		Target:    120,
		Progress:  30,
		StartDate: renderNow.AddDate(0, 0, -1),
		EndDate:   renderNow.AddDate(0, 0, 6),
		XPReward:  250,
	}
	got := renderChallenge(c, renderNow)
	if !strings.Contains(got, md("30/120")) || !strings.Contains(got, md("6 days left")) {
		t.Errorf("active challenge:\n%s", got)
	}

	c.IsCompleted = true
	if got := renderChallenge(c, renderNow); !strings.Contains(got, md("Completed! +250 XP")) {
		t.Errorf("completed challenge:\n%s", got)
	}

	c.EndDate = renderNow.Add(-time.Hour)
	if got := renderChallenge(c, renderNow); !strings.Contains(got, md("No active challenge")) {
		t.Errorf("expired challenge:\n%s", got)
	}
}

func TestRenderAchievements(t *testing.T) {
	p := entities.NewUserProgress()
	first := entities.AchievementTemplates()[0]
	p.Achievements = append(p.Achievements, first.Unlock(1, renderNow))

	board := entities.AchievementBoard(p, entities.AchievementStats{CameraScans: 4})
	got := renderAchievements(board)

	if !strings.Contains(got, md("✅ ")+bold(first.Title)) {
		t.Errorf("unlocked achievement not marked:\n%s", got)
	}
	if !strings.Contains(got, bold("Camera Explorer")+md(" · 4/10")) {
		t.Errorf("locked achievement progress missing:\n%s", got)
	}
}

func TestRenderReminder(t *testing.T) {
	payload := entities.ReminderPayload{MinutesToday: 5, DailyGoal: 15, CurrentStreak: 3}
	got := renderReminder(payload, renderNow)
	if !strings.Contains(got, md("Only 10m left")) || !strings.Contains(got, md("3 day streak")) {
		t.Errorf("reminder:\n%s", got)
	}

	payload.Challenge = &entities.WeeklyChallenge{Title: "Lesson Champion", Target: 5, Progress: 2, EndDate: renderNow.Add(time.Hour)}
	if got := renderReminder(payload, renderNow); !strings.Contains(got, md("Lesson Champion: 2/5")) {
		t.Errorf("reminder without challenge line:\n%s", got)
	}
}

func TestRenderEvent(t *testing.T) {
	tests := []struct {
		name string
		ev   events.Event
		push bool
	}{
		{"level up", events.LevelUp{From: 1, To: 2}, true},
		{"achievement", events.AchievementUnlocked{Achievement: entities.Achievement{Title: "First Steps", XPReward: 50}}, true},
		{"challenge done", events.ChallengeCompleted{Challenge: entities.WeeklyChallenge{Title: "Marathon", XPReward: 250}}, true},
		{"challenge started", events.ChallengeStarted{Challenge: entities.WeeklyChallenge{Title: "Marathon"}}, true},
		{"xp", events.XPAwarded{Amount: 10}, false},
		{"reset", events.ProgressReset{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, ok := renderEvent(tt.ev)
			if ok != tt.push {
				t.Fatalf("push = %v, want %v", ok, tt.push)
			}
			if ok && text == "" {
				t.Error("empty notice")
			}
		})
	}
}

func TestRenderPermissionNeeded(t *testing.T) {
	denied := renderPermissionNeeded(entities.CapabilityCamera, entities.AuthorizationDenied)
	if !strings.Contains(denied, md("denied")) {
		t.Errorf("denied = %q", denied)
	}
	pending := renderPermissionNeeded(entities.CapabilityMicrophone, entities.AuthorizationNotDetermined)
	if !strings.Contains(pending, md("/allow microphone")) {
		t.Errorf("not determined = %q", pending)
	}
}
