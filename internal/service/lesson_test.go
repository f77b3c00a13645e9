package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/lingofusion/lingofusion/internal/repository"
)

func TestLessonService_Blocks(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, nil, minutesChallenge)

	blocks := e.lessons.Blocks(ctx)
	if len(blocks) != 2 {
		t.Fatalf("blocks = %d, want 2 (no English, no unavailable)", len(blocks))
	}
	if blocks[0].Language.Code != "it" || blocks[1].Language.Code != "fr" {
		t.Errorf("block order = %s, %s", blocks[0].Language.Code, blocks[1].Language.Code)
	}
	if _, ok := e.lessons.Block(ctx, "en"); ok {
		t.Error("English must not have a block")
	}
	if got := e.lessons.TotalAvailable(ctx); got != 5 {
		t.Errorf("total available = %d, want 5", got)
	}
}

func TestLessonService_CompleteLessonBonuses(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, nil, minutesChallenge)

	res, err := e.lessons.CompleteLesson(ctx, "it", "it-01", 1)
	if err != nil {
		t.Fatalf("CompleteLesson: %v", err)
	}
	if !res.Found || !res.FirstCompletion || res.BlockCompleted || res.MilestoneBonus != 0 || res.XP != 50 {
		t.Errorf("first lesson = %+v", res)
	}

	res, err = e.lessons.CompleteLesson(ctx, "it", "it-02", 1)
	if err != nil {
		t.Fatalf("CompleteLesson: %v", err)
	}
	if !res.BlockCompleted {
		t.Errorf("it block should be complete: %+v", res)
	}
	if got := e.lessons.LanguageProgress(ctx, "it"); got != 1 {
		t.Errorf("it progress = %v, want 1", got)
	}
	// 2 lessons, first_steps and the block bonus.
	if got := e.progress.Snapshot(ctx).TotalXP; got != 50+50+50+BlockCompletionBonus {
		t.Errorf("total xp = %d", got)
	}

	before := e.progress.Snapshot(ctx).TotalXP
	res, err = e.lessons.CompleteLesson(ctx, "it", "it-02", 1)
	if err != nil {
		t.Fatalf("CompleteLesson: %v", err)
	}
	if res.FirstCompletion || res.BlockCompleted || res.MilestoneBonus != 0 {
		t.Errorf("repeat completion paid a bonus: %+v", res)
	}
	if got := e.progress.Snapshot(ctx).TotalXP; got != before+50 {
		t.Errorf("repeat completion xp = %d, want lesson xp only", got-before)
	}
	if got := e.lessons.TotalCompleted(ctx); got != 2 {
		t.Errorf("completed = %d, want 2", got)
	}
	if got := e.lessons.CompletionPercentage(ctx); got != 0.4 {
		t.Errorf("completion = %v, want 0.4", got)
	}
	if got := e.lessons.CompletedBlocks(); got != 1 {
		t.Errorf("completed blocks = %d, want 1", got)
	}
}

func TestLessonService_MilestoneAtFive(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, nil, minutesChallenge)

	ids := []struct{ code, id string }{
		{"it", "it-01"}, {"it", "it-02"}, {"fr", "fr-01"}, {"fr", "fr-02"}, {"fr", "fr-03"},
	}
	var last LessonResult
	for _, l := range ids {
		res, err := e.lessons.CompleteLesson(ctx, l.code, l.id, 1)
		if err != nil {
			t.Fatalf("CompleteLesson(%s): %v", l.id, err)
		}
		last = res
	}
	if last.MilestoneBonus != 100 {
		t.Errorf("milestone bonus = %d, want 100", last.MilestoneBonus)
	}
	if !last.BlockCompleted {
		t.Error("fr block should be complete")
	}
	if got := last.TotalXP(); got != 50+100+BlockCompletionBonus {
		t.Errorf("result total = %d", got)
	}
}

func TestLessonService_UnknownLessonIsNoop(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, nil, minutesChallenge)

	tests := []struct{ code, id string }{
		{"it", "zz-99"},
		{"xx", "it-01"},
		{"en", "it-01"},
		{"ja", "ja-01"},
	}
	for _, tt := range tests {
		res, err := e.lessons.CompleteLesson(ctx, tt.code, tt.id, 1)
		if err != nil {
			t.Fatalf("CompleteLesson(%s, %s): %v", tt.code, tt.id, err)
		}
		if res.Found {
			t.Errorf("CompleteLesson(%s, %s) found a lesson", tt.code, tt.id)
		}
	}
	if p := e.progress.Snapshot(ctx); p.TotalXP != 0 || p.LessonsCompleted != 0 {
		t.Errorf("unknown lessons changed progress: %+v", p)
	}
}

func TestLessonService_CompletionPersists(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, nil, minutesChallenge)

	if _, err := e.lessons.CompleteLesson(ctx, "fr", "fr-02", 0.8); err != nil {
		t.Fatalf("CompleteLesson: %v", err)
	}

	reopened := NewLessonService(testCatalog, repository.NewLessonCompletionRepository(e.store), e.progress, zap.NewNop())
	l, ok := reopened.Lesson(ctx, "fr", "fr-02")
	if !ok || !l.IsCompleted {
		t.Errorf("lesson = %+v, %v; want completed", l, ok)
	}
}

func TestLessonService_Translate(t *testing.T) {
	e := newEnv(t, nil, minutesChallenge)

	got := e.lessons.Translate(" Hello ")
	if got["it"] != "Ciao" || got["fr"] != "Bonjour" {
		t.Errorf("Translate(hello) = %v", got)
	}
	if got := e.lessons.Translate("spaceship"); len(got) != 0 {
		t.Errorf("Translate(spaceship) = %v, want empty", got)
	}
}
