package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lingofusion/lingofusion/internal/domain/entities"
	"github.com/lingofusion/lingofusion/internal/storage"
)

func TestProgressRepository(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	repo := NewProgressRepository(kv)

	if _, err := repo.Get(ctx); !errors.Is(err, ErrProgressNotFound) {
		t.Fatalf("empty store: err = %v, want ErrProgressNotFound", err)
	}

	p := entities.NewUserProgress()
	p.AddXP(1500)
	p.LessonsCompleted = 4
	if err := repo.Save(ctx, p); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.TotalXP != 1500 || got.CurrentLevel != 2 || got.LessonsCompleted != 4 {
		t.Errorf("unexpected record: %+v", got)
	}

	_ = kv.Set(ctx, KeyUserProgress, []byte("{not json"))
	if _, err := repo.Get(ctx); !errors.Is(err, ErrCorruptRecord) {
		t.Fatalf("corrupt record: err = %v, want ErrCorruptRecord", err)
	}
}

func TestVocabularyRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewVocabularyRepository(storage.NewMemoryStore())

	if _, err := repo.List(ctx); !errors.Is(err, ErrVocabularyNotFound) {
		t.Fatalf("err = %v, want ErrVocabularyNotFound", err)
	}

	now := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)
	words := []entities.UserVocabulary{
		entities.NewUserVocabulary("ciao", "hello", "it", now),
		entities.NewUserVocabulary("merci", "thanks", "fr", now),
	}
	if err := repo.Save(ctx, words); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != words[0].ID || got[1].Word != "merci" {
		t.Fatalf("unexpected list: %+v", got)
	}

	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := repo.List(ctx); !errors.Is(err, ErrVocabularyNotFound) {
		t.Fatalf("after clear: err = %v", err)
	}
}

func TestLessonCompletionRepository(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	repo := NewLessonCompletionRepository(kv)

	flags, err := repo.Get(ctx)
	if err != nil || len(flags) != 0 {
		t.Fatalf("empty: %v, %v", flags, err)
	}

	if err := repo.Save(ctx, map[string]bool{"it-01": true}); err != nil {
		t.Fatalf("save: %v", err)
	}
	flags, err = repo.Get(ctx)
	if err != nil || !flags["it-01"] {
		t.Fatalf("get = %v, %v", flags, err)
	}

	_ = kv.Set(ctx, KeyLessonCompletion, []byte("[]"))
	flags, err = repo.Get(ctx)
	if !errors.Is(err, ErrCorruptRecord) || flags == nil {
		t.Fatalf("corrupt: %v, %v", flags, err)
	}
}

func TestLoadCatalog(t *testing.T) {
	c, err := LoadCatalog(filepath.Join("..", "..", "assets", "data", "lessons.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if _, err := c.Language("it"); err != nil {
		t.Errorf("italian missing: %v", err)
	}
	if _, err := c.Language("xx"); !errors.Is(err, ErrLanguageNotFound) {
		t.Errorf("err = %v, want ErrLanguageNotFound", err)
	}
	if got := len(c.Lessons["it"]); got != 10 {
		t.Errorf("italian lessons = %d, want 10", got)
	}

	l, err := c.Lesson("fr", "fr-01")
	if err != nil || len(l.Words) == 0 {
		t.Errorf("fr-01 = %+v, %v", l, err)
	}
	if _, err := c.Lesson("fr", "it-01"); !errors.Is(err, ErrLessonNotFound) {
		t.Errorf("err = %v, want ErrLessonNotFound", err)
	}
}

func TestLoadCatalog_DuplicateIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lessons.json")
	data := `{
		"languages": [{"name": "Italian", "code": "it", "available": true}],
		"lessons": {"it": [{"id": "x", "title": "A"}, {"id": "x", "title": "B"}]}
	}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadCatalog(path); err == nil {
		t.Fatal("expected duplicate id error")
	}
}
