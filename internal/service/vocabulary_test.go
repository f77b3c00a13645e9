package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/lingofusion/lingofusion/internal/repository"
)

func TestVocabularyService_AddListCount(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, nil, minutesChallenge)

	if _, err := e.vocabulary.Add(ctx, "ciao", "hello", "it"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := e.vocabulary.Add(ctx, "merci", "thanks", "fr"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	n, err := e.vocabulary.AddBatch(ctx, []WordPair{
		{Word: "mela", Translation: "apple", Language: "it"},
		{Word: "casa", Translation: "house", Language: "it"},
	})
	if err != nil || n != 2 {
		t.Fatalf("AddBatch = %d, %v", n, err)
	}

	if got := e.vocabulary.Count(ctx, ""); got != 4 {
		t.Errorf("count = %d, want 4", got)
	}
	it := e.vocabulary.List(ctx, "it")
	if len(it) != 3 || it[0].Word != "ciao" || it[2].Word != "casa" {
		t.Errorf("italian list = %+v", it)
	}
	if got := e.vocabulary.Count(ctx, "de"); got != 0 {
		t.Errorf("german count = %d, want 0", got)
	}
	if e.rec.count("vocabulary_changed") != 3 {
		t.Errorf("vocabulary_changed events = %d, want 3", e.rec.count("vocabulary_changed"))
	}

	// The notebook does not feed the learned words statistic.
	if got := e.progress.Snapshot(ctx).Statistics.WordsLearned; got != 0 {
		t.Errorf("words learned = %d, want 0", got)
	}
}

func TestVocabularyService_UpdateKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, nil, minutesChallenge)

	w, err := e.vocabulary.Add(ctx, "ciao", "hi", "it")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	e.clock.Set(testNow.AddDate(0, 0, 1))

	ok, err := e.vocabulary.Update(ctx, w.ID, "Ciao", "hello")
	if err != nil || !ok {
		t.Fatalf("Update = %v, %v", ok, err)
	}
	got, found := e.vocabulary.Get(ctx, w.ID)
	if !found {
		t.Fatal("entry disappeared")
	}
	if got.Word != "Ciao" || got.Translation != "hello" {
		t.Errorf("entry = %+v", got)
	}
	if got.ID != w.ID || got.Language != "it" || !got.DateAdded.Equal(w.DateAdded) {
		t.Errorf("identity changed: %+v vs %+v", got, w)
	}
}

func TestVocabularyService_UnknownIDsAreNoops(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, nil, minutesChallenge)

	if _, err := e.vocabulary.Add(ctx, "ciao", "hello", "it"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	ok, err := e.vocabulary.Update(ctx, "missing", "x", "y")
	if err != nil || ok {
		t.Errorf("Update(missing) = %v, %v", ok, err)
	}
	ok, err = e.vocabulary.Remove(ctx, "missing")
	if err != nil || ok {
		t.Errorf("Remove(missing) = %v, %v", ok, err)
	}
	if got := e.vocabulary.Count(ctx, ""); got != 1 {
		t.Errorf("count = %d, want 1", got)
	}
}

func TestVocabularyService_RemovePersists(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, nil, minutesChallenge)

	a, _ := e.vocabulary.Add(ctx, "ciao", "hello", "it")
	b, _ := e.vocabulary.Add(ctx, "mela", "apple", "it")

	ok, err := e.vocabulary.Remove(ctx, a.ID)
	if err != nil || !ok {
		t.Fatalf("Remove = %v, %v", ok, err)
	}

	reopened := NewVocabularyService(repository.NewVocabularyRepository(e.store), nil, zap.NewNop(), e.clock.Now)
	list := reopened.List(ctx, "")
	if len(list) != 1 || list[0].ID != b.ID {
		t.Errorf("reloaded list = %+v", list)
	}
}
