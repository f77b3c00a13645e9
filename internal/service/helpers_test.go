package service

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/lingofusion/lingofusion/internal/domain/entities"
	"github.com/lingofusion/lingofusion/internal/events"
	"github.com/lingofusion/lingofusion/internal/repository"
	"github.com/lingofusion/lingofusion/internal/storage"
)

var testCal = entities.NewCalendar(time.UTC, time.Sunday)

// Wednesday.
var testNow = time.Date(2025, time.March, 12, 15, 30, 0, 0, time.UTC)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) handle(e events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Name()
	}
	return out
}

func (r *recorder) count(name string) int {
	n := 0
	for _, got := range r.names() {
		if got == name {
			n++
		}
	}
	return n
}

type env struct {
	store      *storage.MemoryStore
	clock      *fakeClock
	bus        *events.Bus
	rec        *recorder
	progress   *ProgressService
	challenges *WeeklyChallengeEngine
	badges     *AchievementEngine
	vocabulary *VocabularyService
	lessons    *LessonService
	settings   *SettingsService
}

var testCatalog = &repository.Catalog{
	Languages: []entities.Language{
		{Name: "English", Code: "en", Available: true},
		{Name: "Italian", Code: "it", Available: true},
		{Name: "French", Code: "fr", Available: true},
		{Name: "Japanese", Code: "ja", Available: false},
	},
	Lessons: map[string][]entities.SimpleLesson{
		"it": {
			{ID: "it-01", Title: "Greetings", Words: []entities.SimpleWord{{Word: "Ciao", Translation: "Hello/Bye"}}},
			{ID: "it-02", Title: "Food", Words: []entities.SimpleWord{{Word: "Mela", Translation: "Apple"}}},
		},
		"fr": {
			{ID: "fr-01", Title: "Greetings", Words: []entities.SimpleWord{{Word: "Bonjour", Translation: "Hello"}}},
			{ID: "fr-02", Title: "Food", Words: []entities.SimpleWord{{Word: "Pomme", Translation: "Apple"}}},
			{ID: "fr-03", Title: "Home", Words: []entities.SimpleWord{{Word: "Maison", Translation: "House"}}},
		},
	},
}

// newEnv wires the services over one in-memory store. The challenge engine
// always draws the given template.
func newEnv(t *testing.T, store *storage.MemoryStore, tmpl entities.ChallengeTemplate) *env {
	t.Helper()

	if store == nil {
		store = storage.NewMemoryStore()
	}
	logger := zap.NewNop()
	clock := &fakeClock{now: testNow}
	bus := events.NewBus()
	rec := &recorder{}
	bus.Subscribe(rec.handle)

	progress := NewProgressService(repository.NewProgressRepository(store), testCal, bus, logger, clock.Now)

	challenges := NewWeeklyChallengeEngine(testCal, rand.New(rand.NewPCG(1, 2)), logger)
	challenges.templates = []entities.ChallengeTemplate{tmpl}
	badges := NewAchievementEngine(logger)
	progress.AddRule(challenges)
	progress.AddRule(badges)

	lessons := NewLessonService(testCatalog, repository.NewLessonCompletionRepository(store), progress, logger)
	badges.SetModuleCounter(lessons)

	return &env{
		store:      store,
		clock:      clock,
		bus:        bus,
		rec:        rec,
		progress:   progress,
		challenges: challenges,
		badges:     badges,
		vocabulary: NewVocabularyService(repository.NewVocabularyRepository(store), bus, logger, clock.Now),
		lessons:    lessons,
		settings:   NewSettingsService(progress),
	}
}

// minutesChallenge is a template that is hard to finish by accident.
var minutesChallenge = entities.ChallengeTemplate{
	ID:       "time_investment",
	Title:    "Time Investment",
	Type:     entities.ChallengeStudyMinutes,
	Target:   120,
	XPReward: 250,
}

type staticPermissions map[entities.Capability]entities.AuthorizationStatus

func (s staticPermissions) Status(_ context.Context, c entities.Capability) entities.AuthorizationStatus {
	if st, ok := s[c]; ok {
		return st
	}
	return entities.AuthorizationNotDetermined
}
