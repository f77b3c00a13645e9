// Package events carries change notifications from the services to whoever
// renders or measures them.
package events

import (
	"sync"

	"github.com/lingofusion/lingofusion/internal/domain/entities"
)

// Event is any change notification.
type Event interface {
	Name() string
}

type XPAwarded struct {
	Amount  int
	TotalXP int
	Source  string
}

type LevelUp struct {
	From int
	To   int
}

type StudyRecorded struct {
	Activity entities.Activity
	Day      entities.DailyProgress
}

type LessonCompleted struct {
	Language string
	LessonID string
	Score    float64
	XP       int
}

type AchievementUnlocked struct {
	Achievement entities.Achievement
}

type ChallengeStarted struct {
	Challenge entities.WeeklyChallenge
}

type ChallengeCompleted struct {
	Challenge entities.WeeklyChallenge
}

type VocabularyChanged struct {
	Count int
}

type ProgressReset struct{}

func (XPAwarded) Name() string           { return "xp_awarded" }
func (LevelUp) Name() string             { return "level_up" }
func (StudyRecorded) Name() string       { return "study_recorded" }
func (LessonCompleted) Name() string     { return "lesson_completed" }
func (AchievementUnlocked) Name() string { return "achievement_unlocked" }
func (ChallengeStarted) Name() string    { return "challenge_started" }
func (ChallengeCompleted) Name() string  { return "challenge_completed" }
func (VocabularyChanged) Name() string   { return "vocabulary_changed" }
func (ProgressReset) Name() string       { return "progress_reset" }

// Handler receives published events.
type Handler func(Event)

// Bus delivers events synchronously, in subscription order.
type Bus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[int]Handler
	order    []int
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[int]Handler)}
}

// Subscribe registers h and returns a function that removes it again.
func (b *Bus) Subscribe(h Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[id] = h
	b.order = append(b.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.handlers, id)
			for i, v := range b.order {
				if v == id {
					b.order = append(b.order[:i], b.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Publish hands every event to every current subscriber.
// Handlers must not publish on the same bus.
func (b *Bus) Publish(evs ...Event) {
	if b == nil || len(evs) == 0 {
		return
	}

	b.mu.RLock()
	hs := make([]Handler, 0, len(b.order))
	for _, id := range b.order {
		hs = append(hs, b.handlers[id])
	}
	b.mu.RUnlock()

	for _, e := range evs {
		for _, h := range hs {
			h(e)
		}
	}
}
