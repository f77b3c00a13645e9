package service

import (
	"context"
	"time"

	"github.com/lingofusion/lingofusion/internal/domain/entities"
	"github.com/lingofusion/lingofusion/internal/events"
	"github.com/lingofusion/lingofusion/internal/storage"
)

type ProgressRepository interface {
	Get(ctx context.Context) (*entities.UserProgress, error)
	Save(ctx context.Context, p *entities.UserProgress) error
}

type VocabularyRepository interface {
	List(ctx context.Context) ([]entities.UserVocabulary, error)
	Save(ctx context.Context, words []entities.UserVocabulary) error
}

type LessonCompletionRepository interface {
	Get(ctx context.Context) (map[string]bool, error)
	Save(ctx context.Context, flags map[string]bool) error
}

// Transactor groups storage writes into one transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, kv storage.KV) error) error
}

// Publisher is the outgoing side of the event bus.
type Publisher interface {
	Publish(evs ...events.Event)
}

// ReminderNotifier sends study reminders to the learner.
type ReminderNotifier interface {
	SendReminder(ctx context.Context, payload entities.ReminderPayload) error
}

// ModuleCounter reports how many language blocks are fully completed.
type ModuleCounter interface {
	CompletedBlocks() int
}

// PermissionProvider answers device permission checks.
type PermissionProvider interface {
	Status(ctx context.Context, c entities.Capability) entities.AuthorizationStatus
}

// Rule derives state after every progress mutation. Rules run under the
// progress lock and may only touch the record they are given.
type Rule interface {
	Apply(p *entities.UserProgress, now time.Time) []events.Event
}

// Clock returns the current time; tests replace it.
type Clock func() time.Time
