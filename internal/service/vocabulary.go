package service

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lingofusion/lingofusion/internal/domain/entities"
	"github.com/lingofusion/lingofusion/internal/events"
	"github.com/lingofusion/lingofusion/internal/repository"
)

// WordPair is a word and its translation before it gets an id.
type WordPair struct {
	Word        string
	Translation string
	Language    string
}

// VocabularyService is the personal notebook. The whole list is saved after
// every change.
type VocabularyService struct {
	mu     sync.Mutex
	words  []entities.UserVocabulary
	loaded bool

	repo   VocabularyRepository
	now    Clock
	bus    Publisher
	logger *zap.Logger
}

func NewVocabularyService(repo VocabularyRepository, bus Publisher, logger *zap.Logger, now Clock) *VocabularyService {
	if now == nil {
		now = time.Now
	}
	return &VocabularyService{
		repo:   repo,
		now:    now,
		bus:    bus,
		logger: logger,
	}
}

func (s *VocabularyService) loadLocked(ctx context.Context) {
	if s.loaded {
		return
	}

	words, err := s.repo.List(ctx)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrVocabularyNotFound):
		words = nil
	default:
		s.logger.Warn("failed to load vocabulary, starting empty", zap.Error(err))
		words = nil
	}

	s.words = words
	s.loaded = true
}

// mutate runs fn under the lock and saves when fn reports a change.
func (s *VocabularyService) mutate(ctx context.Context, fn func() bool) (bool, error) {
	s.mu.Lock()
	s.loadLocked(ctx)
	if !fn() {
		s.mu.Unlock()
		return false, nil
	}
	err := s.repo.Save(ctx, s.words)
	count := len(s.words)
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("failed to save vocabulary", zap.Error(err))
	}
	if s.bus != nil {
		s.bus.Publish(events.VocabularyChanged{Count: count})
	}
	return true, err
}

// Add appends a new entry stamped with the current time.
func (s *VocabularyService) Add(ctx context.Context, word, translation, language string) (entities.UserVocabulary, error) {
	entry := entities.NewUserVocabulary(word, translation, language, s.now())
	_, err := s.mutate(ctx, func() bool {
		s.words = append(s.words, entry)
		return true
	})
	return entry, err
}

// AddBatch appends all pairs with a single save.
func (s *VocabularyService) AddBatch(ctx context.Context, pairs []WordPair) (int, error) {
	if len(pairs) == 0 {
		return 0, nil
	}
	now := s.now()
	_, err := s.mutate(ctx, func() bool {
		for _, wp := range pairs {
			s.words = append(s.words, entities.NewUserVocabulary(wp.Word, wp.Translation, wp.Language, now))
		}
		return true
	})
	return len(pairs), err
}

// Remove deletes by id. Unknown ids are ignored and report false.
func (s *VocabularyService) Remove(ctx context.Context, id string) (bool, error) {
	return s.mutate(ctx, func() bool {
		i := s.indexLocked(id)
		if i < 0 {
			return false
		}
		s.words = slices.Delete(s.words, i, i+1)
		return true
	})
}

// Update changes word and translation in place. Id, language and date stay.
func (s *VocabularyService) Update(ctx context.Context, id, word, translation string) (bool, error) {
	return s.mutate(ctx, func() bool {
		i := s.indexLocked(id)
		if i < 0 {
			return false
		}
		s.words[i].Word = word
		s.words[i].Translation = translation
		return true
	})
}

func (s *VocabularyService) indexLocked(id string) int {
	return slices.IndexFunc(s.words, func(w entities.UserVocabulary) bool { return w.ID == id })
}

// List returns the entries in insertion order, optionally only one language.
func (s *VocabularyService) List(ctx context.Context, language string) []entities.UserVocabulary {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)

	out := make([]entities.UserVocabulary, 0, len(s.words))
	for _, w := range s.words {
		if language == "" || w.Language == language {
			out = append(out, w)
		}
	}
	return out
}

// Count is len(List(language)).
func (s *VocabularyService) Count(ctx context.Context, language string) int {
	return len(s.List(ctx, language))
}

// Get finds one entry by id.
func (s *VocabularyService) Get(ctx context.Context, id string) (entities.UserVocabulary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)

	if i := s.indexLocked(id); i >= 0 {
		return s.words[i], true
	}
	return entities.UserVocabulary{}, false
}

// Invalidate forgets the cached list.
func (s *VocabularyService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.words = nil
	s.loaded = false
}
