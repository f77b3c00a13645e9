package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/lingofusion/lingofusion/internal/domain/entities"
	"github.com/lingofusion/lingofusion/internal/events"
	"github.com/lingofusion/lingofusion/internal/repository"
	"github.com/lingofusion/lingofusion/internal/storage"
)

// Invalidator drops a cached copy of persisted state.
type Invalidator interface {
	Invalidate()
}

type ResetService struct {
	tr       Transactor
	progress *ProgressService
	caches   []Invalidator
	bus      Publisher
	logger   *zap.Logger
}

func NewResetService(
	tr Transactor,
	progress *ProgressService,
	bus Publisher,
	logger *zap.Logger,
	caches ...Invalidator,
) *ResetService {
	return &ResetService{
		tr:       tr,
		progress: progress,
		caches:   caches,
		bus:      bus,
		logger:   logger,
	}
}

// ResetAll wipes progress, vocabulary and lesson completion in one
// transaction, then reloads every cache so a fresh challenge is drawn.
func (s *ResetService) ResetAll(ctx context.Context) error {
	err := s.progress.Replace(func() error {
		return s.tr.WithinTx(ctx, s.wipe)
	})
	if err != nil {
		s.logger.Error("failed to reset progress", zap.Error(err))
		return err
	}

	for _, c := range s.caches {
		c.Invalidate()
	}

	if s.bus != nil {
		s.bus.Publish(events.ProgressReset{})
	}
	s.logger.Info("all progress reset")

	_, err = s.progress.Load(ctx)
	return err
}

func (s *ResetService) wipe(ctx context.Context, kv storage.KV) error {
	progressRepo := repository.NewProgressRepository(kv)
	vocabularyRepo := repository.NewVocabularyRepository(kv)
	lessonRepo := repository.NewLessonCompletionRepository(kv)

	if err := progressRepo.Save(ctx, entities.NewUserProgress()); err != nil {
		return err
	}
	if err := vocabularyRepo.Clear(ctx); err != nil {
		return err
	}
	return lessonRepo.Clear(ctx)
}
