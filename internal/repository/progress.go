package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lingofusion/lingofusion/internal/domain/entities"
	"github.com/lingofusion/lingofusion/internal/storage"
)

// Persisted keys.
const (
	KeyUserProgress     = "userProgress"
	KeyUserVocabulary   = "userVocabulary"
	KeyLessonCompletion = "lessonCompletion"
)

var (
	ErrProgressNotFound = errors.New("progress not found")
	ErrCorruptRecord    = errors.New("corrupt record")
)

type ProgressRepository struct {
	kv storage.KV
}

func NewProgressRepository(kv storage.KV) *ProgressRepository {
	return &ProgressRepository{kv: kv}
}

// Get loads the persisted record. It returns ErrProgressNotFound when nothing
// was saved yet and ErrCorruptRecord when the stored bytes do not decode.
func (r *ProgressRepository) Get(ctx context.Context) (*entities.UserProgress, error) {
	data, err := r.kv.Get(ctx, KeyUserProgress)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrProgressNotFound
		}
		return nil, fmt.Errorf("get progress: %w", err)
	}

	var p entities.UserProgress
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	p.Normalize()

	return &p, nil
}

func (r *ProgressRepository) Save(ctx context.Context, p *entities.UserProgress) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}
	if err := r.kv.Set(ctx, KeyUserProgress, data); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}
