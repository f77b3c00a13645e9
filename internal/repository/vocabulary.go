package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lingofusion/lingofusion/internal/domain/entities"
	"github.com/lingofusion/lingofusion/internal/storage"
)

var ErrVocabularyNotFound = errors.New("vocabulary not found")

type VocabularyRepository struct {
	kv storage.KV
}

func NewVocabularyRepository(kv storage.KV) *VocabularyRepository {
	return &VocabularyRepository{kv: kv}
}

func (r *VocabularyRepository) List(ctx context.Context) ([]entities.UserVocabulary, error) {
	data, err := r.kv.Get(ctx, KeyUserVocabulary)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrVocabularyNotFound
		}
		return nil, fmt.Errorf("get vocabulary: %w", err)
	}

	var words []entities.UserVocabulary
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	return words, nil
}

// Save replaces the whole list.
func (r *VocabularyRepository) Save(ctx context.Context, words []entities.UserVocabulary) error {
	if words == nil {
		words = []entities.UserVocabulary{}
	}
	data, err := json.Marshal(words)
	if err != nil {
		return fmt.Errorf("marshal vocabulary: %w", err)
	}
	if err := r.kv.Set(ctx, KeyUserVocabulary, data); err != nil {
		return fmt.Errorf("save vocabulary: %w", err)
	}
	return nil
}

func (r *VocabularyRepository) Clear(ctx context.Context) error {
	if err := r.kv.Delete(ctx, KeyUserVocabulary); err != nil {
		return fmt.Errorf("clear vocabulary: %w", err)
	}
	return nil
}
