package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/lingofusion/lingofusion/internal/domain/entities"
	"github.com/lingofusion/lingofusion/internal/storage"
)

var (
	ErrLanguageNotFound = errors.New("language not found")
	ErrLessonNotFound   = errors.New("lesson not found")
)

// Catalog is the static lesson content loaded from JSON.
type Catalog struct {
	Languages []entities.Language                `json:"languages"`
	Lessons   map[string][]entities.SimpleLesson `json:"lessons"`
}

// LoadCatalog reads the languages and lesson tables from path.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal lessons JSON: %w", err)
	}

	if len(c.Languages) == 0 {
		return nil, fmt.Errorf("lessons JSON has no languages")
	}

	seen := make(map[string]bool)
	for code, lessons := range c.Lessons {
		for _, l := range lessons {
			if l.ID == "" {
				return nil, fmt.Errorf("lesson without id in %q", code)
			}
			if seen[l.ID] {
				return nil, fmt.Errorf("duplicate lesson id %q", l.ID)
			}
			seen[l.ID] = true
		}
	}

	return &c, nil
}

// Language returns the language with the given code.
func (c *Catalog) Language(code string) (entities.Language, error) {
	for _, l := range c.Languages {
		if l.Code == code {
			return l, nil
		}
	}
	return entities.Language{}, ErrLanguageNotFound
}

// Lesson returns the static lesson content by language code and id.
func (c *Catalog) Lesson(code, id string) (entities.SimpleLesson, error) {
	for _, l := range c.Lessons[code] {
		if l.ID == id {
			return l, nil
		}
	}
	return entities.SimpleLesson{}, ErrLessonNotFound
}

// LessonCompletionRepository persists the lesson id to completed flag map.
type LessonCompletionRepository struct {
	kv storage.KV
}

func NewLessonCompletionRepository(kv storage.KV) *LessonCompletionRepository {
	return &LessonCompletionRepository{kv: kv}
}

// Get returns the stored flags. A missing or corrupt entry yields an empty map.
func (r *LessonCompletionRepository) Get(ctx context.Context) (map[string]bool, error) {
	flags := make(map[string]bool)

	data, err := r.kv.Get(ctx, KeyLessonCompletion)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return flags, nil
		}
		return nil, fmt.Errorf("get lesson completion: %w", err)
	}

	if err := json.Unmarshal(data, &flags); err != nil {
		return make(map[string]bool), fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	return flags, nil
}

func (r *LessonCompletionRepository) Save(ctx context.Context, flags map[string]bool) error {
	data, err := json.Marshal(flags)
	if err != nil {
		return fmt.Errorf("marshal lesson completion: %w", err)
	}
	if err := r.kv.Set(ctx, KeyLessonCompletion, data); err != nil {
		return fmt.Errorf("save lesson completion: %w", err)
	}
	return nil
}

func (r *LessonCompletionRepository) Clear(ctx context.Context) error {
	if err := r.kv.Delete(ctx, KeyLessonCompletion); err != nil {
		return fmt.Errorf("clear lesson completion: %w", err)
	}
	return nil
}
