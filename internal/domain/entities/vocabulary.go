package entities

import (
	"time"

	"github.com/google/uuid"
)

// UserVocabulary is a word the learner saved to the notebook.
type UserVocabulary struct {
	ID          string    `json:"id"`
	Word        string    `json:"word"`
	Translation string    `json:"translation"`
	Language    string    `json:"language"`
	DateAdded   time.Time `json:"dateAdded"`
}

func NewUserVocabulary(word, translation, language string, now time.Time) UserVocabulary {
	return UserVocabulary{
		ID:          uuid.NewString(),
		Word:        word,
		Translation: translation,
		Language:    language,
		DateAdded:   now,
	}
}
