package telegram

import (
	"sync"
	"time"
)

type reminderMessage struct {
	MessageID int
	SentAt    time.Time
}

// reminderMessages remembers the last reminder per chat so a new reminder
// can replace it instead of piling up.
type reminderMessages struct {
	mu       sync.Mutex
	messages map[int64]reminderMessage
}

func newReminderMessages() *reminderMessages {
	return &reminderMessages{
		messages: make(map[int64]reminderMessage),
	}
}

func (s *reminderMessages) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.messages, chatID)
}

func (s *reminderMessages) UpsertAndGetPrev(chatID int64, messageID int, now time.Time) (prev reminderMessage, hadPrev bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, hadPrev = s.messages[chatID]
	s.messages[chatID] = reminderMessage{
		MessageID: messageID,
		SentAt:    now,
	}

	return prev, hadPrev
}
