package telegram

import (
	"context"
	"errors"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/lingofusion/lingofusion/internal/domain/entities"
	"github.com/lingofusion/lingofusion/internal/events"
)

var errNoOwnerChat = errors.New(msgNoReminderChat)

// SendReminder sends the study reminder to the owner chat and removes the
// previous one.
func (h *Handler) SendReminder(ctx context.Context, payload entities.ReminderPayload) error {
	chatID := h.owner()
	if chatID == 0 {
		return errNoOwnerChat
	}

	now := h.services.Progress.Now()
	msg := newMessage(chatID, renderReminder(payload, now))
	msg.ReplyMarkup = buildReminderKeyboard()

	sent, err := h.bot.Send(msg)
	if err != nil {
		return err
	}

	prev, hadPrev := h.reminders.UpsertAndGetPrev(chatID, sent.MessageID, time.Now())
	if hadPrev && prev.MessageID != sent.MessageID {
		if _, err := h.bot.Request(tgbotapi.NewDeleteMessage(chatID, prev.MessageID)); err != nil {
			h.logger.Debug("failed to delete previous reminder",
				zap.Int("message_id", prev.MessageID),
				zap.Error(err),
			)
		}
	}

	return nil
}

// HandleEvent pushes level ups, achievements and challenge news to the
// owner chat. It is subscribed to the event bus.
func (h *Handler) HandleEvent(e events.Event) {
	text, ok := renderEvent(e)
	if !ok {
		return
	}

	chatID := h.owner()
	if chatID == 0 {
		return
	}

	if err := h.send(newMessage(chatID, text)); err != nil {
		h.logger.Warn("event notice not delivered",
			zap.String("event", e.Name()),
		)
	}
}
