package telegram

import (
	"context"
	"errors"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

var errUnknownCallback = errors.New("unknown callback")

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	defer h.answerCallback(cb.ID)

	cd := decodeCallback(cb.Data)
	chatID := cb.Message.Chat.ID

	var (
		text string
		kb   *tgbotapi.InlineKeyboardMarkup
		err  error
	)

	switch cd.Action {
	case actionProgress:
		text = h.progressText(ctx)
		k := buildProgressKeyboard()
		kb = &k
	case actionLessons:
		text, kb, err = h.handleLessonsCallback(ctx, cd)
	case actionLesson:
		text, kb, err = h.handleLessonCallback(ctx, cd)
	case actionChallenge:
		p := h.services.Progress.Snapshot(ctx)
		text = renderChallenge(p.WeeklyChallenge, h.services.Progress.Now())
		k := buildProgressKeyboard()
		kb = &k
	case actionOnboarding:
		text, kb, err = h.handleOnboardingCallback(ctx, cd)
	case actionReminder:
		text, err = h.handleReminderCallback(ctx, chatID, cd)
	case actionReset:
		text, err = h.handleResetCallback(ctx, cd)
	default:
		err = errUnknownCallback
	}

	if errors.Is(err, errUnknownCallback) || errors.Is(err, errUsage) {
		h.logger.Warn("invalid callback data", zap.String("data", cb.Data))
		return
	}
	if err != nil {
		h.logger.Error("callback failed",
			zap.String("data", cb.Data),
			zap.Error(err),
		)
		h.sendError(chatID, msgInternalError)
		return
	}

	edit := newEdit(chatID, cb.Message.MessageID, text)
	if kb != nil {
		edit.ReplyMarkup = kb
	}
	_ = h.send(edit)
}

// answerCallback removes the loading indicator on the button.
func (h *Handler) answerCallback(id string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, "")); err != nil {
		h.logger.Warn("callback answer failed", zap.Error(err))
	}
}

func (h *Handler) handleLessonsCallback(ctx context.Context, cd callbackData) (string, *tgbotapi.InlineKeyboardMarkup, error) {
	ls := h.services.Lessons

	if code := cd.param(0); code != "" {
		b, ok := ls.Block(ctx, code)
		if !ok {
			return "", nil, errUnknownCallback
		}
		kb := buildBlockKeyboard(b)
		return renderBlock(b), &kb, nil
	}

	blocks := ls.Blocks(ctx)
	kb := buildBlocksKeyboard(blocks)
	return renderBlocks(blocks, ls.TotalCompleted(ctx), ls.TotalAvailable(ctx)), &kb, nil
}

func (h *Handler) handleLessonCallback(ctx context.Context, cd callbackData) (string, *tgbotapi.InlineKeyboardMarkup, error) {
	code := cd.param(1)
	n, err := parsePositiveInt(cd.param(2))
	if err != nil {
		return "", nil, err
	}

	switch cd.param(0) {
	case lessonOpen:
		b, ok := h.lookupLesson(ctx, code, n)
		if !ok {
			return "", nil, errUnknownCallback
		}
		kb := buildLessonKeyboard(code, n)
		return renderLesson(b, n), &kb, nil

	case lessonComplete:
		text, err := h.completeLesson(ctx, code, n, 1)
		if err != nil {
			return "", nil, err
		}
		b, ok := h.services.Lessons.Block(ctx, code)
		if !ok {
			return text, nil, nil
		}
		kb := buildBlockKeyboard(b)
		return text, &kb, nil
	}

	return "", nil, errUnknownCallback
}

func (h *Handler) handleReminderCallback(ctx context.Context, chatID int64, cd callbackData) (string, error) {
	if cd.param(0) != reminderDisable {
		return "", errUnknownCallback
	}
	if err := h.services.Settings.SetStudyReminders(ctx, false); err != nil {
		return "", err
	}
	h.reminders.Delete(chatID)
	return md(msgRemindersDisabled), nil
}

func (h *Handler) handleResetCallback(ctx context.Context, cd callbackData) (string, error) {
	switch cd.param(0) {
	case resetConfirm:
		if err := h.services.Reset.ResetAll(ctx); err != nil {
			return "", err
		}
		h.logger.Info("progress reset by owner")
		return md(msgResetDone), nil
	case resetCancel:
		return md(msgResetCancelled), nil
	}
	return "", errUnknownCallback
}

func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, errUsage
	}
	return n, nil
}
