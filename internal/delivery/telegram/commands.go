package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/lingofusion/lingofusion/internal/domain/entities"
	"github.com/lingofusion/lingofusion/internal/service"
)

var errUsage = errors.New("usage")

func (h *Handler) handleStart() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if !h.services.Settings.OnboardingCompleted(ctx) {
			msg := newMessage(chatID, onboardingGoalMessage())
			msg.ReplyMarkup = buildOnboardingGoalKeyboard()
			return h.send(msg)
		}
		return h.send(newMessage(chatID, welcomeMessage()))
	}
}

func (h *Handler) handleHelp() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newMessage(chatID, helpMessage()))
	}
}

func (h *Handler) handleProgress() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		msg := newMessage(chatID, h.progressText(ctx))
		msg.ReplyMarkup = buildProgressKeyboard()
		return h.send(msg)
	}
}

func (h *Handler) progressText(ctx context.Context) string {
	ps := h.services.Progress
	p := ps.Snapshot(ctx)
	goal := ps.TodayGoalProgress(ctx)

	return renderProgress(progressView{
		Progress:     p,
		Today:        ps.TodayProgress(ctx),
		GoalProgress: goal,
		Level:        ps.LevelInfo(ctx),
		Week:         ps.WeeklySummary(ctx),
		Days:         ps.StreakDays(ctx),
		Motivation:   service.MotivationalMessage(p.CurrentStreak, goal, h.rng),
		Lessons:      h.services.Lessons.TotalCompleted(ctx),
		LessonsTotal: h.services.Lessons.TotalAvailable(ctx),
	})
}

func (h *Handler) handleStudy(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		minutes, err := strconv.Atoi(strings.TrimSpace(args))
		if err != nil || minutes <= 0 || minutes > 24*60 {
			return h.send(newPlainMessage(chatID, msgUseStudy))
		}

		if err := h.services.Progress.RecordStudy(ctx, minutes, 0, 0, 0); err != nil {
			return err
		}

		today := h.services.Progress.TodayProgress(ctx)
		goal := h.services.Progress.Snapshot(ctx).DailyGoal
		text := fmt.Sprintf("✍️ Logged %s. Today: %s of %s.",
			service.FormatMinutes(minutes),
			service.FormatMinutes(today.MinutesStudied),
			service.FormatMinutes(goal),
		)
		return h.send(newPlainMessage(chatID, text))
	}
}

func (h *Handler) handleGoal(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		minutes, err := strconv.Atoi(strings.TrimSpace(args))
		if err != nil {
			return h.send(newPlainMessage(chatID, msgUseGoal))
		}

		goal, err := h.services.Settings.SetDailyGoal(ctx, minutes)
		if err != nil {
			return err
		}
		return h.send(newPlainMessage(chatID, fmt.Sprintf("🎯 Daily goal set to %s.", service.FormatMinutes(goal))))
	}
}

func (h *Handler) handleLessons(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if code := strings.ToLower(strings.TrimSpace(args)); code != "" {
			b, ok := h.services.Lessons.Block(ctx, code)
			if !ok {
				return h.send(newPlainMessage(chatID, msgUnknownLanguage))
			}
			msg := newMessage(chatID, renderBlock(b))
			msg.ReplyMarkup = buildBlockKeyboard(b)
			return h.send(msg)
		}

		ls := h.services.Lessons
		blocks := ls.Blocks(ctx)
		msg := newMessage(chatID, renderBlocks(blocks, ls.TotalCompleted(ctx), ls.TotalAvailable(ctx)))
		msg.ReplyMarkup = buildBlocksKeyboard(blocks)
		return h.send(msg)
	}
}

func (h *Handler) handleLesson(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		code, n, err := parseLessonRef(args)
		if err != nil {
			return h.send(newPlainMessage(chatID, msgUseLesson))
		}

		b, ok := h.lookupLesson(ctx, code, n)
		if !ok {
			return h.send(newPlainMessage(chatID, msgUnknownLesson))
		}

		msg := newMessage(chatID, renderLesson(b, n))
		msg.ReplyMarkup = buildLessonKeyboard(code, n)
		return h.send(msg)
	}
}

func (h *Handler) lookupLesson(ctx context.Context, code string, n int) (entities.LanguageBlock, bool) {
	b, ok := h.services.Lessons.Block(ctx, code)
	if !ok || n < 1 || n > len(b.Lessons) {
		return entities.LanguageBlock{}, false
	}
	return b, true
}

func (h *Handler) handleComplete(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		code, n, score, err := parseCompleteArgs(args)
		if err != nil {
			return h.send(newPlainMessage(chatID, msgUseComplete))
		}

		text, err := h.completeLesson(ctx, code, n, score)
		if err != nil {
			return err
		}
		return h.send(newMessage(chatID, text))
	}
}

func (h *Handler) completeLesson(ctx context.Context, code string, n int, score float64) (string, error) {
	b, ok := h.lookupLesson(ctx, code, n)
	if !ok {
		return md(msgUnknownLesson), nil
	}
	l := b.Lessons[n-1]

	res, err := h.services.Lessons.CompleteLesson(ctx, code, l.ID, score)
	if err != nil {
		return "", err
	}

	h.logger.Info("lesson completed",
		zap.String("language", code),
		zap.String("lesson", l.ID),
		zap.Int("xp", res.TotalXP()),
	)
	return renderLessonResult(l.Title, res), nil
}

func (h *Handler) handleWords(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		code := strings.ToLower(strings.TrimSpace(args))
		words := h.services.Vocabulary.List(ctx, code)
		return h.send(newMessage(chatID, renderWords(words, code)))
	}
}

func (h *Handler) handleAddWord(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		code, rest, ok := strings.Cut(strings.TrimSpace(args), " ")
		word, translation, pairOK := parseWordPair(rest)
		if !ok || !pairOK || code == "" {
			return h.send(newPlainMessage(chatID, msgUseAddWord))
		}

		if _, err := h.services.Vocabulary.Add(ctx, word, translation, strings.ToLower(code)); err != nil {
			return err
		}
		return h.send(newPlainMessage(chatID, fmt.Sprintf("📝 Saved %s – %s.", word, translation)))
	}
}

func (h *Handler) handleEditWord(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		n, rest, err := parseIndexArg(args)
		word, translation, pairOK := parseWordPair(rest)
		if err != nil || !pairOK {
			return h.send(newPlainMessage(chatID, msgUseEditWord))
		}

		w, ok := h.wordAt(ctx, n)
		if !ok {
			return h.send(newPlainMessage(chatID, msgUnknownWord))
		}
		if _, err := h.services.Vocabulary.Update(ctx, w.ID, word, translation); err != nil {
			return err
		}
		return h.send(newPlainMessage(chatID, fmt.Sprintf("✏️ Word %d is now %s – %s.", n, word, translation)))
	}
}

func (h *Handler) handleDeleteWord(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		n, _, err := parseIndexArg(args)
		if err != nil {
			return h.send(newPlainMessage(chatID, msgUseDeleteWord))
		}

		w, ok := h.wordAt(ctx, n)
		if !ok {
			return h.send(newPlainMessage(chatID, msgUnknownWord))
		}
		if _, err := h.services.Vocabulary.Remove(ctx, w.ID); err != nil {
			return err
		}
		return h.send(newPlainMessage(chatID, fmt.Sprintf("🗑 Deleted %s.", w.Word)))
	}
}

// wordAt resolves the 1-based position shown by /words.
func (h *Handler) wordAt(ctx context.Context, n int) (entities.UserVocabulary, bool) {
	words := h.services.Vocabulary.List(ctx, "")
	if n < 1 || n > len(words) {
		return entities.UserVocabulary{}, false
	}
	return words[n-1], true
}

func (h *Handler) handleChallenge() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		p := h.services.Progress.Snapshot(ctx)
		return h.send(newMessage(chatID, renderChallenge(p.WeeklyChallenge, h.services.Progress.Now())))
	}
}

func (h *Handler) handleAchievements() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		p := h.services.Progress.Snapshot(ctx)
		board := entities.AchievementBoard(p, h.services.Achievements.Stats(p))
		return h.send(newMessage(chatID, renderAchievements(board)))
	}
}

func (h *Handler) handleScan(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		object := strings.TrimSpace(args)
		if object == "" {
			return h.send(newPlainMessage(chatID, msgUseScan))
		}

		res, err := h.services.Practice.ProcessRecognizedObject(ctx, object)
		if err != nil {
			return err
		}
		if res.Status != entities.AuthorizationAuthorized {
			return h.send(newMessage(chatID, renderPermissionNeeded(entities.CapabilityCamera, res.Status)))
		}
		return h.send(newMessage(chatID, renderScan(res)))
	}
}

func (h *Handler) handleSpeak(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		accuracy, text, err := parseSpeakArgs(args, h.services.Scorer)
		if err != nil {
			return h.send(newPlainMessage(chatID, msgUseSpeak))
		}

		res, err := h.services.Practice.ProcessSpeechResult(ctx, text, accuracy)
		if err != nil {
			return err
		}
		if res.Status != entities.AuthorizationAuthorized {
			return h.send(newMessage(chatID, renderPermissionNeeded(entities.CapabilityMicrophone, res.Status)))
		}
		return h.send(newMessage(chatID, renderSpeech(res)))
	}
}

func (h *Handler) handleAllow(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		c, ok := entities.ParseCapability(strings.ToLower(strings.TrimSpace(args)))
		if !ok {
			return h.send(newPlainMessage(chatID, msgUseAllow))
		}
		if err := h.services.Settings.SetPermission(ctx, c, true); err != nil {
			return err
		}
		return h.send(newPlainMessage(chatID, fmt.Sprintf("✅ %s access granted.", c)))
	}
}

func (h *Handler) handleRemind(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		arg := strings.ToLower(strings.TrimSpace(args))
		switch arg {
		case "on", "off":
			if err := h.services.Settings.SetStudyReminders(ctx, arg == "on"); err != nil {
				return err
			}
			if arg == "off" {
				return h.send(newPlainMessage(chatID, msgRemindersDisabled))
			}
		default:
			hour, err := strconv.Atoi(arg)
			if err != nil || hour < 0 || hour > 23 {
				return h.send(newPlainMessage(chatID, msgUseRemind))
			}
			if err := h.services.Settings.SetReminderHour(ctx, hour); err != nil {
				return err
			}
		}

		prefs := h.services.Settings.Preferences(ctx)
		hour := prefs.ReminderHour(h.services.Progress.Now().Location())
		return h.send(newPlainMessage(chatID, fmt.Sprintf("🔔 Reminders on, daily at %02d:00 if the goal is not met yet.", hour)))
	}
}

func (h *Handler) handleReset() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		msg := newMessage(chatID, bold("Reset everything?")+"\n\n"+md("XP, streaks, achievements, lessons and saved words will be deleted."))
		msg.ReplyMarkup = buildResetKeyboard()
		return h.send(msg)
	}
}

// parseLessonRef parses "CODE N".
func parseLessonRef(args string) (string, int, error) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return "", 0, errUsage
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil || n < 1 {
		return "", 0, errUsage
	}
	return strings.ToLower(fields[0]), n, nil
}

// parseCompleteArgs parses "CODE N [score]". The score defaults to 1.
func parseCompleteArgs(args string) (code string, n int, score float64, err error) {
	fields := strings.Fields(args)
	if len(fields) < 2 || len(fields) > 3 {
		return "", 0, 0, errUsage
	}
	code, n, err = parseLessonRef(strings.Join(fields[:2], " "))
	if err != nil {
		return "", 0, 0, err
	}

	score = 1
	if len(fields) == 3 {
		score, err = strconv.ParseFloat(fields[2], 64)
		if err != nil || score < 0 || score > 1 {
			return "", 0, 0, errUsage
		}
	}
	return code, n, score, nil
}

// parseWordPair splits "word = translation".
func parseWordPair(s string) (word, translation string, ok bool) {
	word, translation, found := strings.Cut(s, "=")
	word = strings.TrimSpace(word)
	translation = strings.TrimSpace(translation)
	if !found || word == "" || translation == "" {
		return "", "", false
	}
	return word, translation, true
}

// parseIndexArg reads a leading 1-based number and returns the rest.
func parseIndexArg(args string) (int, string, error) {
	head, rest, _ := strings.Cut(strings.TrimSpace(args), " ")
	n, err := strconv.Atoi(head)
	if err != nil || n < 1 {
		return 0, "", errUsage
	}
	return n, strings.TrimSpace(rest), nil
}

// parseSpeakArgs accepts "ACCURACY TEXT", where accuracy is a fraction or a
// percentage, or "heard = expected", which is scored.
func parseSpeakArgs(args string, scorer PronunciationScorer) (float64, string, error) {
	args = strings.TrimSpace(args)
	if args == "" {
		return 0, "", errUsage
	}

	head, rest, _ := strings.Cut(args, " ")
	head = strings.TrimSuffix(head, "%")
	if acc, err := strconv.ParseFloat(head, 64); err == nil {
		if acc > 1 {
			acc /= 100
		}
		if acc < 0 || acc > 1 || strings.TrimSpace(rest) == "" {
			return 0, "", errUsage
		}
		return acc, strings.TrimSpace(rest), nil
	}

	heard, expected, ok := parseWordPair(args)
	if !ok || scorer == nil {
		return 0, "", errUsage
	}
	return scorer.Score(heard, expected), expected, nil
}
