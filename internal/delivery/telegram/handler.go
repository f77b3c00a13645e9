package telegram

import (
	"context"
	"math/rand/v2"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Handler runs the owner-only bot: one learner, one chat.
type Handler struct {
	bot      *tgbotapi.BotAPI
	logger   *zap.Logger
	services Services

	mu          sync.RWMutex
	ownerChatID int64

	reminders *reminderMessages
	rng       *rand.Rand
}

// NewHandler creates the handler. With ownerChatID zero the first chat that
// writes to the bot becomes the owner.
func NewHandler(bot *tgbotapi.BotAPI, logger *zap.Logger, services Services, ownerChatID int64) *Handler {
	return &Handler{
		bot:         bot,
		logger:      logger,
		services:    services,
		ownerChatID: ownerChatID,
		reminders:   newReminderMessages(),
		rng:         rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// Commands is the command menu registered with Telegram.
func Commands() tgbotapi.SetMyCommandsConfig {
	return tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "progress", Description: "XP, level, streak and today's goal"},
		tgbotapi.BotCommand{Command: "study", Description: "Log study minutes: /study 15"},
		tgbotapi.BotCommand{Command: "lessons", Description: "Language blocks"},
		tgbotapi.BotCommand{Command: "lesson", Description: "Open a lesson: /lesson it 1"},
		tgbotapi.BotCommand{Command: "complete", Description: "Finish a lesson: /complete it 1 0.9"},
		tgbotapi.BotCommand{Command: "words", Description: "Your vocabulary"},
		tgbotapi.BotCommand{Command: "addword", Description: "/addword it ciao = hello"},
		tgbotapi.BotCommand{Command: "challenge", Description: "This week's challenge"},
		tgbotapi.BotCommand{Command: "achievements", Description: "Achievements"},
		tgbotapi.BotCommand{Command: "scan", Description: "Camera practice: /scan apple"},
		tgbotapi.BotCommand{Command: "speak", Description: "Pronunciation: /speak 0.9 ciao"},
		tgbotapi.BotCommand{Command: "goal", Description: "Daily goal in minutes"},
		tgbotapi.BotCommand{Command: "remind", Description: "Reminders: on, off or an hour"},
		tgbotapi.BotCommand{Command: "help", Description: "All commands"},
	)
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			h.bot.StopReceivingUpdates()
			return ctx.Err()
		case update := <-updates:
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		if update.CallbackQuery.Message == nil || !h.authorize(update.CallbackQuery.Message.Chat.ID) {
			return
		}
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	chatID := update.Message.Chat.ID
	h.logger.Debug("update received",
		zap.Int64("chat_id", chatID),
		zap.String("text", update.Message.Text),
	)

	if !h.authorize(chatID) {
		_ = h.send(newPlainMessage(chatID, msgNotOwner))
		return
	}

	if !update.Message.IsCommand() {
		_ = h.send(newPlainMessage(chatID, msgUnknownCommand))
		return
	}

	args := update.Message.CommandArguments()

	var fn HandlerFunc
	switch update.Message.Command() {
	case "start":
		fn = h.handleStart()
	case "help":
		fn = h.handleHelp()
	case "progress":
		fn = h.handleProgress()
	case "study":
		fn = h.handleStudy(args)
	case "goal":
		fn = h.handleGoal(args)
	case "lessons":
		fn = h.handleLessons(args)
	case "lesson":
		fn = h.handleLesson(args)
	case "complete":
		fn = h.handleComplete(args)
	case "words":
		fn = h.handleWords(args)
	case "addword":
		fn = h.handleAddWord(args)
	case "editword":
		fn = h.handleEditWord(args)
	case "delword":
		fn = h.handleDeleteWord(args)
	case "challenge":
		fn = h.handleChallenge()
	case "achievements":
		fn = h.handleAchievements()
	case "scan":
		fn = h.handleScan(args)
	case "speak":
		fn = h.handleSpeak(args)
	case "allow":
		fn = h.handleAllow(args)
	case "remind":
		fn = h.handleRemind(args)
	case "reset":
		fn = h.handleReset()
	default:
		_ = h.send(newPlainMessage(chatID, msgUnknownCommand))
		return
	}

	_ = h.withErrorHandling(fn)(ctx, chatID)
}

// authorize reports whether chatID belongs to the owner, claiming ownership
// for the first chat when none is configured.
func (h *Handler) authorize(chatID int64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.ownerChatID == 0 {
		h.ownerChatID = chatID
		h.logger.Info("bot owner claimed", zap.Int64("chat_id", chatID))
		return true
	}
	return h.ownerChatID == chatID
}

func (h *Handler) owner() int64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.ownerChatID
}

func (h *Handler) sendError(chatID int64, text string) {
	_ = h.send(newPlainMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}
