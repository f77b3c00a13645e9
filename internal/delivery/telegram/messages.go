// messages.go contains message templates and formatting helpers for Telegram.

package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Error and usage messages.
const (
	msgInternalError     = "Something went wrong. Please try again later."
	msgNotOwner          = "This is a personal LingoFusion bot."
	msgUnknownCommand    = "Unknown command. Send /help to see what I can do."
	msgUseStudy          = "Usage: /study 15 (minutes studied)."
	msgUseGoal           = "Usage: /goal 20 (minutes per day, 5 to 180)."
	msgUseLesson         = "Usage: /lesson it 1"
	msgUseComplete       = "Usage: /complete it 1 [score between 0 and 1]"
	msgUseAddWord        = "Usage: /addword it ciao = hello"
	msgUseEditWord       = "Usage: /editword 2 ciao = hello (number from /words)"
	msgUseDeleteWord     = "Usage: /delword 2 (number from /words)"
	msgUseScan           = "Usage: /scan apple"
	msgUseSpeak          = "Usage: /speak 0.85 ciao, or /speak what you said = what was expected"
	msgUseAllow          = "Usage: /allow camera or /allow microphone"
	msgUseRemind         = "Usage: /remind on, /remind off or /remind 19"
	msgUnknownLanguage   = "No lessons for that language. Send /lessons to see the list."
	msgUnknownLesson     = "No such lesson. Send /lessons to see the list."
	msgUnknownWord       = "No word with that number. Send /words to see the list."
	msgNoReminderChat    = "no owner chat known yet"
	msgResetDone         = "All progress, words and lessons were reset. Fresh start! 🌱"
	msgResetCancelled    = "Reset cancelled. Your progress is safe."
	msgRemindersDisabled = "Study reminders are off. Turn them back on with /remind on."
)

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

func welcomeMessage() string {
	var sb strings.Builder

	sb.WriteString(bold("Welcome back to LingoFusion! 👋"))
	sb.WriteString("\n\n")
	sb.WriteString(md("Pick up where you left off:"))
	sb.WriteString("\n")
	sb.WriteString(md("📊 /progress to see XP, level and streak\n"))
	sb.WriteString(md("📚 /lessons to continue a language block\n"))
	sb.WriteString(md("🏆 /challenge for this week's challenge\n"))
	sb.WriteString("\n")
	sb.WriteString(md("Send /help for every command."))

	return sb.String()
}

func helpMessage() string {
	var sb strings.Builder

	sb.WriteString(bold("LingoFusion commands"))
	sb.WriteString("\n\n")

	lines := []string{
		"/progress – XP, level, streak and today's goal",
		"/study N – log N minutes of study",
		"/goal N – set the daily goal in minutes",
		"/lessons [CODE] – language blocks, or one block",
		"/lesson CODE N – open lesson N of a language",
		"/complete CODE N [score] – finish a lesson",
		"/words [CODE] – your vocabulary",
		"/addword CODE word = translation – save a word",
		"/editword N word = translation – change word N",
		"/delword N – delete word N",
		"/challenge – this week's challenge",
		"/achievements – achievements and their progress",
		"/scan OBJECT – camera practice",
		"/speak ACCURACY TEXT – pronunciation practice",
		"/allow camera|microphone – grant a permission",
		"/remind on|off|HOUR – study reminders",
		"/reset – start over",
	}
	for _, l := range lines {
		sb.WriteString(md(l))
		sb.WriteString("\n")
	}

	return sb.String()
}
