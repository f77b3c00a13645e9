package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/lingofusion/lingofusion/internal/domain/entities"
)

var onboardingGoals = []int{5, 10, 15, 20, 30}

// buildProgressKeyboard builds keyboard for progress screen.
func buildProgressKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Refresh", buildProgressCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📚 Lessons", buildLessonsCallback("")),
			tgbotapi.NewInlineKeyboardButtonData("🏆 Challenge", buildChallengeCallback()),
		),
	)
}

// buildBlocksKeyboard has one button per language block.
func buildBlocksKeyboard(blocks []entities.LanguageBlock) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, b := range blocks {
		label := fmt.Sprintf("%s %s (%d/%d)", b.Language.Flag, b.Language.Name, b.CompletedLessons(), b.TotalLessons())
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildLessonsCallback(b.Language.Code)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildBlockKeyboard lists the lessons of one block, two per row.
func buildBlockKeyboard(b entities.LanguageBlock) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for i, l := range b.Lessons {
		mark := "▫️"
		if l.IsCompleted {
			mark = "✅"
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("%s %d", mark, i+1),
			buildLessonCallback(lessonOpen, b.Language.Code, i+1),
		))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("« All languages", buildLessonsCallback("")),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildLessonKeyboard builds keyboard for a single lesson.
func buildLessonKeyboard(code string, n int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Complete lesson", buildLessonCallback(lessonComplete, code, n)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("« Back", buildLessonsCallback(code)),
		),
	)
}

func buildOnboardingGoalKeyboard() tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	for _, m := range onboardingGoals {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%d min", m), buildOnboardingGoalCallback(m)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

func buildOnboardingRemindersKeyboard(goal int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔔 Yes, remind me", buildOnboardingRemindersCallback(goal, "yes")),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔕 No reminders", buildOnboardingRemindersCallback(goal, "no")),
		),
	)
}

// buildReminderKeyboard is attached to study reminders.
func buildReminderKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 My progress", buildProgressCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔕 Turn off reminders", buildReminderDisableCallback()),
		),
	)
}

func buildResetKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Yes, reset everything", buildResetConfirmCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Cancel", buildResetCancelCallback()),
		),
	)
}
