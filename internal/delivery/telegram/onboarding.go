package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/lingofusion/lingofusion/internal/domain/entities"
	"github.com/lingofusion/lingofusion/internal/service"
)

func onboardingGoalMessage() string {
	var sb strings.Builder

	sb.WriteString(bold("Welcome to LingoFusion! 🌍"))
	sb.WriteString("\n\n")
	sb.WriteString(md("Learn a little every day: lessons, saved words, camera and pronunciation practice. Earn XP, keep your streak and beat the weekly challenge."))
	sb.WriteString("\n\n")
	sb.WriteString(bold("Step 1 of 2."))
	sb.WriteString(" ")
	sb.WriteString(md("How many minutes a day do you want to study?"))

	return sb.String()
}

func onboardingRemindersMessage(goal int) string {
	var sb strings.Builder

	sb.WriteString(md(fmt.Sprintf("Daily goal: %s ✅", service.FormatMinutes(goal))))
	sb.WriteString("\n\n")
	sb.WriteString(bold("Step 2 of 2."))
	sb.WriteString(" ")
	sb.WriteString(md(fmt.Sprintf("Should I remind you at %02d:00 when the goal is not met yet?", entities.DefaultReminderHour)))

	return sb.String()
}

func onboardingDoneMessage(goal int, reminders bool) string {
	var sb strings.Builder

	sb.WriteString(bold("You are all set! 🎉"))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("Goal: %s a day.", service.FormatMinutes(goal))))
	sb.WriteString("\n")
	if reminders {
		sb.WriteString(md("Reminders: on. Change the hour with /remind 20."))
	} else {
		sb.WriteString(md("Reminders: off. Turn them on with /remind on."))
	}
	sb.WriteString("\n\n")
	sb.WriteString(md("Start with /lessons, or log study time with /study 15."))

	return sb.String()
}

// handleOnboardingCallback drives the two onboarding steps: goal, then
// reminders.
func (h *Handler) handleOnboardingCallback(ctx context.Context, cd callbackData) (string, *tgbotapi.InlineKeyboardMarkup, error) {
	goal, err := parsePositiveInt(cd.param(1))
	if err != nil {
		return "", nil, err
	}

	switch cd.param(0) {
	case onboardingGoal:
		kb := buildOnboardingRemindersKeyboard(goal)
		return onboardingRemindersMessage(goal), &kb, nil

	case onboardingReminders:
		reminders := cd.param(2) == "yes"
		err := h.services.Settings.CompleteOnboarding(ctx, service.Onboarding{
			DailyGoal:     goal,
			Notifications: reminders,
		})
		if err != nil {
			return "", nil, err
		}
		h.logger.Info("onboarding completed")

		goal = h.services.Progress.Snapshot(ctx).DailyGoal
		return onboardingDoneMessage(goal, reminders), nil, nil
	}

	return "", nil, errUnknownCallback
}
