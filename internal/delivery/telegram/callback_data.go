package telegram

import (
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionProgress   = "progress"
	actionLessons    = "lessons"
	actionLesson     = "lesson"
	actionChallenge  = "challenge"
	actionOnboarding = "onboarding"
	actionReminder   = "reminder"
	actionReset      = "reset"
)

// Lesson sub-actions.
const (
	lessonOpen     = "open"
	lessonComplete = "complete"
)

// Onboarding sub-actions.
const (
	onboardingGoal      = "goal"
	onboardingReminders = "reminders"
)

// Reminder sub-actions.
const (
	reminderDisable = "disable"
)

const (
	resetConfirm = "confirm"
	resetCancel  = "cancel"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// param returns the i-th parameter or "".
func (cd callbackData) param(i int) string {
	if i < 0 || i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

func buildProgressCallback() string {
	return actionProgress
}

func buildChallengeCallback() string {
	return actionChallenge
}

// buildLessonsCallback opens the block list, or one block when code is set.
func buildLessonsCallback(code string) string {
	if code == "" {
		return actionLessons
	}
	return callbackData{Action: actionLessons, Params: []string{code}}.encode()
}

// buildLessonCallback builds callback data for a lesson by 1-based position.
func buildLessonCallback(sub, code string, n int) string {
	return callbackData{
		Action: actionLesson,
		Params: []string{sub, code, strconv.Itoa(n)},
	}.encode()
}

func buildOnboardingGoalCallback(minutes int) string {
	return callbackData{
		Action: actionOnboarding,
		Params: []string{onboardingGoal, strconv.Itoa(minutes)},
	}.encode()
}

func buildOnboardingRemindersCallback(minutes int, choice string) string {
	return callbackData{
		Action: actionOnboarding,
		Params: []string{onboardingReminders, strconv.Itoa(minutes), choice}, // yes/no
	}.encode()
}

func buildReminderDisableCallback() string {
	return callbackData{Action: actionReminder, Params: []string{reminderDisable}}.encode()
}

func buildResetConfirmCallback() string {
	return callbackData{Action: actionReset, Params: []string{resetConfirm}}.encode()
}

func buildResetCancelCallback() string {
	return callbackData{Action: actionReset, Params: []string{resetCancel}}.encode()
}
