package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/lingofusion/lingofusion/internal/domain/entities"
)

type fakeNotifier struct {
	sent []entities.ReminderPayload
	err  error
}

func (f *fakeNotifier) SendReminder(_ context.Context, p entities.ReminderPayload) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, p)
	return nil
}

var reminderHour = time.Date(2025, time.March, 12, entities.DefaultReminderHour, 5, 0, 0, time.UTC)

func TestReminderService_OncePerDay(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, nil, minutesChallenge)
	e.clock.Set(reminderHour)

	n := &fakeNotifier{}
	r := NewReminderService(e.progress, "", zap.NewNop())
	r.SetNotifier(n)

	if err := e.progress.RecordStudy(ctx, 4, 0, 0, 0); err != nil {
		t.Fatalf("RecordStudy: %v", err)
	}

	sent, err := r.CheckAndSend(ctx)
	if err != nil || !sent {
		t.Fatalf("CheckAndSend = %v, %v", sent, err)
	}
	e.clock.Set(reminderHour.Add(30 * time.Minute))
	if sent, _ := r.CheckAndSend(ctx); sent {
		t.Error("second reminder on the same day")
	}

	if len(n.sent) != 1 {
		t.Fatalf("sent = %d, want 1", len(n.sent))
	}
	p := n.sent[0]
	if p.MinutesToday != 4 || p.DailyGoal != entities.DefaultDailyGoal || p.MinutesLeft() != entities.DefaultDailyGoal-4 {
		t.Errorf("payload = %+v", p)
	}
	if p.Challenge == nil || p.Challenge.TemplateID != minutesChallenge.ID {
		t.Errorf("payload challenge = %+v", p.Challenge)
	}

	e.clock.Set(reminderHour.AddDate(0, 0, 1))
	if sent, _ := r.CheckAndSend(ctx); !sent {
		t.Error("no reminder on the next day")
	}
}

func TestReminderService_NotDue(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		now   time.Time
		setup func(t *testing.T, e *env)
	}{
		{
			name: "wrong hour",
			now:  reminderHour.Add(-2 * time.Hour),
		},
		{
			name: "goal met",
			now:  reminderHour,
			setup: func(t *testing.T, e *env) {
				if err := e.progress.RecordStudy(ctx, entities.DefaultDailyGoal, 0, 0, 0); err != nil {
					t.Fatal(err)
				}
			},
		},
		{
			name: "reminders off",
			now:  reminderHour,
			setup: func(t *testing.T, e *env) {
				if err := e.settings.SetStudyReminders(ctx, false); err != nil {
					t.Fatal(err)
				}
			},
		},
		{
			name: "custom hour",
			now:  reminderHour,
			setup: func(t *testing.T, e *env) {
				if err := e.settings.SetReminderHour(ctx, 8); err != nil {
					t.Fatal(err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t, nil, minutesChallenge)
			e.clock.Set(tt.now)
			if tt.setup != nil {
				tt.setup(t, e)
			}

			n := &fakeNotifier{}
			r := NewReminderService(e.progress, "", zap.NewNop())
			r.SetNotifier(n)

			sent, err := r.CheckAndSend(ctx)
			if err != nil {
				t.Fatalf("CheckAndSend: %v", err)
			}
			if sent || len(n.sent) != 0 {
				t.Error("reminder sent")
			}
		})
	}
}

func TestReminderService_Errors(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, nil, minutesChallenge)
	e.clock.Set(reminderHour)

	r := NewReminderService(e.progress, "", zap.NewNop())
	if _, err := r.CheckAndSend(ctx); !errors.Is(err, ErrNotifierNotSet) {
		t.Errorf("err = %v, want ErrNotifierNotSet", err)
	}

	r.SetNotifier(&fakeNotifier{err: errors.New("telegram down")})
	if sent, err := r.CheckAndSend(ctx); err == nil || sent {
		t.Errorf("CheckAndSend = %v, %v; want error", sent, err)
	}

	// A failed send does not use up the day.
	n := &fakeNotifier{}
	r.SetNotifier(n)
	if sent, err := r.CheckAndSend(ctx); err != nil || !sent {
		t.Errorf("retry = %v, %v", sent, err)
	}
}
