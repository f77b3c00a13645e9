package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lingofusion/lingofusion/internal/events"
)

const namespace = "lingofusion"

// Collector turns bus events into Prometheus metrics.
type Collector struct {
	registry *prometheus.Registry

	xpAwarded       *prometheus.CounterVec
	totalXP         prometheus.Gauge
	level           prometheus.Gauge
	studyMinutes    prometheus.Counter
	lessons         *prometheus.CounterVec
	achievements    *prometheus.CounterVec
	challenges      *prometheus.CounterVec
	vocabularyWords prometheus.Gauge
	resets          prometheus.Counter
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		xpAwarded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "xp_awarded_total",
				Help:      "XP awarded, by source.",
			},
			[]string{"source"},
		),
		totalXP: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "total_xp",
			Help:      "Current XP total of the learner.",
		}),
		level: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "level",
			Help:      "Current level of the learner.",
		}),
		studyMinutes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "study_minutes_total",
			Help:      "Minutes of study recorded.",
		}),
		lessons: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "lessons_completed_total",
				Help:      "Lesson completions, by language.",
			},
			[]string{"language"},
		),
		achievements: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "achievements_unlocked_total",
				Help:      "Achievements unlocked, by achievement.",
			},
			[]string{"achievement"},
		),
		challenges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "weekly_challenges_total",
				Help:      "Weekly challenges, by type and state (started or completed).",
			},
			[]string{"type", "state"},
		),
		vocabularyWords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "vocabulary_words",
			Help:      "Words saved in the vocabulary notebook.",
		}),
		resets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "progress_resets_total",
			Help:      "Full progress resets.",
		}),
	}

	c.registry.MustRegister(
		c.xpAwarded,
		c.totalXP,
		c.level,
		c.studyMinutes,
		c.lessons,
		c.achievements,
		c.challenges,
		c.vocabularyWords,
		c.resets,
	)
	return c
}

// Seed sets the gauges from the state loaded at startup. Events only carry
// changes, so without it the gauges read zero until the next change.
func (c *Collector) Seed(totalXP, level, words int) {
	c.totalXP.Set(float64(totalXP))
	c.level.Set(float64(level))
	c.vocabularyWords.Set(float64(words))
}

// Handle is subscribed to the event bus.
func (c *Collector) Handle(e events.Event) {
	switch ev := e.(type) {
	case events.XPAwarded:
		c.xpAwarded.WithLabelValues(sourceLabel(ev.Source)).Add(float64(ev.Amount))
		c.totalXP.Set(float64(ev.TotalXP))
	case events.LevelUp:
		c.level.Set(float64(ev.To))
	case events.StudyRecorded:
		if ev.Activity.Minutes > 0 {
			c.studyMinutes.Add(float64(ev.Activity.Minutes))
		}
	case events.LessonCompleted:
		c.lessons.WithLabelValues(ev.Language).Inc()
	case events.AchievementUnlocked:
		c.achievements.WithLabelValues(ev.Achievement.ID).Inc()
	case events.ChallengeStarted:
		c.challenges.WithLabelValues(string(ev.Challenge.Type), "started").Inc()
	case events.ChallengeCompleted:
		c.challenges.WithLabelValues(string(ev.Challenge.Type), "completed").Inc()
	case events.VocabularyChanged:
		c.vocabularyWords.Set(float64(ev.Count))
	case events.ProgressReset:
		c.resets.Inc()
		c.totalXP.Set(0)
		c.level.Set(1)
	}
}

func sourceLabel(s string) string {
	if s == "" {
		return "other"
	}
	return s
}

// Handler serves the collector's registry in the exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Server exposes /metrics over HTTP.
type Server struct {
	srv    *http.Server
	logger *zap.Logger
}

func NewServer(addr string, c *Collector, logger *zap.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())

	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("metrics server started", zap.String("addr", s.srv.Addr))
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("metrics server stopped")
	return nil
}
