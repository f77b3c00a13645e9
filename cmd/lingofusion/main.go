package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lingofusion/lingofusion/internal/config"
	"github.com/lingofusion/lingofusion/internal/delivery/telegram"
	"github.com/lingofusion/lingofusion/internal/domain/entities"
	"github.com/lingofusion/lingofusion/internal/events"
	"github.com/lingofusion/lingofusion/internal/infra"
	"github.com/lingofusion/lingofusion/internal/logger"
	"github.com/lingofusion/lingofusion/internal/metrics"
	"github.com/lingofusion/lingofusion/internal/repository"
	"github.com/lingofusion/lingofusion/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lg); err != nil && !errors.Is(err, context.Canceled) {
		lg.Fatal("lingofusion stopped with error", zap.Error(err))
	}
	lg.Info("shutdown complete")
}

func run(ctx context.Context, cfg *config.Config, lg *zap.Logger) error {
	loc, err := entities.ParseTimezoneLocation(cfg.Calendar.Timezone)
	if err != nil {
		return err
	}
	cal := entities.NewCalendar(loc, cfg.Calendar.Weekday())

	store, err := infra.OpenStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	lg.Info("storage opened", zap.String("driver", cfg.Storage.Driver))

	catalog, err := repository.LoadCatalog(cfg.LessonsJSONPath)
	if err != nil {
		return fmt.Errorf("load lessons: %w", err)
	}

	bus := events.NewBus()

	progressService := service.NewProgressService(repository.NewProgressRepository(store), cal, bus, lg, nil)
	challenges := service.NewWeeklyChallengeEngine(cal, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), lg)
	achievements := service.NewAchievementEngine(lg)
	progressService.AddRule(challenges)
	progressService.AddRule(achievements)

	lessonService := service.NewLessonService(catalog, repository.NewLessonCompletionRepository(store), progressService, lg)
	achievements.SetModuleCounter(lessonService)

	vocabularyService := service.NewVocabularyService(repository.NewVocabularyRepository(store), bus, lg, nil)
	practiceService := service.NewPracticeService(progressService, lessonService, service.NewPreferencePermissions(progressService), lg)
	settingsService := service.NewSettingsService(progressService)
	resetService := service.NewResetService(store, progressService, bus, lg, lessonService, vocabularyService)
	reminderService := service.NewReminderService(progressService, cfg.Reminders.Schedule, lg)

	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector()
		bus.Subscribe(collector.Handle)
	}

	loaded, err := progressService.Load(ctx)
	if err != nil {
		return fmt.Errorf("load progress: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	if collector != nil {
		collector.Seed(loaded.TotalXP, loaded.CurrentLevel, vocabularyService.Count(ctx, ""))

		srv := metrics.NewServer(cfg.Metrics.Addr, collector, lg)
		g.Go(func() error { return srv.Run(ctx) })
	}

	if cfg.Telegram.Enabled {
		bot, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
		if err != nil {
			return fmt.Errorf("telegram: %w", err)
		}
		bot.Debug = cfg.Telegram.Debug
		lg.Info("authorized on telegram", zap.String("account", bot.Self.UserName))

		if _, err := bot.Request(telegram.Commands()); err != nil {
			lg.Warn("failed to set bot commands", zap.Error(err))
		}

		handler := telegram.NewHandler(bot, lg, telegram.Services{
			Progress:     progressService,
			Lessons:      lessonService,
			Vocabulary:   vocabularyService,
			Practice:     practiceService,
			Settings:     settingsService,
			Reset:        resetService,
			Achievements: achievements,
			Scorer:       service.NewPronunciationScorer(),
		}, cfg.Telegram.OwnerChatID)

		bus.Subscribe(handler.HandleEvent)
		reminderService.SetNotifier(handler)

		g.Go(func() error { return handler.Run(ctx) })
	}

	if cfg.Reminders.Enabled {
		g.Go(func() error {
			reminderService.Start(ctx)
			return nil
		})
	}

	return g.Wait()
}
