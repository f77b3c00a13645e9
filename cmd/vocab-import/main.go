package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/lingofusion/lingofusion/internal/config"
	"github.com/lingofusion/lingofusion/internal/events"
	"github.com/lingofusion/lingofusion/internal/importer"
	"github.com/lingofusion/lingofusion/internal/infra"
	"github.com/lingofusion/lingofusion/internal/logger"
	"github.com/lingofusion/lingofusion/internal/repository"
	"github.com/lingofusion/lingofusion/internal/service"
)

func main() {
	defaults := importer.DefaultImportConfig()

	input := flag.String("input", "", "Excel (.xlsx) or CSV file to import (required)")
	sheet := flag.String("sheet", "", "Sheet name (default: first sheet)")
	wordCol := flag.String("word-col", defaults.WordColumn, "Column with the word")
	translationCol := flag.String("translation-col", defaults.TranslationColumn, "Column with the translation")
	languageCol := flag.String("language-col", defaults.LanguageColumn, "Column with the language code, empty for none")
	language := flag.String("lang", "", "Language code for rows without one")
	startRow := flag.Int("start-row", defaults.StartRow, "First row to import (1-based)")
	flag.Parse()

	if *input == "" {
		fmt.Println("Error: -input flag is required")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// The importer never talks to Telegram, so no bot token is required.
	_ = os.Setenv("TELEGRAM_ENABLED", "false")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx := context.Background()

	store, err := infra.OpenStore(ctx, cfg.Storage)
	if err != nil {
		lg.Fatal("failed to open storage", zap.Error(err))
	}
	defer func() { _ = store.Close() }()

	vocab := service.NewVocabularyService(repository.NewVocabularyRepository(store), events.NewBus(), lg, nil)

	res, err := importer.New(vocab, lg).Import(ctx, importer.ImportConfig{
		FilePath:          *input,
		SheetName:         *sheet,
		WordColumn:        *wordCol,
		TranslationColumn: *translationCol,
		LanguageColumn:    *languageCol,
		Language:          *language,
		StartRow:          *startRow,
	})
	if err != nil {
		lg.Fatal("import failed", zap.Error(err))
	}

	fmt.Printf("Processed: %d, created: %d, skipped: %d\n", res.TotalProcessed, res.Created, res.Skipped)
	for _, e := range res.Errors {
		fmt.Println("  " + e)
	}
}
