package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/lingofusion/lingofusion/internal/domain/entities"
	"github.com/lingofusion/lingofusion/internal/service"
)

var ErrNoLanguage = errors.New("no language column and no default language")

// Vocabulary is where imported words end up.
type Vocabulary interface {
	List(ctx context.Context, language string) []entities.UserVocabulary
	AddBatch(ctx context.Context, pairs []service.WordPair) (int, error)
}

// ImportConfig describes the layout of the source file.
type ImportConfig struct {
	FilePath          string // .xlsx or .csv
	SheetName         string // xlsx only; empty means the first sheet
	WordColumn        string
	TranslationColumn string
	LanguageColumn    string // optional
	Language          string // used when the row has no language
	StartRow          int    // 1-based
}

func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		WordColumn:        "A",
		TranslationColumn: "B",
		LanguageColumn:    "C",
		StartRow:          2, // skip header
	}
}

// ImportResult holds the result of an import operation.
type ImportResult struct {
	TotalProcessed int
	Created        int
	Skipped        int
	Errors         []string
}

type Importer struct {
	vocab  Vocabulary
	logger *zap.Logger
}

func New(vocab Vocabulary, logger *zap.Logger) *Importer {
	return &Importer{vocab: vocab, logger: logger}
}

// Import reads the file and adds every new word in one batch. Rows repeating
// a saved word of the same language are skipped.
func (im *Importer) Import(ctx context.Context, cfg ImportConfig) (*ImportResult, error) {
	layout, err := newLayout(cfg)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	if strings.EqualFold(filepath.Ext(cfg.FilePath), ".csv") {
		rows, err = readCSV(cfg.FilePath)
	} else {
		rows, err = readExcel(cfg.FilePath, cfg.SheetName)
	}
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Errors: make([]string, 0)}
	seen := make(map[string]bool)
	for _, w := range im.vocab.List(ctx, "") {
		seen[wordKey(w.Word, w.Language)] = true
	}

	var pairs []service.WordPair
	for i, row := range rows {
		rowNum := i + 1
		if rowNum < max(cfg.StartRow, 1) {
			continue
		}
		if blankRow(row) {
			continue
		}
		result.TotalProcessed++

		wp, err := layout.pair(row)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}

		key := wordKey(wp.Word, wp.Language)
		if seen[key] {
			result.Skipped++
			continue
		}
		seen[key] = true
		pairs = append(pairs, wp)
	}

	n, err := im.vocab.AddBatch(ctx, pairs)
	if err != nil {
		return nil, fmt.Errorf("save imported words: %w", err)
	}
	result.Created = n

	im.logger.Info("vocabulary imported",
		zap.String("file", cfg.FilePath),
		zap.Int("processed", result.TotalProcessed),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
		zap.Int("errors", len(result.Errors)),
	)
	return result, nil
}

func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// layout holds 0-based column indexes, -1 when a column is unused.
type layout struct {
	word, translation, language int
	defaultLanguage             string
}

func newLayout(cfg ImportConfig) (layout, error) {
	l := layout{language: -1, defaultLanguage: strings.ToLower(strings.TrimSpace(cfg.Language))}

	var err error
	if l.word, err = columnIndex(cfg.WordColumn); err != nil {
		return layout{}, fmt.Errorf("word column: %w", err)
	}
	if l.translation, err = columnIndex(cfg.TranslationColumn); err != nil {
		return layout{}, fmt.Errorf("translation column: %w", err)
	}
	if cfg.LanguageColumn != "" {
		if l.language, err = columnIndex(cfg.LanguageColumn); err != nil {
			return layout{}, fmt.Errorf("language column: %w", err)
		}
	}

	if l.language < 0 && l.defaultLanguage == "" {
		return layout{}, ErrNoLanguage
	}
	return l, nil
}

func columnIndex(name string) (int, error) {
	n, err := excelize.ColumnNameToNumber(strings.TrimSpace(name))
	if err != nil {
		return 0, err
	}
	return n - 1, nil
}

func (l layout) pair(row []string) (service.WordPair, error) {
	wp := service.WordPair{
		Word:        cell(row, l.word),
		Translation: cell(row, l.translation),
		Language:    strings.ToLower(cell(row, l.language)),
	}
	if wp.Language == "" {
		wp.Language = l.defaultLanguage
	}

	switch {
	case wp.Word == "":
		return wp, errors.New("word is empty")
	case wp.Translation == "":
		return wp, fmt.Errorf("no translation for %q", wp.Word)
	case wp.Language == "":
		return wp, fmt.Errorf("no language for %q", wp.Word)
	}
	return wp, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func wordKey(word, language string) string {
	return strings.ToLower(language) + "\x00" + strings.ToLower(strings.TrimSpace(word))
}
