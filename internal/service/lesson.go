package service

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/lingofusion/lingofusion/internal/domain/entities"
	"github.com/lingofusion/lingofusion/internal/repository"
)

// BlockCompletionBonus is paid when every lesson of a language is done.
const BlockCompletionBonus = 200

// milestoneBonuses maps a total completed lesson count to its bonus XP.
var milestoneBonuses = map[int]int{
	5:  100,
	10: 150,
	25: 300,
}

// LessonProgress is the part of ProgressService the catalogue needs.
type LessonProgress interface {
	CompleteLesson(ctx context.Context, language, lessonID string, score float64) (int, error)
	AwardXP(ctx context.Context, amount int, source string) error
}

// LessonResult describes what a CompleteLesson call changed.
type LessonResult struct {
	Found           bool
	FirstCompletion bool
	XP              int
	BlockCompleted  bool
	MilestoneBonus  int
}

// TotalXP is the lesson XP plus any bonus paid for the same call.
func (r LessonResult) TotalXP() int {
	xp := r.XP + r.MilestoneBonus
	if r.BlockCompleted {
		xp += BlockCompletionBonus
	}
	return xp
}

// LessonService serves the lesson catalogue and tracks which lessons are done.
type LessonService struct {
	mu        sync.Mutex
	completed map[string]bool
	loaded    bool

	catalog  *repository.Catalog
	repo     LessonCompletionRepository
	progress LessonProgress
	logger   *zap.Logger
}

func NewLessonService(
	catalog *repository.Catalog,
	repo LessonCompletionRepository,
	progress LessonProgress,
	logger *zap.Logger,
) *LessonService {
	return &LessonService{
		catalog:  catalog,
		repo:     repo,
		progress: progress,
		logger:   logger,
	}
}

func (s *LessonService) loadLocked(ctx context.Context) {
	if s.loaded {
		return
	}

	flags, err := s.repo.Get(ctx)
	if err != nil {
		s.logger.Warn("failed to load lesson completion, starting empty", zap.Error(err))
	}
	if flags == nil {
		flags = make(map[string]bool)
	}

	s.completed = flags
	s.loaded = true
}

// blocksLocked builds the blocks for every available language except English.
func (s *LessonService) blocksLocked() []entities.LanguageBlock {
	var blocks []entities.LanguageBlock
	for _, lang := range s.catalog.Languages {
		if !lang.Available || lang.Code == "en" {
			continue
		}

		src := s.catalog.Lessons[lang.Code]
		lessons := make([]entities.SimpleLesson, len(src))
		for i, l := range src {
			l.Words = append([]entities.SimpleWord(nil), l.Words...)
			l.IsCompleted = s.completed[l.ID]
			lessons[i] = l
		}

		blocks = append(blocks, entities.LanguageBlock{Language: lang, Lessons: lessons})
	}
	return blocks
}

func (s *LessonService) Blocks(ctx context.Context) []entities.LanguageBlock {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)
	return s.blocksLocked()
}

func (s *LessonService) Block(ctx context.Context, code string) (entities.LanguageBlock, bool) {
	for _, b := range s.Blocks(ctx) {
		if b.Language.Code == code {
			return b, true
		}
	}
	return entities.LanguageBlock{}, false
}

func (s *LessonService) Lesson(ctx context.Context, code, lessonID string) (entities.SimpleLesson, bool) {
	b, ok := s.Block(ctx, code)
	if !ok {
		return entities.SimpleLesson{}, false
	}
	return b.Lesson(lessonID)
}

// CompleteLesson marks a lesson done and pays lesson XP. Block and milestone
// bonuses are paid only when the lesson was not completed before. Unknown
// languages or lessons return a zero result.
func (s *LessonService) CompleteLesson(ctx context.Context, code, lessonID string, score float64) (LessonResult, error) {
	s.mu.Lock()
	s.loadLocked(ctx)

	var block *entities.LanguageBlock
	blocks := s.blocksLocked()
	for i := range blocks {
		if blocks[i].Language.Code == code {
			block = &blocks[i]
			break
		}
	}
	if block == nil {
		s.mu.Unlock()
		return LessonResult{}, nil
	}
	if _, ok := block.Lesson(lessonID); !ok {
		s.mu.Unlock()
		return LessonResult{}, nil
	}

	res := LessonResult{Found: true, FirstCompletion: !s.completed[lessonID]}
	var saveErr error
	if res.FirstCompletion {
		s.completed[lessonID] = true
		for i := range block.Lessons {
			if block.Lessons[i].ID == lessonID {
				block.Lessons[i].IsCompleted = true
			}
		}
		res.BlockCompleted = block.IsComplete()
		res.MilestoneBonus = milestoneBonuses[s.totalCompletedLocked(blocks)]

		if saveErr = s.repo.Save(ctx, s.completed); saveErr != nil {
			s.logger.Error("failed to save lesson completion", zap.Error(saveErr))
		}
	}
	// Progress rules ask for CompletedBlocks, so the lock must be released first.
	s.mu.Unlock()

	xp, err := s.progress.CompleteLesson(ctx, code, lessonID, score)
	res.XP = xp
	if err != nil && saveErr == nil {
		saveErr = err
	}

	if res.BlockCompleted {
		if err := s.progress.AwardXP(ctx, BlockCompletionBonus, "module"); err != nil && saveErr == nil {
			saveErr = err
		}
		s.logger.Info("language block completed", zap.String("language", code))
	}
	if res.MilestoneBonus > 0 {
		if err := s.progress.AwardXP(ctx, res.MilestoneBonus, "milestone"); err != nil && saveErr == nil {
			saveErr = err
		}
	}

	return res, saveErr
}

func (s *LessonService) totalCompletedLocked(blocks []entities.LanguageBlock) int {
	n := 0
	for _, b := range blocks {
		n += b.CompletedLessons()
	}
	return n
}

func (s *LessonService) TotalCompleted(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)
	return s.totalCompletedLocked(s.blocksLocked())
}

func (s *LessonService) TotalAvailable(ctx context.Context) int {
	n := 0
	for _, b := range s.Blocks(ctx) {
		n += b.TotalLessons()
	}
	return n
}

// CompletionPercentage is the completed fraction across all blocks, in [0,1].
func (s *LessonService) CompletionPercentage(ctx context.Context) float64 {
	total := s.TotalAvailable(ctx)
	if total == 0 {
		return 0
	}
	return float64(s.TotalCompleted(ctx)) / float64(total)
}

func (s *LessonService) LanguageProgress(ctx context.Context, code string) float64 {
	b, ok := s.Block(ctx, code)
	if !ok {
		return 0
	}
	return b.Progress()
}

// CompletedBlocks counts fully completed language blocks. It only reads
// cached state and never blocks on storage after the first load.
func (s *LessonService) CompletedBlocks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(context.Background())

	n := 0
	for _, b := range s.blocksLocked() {
		if b.IsComplete() {
			n++
		}
	}
	return n
}

// Translate looks an English word up in the lesson tables and returns the
// matching word per language code.
func (s *LessonService) Translate(english string) map[string]string {
	needle := strings.ToLower(strings.TrimSpace(english))
	out := make(map[string]string)
	if needle == "" {
		return out
	}

	for _, lang := range s.catalog.Languages {
		if !lang.Available || lang.Code == "en" {
			continue
		}
	lessons:
		for _, l := range s.catalog.Lessons[lang.Code] {
			for _, w := range l.Words {
				for _, meaning := range strings.Split(w.Translation, "/") {
					if strings.ToLower(strings.TrimSpace(meaning)) == needle {
						out[lang.Code] = w.Word
						break lessons
					}
				}
			}
		}
	}
	return out
}

// Invalidate forgets the cached completion flags.
func (s *LessonService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completed = nil
	s.loaded = false
}
