package service

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/lingofusion/lingofusion/internal/domain/entities"
	"github.com/lingofusion/lingofusion/internal/events"
)

const (
	CameraScanXP        = 25
	SpeechXPPerAccuracy = 30
)

// Translator finds catalogue translations of an English word.
type Translator interface {
	Translate(english string) map[string]string
}

// ScanResult is the outcome of a camera recognition.
type ScanResult struct {
	Status       entities.AuthorizationStatus
	ObjectName   string
	Translations map[string]string
	XP           int
}

// SpeechResult is the outcome of a pronunciation attempt.
type SpeechResult struct {
	Status   entities.AuthorizationStatus
	Accuracy float64
	Average  float64
	XP       int
}

// PracticeService handles camera scans and pronunciation practice. Both
// require the matching device permission; without it nothing changes.
type PracticeService struct {
	progress    *ProgressService
	translator  Translator
	permissions PermissionProvider
	logger      *zap.Logger
}

func NewPracticeService(
	progress *ProgressService,
	translator Translator,
	permissions PermissionProvider,
	logger *zap.Logger,
) *PracticeService {
	return &PracticeService{
		progress:    progress,
		translator:  translator,
		permissions: permissions,
		logger:      logger,
	}
}

// ProcessRecognizedObject records one camera scan and one learned word and
// pays CameraScanXP.
func (s *PracticeService) ProcessRecognizedObject(ctx context.Context, name string) (ScanResult, error) {
	status := s.permissions.Status(ctx, entities.CapabilityCamera)
	if status != entities.AuthorizationAuthorized {
		s.logger.Debug("camera scan refused", zap.String("status", string(status)))
		return ScanResult{Status: status, ObjectName: name}, nil
	}

	res := ScanResult{
		Status:       status,
		ObjectName:   name,
		Translations: map[string]string{},
		XP:           CameraScanXP,
	}
	if s.translator != nil {
		res.Translations = s.translator.Translate(name)
	}

	err := s.progress.Update(ctx, func(p *entities.UserProgress, now time.Time) []events.Event {
		p.Statistics.CameraScans++
		p.Statistics.WordsLearned++
		evs := recordActivity(p, s.progress.Calendar(), now, entities.Activity{
			CameraScans:  1,
			WordsLearned: 1,
		})
		return append(evs, awardXP(p, CameraScanXP, "camera")...)
	})
	return res, err
}

// SpeechAverage folds a new sample into the running accuracy average.
func SpeechAverage(current float64, sessions int, sample float64) float64 {
	if sessions <= 0 {
		return sample
	}
	return (current*float64(sessions) + sample) / float64(sessions+1)
}

// SpeechXP is floor(accuracy*30).
func SpeechXP(accuracy float64) int {
	return int(math.Floor(accuracy * SpeechXPPerAccuracy))
}

// ProcessSpeechResult records one pronunciation session with the given
// accuracy in [0,1].
func (s *PracticeService) ProcessSpeechResult(ctx context.Context, text string, accuracy float64) (SpeechResult, error) {
	status := s.permissions.Status(ctx, entities.CapabilityMicrophone)
	if status != entities.AuthorizationAuthorized {
		s.logger.Debug("speech practice refused", zap.String("status", string(status)))
		return SpeechResult{Status: status, Accuracy: accuracy}, nil
	}

	accuracy = min(max(accuracy, 0), 1)
	res := SpeechResult{Status: status, Accuracy: accuracy, XP: SpeechXP(accuracy)}

	err := s.progress.Update(ctx, func(p *entities.UserProgress, now time.Time) []events.Event {
		st := &p.Statistics
		st.PronunciationAccuracy = SpeechAverage(st.PronunciationAccuracy, st.PronunciationSessions, accuracy)
		st.PronunciationSessions++
		res.Average = st.PronunciationAccuracy

		evs := recordActivity(p, s.progress.Calendar(), now, entities.Activity{PronunciationSessions: 1})
		return append(evs, awardXP(p, res.XP, "speech")...)
	})

	s.logger.Debug("speech practice recorded",
		zap.Int("text_len", len(text)),
		zap.Float64("accuracy", accuracy),
	)
	return res, err
}

// PreferencePermissions derives permission status from the stored
// preference flags. Before onboarding the answer is not determined, after it
// a missing grant counts as denied.
type PreferencePermissions struct {
	progress *ProgressService
}

func NewPreferencePermissions(progress *ProgressService) *PreferencePermissions {
	return &PreferencePermissions{progress: progress}
}

func (pp *PreferencePermissions) Status(ctx context.Context, c entities.Capability) entities.AuthorizationStatus {
	p := pp.progress.Snapshot(ctx)

	var granted bool
	switch c {
	case entities.CapabilityCamera:
		granted = p.Preferences.CameraPermissionGranted
	case entities.CapabilityMicrophone:
		granted = p.Preferences.MicrophonePermissionGranted
	}

	switch {
	case granted:
		return entities.AuthorizationAuthorized
	case p.OnboardingCompleted:
		return entities.AuthorizationDenied
	default:
		return entities.AuthorizationNotDetermined
	}
}
