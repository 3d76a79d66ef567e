package service

import (
	"context"
	"fmt"
	"time"

	"github.com/j22k/AI-Educationa-Platform-for-Students-with-LD/internal/model"
	"github.com/j22k/AI-Educationa-Platform-for-Students-with-LD/internal/repository"
	"github.com/rs/zerolog/log"
)

// DiagnosisService persists structured analysis results and keeps the
// owning user's diagnosed flag in sync.
type DiagnosisService interface {
	// Save validates the result shape, links it to the user, stores it, and
	// sets the user's isDiagnosed flag. Returns the stored record id.
	Save(ctx context.Context, userID string, result *model.DiagnosisResult) (string, error)
	Fetch(ctx context.Context, userID string) (*model.DiagnosisResult, error)
}

type diagnosisService struct {
	users   repository.UserRepository
	results repository.DiagnosisRepository
	now     func() time.Time
}

func NewDiagnosisService(users repository.UserRepository, results repository.DiagnosisRepository) DiagnosisService {
	return &diagnosisService{
		users:   users,
		results: results,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// ValidateDiagnosisResult rejects model output that is missing the expected
// structure. A malformed upstream response must never be persisted as a
// report.
func ValidateDiagnosisResult(result *model.DiagnosisResult) error {
	if result == nil {
		return fmt.Errorf("%w: empty analysis result", ErrUpstreamService)
	}
	if len(result.LearningDisabilities) == 0 {
		return fmt.Errorf("%w: analysis result has no learningDisabilities", ErrUpstreamService)
	}
	for disorder, finding := range result.LearningDisabilities {
		if finding.ConfidenceScore < 0 || finding.ConfidenceScore > 1 {
			return fmt.Errorf("%w: confidence score %.2f for %s outside [0,1]", ErrUpstreamService, finding.ConfidenceScore, disorder)
		}
	}
	if result.EmotionAnalysis.EmotionOccurrences == nil && len(result.EmotionAnalysis.DominantEmotions) == 0 {
		return fmt.Errorf("%w: analysis result has no emotionAnalysis", ErrUpstreamService)
	}
	return nil
}

func (s *diagnosisService) Save(ctx context.Context, userID string, result *model.DiagnosisResult) (string, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return "", translate(err, ErrUserNotFound)
	}
	if err := ValidateDiagnosisResult(result); err != nil {
		return "", err
	}

	result.UserID = userID
	result.StudentProfile.UserID = userID
	result.CreatedAt = s.now()

	id, err := s.results.Insert(ctx, result)
	if err != nil {
		return "", storageErr(err)
	}

	if err := s.users.SetDiagnosed(ctx, userID, true); err != nil {
		// The report is stored; a failed flag update still leaves the user
		// undiagnosed in the eyes of the dashboard, so surface it.
		log.Error().Err(err).Str("userID", userID).Msg("Diagnosis saved but flag update failed")
		return id, translate(err, ErrUserNotFound)
	}
	return id, nil
}

func (s *diagnosisService) Fetch(ctx context.Context, userID string) (*model.DiagnosisResult, error) {
	result, err := s.results.FindLatestByUser(ctx, userID)
	if err != nil {
		return nil, translate(err, ErrNotFound)
	}
	return result, nil
}
