package service

import (
	"context"
	"errors"

	"github.com/j22k/AI-Educationa-Platform-for-Students-with-LD/internal/model"
	"github.com/j22k/AI-Educationa-Platform-for-Students-with-LD/internal/repository"
)

// AssessmentService persists the per-modality diagnostic records: the
// one-shot intake survey and the append-only writing and audio task samples.
type AssessmentService interface {
	RecordSurvey(ctx context.Context, userID string, payload map[string]any) error
	HasSurvey(ctx context.Context, userID string) (bool, error)
	AppendWritingTasks(ctx context.Context, userID string, entries []model.WritingTaskEntry) (int, error)
	AppendAudioTasks(ctx context.Context, userID string, entries []model.AudioTaskEntry) (int, error)
}

type assessmentService struct {
	users   repository.UserRepository
	surveys repository.SurveyRepository
	writing repository.WritingRepository
	audio   repository.AudioRepository
}

func NewAssessmentService(
	users repository.UserRepository,
	surveys repository.SurveyRepository,
	writing repository.WritingRepository,
	audio repository.AudioRepository,
) AssessmentService {
	return &assessmentService{users: users, surveys: surveys, writing: writing, audio: audio}
}

func (s *assessmentService) RecordSurvey(ctx context.Context, userID string, payload map[string]any) error {
	if userID == "" || len(payload) == 0 {
		return ErrMissingField
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return translate(err, ErrUserNotFound)
	}
	record := &model.SurveyRecord{UserID: userID, AssessmentData: payload}
	return translate(s.surveys.Insert(ctx, record), ErrUserNotFound)
}

func (s *assessmentService) HasSurvey(ctx context.Context, userID string) (bool, error) {
	_, err := s.surveys.FindByUser(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, storageErr(err)
	}
	return true, nil
}

func (s *assessmentService) AppendWritingTasks(ctx context.Context, userID string, entries []model.WritingTaskEntry) (int, error) {
	if userID == "" || len(entries) == 0 {
		return 0, ErrMissingField
	}
	total, err := s.writing.Append(ctx, userID, entries)
	if err != nil {
		return 0, storageErr(err)
	}
	return total, nil
}

func (s *assessmentService) AppendAudioTasks(ctx context.Context, userID string, entries []model.AudioTaskEntry) (int, error) {
	if userID == "" || len(entries) == 0 {
		return 0, ErrMissingField
	}
	total, err := s.audio.Append(ctx, userID, entries)
	if err != nil {
		return 0, storageErr(err)
	}
	return total, nil
}
