package service

import (
	"context"
	"errors"

	"github.com/j22k/AI-Educationa-Platform-for-Students-with-LD/internal/model"
	"github.com/j22k/AI-Educationa-Platform-for-Students-with-LD/internal/repository"
)

// AggregatorService merges the three modality stores into the single payload
// handed to the external analysis model.
type AggregatorService interface {
	Collect(ctx context.Context, userID string) (*model.AggregateView, error)
}

type aggregatorService struct {
	surveys repository.SurveyRepository
	writing repository.WritingRepository
	audio   repository.AudioRepository
}

func NewAggregatorService(
	surveys repository.SurveyRepository,
	writing repository.WritingRepository,
	audio repository.AudioRepository,
) AggregatorService {
	return &aggregatorService{surveys: surveys, writing: writing, audio: audio}
}

// Collect performs three independent lookups; there is no transaction across
// them. When none of the modalities has data the user has no assessment at
// all, which is reported as ErrNotFound rather than an empty view.
func (s *aggregatorService) Collect(ctx context.Context, userID string) (*model.AggregateView, error) {
	if userID == "" {
		return nil, ErrMissingField
	}

	view := &model.AggregateView{
		WritingTasks: []model.WritingTaskEntry{},
		AudioTasks:   []model.AudioTaskEntry{},
	}
	found := false

	survey, err := s.surveys.FindByUser(ctx, userID)
	switch {
	case err == nil:
		view.History = survey.AssessmentData
		found = true
	case !errors.Is(err, repository.ErrNotFound):
		return nil, storageErr(err)
	}

	writing, err := s.writing.FindByUser(ctx, userID)
	switch {
	case err == nil:
		view.WritingTasks = writing.WritingTasks
		found = true
	case !errors.Is(err, repository.ErrNotFound):
		return nil, storageErr(err)
	}

	audio, err := s.audio.FindByUser(ctx, userID)
	switch {
	case err == nil:
		view.AudioTasks = audio.AudioTasks
		found = true
	case !errors.Is(err, repository.ErrNotFound):
		return nil, storageErr(err)
	}

	if !found {
		return nil, ErrNotFound
	}
	return view, nil
}
