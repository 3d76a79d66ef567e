package service

import (
	"context"
	"errors"
	"testing"

	"github.com/j22k/AI-Educationa-Platform-for-Students-with-LD/internal/model"
)

func TestCollectWithNoDataAtAll(t *testing.T) {
	svc := NewAggregatorService(newStubSurveyRepo(), newStubWritingRepo(), newStubAudioRepo())

	if _, err := svc.Collect(context.Background(), "someone"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound when no modality has data, got %v", err)
	}
}

func TestCollectDistinguishesAbsentModalities(t *testing.T) {
	surveys := newStubSurveyRepo()
	writing := newStubWritingRepo()
	audio := newStubAudioRepo()
	svc := NewAggregatorService(surveys, writing, audio)
	ctx := context.Background()

	if err := surveys.Insert(ctx, &model.SurveyRecord{UserID: "u1", AssessmentData: map[string]any{"age": 8}}); err != nil {
		t.Fatalf("survey insert failed: %v", err)
	}

	view, err := svc.Collect(ctx, "u1")
	if err != nil {
		t.Fatalf("Collect returned error: %v", err)
	}
	if view.History == nil || view.History["age"] != 8 {
		t.Fatalf("survey modality missing from view: %+v", view.History)
	}
	if view.WritingTasks == nil || len(view.WritingTasks) != 0 {
		t.Fatalf("absent writing modality should be empty, got %+v", view.WritingTasks)
	}
	if view.AudioTasks == nil || len(view.AudioTasks) != 0 {
		t.Fatalf("absent audio modality should be empty, got %+v", view.AudioTasks)
	}
}

func TestCollectPreservesAppendOrder(t *testing.T) {
	surveys := newStubSurveyRepo()
	writing := newStubWritingRepo()
	audio := newStubAudioRepo()
	svc := NewAggregatorService(surveys, writing, audio)
	ctx := context.Background()

	entryA := model.WritingTaskEntry{Task: "a", RecognizedText: "first"}
	entryB := model.WritingTaskEntry{Task: "b", RecognizedText: "second"}
	if _, err := writing.Append(ctx, "u2", []model.WritingTaskEntry{entryA}); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if _, err := writing.Append(ctx, "u2", []model.WritingTaskEntry{entryB}); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	view, err := svc.Collect(ctx, "u2")
	if err != nil {
		t.Fatalf("Collect returned error: %v", err)
	}
	if len(view.WritingTasks) != 2 || view.WritingTasks[0].Task != "a" || view.WritingTasks[1].Task != "b" {
		t.Fatalf("writing tasks dropped or reordered: %+v", view.WritingTasks)
	}
	if view.History != nil {
		t.Fatalf("absent survey should be nil, got %+v", view.History)
	}
}

func TestCollectWithAllModalities(t *testing.T) {
	surveys := newStubSurveyRepo()
	writing := newStubWritingRepo()
	audio := newStubAudioRepo()
	svc := NewAggregatorService(surveys, writing, audio)
	ctx := context.Background()

	surveys.Insert(ctx, &model.SurveyRecord{UserID: "u3", AssessmentData: map[string]any{"q": "a"}})
	writing.Append(ctx, "u3", []model.WritingTaskEntry{{Task: "w"}})
	audio.Append(ctx, "u3", []model.AudioTaskEntry{{Question: "q1"}, {Question: "q2"}})

	view, err := svc.Collect(ctx, "u3")
	if err != nil {
		t.Fatalf("Collect returned error: %v", err)
	}
	if view.History == nil || len(view.WritingTasks) != 1 || len(view.AudioTasks) != 2 {
		t.Fatalf("unexpected view: %+v", view)
	}
}
