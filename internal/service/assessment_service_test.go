package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/j22k/AI-Educationa-Platform-for-Students-with-LD/internal/model"
	"github.com/j22k/AI-Educationa-Platform-for-Students-with-LD/internal/repository"
)

type stubSurveyRepo struct {
	records map[string]*model.SurveyRecord
}

func newStubSurveyRepo() *stubSurveyRepo {
	return &stubSurveyRepo{records: map[string]*model.SurveyRecord{}}
}

func (s *stubSurveyRepo) Insert(_ context.Context, record *model.SurveyRecord) error {
	if _, ok := s.records[record.UserID]; ok {
		return repository.ErrDuplicate
	}
	cp := *record
	s.records[record.UserID] = &cp
	return nil
}

func (s *stubSurveyRepo) FindByUser(_ context.Context, userID string) (*model.SurveyRecord, error) {
	if r, ok := s.records[userID]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

type stubWritingRepo struct {
	samples map[string]*model.WritingSample
}

func newStubWritingRepo() *stubWritingRepo {
	return &stubWritingRepo{samples: map[string]*model.WritingSample{}}
}

func (s *stubWritingRepo) Append(_ context.Context, userID string, entries []model.WritingTaskEntry) (int, error) {
	doc, ok := s.samples[userID]
	if !ok {
		doc = &model.WritingSample{UserID: userID}
		s.samples[userID] = doc
	}
	doc.WritingTasks = append(doc.WritingTasks, entries...)
	return len(doc.WritingTasks), nil
}

func (s *stubWritingRepo) FindByUser(_ context.Context, userID string) (*model.WritingSample, error) {
	if d, ok := s.samples[userID]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

type stubAudioRepo struct {
	samples map[string]*model.AudioSample
}

func newStubAudioRepo() *stubAudioRepo {
	return &stubAudioRepo{samples: map[string]*model.AudioSample{}}
}

func (s *stubAudioRepo) Append(_ context.Context, userID string, entries []model.AudioTaskEntry) (int, error) {
	doc, ok := s.samples[userID]
	if !ok {
		doc = &model.AudioSample{UserID: userID}
		s.samples[userID] = doc
	}
	doc.AudioTasks = append(doc.AudioTasks, entries...)
	return len(doc.AudioTasks), nil
}

func (s *stubAudioRepo) FindByUser(_ context.Context, userID string) (*model.AudioSample, error) {
	if d, ok := s.samples[userID]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func newAssessmentFixture(t *testing.T) (AssessmentService, string, *stubSurveyRepo, *stubWritingRepo, *stubAudioRepo) {
	t.Helper()
	users := newStubUserRepo()
	auth := NewAuthService(users, testSigner)
	res, err := auth.Signup(context.Background(), "Alice", "alice@x.com", "pw1")
	if err != nil {
		t.Fatalf("fixture signup failed: %v", err)
	}
	surveys := newStubSurveyRepo()
	writing := newStubWritingRepo()
	audio := newStubAudioRepo()
	return NewAssessmentService(users, surveys, writing, audio), res.UserID, surveys, writing, audio
}

func TestRecordSurveyOncePerUser(t *testing.T) {
	svc, userID, surveys, _, _ := newAssessmentFixture(t)
	ctx := context.Background()

	first := map[string]any{"age": 9, "mainConcerns": "reading"}
	if err := svc.RecordSurvey(ctx, userID, first); err != nil {
		t.Fatalf("first RecordSurvey returned error: %v", err)
	}

	second := map[string]any{"age": 10}
	if err := svc.RecordSurvey(ctx, userID, second); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists on second survey, got %v", err)
	}

	stored, err := surveys.FindByUser(ctx, userID)
	if err != nil {
		t.Fatalf("survey missing after insert: %v", err)
	}
	if stored.AssessmentData["age"] != 9 {
		t.Fatalf("stored payload was overwritten: %+v", stored.AssessmentData)
	}
}

func TestRecordSurveyUnknownUser(t *testing.T) {
	svc, _, _, _, _ := newAssessmentFixture(t)
	err := svc.RecordSurvey(context.Background(), "bad-id", map[string]any{"a": 1})
	if !errors.Is(err, ErrInvalidID) && !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected user lookup failure, got %v", err)
	}
}

func TestHasSurveyTransitions(t *testing.T) {
	svc, userID, _, _, _ := newAssessmentFixture(t)
	ctx := context.Background()

	assessed, err := svc.HasSurvey(ctx, userID)
	if err != nil {
		t.Fatalf("HasSurvey returned error: %v", err)
	}
	if assessed {
		t.Fatalf("user should not be assessed before survey")
	}

	if err := svc.RecordSurvey(ctx, userID, map[string]any{"q": "a"}); err != nil {
		t.Fatalf("RecordSurvey returned error: %v", err)
	}

	assessed, err = svc.HasSurvey(ctx, userID)
	if err != nil {
		t.Fatalf("HasSurvey returned error: %v", err)
	}
	if !assessed {
		t.Fatalf("user should be assessed after survey")
	}
}

func TestAppendWritingTasksIsMonotonic(t *testing.T) {
	svc, userID, _, writing, _ := newAssessmentFixture(t)
	ctx := context.Background()

	entryA := model.WritingTaskEntry{Task: "copy-sentence", Text: "The cat sat", RecognizedText: "The cat sat", CreatedAt: time.Now()}
	entryB := model.WritingTaskEntry{Task: "copy-paragraph", Text: "A longer text", RecognizedText: "A lnoger text", CreatedAt: time.Now()}

	total, err := svc.AppendWritingTasks(ctx, userID, []model.WritingTaskEntry{entryA})
	if err != nil {
		t.Fatalf("first append returned error: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected total 1 after first append, got %d", total)
	}

	total, err = svc.AppendWritingTasks(ctx, userID, []model.WritingTaskEntry{entryB})
	if err != nil {
		t.Fatalf("second append returned error: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected total 2 after second append, got %d", total)
	}

	stored, err := writing.FindByUser(ctx, userID)
	if err != nil {
		t.Fatalf("writing sample missing: %v", err)
	}
	if len(stored.WritingTasks) != 2 ||
		stored.WritingTasks[0].Task != "copy-sentence" ||
		stored.WritingTasks[1].Task != "copy-paragraph" {
		t.Fatalf("entries dropped or reordered: %+v", stored.WritingTasks)
	}
}

func TestAppendAudioTasksAccumulates(t *testing.T) {
	svc, userID, _, _, audio := newAssessmentFixture(t)
	ctx := context.Background()

	entry := model.AudioTaskEntry{Question: "Read this aloud", Transcription: "red this alowd", Emotions: []string{"neutral", "sad"}}
	for i := 0; i < 3; i++ {
		if _, err := svc.AppendAudioTasks(ctx, userID, []model.AudioTaskEntry{entry}); err != nil {
			t.Fatalf("append %d returned error: %v", i, err)
		}
	}

	stored, err := audio.FindByUser(ctx, userID)
	if err != nil {
		t.Fatalf("audio sample missing: %v", err)
	}
	// Duplicates accumulate; there is no dedup key.
	if len(stored.AudioTasks) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(stored.AudioTasks))
	}
}

func TestAppendRejectsEmptyInput(t *testing.T) {
	svc, userID, _, _, _ := newAssessmentFixture(t)
	ctx := context.Background()

	if _, err := svc.AppendWritingTasks(ctx, userID, nil); !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected ErrMissingField for empty entries, got %v", err)
	}
	if _, err := svc.AppendAudioTasks(ctx, "", []model.AudioTaskEntry{{}}); !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected ErrMissingField for empty user id, got %v", err)
	}
}
