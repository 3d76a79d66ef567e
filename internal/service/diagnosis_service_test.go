package service

import (
	"context"
	"errors"
	"testing"

	"github.com/j22k/AI-Educationa-Platform-for-Students-with-LD/internal/model"
	"github.com/j22k/AI-Educationa-Platform-for-Students-with-LD/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubDiagnosisRepo struct {
	byUser map[string][]*model.DiagnosisResult
}

func newStubDiagnosisRepo() *stubDiagnosisRepo {
	return &stubDiagnosisRepo{byUser: map[string][]*model.DiagnosisResult{}}
}

func (s *stubDiagnosisRepo) Insert(_ context.Context, result *model.DiagnosisResult) (string, error) {
	if result.ID.IsZero() {
		result.ID = primitive.NewObjectID()
	}
	cp := *result
	s.byUser[result.UserID] = append(s.byUser[result.UserID], &cp)
	return cp.ID.Hex(), nil
}

func (s *stubDiagnosisRepo) FindLatestByUser(_ context.Context, userID string) (*model.DiagnosisResult, error) {
	list := s.byUser[userID]
	if len(list) == 0 {
		return nil, repository.ErrNotFound
	}
	latest := list[0]
	for _, r := range list[1:] {
		if r.CreatedAt.After(latest.CreatedAt) {
			latest = r
		}
	}
	cp := *latest
	return &cp, nil
}

func wellFormedResult() *model.DiagnosisResult {
	return &model.DiagnosisResult{
		LearningDisabilities: map[string]model.DisorderFinding{
			"Dyslexia":   {ConfidenceScore: 0.8, Indicators: []string{"letter reversal"}},
			"Dysgraphia": {ConfidenceScore: 0.3, Indicators: []string{}},
		},
		EmotionAnalysis: model.EmotionAnalysis{
			DominantEmotions:   []string{"sad"},
			EmotionOccurrences: map[string]int{"sad": 3, "happy": 1},
			GraphData:          []model.EmotionCount{{Emotion: "sad", Count: 3}},
		},
	}
}

func newDiagnosisFixture(t *testing.T) (DiagnosisService, *stubUserRepo, string, *stubDiagnosisRepo) {
	t.Helper()
	users := newStubUserRepo()
	auth := NewAuthService(users, testSigner)
	res, err := auth.Signup(context.Background(), "Alice", "alice@x.com", "pw1")
	if err != nil {
		t.Fatalf("fixture signup failed: %v", err)
	}
	results := newStubDiagnosisRepo()
	return NewDiagnosisService(users, results), users, res.UserID, results
}

func TestSaveSetsDiagnosedFlag(t *testing.T) {
	svc, users, userID, _ := newDiagnosisFixture(t)
	ctx := context.Background()

	id, err := svc.Save(ctx, userID, wellFormedResult())
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if id == "" {
		t.Fatal("Save returned empty record id")
	}

	u, err := users.FindByID(ctx, userID)
	if err != nil {
		t.Fatalf("user lookup failed: %v", err)
	}
	if !u.IsDiagnosed {
		t.Fatal("isDiagnosed not set after Save")
	}
}

func TestSaveLinksResultToUser(t *testing.T) {
	svc, _, userID, results := newDiagnosisFixture(t)

	if _, err := svc.Save(context.Background(), userID, wellFormedResult()); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	stored := results.byUser[userID]
	if len(stored) != 1 {
		t.Fatalf("expected 1 stored result, got %d", len(stored))
	}
	if stored[0].UserID != userID || stored[0].StudentProfile.UserID != userID {
		t.Fatalf("result not linked to user: %+v", stored[0])
	}
	if stored[0].CreatedAt.IsZero() {
		t.Fatal("CreatedAt not stamped")
	}
}

func TestSaveRejectsMalformedResults(t *testing.T) {
	svc, _, userID, _ := newDiagnosisFixture(t)
	ctx := context.Background()

	overConfident := wellFormedResult()
	overConfident.LearningDisabilities["Dyslexia"] = model.DisorderFinding{ConfidenceScore: 1.4}

	noEmotions := wellFormedResult()
	noEmotions.EmotionAnalysis = model.EmotionAnalysis{}

	cases := []struct {
		name   string
		result *model.DiagnosisResult
	}{
		{"nil result", nil},
		{"no disorders", &model.DiagnosisResult{EmotionAnalysis: wellFormedResult().EmotionAnalysis}},
		{"confidence out of range", overConfident},
		{"missing emotion analysis", noEmotions},
	}
	for _, tc := range cases {
		if _, err := svc.Save(ctx, userID, tc.result); !errors.Is(err, ErrUpstreamService) {
			t.Fatalf("%s: expected ErrUpstreamService, got %v", tc.name, err)
		}
	}
}

func TestSaveUnknownUser(t *testing.T) {
	svc, _, _, _ := newDiagnosisFixture(t)
	ctx := context.Background()

	missing := primitive.NewObjectID().Hex()
	if _, err := svc.Save(ctx, missing, wellFormedResult()); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.Save(ctx, "not-an-id", wellFormedResult()); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestFetchReturnsLatest(t *testing.T) {
	svc, _, userID, _ := newDiagnosisFixture(t)
	ctx := context.Background()

	first := wellFormedResult()
	second := wellFormedResult()
	second.LearningDisabilities["Dyscalculia"] = model.DisorderFinding{ConfidenceScore: 0.6}

	if _, err := svc.Save(ctx, userID, first); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	if _, err := svc.Save(ctx, userID, second); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	got, err := svc.Fetch(ctx, userID)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if _, ok := got.LearningDisabilities["Dyscalculia"]; !ok {
		t.Fatalf("Fetch did not return the latest result: %+v", got.LearningDisabilities)
	}
}

func TestFetchWithoutResults(t *testing.T) {
	svc, _, userID, _ := newDiagnosisFixture(t)

	if _, err := svc.Fetch(context.Background(), userID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
