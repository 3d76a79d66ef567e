package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/j22k/AI-Educationa-Platform-for-Students-with-LD/config"
	"github.com/j22k/AI-Educationa-Platform-for-Students-with-LD/internal/model"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// The capture collaborators. Each is a thin contract over an external model
// so handlers and tests never depend on the Gemini client directly.
type Analyzer interface {
	Analyze(ctx context.Context, payload string) (*model.DiagnosisResult, error)
}

type OCREngine interface {
	RecognizeText(ctx context.Context, image []byte, mimeType string) (string, error)
}

type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

type EmotionClassifier interface {
	ClassifyEmotion(ctx context.Context, image []byte, mimeType string) (string, error)
}

const ldSystemInstruction = `You are an advanced AI model designed to assess and analyze learning disabilities and emotional states in students. Your task is to generate a structured JSON output based on provided input, ensuring completeness, clarity, and adherence to the specified format. Your response must follow this exact JSON schema:

{
  "studentProfile": {
    "userID": "<unique_identifier>",
    "name": "<student_name>",
    "age": <age>,
    "relationship": "<Parent/Guardian/Teacher>",
    "preferredLearningStyle": ["<Visual/Auditory/Kinesthetic>"],
    "strengths": "<key strengths>",
    "struggles": "<key struggles>",
    "previousDiagnosis": "<any prior diagnosis>",
    "mainConcerns": "<primary concerns>",
    "previousSupport": "<any prior support received>"
  },
  "learningDisabilities": {
    "Dyslexia": {"confidenceScore": <float between 0 and 1>, "indicators": ["<symptom>", ...]},
    "Dysgraphia": {"confidenceScore": <float between 0 and 1>, "indicators": ["<symptom>", ...]},
    "Dyscalculia": {"confidenceScore": <float between 0 and 1>, "indicators": ["<symptom>", ...]}
  },
  "emotionAnalysis": {
    "dominantEmotions": ["<emotion>", ...],
    "emotionOccurrences": {"<emotion>": <count>, ...},
    "graphData": [{"emotion": "<emotion_name>", "count": <integer>}, ...]
  }
}

Assign confidence scores between 0.0 and 1.0 based on symptom strength and frequency. Extract dominant emotions and provide a count of occurrences for each detected emotion. Do not use placeholder text; populate every field with real data extracted from the given input. Ensure the output is valid JSON that can be directly parsed.`

type geminiService struct {
	analysisModel *genai.GenerativeModel
	visionModel   *genai.GenerativeModel
	cfg           *config.Config
}

// NewGeminiService builds every Gemini-backed collaborator from one client.
// A missing API key is tolerated at startup; calls then fail with
// ErrUpstreamService.
func NewGeminiService(cfg *config.Config) (Analyzer, OCREngine, Transcriber, EmotionClassifier, error) {
	s := &geminiService{cfg: cfg}
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Gemini-backed collaborators will be non-functional.")
		return s, s, s, s, nil
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}

	s.analysisModel = client.GenerativeModel("gemini-1.5-flash")
	s.analysisModel.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(ldSystemInstruction)},
	}

	s.visionModel = client.GenerativeModel("gemini-1.5-flash")
	return s, s, s, s, nil
}

// responseText flattens the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: model returned no content", ErrUpstreamService)
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("%w: model returned no text content", ErrUpstreamService)
	}
	return b.String(), nil
}

var markdownFence = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// stripMarkdownFence removes ```json fences the model tends to wrap its
// output in; text without fences passes through unchanged.
func stripMarkdownFence(raw string) string {
	if m := markdownFence.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	return strings.TrimSpace(raw)
}

func parseDiagnosisResult(raw string) (*model.DiagnosisResult, error) {
	var result model.DiagnosisResult
	if err := json.Unmarshal([]byte(stripMarkdownFence(raw)), &result); err != nil {
		return nil, fmt.Errorf("%w: unparseable analysis output: %v", ErrUpstreamService, err)
	}
	if err := ValidateDiagnosisResult(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *geminiService) Analyze(ctx context.Context, payload string) (*model.DiagnosisResult, error) {
	if s.analysisModel == nil {
		return nil, fmt.Errorf("%w: gemini client not initialized", ErrUpstreamService)
	}

	resp, err := s.analysisModel.GenerateContent(ctx, genai.Text(payload))
	if err != nil {
		log.Error().Err(err).Msg("Gemini API error during LD analysis")
		return nil, fmt.Errorf("%w: %v", ErrUpstreamService, err)
	}

	raw, err := responseText(resp)
	if err != nil {
		return nil, err
	}
	return parseDiagnosisResult(raw)
}

func (s *geminiService) RecognizeText(ctx context.Context, image []byte, mimeType string) (string, error) {
	if s.visionModel == nil {
		return "", fmt.Errorf("%w: gemini client not initialized", ErrUpstreamService)
	}

	prompt := "Transcribe all handwritten and printed text visible in this image. " +
		"Return only the recognized text, with words separated by single spaces. " +
		"Preserve misspellings, reversals, and malformed words exactly as written; do not correct them."

	resp, err := s.visionModel.GenerateContent(ctx,
		genai.ImageData(subtypeOf(mimeType), image),
		genai.Text(prompt),
	)
	if err != nil {
		log.Error().Err(err).Msg("Gemini API error during OCR")
		return "", fmt.Errorf("%w: %v", ErrUpstreamService, err)
	}

	text, err := responseText(resp)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (s *geminiService) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if s.visionModel == nil {
		return "", fmt.Errorf("%w: gemini client not initialized", ErrUpstreamService)
	}

	prompt := "Transcribe this recording verbatim. Return only the spoken words. " +
		"Preserve mispronunciations, hesitations rendered as words, and reading errors; do not clean them up."

	resp, err := s.visionModel.GenerateContent(ctx,
		genai.Blob{MIMEType: "audio/wav", Data: audio},
		genai.Text(prompt),
	)
	if err != nil {
		log.Error().Err(err).Msg("Gemini API error during transcription")
		return "", fmt.Errorf("%w: %v", ErrUpstreamService, err)
	}

	text, err := responseText(resp)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (s *geminiService) ClassifyEmotion(ctx context.Context, image []byte, mimeType string) (string, error) {
	if s.visionModel == nil {
		return "", fmt.Errorf("%w: gemini client not initialized", ErrUpstreamService)
	}

	prompt := "Classify the dominant facial emotion of the person in this image. " +
		"Answer with exactly one lowercase word from: angry, disgust, fear, happy, sad, surprise, neutral."

	resp, err := s.visionModel.GenerateContent(ctx,
		genai.ImageData(subtypeOf(mimeType), image),
		genai.Text(prompt),
	)
	if err != nil {
		log.Error().Err(err).Msg("Gemini API error during emotion classification")
		return "", fmt.Errorf("%w: %v", ErrUpstreamService, err)
	}

	text, err := responseText(resp)
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(text)), nil
}

// subtypeOf extracts the format genai.ImageData expects ("jpeg", "png")
// from a full MIME type.
func subtypeOf(mimeType string) string {
	if _, sub, ok := strings.Cut(mimeType, "/"); ok {
		return sub
	}
	return mimeType
}
