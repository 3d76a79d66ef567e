package dto

import (
	"github.com/j22k/AI-Educationa-Platform-for-Students-with-LD/internal/model"
)

// StatusResponse is the common {status, message} envelope the capture
// client checks on every mutation.
type StatusResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

// ErrorResponse is used for malformed requests rejected before any service
// call runs.
type ErrorResponse struct {
	Error string `json:"error"`
}

type AuthResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	UserID  string `json:"userId,omitempty"`
	Name    string `json:"name,omitempty"`
	Token   string `json:"token,omitempty"`
}

type DiagnosedResponse struct {
	IsDiagnosed bool `json:"isDiagnosed"`
}

type AssessedResponse struct {
	IsAssessed bool `json:"isAssessed"`
}

type WritingTaskResponse struct {
	Status         bool   `json:"status"`
	Message        string `json:"message"`
	Task           string `json:"task"`
	RecognizedText string `json:"recognized_text"`
	TaskCount      int    `json:"taskCount"`
}

type AudioTaskResponse struct {
	Success       bool   `json:"success"`
	Filename      string `json:"filename"`
	Transcription string `json:"transcription"`
	Expected      string `json:"expected"`
}

type EmotionResponse struct {
	Emotion string `json:"emotion"`
}

type IdentificationResponse struct {
	Status     bool                   `json:"status"`
	Message    string                 `json:"message"`
	InsertedID string                 `json:"insertedId"`
	Result     *model.DiagnosisResult `json:"result"`
}
