package dto

type SignupRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SubmitAssessmentRequest carries the intake questionnaire. The payload is
// free-form; the form builds it client-side and the analysis model consumes
// it verbatim.
type SubmitAssessmentRequest struct {
	UserID         string         `json:"userId" binding:"required"`
	AssessmentData map[string]any `json:"assessmentData" binding:"required"`
}

// IdentificationRequest triggers the aggregate-and-analyze flow.
type IdentificationRequest struct {
	UserID string `json:"userID" binding:"required"`
}

type AssessmentResultRequest struct {
	UserID string `json:"userID" binding:"required"`
}
