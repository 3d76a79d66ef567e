package assessment

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/j22k/AI-Educationa-Platform-for-Students-with-LD/config"
	"github.com/j22k/AI-Educationa-Platform-for-Students-with-LD/internal/dto"
	"github.com/j22k/AI-Educationa-Platform-for-Students-with-LD/internal/model"
	"github.com/j22k/AI-Educationa-Platform-for-Students-with-LD/internal/service"
	"github.com/rs/zerolog/log"
)

// AssessmentController serves the capture, aggregation and diagnosis
// endpoints under /users.
type AssessmentController struct {
	authSvc       service.AuthService
	assessmentSvc service.AssessmentService
	aggregatorSvc service.AggregatorService
	diagnosisSvc  service.DiagnosisService
	ocr           service.OCREngine
	transcriber   service.Transcriber
	classifier    service.EmotionClassifier
	analyzer      service.Analyzer
	emotions      *service.EmotionTracker
	cfg           *config.Config
}

func NewAssessmentController(
	authSvc service.AuthService,
	assessmentSvc service.AssessmentService,
	aggregatorSvc service.AggregatorService,
	diagnosisSvc service.DiagnosisService,
	ocr service.OCREngine,
	transcriber service.Transcriber,
	classifier service.EmotionClassifier,
	analyzer service.Analyzer,
	emotions *service.EmotionTracker,
	cfg *config.Config,
) *AssessmentController {
	return &AssessmentController{
		authSvc:       authSvc,
		assessmentSvc: assessmentSvc,
		aggregatorSvc: aggregatorSvc,
		diagnosisSvc:  diagnosisSvc,
		ocr:           ocr,
		transcriber:   transcriber,
		classifier:    classifier,
		analyzer:      analyzer,
		emotions:      emotions,
		cfg:           cfg,
	}
}

// statusFor maps service sentinels to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrMissingField), errors.Is(err, service.ErrInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrUpstreamService):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error, message string) {
	c.JSON(statusFor(err), dto.StatusResponse{Status: false, Message: message})
}

func readUpload(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// CheckDiagnosed godoc
// @Summary Read a user's diagnosed flag
// @Tags users
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} dto.DiagnosedResponse
// @Failure 404 {object} dto.StatusResponse "User not found"
// @Router /users/checkdiagnosed/{user_id} [get]
func (ctrl *AssessmentController) CheckDiagnosed(c *gin.Context) {
	diagnosed, err := ctrl.authSvc.IsDiagnosed(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		log.Warn().Err(err).Str("userID", c.Param("user_id")).Msg("CheckDiagnosed failed")
		fail(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, dto.DiagnosedResponse{IsDiagnosed: diagnosed})
}

// CheckAssessed godoc
// @Summary Check whether a user has submitted the intake survey
// @Tags users
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} dto.AssessedResponse
// @Failure 500 {object} dto.StatusResponse "Storage failure"
// @Router /users/checkassessed/{user_id} [get]
func (ctrl *AssessmentController) CheckAssessed(c *gin.Context) {
	assessed, err := ctrl.assessmentSvc.HasSurvey(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		log.Error().Err(err).Str("userID", c.Param("user_id")).Msg("CheckAssessed failed")
		fail(c, err, "Error checking assessment status")
		return
	}
	c.JSON(http.StatusOK, dto.AssessedResponse{IsAssessed: assessed})
}

// SubmitAssessment godoc
// @Summary Submit the intake survey
// @Description Stores the questionnaire payload. Accepted at most once per user.
// @Tags users
// @Accept json
// @Produce json
// @Param assessment body dto.SubmitAssessmentRequest true "Survey payload"
// @Success 200 {object} dto.StatusResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.StatusResponse "User not found"
// @Failure 409 {object} dto.StatusResponse "Assessment already exists"
// @Router /users/submitassesment [post]
func (ctrl *AssessmentController) SubmitAssessment(c *gin.Context) {
	var req dto.SubmitAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	err := ctrl.assessmentSvc.RecordSurvey(c.Request.Context(), req.UserID, req.AssessmentData)
	if errors.Is(err, service.ErrAlreadyExists) {
		fail(c, err, "Assessment already exists for this user")
		return
	}
	if errors.Is(err, service.ErrUserNotFound) {
		fail(c, err, "User not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("userID", req.UserID).Msg("SubmitAssessment failed")
		fail(c, err, "Error saving assessment data")
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Status: true, Message: "Assessment data saved successfully"})
}

// DysgraphiaImage godoc
// @Summary Append a writing-task capture
// @Description Runs OCR on the uploaded handwriting photo and appends the task to the user's writing sample.
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Handwriting photo"
// @Param task formData string true "Task label"
// @Param text formData string true "Prompt text the user was asked to write"
// @Param user_id formData string true "User ID"
// @Success 200 {object} dto.WritingTaskResponse
// @Failure 400 {object} dto.StatusResponse "Missing field"
// @Failure 502 {object} dto.StatusResponse "OCR failure"
// @Router /users/dysgraphia_image [post]
func (ctrl *AssessmentController) DysgraphiaImage(c *gin.Context) {
	userID := c.PostForm("user_id")
	task := c.PostForm("task")
	text := c.PostForm("text")
	file, err := c.FormFile("image")
	if userID == "" || task == "" || err != nil {
		fail(c, service.ErrMissingField, "image, task and user_id are required")
		return
	}

	image, err := readUpload(file)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded writing image")
		fail(c, err, "Error reading uploaded image")
		return
	}

	recognized, err := ctrl.ocr.RecognizeText(c.Request.Context(), image, http.DetectContentType(image))
	if err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("OCR failed")
		fail(c, err, "Text recognition failed")
		return
	}

	entry := model.WritingTaskEntry{
		Task:           task,
		Text:           text,
		RecognizedText: recognized,
		CreatedAt:      time.Now().UTC(),
	}
	total, err := ctrl.assessmentSvc.AppendWritingTasks(c.Request.Context(), userID, []model.WritingTaskEntry{entry})
	if err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("Failed to append writing task")
		fail(c, err, "Error adding writing data")
		return
	}

	c.JSON(http.StatusOK, dto.WritingTaskResponse{
		Status:         true,
		Message:        "Writing data added successfully",
		Task:           task,
		RecognizedText: recognized,
		TaskCount:      total,
	})
}

// DyslexiaAudio godoc
// @Summary Append an audio-task capture
// @Description Stores the uploaded WAV recording, transcribes it, and appends the task with the recent emotion snapshot.
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param audio formData file true "PCM WAV recording"
// @Param question formData string true "Question the user read aloud"
// @Param userID formData string true "User ID"
// @Success 200 {object} dto.AudioTaskResponse
// @Failure 400 {object} dto.StatusResponse "Missing field or non-WAV audio"
// @Failure 502 {object} dto.StatusResponse "Transcription failure"
// @Router /users/dyslexia_audio [post]
func (ctrl *AssessmentController) DyslexiaAudio(c *gin.Context) {
	userID := c.PostForm("userID")
	question := c.PostForm("question")
	file, err := c.FormFile("audio")
	if userID == "" || question == "" || err != nil {
		fail(c, service.ErrMissingField, "audio, question and userID are required")
		return
	}

	audio, err := readUpload(file)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded audio")
		fail(c, err, "Error reading uploaded audio")
		return
	}
	if err := service.ValidatePCMWAV(audio); err != nil {
		fail(c, err, "Recording must be a PCM WAV file")
		return
	}

	filename := uuid.NewString() + ".wav"
	if err := os.MkdirAll(ctrl.cfg.UploadDir, 0o755); err == nil {
		if err := os.WriteFile(filepath.Join(ctrl.cfg.UploadDir, filename), audio, 0o644); err != nil {
			log.Warn().Err(err).Str("filename", filename).Msg("Failed to persist audio upload")
		}
	}

	transcription, err := ctrl.transcriber.Transcribe(c.Request.Context(), audio)
	if err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("Transcription failed")
		fail(c, err, "Transcription failed")
		return
	}

	entry := model.AudioTaskEntry{
		Question:      question,
		Transcription: transcription,
		Emotions:      ctrl.emotions.Snapshot(userID),
		CreatedAt:     time.Now().UTC(),
	}
	if _, err := ctrl.assessmentSvc.AppendAudioTasks(c.Request.Context(), userID, []model.AudioTaskEntry{entry}); err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("Failed to append audio task")
		fail(c, err, "Error adding audio data")
		return
	}

	c.JSON(http.StatusOK, dto.AudioTaskResponse{
		Success:       true,
		Filename:      filename,
		Transcription: transcription,
		Expected:      question,
	})
}

// FaceDetection godoc
// @Summary Classify the emotion on a webcam frame
// @Description Labels the uploaded frame and records it in the user's recent-emotion ring.
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Webcam frame"
// @Param userID formData string true "User ID"
// @Success 200 {object} dto.EmotionResponse
// @Failure 400 {object} dto.StatusResponse "Missing field"
// @Failure 502 {object} dto.StatusResponse "Classifier failure"
// @Router /users/facedetection [post]
func (ctrl *AssessmentController) FaceDetection(c *gin.Context) {
	userID := c.PostForm("userID")
	file, err := c.FormFile("image")
	if userID == "" || err != nil {
		fail(c, service.ErrMissingField, "image and userID are required")
		return
	}

	image, err := readUpload(file)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded frame")
		fail(c, err, "Error reading uploaded image")
		return
	}

	emotion, err := ctrl.classifier.ClassifyEmotion(c.Request.Context(), image, http.DetectContentType(image))
	if err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("Emotion classification failed")
		fail(c, err, "Emotion classification failed")
		return
	}

	ctrl.emotions.Record(userID, emotion)
	c.JSON(http.StatusOK, dto.EmotionResponse{Emotion: emotion})
}

// LDIdentification godoc
// @Summary Run the learning-disability analysis
// @Description Aggregates the user's survey, writing and audio data, sends it to the analysis model, and persists the structured result.
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.IdentificationRequest true "User to analyze"
// @Success 200 {object} dto.IdentificationResponse
// @Failure 404 {object} dto.StatusResponse "No assessment data found"
// @Failure 502 {object} dto.StatusResponse "Analysis model failure"
// @Router /users/ld_identification [post]
func (ctrl *AssessmentController) LDIdentification(c *gin.Context) {
	var req dto.IdentificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	view, err := ctrl.aggregatorSvc.Collect(c.Request.Context(), req.UserID)
	if errors.Is(err, service.ErrNotFound) {
		fail(c, err, "No assessment data found for this user")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("userID", req.UserID).Msg("Aggregation failed")
		fail(c, err, "Error retrieving assessment data")
		return
	}

	payload, err := buildAnalysisPayload(req.UserID, view)
	if err != nil {
		log.Error().Err(err).Str("userID", req.UserID).Msg("Failed to encode analysis payload")
		fail(c, err, "Error preparing analysis payload")
		return
	}

	result, err := ctrl.analyzer.Analyze(c.Request.Context(), payload)
	if err != nil {
		log.Error().Err(err).Str("userID", req.UserID).Msg("LD analysis failed")
		fail(c, err, "Analysis failed")
		return
	}

	id, err := ctrl.diagnosisSvc.Save(c.Request.Context(), req.UserID, result)
	if err != nil {
		log.Error().Err(err).Str("userID", req.UserID).Msg("Failed to save diagnosis result")
		fail(c, err, "Error saving analysis result")
		return
	}

	// A completed run consumes the emotion window.
	ctrl.emotions.Reset(req.UserID)

	c.JSON(http.StatusOK, dto.IdentificationResponse{
		Status:     true,
		Message:    "Model response saved successfully",
		InsertedID: id,
		Result:     result,
	})
}

// AssessmentResult godoc
// @Summary Fetch the stored diagnosis result
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.AssessmentResultRequest true "User to look up"
// @Success 200 {object} model.DiagnosisResult
// @Failure 404 {object} dto.StatusResponse "No result found"
// @Router /users/assessmentresult [post]
func (ctrl *AssessmentController) AssessmentResult(c *gin.Context) {
	var req dto.AssessmentResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	result, err := ctrl.diagnosisSvc.Fetch(c.Request.Context(), req.UserID)
	if err != nil {
		log.Warn().Err(err).Str("userID", req.UserID).Msg("AssessmentResult lookup failed")
		fail(c, err, "No assessment result found for this user")
		return
	}
	c.JSON(http.StatusOK, result)
}

// buildAnalysisPayload renders the aggregate view as the user-turn text for
// the analysis model. The schema itself lives in the model's system
// instruction.
func buildAnalysisPayload(userID string, view *model.AggregateView) (string, error) {
	doc := map[string]any{
		"userID":       userID,
		"history":      view.History,
		"writingTasks": view.WritingTasks,
		"audioTask":    view.AudioTasks,
	}
	encoded, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Assess the following student data and respond with the structured JSON report.\n\n%s", encoded), nil
}
