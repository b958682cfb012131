package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"ai-interview-server/internal/api"
	"ai-interview-server/internal/auth"
	"ai-interview-server/internal/interview"
	"ai-interview-server/internal/metrics"
	"ai-interview-server/internal/progress"
	"ai-interview-server/internal/resume"
	"ai-interview-server/internal/storage"

	"github.com/gin-gonic/gin"
)

// Transcriber is the audio side of the AI gateway.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader) (string, error)
}

// ImageStore is the slice of the session store backing profile images.
type ImageStore interface {
	GetImage(ctx context.Context, username string) (*storage.ProfileImage, error)
	SaveImage(ctx context.Context, username, image string) error
}

// Handler holds the HTTP handlers with their injected dependencies.
type Handler struct {
	logger      *slog.Logger
	auth        *auth.Service
	interview   *interview.Service
	progress    *progress.Service
	resume      *resume.Service
	transcriber Transcriber
	images      ImageStore
	metrics     *metrics.Metrics
}

func NewHandler(
	logger *slog.Logger,
	authService *auth.Service,
	interviewService *interview.Service,
	progressService *progress.Service,
	resumeService *resume.Service,
	transcriber Transcriber,
	images ImageStore,
	m *metrics.Metrics,
) *Handler {
	return &Handler{
		logger:      logger,
		auth:        authService,
		interview:   interviewService,
		progress:    progressService,
		resume:      resumeService,
		transcriber: transcriber,
		images:      images,
		metrics:     m,
	}
}

// Signup handles POST /api/signup.
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "username and password are required"})
		return
	}

	err := h.auth.Signup(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, auth.ErrUsernameTaken) {
		c.JSON(http.StatusConflict, ErrorResponse{Error: "username already taken"})
		return
	}
	if err != nil {
		h.serverError(c, "signup failed", err)
		return
	}

	h.metrics.IncrementSignups()
	h.logger.Info("account created", "username", req.Username)
	c.JSON(http.StatusCreated, MessageResponse{Message: "account created"})
}

// Signin handles POST /api/signin.
func (h *Handler) Signin(c *gin.Context) {
	var req SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "username and password are required"})
		return
	}

	token, err := h.auth.Signin(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid username or password"})
		return
	}
	if err != nil {
		h.serverError(c, "signin failed", err)
		return
	}

	c.JSON(http.StatusOK, SigninResponse{Token: token})
}

// NextQuestion handles POST /api/interview/next.
func (h *Handler) NextQuestion(c *gin.Context) {
	var req NextQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "domain is required"})
		return
	}

	username := c.GetString(usernameKey)
	question, err := h.interview.NextQuestion(c.Request.Context(), username, req.Domain)
	if err != nil {
		h.interviewError(c, username, err)
		return
	}

	c.JSON(http.StatusOK, question)
}

// RecordAnswer handles POST /api/interview/answer.
func (h *Handler) RecordAnswer(c *gin.Context) {
	var req RecordAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "answer is required"})
		return
	}

	username := c.GetString(usernameKey)
	err := h.interview.RecordAnswer(c.Request.Context(), username, req.Answer)
	if errors.Is(err, interview.ErrNoActiveQuestion) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no active question for the user"})
		return
	}
	if err != nil {
		h.serverError(c, "recording answer failed", err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "answer recorded"})
}

// ResetSession handles POST /api/interview/reset.
func (h *Handler) ResetSession(c *gin.Context) {
	username := c.GetString(usernameKey)
	if err := h.interview.ResetSession(c.Request.Context(), username); err != nil {
		h.serverError(c, "resetting session failed", err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "session reset"})
}

// ComputeScore handles POST /api/interview/score.
func (h *Handler) ComputeScore(c *gin.Context) {
	username := c.GetString(usernameKey)
	report, err := h.interview.ComputeScore(c.Request.Context(), username)
	if errors.Is(err, interview.ErrNoTranscript) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no interview responses found for the user"})
		return
	}
	if err != nil {
		h.interviewError(c, username, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// CheckProgress handles GET /api/progress.
func (h *Handler) CheckProgress(c *gin.Context) {
	username := c.GetString(usernameKey)
	report, err := h.progress.Analyze(c.Request.Context(), username)
	if err != nil {
		h.interviewError(c, username, err)
		return
	}

	c.JSON(http.StatusOK, ProgressResponse{
		ValidUser:  true,
		Scores:     report.Scores,
		Suggestion: report.Suggestion,
	})
}

// GetImage handles GET /api/profile/image.
func (h *Handler) GetImage(c *gin.Context) {
	username := c.GetString(usernameKey)
	img, err := h.images.GetImage(c.Request.Context(), username)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no profile image"})
		return
	}
	if err != nil {
		h.serverError(c, "loading image failed", err)
		return
	}

	c.JSON(http.StatusOK, ImageResponse{Image: img.Image})
}

// SetImage handles PUT /api/profile/image.
func (h *Handler) SetImage(c *gin.Context) {
	var req SetImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "image is required"})
		return
	}

	username := c.GetString(usernameKey)
	if err := h.images.SaveImage(c.Request.Context(), username, req.Image); err != nil {
		h.serverError(c, "saving image failed", err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "image saved"})
}

// Transcribe handles POST /api/transcribe. Expects a multipart form with an
// "audio" file field.
func (h *Handler) Transcribe(c *gin.Context) {
	file, _, err := c.Request.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "audio file is required"})
		return
	}
	defer file.Close()

	text, err := h.transcriber.Transcribe(c.Request.Context(), file)
	if err != nil {
		h.interviewError(c, c.GetString(usernameKey), err)
		return
	}

	h.metrics.IncrementTranscriptions()
	c.JSON(http.StatusOK, TranscribeResponse{Text: text})
}

// CritiqueResume handles POST /api/resume/critique.
func (h *Handler) CritiqueResume(c *gin.Context) {
	var req ResumeCritiqueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "resume_text is required"})
		return
	}

	critique, err := h.resume.Critique(c.Request.Context(), req.ResumeText)
	if errors.Is(err, resume.ErrEmptyResume) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "resume_text is required"})
		return
	}
	if err != nil {
		h.interviewError(c, c.GetString(usernameKey), err)
		return
	}

	c.JSON(http.StatusOK, ResumeCritiqueResponse{Critique: critique})
}

// Health handles GET /api/health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, MessageResponse{Message: "ok"})
}

// Metrics handles GET /api/metrics.
func (h *Handler) Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, h.metrics.GetSnapshot())
}

// interviewError maps state-machine and gateway failures to HTTP statuses.
func (h *Handler) interviewError(c *gin.Context, username string, err error) {
	switch {
	case errors.Is(err, interview.ErrEmptyDomain):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "domain is required"})
	case errors.Is(err, api.ErrTimeout):
		h.logger.Error("gateway timeout", "username", username, "error", err)
		c.JSON(http.StatusGatewayTimeout, ErrorResponse{Error: "AI provider timed out"})
	case errors.Is(err, api.ErrMalformedResponse):
		h.logger.Error("malformed gateway response", "username", username, "error", err)
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "AI provider returned an unusable response"})
	case errors.Is(err, api.ErrProvider):
		h.logger.Error("gateway request failed", "username", username, "error", err)
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "AI provider request failed"})
	default:
		h.serverError(c, "request failed", err)
	}
}

func (h *Handler) serverError(c *gin.Context, msg string, err error) {
	h.logger.Error(msg, "error", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}
