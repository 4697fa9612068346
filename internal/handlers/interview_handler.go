package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"interviewprep/internal/llm"
	"interviewprep/internal/middleware"
	"interviewprep/internal/models"
	"interviewprep/internal/session"
	"interviewprep/internal/utils"
)

// Frontend page paths used in redirect hints.
const (
	PathCoachSetup      = "/interview-coach"
	PathCoachQuestions  = "/interview-question-display"
	PathPracticeSetup   = "/practice-interview"
	PathPracticeResults = "/practice-results"
	PathResumeSetup     = "/resume-optimizer"
	PathResumeResults   = "/resume-optimizer-results"
)

// InterviewHandler serves the coach and practice flows on top of the session
// protocol service.
type InterviewHandler struct {
	svc    *session.Service
	logger *zap.Logger
}

func NewInterviewHandler(svc *session.Service, logger *zap.Logger) *InterviewHandler {
	return &InterviewHandler{svc: svc, logger: logger}
}

// StartCoachHandler creates a coach session and generates its first question
// inline, mirroring the original setup flow.
func (h *InterviewHandler) StartCoachHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.SessionSetupRequest](r)
	userID := middleware.UserID(r)

	sess, err := h.svc.Start(userID, models.SessionTypeCoach, *req)
	if err != nil {
		h.logger.Error("failed to start coach session", zap.Uint("user_id", userID), zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Failed to start a new session.")
		return
	}

	record, err := h.svc.GetQuestion(r.Context(), sess.ID, models.SessionTypeCoach, 0)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	index := 0
	utils.JSON(w, http.StatusCreated, models.SessionStartResponse{
		SessionID:   sess.ID,
		JobPosition: sess.JobPosition,
		Redirect:    PathCoachQuestions,
		Question:    record.Question,
		Answer:      record.Answer,
		Index:       &index,
		Total:       models.MaxCoachQuestions,
	})
}

// CoachQuestionHandler serves question index for the active coach session,
// generating the next one on demand. Coach mode exposes the ideal answer.
func (h *InterviewHandler) CoachQuestionHandler(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		utils.JSONError(w, http.StatusNotFound, "Invalid question index requested.")
		return
	}

	sess, err := h.svc.ActiveSession(middleware.UserID(r), models.SessionTypeCoach)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	record, err := h.svc.GetQuestion(r.Context(), sess.ID, models.SessionTypeCoach, index)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, models.QuestionResponse{
		Question: record.Question,
		Answer:   record.Answer,
		Index:    index,
		Total:    models.MaxCoachQuestions,
	})
}

// StartPracticeHandler creates a practice session; questions are generated
// lazily from the first question fetch.
func (h *InterviewHandler) StartPracticeHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.SessionSetupRequest](r)
	userID := middleware.UserID(r)

	sess, err := h.svc.Start(userID, models.SessionTypePractice, *req)
	if err != nil {
		h.logger.Error("failed to start practice session", zap.Uint("user_id", userID), zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Failed to start a new session.")
		return
	}

	utils.JSON(w, http.StatusCreated, models.SessionStartResponse{
		SessionID:   sess.ID,
		JobPosition: sess.JobPosition,
		Redirect:    PathPracticeSetup,
	})
}

// PracticeQuestionHandler serves question index for the active practice
// session. The ideal answer is withheld until results.
func (h *InterviewHandler) PracticeQuestionHandler(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		utils.JSONError(w, http.StatusNotFound, "Invalid practice question index requested.")
		return
	}

	sess, err := h.svc.ActiveSession(middleware.UserID(r), models.SessionTypePractice)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	record, err := h.svc.GetQuestion(r.Context(), sess.ID, models.SessionTypePractice, index)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, models.QuestionResponse{
		Question: record.Question,
		Index:    index,
		Total:    models.MaxPracticeQuestions,
	})
}

// EvaluateHandler stores the user's answer, returns per-answer feedback, and
// signals the transition to results when the session becomes complete.
func (h *InterviewHandler) EvaluateHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.EvaluateRequest](r)
	userID := middleware.UserID(r)

	sess, err := h.svc.ActiveSession(userID, models.SessionTypePractice)
	if err != nil {
		if errors.Is(err, session.ErrNoActiveSession) || errors.Is(err, session.ErrSessionMismatch) {
			utils.JSON(w, http.StatusBadRequest, models.RedirectResponse{Redirect: PathPracticeSetup})
			return
		}
		h.writeSessionError(w, err)
		return
	}

	feedback, complete, err := h.svc.Evaluate(r.Context(), sess.ID, *req.Index, req.UserAnswer)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	if complete {
		utils.JSON(w, http.StatusOK, models.RedirectResponse{Redirect: PathPracticeResults})
		return
	}
	utils.JSON(w, http.StatusOK, models.EvaluationResponse{
		Message:  "Answer evaluated successfully.",
		Feedback: feedback,
	})
}

// ResultsHandler performs the one-shot aggregate assessment for a completed
// practice session. Incomplete or missing sessions are sent back to setup.
func (h *InterviewHandler) ResultsHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc.ActiveSession(middleware.UserID(r), models.SessionTypePractice)
	if err != nil {
		if errors.Is(err, session.ErrNoActiveSession) || errors.Is(err, session.ErrSessionMismatch) {
			utils.JSON(w, http.StatusNotFound, models.RedirectResponse{Redirect: PathPracticeSetup})
			return
		}
		h.writeSessionError(w, err)
		return
	}

	results, err := h.svc.Results(r.Context(), sess.ID)
	if err != nil {
		if errors.Is(err, session.ErrSessionIncomplete) || errors.Is(err, session.ErrNoActiveSession) {
			utils.JSON(w, http.StatusNotFound, models.RedirectResponse{Redirect: PathPracticeSetup})
			return
		}
		h.writeSessionError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, results)
}

// writeSessionError maps protocol and provider failures onto the HTTP error
// contract: validation 400, missing data 404, timeout 504, provider down 503,
// everything else a logged 500.
func (h *InterviewHandler) writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrNoActiveSession):
		utils.JSONError(w, http.StatusBadRequest, "No active session found. Please start a new one.")
	case errors.Is(err, session.ErrSessionMismatch):
		utils.JSONError(w, http.StatusBadRequest, "Session not found or invalid. Please start a new one.")
	case errors.Is(err, session.ErrLimitReached):
		utils.JSONError(w, http.StatusBadRequest, "Maximum questions reached.")
	case errors.Is(err, session.ErrIndexOutOfRange):
		utils.JSONError(w, http.StatusNotFound, "Invalid question index requested.")
	case errors.Is(err, session.ErrQuestionNotFound):
		utils.JSONError(w, http.StatusNotFound, "Question data not found for evaluation.")
	case errors.Is(err, session.ErrProviderUnavailable):
		utils.JSONError(w, http.StatusServiceUnavailable, "AI service not available.")
	case errors.Is(err, session.ErrMalformedResponse):
		utils.JSONError(w, http.StatusInternalServerError, "Failed to generate a response. AI output was malformed.")
	default:
		switch llm.ErrorCode(err) {
		case llm.ErrCodeTimeout:
			utils.JSONError(w, http.StatusGatewayTimeout, "AI generation timed out. Please try again.")
		case llm.ErrCodeServiceDown:
			utils.JSONError(w, http.StatusInternalServerError, "AI Service Error: "+err.Error())
		default:
			h.logger.Error("unexpected error", zap.Error(err))
			utils.JSONError(w, http.StatusInternalServerError, "An unexpected server error occurred. Please try again.")
		}
	}
}
