package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"interviewprep/internal/llm"
	"interviewprep/internal/middleware"
	"interviewprep/internal/models"
	"interviewprep/internal/parser"
	"interviewprep/internal/prompts"
	"interviewprep/internal/repositories"
	"interviewprep/internal/utils"
)

// ResumeHandler runs resume optimizations and serves stored results.
type ResumeHandler struct {
	provider llm.Provider
	prompts  prompts.PromptProvider
	repo     *repositories.ResumeRepository
	logger   *zap.Logger
}

func NewResumeHandler(provider llm.Provider, promptManager prompts.PromptProvider, repo *repositories.ResumeRepository, logger *zap.Logger) *ResumeHandler {
	return &ResumeHandler{provider: provider, prompts: promptManager, repo: repo, logger: logger}
}

type resumeOptimizeResponse struct {
	models.ResumeResponse
	Redirect string `json:"redirect"`
}

// OptimizeHandler runs one optimization and persists the parsed result. The
// stored row is what the results page reads back.
func (h *ResumeHandler) OptimizeHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.ResumeRequest](r)
	userID := middleware.UserID(r)

	if h.provider == nil {
		utils.JSONError(w, http.StatusServiceUnavailable, "AI service not available.")
		return
	}

	prompt, err := h.prompts.BuildPrompt(prompts.ModeResume, prompts.VariantDefault, map[string]string{
		"JobDescription": req.JobDescription,
		"ResumeText":     req.ResumeText,
	})
	if err != nil {
		h.logger.Error("failed to build resume prompt", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "An unexpected server error occurred. Please try again.")
		return
	}

	raw, err := h.provider.GenerateContent(r.Context(), prompt, llm.ResumeOptimization)
	if err != nil {
		h.logger.Error("resume optimization failed", zap.Uint("user_id", userID), zap.Error(err))
		switch llm.ErrorCode(err) {
		case llm.ErrCodeTimeout:
			utils.JSONError(w, http.StatusGatewayTimeout, "AI generation timed out. Please try again.")
		case llm.ErrCodeServiceDown:
			utils.JSONError(w, http.StatusInternalServerError, "AI Service Error: "+err.Error())
		default:
			utils.JSONError(w, http.StatusInternalServerError, "An unexpected server error occurred. Please try again.")
		}
		return
	}

	optimization := parser.ParseResumeOptimization(raw)
	if optimization.Incomplete() {
		h.logger.Warn("incomplete resume optimization", zap.Uint("user_id", userID))
		utils.JSONError(w, http.StatusInternalServerError, "AI did not generate a complete resume optimization. Please try again.")
		return
	}

	result := &models.ResumeResult{
		UserID:          userID,
		MatchScore:      optimization.MatchScore,
		SummaryMessage:  optimization.SummaryMessage,
		OptimizedResume: optimization.OptimizedResume,
		ChangesAnalysis: optimization.ChangesAnalysis,
	}
	result.SetImprovementsList(optimization.Improvements)
	if err := h.repo.Create(result); err != nil {
		h.logger.Error("failed to store resume result", zap.Uint("user_id", userID), zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Failed to save optimization result.")
		return
	}

	h.logger.Info("resume optimized", zap.Uint("user_id", userID), zap.Uint("result_id", result.ID))
	utils.JSON(w, http.StatusCreated, resumeOptimizeResponse{
		ResumeResponse: toResumeResponse(result),
		Redirect:       PathResumeResults,
	})
}

// ResultsHandler returns the user's most recent optimization.
func (h *ResumeHandler) ResultsHandler(w http.ResponseWriter, r *http.Request) {
	result, err := h.repo.GetLatestByUserID(middleware.UserID(r))
	if err != nil {
		if errors.Is(err, repositories.ErrResultNotFound) {
			utils.JSON(w, http.StatusNotFound, models.RedirectResponse{Redirect: PathResumeSetup})
			return
		}
		h.logger.Error("failed to load resume result", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "An unexpected server error occurred. Please try again.")
		return
	}
	utils.JSON(w, http.StatusOK, toResumeResponse(result))
}

func toResumeResponse(result *models.ResumeResult) models.ResumeResponse {
	improvements := result.ImprovementsList()
	if improvements == nil {
		improvements = []string{}
	}
	return models.ResumeResponse{
		MatchScore:      result.MatchScore,
		SummaryMessage:  result.SummaryMessage,
		Improvements:    improvements,
		OptimizedResume: result.OptimizedResume,
		ChangesAnalysis: result.ChangesAnalysis,
	}
}
