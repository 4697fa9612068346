package handlers

import (
	"net/http"

	"interviewprep/internal/llm"
	"interviewprep/internal/utils"
)

// HealthHandler reports liveness and readiness. Readiness degrades when the
// LLM provider failed to initialize, since generation is the core function.
type HealthHandler struct {
	provider llm.Provider
}

func NewHealthHandler(provider llm.Provider) *HealthHandler {
	return &HealthHandler{provider: provider}
}

func (h *HealthHandler) HealthzHandler(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *HealthHandler) ReadyzHandler(w http.ResponseWriter, r *http.Request) {
	if h.provider == nil {
		utils.JSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "degraded",
			"reason": "AI provider not initialized",
		})
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
