package handlers

import (
	"net/http"

	"github.com/skatejack/Journaling-Companion/internal/middleware"
	"github.com/skatejack/Journaling-Companion/internal/services"
)

type PromptResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Prompt  string `json:"prompt"`
}

// PromptHandler serves personalized writing prompts.
type PromptHandler struct {
	prompts *services.PromptService
}

func NewPromptHandler(prompts *services.PromptService) *PromptHandler {
	return &PromptHandler{prompts: prompts}
}

// GeneratePrompt returns a writing prompt tailored to the user's recent
// entries. Generation failures fall back to a canned prompt inside the
// service, so only storage failures surface as errors here.
func (h *PromptHandler) GeneratePrompt(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Success: false, Message: "Authentication required"})
		return
	}

	prompt, err := h.prompts.GeneratePrompt(r.Context(), userID)
	if err != nil {
		writeError(w, err, "generate prompt")
		return
	}

	writeJSON(w, http.StatusOK, PromptResponse{Success: true, Prompt: prompt})
}
