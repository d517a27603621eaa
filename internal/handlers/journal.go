package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/skatejack/Journaling-Companion/internal/middleware"
	"github.com/skatejack/Journaling-Companion/internal/models"
	"github.com/skatejack/Journaling-Companion/internal/services"
)

type CreateEntryRequest struct {
	Content string      `json:"content"`
	Mood    models.Mood `json:"mood"`
	Prompt  string      `json:"prompt"`
}

type CreateEntryResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Entry   *models.Entry `json:"entry,omitempty"`
	Streak  int           `json:"streak"`
}

type ListEntriesResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Entries []models.Entry `json:"entries"`
	Total   int            `json:"total"`
}

// JournalHandler serves entry creation and history reads.
type JournalHandler struct {
	journal *services.JournalService
}

func NewJournalHandler(journal *services.JournalService) *JournalHandler {
	return &JournalHandler{journal: journal}
}

// CreateEntry stores a new journal entry for the authenticated user. The
// owner always comes from the session, never from the request body.
func (h *JournalHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Success: false, Message: "Authentication required"})
		return
	}

	var req CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Success: false, Message: "Invalid request body"})
		return
	}

	entry, streak, err := h.journal.CreateEntry(r.Context(), userID, req.Content, req.Mood, req.Prompt)
	if err != nil {
		writeError(w, err, "create entry")
		return
	}

	writeJSON(w, http.StatusCreated, CreateEntryResponse{
		Success: true,
		Message: "Entry created successfully",
		Entry:   entry,
		Streak:  streak,
	})
}

// ListEntries returns the newest-first page of the authenticated user's
// entries.
func (h *JournalHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Success: false, Message: "Authentication required"})
		return
	}

	limit, err := queryInt(r, "limit", services.DefaultListLimit)
	if err != nil {
		writeError(w, err, "list entries")
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		writeError(w, err, "list entries")
		return
	}

	entries, total, err := h.journal.ListEntries(r.Context(), userID, limit, offset)
	if err != nil {
		writeError(w, err, "list entries")
		return
	}

	writeJSON(w, http.StatusOK, ListEntriesResponse{
		Success: true,
		Entries: entries,
		Total:   total,
	})
}
