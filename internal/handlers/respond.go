package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/skatejack/Journaling-Companion/internal/services"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps service errors onto the response envelope: validation
// failures surface their message with a 400, everything else is logged and
// answered with a generic 500.
func writeError(w http.ResponseWriter, err error, logPrefix string) {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Success: false, Message: ve.Msg})
		return
	}
	log.Printf("%s: %v", logPrefix, err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Success: false, Message: "Something went wrong. Please try again."})
}

// queryInt parses an optional non-negative integer query parameter.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, services.Validationf("%s must be a non-negative number", name)
	}
	return n, nil
}
