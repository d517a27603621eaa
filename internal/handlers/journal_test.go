package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/skatejack/Journaling-Companion/internal/llm"
	"github.com/skatejack/Journaling-Companion/internal/middleware"
	"github.com/skatejack/Journaling-Companion/internal/models"
	"github.com/skatejack/Journaling-Companion/internal/services"
	"github.com/skatejack/Journaling-Companion/internal/store"
)

// authedRequest builds a request that already passed auth middleware.
func authedRequest(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	ctx := context.WithValue(req.Context(), middleware.ContextKeyUserID, "user-1")
	return req.WithContext(ctx)
}

// newTestJournalHandler wires a handler over an in-memory store with the
// text-generation service disabled, so entries come back degraded.
func newTestJournalHandler() (*JournalHandler, *services.JournalService) {
	svc := services.NewJournalService(
		store.NewMemoryKV(),
		services.NewEnrichmentService(llm.Disabled{}),
		nil,
		time.UTC,
	)
	return NewJournalHandler(svc), svc
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding error response: %v", err)
	}
	return resp
}

func TestCreateEntryRequiresAuth(t *testing.T) {
	h, _ := newTestJournalHandler()
	req := httptest.NewRequest(http.MethodPost, "/api/entries", strings.NewReader(`{"content":"hello"}`))
	rec := httptest.NewRecorder()

	h.CreateEntry(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Message != "Authentication required" {
		t.Errorf("unexpected message: %q", resp.Message)
	}
}

func TestCreateEntryRejectsInvalidBody(t *testing.T) {
	h, _ := newTestJournalHandler()
	req := authedRequest(http.MethodPost, "/api/entries", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()

	h.CreateEntry(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Message != "Invalid request body" {
		t.Errorf("unexpected message: %q", resp.Message)
	}
}

func TestCreateEntryRejectsEmptyContent(t *testing.T) {
	h, _ := newTestJournalHandler()
	req := authedRequest(http.MethodPost, "/api/entries", strings.NewReader(`{"content":"   ","mood":"good"}`))
	rec := httptest.NewRecorder()

	h.CreateEntry(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Message != "content is required" {
		t.Errorf("unexpected message: %q", resp.Message)
	}
}

func TestCreateEntryCreatesEntry(t *testing.T) {
	h, _ := newTestJournalHandler()
	req := authedRequest(http.MethodPost, "/api/entries", strings.NewReader(`{"content":"Today was good","mood":"good"}`))
	rec := httptest.NewRecorder()

	h.CreateEntry(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp CreateEntryResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !resp.Success || resp.Message != "Entry created successfully" {
		t.Errorf("unexpected envelope: %+v", resp)
	}
	if resp.Entry == nil {
		t.Fatal("expected the created entry in the response")
	}
	if resp.Entry.UserID != "user-1" {
		t.Errorf("owner must come from the session, got %q", resp.Entry.UserID)
	}
	if resp.Entry.WordCount != 3 {
		t.Errorf("expected word_count=3, got %d", resp.Entry.WordCount)
	}
	if resp.Entry.Mood != models.MoodGood {
		t.Errorf("expected mood=good, got %q", resp.Entry.Mood)
	}
	if resp.Entry.Sentiment != nil {
		t.Errorf("with generation disabled the entry should be degraded, got %v", *resp.Entry.Sentiment)
	}
	if resp.Streak != 1 {
		t.Errorf("expected streak=1, got %d", resp.Streak)
	}
}

func TestListEntriesRejectsBadParams(t *testing.T) {
	h, _ := newTestJournalHandler()

	tests := []struct {
		query   string
		message string
	}{
		{"?limit=abc", "limit must be a non-negative number"},
		{"?limit=-1", "limit must be a non-negative number"},
		{"?offset=oops", "offset must be a non-negative number"},
		{"?offset=-2", "offset must be a non-negative number"},
	}
	for _, tt := range tests {
		req := authedRequest(http.MethodGet, "/api/entries"+tt.query, nil)
		rec := httptest.NewRecorder()

		h.ListEntries(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tt.query, rec.Code)
			continue
		}
		if resp := decodeError(t, rec); resp.Message != tt.message {
			t.Errorf("%s: unexpected message %q", tt.query, resp.Message)
		}
	}
}

func TestListEntriesReturnsPage(t *testing.T) {
	h, svc := newTestJournalHandler()
	for _, content := range []string{"first entry", "second entry", "third entry"} {
		if _, _, err := svc.CreateEntry(context.Background(), "user-1", content, models.MoodOkay, ""); err != nil {
			t.Fatalf("seeding entry: %v", err)
		}
	}

	req := authedRequest(http.MethodGet, "/api/entries?limit=2", nil)
	rec := httptest.NewRecorder()

	h.ListEntries(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp ListEntriesResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !resp.Success {
		t.Error("expected success=true")
	}
	if resp.Total != 3 {
		t.Errorf("expected total=3, got %d", resp.Total)
	}
	if len(resp.Entries) != 2 {
		t.Errorf("expected a page of 2, got %d", len(resp.Entries))
	}
}
