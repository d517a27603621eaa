package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/skatejack/Journaling-Companion/internal/models"
	"github.com/skatejack/Journaling-Companion/internal/store"
)

func isCanned(prompt string) bool {
	for _, p := range cannedPrompts {
		if p == prompt {
			return true
		}
	}
	return false
}

func TestGeneratePromptFirstTime(t *testing.T) {
	var seen string
	gen := &fakeGenerator{fn: func(systemPrompt, userPrompt string) (string, error) {
		seen = userPrompt
		return "What would make today feel complete?", nil
	}}
	svc := NewPromptService(store.NewMemoryKV(), gen, nil, time.UTC)

	prompt, err := svc.GeneratePrompt(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prompt != "What would make today feel complete?" {
		t.Errorf("unexpected prompt: %q", prompt)
	}
	if !strings.Contains(seen, "first time") {
		t.Errorf("empty history should ask for a first-time prompt, got %q", seen)
	}
}

func TestGeneratePromptUsesRecentHistory(t *testing.T) {
	kv := store.NewMemoryKV()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	for i, themes := range [][]string{{"newest"}, {"second"}, {"third"}, {"oldest"}} {
		seedEntry(t, kv, models.Entry{
			ID:        themes[0],
			UserID:    "user-1",
			Content:   "x",
			Mood:      models.MoodOkay,
			Themes:    themes,
			CreatedAt: now.AddDate(0, 0, -i),
		})
	}

	var seen string
	gen := &fakeGenerator{fn: func(systemPrompt, userPrompt string) (string, error) {
		seen = userPrompt
		return "A fine prompt.", nil
	}}
	svc := NewPromptService(kv, gen, nil, time.UTC)

	if _, err := svc.GeneratePrompt(context.Background(), "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, theme := range []string{"newest", "second", "third"} {
		if !strings.Contains(seen, theme) {
			t.Errorf("request should mention theme %q, got %q", theme, seen)
		}
	}
	if strings.Contains(seen, "oldest") {
		t.Errorf("only the most recent entries personalize the prompt, got %q", seen)
	}
	if !strings.Contains(seen, "okay") {
		t.Errorf("request should mention the mood, got %q", seen)
	}
}

func TestGeneratePromptFallsBackToCanned(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("model down")}
	svc := NewPromptService(store.NewMemoryKV(), gen, nil, time.UTC)

	prompt, err := svc.GeneratePrompt(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("generation failure must not surface: %v", err)
	}
	if !isCanned(prompt) {
		t.Errorf("expected a canned prompt, got %q", prompt)
	}
}

func TestGeneratePromptEmptyOutputFallsBack(t *testing.T) {
	gen := &fakeGenerator{reply: "  \n \n"}
	svc := NewPromptService(store.NewMemoryKV(), gen, nil, time.UTC)

	prompt, err := svc.GeneratePrompt(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !isCanned(prompt) {
		t.Errorf("blank output should fall back to a canned prompt, got %q", prompt)
	}
}

func TestGeneratePromptStoreFailureSurfaces(t *testing.T) {
	svc := NewPromptService(errKV{err: errors.New("redis gone")}, &fakeGenerator{reply: "never"}, nil, time.UTC)

	_, err := svc.GeneratePrompt(context.Background(), "user-1")
	if err == nil {
		t.Fatal("a store failure while loading history must surface")
	}
}

func TestSanitizePrompt(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"What felt heavy today?", "What felt heavy today?"},
		{"\n\n  \"What felt heavy today?\"  \n", "What felt heavy today?"},
		{"- What felt heavy today?\n- And a second one?", "What felt heavy today?"},
		{"'Quoted prompt'", "Quoted prompt"},
		{"   \n\t\n", ""},
	}
	for _, tt := range tests {
		if got := sanitizePrompt(tt.in); got != tt.want {
			t.Errorf("sanitizePrompt(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
