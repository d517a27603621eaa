package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/skatejack/Journaling-Companion/internal/handlers"
	"github.com/skatejack/Journaling-Companion/internal/middleware"
)

func SetupRoutes(r *chi.Mux, auth *middleware.Auth, journal *handlers.JournalHandler, prompts *handlers.PromptHandler, insights *handlers.InsightsHandler) {
	r.Group(func(api chi.Router) {
		api.Use(auth.RequireUser)

		// Journal entry routes
		api.Post("/api/entries", journal.CreateEntry)
		api.Get("/api/entries", journal.ListEntries)

		// Writing prompt routes
		api.Post("/api/prompts", prompts.GeneratePrompt)

		// Insights dashboard routes
		api.Get("/api/insights", insights.GetInsights)
	})
}
