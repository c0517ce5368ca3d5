package routes

import (
	"net/http"

	"github.com/Dosada05/bracket-hub/handlers"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

func SetupRoutes(
	router *chi.Mux,
	bracketHandler *handlers.BracketHandler,
	competitionHandler *handlers.CompetitionHandler,
	teamHandler *handlers.TeamHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Route("/bracket", func(r chi.Router) {
		r.Get("/{competitionID}", bracketHandler.GetBracketHandler)
		r.Get("/{competitionID}/html", bracketHandler.GetBracketHTMLHandler)
		r.Get("/{competitionID}/overrides", bracketHandler.GetOverridesHandler)
		r.Post("/preview", bracketHandler.PreviewBracketHandler)

		// The admin frontend posts to these paths with a trailing slash.
		r.Post("/update-team/", bracketHandler.UpdateTeamHandler)
		r.Post("/save-seeding/{competitionID}/", bracketHandler.SaveSeedingHandler)
		r.Post("/generate-matches/{competitionID}/", bracketHandler.GenerateMatchesHandler)
		r.Post("/reset/{competitionID}/", bracketHandler.ResetBracketHandler)
	})

	router.Route("/competitions", func(r chi.Router) {
		r.Get("/", competitionHandler.ListHandler)
		r.Get("/{competitionID}", competitionHandler.GetByIDHandler)
		r.Get("/{competitionID}/teams", competitionHandler.ListTeamsHandler)
	})

	router.Route("/teams", func(r chi.Router) {
		r.Get("/{teamID}", teamHandler.GetByIDHandler)
		r.Post("/{teamID}/logo", teamHandler.UploadLogoHandler)
	})

	router.Get("/ws/bracket/{competitionID}", webSocketHandler.ServeWs)

	router.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(openapiDoc)
	})
	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
}
