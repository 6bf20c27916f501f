package routes

import (
	"github.com/Dosada05/foot-api/handlers"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	matchHandler *handlers.MatchHandler,
	playerHandler *handlers.PlayerHandler,
	teamHandler *handlers.TeamHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/matches", func(r chi.Router) {
		r.Get("/", matchHandler.ListMatches)
		r.Get("/{matchID}", matchHandler.GetMatchByID)
		r.Post("/{matchID}/goals", matchHandler.AddGoals)
	})

	router.Route("/players", func(r chi.Router) {
		r.Get("/", playerHandler.ListPlayers)
		r.Post("/", playerHandler.CreatePlayers)
		r.Put("/{playerID}/name", playerHandler.UpdatePlayerName)
		r.Put("/{playerID}/guardian", playerHandler.UpdatePlayerGuardian)
	})

	router.Route("/teams", func(r chi.Router) {
		r.Get("/", teamHandler.ListTeams)
		r.Post("/", teamHandler.CreateTeam)
		r.Get("/{teamID}", teamHandler.GetTeamByID)
		r.Put("/{teamID}/crest", teamHandler.UploadCrest)
	})
}
