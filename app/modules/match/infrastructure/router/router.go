package matchrouter

import (
	"log/slog"
	"net/http"

	matchhandlers "github.com/funfirstplay/matchup/app/modules/match/infrastructure/handlers"
	"github.com/go-chi/chi/v5"
)

// MatchRouter mounts the match HTTP surface.
type MatchRouter struct {
	logger   *slog.Logger
	handlers matchhandlers.Handlers
	auth     func(http.Handler) http.Handler
}

// NewMatchRouter creates a new MatchRouter. auth guards every route that
// needs a caller.
func NewMatchRouter(logger *slog.Logger, handlers matchhandlers.Handlers, auth func(http.Handler) http.Handler) *MatchRouter {
	return &MatchRouter{
		logger:   logger,
		handlers: handlers,
		auth:     auth,
	}
}

// Routes returns the sub-router served under /api/matches.
func (r *MatchRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", r.handlers.ListMatches)
	router.Get("/{matchID}", r.handlers.GetMatch)

	router.Group(func(protected chi.Router) {
		protected.Use(r.auth)

		protected.Get("/mine", r.handlers.ListMyMatches)
		protected.Post("/", r.handlers.CreateMatch)
		protected.Put("/{matchID}", r.handlers.UpdateMatch)
		protected.Delete("/{matchID}", r.handlers.DeleteMatch)
		protected.Post("/{matchID}/invite", r.handlers.InvitePlayers)
		protected.Post("/{matchID}/respond", r.handlers.RespondToInvitation)
		protected.Get("/{matchID}/players/{userID}/responses", r.handlers.GetResponseHistory)
	})

	r.logger.Info("Match routes registered")
	return router
}
