package auth

import (
	"log/slog"
	"net/http"

	authhandlers "github.com/funfirstplay/matchup/app/modules/auth/infrastructure/handlers"
	authjwt "github.com/funfirstplay/matchup/app/modules/auth/infrastructure/jwt"
	"github.com/funfirstplay/matchup/config"
)

// Module verifies access tokens issued by the identity service.
type Module struct {
	provider authjwt.Provider
	logger   *slog.Logger
}

// NewModule creates a new auth module.
func NewModule(cfg *config.Config, logger *slog.Logger) *Module {
	logger.Info("Initializing auth module")
	return &Module{
		provider: authjwt.NewProvider(cfg.JWT.Secret),
		logger:   logger,
	}
}

// Middleware rejects requests without a valid bearer access token.
func (m *Module) Middleware() func(http.Handler) http.Handler {
	return authhandlers.AuthMiddleware(m.provider, m.logger)
}

// Provider exposes the token provider, mainly for tests that mint tokens.
func (m *Module) Provider() authjwt.Provider {
	return m.provider
}
