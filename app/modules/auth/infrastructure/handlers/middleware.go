package authhandlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	authdomain "github.com/funfirstplay/matchup/app/modules/auth/domain"
	authjwt "github.com/funfirstplay/matchup/app/modules/auth/infrastructure/jwt"
	"github.com/funfirstplay/matchup/app/shared/apperrors"
	"github.com/funfirstplay/matchup/app/shared/httpapi"
	"github.com/rs/cors"
)

// CORSMiddleware returns a middleware that sets CORS headers for the configured origins.
// When allowedOrigins is empty, no CORS headers are added.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
	return c.Handler
}

// AuthMiddleware verifies the bearer access token and stores the caller in
// the request context.
func AuthMiddleware(provider authjwt.Provider, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || strings.TrimSpace(token) == "" {
				httpapi.WriteError(w, r, logger, apperrors.Unauthorized("Access denied. No token provided."))
				return
			}

			claims, err := provider.ValidateToken(strings.TrimSpace(token))
			if err != nil {
				logger.DebugContext(r.Context(), "Rejected access token", slog.String("error", err.Error()))
				httpapi.WriteError(w, r, logger, apperrors.Unauthorized(tokenErrorMessage(err)))
				return
			}

			ctx := authdomain.WithCaller(r.Context(), authdomain.Caller{
				UserID: claims.UserID,
				Role:   claims.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenErrorMessage(err error) string {
	switch {
	case errors.Is(err, authjwt.ErrExpiredToken):
		return "Token expired."
	case errors.Is(err, authjwt.ErrInvalidTokenType):
		return "Invalid token type."
	default:
		return "Invalid token."
	}
}

// RequireCaller returns the authenticated caller or writes a 401.
func RequireCaller(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (authdomain.Caller, bool) {
	caller, ok := authdomain.CallerFromContext(r.Context())
	if !ok {
		httpapi.WriteError(w, r, logger, apperrors.Unauthorized("Authentication required"))
		return authdomain.Caller{}, false
	}
	return caller, true
}
