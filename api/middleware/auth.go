package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/nhakalabs/storefront-gateway/api/responses"
	pkgauth "github.com/nhakalabs/storefront-gateway/pkg/auth"
	"github.com/nhakalabs/storefront-gateway/pkg/auth/session"
	"github.com/nhakalabs/storefront-gateway/pkg/commerce"
	"github.com/nhakalabs/storefront-gateway/pkg/config"
	pkgerrors "github.com/nhakalabs/storefront-gateway/pkg/errors"
	"github.com/nhakalabs/storefront-gateway/pkg/logger"
)

type sessionReader interface {
	Get(ctx context.Context, sessionID string) (*session.Record, error)
}

// Auth validates the gateway token, loads the session record, and seeds the
// request context with the identity plus the upstream access token.
func Auth(cfg config.JWTConfig, sessions sessionReader, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgauth.ParseSessionToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			record, err := sessions.Get(r.Context(), claims.ID)
			if err != nil {
				if errors.Is(err, session.ErrSessionNotFound) {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session unavailable"))
					return
				}
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session"))
				return
			}

			ctx := WithSessionID(r.Context(), claims.ID)
			ctx = WithIdentity(ctx, record.UserID, record.Email, record.FullName)
			ctx = commerce.WithAccessToken(ctx, record.AccessToken)

			if logg != nil {
				ctx = logg.WithSessionID(ctx, claims.ID)
				ctx = logg.WithField(ctx, "user_id", record.UserID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
