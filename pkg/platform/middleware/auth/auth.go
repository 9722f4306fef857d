package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	id "harborbank/pkg/domain"
	"harborbank/pkg/requestcontext"
)

// TokenValidator resolves a bearer token into the principal it belongs to.
type TokenValidator interface {
	ValidateAccessToken(ctx context.Context, token string) (*Principal, error)
}

// Principal is the authenticated caller as seen by transports.
type Principal struct {
	UserID  id.UserID
	Email   string
	IsAdmin bool
}

type contextKeyPrincipal struct{}

// GetPrincipal retrieves the authenticated principal, or nil.
func GetPrincipal(ctx context.Context) *Principal {
	p, _ := ctx.Value(contextKeyPrincipal{}).(*Principal)
	return p
}

// WithPrincipal injects a principal. Handlers tests use it to skip the
// token round-trip.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	ctx = context.WithValue(ctx, contextKeyPrincipal{}, p)
	if p != nil {
		ctx = requestcontext.WithUserID(ctx, p.UserID)
	}
	return ctx
}

func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"error":"%s","error_description":"%s"}`, errCode, errDesc))
}

// RequireAuth rejects requests without a valid "Authorization: Bearer" token.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := requestcontext.RequestID(ctx)

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestID,
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Missing or invalid Authorization header")
				return
			}

			principal, err := validator.ValidateAccessToken(ctx, token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestID,
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(ctx, principal)))
		})
	}
}
