package admin

import (
	"log/slog"
	"net/http"

	"harborbank/pkg/platform/middleware/auth"
	"harborbank/pkg/requestcontext"
)

// RequireAdmin lets through only principals flagged as administrators.
// It must run after auth.RequireAuth.
func RequireAdmin(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			principal := auth.GetPrincipal(ctx)
			if principal == nil || !principal.IsAdmin {
				logger.WarnContext(ctx, "admin access denied",
					"request_id", requestcontext.RequestID(ctx),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":"forbidden","error_description":"admin privileges required"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
