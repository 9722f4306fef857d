package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"harborbank/internal/auth/models"
	bankmodels "harborbank/internal/bank/models"
	id "harborbank/pkg/domain"
	"harborbank/pkg/platform/httputil"
	"harborbank/pkg/requestcontext"
)

// Service is the session store as seen by HTTP.
type Service interface {
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	SignUp(ctx context.Context, email, password, displayName string) (*models.User, error)
	SignOut(ctx context.Context) error
	GetSession(ctx context.Context) (*models.Session, error)
	GetUser(ctx context.Context) (*models.User, error)
}

// ActivityRecorder writes sign-in and sign-out entries to the activity log.
type ActivityRecorder interface {
	RecordAuthEvent(ctx context.Context, userID id.UserID, action string) error
}

// Handler serves the /auth endpoints.
//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service,ActivityRecorder
type Handler struct {
	auth     Service
	activity ActivityRecorder
	logger   *slog.Logger
}

func New(auth Service, activity ActivityRecorder, logger *slog.Logger) *Handler {
	return &Handler{auth: auth, activity: activity, logger: logger}
}

// Register registers the routes that need no token: sign in and sign up.
func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/signin", h.HandleSignIn)
	r.Post("/auth/signup", h.HandleSignUp)
}

// Authenticated returns the routes that expose or end the current session.
// The caller mounts them behind RequireAuth.
func (h *Handler) Authenticated() *AuthenticatedRoutes {
	return &AuthenticatedRoutes{h: h}
}

type AuthenticatedRoutes struct {
	h *Handler
}

func (a *AuthenticatedRoutes) Register(r chi.Router) {
	r.Post("/auth/signout", a.h.HandleSignOut)
	r.Get("/auth/session", a.h.HandleGetSession)
	r.Get("/auth/user", a.h.HandleGetUser)
}

func (h *Handler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	var req models.SignInRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.logger.WarnContext(ctx, "invalid sign-in request", "request_id", requestID, "error", err)
		httputil.WriteError(w, err)
		return
	}

	session, err := h.auth.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.recordActivity(ctx, session.User.ID, bankmodels.ActionSignIn)
	httputil.WriteJSON(w, http.StatusOK, models.SessionResponse{Session: session})
}

func (h *Handler) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.SignUpRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.logger.WarnContext(ctx, "invalid sign-up request",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	user, err := h.auth.SignUp(ctx, req.Email, req.Password, req.DisplayName)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, models.UserResponse{User: user})
}

// HandleSignOut succeeds with or without a current session.
func (h *Handler) HandleSignOut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, _ := h.auth.GetUser(ctx)
	if err := h.auth.SignOut(ctx); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if user != nil {
		h.recordActivity(ctx, user.ID, bankmodels.ActionSignOut)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.auth.GetSession(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.SessionResponse{Session: session})
}

func (h *Handler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.GetUser(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.UserResponse{User: user})
}

// recordActivity never fails the request; the auth change already happened.
func (h *Handler) recordActivity(ctx context.Context, userID id.UserID, action string) {
	if h.activity == nil {
		return
	}
	if err := h.activity.RecordAuthEvent(ctx, userID, action); err != nil {
		h.logger.WarnContext(ctx, "failed to record auth activity",
			"action", action,
			"user_id", userID.String(),
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
}
