package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"harborbank/internal/bank/models"
	id "harborbank/pkg/domain"
	dErrors "harborbank/pkg/domain-errors"
	"harborbank/pkg/platform/httputil"
	authmw "harborbank/pkg/platform/middleware/auth"
	"harborbank/pkg/requestcontext"
)

// Service is the banking data store as seen by the customer API.
type Service interface {
	GetProfile(ctx context.Context, userID id.UserID) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID id.UserID, update models.ProfileUpdate) (*models.Profile, error)
	GetTransactions(ctx context.Context, userID id.UserID) ([]*models.Transaction, error)
	CreateTransaction(ctx context.Context, req models.CreateTransactionRequest) (*models.Transaction, error)
	GetActivityLogs(ctx context.Context, userID id.UserID) ([]*models.ActivityLog, error)
	LogActivity(ctx context.Context, req models.LogActivityRequest) (*models.ActivityLog, error)
}

// Handler serves the signed-in customer's /me endpoints.
//
//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service
type Handler struct {
	bank   Service
	logger *slog.Logger
}

func New(bank Service, logger *slog.Logger) *Handler {
	return &Handler{bank: bank, logger: logger}
}

// Register mounts the routes; the caller applies authentication.
func (h *Handler) Register(r chi.Router) {
	r.Get("/me/profile", h.HandleGetProfile)
	r.Patch("/me/profile", h.HandleUpdateProfile)
	r.Get("/me/transactions", h.HandleListTransactions)
	r.Post("/me/transactions", h.HandleCreateTransaction)
	r.Get("/me/activity", h.HandleListActivity)
}

type ProfileResponse struct {
	Profile *models.Profile `json:"profile"`
}

type TransactionsResponse struct {
	Transactions []*models.Transaction `json:"transactions"`
}

type TransactionResponse struct {
	Transaction *models.Transaction `json:"transaction"`
}

type ActivityResponse struct {
	Activity []*models.ActivityLog `json:"activity"`
}

func (h *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	profile, err := h.bank.GetProfile(r.Context(), userID)
	if err != nil {
		h.writeFailure(w, r, "failed to load profile", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ProfileResponse{Profile: profile})
}

// HandleUpdateProfile lets customers change contact details only.
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	var update models.ProfileUpdate
	if err := httputil.DecodeJSON(r, &update); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if !update.CustomerEditable() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "only name, phone and email can be changed"))
		return
	}

	profile, err := h.bank.UpdateProfile(ctx, userID, update)
	if err != nil {
		h.writeFailure(w, r, "failed to update profile", err)
		return
	}
	h.logActivity(ctx, models.LogActivityRequest{
		UserID:       userID,
		Action:       models.ActionProfileUpdated,
		ResourceType: "profile",
		ResourceID:   userID.String(),
	})
	httputil.WriteJSON(w, http.StatusOK, ProfileResponse{Profile: profile})
}

func (h *Handler) HandleListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	txs, err := h.bank.GetTransactions(r.Context(), userID)
	if err != nil {
		h.writeFailure(w, r, "failed to list transactions", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, TransactionsResponse{Transactions: txs})
}

func (h *Handler) HandleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	var req models.CreateTransactionRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	req.UserID = userID

	tx, err := h.bank.CreateTransaction(ctx, req)
	if err != nil {
		h.writeFailure(w, r, "failed to create transaction", err)
		return
	}
	h.logActivity(ctx, models.LogActivityRequest{
		UserID:       userID,
		Action:       models.ActionTransactionCreated,
		ResourceType: "transaction",
		ResourceID:   tx.ID.String(),
		Metadata: map[string]any{
			"reference_number": tx.ReferenceNumber,
			"amount":           tx.Amount.String(),
			"ip_address":       requestcontext.ClientIP(ctx),
		},
	})
	httputil.WriteJSON(w, http.StatusCreated, TransactionResponse{Transaction: tx})
}

func (h *Handler) HandleListActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	logs, err := h.bank.GetActivityLogs(r.Context(), userID)
	if err != nil {
		h.writeFailure(w, r, "failed to list activity", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ActivityResponse{Activity: logs})
}

func (h *Handler) requireUser(w http.ResponseWriter, r *http.Request) (id.UserID, bool) {
	p := authmw.GetPrincipal(r.Context())
	if p == nil {
		// RequireAuth should have rejected the request already
		h.logger.ErrorContext(r.Context(), "principal missing from context despite auth middleware",
			"request_id", requestcontext.RequestID(r.Context()),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return id.UserID{}, false
	}
	return p.UserID, true
}

func (h *Handler) writeFailure(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(r.Context(), msg,
			"request_id", requestcontext.RequestID(r.Context()),
			"error", err,
		)
	}
	httputil.WriteError(w, err)
}

func (h *Handler) logActivity(ctx context.Context, req models.LogActivityRequest) {
	if _, err := h.bank.LogActivity(ctx, req); err != nil {
		h.logger.WarnContext(ctx, "failed to record activity",
			"action", req.Action,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
}
