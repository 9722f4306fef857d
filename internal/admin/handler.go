package admin

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	bankmodels "harborbank/internal/bank/models"
	id "harborbank/pkg/domain"
	"harborbank/pkg/platform/httputil"
	"harborbank/pkg/requestcontext"
)

// Handler serves the /admin endpoints. The caller mounts it behind
// RequireAuth and RequireAdmin.
type Handler struct {
	svc    *Service
	bank   BankService
	logger *slog.Logger
}

func NewHandler(svc *Service, bank BankService, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, bank: bank, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/admin/users", h.HandleListUsers)
	r.Get("/admin/users/{id}/activity", h.HandleUserActivity)
	r.Get("/admin/profiles", h.HandleListProfiles)
	r.Patch("/admin/profiles/{id}", h.HandleUpdateProfile)
	r.Get("/admin/transactions", h.HandleListTransactions)
	r.Patch("/admin/transactions/{id}/status", h.HandleUpdateTransactionStatus)
}

func (h *Handler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.ListUsers(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleUserActivity(w http.ResponseWriter, r *http.Request) {
	userID, err := id.ParseUserID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	logs, err := h.bank.GetActivityLogs(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ActivityResponse{Activity: logs})
}

func (h *Handler) HandleListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.bank.GetAllProfiles(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ProfilesResponse{Profiles: profiles, Total: len(profiles)})
}

// HandleUpdateProfile may change any profile field, including balance and
// verification status.
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := id.ParseUserID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var update bankmodels.ProfileUpdate
	if err := httputil.DecodeJSON(r, &update); err != nil {
		httputil.WriteError(w, err)
		return
	}

	profile, err := h.bank.UpdateProfile(r.Context(), userID, update)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.logger.InfoContext(r.Context(), "admin updated profile",
		"profile_id", userID.String(),
		"admin_id", requestcontext.UserID(r.Context()).String(),
		"request_id", requestcontext.RequestID(r.Context()),
	)
	httputil.WriteJSON(w, http.StatusOK, ProfileResponse{Profile: profile})
}

func (h *Handler) HandleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.bank.GetAllTransactions(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, TransactionsResponse{Transactions: txs, Total: len(txs)})
}

func (h *Handler) HandleUpdateTransactionStatus(w http.ResponseWriter, r *http.Request) {
	txID, err := id.ParseTransactionID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req bankmodels.UpdateTransactionStatusRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	tx, err := h.bank.UpdateTransactionStatus(r.Context(), txID, req.Status)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.logger.InfoContext(r.Context(), "admin changed transaction status",
		"transaction_id", txID.String(),
		"status", string(req.Status),
		"request_id", requestcontext.RequestID(r.Context()),
	)
	httputil.WriteJSON(w, http.StatusOK, TransactionResponse{Transaction: tx})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.WarnContext(r.Context(), "admin request failed",
		"path", r.URL.Path,
		"request_id", requestcontext.RequestID(r.Context()),
		"error", err,
	)
	httputil.WriteError(w, err)
}
