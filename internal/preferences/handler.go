package preferences

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"harborbank/pkg/platform/httputil"
	"harborbank/pkg/requestcontext"
)

type PreferencesResponse struct {
	Language            string   `json:"language"`
	LanguageWelcomeSeen bool     `json:"language_welcome_seen"`
	SupportedLanguages  []string `json:"supported_languages"`
}

type SetLanguageRequest struct {
	Language string `json:"language"`
}

type Handler struct {
	svc    *Service
	logger *slog.Logger
}

func NewHandler(svc *Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/preferences", h.HandleGet)
	r.Put("/preferences/language", h.HandleSetLanguage)
	r.Post("/preferences/welcome-seen", h.HandleWelcomeSeen)
	r.Get("/preferences/location", h.HandleLocation)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	httputil.WriteJSON(w, http.StatusOK, PreferencesResponse{
		Language:            h.svc.GetLanguage(ctx),
		LanguageWelcomeSeen: h.svc.HasSeenLanguageWelcome(ctx),
		SupportedLanguages:  SupportedLanguages,
	})
}

func (h *Handler) HandleSetLanguage(w http.ResponseWriter, r *http.Request) {
	var req SetLanguageRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.svc.SetLanguage(r.Context(), req.Language); err != nil {
		h.logger.WarnContext(r.Context(), "failed to set language",
			"language", req.Language,
			"request_id", requestcontext.RequestID(r.Context()),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	h.HandleGet(w, r)
}

func (h *Handler) HandleWelcomeSeen(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.MarkLanguageWelcomeSeen(r.Context()); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleLocation(w http.ResponseWriter, r *http.Request) {
	loc := h.svc.DetectLocation(r.Context(), requestcontext.ClientIP(r.Context()))
	httputil.WriteJSON(w, http.StatusOK, loc)
}
