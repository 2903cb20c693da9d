package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/nikolay-ai/hackevent/internal/domain"
	"github.com/nikolay-ai/hackevent/internal/service"
)

const adminCookieName = "admin_token"

// LoginObserver is notified of admin login outcomes.
type LoginObserver interface {
	ObserveAdminLogin(ok bool)
}

// AdminHandler handles admin authentication.
type AdminHandler struct {
	admin        *service.AdminService
	cookieSecure bool
	observer     LoginObserver
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(admin *service.AdminService, cookieSecure bool, observer LoginObserver) *AdminHandler {
	return &AdminHandler{admin: admin, cookieSecure: cookieSecure, observer: observer}
}

// HandleLogin exchanges the admin password for a token.
// POST /api/admin/login
// Request:  {"password":"..."}
// Response: {"token":"..."}
func (h *AdminHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	token, err := h.admin.Login(r.Context(), req.Password)
	if h.observer != nil {
		h.observer.ObserveAdminLogin(err == nil)
	}
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, "Invalid password.")
			return
		}
		slog.Error("admin login", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     adminCookieName,
		Value:    token,
		Path:     "/api/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(service.AdminTokenTTL.Seconds()),
	})

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
