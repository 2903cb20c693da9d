package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/nikolay-ai/hackevent/internal/domain"
	"github.com/nikolay-ai/hackevent/internal/service"
	"github.com/nikolay-ai/hackevent/internal/view"
)

const (
	msgRegistered  = "Registration successful"
	msgDuplicate   = "Email already registered"
	msgUnavailable = "Registration is temporarily unavailable."
)

// RegistrationHandler handles event sign-ups and the admin listing.
type RegistrationHandler struct {
	registrations *service.RegistrationService
}

// NewRegistrationHandler creates a new RegistrationHandler.
func NewRegistrationHandler(registrations *service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrations: registrations}
}

type registerRequest struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Organization string `json:"organization"`
}

// HandleRegister processes a JSON registration request.
// POST /api/register
// Request:  {"email":"...","name":"...","organization":"..."}
// Response: {"message":"Registration successful","status":"success"}
func (h *RegistrationHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	_, err := h.registrations.Register(r.Context(), req.Email, req.Name, req.Organization)
	if err != nil {
		var fe *domain.FieldError
		switch {
		case errors.As(err, &fe):
			writeFieldError(w, fe.Field, fe.Message)
		case errors.Is(err, domain.ErrDuplicateEmail):
			writeError(w, http.StatusBadRequest, msgDuplicate)
		default:
			slog.Error("register", "error", err, "request_id", RequestIDFromContext(r.Context()))
			writeError(w, http.StatusInternalServerError, msgUnavailable)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": msgRegistered,
		"status":  "success",
	})
}

// HandleRegisterForm processes the live form on the invitation page and
// answers with an SSE patch of the message element.
// POST /register
func (h *RegistrationHandler) HandleRegisterForm(w http.ResponseWriter, r *http.Request) {
	var signals registerRequest
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	kind, text := view.MessageSuccess, "Registration successful! We'll be in touch with more details."
	_, err := h.registrations.Register(r.Context(), signals.Email, signals.Name, signals.Organization)
	if err != nil {
		var fe *domain.FieldError
		switch {
		case errors.As(err, &fe):
			kind, text = view.MessageError, "Please check the "+fe.Field+" field: "+fe.Message+"."
		case errors.Is(err, domain.ErrDuplicateEmail):
			kind, text = view.MessageInfo, "This email is already registered."
		default:
			slog.Error("register form", "error", err, "request_id", RequestIDFromContext(r.Context()))
			kind, text = view.MessageError, msgUnavailable
		}
	}

	sse := datastar.NewSSE(w, r)
	sse.PatchElementTempl(view.RegistrationMessage(kind, text))
	if err == nil {
		sse.PatchSignals([]byte(`{"email":"","name":"","organization":""}`))
	}
}

// RegistrationDTO is the JSON representation of a registration.
type RegistrationDTO struct {
	ID               int64  `json:"id"`
	Email            string `json:"email"`
	Name             string `json:"name"`
	Organization     string `json:"organization"`
	RegistrationDate string `json:"registration_date"`
}

func toRegistrationDTO(reg domain.Registration) RegistrationDTO {
	return RegistrationDTO{
		ID:               reg.ID,
		Email:            reg.Email,
		Name:             reg.Name,
		Organization:     reg.Organization,
		RegistrationDate: reg.RegisteredAt.UTC().Format(time.RFC3339),
	}
}

// HandleList returns every registration, newest first.
// GET /api/registrations
// Response: {"registrations":[...],"count":n}
func (h *RegistrationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	regs, err := h.registrations.List(r.Context())
	if err != nil {
		slog.Error("list registrations", "error", err, "request_id", RequestIDFromContext(r.Context()))
		writeError(w, http.StatusInternalServerError, msgUnavailable)
		return
	}

	dtos := make([]RegistrationDTO, len(regs))
	for i, reg := range regs {
		dtos[i] = toRegistrationDTO(reg)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"registrations": dtos,
		"count":         len(dtos),
	})
}
