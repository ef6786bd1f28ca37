package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Mbarca89/vete-front-v2/internal/contact"
)

// MessageSender is implemented by the contact mailer.
type MessageSender interface {
	Send(ctx context.Context, msg contact.Message) error
}

type ContactHandler struct {
	mailer MessageSender
}

func NewContactHandler(mailer MessageSender) *ContactHandler {
	return &ContactHandler{mailer: mailer}
}

type ContactRequestDTO struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message"`
}

func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req ContactRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Message == "" {
		respondError(w, http.StatusBadRequest, "missing_fields", "name, email and message are required")
		return
	}

	err := h.mailer.Send(r.Context(), contact.Message{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Text:  req.Message,
	})
	if err != nil {
		if errors.Is(err, contact.ErrNotConfigured) {
			respondError(w, http.StatusServiceUnavailable, "misconfigured", "el formulario de contacto no está disponible")
			return
		}
		respondError(w, http.StatusBadGateway, "send_failed", "no se pudo enviar el mensaje, intentá de nuevo")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}
