package httpapi

import (
	"net/http"

	"github.com/Mbarca89/vete-front-v2/internal/content"
)

type ContentHandler struct{}

func NewContentHandler() *ContentHandler {
	return &ContentHandler{}
}

func (h *ContentHandler) Services(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, content.Services())
}

func (h *ContentHandler) Team(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, content.Team())
}

func (h *ContentHandler) Testimonials(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, content.Testimonials())
}
