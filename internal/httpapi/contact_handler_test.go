package httpapi

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Mbarca89/vete-front-v2/internal/contact"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMailer struct {
	err error
	got contact.Message
}

func (s *stubMailer) Send(_ context.Context, msg contact.Message) error {
	s.got = msg
	return s.err
}

func TestContactHandler_Submit(t *testing.T) {
	mailer := &stubMailer{}
	h := NewContactHandler(mailer)

	body := `{"name":"Ana","email":"ana@example.com","phone":"1122334455","message":"Quisiera un turno"}`
	rec := httptest.NewRecorder()
	h.Submit(rec, httptest.NewRequest(http.MethodPost, "/contact", bytes.NewBufferString(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ana", mailer.got.Name)
	assert.Equal(t, "Quisiera un turno", mailer.got.Text)
}

func TestContactHandler_MissingFields(t *testing.T) {
	h := NewContactHandler(&stubMailer{})

	rec := httptest.NewRecorder()
	h.Submit(rec, httptest.NewRequest(http.MethodPost, "/contact",
		bytes.NewBufferString(`{"name":"Ana","email":"ana@example.com"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContactHandler_NotConfigured(t *testing.T) {
	h := NewContactHandler(&stubMailer{err: contact.ErrNotConfigured})

	body := `{"name":"Ana","email":"ana@example.com","message":"hola"}`
	rec := httptest.NewRecorder()
	h.Submit(rec, httptest.NewRequest(http.MethodPost, "/contact", bytes.NewBufferString(body)))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestContactHandler_ProviderFailure(t *testing.T) {
	h := NewContactHandler(&stubMailer{err: errors.New("provider down")})

	body := `{"name":"Ana","email":"ana@example.com","message":"hola"}`
	rec := httptest.NewRecorder()
	h.Submit(rec, httptest.NewRequest(http.MethodPost, "/contact", bytes.NewBufferString(body)))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
