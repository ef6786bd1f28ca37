package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// ErrNotConfigured is returned on first use when the messaging-service
// credentials are missing. The rest of the site keeps working.
var ErrNotConfigured = errors.New("messaging service credentials are not configured")

// Message is one contact-form submission.
type Message struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Text  string `json:"message"`
}

// Config carries the hosted messaging provider's credentials. Endpoint is
// overridable for tests.
type Config struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	Endpoint   string
}

// Mailer relays contact-form messages through the hosted messaging API.
type Mailer struct {
	cfg        Config
	httpClient *http.Client
}

func NewMailer(cfg Config) *Mailer {
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	return &Mailer{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// Send relays one message. Missing credentials fail before any network call.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	if m.cfg.ServiceID == "" || m.cfg.TemplateID == "" || m.cfg.PublicKey == "" {
		return ErrNotConfigured
	}

	payload, err := json.Marshal(sendRequest{
		ServiceID:  m.cfg.ServiceID,
		TemplateID: m.cfg.TemplateID,
		UserID:     m.cfg.PublicKey,
		TemplateParams: map[string]string{
			"from_name":  msg.Name,
			"from_email": msg.Email,
			"phone":      msg.Phone,
			"message":    msg.Text,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call messaging service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("messaging service returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
