package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Mbarca89/vete-front-v2/internal/backend"
	"github.com/Mbarca89/vete-front-v2/internal/cart"
	"github.com/Mbarca89/vete-front-v2/internal/checkout"
)

type CheckoutHandler struct {
	carts    *cart.Manager
	checkout *checkout.Service
}

func NewCheckoutHandler(carts *cart.Manager, svc *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{carts: carts, checkout: svc}
}

type CheckoutRequestDTO struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Notes string `json:"notes,omitempty"`
}

type CheckoutResponseDTO struct {
	InitPoint string `json:"initPoint"`
}

type ValidationErrorDTO struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields"`
	// Focus names the field that should receive input focus, in form
	// order name, email, phone.
	Focus string `json:"focus"`
}

// Submit validates the customer data, opens the payment session and returns
// the provider redirect URL. The cart is left untouched either way; it only
// empties once the provider confirms payment on its own pages.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "no session cookie")
		return
	}

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	store, err := h.carts.Cart(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "cart_unavailable", "could not load the cart, try again")
		return
	}

	customer := backend.Customer{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Notes: req.Notes,
	}

	initPoint, err := h.checkout.Submit(r.Context(), customer, store.Items())
	if err != nil {
		h.respondSubmitError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, CheckoutResponseDTO{InitPoint: initPoint})
}

func (h *CheckoutHandler) respondSubmitError(w http.ResponseWriter, err error) {
	if errors.Is(err, checkout.ErrEmptyCart) {
		respondError(w, http.StatusConflict, "empty_cart", "el carrito está vacío")
		return
	}

	var verr *checkout.ValidationError
	if errors.As(err, &verr) {
		fields := make(map[string]string, len(verr.Fields))
		for f, msg := range verr.Fields {
			fields[string(f)] = msg
		}
		respondJSON(w, http.StatusUnprocessableEntity, ValidationErrorDTO{
			Error:  "revisá los datos del formulario",
			Code:   "invalid_form",
			Fields: fields,
			Focus:  string(verr.First),
		})
		return
	}

	if backend.IsKind(err, backend.KindForbidden) {
		respondJSON(w, http.StatusForbidden, ErrorResponse{
			Error: "la sesión expiró",
			Code:  "forbidden",
			Reset: true,
		})
		return
	}

	respondError(w, http.StatusBadGateway, "checkout_failed", checkout.FriendlyMessage(err))
}
