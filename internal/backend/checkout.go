package backend

import (
	"context"
	"net/http"
)

// Customer is the contact data attached to a checkout attempt. It is never
// persisted; it lives for the duration of one request.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Notes string `json:"notes,omitempty"`
}

// CheckoutItem is one cart line in the wire shape the payment endpoint
// expects.
type CheckoutItem struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type checkoutRequest struct {
	Customer Customer       `json:"customer"`
	Items    []CheckoutItem `json:"items"`
}

type checkoutResponse struct {
	InitPoint string `json:"initPoint"`
}

// CreateCheckout opens a payment session and returns the provider's redirect
// URL.
func (c *Client) CreateCheckout(ctx context.Context, customer Customer, items []CheckoutItem) (string, error) {
	resp, err := fetchJSON[checkoutResponse](ctx, c, "/api/v1/mercadopago/public/create-checkout", requestOptions{
		method: http.MethodPost,
		body:   checkoutRequest{Customer: customer, Items: items},
	})
	if err != nil {
		return "", err
	}
	if resp.InitPoint == "" {
		return "", &Error{
			Kind:    KindInvalidResponse,
			Message: "checkout response did not include a redirect URL",
		}
	}
	return resp.InitPoint, nil
}
