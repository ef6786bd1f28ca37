package checkout

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/Mbarca89/vete-front-v2/internal/backend"
	"github.com/Mbarca89/vete-front-v2/internal/cart"
)

// maxRawMessageLen bounds backend error text shown to the visitor.
const maxRawMessageLen = 400

const unreachableMessage = "No se pudo conectar con el servidor. " +
	"Verificá que el backend esté encendido y que la URL sea correcta."

// PaymentGateway is the slice of the backend client the checkout flow needs.
type PaymentGateway interface {
	CreateCheckout(ctx context.Context, customer backend.Customer, items []backend.CheckoutItem) (string, error)
}

// ValidationError reports every invalid field plus the one that should take
// focus, so the form can mark all fields touched in a single pass.
type ValidationError struct {
	Fields FieldErrors
	First  Field
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid checkout form: %d field(s)", len(e.Fields))
}

// Service gates the create-checkout call behind validation and hands the
// payment provider's redirect URL back to the caller.
type Service struct {
	gateway PaymentGateway
}

func NewService(gateway PaymentGateway) *Service {
	return &Service{gateway: gateway}
}

// Submit re-validates regardless of any earlier incremental validation, then
// opens the payment session. The cart itself is never touched; a failed
// submit leaves it exactly as it was.
func (s *Service) Submit(ctx context.Context, customer backend.Customer, items []cart.Item) (string, error) {
	if len(items) == 0 {
		return "", ErrEmptyCart
	}

	if errs := Validate(customer); len(errs) > 0 {
		return "", &ValidationError{Fields: errs, First: errs.First()}
	}

	normalized := Normalize(customer)

	lines := make([]backend.CheckoutItem, 0, len(items))
	for _, it := range items {
		lines = append(lines, backend.CheckoutItem{
			ID:        it.ID,
			Title:     it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.Price,
		})
	}

	initPoint, err := s.gateway.CreateCheckout(ctx, normalized, lines)
	if err != nil {
		return "", fmt.Errorf("create checkout: %w", err)
	}
	return initPoint, nil
}

// FriendlyMessage converts a failed submit into a short notification. A
// server that cannot be reached gets a dedicated message instead of the raw
// transport text.
func FriendlyMessage(err error) string {
	if backend.IsKind(err, backend.KindTransport) {
		return unreachableMessage
	}
	if be, ok := backend.AsError(err); ok {
		return truncate(be.Message, maxRawMessageLen)
	}
	return truncate(err.Error(), maxRawMessageLen)
}

// truncate caps at max characters, never splitting a rune.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
