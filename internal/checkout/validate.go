package checkout

import (
	"regexp"
	"strings"

	"github.com/Mbarca89/vete-front-v2/internal/backend"
)

// Field identifies one checkout form field. Order matters: when several
// fields fail, the first one in form order receives focus.
type Field string

const (
	FieldName  Field = "name"
	FieldEmail Field = "email"
	FieldPhone Field = "phone"
)

var fieldOrder = []Field{FieldName, FieldEmail, FieldPhone}

const phoneDigits = 10

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigitPattern = regexp.MustCompile(`\D`)
)

// FieldErrors maps each invalid field to its user-facing message.
type FieldErrors map[Field]string

// First returns the first invalid field in form order, or "" when valid.
func (e FieldErrors) First() Field {
	for _, f := range fieldOrder {
		if _, ok := e[f]; ok {
			return f
		}
	}
	return ""
}

// Validate checks the customer fields against the form rules. The result is
// independent of which fields the visitor touched first.
func Validate(c backend.Customer) FieldErrors {
	errs := FieldErrors{}

	name := strings.TrimSpace(c.Name)
	email := strings.TrimSpace(c.Email)
	phone := OnlyDigits(c.Phone)

	if name == "" {
		errs[FieldName] = "El nombre es obligatorio."
	}

	if email == "" {
		errs[FieldEmail] = "El email es obligatorio."
	} else if !emailPattern.MatchString(email) {
		errs[FieldEmail] = "El email no tiene un formato válido."
	}

	if phone == "" {
		errs[FieldPhone] = "El teléfono es obligatorio."
	} else if len(phone) != phoneDigits {
		errs[FieldPhone] = "Debe tener exactamente 10 números (sin espacios ni guiones)."
	}

	return errs
}

// Normalize trims name and email and strips the phone down to digits; this
// is the shape sent to the payment endpoint.
func Normalize(c backend.Customer) backend.Customer {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = OnlyDigits(c.Phone)
	return c
}

// OnlyDigits strips every non-digit character.
func OnlyDigits(s string) string {
	return nonDigitPattern.ReplaceAllString(s, "")
}
