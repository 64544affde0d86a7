package domain

import (
	"errors"
	"net/mail"
	"strings"
)

var ErrInvalidInput = errors.New("invalid input")

const (
	PaymentCard  = "card"
	PaymentBank  = "bank"
	PaymentPhone = "phone"
)

// Form is the customer data collected at checkout.
type Form struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	AddressDetail   string `json:"addressDetail"`
	PostalCode      string `json:"postalCode"`
	DeliveryRequest string `json:"deliveryRequest"`
	PaymentMethod   string `json:"paymentMethod"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Validate returns the trimmed form with the payment method defaulted to card,
// or a *ValidationError naming every bad field.
func (f Form) Validate() (Form, error) {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Address = strings.TrimSpace(f.Address)
	f.AddressDetail = strings.TrimSpace(f.AddressDetail)
	f.PostalCode = strings.TrimSpace(f.PostalCode)
	f.DeliveryRequest = strings.TrimSpace(f.DeliveryRequest)
	f.PaymentMethod = strings.ToLower(strings.TrimSpace(f.PaymentMethod))
	if f.PaymentMethod == "" {
		f.PaymentMethod = PaymentCard
	}

	var errs []FieldError
	required := func(field, v string) {
		if v == "" {
			errs = append(errs, FieldError{Field: field, Message: "required"})
		}
	}
	required("name", f.Name)
	required("email", f.Email)
	required("phone", f.Phone)
	required("postalCode", f.PostalCode)
	required("address", f.Address)

	if f.Email != "" {
		if addr, err := mail.ParseAddress(f.Email); err != nil || addr.Address != f.Email {
			errs = append(errs, FieldError{Field: "email", Message: "not a valid address"})
		}
	}
	switch f.PaymentMethod {
	case PaymentCard, PaymentBank, PaymentPhone:
	default:
		errs = append(errs, FieldError{Field: "paymentMethod", Message: "must be card, bank or phone"})
	}

	if len(errs) > 0 {
		return f, &ValidationError{Fields: errs}
	}
	return f, nil
}
