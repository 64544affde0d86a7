package domain

import (
	"errors"
	"net/mail"
	"slices"
	"strings"
	"time"
)

var ErrInvalidInput = errors.New("invalid input")

// Subjects are the inquiry types the contact form offers.
var Subjects = []string{"product", "purchase", "construction", "class", "partnership", "technical", "other"}

type Message struct {
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Subject    string    `json:"subject"`
	Message    string    `json:"message"`
	ReceivedAt time.Time `json:"receivedAt"`
	TicketID   string    `json:"ticketId"`
}

type InvalidFieldsError struct {
	Fields []string
}

func (e *InvalidFieldsError) Error() string {
	return "invalid input: " + strings.Join(e.Fields, ", ")
}

func (e *InvalidFieldsError) Unwrap() error { return ErrInvalidInput }

func (m Message) Validate() (Message, error) {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Phone = strings.TrimSpace(m.Phone)
	m.Subject = strings.TrimSpace(m.Subject)
	m.Message = strings.TrimSpace(m.Message)

	var bad []string
	if m.Name == "" {
		bad = append(bad, "name")
	}
	if addr, err := mail.ParseAddress(m.Email); err != nil || addr.Address != m.Email {
		bad = append(bad, "email")
	}
	if !slices.Contains(Subjects, m.Subject) {
		bad = append(bad, "subject")
	}
	if m.Message == "" {
		bad = append(bad, "message")
	}
	if len(bad) > 0 {
		return m, &InvalidFieldsError{Fields: bad}
	}
	return m, nil
}
