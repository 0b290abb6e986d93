package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmailNotConfigured = errors.New("EmailJS configuration missing. Please contact the administrator.")
	ErrValidation         = errors.New("validation failed")
)

// Message is one contact-form submission, stored in contact_messages.
type Message struct {
	FullName          string    `json:"full_name"`
	PhoneNumber       string    `json:"phone_number"`
	EmailAddress      string    `json:"email_address"`
	InterestedService string    `json:"interested_service"`
	Message           string    `json:"message"`
	CreatedAt         time.Time `json:"created_at,omitempty"`
}

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Normalize trims every field in place.
func (m *Message) Normalize() {
	m.FullName = strings.TrimSpace(m.FullName)
	m.PhoneNumber = strings.TrimSpace(m.PhoneNumber)
	m.EmailAddress = strings.TrimSpace(m.EmailAddress)
	m.InterestedService = strings.TrimSpace(m.InterestedService)
	m.Message = strings.TrimSpace(m.Message)
}

// Validate checks required fields in form order.
func (m Message) Validate() error {
	switch {
	case strings.TrimSpace(m.FullName) == "":
		return &ValidationError{"Please enter your full name"}
	case strings.TrimSpace(m.PhoneNumber) == "":
		return &ValidationError{"Please enter your phone number"}
	case strings.TrimSpace(m.EmailAddress) == "":
		return &ValidationError{"Please enter your email address"}
	case strings.TrimSpace(m.Message) == "":
		return &ValidationError{"Please enter your message"}
	}
	return nil
}

// SaveError reports a failed contact_messages insert with a message fit for
// the form.
type SaveError struct {
	Reason string
	Err    error
}

func (e *SaveError) Error() string { return "Failed to save message: " + e.Reason }

func (e *SaveError) Unwrap() error { return e.Err }

// SendError reports a failed email delivery.
type SendError struct {
	Err error
}

func (e *SendError) Error() string { return "Failed to send message. Please try again." }

func (e *SendError) Unwrap() error { return e.Err }
