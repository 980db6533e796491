package service

import (
	"errors"
	"fmt"
	"strings"

	"potensidesa/internal/repository"
)

var (
	ErrIDRequired         = errors.New("id is required")
	ErrNotFound           = errors.New("record not found")
	ErrForbidden          = errors.New("not allowed")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError is client input rejected before any external call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ValidationErrors collects every field failure of a form.
type ValidationErrors []*ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

// Field returns the message for field, or "".
func (v ValidationErrors) Field(field string) string {
	for _, e := range v {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

// ProviderError is a failed call to an external service (document database, blob store, auth store).
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *ProviderError) Unwrap() error { return e.Err }

// wrapProvider maps repository.ErrNotFound to ErrNotFound and everything else to a ProviderError.
func wrapProvider(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return &ProviderError{Op: op, Err: err}
}

// UserMessage turns any service error into text safe to show inline on a page.
func UserMessage(err error) string {
	var ve *ValidationError
	var ves ValidationErrors
	var pe *ProviderError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ves):
		return ves.Error()
	case errors.As(err, &ve):
		return ve.Message
	case errors.Is(err, ErrNotFound):
		return "Data tidak ditemukan."
	case errors.Is(err, ErrForbidden):
		return "Anda tidak memiliki akses untuk tindakan ini."
	case errors.Is(err, ErrInvalidCredentials):
		return "Email atau kata sandi salah."
	case errors.As(err, &pe):
		return "Layanan sedang tidak tersedia. Silakan coba lagi."
	default:
		return "Terjadi kesalahan. Silakan coba lagi."
	}
}
