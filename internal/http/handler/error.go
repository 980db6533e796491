package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"potensidesa/internal/http/middleware"
	"potensidesa/internal/service"
)

// errorPayload defines the standardized error response body.
// Error is the human-readable message, Code a machine-readable short code.
type errorPayload struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "FILE_REQUIRED", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		Error:     message,
		Code:      code,
		RequestID: middleware.RequestIDFromCtx(c),
	})
}

// statusFor maps a service error to the HTTP status a page is rendered with.
func statusFor(err error) int {
	var ve *service.ValidationError
	var ves service.ValidationErrors
	var pe *service.ProviderError
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.As(err, &ves), errors.As(err, &ve), errors.Is(err, service.ErrIDRequired):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return fiber.StatusNotFound
	case errors.As(err, &pe):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusForbidden:
			return writeError(c, status, "FORBIDDEN", "forbidden")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "BODY_TOO_LARGE", "request body too large")
		case fiber.StatusTooManyRequests:
			return writeError(c, status, "RATE_LIMITED", "too many requests")
		default:
			log.Error("unhandled_error",
				zap.String("request_id", middleware.RequestIDFromCtx(c)),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
