package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Logger logs one "http_request" event per request with request_id, method, path,
// status and duration_ms. It relies on RequestID running first.
func Logger(log *zap.Logger) fiber.Handler {
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		rid := RequestIDFromCtx(c)
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		fields := []zap.Field{
			zap.String("request_id", rid),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Float64("duration_ms", float64(time.Since(start).Microseconds())/1000),
		}
		if status >= fiber.StatusInternalServerError {
			log.Error("http_request", append(fields, zap.Error(err))...)
		} else {
			log.Info("http_request", fields...)
		}

		return err
	}
}
