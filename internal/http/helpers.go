package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"bikeshare/internal/chart"
	"bikeshare/internal/core"
)

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var pe *ParamError
	switch {
	case errors.As(err, &pe),
		errors.Is(err, core.ErrInvalidYear),
		errors.Is(err, core.ErrInvalidMonth):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case core.IsDataUnavailable(err):
		return http.StatusServiceUnavailable
	case errors.Is(err, chart.ErrNoData):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage hides internal error detail from 5xx responses.
func publicMessage(status int, err error) string {
	switch status {
	case http.StatusServiceUnavailable:
		return "dataset unavailable"
	case http.StatusGatewayTimeout:
		return "request timed out"
	case http.StatusInternalServerError:
		return "internal error"
	default:
		return err.Error()
	}
}
