package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"secretGateway/internal/middleware"
	"secretGateway/internal/models"
	"secretGateway/internal/store"

	"github.com/rs/zerolog"
)

// ErrMalformedSecret means a structured secret's value is not valid JSON
var ErrMalformedSecret = errors.New("stored secret is not valid JSON")

// errorClass names err for response bodies and metric labels
func errorClass(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, store.ErrNotFound):
		return "not_found"
	case errors.Is(err, store.ErrInvalidName):
		return "invalid_name"
	case errors.Is(err, store.ErrTransport):
		return "store_unavailable"
	case errors.Is(err, ErrMalformedSecret):
		return "malformed_secret"
	default:
		return "internal"
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrInvalidName):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrTransport):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError logs err and writes exactly one mapped response.
// Validation failures are plain text, everything else a JSON ErrorResponse.
func writeError(w http.ResponseWriter, r *http.Request, secretName string, err error) {
	status := statusFor(err)
	class := errorClass(err)

	ev := zerolog.Ctx(r.Context()).Error()
	if status < http.StatusInternalServerError {
		ev = zerolog.Ctx(r.Context()).Warn()
	}
	ev.Err(err).Str("secret", secretName).Int("status", status).Msg("secret operation failed")

	// the cause can carry backend detail, keep it out of the body
	if status == http.StatusBadRequest {
		http.Error(w, "invalid secret name", status)
		return
	}

	message := http.StatusText(status)
	switch class {
	case "not_found":
		message = "secret " + secretName + " not found"
	case "malformed_secret":
		message = ErrMalformedSecret.Error()
	case "store_unavailable":
		message = store.ErrTransport.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(models.ErrorResponse{
		Error:     class,
		Message:   message,
		RequestID: middleware.GetRequestID(r.Context()),
	})
}
