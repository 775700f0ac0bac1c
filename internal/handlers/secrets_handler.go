package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"secretGateway/internal/metrics"
	"secretGateway/internal/models"
	"secretGateway/internal/store"

	"github.com/rs/zerolog"
)

const (
	// SecretName is the secret served by GET /secret
	SecretName = "testsecret"
	// MultilineSecretName is the structured secret served by GET /multilinesecret
	MultilineSecretName = "MultilineSecret"

	maxBodyBytes = 1 << 20
)

// SecretsHandler translates HTTP requests into secret store calls
type SecretsHandler struct {
	Client  store.SecretStore
	Metrics *metrics.Metrics
}

// NewSecretsHandler creates a new SecretsHandler. m may be nil.
func NewSecretsHandler(client store.SecretStore, m *metrics.Metrics) *SecretsHandler {
	return &SecretsHandler{
		Client:  client,
		Metrics: m,
	}
}

// Hello handles GET /
func (h *SecretsHandler) Hello(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, "Hello World!")
}

// Healthz handles GET /healthz
func (h *SecretsHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, "ok")
}

// GetSecret handles GET /secret
func (h *SecretsHandler) GetSecret(w http.ResponseWriter, r *http.Request) {
	secret, err := h.get(r, SecretName)
	if err != nil {
		writeError(w, r, SecretName, err)
		return
	}

	writeText(w, http.StatusOK, secret.Value)
}

// GetMultilineSecret handles GET /multilinesecret
func (h *SecretsHandler) GetMultilineSecret(w http.ResponseWriter, r *http.Request) {
	secret, err := h.get(r, MultilineSecretName)
	if err != nil {
		writeError(w, r, MultilineSecretName, err)
		return
	}

	doc, err := ParseStructured(secret.Value)
	if err != nil {
		writeError(w, r, MultilineSecretName, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(doc); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to write response")
	}
}

// CreateSecret handles POST /secret
func (h *SecretsHandler) CreateSecret(w http.ResponseWriter, r *http.Request) {
	var req models.SecretRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		http.Error(w, "invalid request payload", http.StatusBadRequest)
		return
	}

	if missing := req.MissingFields(); len(missing) > 0 {
		http.Error(w, "missing required fields: "+strings.Join(missing, ", "), http.StatusBadRequest)
		return
	}

	err := h.Client.SetSecret(r.Context(), req.SecretName, req.SecretValue)
	h.observe("set", err)
	if err != nil {
		writeError(w, r, req.SecretName, err)
		return
	}

	zerolog.Ctx(r.Context()).Info().Str("secret", req.SecretName).Msg("secret created")
	writeText(w, http.StatusOK, "Secret created")
}

func (h *SecretsHandler) get(r *http.Request, name string) (store.Secret, error) {
	secret, err := h.Client.GetSecret(r.Context(), name)
	h.observe("get", err)
	return secret, err
}

func (h *SecretsHandler) observe(op string, err error) {
	if h.Metrics == nil {
		return
	}
	h.Metrics.ObserveStore(op, errorClass(err))
}

// ParseStructured decodes a structured secret value. Numbers keep their
// textual form and trailing data after the document is rejected.
func ParseStructured(value string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(value))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSecret, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after document", ErrMalformedSecret)
	}
	return doc, nil
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
