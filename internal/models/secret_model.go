package models

import "strings"

// SecretRequest is the POST /secret payload
type SecretRequest struct {
	SecretName  string `json:"secretName"`
	SecretValue string `json:"secretValue"`
}

// MissingFields lists the required fields that are absent or empty, in payload order
func (r SecretRequest) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(r.SecretName) == "" {
		missing = append(missing, "secretName")
	}
	if r.SecretValue == "" {
		missing = append(missing, "secretValue")
	}
	return missing
}

// ErrorResponse is the JSON body written for store and parse failures
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}
