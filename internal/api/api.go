// Package api defines response envelopes shared across HTTP handlers.
package api

// ErrorResponse is the JSON body returned for any failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MutationResponse is the JSON body returned by price mutation endpoints.
// Warning is set when the mutation succeeded but audit logging failed.
type MutationResponse struct {
	Success bool   `json:"success"`
	Count   int    `json:"count,omitempty"`
	Warning string `json:"warning,omitempty"`
}
