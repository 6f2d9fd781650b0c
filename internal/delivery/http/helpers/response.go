package helpers

import (
	"encoding/json"
	"net/http"
)

// Error codes for REST error responses. Use these with WriteJSONError.
const (
	ErrCodeBadRequest    = "bad_request"
	ErrCodeNotFound      = "not_found"
	ErrCodeInternalError = "internal_error"
)

// APIError is the error object in the REST error envelope.
// swagger:model APIError
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIResponse is the envelope for REST routes other than the action endpoint.
// swagger:model APIResponse
type APIResponse struct {
	Data  any       `json:"data"`
	Error *APIError `json:"error"`
}

// WriteJSONError sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with data nil and the given error code and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{
		Data:  nil,
		Error: &APIError{Code: code, Message: message},
	})
}

// Payload holds the fields of an action response next to "ok".
type Payload map[string]any

// ActionResponse documents the action envelope. Successful responses carry extra
// action-specific fields at the top level.
// swagger:model ActionResponse
type ActionResponse struct {
	OK                   bool   `json:"ok"`
	Error                string `json:"error,omitempty"`
	Message              string `json:"message,omitempty"`
	Count                *int   `json:"count,omitempty"`
	ConfirmationRequired bool   `json:"confirmation_required,omitempty"`
}

// WriteActionOK writes 200 with {"ok": true} merged with payload.
func WriteActionOK(w http.ResponseWriter, payload Payload) {
	body := make(Payload, len(payload)+1)
	for k, v := range payload {
		body[k] = v
	}
	body["ok"] = true
	writeAction(w, body)
}

// WriteActionError writes 200 with {"ok": false, "error": message}.
// Action failures are reported in the body, never through the status code.
func WriteActionError(w http.ResponseWriter, message string) {
	writeAction(w, Payload{"ok": false, "error": message})
}

func writeAction(w http.ResponseWriter, body Payload) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(body)
}
