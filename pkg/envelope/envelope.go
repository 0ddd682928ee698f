// Package envelope is the JSON response wrapper shared by the catalog API
// server and its HTTP client.
package envelope

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/heartmarshall/myenglish-catalog/internal/domain"
)

// Error codes carried in Envelope.Code.
const (
	CodeValidation      = "VALIDATION"
	CodeJSONParse       = "JSON_PARSE"
	CodeNotFound        = "NOT_FOUND"
	CodeAlreadyExists   = "ALREADY_EXISTS"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeForbidden       = "FORBIDDEN"
	CodeUpstream        = "UPSTREAM"
	CodeRateLimited     = "RATE_LIMITED"
	CodeInternal        = "INTERNAL"
)

// Envelope is the body of every catalog API response.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Code    string          `json:"code,omitempty"`
	Field   string          `json:"field,omitempty"`
}

// OK builds a success envelope around data. A nil data yields {"success":true}.
func OK(data any) (Envelope, error) {
	if data == nil {
		return Envelope{Success: true}, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Success: true, Data: raw}, nil
}

// Fail builds an error envelope.
func Fail(code, message, field string) Envelope {
	return Envelope{Code: code, Error: message, Field: field}
}

// Sentinel maps a code back onto the domain error it was produced from.
// Unknown codes return nil.
func Sentinel(code string) error {
	switch code {
	case CodeValidation:
		return domain.ErrValidation
	case CodeJSONParse:
		return domain.ErrJSONParse
	case CodeNotFound:
		return domain.ErrNotFound
	case CodeAlreadyExists:
		return domain.ErrAlreadyExists
	case CodeUnauthenticated:
		return domain.ErrUnauthorized
	case CodeForbidden:
		return domain.ErrForbidden
	case CodeUpstream:
		return domain.ErrFetch
	default:
		return nil
	}
}

// CodeOf returns the code for err. Errors outside the domain taxonomy map to
// CodeInternal.
func CodeOf(err error) string {
	switch {
	case errors.Is(err, domain.ErrJSONParse):
		return CodeJSONParse
	case errors.Is(err, domain.ErrValidation):
		return CodeValidation
	case errors.Is(err, domain.ErrUnauthorized):
		return CodeUnauthenticated
	case errors.Is(err, domain.ErrForbidden):
		return CodeForbidden
	case errors.Is(err, domain.ErrFetch):
		return CodeUpstream
	case errors.Is(err, domain.ErrAlreadyExists):
		return CodeAlreadyExists
	case errors.Is(err, domain.ErrNotFound):
		return CodeNotFound
	default:
		return CodeInternal
	}
}

// Status returns the HTTP status the server uses for code.
func Status(code string) int {
	switch code {
	case CodeValidation, CodeJSONParse:
		return http.StatusBadRequest
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists:
		return http.StatusConflict
	case CodeUpstream:
		return http.StatusBadGateway
	case CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Write encodes env as the response body with the given status.
func Write(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(env) //nolint:errcheck
}

// WriteError writes the failure envelope for code with its mapped status.
func WriteError(w http.ResponseWriter, code, message, field string) {
	Write(w, Status(code), Fail(code, message, field))
}
