package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/myenglish-catalog/internal/domain"
	"github.com/heartmarshall/myenglish-catalog/pkg/ctxutil"
	"github.com/heartmarshall/myenglish-catalog/pkg/envelope"
)

// writeOK wraps data in a success envelope.
func writeOK(w http.ResponseWriter, status int, data any) {
	env, err := envelope.OK(data)
	if err != nil {
		envelope.WriteError(w, envelope.CodeInternal, "internal server error", "")
		return
	}
	envelope.Write(w, status, env)
}

// writeDomainError maps err onto the envelope taxonomy. Only unexpected
// errors are logged; their text never reaches the client.
func writeDomainError(ctx context.Context, log *slog.Logger, w http.ResponseWriter, err error) {
	code := envelope.CodeOf(err)

	var (
		message string
		field   string
	)
	switch code {
	case envelope.CodeValidation:
		message = "invalid input"
		var ve *domain.ValidationError
		if errors.As(err, &ve) && len(ve.Errors) > 0 {
			field = ve.Errors[0].Field
			message = ve.Errors[0].Message
		}
	case envelope.CodeJSONParse:
		message = err.Error()
		var pe *domain.JSONParseError
		if errors.As(err, &pe) {
			message = pe.Message
		}
	case envelope.CodeNotFound:
		message = "not found"
	case envelope.CodeAlreadyExists:
		message = "already exists"
	case envelope.CodeUnauthenticated:
		message = "authentication required"
	case envelope.CodeForbidden:
		message = "forbidden"
	case envelope.CodeUpstream:
		message = "dictionary lookup failed"
		log.WarnContext(ctx, "upstream failure",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
		)
	default:
		message = "internal server error"
		log.ErrorContext(ctx, "unexpected error",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
		)
	}

	envelope.WriteError(w, code, message, field)
}

// decodeBody reads a JSON request body of at most limit bytes into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, limit int64, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errBodyTooLarge
		}
		return domain.NewValidationError("body", fmt.Sprintf("invalid request body: %v", err))
	}
	return nil
}

var errBodyTooLarge = errors.New("request body too large")

func writeDecodeError(ctx context.Context, log *slog.Logger, w http.ResponseWriter, err error) {
	if errors.Is(err, errBodyTooLarge) {
		envelope.Write(w, http.StatusRequestEntityTooLarge,
			envelope.Fail(envelope.CodeValidation, "request body too large", "body"))
		return
	}
	writeDomainError(ctx, log, w, err)
}
