// Package errclass maps failures of the ingestion pipeline and the catalog
// gateway onto a fixed taxonomy with a localized, always renderable message.
package errclass

import (
	"errors"
	"strings"

	"golang.org/x/text/language"

	"github.com/heartmarshall/myenglish-catalog/internal/domain"
)

// Kind is one entry of the failure taxonomy.
type Kind string

const (
	KindValidation   Kind = "ValidationError"
	KindDuplicate    Kind = "DuplicateError"
	KindNotFound     Kind = "NotFoundError"
	KindUnauthorized Kind = "UnauthorizedError"
	KindAPIFetch     Kind = "ApiFetchError"
	KindJSONParse    Kind = "JsonParseError"
	KindDatabase     Kind = "DatabaseError"
)

func (k Kind) String() string { return string(k) }

// Presentation tells the caller where a failure is shown.
type Presentation string

const (
	// PresentationInline renders the message next to the form.
	PresentationInline Presentation = "inline"
	// PresentationPermissionModal opens the permission-denied dialog; closing
	// it cancels the whole operation.
	PresentationPermissionModal Presentation = "permission_modal"
)

// Classification is the renderable form of a failure.
type Classification struct {
	Kind         Kind
	Field        string
	Message      string
	Detail       string
	Presentation Presentation
}

// Text joins the localized message with the verbatim detail, if any.
func (c Classification) Text() string {
	if c.Detail == "" || c.Detail == c.Message {
		return c.Message
	}
	return c.Message + ": " + c.Detail
}

// Classifier classifies errors for one locale.
type Classifier struct {
	tag language.Tag
}

// New creates a Classifier for the best supported match of the given locale
// (for example "ru-RU" or "en"). Unknown or empty locales fall back to English.
func New(locale string) *Classifier {
	return &Classifier{tag: matchLocale(locale)}
}

// Locale returns the negotiated locale.
func (c *Classifier) Locale() language.Tag { return c.tag }

// Classify maps err onto the taxonomy. Unrecognized errors are reported as
// DatabaseError so the caller always has something to show. nil yields a zero value.
func (c *Classifier) Classify(err error) Classification {
	if err == nil {
		return Classification{}
	}

	out := Classification{Presentation: PresentationInline}

	var ve *domain.ValidationError
	var pe *domain.JSONParseError
	var fe *domain.FetchError

	switch {
	case errors.As(err, &ve):
		out.Kind = KindValidation
		out.Field = ve.Field()
		if len(ve.Errors) > 0 {
			out.Detail = ve.Errors[0].Field + ": " + ve.Errors[0].Message
		}
	case errors.As(err, &pe):
		out.Kind = KindJSONParse
		out.Detail = pe.Message
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrForbidden):
		out.Kind = KindUnauthorized
		out.Presentation = PresentationPermissionModal
	case errors.As(err, &fe), errors.Is(err, domain.ErrFetch):
		out.Kind = KindAPIFetch
		out.Detail = err.Error()
	case errors.Is(err, domain.ErrAlreadyExists):
		out.Kind = KindDuplicate
		out.Detail = gatewayDetail(err)
	case errors.Is(err, domain.ErrNotFound):
		out.Kind = KindNotFound
		out.Detail = gatewayDetail(err)
	case errors.Is(err, domain.ErrValidation):
		out.Kind = KindValidation
		out.Detail = gatewayDetail(err)
	case errors.Is(err, domain.ErrJSONParse):
		out.Kind = KindJSONParse
		out.Detail = gatewayDetail(err)
	default:
		out.Kind = KindDatabase
		out.Detail = gatewayDetail(err)
	}

	out.Message = message(c.tag, out.Kind)
	return out
}

// gatewayDetail returns the verbatim server message when the error carries one.
func gatewayDetail(err error) string {
	var d interface{ ServerMessage() string }
	if errors.As(err, &d) {
		if msg := strings.TrimSpace(d.ServerMessage()); msg != "" {
			return msg
		}
	}
	return err.Error()
}
