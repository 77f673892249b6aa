package acl

import (
	"net/http"
	"strings"

	"github.com/beevik/etree"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"

	"github.com/stantonwjones/resourceful/internal/domain"
)

// messagePath locates the server's summary message in structured error
// bodies: a top-level errors.error field.
const messagePath = "errors.error"

// Classify maps a response to its error kind. The bool reports whether the
// response is a failure; success responses (2xx-3xx other than 301/302) are
// not classified. The message is extracted best-effort from the body and may
// be empty. Classification is pure and never fails, regardless of body
// content.
//
// The status table is fixed; existing API clients depend on it bit-for-bit.
func Classify(cr *ClassifiedResponse) (domain.Kind, string, bool) {
	switch {
	case cr.StatusCode == http.StatusMovedPermanently || cr.StatusCode == http.StatusFound:
		return domain.KindRedirect, extractMessage(cr), true

	case cr.StatusCode >= http.StatusOK && cr.StatusCode < http.StatusBadRequest:
		return 0, "", false

	case cr.StatusCode == http.StatusUnauthorized:
		return domain.KindUnauthorized, extractMessage(cr), true

	case cr.StatusCode == http.StatusForbidden:
		return domain.KindForbidden, extractMessage(cr), true

	case cr.StatusCode == http.StatusNotFound:
		return domain.KindNotFound, extractMessage(cr), true

	case cr.StatusCode == http.StatusUnprocessableEntity:
		return domain.KindValidationFailed, extractMessage(cr), true

	case cr.StatusCode == http.StatusPreconditionFailed:
		return domain.KindPreconditionFailed, extractMessage(cr), true

	case cr.StatusCode >= http.StatusInternalServerError && cr.StatusCode < 600:
		return domain.KindServerError, extractMessage(cr), true

	default:
		return domain.KindUnknown, extractMessage(cr), true
	}
}

// ClassifyError returns the classified domain error for a failure response,
// or nil for a success.
func ClassifyError(cr *ClassifiedResponse) error {
	kind, message, failed := Classify(cr)
	if !failed {
		return nil
	}

	return domain.NewRequestError(kind, cr.StatusCode, message)
}

// extractMessage pulls the summary message out of a structured error body.
// Unparsable bodies and bodies without the field yield "", never an error.
// A trailing period is stripped.
func extractMessage(cr *ClassifiedResponse) string {
	if len(cr.Body) == 0 {
		return ""
	}

	var message string

	switch {
	case cr.IsXML():
		message = extractXMLMessage(cr.Body)
	default:
		// Content-type headers are unreliable; JSON is the common case.
		message = extractJSONMessage(cr.Body)
	}

	return strings.TrimSuffix(strings.TrimSpace(message), ".")
}

// extractJSONMessage reads errors.error from a JSON document.
func extractJSONMessage(body []byte) string {
	data, err := oj.Parse(body)
	if err != nil {
		return ""
	}

	expr, err := jp.ParseString(messagePath)
	if err != nil {
		return ""
	}

	for _, v := range expr.Get(data) {
		if s, ok := v.(string); ok {
			return s
		}
	}

	return ""
}

// extractXMLMessage reads <errors><error> text from an XML document.
func extractXMLMessage(body []byte) string {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return ""
	}

	if el := doc.FindElement("/errors/error"); el != nil {
		return strings.TrimSpace(el.Text())
	}

	return ""
}
