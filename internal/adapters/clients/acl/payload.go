package acl

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/stantonwjones/resourceful/internal/domain"
)

// ErrMalformedPayload indicates an error body that could not be tokenized at
// all. It never escapes the adapter: callers recover it by treating the
// payload as empty.
var ErrMalformedPayload = errors.New("malformed error payload")

// DecodeMode tags which stage of the fallback chain produced a result.
type DecodeMode int

const (
	// DecodeEmpty means the body carried no error entries.
	DecodeEmpty DecodeMode = iota

	// DecodeStructured means the body matched the expected field/message shape.
	DecodeStructured

	// DecodeFlat means the structured shape was absent and each error was
	// read as a bare message string.
	DecodeFlat
)

// DecodeResult is the outcome of decoding an error payload.
type DecodeResult struct {
	Mode    DecodeMode
	Entries []domain.ErrorEntry
}

// DecodeErrorPayload parses a validation-error body of the declared content
// type into raw error entries, in document order. Malformed-but-parseable
// documents degrade to the flat decode; only bytes the parser cannot
// tokenize return ErrMalformedPayload. Unknown content types and empty
// bodies yield an empty result. Decoding the same well-formed payload twice
// yields identical results.
func DecodeErrorPayload(body []byte, contentType string) (DecodeResult, error) {
	if len(body) == 0 {
		return DecodeResult{Mode: DecodeEmpty}, nil
	}

	switch {
	case strings.Contains(contentType, "xml"):
		return decodeXMLErrors(body)
	case strings.Contains(contentType, "json"):
		return decodeJSONErrors(body)
	default:
		return DecodeResult{Mode: DecodeEmpty}, nil
	}
}

// decodeXMLErrors expects <errors><error field="...">message</error></errors>.
// The field attribute is optional. Documents without the errors container
// fall back to reading any error element, or the root text, as bare messages.
func decodeXMLErrors(body []byte) (DecodeResult, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return DecodeResult{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	if container := doc.FindElement("//errors"); container != nil {
		nodes := container.SelectElements("error")
		if len(nodes) > 0 {
			entries := make([]domain.ErrorEntry, 0, len(nodes))

			for _, node := range nodes {
				entries = append(entries, domain.ErrorEntry{
					Field:   node.SelectAttrValue("field", ""),
					Message: strings.TrimSpace(node.Text()),
				})
			}

			return DecodeResult{Mode: DecodeStructured, Entries: entries}, nil
		}
	}

	return decodeXMLFlat(doc)
}

// decodeXMLFlat is the degraded path for XML that parsed but did not match
// the structured shape: every error element's text, or failing that the
// document's text content, becomes a bare message.
func decodeXMLFlat(doc *etree.Document) (DecodeResult, error) {
	var entries []domain.ErrorEntry

	for _, node := range doc.FindElements("//error") {
		if text := strings.TrimSpace(node.Text()); text != "" {
			entries = append(entries, domain.ErrorEntry{Message: text})
		}
	}

	if len(entries) == 0 {
		if root := doc.Root(); root != nil {
			if text := strings.TrimSpace(root.Text()); text != "" {
				entries = append(entries, domain.ErrorEntry{Message: text})
			}
		}
	}

	if len(entries) == 0 {
		return DecodeResult{Mode: DecodeEmpty}, nil
	}

	return DecodeResult{Mode: DecodeFlat, Entries: entries}, nil
}

// jsonErrorObject is the structured element form in JSON error lists.
type jsonErrorObject struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// decodeJSONErrors expects {"errors": [...]} where each element is either a
// bare string or a {field, message} object. The two forms may be mixed in
// one list; every element yields exactly one entry.
func decodeJSONErrors(body []byte) (DecodeResult, error) {
	var payload struct {
		Errors []json.RawMessage `json:"errors"`
	}

	if err := json.Unmarshal(body, &payload); err != nil {
		return DecodeResult{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	if len(payload.Errors) == 0 {
		return DecodeResult{Mode: DecodeEmpty}, nil
	}

	entries := make([]domain.ErrorEntry, 0, len(payload.Errors))
	structured := false

	for _, raw := range payload.Errors {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			entries = append(entries, domain.ErrorEntry{Message: s})
			continue
		}

		var obj jsonErrorObject
		if err := json.Unmarshal(raw, &obj); err == nil && obj.Message != "" {
			structured = true
			entries = append(entries, domain.ErrorEntry{Field: obj.Field, Message: obj.Message})
			continue
		}

		// Unrecognized element shapes still yield one entry each.
		entries = append(entries, domain.ErrorEntry{Message: string(raw)})
	}

	mode := DecodeFlat
	if structured {
		mode = DecodeStructured
	}

	return DecodeResult{Mode: mode, Entries: entries}, nil
}
