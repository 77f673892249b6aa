package acl

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/beevik/etree"

	"github.com/stantonwjones/resourceful/internal/domain"
)

// Format selects the wire encoding for resource bodies.
type Format string

const (
	// FormatJSON encodes resources as JSON objects.
	FormatJSON Format = "json"

	// FormatXML encodes resources as XML documents.
	FormatXML Format = "xml"
)

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	if f == FormatXML {
		return "application/xml"
	}

	return "application/json"
}

// defaultRootElement is used for XML documents when the resource type
// declares no name.
const defaultRootElement = "resource"

// EncodeResource serializes a resource's attributes in the given format.
// Returns the body and its content type.
func EncodeResource(r *domain.Resource, format Format) ([]byte, string, error) {
	if format == FormatXML {
		body, err := encodeXMLResource(r)
		return body, format.ContentType(), err
	}

	body, err := json.Marshal(plainAttributes(r.Attributes()))
	if err != nil {
		return nil, "", fmt.Errorf("encoding resource: %w", err)
	}

	return body, format.ContentType(), nil
}

// plainAttributes flattens nested sub-resources back to plain mappings so the
// standard marshalers can handle them.
func plainAttributes(attrs map[string]any) map[string]any {
	out := make(map[string]any, len(attrs))

	for key, value := range attrs {
		out[key] = plainValue(value)
	}

	return out
}

func plainValue(value any) any {
	switch v := value.(type) {
	case *domain.Resource:
		return plainAttributes(v.Attributes())
	case map[string]any:
		return plainAttributes(v)
	case []any:
		items := make([]any, len(v))
		for i, item := range v {
			items[i] = plainValue(item)
		}
		return items
	default:
		return value
	}
}

// encodeXMLResource builds an XML document rooted at the resource's type
// name. Attribute keys are emitted in sorted order so encoding is
// deterministic.
func encodeXMLResource(r *domain.Resource) ([]byte, error) {
	doc := etree.NewDocument()

	root := r.TypeName()
	if root == "" {
		root = defaultRootElement
	}

	appendXMLAttributes(doc.CreateElement(root), plainAttributes(r.Attributes()))

	body, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("encoding resource: %w", err)
	}

	return body, nil
}

func appendXMLAttributes(parent *etree.Element, attrs map[string]any) {
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		appendXMLValue(parent, key, attrs[key])
	}
}

func appendXMLValue(parent *etree.Element, key string, value any) {
	switch v := value.(type) {
	case map[string]any:
		appendXMLAttributes(parent.CreateElement(key), v)
	case []any:
		for _, item := range v {
			appendXMLValue(parent, key, item)
		}
	case nil:
		parent.CreateElement(key)
	default:
		parent.CreateElement(key).SetText(fmt.Sprint(v))
	}
}

// DecodeResourceBody parses a success-response body into an attribute
// mapping, by declared content type. An empty body yields a nil mapping.
func DecodeResourceBody(body []byte, contentType string) (map[string]any, error) {
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, nil
	}

	if strings.Contains(contentType, "xml") {
		return decodeXMLResource(body)
	}

	var attrs map[string]any
	if err := json.Unmarshal(body, &attrs); err != nil {
		return nil, fmt.Errorf("decoding resource body: %w", err)
	}

	return attrs, nil
}

// decodeXMLResource flattens an XML document into an attribute mapping.
// Elements with children become nested mappings; repeated sibling tags
// become lists.
func decodeXMLResource(body []byte) (map[string]any, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, fmt.Errorf("decoding resource body: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, nil
	}

	return elementToMap(root), nil
}

func elementToMap(el *etree.Element) map[string]any {
	attrs := make(map[string]any)

	for _, child := range el.ChildElements() {
		var value any
		if len(child.ChildElements()) > 0 {
			value = elementToMap(child)
		} else {
			value = strings.TrimSpace(child.Text())
		}

		existing, ok := attrs[child.Tag]
		switch {
		case !ok:
			attrs[child.Tag] = value
		case isList(existing):
			attrs[child.Tag] = append(existing.([]any), value)
		default:
			attrs[child.Tag] = []any{existing, value}
		}
	}

	return attrs
}

func isList(v any) bool {
	_, ok := v.([]any)
	return ok
}
