package acl

import (
	"io"
	"net/http"
	"strings"
)

// ClassifiedResponse is the uniform view of an API response, constructed once
// at the transport boundary. Both the generic error path and the
// validation-recovery path read from it.
type ClassifiedResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// NewClassifiedResponse drains and closes the response body and captures the
// fields the classifier and decoders need. A body read failure yields an
// empty body rather than an error; classification must still succeed.
func NewClassifiedResponse(resp *http.Response) *ClassifiedResponse {
	cr := &ClassifiedResponse{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
	}

	if resp.Body != nil {
		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()

		if err == nil {
			cr.Body = body
		}
	}

	return cr
}

// IsXML reports whether the declared content type is an XML variant.
func (cr *ClassifiedResponse) IsXML() bool {
	return strings.Contains(cr.ContentType, "xml")
}

// IsJSON reports whether the declared content type is a JSON variant.
func (cr *ClassifiedResponse) IsJSON() bool {
	return strings.Contains(cr.ContentType, "json")
}
