package acl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stantonwjones/resourceful/internal/domain"
)

func TestClassify_StatusTable(t *testing.T) {
	tests := []struct {
		name   string
		status int
		kind   domain.Kind
		failed bool
	}{
		{"200 OK", 200, 0, false},
		{"201 Created", 201, 0, false},
		{"204 No Content", 204, 0, false},
		{"299 success edge", 299, 0, false},
		{"301 Moved Permanently", 301, domain.KindRedirect, true},
		{"302 Found", 302, domain.KindRedirect, true},
		{"303 See Other", 303, 0, false},
		{"304 Not Modified", 304, 0, false},
		{"399 success edge", 399, 0, false},
		{"400 Bad Request", 400, domain.KindUnknown, true},
		{"401 Unauthorized", 401, domain.KindUnauthorized, true},
		{"403 Forbidden", 403, domain.KindForbidden, true},
		{"404 Not Found", 404, domain.KindNotFound, true},
		{"412 Precondition Failed", 412, domain.KindPreconditionFailed, true},
		{"418 Teapot", 418, domain.KindUnknown, true},
		{"422 Unprocessable Entity", 422, domain.KindValidationFailed, true},
		{"429 Too Many Requests", 429, domain.KindUnknown, true},
		{"500 Internal Server Error", 500, domain.KindServerError, true},
		{"503 Service Unavailable", 503, domain.KindServerError, true},
		{"599 server error edge", 599, domain.KindServerError, true},
		{"600 out of range", 600, domain.KindUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cr := &ClassifiedResponse{StatusCode: tt.status}

			kind, _, failed := Classify(cr)
			assert.Equal(t, tt.failed, failed)
			if tt.failed {
				assert.Equal(t, tt.kind, kind)
			}
		})
	}
}

func TestClassify_ExtractsXMLMessage(t *testing.T) {
	cr := &ClassifiedResponse{
		StatusCode:  404,
		ContentType: "application/xml",
		Body:        []byte(`<errors><error>Couldn't find Account with id = abc.</error></errors>`),
	}

	kind, message, failed := Classify(cr)
	require.True(t, failed)
	assert.Equal(t, domain.KindNotFound, kind)
	assert.Equal(t, "Couldn't find Account with id = abc", message)
}

func TestClassify_ExtractsJSONMessage(t *testing.T) {
	cr := &ClassifiedResponse{
		StatusCode:  401,
		ContentType: "application/json",
		Body:        []byte(`{"errors": {"error": "Invalid credentials."}}`),
	}

	kind, message, failed := Classify(cr)
	require.True(t, failed)
	assert.Equal(t, domain.KindUnauthorized, kind)
	assert.Equal(t, "Invalid credentials", message)
}

func TestClassify_MessageEdgeCases(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		expected    string
	}{
		{"empty body", "application/json", "", ""},
		{"unparsable json", "application/json", "{not json", ""},
		{"unparsable xml", "application/xml", "<errors><unclosed", ""},
		{"json without message field", "application/json", `{"message": "nope"}`, ""},
		{"xml without message element", "application/xml", "<errors><other>x</other></errors>", ""},
		{"whitespace trimmed", "application/xml", "<errors><error>  spaced out  </error></errors>", "spaced out"},
		{"only trailing period stripped", "application/json", `{"errors": {"error": "v2.1 is unsupported."}}`, "v2.1 is unsupported"},
		{"non-string json message", "application/json", `{"errors": {"error": 42}}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cr := &ClassifiedResponse{
				StatusCode:  500,
				ContentType: tt.contentType,
				Body:        []byte(tt.body),
			}

			_, message, failed := Classify(cr)
			require.True(t, failed)
			assert.Equal(t, tt.expected, message)
		})
	}
}

func TestClassifyError_Success(t *testing.T) {
	cr := &ClassifiedResponse{StatusCode: 200}

	err := ClassifyError(cr)
	assert.NoError(t, err)
}

func TestClassifyError_Failure(t *testing.T) {
	cr := &ClassifiedResponse{
		StatusCode:  403,
		ContentType: "application/json",
		Body:        []byte(`{"errors": {"error": "Access denied"}}`),
	}

	err := ClassifyError(cr)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	var reqErr *domain.RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, 403, reqErr.StatusCode)
	assert.Equal(t, "Access denied", reqErr.Message)
}

func TestClassify_Deterministic(t *testing.T) {
	cr := &ClassifiedResponse{
		StatusCode:  422,
		ContentType: "application/xml",
		Body:        []byte(`<errors><error>Name is invalid</error></errors>`),
	}

	kind1, msg1, failed1 := Classify(cr)
	kind2, msg2, failed2 := Classify(cr)

	assert.Equal(t, kind1, kind2)
	assert.Equal(t, msg1, msg2)
	assert.Equal(t, failed1, failed2)
}
