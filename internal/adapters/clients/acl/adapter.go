package acl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/stantonwjones/resourceful/internal/adapters/clients"
	"github.com/stantonwjones/resourceful/internal/domain"
	"github.com/stantonwjones/resourceful/internal/platform/logging"
)

// ResourceAdapterConfig contains configuration for the resource adapter.
type ResourceAdapterConfig struct {
	// Client is the HTTP client to use for requests. Its BaseURL should be
	// set to the API endpoint.
	Client *clients.Client

	// Format selects the wire encoding for request bodies.
	Format Format

	// Logger is the structured logger.
	Logger *slog.Logger
}

// ResourceAdapter implements ports.ResourceClient against the vendor API.
// It classifies every response at the transport boundary: success responses
// become attribute mappings, failures become domain errors, and a 422 has its
// payload decoded into raw error entries before it leaves this package.
type ResourceAdapter struct {
	client *clients.Client
	format Format
	logger *slog.Logger
}

// NewResourceAdapter creates a new resource adapter.
// Panics if Client is nil. Defaults logger to slog.Default() if nil.
func NewResourceAdapter(cfg ResourceAdapterConfig) *ResourceAdapter {
	if cfg.Client == nil {
		panic("ResourceAdapter: Client is required")
	}

	format := cfg.Format
	if format == "" {
		format = FormatJSON
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ResourceAdapter{
		client: cfg.Client,
		format: format,
		logger: logger,
	}
}

// Fetch retrieves a resource representation and returns a persisted resource.
// Implements ports.ResourceClient.
func (a *ResourceAdapter) Fetch(ctx context.Context, path string, cfg *domain.ResourceConfig) (*domain.Resource, error) {
	a.logger.Log(ctx, logging.LevelTrace, "starting request", slog.String("path", path))

	resp, err := a.client.Get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", path, err)
	}

	cr := NewClassifiedResponse(resp)
	a.logRequestComplete(ctx, path, cr)

	if err := ClassifyError(cr); err != nil {
		return nil, err
	}

	attrs, err := DecodeResourceBody(cr.Body, cr.ContentType)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", path, err)
	}

	r := domain.NewResource(cfg)
	r.LoadFromServer(attrs)

	return r, nil
}

// Create submits a full representation of a new resource with POST.
// Implements ports.ResourceClient.
func (a *ResourceAdapter) Create(ctx context.Context, path string, r *domain.Resource) (map[string]any, error) {
	return a.write(ctx, http.MethodPost, path, r)
}

// Update submits a partial update with PUT.
// Implements ports.ResourceClient.
func (a *ResourceAdapter) Update(ctx context.Context, path string, r *domain.Resource) (map[string]any, error) {
	return a.write(ctx, http.MethodPut, path, r)
}

// Delete removes the resource at the given path.
// Implements ports.ResourceClient.
func (a *ResourceAdapter) Delete(ctx context.Context, path string) error {
	a.logger.Log(ctx, logging.LevelTrace, "starting request", slog.String("path", path))

	resp, err := a.client.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", path, err)
	}

	cr := NewClassifiedResponse(resp)
	a.logRequestComplete(ctx, path, cr)

	return ClassifyError(cr)
}

// write sends the encoded resource and translates the outcome. A 422 returns
// a *domain.InvalidRecordError carrying the decoded entries; other failures
// return classified request errors.
func (a *ResourceAdapter) write(ctx context.Context, method, path string, r *domain.Resource) (map[string]any, error) {
	body, contentType, err := EncodeResource(r, a.format)
	if err != nil {
		return nil, err
	}

	a.logger.Log(ctx, logging.LevelTrace, "starting request",
		slog.String("method", method),
		slog.String("path", path))

	var resp *http.Response
	if method == http.MethodPost {
		resp, err = a.client.Post(ctx, path, contentType, bytes.NewReader(body))
	} else {
		resp, err = a.client.Put(ctx, path, contentType, bytes.NewReader(body))
	}

	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	cr := NewClassifiedResponse(resp)
	a.logRequestComplete(ctx, path, cr)

	kind, message, failed := Classify(cr)
	if !failed {
		return a.decodeWriteBody(ctx, cr), nil
	}

	if kind == domain.KindValidationFailed {
		return nil, domain.NewInvalidRecordError(cr.StatusCode, a.decodeValidationEntries(ctx, cr))
	}

	return nil, domain.NewRequestError(kind, cr.StatusCode, message)
}

// decodeWriteBody parses the server's post-save representation. A body that
// fails to parse is tolerated: the save succeeded, the reload is best-effort.
func (a *ResourceAdapter) decodeWriteBody(ctx context.Context, cr *ClassifiedResponse) map[string]any {
	attrs, err := DecodeResourceBody(cr.Body, cr.ContentType)
	if err != nil {
		a.logger.DebugContext(ctx, "ignoring unparsable save response body",
			slog.Any("error", err))
		return nil
	}

	return attrs
}

// decodeValidationEntries runs the payload fallback chain. A totally
// unparsable body is recovered as an empty entry list; ErrMalformedPayload
// never propagates past this adapter.
func (a *ResourceAdapter) decodeValidationEntries(ctx context.Context, cr *ClassifiedResponse) []domain.ErrorEntry {
	result, err := DecodeErrorPayload(cr.Body, cr.ContentType)
	if err != nil {
		if !errors.Is(err, ErrMalformedPayload) {
			a.logger.WarnContext(ctx, "unexpected error decoding validation payload",
				slog.Any("error", err))
		}
		return nil
	}

	return result.Entries
}

func (a *ResourceAdapter) logRequestComplete(ctx context.Context, path string, cr *ClassifiedResponse) {
	a.logger.Log(ctx, logging.LevelTrace, "request complete",
		slog.String("path", path),
		slog.Int("status", cr.StatusCode))
}
