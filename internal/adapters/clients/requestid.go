package clients

import (
	"context"

	"github.com/google/uuid"
)

// HeaderRequestID is the header used to correlate a request across services.
const HeaderRequestID = "X-Request-ID"

type requestIDKey struct{}

// WithRequestID stores a request ID in the context for propagation to
// outgoing requests.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFromContext extracts the request ID from context, or "" when none
// is set.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}

	return ""
}

// ensureRequestID returns the context's request ID, generating a fresh one
// when the caller did not supply any.
func ensureRequestID(ctx context.Context) string {
	if id := RequestIDFromContext(ctx); id != "" {
		return id
	}

	return uuid.NewString()
}
