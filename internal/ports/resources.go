// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrNotFound, ErrValidationFailed, etc.)
//   - Keep interfaces small and focused (Interface Segregation Principle)
package ports

import (
	"context"

	"github.com/stantonwjones/resourceful/internal/domain"
)

// ResourceClient is the transport contract the application layer saves and
// loads resources through. Implementations classify every non-success
// response into a domain error before returning.
type ResourceClient interface {
	// Fetch retrieves a resource representation from the given path.
	// The returned resource is persisted. Non-success responses return a
	// classified domain error (ErrNotFound, ErrUnauthorized, ...).
	Fetch(ctx context.Context, path string, cfg *domain.ResourceConfig) (*domain.Resource, error)

	// Create submits a full representation of a new resource. On success it
	// returns the server-confirmed attribute mapping (nil when the response
	// carried no body). A 422 returns a *domain.InvalidRecordError carrying
	// the decoded raw entries; other failures return classified errors.
	Create(ctx context.Context, path string, r *domain.Resource) (map[string]any, error)

	// Update submits a partial update of an existing resource. Error
	// semantics match Create.
	Update(ctx context.Context, path string, r *domain.Resource) (map[string]any, error)

	// Delete removes the resource at the given path. Non-success responses
	// return a classified domain error.
	Delete(ctx context.Context, path string) error
}
