// Package app contains application services that orchestrate use cases.
// This is the application layer in Clean Architecture - it coordinates
// domain logic and infrastructure through ports.
package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/stantonwjones/resourceful/internal/domain"
	"github.com/stantonwjones/resourceful/internal/ports"
)

// ResourceService orchestrates resource persistence use cases.
// It depends on port interfaces, not concrete implementations,
// following the Dependency Inversion Principle.
type ResourceService struct {
	resources ports.ResourceClient
	logger    *slog.Logger
}

// ResourceServiceConfig contains configuration for the resource service.
type ResourceServiceConfig struct {
	Resources ports.ResourceClient
	Logger    *slog.Logger
}

// NewResourceService creates a new resource service with the provided dependencies.
func NewResourceService(cfg ResourceServiceConfig) *ResourceService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ResourceService{
		resources: cfg.Resources,
		logger:    logger,
	}
}

// Save persists the resource at the given path and reports whether the
// server accepted it.
//
// New resources are created with a full representation; persisted or
// update-only resources are sent as a partial update. On success the
// resource reflects the server's post-save state and is marked persisted.
//
// A validation failure is the one outcome recovered locally: the decoded
// entries are resolved into the resource's error set (replacing any prior
// errors) and Save returns (false, nil). Every other classified failure
// propagates unmodified, leaving the persisted flag and error set untouched.
func (s *ResourceService) Save(ctx context.Context, path string, r *domain.Resource) (bool, error) {
	s.logger.InfoContext(ctx, "saving resource",
		slog.String("path", path),
		slog.String("type", r.TypeName()),
		slog.Bool("new", r.IsNew()),
	)

	var (
		attrs map[string]any
		err   error
	)

	if r.IsNew() && !r.UpdateOnly() {
		attrs, err = s.resources.Create(ctx, path, r)
	} else {
		attrs, err = s.resources.Update(ctx, path, r)
	}

	if err == nil {
		r.Errors().Clear()
		r.LoadFromServer(attrs)

		s.logger.InfoContext(ctx, "resource saved", slog.String("path", path))

		return true, nil
	}

	var invalid *domain.InvalidRecordError
	if errors.As(err, &invalid) {
		r.CollectErrors(invalid.Entries, false)

		s.logger.InfoContext(ctx, "resource rejected by server",
			slog.String("path", path),
			slog.Int("errors", r.Errors().Len()),
		)

		return false, nil
	}

	s.logger.ErrorContext(ctx, "failed to save resource",
		slog.String("path", path),
		slog.Any("error", err),
	)

	return false, err
}

// Fetch retrieves a resource from the given path. The returned resource is
// persisted. All classified failures propagate, including validation
// failures: only Save defines recovery semantics.
func (s *ResourceService) Fetch(ctx context.Context, path string, cfg *domain.ResourceConfig) (*domain.Resource, error) {
	s.logger.InfoContext(ctx, "fetching resource", slog.String("path", path))

	r, err := s.resources.Fetch(ctx, path, cfg)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch resource",
			slog.String("path", path),
			slog.Any("error", err),
		)
		return nil, err
	}

	return r, nil
}

// Delete removes the resource at the given path. Classified failures
// propagate; the local object, if any, is not mutated.
func (s *ResourceService) Delete(ctx context.Context, path string) error {
	s.logger.InfoContext(ctx, "deleting resource", slog.String("path", path))

	if err := s.resources.Delete(ctx, path); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete resource",
			slog.String("path", path),
			slog.Any("error", err),
		)
		return err
	}

	return nil
}
