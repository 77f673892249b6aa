package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stantonwjones/resourceful/internal/domain"
)

// stubResourceClient implements ports.ResourceClient for testing.
type stubResourceClient struct {
	createAttrs map[string]any
	createErr   error
	updateAttrs map[string]any
	updateErr   error
	fetchRes    *domain.Resource
	fetchErr    error
	deleteErr   error

	createCalls int
	updateCalls int
	deleteCalls int
	lastPath    string
}

func (s *stubResourceClient) Fetch(_ context.Context, path string, _ *domain.ResourceConfig) (*domain.Resource, error) {
	s.lastPath = path
	return s.fetchRes, s.fetchErr
}

func (s *stubResourceClient) Create(_ context.Context, path string, _ *domain.Resource) (map[string]any, error) {
	s.createCalls++
	s.lastPath = path
	return s.createAttrs, s.createErr
}

func (s *stubResourceClient) Update(_ context.Context, path string, _ *domain.Resource) (map[string]any, error) {
	s.updateCalls++
	s.lastPath = path
	return s.updateAttrs, s.updateErr
}

func (s *stubResourceClient) Delete(_ context.Context, path string) error {
	s.deleteCalls++
	s.lastPath = path
	return s.deleteErr
}

func newService(stub *stubResourceClient) *ResourceService {
	return NewResourceService(ResourceServiceConfig{Resources: stub})
}

func TestResourceService_SaveNewResourceCreates(t *testing.T) {
	stub := &stubResourceClient{createAttrs: map[string]any{"id": "abc", "name": "Acme"}}
	service := newService(stub)

	r := domain.NewResource(&domain.ResourceConfig{TypeName: "svc_create_account"})
	r.Set("name", "Acme")

	saved, err := service.Save(context.Background(), "/accounts", r)
	require.NoError(t, err)
	assert.True(t, saved)
	assert.Equal(t, 1, stub.createCalls)
	assert.Equal(t, 0, stub.updateCalls)
	assert.True(t, r.Persisted())
	assert.Equal(t, "abc", r.Attributes()["id"])
}

func TestResourceService_SavePersistedResourceUpdates(t *testing.T) {
	stub := &stubResourceClient{updateAttrs: map[string]any{"name": "Acme Rebranded"}}
	service := newService(stub)

	r := domain.NewResource(&domain.ResourceConfig{TypeName: "svc_update_account"})
	r.LoadFromServer(map[string]any{"name": "Acme"})
	require.True(t, r.Persisted())

	saved, err := service.Save(context.Background(), "/accounts/1", r)
	require.NoError(t, err)
	assert.True(t, saved)
	assert.Equal(t, 0, stub.createCalls)
	assert.Equal(t, 1, stub.updateCalls)
	assert.Equal(t, "Acme Rebranded", r.Attributes()["name"])
}

func TestResourceService_SaveUpdateOnlyResourceAlwaysUpdates(t *testing.T) {
	stub := &stubResourceClient{}
	service := newService(stub)

	r := domain.NewResource(&domain.ResourceConfig{
		TypeName:   "svc_updonly_settings",
		UpdateOnly: true,
	})
	require.True(t, r.IsNew())

	saved, err := service.Save(context.Background(), "/settings", r)
	require.NoError(t, err)
	assert.True(t, saved)
	assert.Equal(t, 0, stub.createCalls)
	assert.Equal(t, 1, stub.updateCalls)
}

func TestResourceService_SaveBodilessAckMarksPersisted(t *testing.T) {
	stub := &stubResourceClient{}
	service := newService(stub)

	r := domain.NewResource(&domain.ResourceConfig{TypeName: "svc_ack_account"})
	r.Set("name", "Acme")

	saved, err := service.Save(context.Background(), "/accounts", r)
	require.NoError(t, err)
	assert.True(t, saved)
	assert.True(t, r.Persisted())
	assert.Equal(t, "Acme", r.Attributes()["name"])
}

func TestResourceService_SaveValidationFailureRecoveredLocally(t *testing.T) {
	entries := []domain.ErrorEntry{
		{Field: "name", Message: "cannot be blank"},
		{Message: "Email is invalid"},
	}
	stub := &stubResourceClient{createErr: domain.NewInvalidRecordError(422, entries)}
	service := newService(stub)

	r := domain.NewResource(&domain.ResourceConfig{
		TypeName:        "svc_invalid_account",
		KnownAttributes: []string{"name", "email"},
	})
	r.Set("name", "")

	saved, err := service.Save(context.Background(), "/accounts", r)
	require.NoError(t, err)
	assert.False(t, saved)
	assert.True(t, r.IsNew())
	assert.Equal(t, 2, r.Errors().Len())
	assert.Equal(t, []string{"cannot be blank"}, r.Errors().On("name"))
	assert.Equal(t, []string{"is invalid"}, r.Errors().On("email"))
}

func TestResourceService_SaveClearsPriorErrorsOnValidationFailure(t *testing.T) {
	stub := &stubResourceClient{
		createErr: domain.NewInvalidRecordError(422, []domain.ErrorEntry{
			{Field: "email", Message: "is invalid"},
		}),
	}
	service := newService(stub)

	r := domain.NewResource(&domain.ResourceConfig{TypeName: "svc_replace_account"})
	r.Errors().Add("name", "stale error")

	saved, err := service.Save(context.Background(), "/accounts", r)
	require.NoError(t, err)
	assert.False(t, saved)
	assert.Empty(t, r.Errors().On("name"))
	assert.Equal(t, []string{"is invalid"}, r.Errors().On("email"))
}

func TestResourceService_SaveSuccessClearsErrors(t *testing.T) {
	stub := &stubResourceClient{createAttrs: map[string]any{"name": "Acme"}}
	service := newService(stub)

	r := domain.NewResource(&domain.ResourceConfig{TypeName: "svc_clear_account"})
	r.Errors().Add("name", "stale error")

	saved, err := service.Save(context.Background(), "/accounts", r)
	require.NoError(t, err)
	assert.True(t, saved)
	assert.True(t, r.Errors().Empty())
}

func TestResourceService_SaveOtherFailuresPropagate(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"unauthorized", domain.NewRequestError(domain.KindUnauthorized, 401, "bad key"), domain.ErrUnauthorized},
		{"not found", domain.NewRequestError(domain.KindNotFound, 404, ""), domain.ErrNotFound},
		{"server error", domain.NewRequestError(domain.KindServerError, 503, ""), domain.ErrServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubResourceClient{createErr: tt.err}
			service := newService(stub)

			r := domain.NewResource(&domain.ResourceConfig{TypeName: "svc_prop_account"})
			r.Errors().Add("name", "pre-existing")

			saved, err := service.Save(context.Background(), "/accounts", r)
			require.Error(t, err)
			assert.False(t, saved)
			assert.ErrorIs(t, err, tt.sentinel)

			// The local object is untouched on non-validation failures.
			assert.True(t, r.IsNew())
			assert.Equal(t, []string{"pre-existing"}, r.Errors().On("name"))
		})
	}
}

func TestResourceService_SaveTwiceUsesUpdateAfterCreate(t *testing.T) {
	stub := &stubResourceClient{
		createAttrs: map[string]any{"id": "abc"},
		updateAttrs: map[string]any{"id": "abc", "name": "Acme"},
	}
	service := newService(stub)

	r := domain.NewResource(&domain.ResourceConfig{TypeName: "svc_twice_account"})

	saved, err := service.Save(context.Background(), "/accounts", r)
	require.NoError(t, err)
	require.True(t, saved)

	r.Set("name", "Acme")
	saved, err = service.Save(context.Background(), "/accounts/abc", r)
	require.NoError(t, err)
	require.True(t, saved)

	assert.Equal(t, 1, stub.createCalls)
	assert.Equal(t, 1, stub.updateCalls)
}

func TestResourceService_Fetch(t *testing.T) {
	want := domain.NewResource(&domain.ResourceConfig{TypeName: "svc_fetch_account"})
	want.LoadFromServer(map[string]any{"name": "Acme"})

	stub := &stubResourceClient{fetchRes: want}
	service := newService(stub)

	got, err := service.Fetch(context.Background(), "/accounts/1", nil)
	require.NoError(t, err)
	assert.Same(t, want, got)
	assert.Equal(t, "/accounts/1", stub.lastPath)
}

func TestResourceService_FetchError(t *testing.T) {
	stub := &stubResourceClient{fetchErr: domain.NewRequestError(domain.KindNotFound, 404, "")}
	service := newService(stub)

	_, err := service.Fetch(context.Background(), "/accounts/1", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResourceService_Delete(t *testing.T) {
	stub := &stubResourceClient{}
	service := newService(stub)

	err := service.Delete(context.Background(), "/accounts/1")
	require.NoError(t, err)
	assert.Equal(t, 1, stub.deleteCalls)
}

func TestResourceService_DeleteError(t *testing.T) {
	stub := &stubResourceClient{deleteErr: domain.NewRequestError(domain.KindForbidden, 403, "")}
	service := newService(stub)

	err := service.Delete(context.Background(), "/accounts/1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
