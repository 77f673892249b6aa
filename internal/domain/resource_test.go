package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResource_StartsNew(t *testing.T) {
	r := NewResource(&ResourceConfig{TypeName: "account"})

	assert.True(t, r.IsNew())
	assert.False(t, r.Persisted())
	assert.Equal(t, "account", r.TypeName())
	assert.False(t, r.UpdateOnly())
	assert.True(t, r.Errors().Empty())
}

func TestNewResource_NilConfig(t *testing.T) {
	r := NewResource(nil)

	assert.True(t, r.IsNew())
	assert.Empty(t, r.TypeName())

	r.Set("name", "widget")
	v, ok := r.Get("name")
	require.True(t, ok)
	assert.Equal(t, "widget", v)
}

func TestResource_SetDoesNotChangePersisted(t *testing.T) {
	r := NewResource(&ResourceConfig{TypeName: "account"})

	r.Set("name", "widget")

	assert.True(t, r.IsNew())
	assert.False(t, r.Persisted())
}

func TestResource_IsNewIsNegationOfPersisted(t *testing.T) {
	r := NewResource(nil)

	assert.Equal(t, !r.Persisted(), r.IsNew())

	r.LoadFromServer(map[string]any{"id": "1"})

	assert.Equal(t, !r.Persisted(), r.IsNew())
	assert.False(t, r.IsNew())
}

func TestResource_Attributes_ReturnsCopy(t *testing.T) {
	r := NewResource(nil)
	r.Set("name", "widget")

	attrs := r.Attributes()
	attrs["name"] = "mutated"
	attrs["extra"] = true

	v, ok := r.Get("name")
	require.True(t, ok)
	assert.Equal(t, "widget", v)

	_, ok = r.Get("extra")
	assert.False(t, ok)
}

func TestResource_LoadFromServer(t *testing.T) {
	r := NewResource(&ResourceConfig{TypeName: "account"})
	r.Set("name", "draft")
	r.Set("local_only", true)

	r.LoadFromServer(map[string]any{
		"id":   "acct-1",
		"name": "confirmed",
	})

	assert.True(t, r.Persisted())
	assert.False(t, r.IsNew())

	// Server state replaces local attrs outright
	assert.Equal(t, map[string]any{
		"id":   "acct-1",
		"name": "confirmed",
	}, r.Attributes())
}

func TestResource_LoadFromServer_NilMarksPersistedKeepingAttrs(t *testing.T) {
	r := NewResource(nil)
	r.Set("name", "widget")

	r.LoadFromServer(nil)

	assert.True(t, r.Persisted())
	assert.Equal(t, map[string]any{"name": "widget"}, r.Attributes())
}

func TestResource_PersistedNeverReverts(t *testing.T) {
	r := NewResource(nil)
	r.LoadFromServer(map[string]any{"id": "1"})
	require.True(t, r.Persisted())

	r.Set("name", "changed")
	r.CollectErrors([]ErrorEntry{{Field: "name", Message: "is invalid"}}, false)

	assert.True(t, r.Persisted())
}

func TestResource_LoadFromServer_NestedMapping(t *testing.T) {
	r := NewResource(&ResourceConfig{
		TypeName: "account",
		Nested: map[string]*ResourceConfig{
			"billing_info": {TypeName: "billing_info"},
		},
	})

	r.LoadFromServer(map[string]any{
		"id": "acct-1",
		"billing_info": map[string]any{
			"zip": "12345",
		},
	})

	v, ok := r.Get("billing_info")
	require.True(t, ok)

	child, ok := v.(*Resource)
	require.True(t, ok, "nested mapping should materialize as a sub-resource")
	assert.Equal(t, "billing_info", child.TypeName())
	assert.True(t, child.Persisted())

	zip, ok := child.Get("zip")
	require.True(t, ok)
	assert.Equal(t, "12345", zip)
}

func TestResource_LoadFromServer_NestedList(t *testing.T) {
	r := NewResource(&ResourceConfig{
		TypeName: "subscription",
		Nested: map[string]*ResourceConfig{
			"add_ons": {TypeName: "add_on"},
		},
	})

	r.LoadFromServer(map[string]any{
		"add_ons": []any{
			map[string]any{"code": "ipaddresses"},
			map[string]any{"code": "support"},
		},
	})

	v, ok := r.Get("add_ons")
	require.True(t, ok)

	children, ok := v.([]any)
	require.True(t, ok)
	require.Len(t, children, 2)

	first, ok := children[0].(*Resource)
	require.True(t, ok)
	assert.True(t, first.Persisted())

	code, _ := first.Get("code")
	assert.Equal(t, "ipaddresses", code)
}

func TestResource_LoadFromServer_HeterogeneousListPassesThrough(t *testing.T) {
	r := NewResource(&ResourceConfig{
		TypeName: "subscription",
		Nested: map[string]*ResourceConfig{
			"add_ons": {TypeName: "add_on"},
		},
	})

	original := []any{map[string]any{"code": "a"}, "not-a-mapping"}
	r.LoadFromServer(map[string]any{"add_ons": original})

	v, ok := r.Get("add_ons")
	require.True(t, ok)
	assert.Equal(t, original, v)
}

func TestResource_LoadFromServer_NonNestedKeyUntouched(t *testing.T) {
	r := NewResource(&ResourceConfig{TypeName: "account"})

	r.LoadFromServer(map[string]any{
		"metadata": map[string]any{"color": "red"},
	})

	v, _ := r.Get("metadata")
	assert.Equal(t, map[string]any{"color": "red"}, v)
}

func TestResource_KnownAttributes_Declared(t *testing.T) {
	r := NewResource(&ResourceConfig{
		TypeName:        "account",
		KnownAttributes: []string{"name", "email"},
	})
	r.Set("something_else", 1)

	assert.Equal(t, []string{"name", "email"}, r.KnownAttributes())
}

func TestResource_KnownAttributes_DerivedFromInstance(t *testing.T) {
	r := NewResource(nil)
	r.Set("name", "widget")
	r.Set("email", "a@b.c")

	assert.ElementsMatch(t, []string{"name", "email"}, r.KnownAttributes())
}

func TestResource_CollectErrors_FieldEntries(t *testing.T) {
	r := NewResource(&ResourceConfig{
		TypeName:        "ce_field_account",
		KnownAttributes: []string{"name", "email"},
	})

	r.CollectErrors([]ErrorEntry{
		{Field: "name", Message: "cannot be blank"},
		{Field: "email", Message: "is invalid"},
	}, false)

	assert.Equal(t, []string{"cannot be blank"}, r.Errors().On("name"))
	assert.Equal(t, []string{"is invalid"}, r.Errors().On("email"))
	assert.Equal(t, 2, r.Errors().Len())
}

func TestResource_CollectErrors_StripsHumanizedPrefix(t *testing.T) {
	r := NewResource(&ResourceConfig{
		TypeName:        "ce_prefix_account",
		KnownAttributes: []string{"first_name"},
	})

	r.CollectErrors([]ErrorEntry{
		{Field: "first_name", Message: "First name cannot be blank"},
	}, false)

	assert.Equal(t, []string{"cannot be blank"}, r.Errors().On("first_name"))
}

func TestResource_CollectErrors_FieldlessMatchesAttribute(t *testing.T) {
	r := NewResource(&ResourceConfig{
		TypeName:        "ce_fieldless_account",
		KnownAttributes: []string{"account_code", "email"},
	})

	r.CollectErrors([]ErrorEntry{
		{Message: "Account code has already been taken"},
		{Message: "Email is invalid"},
	}, false)

	assert.Equal(t, []string{"has already been taken"}, r.Errors().On("account_code"))
	assert.Equal(t, []string{"is invalid"}, r.Errors().On("email"))
	assert.Empty(t, r.Errors().OnBase())
}

func TestResource_CollectErrors_FieldlessUnmatchedGoesToBase(t *testing.T) {
	r := NewResource(&ResourceConfig{
		TypeName:        "ce_base_account",
		KnownAttributes: []string{"name"},
	})

	r.CollectErrors([]ErrorEntry{
		{Message: "Record has been rejected"},
	}, false)

	assert.Equal(t, []string{"Record has been rejected"}, r.Errors().OnBase())
}

func TestResource_CollectErrors_EveryEntryYieldsOneError(t *testing.T) {
	r := NewResource(&ResourceConfig{
		TypeName:        "ce_count_account",
		KnownAttributes: []string{"name", "email"},
	})

	entries := []ErrorEntry{
		{Field: "name", Message: "cannot be blank"},
		{Message: "Email is invalid"},
		{Message: "Something unrelated happened"},
	}

	r.CollectErrors(entries, false)

	assert.Equal(t, len(entries), r.Errors().Len())
}

func TestResource_CollectErrors_ReplacesByDefault(t *testing.T) {
	r := NewResource(&ResourceConfig{
		TypeName:        "ce_replace_account",
		KnownAttributes: []string{"name", "email"},
	})

	r.CollectErrors([]ErrorEntry{{Field: "name", Message: "cannot be blank"}}, false)
	r.CollectErrors([]ErrorEntry{{Field: "email", Message: "is invalid"}}, false)

	assert.Empty(t, r.Errors().On("name"))
	assert.Equal(t, []string{"is invalid"}, r.Errors().On("email"))
	assert.Equal(t, 1, r.Errors().Len())
}

func TestResource_CollectErrors_Accumulate(t *testing.T) {
	r := NewResource(&ResourceConfig{
		TypeName:        "ce_accumulate_account",
		KnownAttributes: []string{"name", "email"},
	})

	r.CollectErrors([]ErrorEntry{{Field: "name", Message: "cannot be blank"}}, false)
	r.CollectErrors([]ErrorEntry{{Field: "email", Message: "is invalid"}}, true)

	assert.Equal(t, []string{"cannot be blank"}, r.Errors().On("name"))
	assert.Equal(t, []string{"is invalid"}, r.Errors().On("email"))
	assert.Equal(t, 2, r.Errors().Len())
}

func TestResource_CollectErrors_EmptyEntriesClearsWithoutAccumulate(t *testing.T) {
	r := NewResource(&ResourceConfig{
		TypeName:        "ce_empty_account",
		KnownAttributes: []string{"name"},
	})

	r.CollectErrors([]ErrorEntry{{Field: "name", Message: "cannot be blank"}}, false)
	require.Equal(t, 1, r.Errors().Len())

	r.CollectErrors(nil, false)
	assert.True(t, r.Errors().Empty())
}

func TestResource_CollectErrors_EmptyEntriesAccumulateKeepsExisting(t *testing.T) {
	r := NewResource(&ResourceConfig{
		TypeName:        "ce_empty_acc_account",
		KnownAttributes: []string{"name"},
	})

	r.CollectErrors([]ErrorEntry{{Field: "name", Message: "cannot be blank"}}, false)
	r.CollectErrors(nil, true)

	assert.Equal(t, 1, r.Errors().Len())
}

func TestResource_CollectErrors_AnonymousTypeUsesInstanceKeys(t *testing.T) {
	r := NewResource(nil)
	r.Set("quantity", 1)

	r.CollectErrors([]ErrorEntry{
		{Message: "Quantity must be positive"},
	}, false)

	assert.Equal(t, []string{"must be positive"}, r.Errors().On("quantity"))
}

func TestResource_CollectErrors_SharedTypeNameDifferentDeclarations(t *testing.T) {
	narrow := NewResource(&ResourceConfig{
		TypeName:        "ce_shared_account",
		KnownAttributes: []string{"name"},
	})
	wide := NewResource(&ResourceConfig{
		TypeName:        "ce_shared_account",
		KnownAttributes: []string{"name", "email_address"},
	})

	narrow.CollectErrors([]ErrorEntry{{Message: "Name cannot be blank"}}, false)
	wide.CollectErrors([]ErrorEntry{{Message: "Email address is invalid"}}, false)

	assert.Equal(t, []string{"cannot be blank"}, narrow.Errors().On("name"))

	// The wider declaration must resolve against its own list, not the one
	// the first resource registered under the shared type name.
	assert.Equal(t, []string{"is invalid"}, wide.Errors().On("email_address"))
	assert.Empty(t, wide.Errors().OnBase())
}

func TestResource_CollectErrors_InstanceKeysNotCachedPerTypeName(t *testing.T) {
	first := NewResource(&ResourceConfig{TypeName: "ce_instance_account"})
	first.Set("name", "widget")
	first.CollectErrors([]ErrorEntry{{Message: "Name cannot be blank"}}, false)
	require.Equal(t, []string{"cannot be blank"}, first.Errors().On("name"))

	second := NewResource(&ResourceConfig{TypeName: "ce_instance_account"})
	second.Set("quantity", 1)
	second.CollectErrors([]ErrorEntry{{Message: "Quantity must be positive"}}, false)

	assert.Equal(t, []string{"must be positive"}, second.Errors().On("quantity"))
	assert.Empty(t, second.Errors().OnBase())
}

func TestStripHumanizedPrefix(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		message  string
		expected string
	}{
		{"exact prefix", "name", "Name cannot be blank", "cannot be blank"},
		{"underscored field", "first_name", "First name cannot be blank", "cannot be blank"},
		{"case insensitive prefix", "name", "name cannot be blank", "cannot be blank"},
		{"no prefix", "name", "cannot be blank", "cannot be blank"},
		{"prefix without space", "name", "Names must differ", "Names must differ"},
		{"message equals prefix", "name", "Name", "Name"},
		{"empty message", "name", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, stripHumanizedPrefix(tt.field, tt.message))
		})
	}
}
