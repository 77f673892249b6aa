package domain

import (
	"strings"
)

// ResourceConfig describes a resource type.
type ResourceConfig struct {
	// TypeName identifies the resource type (e.g. "account"). Used as the
	// attribute index cache key and as the XML/JSON root element for writes.
	TypeName string

	// KnownAttributes is the declared attribute list for the type. When empty,
	// the known-attribute set is derived from the instance's current keys.
	KnownAttributes []string

	// Nested maps attribute keys to sub-resource configs, used when a loaded
	// value is itself a mapping or a homogeneous list of mappings.
	Nested map[string]*ResourceConfig

	// UpdateOnly marks resources that are always written with a partial
	// update, even before the server has acknowledged them.
	UpdateOnly bool
}

// Resource is an API-backed record: an attribute mapping, a persisted flag,
// and the validation errors attached by the last failed save.
//
// A Resource is not safe for concurrent use; callers must serialize access.
type Resource struct {
	cfg       *ResourceConfig
	attrs     map[string]any
	persisted bool
	errors    ErrorSet
}

// NewResource creates an unsaved resource. Persisted starts false and flips
// true only when attributes are loaded from a server response.
func NewResource(cfg *ResourceConfig) *Resource {
	if cfg == nil {
		cfg = &ResourceConfig{}
	}

	return &Resource{
		cfg:   cfg,
		attrs: make(map[string]any),
	}
}

// TypeName returns the resource's type name.
func (r *Resource) TypeName() string {
	return r.cfg.TypeName
}

// UpdateOnly reports whether saves always issue a partial update.
func (r *Resource) UpdateOnly() bool {
	return r.cfg.UpdateOnly
}

// Persisted reports whether the resource's last-known state was confirmed by
// the server.
func (r *Resource) Persisted() bool {
	return r.persisted
}

// IsNew reports whether the resource has never been acknowledged by the
// server. Always the negation of Persisted; the two cannot fall out of sync.
func (r *Resource) IsNew() bool {
	return !r.persisted
}

// Set assigns an attribute locally. The persisted flag is unchanged.
func (r *Resource) Set(key string, value any) {
	r.attrs[key] = value
}

// Get returns an attribute value.
func (r *Resource) Get(key string) (any, bool) {
	v, ok := r.attrs[key]
	return v, ok
}

// Attributes returns a shallow copy of the attribute mapping.
func (r *Resource) Attributes() map[string]any {
	out := make(map[string]any, len(r.attrs))
	for k, v := range r.attrs {
		out[k] = v
	}

	return out
}

// Errors returns the resource's validation error set.
func (r *Resource) Errors() *ErrorSet {
	return &r.errors
}

// KnownAttributes returns the declared attribute names, or the instance's
// current keys when the type declares none.
func (r *Resource) KnownAttributes() []string {
	if len(r.cfg.KnownAttributes) > 0 {
		return r.cfg.KnownAttributes
	}

	keys := make([]string, 0, len(r.attrs))
	for k := range r.attrs {
		keys = append(keys, k)
	}

	return keys
}

// LoadFromServer replaces the attribute mapping with server-confirmed state
// and marks the resource persisted. Values whose key appears in the nested
// table are materialized as sub-resources (or lists of them), replacing any
// prior value outright.
//
// A nil mapping is a bodiless acknowledgement: the resource is marked
// persisted and keeps its locally assigned attributes. This is the only path
// that sets the persisted flag.
func (r *Resource) LoadFromServer(attrs map[string]any) {
	if attrs == nil {
		r.persisted = true
		return
	}

	r.attrs = make(map[string]any, len(attrs))

	for key, value := range attrs {
		sub, ok := r.cfg.Nested[key]
		if !ok {
			r.attrs[key] = value
			continue
		}

		r.attrs[key] = materializeNested(sub, value)
	}

	r.persisted = true
}

// materializeNested builds sub-resources for mapping or list-of-mapping
// values. Other shapes pass through untouched.
func materializeNested(cfg *ResourceConfig, value any) any {
	switch v := value.(type) {
	case map[string]any:
		child := NewResource(cfg)
		child.LoadFromServer(v)

		return child

	case []any:
		children := make([]any, 0, len(v))

		for _, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return value
			}

			child := NewResource(cfg)
			child.LoadFromServer(m)
			children = append(children, child)
		}

		return children

	default:
		return value
	}
}

// CollectErrors resolves raw error entries against the resource's known
// attributes and attaches the results to the error set. When accumulate is
// false the existing set is cleared first, before any entry is processed.
// Every entry yields exactly one attached error.
func (r *Resource) CollectErrors(entries []ErrorEntry, accumulate bool) {
	if !accumulate {
		r.errors.Clear()
	}

	if len(entries) == 0 {
		return
	}

	ix := r.attributeIndex()

	for _, entry := range entries {
		field := strings.TrimSpace(entry.Field)
		if field != "" {
			r.errors.Add(field, stripHumanizedPrefix(field, entry.Message))
			continue
		}

		if key, remainder, ok := ix.MatchPrefix(entry.Message); ok {
			r.errors.Add(key, remainder)
			continue
		}

		r.errors.Add(BaseField, entry.Message)
	}
}

// attributeIndex returns the index used to resolve bare error messages. A
// declared attribute list is memoized per type; an index derived from the
// instance's current keys is rebuilt every time, since another resource with
// the same type name may carry different attributes.
func (r *Resource) attributeIndex() *AttributeIndex {
	if len(r.cfg.KnownAttributes) > 0 {
		return IndexFor(r.cfg.TypeName, r.cfg.KnownAttributes)
	}

	return BuildAttributeIndex(r.KnownAttributes())
}

// stripHumanizedPrefix removes a leading humanized field name from a message.
// "Name cannot be blank" for field "name" becomes "cannot be blank"; messages
// without the prefix pass through unmodified.
func stripHumanizedPrefix(field, message string) string {
	humanized := Humanize(field)
	prefixLen := len(humanized) + 1

	if len(message) >= prefixLen && strings.EqualFold(message[:len(humanized)], humanized) && message[len(humanized)] == ' ' {
		return message[prefixLen:]
	}

	return message
}
