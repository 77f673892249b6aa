package domain

// BaseField is the pseudo-field for errors scoped to the record as a whole
// rather than to a single attribute.
const BaseField = "base"

// ErrorEntry is a raw validation message as decoded from a response body,
// before it is resolved against the record's attributes. Field may be empty
// for bare-string messages.
type ErrorEntry struct {
	Field   string
	Message string
}

// FieldError is a normalized validation failure attached to a record, scoped
// to one attribute or to BaseField.
type FieldError struct {
	Field   string
	Message string
}

// ErrorSet holds the validation errors attached to a record, in the order
// they were added. The zero value is an empty, usable set.
type ErrorSet struct {
	errs []FieldError
}

// Add appends an error under the given field. An empty field attaches the
// error to BaseField.
func (s *ErrorSet) Add(field, message string) {
	if field == "" {
		field = BaseField
	}

	s.errs = append(s.errs, FieldError{Field: field, Message: message})
}

// Clear removes all errors from the set.
func (s *ErrorSet) Clear() {
	s.errs = nil
}

// Len returns the number of errors in the set.
func (s *ErrorSet) Len() int {
	return len(s.errs)
}

// Empty reports whether the set has no errors.
func (s *ErrorSet) Empty() bool {
	return len(s.errs) == 0
}

// On returns the messages attached to the given field, in insertion order.
func (s *ErrorSet) On(field string) []string {
	var msgs []string

	for _, e := range s.errs {
		if e.Field == field {
			msgs = append(msgs, e.Message)
		}
	}

	return msgs
}

// OnBase returns the messages attached to the record as a whole.
func (s *ErrorSet) OnBase() []string {
	return s.On(BaseField)
}

// All returns a copy of every error in insertion order.
func (s *ErrorSet) All() []FieldError {
	out := make([]FieldError, len(s.errs))
	copy(out, s.errs)

	return out
}

// FullMessages renders each error as a display string: field-scoped errors are
// prefixed with the humanized field name, base errors are returned verbatim.
func (s *ErrorSet) FullMessages() []string {
	msgs := make([]string, 0, len(s.errs))

	for _, e := range s.errs {
		if e.Field == BaseField {
			msgs = append(msgs, e.Message)
			continue
		}

		msgs = append(msgs, Humanize(e.Field)+" "+e.Message)
	}

	return msgs
}
