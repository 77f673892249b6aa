// Package acl implements the Anti-Corruption Layer for the vendor API.
// It classifies raw HTTP responses into domain error kinds, decodes the
// vendor's XML and JSON error payloads into normalized entries, and
// translates resource representations between wire form and domain form.
// No vendor wire shape leaks past this package.
package acl
