package domain

import (
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// Humanize converts a raw attribute key to its display form:
// "first_name" becomes "First name". Only the first rune is capitalized.
func Humanize(key string) string {
	s := strings.TrimSpace(strings.ReplaceAll(key, "_", " "))
	if s == "" {
		return ""
	}

	r, size := utf8.DecodeRuneInString(s)

	return string(unicode.ToUpper(r)) + s[size:]
}

// indexEntry pairs a humanized attribute name with its raw key.
type indexEntry struct {
	humanized string // lowercased form, used for prefix matching
	key       string
}

// AttributeIndex maps humanized attribute names back to raw attribute keys.
// It is immutable once built.
type AttributeIndex struct {
	entries []indexEntry
	byName  map[string]string
}

// BuildAttributeIndex constructs an index from raw attribute keys. Entries are
// sorted by humanized name so that prefix scans are deterministic; when two
// humanized names are overlapping prefixes of the same message, the
// lexicographically smaller one wins.
func BuildAttributeIndex(keys []string) *AttributeIndex {
	ix := &AttributeIndex{
		entries: make([]indexEntry, 0, len(keys)),
		byName:  make(map[string]string, len(keys)),
	}

	for _, key := range keys {
		humanized := strings.ToLower(Humanize(key))
		if humanized == "" {
			continue
		}

		if _, ok := ix.byName[humanized]; ok {
			continue
		}

		ix.byName[humanized] = key
		ix.entries = append(ix.entries, indexEntry{humanized: humanized, key: key})
	}

	sort.Slice(ix.entries, func(i, j int) bool {
		return ix.entries[i].humanized < ix.entries[j].humanized
	})

	return ix
}

// Resolve returns the raw key for a humanized name (case-insensitive).
func (ix *AttributeIndex) Resolve(humanized string) (string, bool) {
	key, ok := ix.byName[strings.ToLower(humanized)]
	return key, ok
}

// MatchPrefix scans the index for a humanized name that prefixes the message,
// followed by a space. On a match it returns the raw key and the message with
// the prefix stripped. The first match in index order wins.
//
// Candidates are compared with EqualFold on a length-bounded slice of the
// original message, so the stripped remainder is always offset into the bytes
// the caller passed in. Lowering the whole message first would shift offsets
// for the few runes whose case pair changes byte length.
func (ix *AttributeIndex) MatchPrefix(message string) (key, remainder string, ok bool) {
	for _, e := range ix.entries {
		n := len(e.humanized)
		if len(message) > n && message[n] == ' ' && strings.EqualFold(message[:n], e.humanized) {
			return e.key, message[n+1:], true
		}
	}

	return "", "", false
}

// Index cache for declared attribute lists. A declared list is immutable for
// the process lifetime, so entries are populated once and never invalidated.
// The key covers the type name AND the list: two types sharing a name but
// declaring different attributes get separate entries.
var (
	indexMu sync.RWMutex
	indexes = make(map[string]*AttributeIndex)
)

// IndexFor returns the memoized index for a type's declared attribute list,
// building it on first use. An empty typeName bypasses the cache. Only
// declared lists belong here; key sets derived from a resource instance can
// differ per object and must go through BuildAttributeIndex directly.
func IndexFor(typeName string, keys []string) *AttributeIndex {
	if typeName == "" {
		return BuildAttributeIndex(keys)
	}

	cacheKey := typeName + "\x00" + strings.Join(keys, "\x00")

	indexMu.RLock()
	ix, ok := indexes[cacheKey]
	indexMu.RUnlock()

	if ok {
		return ix
	}

	indexMu.Lock()
	defer indexMu.Unlock()

	if ix, ok = indexes[cacheKey]; ok {
		return ix
	}

	ix = BuildAttributeIndex(keys)
	indexes[cacheKey] = ix

	return ix
}
