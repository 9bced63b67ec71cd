package headers

import (
	"iter"
	"maps"
	"net/http"
	"regexp"
	"slices"
	"strings"
)

// https://datatracker.ietf.org/doc/html/rfc9110#name-tokens
var fieldNameRegex = regexp.MustCompile(`^[a-zA-Z0-9!#$%&'*\+\-.^_\x60\|~]+$`)

// Headers represents a collection of HTTP headers. Keys are stored lower-cased.
type Headers struct {
	headers map[string]string
}

func isValidFieldName(key string) bool {
	return fieldNameRegex.MatchString(key)
}

func validHeaderValueByte(c byte) bool {
	switch {
	case c == 0x09: // HTAB
		return true
	case c == 0x20: // SP
		return true
	case 0x21 <= c && c <= 0x7E: // VCHAR
		return true
	case c >= 0x80: // obs-text
		return true
	}
	return false
}

func isValidFieldValue(val string) bool {
	for i := 0; i < len(val); i++ {
		if !validHeaderValueByte(val[i]) {
			return false
		}
	}
	return true
}

func normalizeKey(key string) string {
	return strings.ToLower(key)
}

// Add adds a new header. If the header already exists, the new value is appended to the existing value, separated by a comma.
func (h *Headers) Add(key, value string) {
	if !isValidFieldName(key) || !isValidFieldValue(value) {
		// drop invalid headers to prevent response splitting
		return
	}

	key = normalizeKey(key)
	if existing, ok := h.headers[key]; ok {
		h.headers[key] = existing + ", " + value
	} else {
		h.headers[key] = value
	}
}

// Set replaces any existing value of the header.
func (h *Headers) Set(key, value string) {
	h.Remove(key)
	h.Add(key, value)
}

// Get returns the value of a header.
func (h *Headers) Get(key string) string {
	return h.headers[normalizeKey(key)]
}

// Has reports whether the header is present.
func (h *Headers) Has(key string) bool {
	_, ok := h.headers[normalizeKey(key)]
	return ok
}

// Remove removes a header.
func (h *Headers) Remove(key string) {
	delete(h.headers, normalizeKey(key))
}

// All returns an iterator over all headers.
func (h *Headers) All() iter.Seq2[string, string] {
	return maps.All(h.headers)
}

// Keys returns the header names in sorted order.
func (h *Headers) Keys() []string {
	return slices.Sorted(maps.Keys(h.headers))
}

// Size returns the number of headers.
func (h *Headers) Size() int {
	return len(h.headers)
}

// Map returns a copy of the headers as a plain map.
func (h *Headers) Map() map[string]string {
	return maps.Clone(h.headers)
}

// CopyTo writes every header into dst, replacing values already there.
func (h *Headers) CopyTo(dst http.Header) {
	for k, v := range h.headers {
		dst.Set(k, v)
	}
}

// NewHeaders creates a new Headers object.
func NewHeaders() *Headers {
	return &Headers{
		headers: map[string]string{},
	}
}

// FromHTTP builds Headers from a net/http header map. Repeated values are
// folded into a single comma separated value.
func FromHTTP(src http.Header) *Headers {
	h := NewHeaders()
	for k, values := range src {
		for _, v := range values {
			h.Add(k, v)
		}
	}
	return h
}
