// Package headers is the ordered, duplicate-preserving header-entry list
// shared by the request assembler (C3) and the response parser (C2).
package headers

import "strings"

// Entry is a single header-list element. It is either a structured
// {Name, Value} pair (formatted as "Name: Value" on emission) or a Raw byte
// sequence emitted verbatim — including CRLF, NUL, or other grammar
// violations. Raw, when non-nil, completely replaces formatting.
type Entry struct {
	Name  string
	Value string
	Raw   []byte
}

// IsRaw reports whether this entry bypasses name/value formatting.
func (e Entry) IsRaw() bool { return e.Raw != nil }

// List is an ordered sequence of header entries. Insertion order is never
// altered and duplicates are never collapsed — every mutating method
// appends.
type List struct {
	entries []Entry
}

// Append adds a structured {name, value} entry.
func (l *List) Append(name, value string) {
	l.entries = append(l.entries, Entry{Name: name, Value: value})
}

// AppendRaw adds a raw byte-sequence entry.
func (l *List) AppendRaw(raw []byte) {
	cp := make([]byte, len(raw))
	copy(cp, raw)
	l.entries = append(l.entries, Entry{Raw: cp})
}

// All returns the entries in insertion order. The returned slice is owned by
// the caller and safe to read but must not be mutated to rewrite history.
func (l *List) All() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries, raw and structured combined.
func (l *List) Len() int { return len(l.entries) }

// Has reports whether any structured entry has this name, case-insensitively.
func (l *List) Has(name string) bool {
	low := strings.ToLower(name)
	for _, e := range l.entries {
		if e.IsRaw() {
			continue
		}
		if strings.ToLower(e.Name) == low {
			return true
		}
	}
	return false
}

// Clone returns an independent deep copy.
func (l *List) Clone() *List {
	out := &List{entries: make([]Entry, len(l.entries))}
	for i, e := range l.entries {
		ne := e
		if e.Raw != nil {
			ne.Raw = make([]byte, len(e.Raw))
			copy(ne.Raw, e.Raw)
		}
		out.entries[i] = ne
	}
	return out
}

// MultiMap is the parsed-response header shape from §3: lowercase-name keys
// with an ordered list of values preserving arrival order for duplicates.
type MultiMap struct {
	keys   []string // insertion order of first-seen lowercase keys
	values map[string][]string
}

// NewMultiMap returns an empty, ready-to-use MultiMap.
func NewMultiMap() *MultiMap {
	return &MultiMap{values: make(map[string][]string)}
}

// Add appends a value under the lowercased name, preserving arrival order.
func (m *MultiMap) Add(name, value string) {
	low := strings.ToLower(name)
	if _, ok := m.values[low]; !ok {
		m.keys = append(m.keys, low)
	}
	m.values[low] = append(m.values[low], value)
}

// Get returns all values for a lowercase-insensitive name lookup.
func (m *MultiMap) Get(name string) []string {
	return m.values[strings.ToLower(name)]
}

// First returns the first value for name, and whether it was present.
func (m *MultiMap) First(name string) (string, bool) {
	v := m.Get(name)
	if len(v) == 0 {
		return "", false
	}
	return v[0], true
}

// Has reports whether name has at least one value.
func (m *MultiMap) Has(name string) bool {
	return len(m.Get(name)) > 0
}

// Keys returns the lowercase names in first-seen order.
func (m *MultiMap) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Joined returns all values for name joined with ", " — used for header
// diffing where duplicate values must be compared as one field (§4.9).
func (m *MultiMap) Joined(name string) string {
	return strings.Join(m.Get(name), ", ")
}
