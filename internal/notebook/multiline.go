package notebook

import (
	"bytes"
	"encoding/json"
	"strings"
)

// MultilineString is text content stored either as a single string or as an
// ordered array of line fragments. Both forms mean the concatenation of
// their parts; which one was read is remembered so documents round-trip.
type MultilineString struct {
	parts []string
	multi bool
}

// Single returns the plain-string form.
func Single(s string) MultilineString {
	return MultilineString{parts: []string{s}}
}

// Multi returns the line-array form.
func Multi(lines []string) MultilineString {
	return MultilineString{parts: lines, multi: true}
}

// String returns the logical text, the concatenation of all fragments.
func (m MultilineString) String() string {
	if len(m.parts) == 1 {
		return m.parts[0]
	}
	return strings.Join(m.parts, "")
}

// IsMulti reports whether the value is in the line-array form.
func (m MultilineString) IsMulti() bool {
	return m.multi
}

// Normalize converts either form into the array representation Jupyter
// conventionally stores: the logical text re-split after every newline, so
// each fragment keeps its trailing newline except possibly the last. An
// empty string normalizes to an empty array, not [""].
func (m MultilineString) Normalize() MultilineString {
	s := m.String()
	var lines []string
	for len(s) > 0 {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			lines = append(lines, s)
			break
		}
		lines = append(lines, s[:i+1])
		s = s[i+1:]
	}
	return MultilineString{parts: lines, multi: true}
}

// UnmarshalJSON dispatches on the structural shape of the value, string vs
// array, with no tag to guide it.
func (m *MultilineString) UnmarshalJSON(data []byte) error {
	switch firstByte(data) {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return formatErr("", "%v", err)
		}
		*m = MultilineString{parts: []string{s}}
		return nil
	case '[':
		var lines []string
		if err := json.Unmarshal(data, &lines); err != nil {
			return formatErr("", "%v", err)
		}
		*m = MultilineString{parts: lines, multi: true}
		return nil
	default:
		return formatErr("", "expected a string or an array of strings")
	}
}

// MarshalJSON writes back whichever form the value holds.
func (m MultilineString) MarshalJSON() ([]byte, error) {
	if !m.multi {
		return json.Marshal(m.String())
	}
	lines := m.parts
	if lines == nil {
		lines = []string{}
	}
	return json.Marshal(lines)
}

// firstByte returns the first non-whitespace byte of a JSON value, or 0 for
// an empty input.
func firstByte(data []byte) byte {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}
