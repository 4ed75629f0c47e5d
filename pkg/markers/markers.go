// Package markers implements the annotation-marker protocol used to embed
// machine-generated text inside human-editable name/description fields.
//
// Each enrichment command owns a unique pair of invisible unicode variation
// selectors. Wrapping its text in that pair lets a command find and replace
// its own previous annotation on a later run while leaving human-authored
// text, and annotations owned by other commands, untouched.
package markers

import (
	"regexp"
	"strings"
)

// MarkedString couples a payload with the marker delimiter that brackets it.
type MarkedString struct {
	Value  string
	Marker string
}

func New(value, marker string) MarkedString {
	return MarkedString{Value: value, Marker: marker}
}

// String returns the payload wrapped in its marker pair.
func (m MarkedString) String() string {
	return m.Marker + m.Value + m.Marker
}

// pattern matches the first marker...marker region, non-greedy. Only the
// first pair is ever touched: if two regions with the same marker exist the
// second is left alone.
func (m MarkedString) pattern() *regexp.Regexp {
	q := regexp.QuoteMeta(m.Marker)
	return regexp.MustCompile("(?s)" + q + ".*?" + q)
}

// RemoveFromText deletes the first marked region from text.
func (m MarkedString) RemoveFromText(text string) string {
	return m.replaceFirst(text, "")
}

// ReplaceInText replaces the first marked region in text with the wrapped
// payload.
func (m MarkedString) ReplaceInText(text string) string {
	return m.replaceFirst(text, m.String())
}

// ReplaceOrAppend replaces an existing marked region in place, or appends
// the wrapped payload joined by joiner when no region exists. Calling it
// twice with the same value is a no-op update of the same region.
func (m MarkedString) ReplaceOrAppend(text, joiner string) string {
	if strings.Contains(text, m.Marker) {
		return m.ReplaceInText(text)
	}
	return text + joiner + m.String()
}

func (m MarkedString) replaceFirst(text, replacement string) string {
	loc := m.pattern().FindStringIndex(text)
	if loc == nil {
		return text
	}
	return text[:loc[0]] + replacement + text[loc[1]:]
}
