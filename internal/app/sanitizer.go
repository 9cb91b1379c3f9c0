package app

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

// StrictSanitizer strips every piece of active markup from assistant replies
// before they reach the transcript. Entities are unescaped afterwards so code
// snippets containing < or & read back as written.
type StrictSanitizer struct {
	policy *bluemonday.Policy
}

// NewStrictSanitizer builds a sanitizer around bluemonday's strict policy.
func NewStrictSanitizer() *StrictSanitizer {
	return &StrictSanitizer{policy: bluemonday.StrictPolicy()}
}

func (s *StrictSanitizer) Sanitize(raw string) string {
	return html.UnescapeString(s.policy.Sanitize(raw))
}
