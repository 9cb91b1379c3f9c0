package app

import (
	"strings"
	"testing"
)

func TestSanitizerStripsActiveMarkup(t *testing.T) {
	s := NewStrictSanitizer()

	got := s.Sanitize(`Try this fix.<script>alert("xss")</script> Done.`)
	if strings.Contains(got, "script") || strings.Contains(got, "alert") {
		t.Fatalf("active markup survived: %q", got)
	}
	if !strings.Contains(got, "Try this fix.") {
		t.Fatalf("plain text lost: %q", got)
	}
}

func TestSanitizerKeepsCodePunctuation(t *testing.T) {
	s := NewStrictSanitizer()

	tests := []string{
		"if (a < b && c > d) { return; }",
		"use `std::cout << x;` instead",
		"int *p = &value;",
	}
	for _, in := range tests {
		if got := s.Sanitize(in); got != in {
			t.Fatalf("Sanitize(%q) = %q, want unchanged", in, got)
		}
	}
}
