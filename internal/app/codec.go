package app

import (
	"encoding/base64"
	"strings"
	"unicode/utf8"
)

// Encode converts free-form text into the base64 transport form the execution
// service expects. The empty string encodes to itself.
func Encode(text string) string {
	if text == "" {
		return ""
	}
	return base64.StdEncoding.EncodeToString([]byte(text))
}

// Decode reverses Encode. It is total: result payloads come from a remote
// service we do not control, so a payload that fails to decode must still
// render something instead of aborting the result pipeline.
//
// Fallback order: tolerate missing base64 padding, then pass unparseable
// input through unchanged, then reinterpret non-UTF-8 bytes one byte per
// character.
func Decode(payload string) string {
	if payload == "" {
		return ""
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
	}
	if err != nil {
		return payload
	}
	if utf8.Valid(raw) {
		return string(raw)
	}
	var b strings.Builder
	b.Grow(len(raw))
	for _, c := range raw {
		b.WriteRune(rune(c))
	}
	return b.String()
}
