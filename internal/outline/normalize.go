// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outline

import (
	"regexp"
	"strings"
)

// langTagPattern matches a code-fence language tag like "json" or "json5".
var langTagPattern = regexp.MustCompile(`^[A-Za-z0-9_+-]+$`)

// Normalize strips the wrappers models habitually put around JSON output:
// surrounding whitespace, a fenced code block (with or without a language
// tag), and a bare leading "json" tag. It is a mechanical unwrapping step;
// genuinely malformed JSON passes through unchanged and fails at parse time.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		s = s[3:]

		// Drop the language tag if the rest of the fence line is one.
		if nl := strings.IndexByte(s, '\n'); nl >= 0 {
			if tag := strings.TrimSpace(s[:nl]); tag == "" || langTagPattern.MatchString(tag) {
				s = s[nl+1:]
			}
		}

		s = strings.TrimSpace(s)
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}

	// A stray "json" tag left in front of the object (e.g. after the model
	// emitted `json{...}` without a fence).
	if rest, ok := strings.CutPrefix(s, "json"); ok {
		if trimmed := strings.TrimSpace(rest); strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			s = trimmed
		}
	}

	return s
}
