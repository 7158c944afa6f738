package util

import (
	"regexp"
	"strings"
)

var (
	// Element bodies that can execute or restyle content are dropped
	// entirely, not just untagged.
	dangerousBlocks = regexp.MustCompile(`(?is)<(script|style|iframe|object|embed)\b[^>]*>.*?</\s*(script|style|iframe|object|embed)\s*>`)
	htmlTags        = regexp.MustCompile(`(?s)</?[a-zA-Z!][^>]*>`)
	htmlComments    = regexp.MustCompile(`(?s)<!--.*?-->`)
)

// SanitizeText strips markup from free-form user text while keeping the
// plain text content. Stripping repeats until a fixpoint so that nested
// fragments like "<scr<script></script>ipt>" cannot reassemble into a
// tag, which also makes the function idempotent.
func SanitizeText(input string) string {
	text := input

	for {
		cleaned := dangerousBlocks.ReplaceAllString(text, "")
		cleaned = htmlComments.ReplaceAllString(cleaned, "")
		cleaned = htmlTags.ReplaceAllString(cleaned, "")

		if cleaned == text {
			break
		}
		text = cleaned
	}

	return strings.TrimSpace(text)
}

// SanitizeTextPtr applies SanitizeText through an optional field.
func SanitizeTextPtr(input *string) *string {
	if input == nil {
		return nil
	}

	cleaned := SanitizeText(*input)
	return &cleaned
}
