package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL path fragment from a title or display name: first
// 80 characters, lowercased, runs of non-alphanumerics collapsed to a
// single hyphen, leading/trailing hyphens trimmed. When nothing survives,
// fallback is returned instead.
func Slugify(text, fallback string) string {
	runes := []rune(text)
	if len(runes) > 80 {
		runes = runes[:80]
	}
	slug := nonAlnum.ReplaceAllString(strings.ToLower(string(runes)), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return fallback
	}
	return slug
}

// PostFallback is the slug used for questions with no usable title text.
func PostFallback(id int) string {
	return fmt.Sprintf("post%d", id)
}

// UserFallback is the slug used for users with no usable display name.
func UserFallback(id int) string {
	return fmt.Sprintf("user%d", id)
}

// NormalizeNewlines rewrites \r\n and bare \r to \n. Dump history text
// mixes all three.
func NormalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
