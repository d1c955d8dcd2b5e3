package categorizer

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// preamblePattern drops chatty lead-ins such as `The category is "Dining".`
// and keeps the quoted or bare phrase after them. Text without one of the
// trigger phrases passes through untouched.
var preamblePattern = regexp.MustCompile(`(?i).*?(?:category is|categorized as|categorized under)\s*["']?([^"']+)["']?.*`)

// NormalizeLabel turns a raw completion into a category name: lower-case,
// strip any preamble, trim, then capitalize the first letter of every word.
func NormalizeLabel(raw string) string {
	label := strings.ToLower(raw)
	label = preamblePattern.ReplaceAllString(label, "$1")
	label = strings.TrimSpace(label)

	words := strings.Fields(label)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToTitle(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
