package slug

import (
	"strings"
	"unicode"
)

// Make lowercases name and replaces every rune that is not a letter or
// digit with '-', then trims leading and trailing dashes. Runs of dashes
// are kept so distinct names stay distinct.
func Make(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteByte('-')
	}
	return strings.Trim(b.String(), "-")
}
