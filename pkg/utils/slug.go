package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	slugStrip    = regexp.MustCompile(`[^\w\s-]`)
	slugCollapse = regexp.MustCompile(`[-\s]+`)
)

// Slugify converts s to a URL slug: accents folded to ASCII, lowercased,
// punctuation dropped, runs of spaces and hyphens collapsed into a single
// hyphen, leading and trailing hyphens and underscores trimmed.
func Slugify(s string) string {
	var b strings.Builder
	for _, r := range norm.NFKD.String(s) {
		if r > unicode.MaxASCII {
			continue
		}
		b.WriteRune(r)
	}
	out := strings.ToLower(b.String())
	out = slugStrip.ReplaceAllString(out, "")
	out = slugCollapse.ReplaceAllString(out, "-")
	return strings.Trim(out, "-_")
}
