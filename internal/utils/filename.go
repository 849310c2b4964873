package utils

import (
	"strings"
	"unicode"
)

const defaultSiteFileName = "site"

// SiteFileName builds the download name for a generated page: the title with each
// run of whitespace turned into a hyphen, lowercased, plus ".html". An empty title
// gives "site.html".
func SiteFileName(title string) string {
	if title == "" {
		return defaultSiteFileName + ".html"
	}

	var b strings.Builder
	inSpace := false
	for _, r := range title {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('-')
			}
			inSpace = true
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}

	return strings.ToLower(b.String()) + ".html"
}
