package utils

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// SlotName returns the placeholder src value for the n-th image (1-based).
func SlotName(n int) string {
	return fmt.Sprintf("placeholder-%d", n)
}

// FillImageSlots sets every src="placeholder-N" attribute to images[N-1].
// Slots without a matching image are left as they are. Only real tag attributes
// are touched; text, comments and script bodies mentioning a slot name are not.
// Tokens that are not rewritten are copied byte-for-byte. It returns the new
// markup and the number of attributes filled.
func FillImageSlots(markup string, images []string) (string, int) {
	if markup == "" || len(images) == 0 {
		return markup, 0
	}

	slots := make(map[string]string, len(images))
	for i, url := range images {
		slots[SlotName(i+1)] = url
	}

	var out strings.Builder
	out.Grow(len(markup))
	filled := 0

	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if !errors.Is(z.Err(), io.EOF) {
				// The tokenizer only fails on read errors, which a strings.Reader never produces.
				return markup, 0
			}
			break
		}

		// Copy before Token(), which lowercases the tag name in the shared buffer.
		raw := string(z.Raw())
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			out.WriteString(raw)
			continue
		}

		tok := z.Token()
		changed := false
		for i, attr := range tok.Attr {
			if attr.Key != "src" || attr.Namespace != "" {
				continue
			}
			if url, ok := slots[strings.TrimSpace(attr.Val)]; ok {
				tok.Attr[i].Val = url
				changed = true
				filled++
			}
		}

		if !changed {
			out.WriteString(raw)
			continue
		}
		out.WriteString(tok.String())
	}

	return out.String(), filled
}

// RemainingSlots lists the placeholder names still referenced by a src attribute.
func RemainingSlots(markup string) []string {
	var remaining []string
	for _, src := range ImageSources(markup) {
		if strings.HasPrefix(src, "placeholder-") {
			remaining = append(remaining, src)
		}
	}
	return remaining
}

// ImageSources returns every src attribute value in document order, entity-decoded
// and trimmed, as a browser would resolve it.
func ImageSources(markup string) []string {
	var sources []string
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return sources
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		for _, attr := range z.Token().Attr {
			if attr.Key == "src" && attr.Namespace == "" {
				sources = append(sources, strings.TrimSpace(attr.Val))
			}
		}
	}
}
