// Package normalize canonicalizes raw catalog text
// Pipeline order
// 1 UTF-8 repair, invalid bytes become U+FFFD
// 2 trim surrounding whitespace
// 3 Unicode NFC composition
// 4 remove zero-width space, non-joiner and joiner
// 5 collapse whitespace runs to a single space and trim
//
// Title and PersonName layer word capitalization on top of Text.
package normalize

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// zeroWidth matches U+200B ZWSP, U+200C ZWNJ and U+200D ZWJ
var zeroWidth = runes.Predicate(func(r rune) bool {
	return r == '\u200b' || r == '\u200c' || r == '\u200d'
})

// transformers and casers carry state, so each goroutine borrows its own
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(norm.NFC, runes.Remove(zeroWidth))
	},
}

var titlePool = sync.Pool{
	New: func() any {
		c := cases.Title(language.Und)
		return &c
	},
}

var byPrefix = regexp.MustCompile(`(?i)^by\s+`)

// Text returns the canonical form of s. It never fails; empty in, empty out.
func Text(s string) string {
	if s == "" {
		return ""
	}
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, string(utf8.RuneError))
	}
	s = strings.TrimSpace(s)

	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		ns = s
	}

	return collapseSpaces(ns)
}

// Any stringifies v and normalizes it; nil yields ""
func Any(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return Text(x)
	case []byte:
		return Text(string(x))
	case fmt.Stringer:
		return Text(x.String())
	default:
		return Text(fmt.Sprint(x))
	}
}

// Title capitalizes each word of the normalized text
func Title(s string) string {
	s = Text(s)
	if s == "" {
		return ""
	}
	return title(s)
}

// PersonName normalizes an author or borrower name: a leading "by " is
// dropped, surrounding commas and spaces are trimmed, words are capitalized
// and lone letters become initials ("j" -> "J.")
func PersonName(s string) string {
	s = Text(s)
	if s == "" {
		return ""
	}
	s = byPrefix.ReplaceAllString(s, "")
	s = strings.Trim(s, ", ")
	if s == "" {
		return ""
	}

	parts := strings.Fields(title(s))
	for i, p := range parts {
		if r, size := utf8.DecodeRuneInString(p); size == len(p) && unicode.IsLetter(r) {
			parts[i] = p + "."
		}
	}
	return strings.Join(parts, " ")
}

func title(s string) string {
	c := titlePool.Get().(*cases.Caser)
	out := c.String(s)
	titlePool.Put(c)
	return out
}

// collapseSpaces converts whitespace runs to a single ASCII space and trims the edges
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}
