// Package authors splits free-text author fields into name tokens and assigns
// each distinct normalized name a sequential id
package authors

import (
	"regexp"
	"strings"
	"unicode"

	"shelfprep/internal/core/normalize"
)

// DefaultNoiseDigits is the digit count at which a token is treated as noise
const DefaultNoiseDigits = 3

var (
	ampSep  = regexp.MustCompile(`\s+&\s+`)
	andSep  = regexp.MustCompile(`(?i)\s+and\s+`)
	urlLike = regexp.MustCompile(`https?://`)
	// a lone letter, or letters each followed by a period: "J", "A.", "J.R.R.", "J. K."
	initialsOnly = regexp.MustCompile(`^(?:\p{L}|(?:\p{L}\.\s*)+)$`)
)

// Splitter turns one author cell into ordered name tokens
type Splitter struct {
	// NoiseDigits drops tokens whose digits alone reach this count
	NoiseDigits int
	// JoinInitials folds an initials-only token back onto the surname before
	// it, so "Smith, J" stays one inverted name instead of two tokens
	JoinInitials bool
}

// DefaultSplitter is the stock splitting policy
func DefaultSplitter() Splitter {
	return Splitter{NoiseDigits: DefaultNoiseDigits, JoinInitials: true}
}

// Split is DefaultSplitter().Split
func Split(raw string) []string { return DefaultSplitter().Split(raw) }

// Split normalizes raw, turns " & ", " and " and ";" into commas, splits on
// commas and drops URL and numeric noise. Duplicates are kept.
func (s Splitter) Split(raw string) []string {
	v := normalize.Text(raw)
	if v == "" {
		return nil
	}
	v = ampSep.ReplaceAllString(v, ",")
	v = andSep.ReplaceAllString(v, ",")
	v = strings.ReplaceAll(v, ";", ",")

	var out []string
	joined := false
	for _, p := range strings.Split(v, ",") {
		p = strings.TrimSpace(p)
		if p == "" || s.noise(p) {
			continue
		}
		if s.JoinInitials && len(out) > 0 && !joined && initialsOnly.MatchString(p) && !initialsOnly.MatchString(out[len(out)-1]) {
			out[len(out)-1] += ", " + p
			joined = true
			continue
		}
		out = append(out, p)
		joined = false
	}
	return out
}

func (s Splitter) noise(p string) bool {
	if urlLike.MatchString(p) {
		return true
	}
	if s.NoiseDigits <= 0 {
		return false
	}
	digits := 0
	for _, r := range p {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return digits >= s.NoiseDigits
}
