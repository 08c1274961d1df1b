// Package isbn cleans ISBN-like cell values and classifies them by shape.
// Values stay strings end to end so leading zeros survive.
package isbn

import (
	"strings"

	"shelfprep/internal/core/normalize"
)

// Kind is the shape class of a cleaned value
type Kind int

const (
	// KindNone means the value is neither 10 nor 13 characters long
	KindNone Kind = iota
	// Kind10 is a 10 character ISBN-10 candidate
	Kind10
	// Kind13 is a 13 character ISBN-13 candidate
	Kind13
)

func (k Kind) String() string {
	switch k {
	case Kind10:
		return "isbn10"
	case Kind13:
		return "isbn13"
	default:
		return "none"
	}
}

// Clean normalizes raw and keeps only digits and X/x
func Clean(raw string) string {
	s := normalize.Text(raw)
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= '0' && c <= '9') || c == 'X' || c == 'x' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// KindOf classifies an already cleaned value by length
func KindOf(clean string) Kind {
	switch len(clean) {
	case 10:
		return Kind10
	case 13:
		return Kind13
	default:
		return KindNone
	}
}

// Valid10 reports whether clean has the ISBN-10 shape
func Valid10(clean string) bool { return len(clean) == 10 }

// Valid13 reports whether clean has the ISBN-13 shape
func Valid13(clean string) bool { return len(clean) == 13 }
