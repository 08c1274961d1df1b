package normalize

import (
	"sync"
	"testing"
)

type stringer struct{}

func (stringer) String() string { return "  Stringer  Value " }

func TestText_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{"empty", "", ""},
		{"identity ascii", "hello world", "hello world"},
		{"trim edges", "  padded\t", "padded"},
		{"collapse whitespace", "a\t\tb\nc   d", "a b c d"},
		{"unicode spaces", "a\u00a0\u2003b", "a b"},
		{"remove zero-widths", "f\u200bo\u200co\u200d", "foo"},
		{"zero width between words", "a \u200b b", "a b"},
		{"nfc composition", "cafe\u0301", "caf\u00e9"},
		{"invalid utf8 replaced", string([]byte{'a', 0xff, 'b'}), "a\ufffdb"},
		{"only spaces", " \t\n ", ""},
		{"keeps case", "The CATALOG", "The CATALOG"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(tt.in); got != tt.out {
				t.Fatalf("Text(%q) = %q, want %q", tt.in, got, tt.out)
			}
		})
	}
}

func TestAny(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"  x  y ", "x y"},
		{[]byte(" b "), "b"},
		{42, "42"},
		{3.5, "3.5"},
		{stringer{}, "Stringer Value"},
	}
	for _, c := range cases {
		if got := Any(c.in); got != c.want {
			t.Fatalf("Any(%#v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTitle(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"the CATALOG of  STARS", "The Catalog Of Stars"},
		{"", ""},
		{"   ", ""},
		{"war and peace", "War And Peace"},
		{"war of the  worlds 2", "War Of The Worlds 2"},
		{"\u00c9TUDES fran\u00e7aises", "\u00c9tudes Fran\u00e7aises"},
	}
	for _, tt := range tests {
		if got := Title(tt.in); got != tt.out {
			t.Fatalf("Title(%q) = %q, want %q", tt.in, got, tt.out)
		}
	}
}

func TestPersonName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{"empty", "", ""},
		{"plain", "jane austen", "Jane Austen"},
		{"by prefix", "By  jane austen", "Jane Austen"},
		{"by prefix case insensitive", "BY Leo Tolstoy", "Leo Tolstoy"},
		{"by inside name kept", "Abby Byrne", "Abby Byrne"},
		{"trailing comma", "jane austen, ", "Jane Austen"},
		{"leading comma", ", jane", "Jane"},
		{"single letter initial", "j smith", "J. Smith"},
		{"inverted with initial", "smith, j", "Smith, J."},
		{"already dotted initial", "Doe, A.", "Doe, A."},
		{"only punctuation", " , ", ""},
		{"shouting", "JOHN R TOLKIEN", "John R. Tolkien"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PersonName(tt.in); got != tt.out {
				t.Fatalf("PersonName(%q) = %q, want %q", tt.in, got, tt.out)
			}
		})
	}
}

func TestDeterministicAcrossGoroutines(t *testing.T) {
	const in = "  the \u200bCATALOG of STARS "
	want := Title(in)

	var wg sync.WaitGroup
	errs := make(chan string, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := Title(in); got != want {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Fatalf("Title mismatch under concurrency: %q != %q", got, want)
	}
}
