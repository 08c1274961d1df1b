package isbn

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"0-306-40615-2", "0306406152"},
		{" ISBN 978-0-306-40615-7 ", "9780306406157"},
		{"0123456789", "0123456789"},
		{"080442957x", "080442957x"},
		{"n/a", ""},
		{"12\u200b34", "1234"},
	}
	for _, tt := range tests {
		if got := Clean(tt.in); got != tt.want {
			t.Fatalf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClean_PreservesLeadingZeros(t *testing.T) {
	got := Clean("0123456789")
	if len(got) != 10 || got[0] != '0' {
		t.Fatalf("leading zero lost: %q", got)
	}
	if KindOf(got) != Kind10 || !Valid10(got) {
		t.Fatalf("expected isbn10 shape for %q", got)
	}
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		in   string
		want Kind
	}{
		{"", KindNone},
		{"123456789", KindNone},
		{"0306406152", Kind10},
		{"9780306406157", Kind13},
		{"97803064061570", KindNone},
	}
	for _, c := range cases {
		if got := KindOf(c.in); got != c.want {
			t.Fatalf("KindOf(%q) = %v, want %v", c.in, got, c.want)
		}
	}
	if Kind10.String() != "isbn10" || Kind13.String() != "isbn13" || KindNone.String() != "none" {
		t.Fatalf("Kind.String mismatch")
	}
	if Valid13("0306406152") || !Valid13("9780306406157") {
		t.Fatalf("Valid13 mismatch")
	}
}
