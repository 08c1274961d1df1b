package strings

import (
	"testing"

	kit "shelfprep/internal/platform/testkit"
)

func TestIfEmpty(t *testing.T) {
	t.Parallel()

	in := []int{1, 2, 3}
	if got := IfEmpty(in, []int{9}); len(got) != 3 || got[0] != 1 {
		t.Fatalf("IfEmpty returned wrong slice: %#v", got)
	}

	var empty []string
	if got := IfEmpty(empty, []string{"x"}); len(got) != 1 || got[0] != "x" {
		t.Fatalf("IfEmpty did not return default: %#v", got)
	}
}

func TestMustString(t *testing.T) {
	t.Parallel()

	if got := MustString("books.csv", "books"); got != "books.csv" {
		t.Fatalf("MustString = %q", got)
	}
	kit.MustPanic(t, func() { _ = MustString("  ", "books") })
}

func TestFirstNonBlank(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   []string
		want string
	}{
		{[]string{"", "  ", "b"}, "b"},
		{[]string{"a", "b"}, "a"},
		{[]string{" ", ""}, ""},
		{nil, ""},
	}
	for _, c := range cases {
		if got := FirstNonBlank(c.in...); got != c.want {
			t.Fatalf("FirstNonBlank(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestPtrDeref(t *testing.T) {
	t.Parallel()

	if Ptr("") != nil {
		t.Fatalf("Ptr(\"\") should be nil")
	}
	if got := Deref(Ptr("x")); got != "x" {
		t.Fatalf("Deref(Ptr(x)) = %q", got)
	}
	if Deref(nil) != "" {
		t.Fatalf("Deref(nil) should be empty")
	}
}

func TestSQLNull(t *testing.T) {
	t.Parallel()

	if SQLNull("   ") != nil {
		t.Fatalf("SQLNull blank should be nil")
	}
	if got := SQLNull("0001"); got != "0001" {
		t.Fatalf("SQLNull = %v", got)
	}
	blank := " "
	if SQLNullPtr(nil) != nil || SQLNullPtr(&blank) != nil {
		t.Fatalf("SQLNullPtr blank/nil should be nil")
	}
	v := "Ada"
	if got := SQLNullPtr(&v); got != "Ada" {
		t.Fatalf("SQLNullPtr = %v", got)
	}
}
