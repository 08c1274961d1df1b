package main

import (
	"bytes"
	"path/filepath"
	"testing"

	perr "shelfprep/internal/platform/errors"
	"shelfprep/internal/platform/testkit"
)

// run exports the flags it sees; t.Setenv restores them afterwards
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"BOOKS_PATH", "BORROWERS_PATH", "OUT_DIR", "SNIFF_LINES", "SAMPLE_ROWS",
		"TITLE_SAMPLE_ROWS", "ISBN_MIN_HITS", "TITLE_MIN_AVG_LEN", "AUTHOR_MAX_AVG_LEN", "AUTHOR_NOISE_DIGITS",
	} {
		t.Setenv("SHELFPREP_"+k, "")
	}
}

func inputs(t *testing.T) (books, borrowers string) {
	t.Helper()
	books = testkit.WriteFile(t, "books.csv", "isbn13,title,authors\n9780306406157,signals,Ada Lovelace\n")
	borrowers = testkit.WriteFile(t, "borrowers.csv", "card_id,ssn,name,address,phone\nID000001,850-47-3740,ada lovelace,,\n")
	return books, borrowers
}

func TestRun_WritesTables(t *testing.T) {
	isolateEnv(t)
	books, borrowers := inputs(t)
	out := filepath.Join(t.TempDir(), "out")

	var stdout bytes.Buffer
	code := run([]string{"-books", books, "-borrowers", borrowers, "-out", out, "-isbn-min-hits", "0", "-title-min-avg-len", "0"}, &stdout)
	if code != 0 {
		t.Fatalf("exit = %d", code)
	}
	testkit.MustContain(t, stdout.String(), filepath.Join(out, "book.csv"))
	testkit.MustContain(t, testkit.ReadFile(t, filepath.Join(out, "book.csv")), "9780306406157,,9780306406157,Signals")
}

func TestRun_MissingInputReturnsNotFound(t *testing.T) {
	isolateEnv(t)
	_, borrowers := inputs(t)

	var stdout bytes.Buffer
	code := run([]string{"-books", filepath.Join(t.TempDir(), "nope.csv"), "-borrowers", borrowers, "-out", t.TempDir()}, &stdout)
	if code != perr.ExitStatus(perr.ErrorCodeNotFound) {
		t.Fatalf("exit = %d", code)
	}
	if stdout.Len() != 0 {
		t.Fatalf("stdout = %q", stdout.String())
	}
}

func TestRun_InvalidOptions(t *testing.T) {
	isolateEnv(t)
	var stdout bytes.Buffer
	if code := run([]string{"-sample-rows", "-1"}, &stdout); code != 64 {
		t.Fatalf("exit = %d", code)
	}
	if code := run([]string{"-no-such-flag"}, &stdout); code != 64 {
		t.Fatalf("unknown flag exit = %d", code)
	}
}

func TestRun_Version(t *testing.T) {
	var stdout bytes.Buffer
	if code := run([]string{"-version"}, &stdout); code != 0 {
		t.Fatalf("exit = %d", code)
	}
	testkit.MustContain(t, stdout.String(), "shelfprep-normalize dev")
}
