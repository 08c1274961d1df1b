package report

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	perr "shelfprep/internal/platform/errors"
	"shelfprep/internal/platform/testkit"
	dom "shelfprep/internal/services/normalize/domain"
)

func sampleResult() *dom.Result {
	one, two := 1, 2
	return &dom.Result{
		Books: []dom.BookRecord{
			{PrimaryID: "9780306406157", ISBN10: "0306406152", ISBN13: "9780306406157", Title: "Signals, Noise"},
			{PrimaryID: "0123456789", ISBN10: "0123456789", Title: "Leading Zeros"},
		},
		Authors: []dom.AuthorEntity{{ID: 2, Name: "Alan Turing"}, {ID: 1, Name: "Ada Lovelace"}},
		Links: []dom.BookAuthorLink{
			{BookPrimaryID: "9780306406157", AuthorID: &one},
			{BookPrimaryID: "9780306406157", AuthorID: &two},
			{BookPrimaryID: "0123456789"},
		},
		Borrowers:  []dom.BorrowerRecord{{CardID: "ID000001", SSN: "850-47-3740", Name: "Mark Cole"}},
		Quarantine: []dom.QuarantinedRow{{Values: []string{"", "no isbn here"}}},
		BooksSource: dom.SourceFile{
			Path: "books.csv", Delimiter: '\t', Headers: []string{"ISBN", "Title"},
		},
		BorrowersSource: dom.SourceFile{Path: "borrowers.csv", Delimiter: ','},
		BookColumns: []dom.ColumnChoice{
			{Field: "isbn10", Header: "ISBN", Via: "header"},
			{Field: "authors"},
		},
		Stats: dom.Stats{
			InputBookRows: 3, BookRows: 2, UniqueAuthors: 2, LinkRows: 3, NullAuthorLinks: 1, QuarantinedRows: 1,
			InputBorrowerRows: 1, BorrowerRows: 1,
		},
	}
}

func TestAuditLog(t *testing.T) {
	want := `Normalization log
=================

Decisions & policies:
- ISBNs preserved as strings; leading zeros kept; no int casts.
- Prefer ISBN-13 as primary when present; otherwise use ISBN-10.
- Missing author -> book_authors row with empty author_id (interpreted as NULL).
- Rows missing both ISBN10 and ISBN13 saved to bad_books_rows.csv.
- Author identity = exact spelling; no fuzzy merges.

Input summary:
 - books file: books.csv
 - detected delimiter: TAB
 - borrowers file: borrowers.csv
 - detected delimiter: ,

Output statistics:
 - input book rows: 3
 - normalized book rows: 2
 - unique author names: 2
 - book-author links: 3
 - bad book rows (no isbn): 1
 - books without author (null links): 1
 - input borrower rows: 1
 - normalized borrower rows: 1
 - dropped borrower rows (no card id or name): 0

Detected book columns:
 - isbn10: "ISBN" (header)
 - authors: (none)
`
	if got := AuditLog(sampleResult()); got != want {
		t.Fatalf("audit log mismatch\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestWrite_OrderAndContents(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	files, err := New().Write(context.Background(), dir, sampleResult())
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	wantOrder := []string{dom.FileBooks, dom.FileAuthors, dom.FileBookAuthors, dom.FileBorrowers, dom.FileQuarantine, dom.FileLog}
	if len(files) != len(wantOrder) {
		t.Fatalf("files = %v", files)
	}
	for i, f := range files {
		if filepath.Base(f) != wantOrder[i] {
			t.Fatalf("file %d = %s want %s", i, f, wantOrder[i])
		}
	}

	books := testkit.ReadFile(t, files[0])
	wantBooks := "isbn_primary,isbn10,isbn13,title\n" +
		"9780306406157,0306406152,9780306406157,\"Signals, Noise\"\n" +
		"0123456789,0123456789,,Leading Zeros\n"
	if books != wantBooks {
		t.Fatalf("book.csv =\n%s", books)
	}

	// authors are emitted by ascending id whatever the input order
	authors := testkit.ReadCSV(t, files[1])
	if len(authors) != 3 || authors[1][0] != "1" || authors[1][1] != "Ada Lovelace" || authors[2][0] != "2" {
		t.Fatalf("authors.csv = %v", authors)
	}

	links := testkit.ReadCSV(t, files[2])
	if links[3][0] != "0123456789" || links[3][1] != "" {
		t.Fatalf("null link = %v", links[3])
	}

	borrowers := testkit.ReadCSV(t, files[3])
	if strings.Join(borrowers[0], ",") != "card_id,ssn,bname,address,phone" {
		t.Fatalf("borrower header = %v", borrowers[0])
	}

	bad := testkit.ReadCSV(t, files[4])
	if strings.Join(bad[0], ",") != "ISBN,Title" || bad[1][1] != "no isbn here" {
		t.Fatalf("quarantine = %v", bad)
	}

	testkit.MustContain(t, testkit.ReadFile(t, files[5]), "bad book rows (no isbn): 1")
}

func TestWrite_StopsAtFirstFailure(t *testing.T) {
	calls := 0
	testkit.Swap(t, &writeTable, func(path string, _ []string, _ [][]string) error {
		calls++
		if filepath.Base(path) == dom.FileBookAuthors {
			return perr.IOf(errors.New("disk full"), "write %s", path)
		}
		return nil
	})
	testkit.Swap(t, &writeText, func(string, []byte) error {
		t.Fatal("log must not be written after a table failed")
		return nil
	})

	files, err := New().Write(context.Background(), t.TempDir(), sampleResult())
	if !perr.IsCode(err, perr.ErrorCodeIO) {
		t.Fatalf("expected io error, got %v", err)
	}
	if calls != 3 || len(files) != 2 {
		t.Fatalf("calls=%d files=%v", calls, files)
	}
}

func TestWrite_NilResult(t *testing.T) {
	_, err := New().Write(context.Background(), t.TempDir(), nil)
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}
