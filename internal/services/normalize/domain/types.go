// Package domain defines the entities and ports of the normalize pipeline
package domain

// Output file names, written in this order
const (
	FileBooks       = "book.csv"
	FileAuthors     = "authors.csv"
	FileBookAuthors = "book_authors.csv"
	FileBorrowers   = "borrower.csv"
	FileQuarantine  = "bad_books_rows.csv"
	FileLog         = "normalization_log.txt"
)

// Output headers
var (
	BookHeader       = []string{"isbn_primary", "isbn10", "isbn13", "title"}
	AuthorHeader     = []string{"author_id", "name"}
	BookAuthorHeader = []string{"isbn_primary", "author_id"}
	BorrowerHeader   = []string{"card_id", "ssn", "bname", "address", "phone"}
)

// Input names the two source files and where outputs go
type Input struct {
	BooksPath     string
	BorrowersPath string
	OutDir        string
}

// BookRecord is one clean book. PrimaryID is ISBN13 when present, else ISBN10.
// ISBN10 is empty or 10 characters, ISBN13 empty or 13 digits.
type BookRecord struct {
	PrimaryID string
	ISBN10    string
	ISBN13    string
	Title     string
}

// AuthorEntity is a distinct normalized author name with its sequential id
type AuthorEntity struct {
	ID   int
	Name string
}

// BookAuthorLink ties a book to an author. A nil AuthorID marks a book with
// no parseable author.
type BookAuthorLink struct {
	BookPrimaryID string
	AuthorID      *int
}

// BorrowerRecord is one normalized borrower
type BorrowerRecord struct {
	CardID  string
	SSN     string
	Name    string
	Address string
	Phone   string
}

// QuarantinedRow holds the untouched cells of a book row with no usable ISBN
type QuarantinedRow struct {
	Values []string
}

// SourceFile describes one parsed input
type SourceFile struct {
	Path      string
	Delimiter rune
	Headers   []string
	Rows      int
}

// ColumnChoice records which header was picked for a logical field and how
type ColumnChoice struct {
	Field  string
	Header string // empty when unresolved
	Via    string // header, shape, fallback or positional
}

// Stats are the row counts reported in the audit log
type Stats struct {
	InputBookRows     int
	BookRows          int
	UniqueAuthors     int
	LinkRows          int
	NullAuthorLinks   int
	QuarantinedRows   int
	InputBorrowerRows int
	BorrowerRows      int
	DroppedBorrowers  int
}

// Result is everything one run produced, in emission order
type Result struct {
	Books      []BookRecord
	Authors    []AuthorEntity
	Links      []BookAuthorLink
	Borrowers  []BorrowerRecord
	Quarantine []QuarantinedRow

	BooksSource     SourceFile
	BorrowersSource SourceFile
	BookColumns     []ColumnChoice
	BorrowerColumns []ColumnChoice

	Stats Stats
}

// Files lists the paths a report wrote, in write order
type Files []string
