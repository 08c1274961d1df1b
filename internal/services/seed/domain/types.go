// Package domain defines the seed loader entities and ports
package domain

import "time"

// Table describes one seed table and the CSV it is loaded from
type Table struct {
	Name    string
	File    string
	Columns []string
	// Key is the primary key column; rows with an empty key are skipped
	Key string
	// IntColumns are converted to int64 before binding
	IntColumns []string
}

// IsInt reports whether col is bound as an integer
func (t Table) IsInt(col string) bool {
	for _, c := range t.IntColumns {
		if c == col {
			return true
		}
	}
	return false
}

// Seed tables in load order; parents before children
var (
	Book = Table{
		Name: "BOOK", File: "book.csv", Key: "isbn_primary",
		Columns: []string{"isbn_primary", "isbn10", "isbn13", "title"},
	}
	Authors = Table{
		Name: "AUTHORS", File: "authors.csv", Key: "author_id",
		Columns:    []string{"author_id", "name"},
		IntColumns: []string{"author_id"},
	}
	BookAuthors = Table{
		Name: "BOOK_AUTHORS", File: "book_authors.csv",
		Columns:    []string{"isbn_primary", "author_id"},
		IntColumns: []string{"author_id"},
	}
	Borrower = Table{
		Name: "BORROWER", File: "borrower.csv", Key: "card_id",
		Columns: []string{"card_id", "ssn", "bname", "address", "phone"},
	}
)

// Tables returns every seed table in load order
func Tables() []Table { return []Table{Book, Authors, BookAuthors, Borrower} }

// Input configures one load
type Input struct {
	Dir   string
	Clear bool
}

// Batch is a table plus its de-duplicated rows. Empty cells are nil.
type Batch struct {
	Table Table
	Rows  [][]any
}

// Counts are rows inserted per table; rows that hit an existing key are not counted
type Counts struct {
	Books     int
	Authors   int
	Links     int
	Borrowers int
}

// Set records n under table t
func (c *Counts) Set(t Table, n int) {
	switch t.Name {
	case Book.Name:
		c.Books = n
	case Authors.Name:
		c.Authors = n
	case BookAuthors.Name:
		c.Links = n
	case Borrower.Name:
		c.Borrowers = n
	}
}

// Run is one recorded load
type Run struct {
	ID       string
	LoadedAt time.Time
	Counts   Counts
}
