package service

import (
	"strings"
	"unicode/utf8"

	"shelfprep/internal/core/authors"
	"shelfprep/internal/core/isbn"
	"shelfprep/internal/core/normalize"
	"shelfprep/internal/core/schema"
	str "shelfprep/internal/platform/strings"
	dom "shelfprep/internal/services/normalize/domain"
)

// BookRow is the per-row working state the strategies read and fill
type BookRow struct {
	Cells []string
	Cols  schema.BookColumns

	// ISBN10 and ISBN13 hold cleaned values that passed the length test
	ISBN10 string
	ISBN13 string

	claimed []bool
	// scanned is the column ScanISBN adopted, None otherwise
	scanned int
}

// NewBookRow claims the detected ISBN columns up front
func NewBookRow(cells []string, cols schema.BookColumns) *BookRow {
	b := &BookRow{Cells: cells, Cols: cols, claimed: make([]bool, len(cells)), scanned: schema.None}
	b.Claim(cols.Col(schema.ISBN10))
	b.Claim(cols.Col(schema.ISBN13))
	return b
}

// Cell returns the raw value at i, "" when out of range
func (b *BookRow) Cell(i int) string {
	if i < 0 || i >= len(b.Cells) {
		return ""
	}
	return b.Cells[i]
}

// Claim marks column i as used by some field of this row
func (b *BookRow) Claim(i int) {
	if i >= 0 && i < len(b.claimed) {
		b.claimed[i] = true
	}
}

// Claimed reports whether column i is taken
func (b *BookRow) Claimed(i int) bool {
	return i >= 0 && i < len(b.claimed) && b.claimed[i]
}

// HoldsISBN reports whether column i is a detected ISBN column or the one
// the row scan adopted
func (b *BookRow) HoldsISBN(i int) bool {
	if i < 0 {
		return false
	}
	return i == b.Cols.Col(schema.ISBN10) || i == b.Cols.Col(schema.ISBN13) || i == b.scanned
}

// Primary prefers ISBN-13 over ISBN-10
func (b *BookRow) Primary() string {
	return str.FirstNonBlank(b.ISBN13, b.ISBN10)
}

// ISBNStrategy tries to fill the row's ISBNs and reports success
type ISBNStrategy func(b *BookRow) bool

// FieldStrategy yields a raw value for one field, ok=false passes to the next
type FieldStrategy func(b *BookRow) (string, bool)

// DesignatedISBN cleans the detected ISBN columns and keeps each value only
// when its length matches its type
func DesignatedISBN(b *BookRow) bool {
	if c := isbn.Clean(b.Cell(b.Cols.Col(schema.ISBN10))); isbn.Valid10(c) {
		b.ISBN10 = c
	}
	if c := isbn.Clean(b.Cell(b.Cols.Col(schema.ISBN13))); isbn.Valid13(c) {
		b.ISBN13 = c
	}
	return b.ISBN10 != "" || b.ISBN13 != ""
}

// ScanISBN adopts the first column, in file order, whose cleaned value is
// ISBN shaped
func ScanISBN(b *BookRow) bool {
	for i, v := range b.Cells {
		c := isbn.Clean(v)
		switch isbn.KindOf(c) {
		case isbn.Kind13:
			b.ISBN13 = c
		case isbn.Kind10:
			b.ISBN10 = c
		default:
			continue
		}
		b.Claim(i)
		b.scanned = i
		return true
	}
	return false
}

// Designated returns a strategy reading the detected column for t when it is
// not empty. A whitespace-only cell counts as present.
func Designated(t schema.Target) FieldStrategy {
	return func(b *BookRow) (string, bool) {
		c, ok := b.Cols.Get(t)
		if !ok {
			return "", false
		}
		v := b.Cell(c)
		return v, v != ""
	}
}

// FirstNonISBN takes the first column in file order that holds no ISBN and
// has non-blank content. Columns claimed by other fields stay eligible.
func FirstNonISBN(b *BookRow) (string, bool) {
	for i, v := range b.Cells {
		if b.HoldsISBN(i) || strings.TrimSpace(v) == "" {
			continue
		}
		b.Claim(i)
		return v, true
	}
	return "", false
}

// CommaField returns a strategy taking the first free column whose value
// holds a comma and is shorter than maxLen
func CommaField(maxLen float64) FieldStrategy {
	return func(b *BookRow) (string, bool) {
		for i, v := range b.Cells {
			if b.Claimed(i) || !strings.Contains(v, ",") {
				continue
			}
			if float64(utf8.RuneCountInString(v)) >= maxLen {
				continue
			}
			b.Claim(i)
			return v, true
		}
		return "", false
	}
}

// Strategies are the ordered fallback chains of the classifier
type Strategies struct {
	ISBN    []ISBNStrategy
	Title   []FieldStrategy
	Authors []FieldStrategy
}

// DefaultStrategies is the stock chain set for th
func DefaultStrategies(th schema.Thresholds) Strategies {
	return Strategies{
		ISBN:    []ISBNStrategy{DesignatedISBN, ScanISBN},
		Title:   []FieldStrategy{Designated(schema.Title), FirstNonISBN},
		Authors: []FieldStrategy{Designated(schema.Authors), CommaField(th.AuthorMaxAvgLen)},
	}
}

func runISBN(b *BookRow, chain []ISBNStrategy) bool {
	for _, s := range chain {
		if s(b) {
			return true
		}
	}
	return false
}

func runField(b *BookRow, chain []FieldStrategy) string {
	for _, s := range chain {
		if v, ok := s(b); ok {
			return v
		}
	}
	return ""
}

// Classifier turns book rows into books, links and quarantine entries. Author
// ids come from the shared registry so identity holds across the whole run.
type Classifier struct {
	cols     schema.BookColumns
	chains   Strategies
	splitter authors.Splitter
	registry *authors.Registry
}

// NewClassifier wires a classifier over detected columns
func NewClassifier(cols schema.BookColumns, chains Strategies, sp authors.Splitter, reg *authors.Registry) *Classifier {
	if reg == nil {
		reg = authors.NewRegistry()
	}
	return &Classifier{cols: cols, chains: chains, splitter: sp, registry: reg}
}

// Registry exposes the author registry
func (c *Classifier) Registry() *authors.Registry { return c.registry }

// Outcome is the result of classifying one row. Quarantined rows carry no
// book and no links.
type Outcome struct {
	Book        dom.BookRecord
	Links       []dom.BookAuthorLink
	Quarantined bool
	NewAuthors  int
}

// Classify processes one row
func (c *Classifier) Classify(cells []string) Outcome {
	b := NewBookRow(cells, c.cols)
	if !runISBN(b, c.chains.ISBN) {
		return Outcome{Quarantined: true}
	}

	primary := b.Primary()
	out := Outcome{
		Book: dom.BookRecord{
			PrimaryID: primary,
			ISBN10:    b.ISBN10,
			ISBN13:    b.ISBN13,
			Title:     normalize.Title(runField(b, c.chains.Title)),
		},
	}

	// the comma fallback never reads the detected title or authors columns
	b.Claim(c.cols.Col(schema.Title))
	b.Claim(c.cols.Col(schema.Authors))

	for _, name := range c.splitter.Split(runField(b, c.chains.Authors)) {
		name = normalize.PersonName(name)
		if name == "" {
			continue
		}
		id, created := c.registry.Resolve(name)
		if created {
			out.NewAuthors++
		}
		out.Links = append(out.Links, dom.BookAuthorLink{BookPrimaryID: primary, AuthorID: &id})
	}
	if len(out.Links) == 0 {
		out.Links = []dom.BookAuthorLink{{BookPrimaryID: primary}}
	}
	return out
}
