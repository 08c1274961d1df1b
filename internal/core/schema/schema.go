// Package schema infers which columns of an unknown book file hold the ISBNs,
// title and authors, and maps a borrower file onto the fixed borrower shape.
// Every function here is pure over (headers, sample rows).
package schema

// None marks an unresolved column
const None = -1

// Target is a logical book field the detector looks for
type Target int

// Book targets
const (
	ISBN10 Target = iota
	ISBN13
	Title
	Authors
	numTargets
)

var targetNames = [numTargets]string{"isbn10", "isbn13", "title", "authors"}

func (t Target) String() string {
	if t < 0 || t >= numTargets {
		return "unknown"
	}
	return targetNames[t]
}

// Thresholds are the tunable constants of the content heuristics
type Thresholds struct {
	// SampleRows bounds the ISBN shape scan and the authors fallback
	SampleRows int
	// TitleSampleRows bounds the title fallback scan
	TitleSampleRows int
	// ISBNMinHits is the count a column must exceed to be adopted by shape
	ISBNMinHits int
	// TitleMinAvgLen is the average length a title column must exceed
	TitleMinAvgLen float64
	// AuthorMaxAvgLen is the average length an authors column must stay under
	AuthorMaxAvgLen float64
}

// DefaultThresholds returns the stock heuristic constants
func DefaultThresholds() Thresholds {
	return Thresholds{
		SampleRows:      200,
		TitleSampleRows: 100,
		ISBNMinHits:     5,
		TitleMinAvgLen:  5,
		AuthorMaxAvgLen: 200,
	}
}

// BookColumns is the result of book column inference
type BookColumns struct {
	cols [numTargets]int
	via  [numTargets]string
}

// NewBookColumns returns a mapping with every target unresolved
func NewBookColumns() BookColumns {
	var b BookColumns
	for i := range b.cols {
		b.cols[i] = None
	}
	return b
}

// Get returns the column index for t and whether it is resolved
func (b BookColumns) Get(t Target) (int, bool) {
	c := b.cols[t]
	return c, c != None
}

// Col returns the column index for t, or None
func (b BookColumns) Col(t Target) int { return b.cols[t] }

// Via names the stage that resolved t, empty when unresolved
func (b BookColumns) Via(t Target) string { return b.via[t] }

// Set assigns t to col if it is still unresolved and reports whether it did
func (b *BookColumns) Set(t Target, col int, via string) bool {
	if b.cols[t] != None || col < 0 {
		return false
	}
	b.cols[t] = col
	b.via[t] = via
	return true
}

// IsISBN reports whether col is one of the resolved ISBN columns
func (b BookColumns) IsISBN(col int) bool {
	return col != None && (col == b.cols[ISBN10] || col == b.cols[ISBN13])
}
