package schema

import (
	"strings"
	"unicode/utf8"

	"shelfprep/internal/core/isbn"
	"shelfprep/internal/core/normalize"
)

// Stage refines cols from headers and rows. Stages only fill unresolved targets.
type Stage func(headers []string, rows [][]string, th Thresholds, cols *BookColumns)

// BookStages is the default inference order
var BookStages = []Stage{HeaderStage, ShapeStage, TitleFallbackStage, AuthorsFallbackStage}

// DetectBookColumns runs BookStages in order over headers and rows
func DetectBookColumns(headers []string, rows [][]string, th Thresholds) BookColumns {
	return Detect(headers, rows, th, BookStages...)
}

// Detect runs the given stages in order starting from an empty mapping
func Detect(headers []string, rows [][]string, th Thresholds, stages ...Stage) BookColumns {
	cols := NewBookColumns()
	for _, s := range stages {
		s(headers, rows, th, &cols)
	}
	return cols
}

// HeaderStage matches header names case-insensitively; first match per target wins
func HeaderStage(headers []string, _ [][]string, _ Thresholds, cols *BookColumns) {
	for i, h := range headers {
		lh := strings.ToLower(h)
		hasISBN := strings.Contains(lh, "isbn")
		if strings.Contains(lh, "isbn10") || (hasISBN && strings.Contains(lh, "10")) {
			cols.Set(ISBN10, i, "header")
		}
		if strings.Contains(lh, "isbn13") || (hasISBN && strings.Contains(lh, "13")) {
			cols.Set(ISBN13, i, "header")
		}
		if strings.Contains(lh, "title") {
			cols.Set(Title, i, "header")
		}
		if strings.Contains(lh, "author") {
			cols.Set(Authors, i, "header")
		}
	}
}

// ShapeStage counts cleaned values of length 10 and 13 per column over the
// sample and adopts the first column with the highest count, provided the
// count exceeds ISBNMinHits
func ShapeStage(headers []string, rows [][]string, th Thresholds, cols *BookColumns) {
	if len(headers) == 0 {
		return
	}
	len10, len13 := ShapeCounts(headers, sample(rows, th.SampleRows))

	if _, ok := cols.Get(ISBN13); !ok {
		if best := argmax(len13); len13[best] > th.ISBNMinHits {
			cols.Set(ISBN13, best, "shape")
		}
	}
	if _, ok := cols.Get(ISBN10); !ok {
		if best := argmax(len10); len10[best] > th.ISBNMinHits {
			cols.Set(ISBN10, best, "shape")
		}
	}
}

// ShapeCounts returns per column counts of ISBN-10 and ISBN-13 shaped values.
// A value lands in at most one bucket.
func ShapeCounts(headers []string, rows [][]string) (len10, len13 []int) {
	len10 = make([]int, len(headers))
	len13 = make([]int, len(headers))
	for _, r := range rows {
		for i := range headers {
			switch isbn.KindOf(isbn.Clean(cell(r, i))) {
			case isbn.Kind10:
				len10[i]++
			case isbn.Kind13:
				len13[i]++
			}
		}
	}
	return len10, len13
}

// TitleFallbackStage picks the first non-ISBN column whose normalized sample
// has at least one value with a space and an average length over TitleMinAvgLen
func TitleFallbackStage(headers []string, rows [][]string, th Thresholds, cols *BookColumns) {
	if _, ok := cols.Get(Title); ok {
		return
	}
	s := sample(rows, th.TitleSampleRows)
	for i := range headers {
		if cols.IsISBN(i) {
			continue
		}
		total, spaced := 0, false
		for _, r := range s {
			v := normalize.Text(cell(r, i))
			total += utf8.RuneCountInString(v)
			if strings.Contains(v, " ") {
				spaced = true
			}
		}
		if spaced && avg(total, len(s)) > th.TitleMinAvgLen {
			cols.Set(Title, i, "fallback")
			return
		}
	}
}

// AuthorsFallbackStage picks the first column whose raw sample has a value
// with a comma and an average length under AuthorMaxAvgLen
func AuthorsFallbackStage(headers []string, rows [][]string, th Thresholds, cols *BookColumns) {
	if _, ok := cols.Get(Authors); ok {
		return
	}
	s := sample(rows, th.SampleRows)
	for i := range headers {
		total, commas := 0, 0
		for _, r := range s {
			v := cell(r, i)
			total += utf8.RuneCountInString(v)
			if strings.Contains(v, ",") {
				commas++
			}
		}
		if commas > 0 && avg(total, len(s)) < th.AuthorMaxAvgLen {
			cols.Set(Authors, i, "fallback")
			return
		}
	}
}

func sample(rows [][]string, n int) [][]string {
	if n < 0 || n >= len(rows) {
		return rows
	}
	return rows[:n]
}

func cell(r []string, i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

func argmax(xs []int) int {
	best := 0
	for i, x := range xs {
		if x > xs[best] {
			best = i
		}
	}
	return best
}

func avg(total, n int) float64 {
	if n < 1 {
		n = 1
	}
	return float64(total) / float64(n)
}
