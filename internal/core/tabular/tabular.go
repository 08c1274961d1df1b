// Package tabular sniffs delimiters and reads or writes whole delimited files
package tabular

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	perr "shelfprep/internal/platform/errors"
)

// DefaultSniffLines is how many leading lines SniffDelimiter inspects by default
const DefaultSniffLines = 20

// candidates in tie-break order: the first wins on equal counts
var candidates = []rune{',', '\t', ';'}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Table is a fully materialized delimited file. Rows are padded or cut to
// len(Headers) so column indexes are always in range.
type Table struct {
	Path      string
	Delimiter rune
	Headers   []string
	Rows      [][]string
}

// Index returns the position of the first header equal to name, or -1
func (t *Table) Index(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// DelimiterName renders a delimiter for humans
func DelimiterName(d rune) string {
	switch d {
	case '\t':
		return "TAB"
	case 0:
		return "?"
	default:
		return string(d)
	}
}

// SniffDelimiter counts comma, tab and semicolon over the first lines of path
// and returns the most frequent one, comma on ties
func SniffDelimiter(path string, lines int) (rune, error) {
	f, err := open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return sniff(f, lines)
}

func sniff(r io.Reader, lines int) (rune, error) {
	if lines <= 0 {
		lines = DefaultSniffLines
	}
	br := bufio.NewReader(r)
	counts := make(map[rune]int, len(candidates))
	for i := 0; i < lines; i++ {
		line, err := br.ReadString('\n')
		for _, c := range candidates {
			counts[c] += strings.Count(line, string(c))
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, perr.IOf(err, "sniff delimiter")
		}
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if counts[c] > counts[best] {
			best = c
		}
	}
	return best, nil
}

// ReadFile sniffs the delimiter of path and reads the whole file into a Table.
// The first record is the header. A missing file is a NotFound error.
func ReadFile(path string, sniffLines int) (*Table, error) {
	delim, err := SniffDelimiter(path, sniffLines)
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, perr.IOf(err, "read %s", path)
	}
	t, err := Parse(bytes.NewReader(bytes.TrimPrefix(b, utf8BOM)), delim)
	if err != nil {
		return nil, perr.WithOp(err, path)
	}
	t.Path = path
	return t, nil
}

// Parse reads delimited records from r using delim
func Parse(r io.Reader, delim rune) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	t := &Table{Delimiter: delim}
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return t, nil
	}
	if err != nil {
		return nil, perr.IOf(err, "parse header")
	}
	t.Headers = append([]string(nil), header...)

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, perr.IOf(err, "parse record")
		}
		t.Rows = append(t.Rows, fit(rec, len(t.Headers)))
	}
	return t, nil
}

// Exists reports a NotFound error when path is missing, nil otherwise
func Exists(path string) error {
	st, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return perr.WithField(perr.Wrapf(err, perr.ErrorCodeNotFound, "input file not found: %s", path), path)
		}
		return perr.IOf(err, "stat %s", path)
	}
	if st.IsDir() {
		return perr.InvalidArgf("input path is a directory: %s", path)
	}
	return nil
}

func open(path string) (*os.File, error) {
	if err := Exists(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, perr.IOf(err, "open %s", path)
	}
	return f, nil
}

// fit pads short records with "" and drops cells past n
func fit(rec []string, n int) []string {
	out := make([]string, n)
	copy(out, rec)
	return out
}
