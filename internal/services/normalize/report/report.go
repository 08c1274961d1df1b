// Package report writes a normalize result as five CSV tables plus the audit log
package report

import (
	"context"
	"os"
	"path/filepath"
	"strconv"

	"shelfprep/internal/core/tabular"
	perr "shelfprep/internal/platform/errors"
	"shelfprep/internal/platform/logger"
	dom "shelfprep/internal/services/normalize/domain"
)

// seams for tests
var (
	writeTable = tabular.WriteFile
	writeText  = func(path string, body []byte) error { return os.WriteFile(path, body, 0o644) }
)

// Writer implements domain.ReportPort on the local filesystem
type Writer struct{}

// New returns a filesystem report writer
func New() *Writer { return &Writer{} }

type table struct {
	name   string
	header []string
	rows   [][]string
}

// Write emits books, authors, links, borrowers, quarantine and the log, in
// that order. It stops at the first failure and returns what was written.
func (w *Writer) Write(ctx context.Context, dir string, res *dom.Result) (dom.Files, error) {
	if res == nil {
		return nil, perr.InvalidArgf("report: nil result")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, perr.IOf(err, "report: mkdir %s", dir)
	}

	var files dom.Files
	for _, t := range tables(res) {
		p := filepath.Join(dir, t.name)
		if err := writeTable(p, t.header, t.rows); err != nil {
			return files, perr.WithOp(err, "report."+t.name)
		}
		files = append(files, p)
	}

	p := filepath.Join(dir, dom.FileLog)
	if err := writeText(p, []byte(AuditLog(res))); err != nil {
		return files, perr.IOf(err, "report: write %s", p)
	}
	files = append(files, p)

	logger.C(ctx).Info().Str("mod", "report").Str("dir", dir).Int("files", len(files)).Msg("report: written")
	return files, nil
}

// tables renders res as the ordered output tables
func tables(res *dom.Result) []table {
	return []table{
		{dom.FileBooks, dom.BookHeader, bookRows(res.Books)},
		{dom.FileAuthors, dom.AuthorHeader, authorRows(res.Authors)},
		{dom.FileBookAuthors, dom.BookAuthorHeader, linkRows(res.Links)},
		{dom.FileBorrowers, dom.BorrowerHeader, borrowerRows(res.Borrowers)},
		{dom.FileQuarantine, res.BooksSource.Headers, quarantineRows(res.Quarantine)},
	}
}

func bookRows(xs []dom.BookRecord) [][]string {
	out := make([][]string, 0, len(xs))
	for _, b := range xs {
		out = append(out, []string{b.PrimaryID, b.ISBN10, b.ISBN13, b.Title})
	}
	return out
}

// authors are registered in id order already; sort defensively anyway
func authorRows(xs []dom.AuthorEntity) [][]string {
	sorted := append([]dom.AuthorEntity(nil), xs...)
	sortAuthors(sorted)
	out := make([][]string, 0, len(sorted))
	for _, a := range sorted {
		out = append(out, []string{strconv.Itoa(a.ID), a.Name})
	}
	return out
}

func linkRows(xs []dom.BookAuthorLink) [][]string {
	out := make([][]string, 0, len(xs))
	for _, l := range xs {
		id := ""
		if l.AuthorID != nil {
			id = strconv.Itoa(*l.AuthorID)
		}
		out = append(out, []string{l.BookPrimaryID, id})
	}
	return out
}

func borrowerRows(xs []dom.BorrowerRecord) [][]string {
	out := make([][]string, 0, len(xs))
	for _, b := range xs {
		out = append(out, []string{b.CardID, b.SSN, b.Name, b.Address, b.Phone})
	}
	return out
}

func quarantineRows(xs []dom.QuarantinedRow) [][]string {
	out := make([][]string, 0, len(xs))
	for _, q := range xs {
		out = append(out, q.Values)
	}
	return out
}
