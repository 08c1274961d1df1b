// Package service implements the normalize pipeline: read both inputs, infer
// their layout, classify every row and hand the result to a report writer
package service

import (
	"context"

	"shelfprep/internal/core/authors"
	"shelfprep/internal/core/schema"
	"shelfprep/internal/core/tabular"
	perr "shelfprep/internal/platform/errors"
	"shelfprep/internal/platform/logger"
	dom "shelfprep/internal/services/normalize/domain"
)

// Config for the normalize service
type Config struct {
	SniffLines int
	Thresholds schema.Thresholds
	Splitter   authors.Splitter
}

// Service implements domain.RunnerPort and domain.NormalizerPort
type Service struct {
	Report dom.ReportPort
	Cfg    Config
}

// New constructs a normalize service; zero config fields take defaults
func New(report dom.ReportPort, cfg Config) *Service {
	if cfg.SniffLines <= 0 {
		cfg.SniffLines = tabular.DefaultSniffLines
	}
	if cfg.Thresholds == (schema.Thresholds{}) {
		cfg.Thresholds = schema.DefaultThresholds()
	}
	if cfg.Splitter.NoiseDigits <= 0 {
		cfg.Splitter = authors.DefaultSplitter()
	}
	return &Service{Report: report, Cfg: cfg}
}

// Run normalizes in and writes every output under in.OutDir. Nothing is
// written when an input is missing or unreadable.
func (s *Service) Run(ctx context.Context, in dom.Input) (*dom.Result, dom.Files, error) {
	if s.Report == nil {
		return nil, nil, perr.New(perr.ErrorCodeInvalidArgument, "normalize: no report writer")
	}
	res, err := s.Normalize(ctx, in)
	if err != nil {
		return nil, nil, err
	}
	files, err := s.Report.Write(ctx, in.OutDir, res)
	if err != nil {
		return res, files, err
	}
	return res, files, nil
}

// Normalize computes the full result in memory
func (s *Service) Normalize(ctx context.Context, in dom.Input) (*dom.Result, error) {
	l := logger.C(ctx).With().Str("mod", "normalize").Logger()

	// fail fast on either input before reading anything
	for _, p := range []string{in.BooksPath, in.BorrowersPath} {
		if err := tabular.Exists(p); err != nil {
			return nil, perr.WithOp(err, "normalize.inputs")
		}
	}

	books, err := tabular.ReadFile(in.BooksPath, s.Cfg.SniffLines)
	if err != nil {
		return nil, perr.WithOp(err, "normalize.books")
	}
	borrowers, err := tabular.ReadFile(in.BorrowersPath, s.Cfg.SniffLines)
	if err != nil {
		return nil, perr.WithOp(err, "normalize.borrowers")
	}
	l.Info().
		Str("books", books.Path).Str("books_delim", tabular.DelimiterName(books.Delimiter)).Int("book_rows", len(books.Rows)).
		Str("borrowers", borrowers.Path).Str("borrowers_delim", tabular.DelimiterName(borrowers.Delimiter)).Int("borrower_rows", len(borrowers.Rows)).
		Msg("normalize: inputs read")

	res := &dom.Result{
		BooksSource:     source(books),
		BorrowersSource: source(borrowers),
	}

	cols := schema.DetectBookColumns(books.Headers, books.Rows, s.Cfg.Thresholds)
	res.BookColumns = bookChoices(books.Headers, cols)
	for _, c := range res.BookColumns {
		l.Info().Str("field", c.Field).Str("header", c.Header).Str("via", c.Via).Msg("normalize: book column")
	}

	s.classifyBooks(l, books, cols, res)

	bm := NewBorrowerMapper(borrowers.Headers)
	res.BorrowerColumns = borrowerChoices(borrowers.Headers, bm.Mapping())
	for _, c := range res.BorrowerColumns {
		l.Debug().Str("field", c.Field).Str("header", c.Header).Str("via", c.Via).Msg("normalize: borrower column")
	}
	mapBorrowers(bm, borrowers, res)

	l.Info().
		Int("books", res.Stats.BookRows).
		Int("authors", res.Stats.UniqueAuthors).
		Int("links", res.Stats.LinkRows).
		Int("quarantined", res.Stats.QuarantinedRows).
		Int("borrowers", res.Stats.BorrowerRows).
		Int("borrowers_dropped", res.Stats.DroppedBorrowers).
		Msg("normalize: done")
	return res, nil
}

func (s *Service) classifyBooks(l logger.Logger, t *tabular.Table, cols schema.BookColumns, res *dom.Result) {
	c := NewClassifier(cols, DefaultStrategies(s.Cfg.Thresholds), s.Cfg.Splitter, authors.NewRegistry())
	for i, row := range t.Rows {
		o := c.Classify(row)
		if o.Quarantined {
			l.Debug().Int("row", i+1).Msg("normalize: no usable isbn, quarantined")
			res.Quarantine = append(res.Quarantine, dom.QuarantinedRow{Values: append([]string(nil), row...)})
			continue
		}
		res.Books = append(res.Books, o.Book)
		res.Links = append(res.Links, o.Links...)
		for _, lk := range o.Links {
			if lk.AuthorID == nil {
				res.Stats.NullAuthorLinks++
			}
		}
	}

	for _, e := range c.Registry().Entities() {
		res.Authors = append(res.Authors, dom.AuthorEntity{ID: e.ID, Name: e.Name})
	}
	res.Stats.InputBookRows = len(t.Rows)
	res.Stats.BookRows = len(res.Books)
	res.Stats.UniqueAuthors = len(res.Authors)
	res.Stats.LinkRows = len(res.Links)
	res.Stats.QuarantinedRows = len(res.Quarantine)
}

func mapBorrowers(bm BorrowerMapper, t *tabular.Table, res *dom.Result) {
	for _, row := range t.Rows {
		rec, ok := bm.Map(row)
		if !ok {
			res.Stats.DroppedBorrowers++
			continue
		}
		res.Borrowers = append(res.Borrowers, rec)
	}
	res.Stats.InputBorrowerRows = len(t.Rows)
	res.Stats.BorrowerRows = len(res.Borrowers)
}

func source(t *tabular.Table) dom.SourceFile {
	return dom.SourceFile{
		Path:      t.Path,
		Delimiter: t.Delimiter,
		Headers:   append([]string(nil), t.Headers...),
		Rows:      len(t.Rows),
	}
}

func header(headers []string, i int) string {
	if i < 0 || i >= len(headers) {
		return ""
	}
	return headers[i]
}

func bookChoices(headers []string, cols schema.BookColumns) []dom.ColumnChoice {
	out := make([]dom.ColumnChoice, 0, 4)
	for _, t := range []schema.Target{schema.ISBN10, schema.ISBN13, schema.Title, schema.Authors} {
		out = append(out, dom.ColumnChoice{
			Field:  t.String(),
			Header: header(headers, cols.Col(t)),
			Via:    cols.Via(t),
		})
	}
	return out
}

func borrowerChoices(headers []string, m schema.BorrowerMapping) []dom.ColumnChoice {
	out := make([]dom.ColumnChoice, 0, 5)
	for _, f := range schema.BorrowerFields() {
		c := dom.ColumnChoice{Field: f.String(), Header: header(headers, m.Col(f))}
		switch {
		case f == schema.Name && m.SplitName():
			c.Header = headers[m.FirstName] + "+" + headers[m.LastName]
			c.Via = "split"
		case c.Header == "":
		case m.Positional(f):
			c.Via = "positional"
		default:
			c.Via = "header"
		}
		out = append(out, c)
	}
	return out
}
