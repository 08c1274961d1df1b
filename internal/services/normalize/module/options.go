package module

import (
	"flag"
	"os"

	"shelfprep/internal/core/authors"
	"shelfprep/internal/core/schema"
	"shelfprep/internal/core/tabular"
	"shelfprep/internal/platform/config"
	perr "shelfprep/internal/platform/errors"
)

const envPrefix = "SHELFPREP_"

// flagEnv maps each flag to the key FromConfig reads it from
var flagEnv = map[string]string{
	"books":               "BOOKS_PATH",
	"borrowers":           "BORROWERS_PATH",
	"out":                 "OUT_DIR",
	"sniff-lines":         "SNIFF_LINES",
	"sample-rows":         "SAMPLE_ROWS",
	"title-sample-rows":   "TITLE_SAMPLE_ROWS",
	"isbn-min-hits":       "ISBN_MIN_HITS",
	"title-min-avg-len":   "TITLE_MIN_AVG_LEN",
	"author-max-avg-len":  "AUTHOR_MAX_AVG_LEN",
	"author-noise-digits": "AUTHOR_NOISE_DIGITS",
}

// Options holds configuration settings for the normalize module. The flag
// tags name the CLI flag each field is bound to and drive validation messages.
type Options struct {
	BooksPath     string `flag:"books" validate:"required"`
	BorrowersPath string `flag:"borrowers" validate:"required"`
	OutDir        string `flag:"out" validate:"required"`

	SniffLines      int `flag:"sniff-lines" validate:"min=1"`
	SampleRows      int `flag:"sample-rows" validate:"min=1"`
	TitleSampleRows int `flag:"title-sample-rows" validate:"min=1"`
	ISBNMinHits     int `flag:"isbn-min-hits" validate:"min=0"`
	TitleMinAvgLen  int `flag:"title-min-avg-len" validate:"min=0"`
	AuthorMaxAvgLen int `flag:"author-max-avg-len" validate:"min=1"`
	NoiseDigits     int `flag:"author-noise-digits" validate:"min=1"`
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix(envPrefix)
	th := schema.DefaultThresholds()
	return Options{
		BooksPath:       c.MayString("BOOKS_PATH", "books.csv"),
		BorrowersPath:   c.MayString("BORROWERS_PATH", "borrowers.csv"),
		OutDir:          c.MayString("OUT_DIR", "milestone1_output"),
		SniffLines:      c.MayInt("SNIFF_LINES", tabular.DefaultSniffLines),
		SampleRows:      c.MayInt("SAMPLE_ROWS", th.SampleRows),
		TitleSampleRows: c.MayInt("TITLE_SAMPLE_ROWS", th.TitleSampleRows),
		ISBNMinHits:     c.MayInt("ISBN_MIN_HITS", th.ISBNMinHits),
		TitleMinAvgLen:  c.MayInt("TITLE_MIN_AVG_LEN", int(th.TitleMinAvgLen)),
		AuthorMaxAvgLen: c.MayInt("AUTHOR_MAX_AVG_LEN", int(th.AuthorMaxAvgLen)),
		NoiseDigits:     c.MayInt("AUTHOR_NOISE_DIGITS", authors.DefaultNoiseDigits),
	}
}

// Bind registers one flag per field on fs
func (o *Options) Bind(fs *flag.FlagSet) {
	fs.StringVar(&o.BooksPath, "books", "", "raw book catalog (default books.csv)")
	fs.StringVar(&o.BorrowersPath, "borrowers", "", "raw borrower roster (default borrowers.csv)")
	fs.StringVar(&o.OutDir, "out", "", "output directory (default milestone1_output)")
	fs.IntVar(&o.SniffLines, "sniff-lines", 0, "leading lines inspected for the delimiter")
	fs.IntVar(&o.SampleRows, "sample-rows", 0, "rows sampled for ISBN and authors detection")
	fs.IntVar(&o.TitleSampleRows, "title-sample-rows", 0, "rows sampled for title detection")
	fs.IntVar(&o.ISBNMinHits, "isbn-min-hits", 0, "a scanned ISBN column needs more hits than this")
	fs.IntVar(&o.TitleMinAvgLen, "title-min-avg-len", 0, "a title column needs a longer average length than this")
	fs.IntVar(&o.AuthorMaxAvgLen, "author-max-avg-len", 0, "longest average length accepted for an authors column")
	fs.IntVar(&o.NoiseDigits, "author-noise-digits", 0, "digit count that marks an author fragment as noise")
}

// ExportFlags copies every flag set on fs into the env key FromConfig reads,
// so an explicit zero wins over the default the way a set env var does
func ExportFlags(fs *flag.FlagSet) error {
	c := config.New().Prefix(envPrefix)
	var err error
	fs.Visit(func(f *flag.Flag) {
		k, ok := flagEnv[f.Name]
		if !ok || err != nil {
			return
		}
		if e := os.Setenv(c.Key(k), f.Value.String()); e != nil {
			err = perr.Wrapf(e, perr.ErrorCodeInvalidArgument, "set %s", c.Key(k))
		}
	})
	return err
}

// Merge returns o with every non-zero field of over applied on top. A zero
// in over means unset; ExportFlags carries an explicit zero.
func (o Options) Merge(over Options) Options {
	str := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	num := func(dst *int, v int) {
		if v != 0 {
			*dst = v
		}
	}
	str(&o.BooksPath, over.BooksPath)
	str(&o.BorrowersPath, over.BorrowersPath)
	str(&o.OutDir, over.OutDir)
	num(&o.SniffLines, over.SniffLines)
	num(&o.SampleRows, over.SampleRows)
	num(&o.TitleSampleRows, over.TitleSampleRows)
	num(&o.ISBNMinHits, over.ISBNMinHits)
	num(&o.TitleMinAvgLen, over.TitleMinAvgLen)
	num(&o.AuthorMaxAvgLen, over.AuthorMaxAvgLen)
	num(&o.NoiseDigits, over.NoiseDigits)
	return o
}

// Thresholds converts the heuristic knobs
func (o Options) Thresholds() schema.Thresholds {
	return schema.Thresholds{
		SampleRows:      o.SampleRows,
		TitleSampleRows: o.TitleSampleRows,
		ISBNMinHits:     o.ISBNMinHits,
		TitleMinAvgLen:  float64(o.TitleMinAvgLen),
		AuthorMaxAvgLen: float64(o.AuthorMaxAvgLen),
	}
}
