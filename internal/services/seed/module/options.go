package module

import (
	"flag"
	"os"

	"shelfprep/internal/core/tabular"
	"shelfprep/internal/platform/config"
	perr "shelfprep/internal/platform/errors"
	"shelfprep/internal/platform/store"
)

const envPrefix = "SHELFPREP_SEED_"

var flagEnv = map[string]string{
	"dir":         "DIR",
	"driver":      "DRIVER",
	"dsn":         "DSN",
	"clear":       "CLEAR",
	"attempts":    "ATTEMPTS",
	"sniff-lines": "SNIFF_LINES",
	"log-sql":     "LOG_SQL",
}

// Options holds configuration settings for the seed module
type Options struct {
	Dir        string `flag:"dir" validate:"required"`
	Driver     string `flag:"driver" validate:"oneof=sqlite postgres"`
	DSN        string `flag:"dsn" validate:"required"`
	Clear      bool   `flag:"clear"`
	Attempts   int    `flag:"attempts" validate:"min=1,max=10"`
	SniffLines int    `flag:"sniff-lines" validate:"min=1"`
	LogSQL     bool   `flag:"log-sql"`
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix(envPrefix)
	return Options{
		Dir:        c.MayString("DIR", "milestone1_output"),
		Driver:     c.MayString("DRIVER", string(store.DialectSQLite)),
		DSN:        c.MayString("DSN", "shelfprep.db"),
		Clear:      c.MayBool("CLEAR", false),
		Attempts:   c.MayInt("ATTEMPTS", 3),
		SniffLines: c.MayInt("SNIFF_LINES", tabular.DefaultSniffLines),
		LogSQL:     c.MayBool("LOG_SQL", false),
	}
}

// Bind registers one flag per field on fs
func (o *Options) Bind(fs *flag.FlagSet) {
	fs.StringVar(&o.Dir, "dir", "", "directory holding the normalized tables (default milestone1_output)")
	fs.StringVar(&o.Driver, "driver", "", "sqlite or postgres (default sqlite)")
	fs.StringVar(&o.DSN, "dsn", "", "sqlite file path or postgres url (default shelfprep.db)")
	fs.BoolVar(&o.Clear, "clear", false, "delete existing rows before loading")
	fs.IntVar(&o.Attempts, "attempts", 0, "tries for a load that hits a transient db error")
	fs.IntVar(&o.SniffLines, "sniff-lines", 0, "leading lines inspected for the delimiter")
	fs.BoolVar(&o.LogSQL, "log-sql", false, "trace every statement at debug level")
}

// ExportFlags copies every flag set on fs into the env key FromConfig reads,
// so -clear=false beats SHELFPREP_SEED_CLEAR=true
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

// Merge returns o with every non-zero field of over applied on top.
// Booleans can only be switched on; ExportFlags carries an explicit false.
func (o Options) Merge(over Options) Options {
	str := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	str(&o.Dir, over.Dir)
	str(&o.Driver, over.Driver)
	str(&o.DSN, over.DSN)
	if over.Attempts != 0 {
		o.Attempts = over.Attempts
	}
	if over.SniffLines != 0 {
		o.SniffLines = over.SniffLines
	}
	o.Clear = o.Clear || over.Clear
	o.LogSQL = o.LogSQL || over.LogSQL
	return o
}

// StoreConfig is the store the options point at; the DSN is a file path for
// sqlite and a connection url for postgres
func (o Options) StoreConfig() store.Config {
	sc := store.Config{AppName: "shelfprep-seed", Driver: o.Driver, LogSQL: o.LogSQL}
	switch store.Dialect(o.Driver) {
	case store.DialectPostgres:
		sc.PG.URL = o.DSN
	default:
		sc.SQLite.Path = o.DSN
	}
	return sc
}
