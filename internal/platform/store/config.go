package store

import "time"

// Config aggregates per backend configuration
type Config struct {
	AppName string

	// Driver selects the backend: "postgres" or "sqlite"
	Driver string

	// LogSQL enables the query tracer for either backend
	LogSQL      bool
	SlowQueryMs int

	PG     PGConfig
	SQLite SQLiteConfig
}

// PGConfig configures postgres connectivity
type PGConfig struct {
	URL      string
	MaxConns int32

	// Guard/boot knobs:
	ConnectRetries int           // default 20
	PingTimeout    time.Duration // default 3s
}

// SQLiteConfig configures the embedded sqlite file
type SQLiteConfig struct {
	// Path is a file path or ":memory:"
	Path string

	// BusyTimeout is how long a writer waits on a locked database
	BusyTimeout time.Duration
}
