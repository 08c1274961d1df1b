// Package modkit provides module wiring and core deps
package modkit

import (
	"shelfprep/internal/modkit/repokit"
	"shelfprep/internal/platform/config"
	"shelfprep/internal/platform/logger"
	"shelfprep/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	// DB is nil for modules that never touch a database
	DB      repokit.TxRunner
	Dialect store.Dialect
}

// ZeroOK returns true when deps are safe to use with zero values in tests
// consumers should still nil check for optional stores
func (d Deps) ZeroOK() bool { return true }

// HasDB reports whether a database was wired
func (d Deps) HasDB() bool { return d.DB != nil }

// FromStore fills DB and Dialect from an opened store
func (d Deps) FromStore(st *store.Store) Deps {
	if st == nil {
		return d
	}
	d.DB = st.DB
	d.Dialect = st.Dialect
	return d
}
