// Package module implements the seed module
package module

import (
	"shelfprep/internal/modkit"
	perr "shelfprep/internal/platform/errors"
	"shelfprep/internal/platform/validate"
	"shelfprep/internal/services/seed/domain"
	"shelfprep/internal/services/seed/repo"
	"shelfprep/internal/services/seed/service"
)

// Ports exposed by the seed module
type Ports struct {
	Loader domain.LoaderPort
	Runs   domain.RunsPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	name  string
	opts  Options
	ports Ports
}

// New constructs the seed module over deps.DB. Begin hooks passed through
// opts run first inside every load transaction.
func New(deps modkit.Deps, overrides Options, opts ...modkit.Option) (*Module, error) {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("seed"),
	}, opts...)...)

	cfg := FromConfig(deps.Cfg).Merge(overrides)
	if err := validate.Struct(cfg); err != nil {
		return nil, err
	}
	if !deps.HasDB() {
		return nil, perr.New(perr.ErrorCodeInvalidArgument, "seed: module needs a database")
	}

	binder, err := repo.New(deps.Dialect)
	if err != nil {
		return nil, err
	}
	svc := service.New(binder, b.Tx(deps.DB), service.Config{
		SniffLines: cfg.SniffLines,
		Attempts:   cfg.Attempts,
	})

	return &Module{
		deps: deps,
		name: b.Name,
		opts: cfg,
		ports: Ports{
			Loader: svc,
			Runs:   svc,
		},
	}, nil
}

// Input returns the load request the module was configured with
func (m *Module) Input() domain.Input {
	return domain.Input{Dir: m.opts.Dir, Clear: m.opts.Clear}
}

// Options returns the merged, validated options
func (m *Module) Options() Options { return m.opts }

// Name satisfies modkit.Module
func (m *Module) Name() string { return m.name }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }
