// Package module implements the normalize module
package module

import (
	"shelfprep/internal/core/authors"
	"shelfprep/internal/modkit"
	"shelfprep/internal/platform/validate"
	"shelfprep/internal/services/normalize/domain"
	"shelfprep/internal/services/normalize/report"
	"shelfprep/internal/services/normalize/service"
)

// Ports exposed by the normalize module
type Ports struct {
	Runner     domain.RunnerPort
	Normalizer domain.NormalizerPort
	Report     domain.ReportPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	name  string
	opts  Options
	ports Ports
}

// New constructs a new normalize module. Overrides win over env config and
// the merged options are validated before anything is built.
func New(deps modkit.Deps, overrides Options, opts ...modkit.Option) (*Module, error) {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("normalize"),
	}, opts...)...)

	cfg := FromConfig(deps.Cfg).Merge(overrides)
	if err := validate.Struct(cfg); err != nil {
		return nil, err
	}

	// a caller may swap the report writer, e.g. to compute without writing
	rep, ok := b.Ports.(domain.ReportPort)
	if !ok || rep == nil {
		rep = report.New()
	}

	svc := service.New(rep, service.Config{
		SniffLines: cfg.SniffLines,
		Thresholds: cfg.Thresholds(),
		Splitter:   authors.Splitter{NoiseDigits: cfg.NoiseDigits, JoinInitials: true},
	})

	return &Module{
		deps: deps,
		name: b.Name,
		opts: cfg,
		ports: Ports{
			Runner:     svc,
			Normalizer: svc,
			Report:     rep,
		},
	}, nil
}

// Input returns the paths the module was configured with
func (m *Module) Input() domain.Input {
	return domain.Input{
		BooksPath:     m.opts.BooksPath,
		BorrowersPath: m.opts.BorrowersPath,
		OutDir:        m.opts.OutDir,
	}
}

// Options returns the merged, validated options
func (m *Module) Options() Options { return m.opts }

// Name satisfies modkit.Module
func (m *Module) Name() string { return m.name }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }
