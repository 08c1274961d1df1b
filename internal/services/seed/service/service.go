// Package service loads the normalized tables into a database in one transaction
package service

import (
	"context"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"shelfprep/internal/core/tabular"
	"shelfprep/internal/modkit/repokit"
	perr "shelfprep/internal/platform/errors"
	"shelfprep/internal/platform/logger"
	"shelfprep/internal/platform/store"
	str "shelfprep/internal/platform/strings"
	"shelfprep/internal/services/seed/domain"
	"shelfprep/internal/services/seed/repo"
)

// Config for the seed service
type Config struct {
	SniffLines int
	// Attempts bounds retries of the whole load on transient db failures
	Attempts int
}

// Service implements domain.LoaderPort and domain.RunsPort
type Service struct {
	binder repokit.Binder[repo.Storage]
	tx     repokit.TxRunner
	cfg    Config
}

var (
	now   = func() time.Time { return time.Now().UTC() }
	newID = uuid.NewString
)

// New constructs a seed service over tx
func New(binder repokit.Binder[repo.Storage], tx repokit.TxRunner, cfg Config) *Service {
	if cfg.SniffLines <= 0 {
		cfg.SniffLines = tabular.DefaultSniffLines
	}
	if cfg.Attempts <= 0 {
		cfg.Attempts = 1
	}
	return &Service{binder: binder, tx: tx, cfg: cfg}
}

// Load reads every table file under in.Dir and inserts them in one transaction.
// Nothing is written when a file is missing or a row cannot be bound.
func (s *Service) Load(ctx context.Context, in domain.Input) (domain.Run, error) {
	l := logger.C(ctx).With().Str("mod", "seed").Logger()
	if s.tx == nil || s.binder == nil {
		return domain.Run{}, perr.New(perr.ErrorCodeInvalidArgument, "seed: no database wired")
	}

	tables := domain.Tables()
	for _, t := range tables {
		if err := tabular.Exists(filepath.Join(in.Dir, t.File)); err != nil {
			return domain.Run{}, perr.WithOp(err, "seed.inputs")
		}
	}

	batches := make([]domain.Batch, 0, len(tables))
	for _, t := range tables {
		b, err := s.readBatch(filepath.Join(in.Dir, t.File), t)
		if err != nil {
			return domain.Run{}, perr.WithOp(err, "seed.read."+t.Name)
		}
		l.Debug().Str("table", t.Name).Int("rows", len(b.Rows)).Msg("seed: batch ready")
		batches = append(batches, b)
	}

	tx := s.tx
	if in.Clear {
		tx = repokit.WithBeginHooks(tx, s.clearHook(tables))
	}

	run := domain.Run{ID: newID(), LoadedAt: now()}
	err := store.RunTx(ctx, tx, s.cfg.Attempts, func(ctx context.Context, q store.RowQuerier) error {
		r := s.binder.Bind(q)
		if err := r.EnsureSchema(ctx); err != nil {
			return err
		}
		// a retried attempt starts from zero
		run.Counts = domain.Counts{}
		for _, b := range batches {
			n, err := r.Insert(ctx, b.Table, b.Rows)
			if err != nil {
				return err
			}
			run.Counts.Set(b.Table, int(n))
		}
		return r.RecordRun(ctx, run)
	})
	if err != nil {
		return domain.Run{}, err
	}

	l.Info().
		Str("run_id", run.ID).Bool("clear", in.Clear).
		Int("books", run.Counts.Books).Int("authors", run.Counts.Authors).
		Int("links", run.Counts.Links).Int("borrowers", run.Counts.Borrowers).
		Msg("seed: load committed")
	return run, nil
}

// Runs lists recorded loads, newest first
func (s *Service) Runs(ctx context.Context, limit int) ([]domain.Run, error) {
	if s.tx == nil || s.binder == nil {
		return nil, perr.New(perr.ErrorCodeInvalidArgument, "seed: no database wired")
	}
	var out []domain.Run
	err := repokit.WithTx(ctx, s.tx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		if err := r.EnsureSchema(ctx); err != nil {
			return err
		}
		var err error
		out, err = r.Runs(ctx, limit)
		return err
	})
	return out, err
}

// clearHook empties the tables children first so foreign keys hold
func (s *Service) clearHook(tables []domain.Table) repokit.BeginHook {
	return func(ctx context.Context, q repokit.Queryer) error {
		r := s.binder.Bind(q)
		if err := r.EnsureSchema(ctx); err != nil {
			return err
		}
		for _, t := range slices.Backward(tables) {
			if err := r.Clear(ctx, t); err != nil {
				return err
			}
		}
		return nil
	}
}

// readBatch maps the file's columns by header name, binds empty cells as
// NULL and drops repeated rows
func (s *Service) readBatch(path string, t domain.Table) (domain.Batch, error) {
	tab, err := tabular.ReadFile(path, s.cfg.SniffLines)
	if err != nil {
		return domain.Batch{}, err
	}

	idx := make([]int, len(t.Columns))
	key := -1
	for i, c := range t.Columns {
		idx[i] = tab.Index(c)
		if idx[i] < 0 {
			return domain.Batch{}, perr.WithField(perr.Validationf("%s: missing column %q", path, c), c)
		}
		if c == t.Key {
			key = i
		}
	}

	b := domain.Batch{Table: t}
	seen := make(map[string]struct{}, len(tab.Rows))
	for n, rec := range tab.Rows {
		cells := make([]string, len(idx))
		for i, j := range idx {
			cells[i] = strings.TrimSpace(rec[j])
		}
		if key >= 0 && cells[key] == "" {
			continue
		}
		sig := strings.Join(cells, "\x1f")
		if _, dup := seen[sig]; dup {
			continue
		}
		seen[sig] = struct{}{}

		row := make([]any, len(cells))
		for i, c := range cells {
			row[i] = str.SQLNull(c)
			if row[i] == nil || !t.IsInt(t.Columns[i]) {
				continue
			}
			v, err := strconv.ParseInt(c, 10, 64)
			if err != nil {
				// +2: header line plus 1-based rows
				return domain.Batch{}, perr.WithField(
					perr.Validationf("%s line %d: %s %q is not an integer", path, n+2, t.Columns[i], c),
					t.Columns[i])
			}
			row[i] = v
		}
		b.Rows = append(b.Rows, row)
	}
	return b, nil
}
