// Command shelfprep-seed loads the normalized tables into sqlite or postgres
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"shelfprep/internal/core/version"
	"shelfprep/internal/modkit"
	"shelfprep/internal/modkit/module"
	"shelfprep/internal/modkit/repokit"
	"shelfprep/internal/platform/config"
	perr "shelfprep/internal/platform/errors"
	"shelfprep/internal/platform/logger"
	"shelfprep/internal/platform/store"

	seeddom "shelfprep/internal/services/seed/domain"
	seedmod "shelfprep/internal/services/seed/module"
)

func main() {
	_ = godotenv.Load()
	logger.Init(logger.FromEnv())
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run returns the process exit code; the store is closed on every path
func run(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("shelfprep-seed", flag.ContinueOnError)
	var o seedmod.Options
	o.Bind(fs)
	runs := fs.Int("runs", 0, "list the N most recent loads instead of loading")
	showVersion := fs.Bool("version", false, "print the build version and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return perr.ExitStatus(perr.ErrorCodeInvalidArgument)
	}

	if *showVersion {
		fmt.Fprintln(stdout, version.Info("shelfprep-seed"))
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logger.WithRun(ctx, uuid.NewString())
	l := logger.Get()

	if err := seedmod.ExportFlags(fs); err != nil {
		return fail(ctx, err, "invalid flags")
	}
	cfg := config.New()
	opts := seedmod.FromConfig(cfg).Merge(o)

	st, err := store.Open(ctx, opts.StoreConfig(), store.WithLogger(*l))
	if err != nil {
		return fail(ctx, perr.WithOp(err, "seed.open"), "store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	m, err := seedmod.New(modkit.Deps{Cfg: cfg, Log: *l}.FromStore(st), o)
	if err != nil {
		return fail(ctx, err, "invalid options")
	}
	module.Register(m.Name(), m.Ports())

	if *runs > 0 {
		list, err := module.MustPortsOf[seeddom.RunsPort](m).Runs(ctx, *runs)
		if err != nil {
			return fail(ctx, err, "list runs failed")
		}
		for _, r := range list {
			fmt.Fprintf(stdout, "%s\t%s\tbooks=%d authors=%d links=%d borrowers=%d\n",
				r.ID, r.LoadedAt.Format(time.RFC3339), r.Counts.Books, r.Counts.Authors, r.Counts.Links, r.Counts.Borrowers)
		}
		return 0
	}

	loaded, err := module.MustPortsOf[seeddom.LoaderPort](m).Load(ctx, m.Input())
	if err != nil {
		return fail(ctx, err, "seed failed")
	}
	fmt.Fprintf(stdout, "loaded run %s: books=%d authors=%d links=%d borrowers=%d\n",
		loaded.ID, loaded.Counts.Books, loaded.Counts.Authors, loaded.Counts.Links, loaded.Counts.Borrowers)
	return 0
}

func fail(ctx context.Context, err error, msg string) int {
	logger.C(ctx).Error().Err(err).Msg(msg)
	return perr.ExitCode(err)
}
