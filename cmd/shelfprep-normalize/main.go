// Command shelfprep-normalize turns the raw book catalog and borrower roster
// into clean relational CSV tables plus a normalization log
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"shelfprep/internal/core/version"
	"shelfprep/internal/modkit"
	"shelfprep/internal/modkit/module"
	"shelfprep/internal/platform/config"
	perr "shelfprep/internal/platform/errors"
	"shelfprep/internal/platform/logger"

	normdom "shelfprep/internal/services/normalize/domain"
	normmod "shelfprep/internal/services/normalize/module"
)

func main() {
	// .env never overrides the real environment
	_ = godotenv.Load()
	logger.Init(logger.FromEnv())
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run returns the process exit code so deferred cleanup always happens
func run(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("shelfprep-normalize", flag.ContinueOnError)
	var o normmod.Options
	o.Bind(fs)
	showVersion := fs.Bool("version", false, "print the build version and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return perr.ExitStatus(perr.ErrorCodeInvalidArgument)
	}

	if *showVersion {
		fmt.Fprintln(stdout, version.Info("shelfprep-normalize"))
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logger.WithRun(ctx, uuid.NewString())

	// flags ride the same env keys as the config layer
	if err := normmod.ExportFlags(fs); err != nil {
		return fail(ctx, err, "invalid flags")
	}

	m, err := normmod.New(modkit.Deps{Cfg: config.New(), Log: *logger.Get()}, o)
	if err != nil {
		return fail(ctx, err, "invalid options")
	}
	module.Register(m.Name(), m.Ports())

	runner := module.MustPortsOf[normdom.RunnerPort](m)
	res, files, err := runner.Run(ctx, m.Input())
	if err != nil {
		return fail(ctx, err, "normalize failed")
	}

	logger.C(ctx).Info().
		Int("books", res.Stats.BookRows).
		Int("authors", res.Stats.UniqueAuthors).
		Int("quarantined", res.Stats.QuarantinedRows).
		Int("borrowers", res.Stats.BorrowerRows).
		Msg("normalize: done")
	for _, f := range files {
		fmt.Fprintln(stdout, f)
	}
	return 0
}

func fail(ctx context.Context, err error, msg string) int {
	logger.C(ctx).Error().Err(err).Msg(msg)
	return perr.ExitCode(err)
}
