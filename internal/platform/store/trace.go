package store

import (
	"context"
	"time"

	"shelfprep/internal/platform/logger"

	"github.com/rs/zerolog"
)

// QueryEvent describes one statement sent to the backend
type QueryEvent struct {
	Driver    Dialect
	SQL       string
	Args      any
	ElapsedUS int64
	Err       error
	Slow      bool
}

// QueryTracer receives an event per statement
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// Tracer returns a tracer that ALWAYS prints SQL when LogSQL=true,
// independent of the process-wide root level
func Tracer(root logger.Logger) QueryTracer {
	ll := root.Level(zerolog.DebugLevel).With().Str("component", "store").Logger()
	return &zlTracer{log: ll}
}

type zlTracer struct{ log logger.Logger }

func (z *zlTracer) OnQuery(_ context.Context, ev QueryEvent) {
	elapsedMs := float64(ev.ElapsedUS) / 1000.0
	evt := z.log.Debug()
	if ev.Slow {
		evt = z.log.Warn()
	}

	evt.Str("driver", string(ev.Driver)).
		Float64("elapsed_ms", elapsedMs).
		Bool("slow", ev.Slow).
		Str("sql", compact(ev.SQL)).
		Interface("args", ev.Args).
		Err(ev.Err).
		Msg("sql query")
}

// emitter is embedded by the adapters so every statement path traces the same way
type emitter struct {
	driver Dialect
	tracer QueryTracer
	slowUS int64
}

func (e emitter) emit(ctx context.Context, sql string, args []any, start time.Time, err error) {
	if e.tracer == nil {
		return
	}
	elapsedUS := time.Since(start).Microseconds()
	e.tracer.OnQuery(ctx, QueryEvent{
		Driver:    e.driver,
		SQL:       sql,
		Args:      args,
		ElapsedUS: elapsedUS,
		Err:       err,
		Slow:      e.slowUS > 0 && elapsedUS >= e.slowUS,
	})
}

func compact(s string) string {
	out := make([]rune, 0, len(s))
	space := false
	for _, r := range s {
		if r == '\n' || r == '\t' || r == '\r' || r == ' ' {
			if !space {
				out = append(out, ' ')
				space = true
			}
			continue
		}
		space = false
		out = append(out, r)
	}
	return string(out)
}
