package domain

import "context"

// RunnerPort runs the whole pipeline: read, normalize, write
type RunnerPort interface {
	Run(ctx context.Context, in Input) (*Result, Files, error)
}

// NormalizerPort computes a Result without touching the output directory
type NormalizerPort interface {
	Normalize(ctx context.Context, in Input) (*Result, error)
}

// ReportPort persists a Result under dir
type ReportPort interface {
	Write(ctx context.Context, dir string, res *Result) (Files, error)
}
