package domain

import "context"

// LoaderPort loads the normalized tables from a directory into the database
type LoaderPort interface {
	Load(ctx context.Context, in Input) (Run, error)
}

// RunsPort lists recorded loads, newest first
type RunsPort interface {
	Runs(ctx context.Context, limit int) ([]Run, error)
}
