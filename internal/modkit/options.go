package modkit

import "shelfprep/internal/modkit/repokit"

// Option mutates build configuration for a module
type Option func(*buildCfg)

// buildCfg is internal wiring state for options
type buildCfg struct {
	name  string
	ports any
	hooks []repokit.BeginHook
}

// WithName sets a module name used in logs and registry
func WithName(name string) Option {
	return func(c *buildCfg) { c.name = name }
}

// WithPorts injects cross module ports declared by another module
// the concrete type is owned by the importing module
func WithPorts[T any](p T) Option {
	return func(c *buildCfg) { c.ports = p }
}

// WithBeginHooks appends hooks run at the start of each module transaction
func WithBeginHooks(hooks ...repokit.BeginHook) Option {
	return func(c *buildCfg) { c.hooks = append(c.hooks, hooks...) }
}
