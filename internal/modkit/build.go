package modkit

import "shelfprep/internal/modkit/repokit"

// Built is a plain struct with the fields modules care about
type Built struct {
	Name  string
	Ports any
	// BeginHooks run first inside every transaction the module opens
	BeginHooks []repokit.BeginHook
}

// Build applies Option funcs to an internal buildCfg and returns a plain struct
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	return Built{
		Name:       c.name,
		Ports:      c.ports,
		BeginHooks: append([]repokit.BeginHook(nil), c.hooks...),
	}
}

// Tx wraps tx with the built begin hooks, or returns tx untouched when there are none
func (b Built) Tx(tx repokit.TxRunner) repokit.TxRunner {
	if tx == nil || len(b.BeginHooks) == 0 {
		return tx
	}
	return repokit.WithBeginHooks(tx, b.BeginHooks...)
}
