// Package freeze implements the one-time consistency pass that turns a
// mutable schema graph, lifecycle store and version registry into an
// immutable, checked Bundle.
package freeze

import (
	"go.trai.ch/lineage/internal/core/domain"
	"go.trai.ch/zerr"
)

// Freeze validates the input triple and, when no problem is found, seals
// it into a Bundle. Every problem is collected; on failure the returned
// error is a *domain.DiagnosticsError and no bundle is produced.
func Freeze(g *domain.Graph, lc *domain.Lifecycle, reg *domain.Registry) (*Bundle, error) {
	if reg == nil {
		return nil, zerr.Wrap(domain.ErrConfig, "no version registry")
	}
	if g == nil || lc == nil {
		return nil, zerr.Wrap(domain.ErrGraphIntegrity, "graph and lifecycle store are required")
	}
	if g.Sealed() {
		return nil, domain.ErrGraphSealed
	}

	c := newChecker(g, lc, reg)
	if c.checkStructure() {
		c.checkTimelines()
		c.computePresence()
		c.checkOrphans()
		c.checkVersions()
	}

	if len(c.diags) > 0 {
		return nil, &domain.DiagnosticsError{Diagnostics: c.diags}
	}

	g.Seal()
	lc.Seal()

	return &Bundle{
		registry:  reg,
		graph:     g,
		lifecycle: lc,
	}, nil
}

// FreezeSchema is Freeze over a front-end's Schema.
func FreezeSchema(s *domain.Schema) (*Bundle, error) {
	if s == nil {
		return nil, zerr.Wrap(domain.ErrGraphIntegrity, "no schema")
	}
	return Freeze(s.Graph, s.Lifecycle, s.Registry)
}
