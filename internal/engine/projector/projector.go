package projector

import (
	"context"
	"runtime"
	"slices"

	"go.trai.ch/lineage/internal/core/domain"
	"go.trai.ch/lineage/internal/core/ports"
	"go.trai.ch/lineage/internal/engine/freeze"
	"golang.org/x/sync/errgroup"
)

// Projector projects many versions of a bundle concurrently.
type Projector struct {
	tracer  ports.Tracer
	workers int
}

// New creates a Projector that traces each projection with tracer.
func New(tracer ports.Tracer) *Projector {
	return &Projector{
		tracer:  tracer,
		workers: runtime.NumCPU(),
	}
}

// WithWorkers returns a copy bounded to n concurrent projections.
// Values below one keep the current bound.
func (p *Projector) WithWorkers(n int) *Projector {
	cp := *p
	if n > 0 {
		cp.workers = n
	}
	return &cp
}

// Workers returns the concurrency bound.
func (p *Projector) Workers() int {
	return p.workers
}

// ProjectAll projects the requested labels, or every declared version when
// labels is empty. Snapshots are returned in declaration order, one per
// distinct version. Unknown labels fail before any projection starts.
func (p *Projector) ProjectAll(ctx context.Context, b *freeze.Bundle, labels []string) ([]*domain.Snapshot, error) {
	versions, err := resolve(b, labels)
	if err != nil {
		return nil, err
	}

	plan := make([]string, len(versions))
	for i, v := range versions {
		plan[i] = v.Label()
	}

	ctx, span := p.tracer.Start(ctx, "project", ports.WithAttribute("versions", plan))
	defer span.End()
	p.tracer.EmitPlan(ctx, plan)

	out := make([]*domain.Snapshot, len(versions))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, v := range versions {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, vspan := p.tracer.Start(ctx, "project.version", ports.WithAttribute("version", v.Label()))
			defer vspan.End()

			snap := ProjectVersion(b, v)
			vspan.SetAttribute("elements", snap.Len())
			vspan.SetAttribute("fingerprint", snap.Fingerprint())
			out[i] = snap
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return out, nil
}

func resolve(b *freeze.Bundle, labels []string) ([]domain.Version, error) {
	if len(labels) == 0 {
		return slices.Collect(b.Registry().Versions()), nil
	}

	versions := make([]domain.Version, 0, len(labels))
	for _, label := range labels {
		v, err := b.Resolve(label)
		if err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}

	slices.SortFunc(versions, b.Registry().Compare)
	return slices.Compact(versions), nil
}
