// Package projector builds version-scoped snapshots from a frozen bundle.
package projector

import (
	"go.trai.ch/lineage/internal/core/domain"
	"go.trai.ch/lineage/internal/engine/freeze"
	"go.trai.ch/zerr"
)

// Project returns the snapshot of the bundle at the version label.
// An unregistered label fails with domain.ErrUnknownVersion.
func Project(b *freeze.Bundle, label string) (*domain.Snapshot, error) {
	v, err := b.Resolve(label)
	if err != nil {
		return nil, err
	}
	return ProjectVersion(b, v), nil
}

// ProjectVersion returns the snapshot of the bundle at v.
// It never mutates the bundle and builds a fresh tree on every call.
// It panics with an error wrapping domain.ErrInvariantViolation if the
// bundle contradicts the closure guarantees of freeze.
func ProjectVersion(b *freeze.Bundle, v domain.Version) *domain.Snapshot {
	g := b.Graph()
	lc := b.Lifecycle()
	builder := domain.NewSnapshotBuilder(v)

	root := g.Root()
	if root == domain.NoElement || !lc.IsPresent(root, v) {
		return builder.Build()
	}

	var included []domain.ElementID
	stack := []domain.ElementID{root}
	var children []domain.ElementID

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		name := lc.EffectiveName(id, g.Name(id), v)
		must(builder.Add(id, g.Kind(id), name, g.Parent(id)))
		included = append(included, id)

		// A child is only visited once its parent is included.
		children = children[:0]
		for child := range g.Children(id) {
			if lc.IsPresent(child, v) {
				children = append(children, child)
			}
		}
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}

	for _, id := range included {
		for target := range g.References(id) {
			if !builder.Included(target) {
				err := zerr.With(zerr.Wrap(domain.ErrInvariantViolation, "projection reached an excluded reference target"), "element", g.Path(id))
				err = zerr.With(err, "reference", g.Path(target))
				panic(zerr.With(err, "version", v.Label()))
			}
			must(builder.AddReference(id, target))
		}
	}

	return builder.Build()
}

func must(err error) {
	if err != nil {
		panic(zerr.WithStack(err))
	}
}
