package freeze

import (
	"go.trai.ch/lineage/internal/core/domain"
	"go.trai.ch/zerr"
)

// Bundle is a validated, sealed schema. It is read-only and safe for
// concurrent use by any number of projections.
type Bundle struct {
	registry  *domain.Registry
	graph     *domain.Graph
	lifecycle *domain.Lifecycle
}

// Registry returns the version registry.
func (b *Bundle) Registry() *domain.Registry {
	return b.registry
}

// Graph returns the sealed schema graph.
func (b *Bundle) Graph() *domain.Graph {
	return b.graph
}

// Lifecycle returns the sealed lifecycle store.
func (b *Bundle) Lifecycle() *domain.Lifecycle {
	return b.lifecycle
}

// Versions returns the declared version labels in declaration order.
func (b *Bundle) Versions() []string {
	return b.registry.Labels()
}

// Resolve looks up a version label.
func (b *Bundle) Resolve(label string) (domain.Version, error) {
	return b.registry.Resolve(label)
}

// IsPresent reports whether the element's own lifecycle window includes the version.
func (b *Bundle) IsPresent(id domain.ElementID, label string) (bool, error) {
	v, err := b.element(id, label)
	if err != nil {
		return false, err
	}
	return b.lifecycle.IsPresent(id, v), nil
}

// Includes reports whether the element and all of its ancestors are present at the version.
func (b *Bundle) Includes(id domain.ElementID, label string) (bool, error) {
	v, err := b.element(id, label)
	if err != nil {
		return false, err
	}
	for cur := id; cur != domain.NoElement; cur = b.graph.Parent(cur) {
		if !b.lifecycle.IsPresent(cur, v) {
			return false, nil
		}
	}
	return true, nil
}

// EffectiveName returns the element's name at the version.
func (b *Bundle) EffectiveName(id domain.ElementID, label string) (string, error) {
	v, err := b.element(id, label)
	if err != nil {
		return "", err
	}
	return b.lifecycle.EffectiveName(id, b.graph.Name(id), v).String(), nil
}

func (b *Bundle) element(id domain.ElementID, label string) (domain.Version, error) {
	v, err := b.registry.Resolve(label)
	if err != nil {
		return domain.Version{}, err
	}
	if !b.graph.Exists(id) {
		return domain.Version{}, zerr.With(zerr.Wrap(domain.ErrGraphIntegrity, "element does not exist"), "element", uint32(id))
	}
	return v, nil
}
