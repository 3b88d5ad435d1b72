package freeze

import (
	"slices"
	"strings"

	"go.trai.ch/lineage/internal/core/domain"
	"go.trai.ch/zerr"
)

// checker accumulates diagnostics for one freeze pass.
type checker struct {
	graph     *domain.Graph
	lifecycle *domain.Lifecycle
	registry  *domain.Registry

	// order is the pre-order walk of the graph, computed once.
	order []domain.ElementID
	// present[ordinal][id] is the containment-aware presence table.
	present [][]bool
	// unordered holds elements whose removal precedes their addition.
	unordered map[domain.ElementID]bool

	diags []error
}

func newChecker(g *domain.Graph, lc *domain.Lifecycle, reg *domain.Registry) *checker {
	return &checker{
		graph:     g,
		lifecycle: lc,
		registry:  reg,
		unordered: make(map[domain.ElementID]bool),
	}
}

func (c *checker) report(err error) {
	c.diags = append(c.diags, err)
}

// checkStructure verifies the preconditions the remaining checks rely on.
// It returns false when the pass cannot continue.
func (c *checker) checkStructure() bool {
	ok := true

	if c.lifecycle.Registry() != c.registry {
		c.report(zerr.Wrap(domain.ErrConfig, "lifecycle store was built against a different version registry"))
		ok = false
	}

	if c.graph.Root() == domain.NoElement {
		c.report(zerr.Wrap(domain.ErrGraphIntegrity, "graph has no root namespace"))
		ok = false
	}

	for id := range c.lifecycle.Elements() {
		if !c.graph.Exists(id) {
			c.report(zerr.With(zerr.Wrap(domain.ErrGraphIntegrity, "lifecycle events recorded for unknown element"), "element", uint32(id)))
			ok = false
		}
	}

	if ok {
		for id := range c.graph.Walk() {
			c.order = append(c.order, id)
		}
	}
	return ok
}

// checkTimelines validates every element's own lifecycle records.
func (c *checker) checkTimelines() {
	for _, id := range c.order {
		c.checkTimeline(id)
	}
}

func (c *checker) checkTimeline(id domain.ElementID) {
	path := c.graph.Path(id)

	var added, removed domain.Version
	var hasAdded, hasRemoved bool
	var renames []rename

	for _, ev := range c.lifecycle.Events(id) {
		v, err := c.registry.Resolve(ev.Version)
		if err != nil {
			err = zerr.With(err, "element", path)
			c.report(zerr.With(err, "event", ev.Kind.String()))
			continue
		}

		switch ev.Kind {
		case domain.EventAdded:
			if hasAdded {
				c.report(duplicateEvent(path, ev, added))
				continue
			}
			added, hasAdded = v, true
		case domain.EventRemoved:
			if hasRemoved {
				c.report(duplicateEvent(path, ev, removed))
				continue
			}
			removed, hasRemoved = v, true
		case domain.EventRenamed:
			renames = append(renames, rename{version: v, name: ev.Name})
		}
	}

	c.checkRenames(path, c.graph.Name(id), renames)

	if hasAdded && hasRemoved && c.registry.Compare(removed, added) <= 0 {
		c.unordered[id] = true
		err := zerr.With(zerr.Wrap(domain.ErrUnorderedRemoval, "removal must be strictly later than addition"), "element", path)
		err = zerr.With(err, "added", added.Label())
		c.report(zerr.With(err, "removed", removed.Label()))
	}
}

type rename struct {
	version domain.Version
	name    string
}

// checkRenames walks renames in version order. Insertion order only breaks
// ties, and a tie is itself reported.
func (c *checker) checkRenames(path string, declared domain.InternedString, renames []rename) {
	slices.SortStableFunc(renames, func(a, b rename) int {
		return c.registry.Compare(a.version, b.version)
	})

	current := declared.String()
	prev := -1
	for _, r := range renames {
		if r.version.Ordinal() == prev {
			err := zerr.With(zerr.Wrap(domain.ErrRedundantRename, "element is renamed twice in one version"), "element", path)
			err = zerr.With(err, "version", r.version.Label())
			c.report(zerr.With(err, "name", r.name))
			continue
		}
		prev = r.version.Ordinal()
		if r.name == current {
			err := zerr.With(zerr.Wrap(domain.ErrRedundantRename, "rename does not change the name in effect"), "element", path)
			err = zerr.With(err, "version", r.version.Label())
			c.report(zerr.With(err, "name", r.name))
			continue
		}
		current = r.name
	}
}

func duplicateEvent(path string, ev domain.Event, first domain.Version) error {
	err := zerr.With(zerr.Wrap(domain.ErrDuplicateLifecycleEvent, "element may carry only one "+ev.Kind.String()+" record"), "element", path)
	err = zerr.With(err, "first", first.Label())
	return zerr.With(err, "version", ev.Version)
}

// computePresence fills the presence table for every declared version.
// Pre-order guarantees a parent's row is set before its children are visited.
func (c *checker) computePresence() {
	n := c.graph.Len() + 1
	c.present = make([][]bool, c.registry.Len())
	for v := range c.registry.Versions() {
		row := make([]bool, n)
		for _, id := range c.order {
			parent := c.graph.Parent(id)
			row[id] = c.lifecycle.IsPresent(id, v) && (parent == domain.NoElement || row[parent])
		}
		c.present[v.Ordinal()] = row
	}
}

// checkOrphans reports elements whose own Added/Removed bounds place them
// in a version where their parent is absent. Elements without such bounds
// inherit their parent's presence and are never orphaned.
func (c *checker) checkOrphans() {
	for _, id := range c.order {
		parent := c.graph.Parent(id)
		if parent == domain.NoElement || c.unordered[id] {
			continue
		}

		w := c.lifecycle.Window(id)
		if w.HasAdded && !c.present[w.Added.Ordinal()][parent] {
			c.report(c.orphan(id, parent, w.Added))
			continue
		}
		if w.HasRemoved {
			last, ok := c.registry.At(w.Removed.Ordinal() - 1)
			if ok && w.Contains(last) && !c.present[last.Ordinal()][parent] {
				c.report(c.orphan(id, parent, last))
			}
		}
	}
}

func (c *checker) orphan(id, parent domain.ElementID, v domain.Version) error {
	err := zerr.With(zerr.Wrap(domain.ErrOrphanedElement, "element is present while its parent is absent"), "element", c.graph.Path(id))
	err = zerr.With(err, "parent", c.graph.Path(parent))
	return zerr.With(err, "version", v.Label())
}

// checkVersions runs the closure and naming checks for every declared version.
func (c *checker) checkVersions() {
	for v := range c.registry.Versions() {
		row := c.present[v.Ordinal()]
		for _, id := range c.order {
			if !row[id] {
				continue
			}
			c.checkReferences(id, v, row)
			c.checkSiblingNames(id, v, row)
		}
	}
}

func (c *checker) checkReferences(id domain.ElementID, v domain.Version, row []bool) {
	for target := range c.graph.References(id) {
		if row[target] {
			continue
		}
		err := zerr.With(zerr.Wrap(domain.ErrDanglingReference, "reference target is absent"), "element", c.graph.Path(id))
		err = zerr.With(err, "reference", c.graph.Path(target))
		c.report(zerr.With(err, "version", v.Label()))
	}
}

func (c *checker) checkSiblingNames(parent domain.ElementID, v domain.Version, row []bool) {
	var names []domain.InternedString
	groups := make(map[domain.InternedString][]domain.ElementID)

	for child := range c.graph.Children(parent) {
		if !row[child] {
			continue
		}
		name := c.lifecycle.EffectiveName(child, c.graph.Name(child), v)
		if _, seen := groups[name]; !seen {
			names = append(names, name)
		}
		groups[name] = append(groups[name], child)
	}

	for _, name := range names {
		ids := groups[name]
		if len(ids) < 2 {
			continue
		}
		paths := make([]string, len(ids))
		for i, id := range ids {
			paths[i] = c.graph.Path(id)
		}
		err := zerr.With(zerr.Wrap(domain.ErrNameCollision, "siblings share an effective name"), "parent", c.graph.Path(parent))
		err = zerr.With(err, "name", name.String())
		err = zerr.With(err, "elements", strings.Join(paths, ", "))
		c.report(zerr.With(err, "version", v.Label()))
	}
}
