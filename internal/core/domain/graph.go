// Package domain contains the core domain models for version-scoped schema projection.
package domain

import (
	"iter"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// ElementID is the stable identity of an element inside a Graph.
type ElementID uint32

// NoElement is the zero ElementID. It is the parent of the root namespace.
const NoElement ElementID = 0

type element struct {
	kind       Kind
	name       InternedString
	parent     ElementID
	children   []ElementID
	references []ElementID
}

// Graph is the schema element tree plus a separate reference-edge set.
// Elements live in a flat arena addressed by ElementID, so reference
// cycles never require cyclic ownership.
type Graph struct {
	elements []element
	root     ElementID
	sealed   bool
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{}
}

// AddElement adds an element under parent and returns its id.
// Pass NoElement as parent to create the root namespace.
func (g *Graph) AddElement(parent ElementID, kind Kind, name string) (ElementID, error) {
	if g.sealed {
		return NoElement, ErrGraphSealed
	}
	if !kind.Valid() {
		return NoElement, zerr.With(zerr.Wrap(ErrGraphIntegrity, "invalid element kind"), "name", name)
	}
	if strings.TrimSpace(name) == "" {
		return NoElement, zerr.With(zerr.Wrap(ErrGraphIntegrity, "element name is blank"), "kind", kind.String())
	}

	if parent == NoElement {
		if g.root != NoElement {
			err := zerr.With(zerr.Wrap(ErrGraphIntegrity, "graph already has a root"), "root", g.Path(g.root))
			return NoElement, zerr.With(err, "name", name)
		}
		if kind != KindNamespace {
			return NoElement, zerr.With(zerr.Wrap(ErrGraphIntegrity, "root must be a namespace"), "kind", kind.String())
		}
	} else {
		p, ok := g.lookup(parent)
		if !ok {
			err := zerr.With(zerr.Wrap(ErrGraphIntegrity, "parent does not exist"), "parent", uint32(parent))
			return NoElement, zerr.With(err, "name", name)
		}
		if !p.kind.CanContain(kind) {
			err := zerr.With(zerr.Wrap(ErrGraphIntegrity, "parent kind cannot contain element kind"), "parent", g.Path(parent))
			err = zerr.With(err, "parent_kind", p.kind.String())
			return NoElement, zerr.With(err, "kind", kind.String())
		}
	}

	g.elements = append(g.elements, element{
		kind:   kind,
		name:   NewInternedString(name),
		parent: parent,
	})
	id := ElementID(len(g.elements))

	if parent == NoElement {
		g.root = id
	} else {
		p := &g.elements[parent-1]
		p.children = append(p.children, id)
	}

	return id, nil
}

// AddReference records a reference edge from one element to another.
// Self and mutual references are legal; duplicate edges are ignored.
func (g *Graph) AddReference(from, to ElementID) error {
	if g.sealed {
		return ErrGraphSealed
	}
	if _, ok := g.lookup(from); !ok {
		return zerr.With(zerr.Wrap(ErrGraphIntegrity, "reference source does not exist"), "from", uint32(from))
	}
	if _, ok := g.lookup(to); !ok {
		err := zerr.With(zerr.Wrap(ErrGraphIntegrity, "reference target does not exist"), "from", g.Path(from))
		return zerr.With(err, "to", uint32(to))
	}

	e := &g.elements[from-1]
	if !slices.Contains(e.references, to) {
		e.references = append(e.references, to)
	}
	return nil
}

// Move re-parents an element, appending it to the new parent's children.
// It fails if the move would put the element inside its own subtree.
func (g *Graph) Move(id, newParent ElementID) error {
	if g.sealed {
		return ErrGraphSealed
	}
	e, ok := g.lookup(id)
	if !ok {
		return zerr.With(zerr.Wrap(ErrGraphIntegrity, "element does not exist"), "element", uint32(id))
	}
	if id == g.root {
		return zerr.With(zerr.Wrap(ErrGraphIntegrity, "the root cannot be moved"), "element", g.Path(id))
	}
	p, ok := g.lookup(newParent)
	if !ok {
		err := zerr.With(zerr.Wrap(ErrGraphIntegrity, "parent does not exist"), "parent", uint32(newParent))
		return zerr.With(err, "element", g.Path(id))
	}
	if !p.kind.CanContain(e.kind) {
		err := zerr.With(zerr.Wrap(ErrGraphIntegrity, "parent kind cannot contain element kind"), "parent", g.Path(newParent))
		err = zerr.With(err, "parent_kind", p.kind.String())
		return zerr.With(err, "kind", e.kind.String())
	}

	// Walk up from the new parent; meeting id means the move closes a cycle.
	var path []ElementID
	for cur := newParent; cur != NoElement; cur = g.elements[cur-1].parent {
		path = append(path, cur)
		if cur == id {
			return g.buildCycleError(path)
		}
	}

	old := &g.elements[e.parent-1]
	old.children = slices.DeleteFunc(old.children, func(c ElementID) bool { return c == id })

	g.elements[id-1].parent = newParent
	np := &g.elements[newParent-1]
	np.children = append(np.children, id)
	return nil
}

// buildCycleError constructs an error with cycle path metadata.
// path runs from the requested parent up to and including the moved element.
func (g *Graph) buildCycleError(path []ElementID) error {
	names := make([]string, 0, len(path)+1)
	moved := path[len(path)-1]
	names = append(names, g.elements[moved-1].name.String())
	for i := 0; i < len(path); i++ {
		names = append(names, g.elements[path[i]-1].name.String())
	}
	return zerr.With(zerr.Wrap(ErrGraphIntegrity, "containment cycle detected"), "cycle", strings.Join(names, " -> "))
}

// Seal makes the graph read-only. Subsequent mutations fail with ErrGraphSealed.
func (g *Graph) Seal() {
	g.sealed = true
}

// Sealed reports whether the graph has been sealed.
func (g *Graph) Sealed() bool {
	return g.sealed
}

// Root returns the root namespace, or NoElement for an empty graph.
func (g *Graph) Root() ElementID {
	return g.root
}

// Len returns the number of elements.
func (g *Graph) Len() int {
	return len(g.elements)
}

// Exists reports whether id names an element of this graph.
func (g *Graph) Exists(id ElementID) bool {
	_, ok := g.lookup(id)
	return ok
}

// Kind returns the kind of an element.
func (g *Graph) Kind(id ElementID) Kind {
	if e, ok := g.lookup(id); ok {
		return e.kind
	}
	return KindUnknown
}

// Name returns the declared name of an element.
func (g *Graph) Name(id ElementID) InternedString {
	if e, ok := g.lookup(id); ok {
		return e.name
	}
	return InternedString{}
}

// Parent returns the owning element, or NoElement for the root.
func (g *Graph) Parent(id ElementID) ElementID {
	if e, ok := g.lookup(id); ok {
		return e.parent
	}
	return NoElement
}

// Children yields the children of an element in declaration order.
func (g *Graph) Children(id ElementID) iter.Seq[ElementID] {
	return g.seq(id, func(e *element) []ElementID { return e.children })
}

// References yields the outgoing reference targets of an element in insertion order.
func (g *Graph) References(id ElementID) iter.Seq[ElementID] {
	return g.seq(id, func(e *element) []ElementID { return e.references })
}

func (g *Graph) seq(id ElementID, pick func(*element) []ElementID) iter.Seq[ElementID] {
	return func(yield func(ElementID) bool) {
		e, ok := g.lookup(id)
		if !ok {
			return
		}
		for _, c := range pick(e) {
			if !yield(c) {
				return
			}
		}
	}
}

// Walk yields every element reachable from the root in pre-order,
// children in declaration order.
func (g *Graph) Walk() iter.Seq[ElementID] {
	return func(yield func(ElementID) bool) {
		if g.root == NoElement {
			return
		}
		stack := []ElementID{g.root}
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(id) {
				return
			}
			children := g.elements[id-1].children
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, children[i])
			}
		}
	}
}

// Path returns the dotted declared-name path from the root to id.
func (g *Graph) Path(id ElementID) string {
	var parts []string
	for cur := id; cur != NoElement; {
		e, ok := g.lookup(cur)
		if !ok {
			break
		}
		parts = append(parts, e.name.String())
		cur = e.parent
	}
	slices.Reverse(parts)
	return strings.Join(parts, ".")
}

func (g *Graph) lookup(id ElementID) (*element, bool) {
	if id == NoElement || int(id) > len(g.elements) {
		return nil, false
	}
	return &g.elements[id-1], true
}
