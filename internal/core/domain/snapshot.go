package domain

import (
	"encoding/binary"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// SnapshotNode is one element of a projected snapshot.
type SnapshotNode struct {
	ID         ElementID
	Kind       Kind
	Name       InternedString
	Parent     ElementID
	Children   []ElementID
	References []ElementID
}

func (n *SnapshotNode) clone() SnapshotNode {
	c := *n
	c.Children = slices.Clone(n.Children)
	c.References = slices.Clone(n.References)
	return c
}

// Snapshot is the immutable, name-resolved subtree of a graph valid at one version.
type Snapshot struct {
	version Version
	root    ElementID
	order   []ElementID
	nodes   map[ElementID]*SnapshotNode
}

// Version returns the version the snapshot was projected for.
func (s *Snapshot) Version() Version {
	return s.version
}

// Root returns the root element, or NoElement if the root is absent in this version.
func (s *Snapshot) Root() ElementID {
	return s.root
}

// Len returns the number of included elements.
func (s *Snapshot) Len() int {
	return len(s.order)
}

// Contains reports whether id is included.
func (s *Snapshot) Contains(id ElementID) bool {
	_, ok := s.nodes[id]
	return ok
}

// Node returns a copy of an included node.
func (s *Snapshot) Node(id ElementID) (SnapshotNode, bool) {
	n, ok := s.nodes[id]
	if !ok {
		return SnapshotNode{}, false
	}
	return n.clone(), true
}

// Children yields the included children of id in declaration order.
func (s *Snapshot) Children(id ElementID) iter.Seq[ElementID] {
	return func(yield func(ElementID) bool) {
		n, ok := s.nodes[id]
		if !ok {
			return
		}
		for _, c := range n.Children {
			if !yield(c) {
				return
			}
		}
	}
}

// References yields the resolved reference targets of id.
func (s *Snapshot) References(id ElementID) iter.Seq[ElementID] {
	return func(yield func(ElementID) bool) {
		n, ok := s.nodes[id]
		if !ok {
			return
		}
		for _, r := range n.References {
			if !yield(r) {
				return
			}
		}
	}
}

// Walk yields copies of every node in pre-order.
func (s *Snapshot) Walk() iter.Seq[SnapshotNode] {
	return func(yield func(SnapshotNode) bool) {
		for _, id := range s.order {
			if !yield(s.nodes[id].clone()) {
				return
			}
		}
	}
}

// Path returns the dotted effective-name path from the root to id.
func (s *Snapshot) Path(id ElementID) string {
	var parts []string
	for cur := id; cur != NoElement; {
		n, ok := s.nodes[cur]
		if !ok {
			break
		}
		parts = append(parts, n.Name.String())
		cur = n.Parent
	}
	slices.Reverse(parts)
	return strings.Join(parts, ".")
}

// Fingerprint returns a hash of the snapshot's structure and names.
// Snapshots that are structurally identical share a fingerprint,
// regardless of the version they were projected for.
func (s *Snapshot) Fingerprint() string {
	hasher := xxhash.New()
	var buf [4]byte

	writeID := func(id ElementID) {
		binary.LittleEndian.PutUint32(buf[:], uint32(id))
		_, _ = hasher.Write(buf[:])
	}

	for _, id := range s.order {
		n := s.nodes[id]
		writeID(n.ID)
		writeID(n.Parent)
		_, _ = hasher.Write([]byte{byte(n.Kind)})
		_, _ = hasher.WriteString(n.Name.String())
		_, _ = hasher.Write([]byte{0}) // Separator
		for _, r := range n.References {
			writeID(r)
		}
		_, _ = hasher.Write([]byte{0xff}) // Node separator
	}

	return fmt.Sprintf("%016x", hasher.Sum64())
}

// SnapshotBuilder assembles a Snapshot in pre-order.
// A builder is owned by a single projection and is not safe for concurrent use.
type SnapshotBuilder struct {
	s *Snapshot
}

// NewSnapshotBuilder starts a snapshot for version v.
func NewSnapshotBuilder(v Version) *SnapshotBuilder {
	return &SnapshotBuilder{
		s: &Snapshot{
			version: v,
			nodes:   make(map[ElementID]*SnapshotNode),
		},
	}
}

// Add includes an element. Parents must be added before their children.
func (b *SnapshotBuilder) Add(id ElementID, kind Kind, name InternedString, parent ElementID) error {
	if _, exists := b.s.nodes[id]; exists {
		return zerr.With(zerr.Wrap(ErrInvariantViolation, "element included twice"), "element", uint32(id))
	}

	if parent == NoElement {
		if b.s.root != NoElement {
			return zerr.With(zerr.Wrap(ErrInvariantViolation, "snapshot already has a root"), "element", uint32(id))
		}
		b.s.root = id
	} else {
		p, ok := b.s.nodes[parent]
		if !ok {
			err := zerr.With(zerr.Wrap(ErrInvariantViolation, "parent not included"), "element", uint32(id))
			return zerr.With(err, "parent", uint32(parent))
		}
		p.Children = append(p.Children, id)
	}

	b.s.nodes[id] = &SnapshotNode{ID: id, Kind: kind, Name: name, Parent: parent}
	b.s.order = append(b.s.order, id)
	return nil
}

// Included reports whether id has been added.
func (b *SnapshotBuilder) Included(id ElementID) bool {
	_, ok := b.s.nodes[id]
	return ok
}

// AddReference records a resolved reference. Both ends must already be included.
func (b *SnapshotBuilder) AddReference(from, to ElementID) error {
	n, ok := b.s.nodes[from]
	if !ok {
		return zerr.With(zerr.Wrap(ErrInvariantViolation, "reference source not included"), "from", uint32(from))
	}
	if _, ok := b.s.nodes[to]; !ok {
		err := zerr.With(zerr.Wrap(ErrInvariantViolation, "reference target not included"), "from", b.s.Path(from))
		return zerr.With(err, "to", uint32(to))
	}
	n.References = append(n.References, to)
	return nil
}

// Build returns the finished snapshot. The builder must not be used afterwards.
func (b *SnapshotBuilder) Build() *Snapshot {
	s := b.s
	b.s = nil
	return s
}
