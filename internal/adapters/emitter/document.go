// Package emitter renders projected snapshots as JSON or YAML artifacts.
package emitter

import (
	"os"
	"path/filepath"

	"go.trai.ch/lineage/internal/core/domain"
	"go.trai.ch/zerr"
)

// Document is the serialised form of one snapshot.
type Document struct {
	Version     string `json:"version" yaml:"version"`
	Fingerprint string `json:"fingerprint" yaml:"fingerprint"`
	Elements    int    `json:"elements" yaml:"elements"`
	Root        *Node  `json:"root" yaml:"root"`
}

// Node is one element of a Document.
type Node struct {
	ID         uint32      `json:"id" yaml:"id"`
	Kind       string      `json:"kind" yaml:"kind"`
	Name       string      `json:"name" yaml:"name"`
	References []Reference `json:"references,omitempty" yaml:"references,omitempty"`
	Members    []*Node     `json:"members,omitempty" yaml:"members,omitempty"`
}

// Reference is a resolved reference edge, named by the target's effective path.
type Reference struct {
	ID   uint32 `json:"id" yaml:"id"`
	Path string `json:"path" yaml:"path"`
}

// NewDocument builds the serialisable view of a snapshot.
func NewDocument(s *domain.Snapshot) *Document {
	doc := &Document{
		Version:     s.Version().Label(),
		Fingerprint: s.Fingerprint(),
		Elements:    s.Len(),
	}
	if s.Root() != domain.NoElement {
		doc.Root = newNode(s, s.Root())
	}
	return doc
}

func newNode(s *domain.Snapshot, id domain.ElementID) *Node {
	n, _ := s.Node(id)
	node := &Node{
		ID:   uint32(n.ID),
		Kind: n.Kind.String(),
		Name: n.Name.String(),
	}
	for _, ref := range n.References {
		node.References = append(node.References, Reference{ID: uint32(ref), Path: s.Path(ref)})
	}
	for _, child := range n.Children {
		node.Members = append(node.Members, newNode(s, child))
	}
	return node
}

// writeArtifact writes data to dir/snapshot.<label>.<ext> and returns the path.
func writeArtifact(dir string, s *domain.Snapshot, ext string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrEmitFailed.Error()), "dir", dir)
	}

	path := filepath.Join(dir, domain.SnapshotFileName(s.Version().Label(), ext))
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrEmitFailed.Error()), "path", path)
	}
	return path, nil
}
