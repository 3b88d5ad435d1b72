// Package cas implements the content-addressed snapshot store.
//
// Snapshot contents live under .lineage/store/<fingerprint>.json, so
// versions with identical structure share one entry. index.json maps each
// version label to the record of its last emission.
package cas

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
	"go.trai.ch/lineage/internal/core/domain"
	"go.trai.ch/lineage/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SnapshotStore = (*Store)(nil)

// Store implements ports.SnapshotStore on the local filesystem.
type Store struct {
	mu sync.Mutex
}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// entry is the stored form of one snapshot node.
type entry struct {
	ID         uint32   `json:"id"`
	Parent     uint32   `json:"parent,omitempty"`
	Kind       string   `json:"kind"`
	Name       string   `json:"name"`
	References []uint32 `json:"references,omitempty"`
}

type index map[string]domain.SnapshotRecord

// Get retrieves the record for a version label. Returns nil, nil if not found.
func (s *Store) Get(root, label string) (*domain.SnapshotRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.readIndex(root)
	if err != nil {
		return nil, err
	}

	rec, ok := idx[label]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// Put stores the snapshot content under its fingerprint and records it for the label.
func (s *Store) Put(root string, record domain.SnapshotRecord, snapshot *domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record.Fingerprint == "" {
		record.Fingerprint = snapshot.Fingerprint()
	}

	dir := domain.DefaultStorePath(root)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	content := filepath.Join(dir, record.Fingerprint+".json")
	if _, err := os.Stat(content); errors.Is(err, fs.ErrNotExist) {
		if err := writeJSON(content, encode(snapshot)); err != nil {
			return err
		}
	}

	idx, err := s.readIndex(root)
	if err != nil {
		return err
	}
	idx[record.Label] = record

	return writeJSON(filepath.Join(dir, domain.StoreIndexFile), idx)
}

// Has reports whether content for the fingerprint is stored.
func (s *Store) Has(root, fingerprint string) bool {
	_, err := os.Stat(filepath.Join(domain.DefaultStorePath(root), fingerprint+".json"))
	return err == nil
}

func (s *Store) readIndex(root string) (index, error) {
	path := filepath.Join(domain.DefaultStorePath(root), domain.StoreIndexFile)
	//nolint:gosec // Path is constructed from the project root and a fixed file name
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return make(index), nil
		}
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	idx := make(index)
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error())
	}
	return idx, nil
}

func encode(s *domain.Snapshot) []entry {
	entries := make([]entry, 0, s.Len())
	for n := range s.Walk() {
		e := entry{
			ID:     uint32(n.ID),
			Parent: uint32(n.Parent),
			Kind:   n.Kind.String(),
			Name:   n.Name.String(),
		}
		for _, r := range n.References {
			e.References = append(e.References, uint32(r))
		}
		entries = append(entries, e)
	}
	return entries
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, domain.PrivateFilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	if err := os.Rename(tmp, path); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	return nil
}
