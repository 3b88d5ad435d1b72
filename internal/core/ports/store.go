package ports

import "go.trai.ch/lineage/internal/core/domain"

// SnapshotStore defines the interface for remembering what was last emitted per version.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type SnapshotStore interface {
	// Get retrieves the record for a version label.
	// Returns nil, nil if not found.
	Get(root, label string) (*domain.SnapshotRecord, error)

	// Has reports whether snapshot content for the fingerprint is stored.
	Has(root, fingerprint string) bool

	// Put stores the snapshot content and its record.
	Put(root string, record domain.SnapshotRecord, snapshot *domain.Snapshot) error
}
