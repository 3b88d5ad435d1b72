package domain

import "time"

// SnapshotRecord describes the last snapshot emitted for a version label.
type SnapshotRecord struct {
	Label       string    `json:"label,omitempty"`
	Fingerprint string    `json:"fingerprint,omitempty"`
	Elements    int       `json:"elements,omitempty"`
	Artifact    string    `json:"artifact,omitempty"`
	Timestamp   time.Time `json:"timestamp,omitempty"`
}
