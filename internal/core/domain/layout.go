package domain

import "path/filepath"

const (
	// StateDirName is the name of the internal state directory.
	StateDirName = ".lineage"

	// StoreDirName is the name of the snapshot store directory.
	StoreDirName = "store"

	// StoreIndexFile is the name of the label to fingerprint index inside the store.
	StoreIndexFile = "index.json"

	// SchemaFileName is the name of the schema document.
	SchemaFileName = "lineage.yaml"

	// DefaultOutputDir is where snapshots are emitted when no directory is given.
	DefaultOutputDir = "snapshots"

	// SnapshotFilePrefix prefixes every emitted artifact, as in snapshot.<label>.json.
	SnapshotFilePrefix = "snapshot"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultStorePath returns the store directory below root.
// It joins root, .lineage and store.
func DefaultStorePath(root string) string {
	return filepath.Join(root, StateDirName, StoreDirName)
}

// SnapshotFileName returns the artifact name for a version label and extension.
func SnapshotFileName(label, ext string) string {
	return SnapshotFilePrefix + "." + label + "." + ext
}
