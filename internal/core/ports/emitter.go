package ports

import "go.trai.ch/lineage/internal/core/domain"

//go:generate mockgen -source=emitter.go -destination=mocks/mock_emitter.go -package=mocks

// Emitter turns one snapshot into one artifact.
type Emitter interface {
	// Format returns the format name, such as "json".
	Format() string

	// Emit writes the artifact for the snapshot into dir and returns its path.
	Emit(dir string, snapshot *domain.Snapshot) (string, error)
}

// EmitterRegistry resolves emitters by format name.
type EmitterRegistry interface {
	// Lookup returns the emitter for format, or domain.ErrUnknownFormat.
	Lookup(format string) (Emitter, error)
}
