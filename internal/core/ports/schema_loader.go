package ports

import "go.trai.ch/lineage/internal/core/domain"

// SchemaLoader defines the front-end that builds the unfrozen input triple.
//
//go:generate mockgen -source=schema_loader.go -destination=mocks/mock_schema_loader.go -package=mocks
type SchemaLoader interface {
	// Discover walks up from cwd and returns the path of the schema document.
	Discover(cwd string) (string, error)

	// Load reads the schema document at path and returns the registry, graph and lifecycle store.
	Load(path string) (*domain.Schema, error)
}
