package domain

import "go.trai.ch/zerr"

var (
	// ErrConfig is returned when the version registry is malformed (empty, duplicate or blank labels).
	ErrConfig = zerr.New("invalid version registry")

	// ErrUnknownVersion is returned when a version label was never registered.
	ErrUnknownVersion = zerr.New("unknown version")

	// ErrGraphIntegrity is returned when the containment tree would be broken.
	ErrGraphIntegrity = zerr.New("graph integrity violation")

	// ErrGraphSealed is returned when a graph or lifecycle store is mutated after freeze.
	ErrGraphSealed = zerr.New("schema is frozen and can no longer be modified")

	// ErrUnorderedRemoval is returned when an element is removed at or before the version it was added.
	ErrUnorderedRemoval = zerr.New("element removed at or before the version it was added")

	// ErrRedundantRename is returned when a rename is out of order or does not change the name.
	ErrRedundantRename = zerr.New("redundant rename")

	// ErrOrphanedElement is returned when an element is present in a version where its parent is absent.
	ErrOrphanedElement = zerr.New("element present while its parent is absent")

	// ErrDanglingReference is returned when a present element references an absent element.
	ErrDanglingReference = zerr.New("dangling reference")

	// ErrNameCollision is returned when two present siblings share an effective name.
	ErrNameCollision = zerr.New("name collision")

	// ErrDuplicateLifecycleEvent is returned when an element carries more than one Added or Removed record.
	ErrDuplicateLifecycleEvent = zerr.New("duplicate lifecycle event")

	// ErrInvalidLifecycleEvent is returned when a lifecycle event is malformed.
	ErrInvalidLifecycleEvent = zerr.New("invalid lifecycle event")

	// ErrInvariantViolation marks an internal defect detected while projecting a frozen bundle.
	ErrInvariantViolation = zerr.New("internal invariant violation")

	// ErrConfigReadFailed is returned when the schema document cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read schema file")

	// ErrConfigParseFailed is returned when the schema document cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse schema file")

	// ErrConfigNotFound is returned when no schema document can be found.
	ErrConfigNotFound = zerr.New("could not find " + SchemaFileName)

	// ErrConfigInvalid is returned when the schema document is structurally invalid.
	ErrConfigInvalid = zerr.New("invalid schema document")

	// ErrUnknownFormat is returned when an emitter format is not supported.
	ErrUnknownFormat = zerr.New("unknown output format, expected 'json' or 'yaml'")

	// ErrEmitFailed is returned when a snapshot artifact cannot be written.
	ErrEmitFailed = zerr.New("failed to emit snapshot")

	// ErrStoreCreateFailed is returned when the snapshot store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create snapshot store directory")

	// ErrStoreReadFailed is returned when the snapshot store cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read snapshot store")

	// ErrStoreUnmarshalFailed is returned when the snapshot store index cannot be decoded.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal snapshot store index")

	// ErrStoreMarshalFailed is returned when a store record cannot be encoded.
	ErrStoreMarshalFailed = zerr.New("failed to marshal snapshot store record")

	// ErrStoreWriteFailed is returned when a store record cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write snapshot store record")

	// ErrSchemaInvalid is returned when freeze rejects the schema.
	ErrSchemaInvalid = zerr.New("schema validation failed")
)
