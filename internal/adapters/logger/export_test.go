package logger

// Exported for white-box tests of the pretty error renderer.
var (
	CollectErrorEntries = collectErrorEntries
	FormatErrorEntries  = formatErrorEntries
)

// ErrorEntryMessage returns the message of an error entry.
func ErrorEntryMessage(e errorEntry) string { return e.message }

// ErrorEntryMetadata returns the rendered metadata of an error entry.
func ErrorEntryMetadata(e errorEntry) []string { return e.metadata }
