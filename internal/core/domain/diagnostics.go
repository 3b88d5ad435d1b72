package domain

import (
	"fmt"
	"strings"
)

// Schema is the unfrozen input triple produced by a front-end.
type Schema struct {
	Registry  *Registry
	Graph     *Graph
	Lifecycle *Lifecycle
}

// DiagnosticsError aggregates every problem found by a freeze pass.
// Each diagnostic wraps one of the category sentinels, so errors.Is
// matches any category present in the list.
type DiagnosticsError struct {
	Diagnostics []error
}

// Error implements the error interface.
func (e *DiagnosticsError) Error() string {
	switch len(e.Diagnostics) {
	case 0:
		return ErrSchemaInvalid.Error()
	case 1:
		return fmt.Sprintf("%s: %s", ErrSchemaInvalid.Error(), e.Diagnostics[0].Error())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d problems", ErrSchemaInvalid.Error(), len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		b.WriteString("\n")
		b.WriteString(d.Error())
	}
	return b.String()
}

// Unwrap exposes the individual diagnostics to errors.Is and errors.As.
func (e *DiagnosticsError) Unwrap() []error {
	return append([]error{ErrSchemaInvalid}, e.Diagnostics...)
}

// Len returns the number of diagnostics.
func (e *DiagnosticsError) Len() int {
	return len(e.Diagnostics)
}

// Message returns a one-line summary without the individual diagnostics.
func (e *DiagnosticsError) Message() string {
	if len(e.Diagnostics) == 1 {
		return ErrSchemaInvalid.Error() + ": 1 problem"
	}
	return fmt.Sprintf("%s: %d problems", ErrSchemaInvalid.Error(), len(e.Diagnostics))
}
