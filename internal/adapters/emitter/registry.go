package emitter

import (
	"slices"
	"strings"

	"go.trai.ch/lineage/internal/core/domain"
	"go.trai.ch/lineage/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.EmitterRegistry = (*Registry)(nil)

// Registry resolves emitters by format name.
type Registry struct {
	emitters map[string]ports.Emitter
}

// NewRegistry returns a registry holding the given emitters.
// With no arguments it holds the JSON and YAML emitters.
func NewRegistry(emitters ...ports.Emitter) *Registry {
	if len(emitters) == 0 {
		emitters = []ports.Emitter{JSON{}, YAML{}}
	}
	r := &Registry{emitters: make(map[string]ports.Emitter, len(emitters))}
	for _, e := range emitters {
		r.emitters[e.Format()] = e
	}
	return r
}

// Lookup returns the emitter for format. "yml" is accepted for "yaml".
func (r *Registry) Lookup(format string) (ports.Emitter, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "yml" {
		format = "yaml"
	}
	if e, ok := r.emitters[format]; ok {
		return e, nil
	}
	return nil, zerr.With(zerr.Wrap(domain.ErrUnknownFormat, "no emitter for format"), "format", format)
}

// Formats returns the registered format names, sorted.
func (r *Registry) Formats() []string {
	formats := make([]string, 0, len(r.emitters))
	for f := range r.emitters {
		formats = append(formats, f)
	}
	slices.Sort(formats)
	return formats
}
