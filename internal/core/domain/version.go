package domain

import (
	"iter"
	"strings"

	"go.trai.ch/zerr"
)

// Version is a registered API version. Its ordinal is the declaration
// position in the owning Registry and is the only basis for ordering.
type Version struct {
	label   string
	ordinal int
}

// Label returns the display label of the version.
func (v Version) Label() string {
	return v.label
}

// Ordinal returns the declaration position of the version, starting at zero.
func (v Version) Ordinal() int {
	return v.ordinal
}

// String implements fmt.Stringer.
func (v Version) String() string {
	return v.label
}

// IsZero reports whether v is the zero Version, which is never registered.
func (v Version) IsZero() bool {
	return v.label == ""
}

// Registry is the immutable, ordered set of declared versions.
type Registry struct {
	versions []Version
	byLabel  map[string]Version
}

// NewRegistry builds a registry from labels in declaration order.
// It fails with ErrConfig if the list is empty or holds blank or duplicate
// labels, or labels that cannot appear inside a file name.
func NewRegistry(labels []string) (*Registry, error) {
	if len(labels) == 0 {
		return nil, zerr.Wrap(ErrConfig, "at least one version must be declared")
	}

	r := &Registry{
		versions: make([]Version, 0, len(labels)),
		byLabel:  make(map[string]Version, len(labels)),
	}

	for i, label := range labels {
		if strings.TrimSpace(label) == "" {
			return nil, zerr.With(zerr.Wrap(ErrConfig, "version label is blank"), "position", i)
		}
		if strings.ContainsAny(label, "/\\\x00") || strings.Contains(label, "..") {
			err := zerr.With(zerr.Wrap(ErrConfig, "version label must not contain path separators, '..' or NUL"), "label", label)
			return nil, zerr.With(err, "position", i)
		}
		if prev, exists := r.byLabel[label]; exists {
			err := zerr.With(zerr.Wrap(ErrConfig, "duplicate version label"), "label", label)
			err = zerr.With(err, "first_position", prev.ordinal)
			return nil, zerr.With(err, "duplicate_position", i)
		}
		v := Version{label: label, ordinal: i}
		r.versions = append(r.versions, v)
		r.byLabel[label] = v
	}

	return r, nil
}

// Compare returns the ordinal difference a - b.
func (r *Registry) Compare(a, b Version) int {
	return a.ordinal - b.ordinal
}

// Resolve looks up a version by label.
func (r *Registry) Resolve(label string) (Version, error) {
	v, ok := r.byLabel[label]
	if !ok {
		return Version{}, zerr.With(zerr.Wrap(ErrUnknownVersion, "version is not registered"), "version", label)
	}
	return v, nil
}

// Contains reports whether v was issued by this registry.
func (r *Registry) Contains(v Version) bool {
	got, ok := r.byLabel[v.label]
	return ok && got == v
}

// Len returns the number of declared versions.
func (r *Registry) Len() int {
	return len(r.versions)
}

// At returns the version with the given ordinal.
func (r *Registry) At(ordinal int) (Version, bool) {
	if ordinal < 0 || ordinal >= len(r.versions) {
		return Version{}, false
	}
	return r.versions[ordinal], true
}

// First returns the earliest declared version.
func (r *Registry) First() Version {
	return r.versions[0]
}

// Latest returns the last declared version.
func (r *Registry) Latest() Version {
	return r.versions[len(r.versions)-1]
}

// Versions yields the declared versions in declaration order.
func (r *Registry) Versions() iter.Seq[Version] {
	return func(yield func(Version) bool) {
		for _, v := range r.versions {
			if !yield(v) {
				return
			}
		}
	}
}

// Labels returns a copy of the declared labels in declaration order.
func (r *Registry) Labels() []string {
	labels := make([]string, len(r.versions))
	for i, v := range r.versions {
		labels[i] = v.label
	}
	return labels
}
