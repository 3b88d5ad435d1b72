package domain

import (
	"iter"
	"maps"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// EventKind identifies a lifecycle transition.
type EventKind uint8

const (
	// EventAdded marks the version an element first exists in.
	EventAdded EventKind = iota + 1
	// EventRemoved marks the first version an element no longer exists in.
	EventRemoved
	// EventRenamed marks the version an element's effective name changes.
	EventRenamed
)

// String returns the lower-case name of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventAdded:
		return "added"
	case EventRemoved:
		return "removed"
	case EventRenamed:
		return "renamed"
	default:
		return "unknown"
	}
}

// Event is a lifecycle fact about an element at a version label.
type Event struct {
	Kind    EventKind
	Version string
	// Name is the new name of a rename; empty otherwise.
	Name string
}

// Added returns an Added event.
func Added(version string) Event {
	return Event{Kind: EventAdded, Version: version}
}

// Removed returns a Removed event.
func Removed(version string) Event {
	return Event{Kind: EventRemoved, Version: version}
}

// Renamed returns a Renamed event.
func Renamed(version, newName string) Event {
	return Event{Kind: EventRenamed, Version: version, Name: newName}
}

// record is an Event with its label resolved against the registry.
// ordinal is -1 when the label is not registered.
type record struct {
	event   Event
	ordinal int
	name    InternedString
}

// Window is the presence interval an element declares for itself.
type Window struct {
	Added      Version
	Removed    Version
	HasAdded   bool
	HasRemoved bool
}

// Contains reports whether v lies inside the window.
func (w Window) Contains(v Version) bool {
	if w.HasAdded && v.ordinal < w.Added.ordinal {
		return false
	}
	if w.HasRemoved && v.ordinal >= w.Removed.ordinal {
		return false
	}
	return true
}

// Lifecycle stores per-element timelines of lifecycle events.
// Insertion order is kept for tie-breaking only.
type Lifecycle struct {
	registry  *Registry
	timelines map[ElementID][]record
	sealed    bool
}

// NewLifecycle creates an empty store whose events are ordered by reg.
func NewLifecycle(reg *Registry) *Lifecycle {
	return &Lifecycle{
		registry:  reg,
		timelines: make(map[ElementID][]record),
	}
}

// Registry returns the registry the store orders events by.
func (l *Lifecycle) Registry() *Registry {
	return l.registry
}

// Record appends an event to an element's timeline.
// Unregistered labels are accepted here and reported by freeze.
func (l *Lifecycle) Record(id ElementID, ev Event) error {
	if l.sealed {
		return ErrGraphSealed
	}
	if id == NoElement {
		return zerr.With(zerr.Wrap(ErrInvalidLifecycleEvent, "event has no element"), "event", ev.Kind.String())
	}
	switch ev.Kind {
	case EventAdded, EventRemoved:
	case EventRenamed:
		if strings.TrimSpace(ev.Name) == "" {
			err := zerr.With(zerr.Wrap(ErrInvalidLifecycleEvent, "rename has no target name"), "element", uint32(id))
			return zerr.With(err, "version", ev.Version)
		}
	default:
		return zerr.With(zerr.Wrap(ErrInvalidLifecycleEvent, "unknown event kind"), "element", uint32(id))
	}

	rec := record{event: ev, ordinal: -1}
	if l.registry != nil {
		if v, ok := l.registry.byLabel[ev.Version]; ok {
			rec.ordinal = v.ordinal
		}
	}
	if ev.Kind == EventRenamed {
		rec.name = NewInternedString(ev.Name)
	}
	l.timelines[id] = append(l.timelines[id], rec)
	return nil
}

// Seal makes the store read-only.
func (l *Lifecycle) Seal() {
	l.sealed = true
}

// Events returns a copy of an element's timeline in insertion order.
func (l *Lifecycle) Events(id ElementID) []Event {
	recs := l.timelines[id]
	out := make([]Event, len(recs))
	for i, r := range recs {
		out[i] = r.event
	}
	return out
}

// Elements yields every element with at least one event, in ascending id order.
func (l *Lifecycle) Elements() iter.Seq[ElementID] {
	return slices.Values(slices.Sorted(maps.Keys(l.timelines)))
}

// Window returns the element's own presence window.
// When several Added or Removed records exist the first inserted wins.
func (l *Lifecycle) Window(id ElementID) Window {
	var w Window
	for _, r := range l.timelines[id] {
		if r.ordinal < 0 {
			continue
		}
		v := l.registry.versions[r.ordinal]
		switch r.event.Kind {
		case EventAdded:
			if !w.HasAdded {
				w.Added, w.HasAdded = v, true
			}
		case EventRemoved:
			if !w.HasRemoved {
				w.Removed, w.HasRemoved = v, true
			}
		case EventRenamed:
		}
	}
	return w
}

// IsPresent reports whether the element's own window includes v.
// Containment by the parent is not considered here.
func (l *Lifecycle) IsPresent(id ElementID, v Version) bool {
	return l.Window(id).Contains(v)
}

// EffectiveName returns the target of the latest rename at or before v,
// or declared if no rename applies. Among renames at one version the first
// recorded wins.
func (l *Lifecycle) EffectiveName(id ElementID, declared InternedString, v Version) InternedString {
	name := declared
	best := -1
	for _, r := range l.timelines[id] {
		if r.event.Kind != EventRenamed || r.ordinal < 0 || r.ordinal > v.ordinal {
			continue
		}
		if r.ordinal > best {
			best = r.ordinal
			name = r.name
		}
	}
	return name
}
