// Package config provides the YAML front-end that turns lineage.yaml into
// an unfrozen registry, graph and lifecycle store.
package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.trai.ch/lineage/internal/core/domain"
	"go.trai.ch/lineage/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.SchemaLoader = (*Loader)(nil)

// Loader implements ports.SchemaLoader using a YAML file.
type Loader struct {
	Logger   ports.Logger
	FS       FileSystem
	validate *validator.Validate
}

// NewLoader creates a new Loader reading from the OS filesystem.
func NewLoader(logger ports.Logger) *Loader {
	return NewLoaderWithFS(logger, OSFS{})
}

// NewLoaderWithFS creates a new Loader reading from fsys.
func NewLoaderWithFS(logger ports.Logger, fsys FileSystem) *Loader {
	return &Loader{
		Logger:   logger,
		FS:       fsys,
		validate: newValidator(),
	}
}

// Discover walks up from cwd and returns the first lineage.yaml it finds.
func (l *Loader) Discover(cwd string) (string, error) {
	currentDir := filepath.Clean(cwd)
	for {
		candidate := filepath.Join(currentDir, domain.SchemaFileName)
		if info, err := l.FS.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "no schema document in any parent directory"), "cwd", cwd)
}

// Load reads the document at path and builds the unfrozen input triple.
func (l *Loader) Load(path string) (*domain.Schema, error) {
	doc, err := l.readDocument(path)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	schema, err := l.build(doc)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return schema, nil
}

func (l *Loader) readDocument(path string) (*Document, error) {
	raw, err := l.FS.ReadFile(path)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	if err := validateDocument(l.validate, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// builder carries the state of one document conversion.
type builder struct {
	logger    ports.Logger
	graph     *domain.Graph
	lifecycle *domain.Lifecycle

	keys    map[string]domain.ElementID
	pending []pendingReference
}

type pendingReference struct {
	from domain.ElementID
	key  string
}

func (l *Loader) build(doc *Document) (*domain.Schema, error) {
	reg, err := domain.NewRegistry(doc.Versions)
	if err != nil {
		return nil, err
	}

	b := &builder{
		logger:    l.Logger,
		graph:     domain.NewGraph(),
		lifecycle: domain.NewLifecycle(reg),
		keys:      make(map[string]domain.ElementID),
	}

	root, err := b.graph.AddElement(domain.NoElement, domain.KindNamespace, doc.Namespace.Name)
	if err != nil {
		return nil, err
	}
	if err := b.recordLifecycle(root, doc.Namespace.Lifecycle); err != nil {
		return nil, err
	}
	for _, m := range doc.Namespace.Members {
		if err := b.addMember(root, nil, m); err != nil {
			return nil, err
		}
	}
	if err := b.resolveReferences(); err != nil {
		return nil, err
	}

	return &domain.Schema{
		Registry:  reg,
		Graph:     b.graph,
		Lifecycle: b.lifecycle,
	}, nil
}

func (b *builder) addMember(parent domain.ElementID, prefix []string, m *MemberDTO) error {
	kind, err := domain.ParseKind(m.Kind)
	if err != nil {
		return err
	}

	id, err := b.graph.AddElement(parent, kind, m.Name)
	if err != nil {
		return err
	}

	path := append(slices.Clone(prefix), m.Name)
	key := m.Key
	if key == "" {
		key = strings.Join(path, ".")
	}
	if other, exists := b.keys[key]; exists {
		err := zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "reference key declared twice"), "key", key)
		err = zerr.With(err, "first", b.graph.Path(other))
		return zerr.With(err, "second", b.graph.Path(id))
	}
	b.keys[key] = id

	if err := b.recordLifecycle(id, m.Lifecycle); err != nil {
		return err
	}

	seen := make(map[string]bool, len(m.References))
	for _, ref := range m.References {
		if seen[ref] {
			b.logger.Warn(fmt.Sprintf("duplicate reference %q on %s ignored", ref, b.graph.Path(id)))
			continue
		}
		seen[ref] = true
		b.pending = append(b.pending, pendingReference{from: id, key: ref})
	}

	for _, child := range m.Members {
		if err := b.addMember(id, path, child); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) recordLifecycle(id domain.ElementID, entries []LifecycleDTO) error {
	for _, e := range entries {
		var ev domain.Event
		switch {
		case e.Added != "":
			ev = domain.Added(e.Added)
		case e.Removed != "":
			ev = domain.Removed(e.Removed)
		default:
			ev = domain.Renamed(e.Renamed, e.To)
		}

		if err := b.lifecycle.Record(id, ev); err != nil {
			return zerr.With(err, "element", b.graph.Path(id))
		}
	}
	return nil
}

// resolveReferences runs after every element exists, so forward and
// cyclic references resolve.
func (b *builder) resolveReferences() error {
	for _, p := range b.pending {
		target, ok := b.keys[p.key]
		if !ok {
			err := zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "reference key does not resolve"), "key", p.key)
			return zerr.With(err, "element", b.graph.Path(p.from))
		}
		if err := b.graph.AddReference(p.from, target); err != nil {
			return err
		}
	}
	return nil
}
