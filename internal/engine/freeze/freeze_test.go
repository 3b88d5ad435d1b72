package freeze_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lineage/internal/core/domain"
	"go.trai.ch/lineage/internal/engine/freeze"
	"go.trai.ch/zerr"
)

// schema is a small builder over the input triple.
type schema struct {
	t   *testing.T
	reg *domain.Registry
	g   *domain.Graph
	lc  *domain.Lifecycle
}

func newSchema(t *testing.T, labels ...string) *schema {
	t.Helper()
	reg, err := domain.NewRegistry(labels)
	require.NoError(t, err)
	return &schema{t: t, reg: reg, g: domain.NewGraph(), lc: domain.NewLifecycle(reg)}
}

func (s *schema) add(parent domain.ElementID, kind domain.Kind, name string, events ...domain.Event) domain.ElementID {
	s.t.Helper()
	id, err := s.g.AddElement(parent, kind, name)
	require.NoError(s.t, err)
	for _, ev := range events {
		require.NoError(s.t, s.lc.Record(id, ev))
	}
	return id
}

func (s *schema) ref(from, to domain.ElementID) {
	s.t.Helper()
	require.NoError(s.t, s.g.AddReference(from, to))
}

func (s *schema) freeze() (*freeze.Bundle, error) {
	return freeze.Freeze(s.g, s.lc, s.reg)
}

// diagnostics freezes s, expects failure and returns the collected problems.
func (s *schema) diagnostics() []error {
	s.t.Helper()
	b, err := s.freeze()
	require.Error(s.t, err)
	assert.Nil(s.t, b)
	require.ErrorIs(s.t, err, domain.ErrSchemaInvalid)

	var diags *domain.DiagnosticsError
	require.True(s.t, errors.As(err, &diags), "expected *domain.DiagnosticsError, got %T", err)
	return diags.Diagnostics
}

func metadata(t *testing.T, err error) map[string]any {
	t.Helper()
	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	return zErr.Metadata()
}

func TestFreeze_Valid(t *testing.T) {
	s := newSchema(t, "1.0", "2.0")
	root := s.add(domain.NoElement, domain.KindNamespace, "PetStore")
	pet := s.add(root, domain.KindModel, "Pet")
	toy := s.add(root, domain.KindModel, "Toy", domain.Added("2.0"))
	s.add(pet, domain.KindProperty, "name")

	b, err := s.freeze()
	require.NoError(t, err)
	require.NotNil(t, b)

	assert.Equal(t, []string{"1.0", "2.0"}, b.Versions())
	assert.True(t, s.g.Sealed())

	_, err = s.g.AddElement(root, domain.KindModel, "Late")
	require.ErrorIs(t, err, domain.ErrGraphSealed)
	require.ErrorIs(t, s.lc.Record(toy, domain.Removed("2.0")), domain.ErrGraphSealed)
}

func TestFreeze_RefreezeFails(t *testing.T) {
	s := newSchema(t, "1.0")
	s.add(domain.NoElement, domain.KindNamespace, "Root")

	_, err := s.freeze()
	require.NoError(t, err)

	_, err = s.freeze()
	require.ErrorIs(t, err, domain.ErrGraphSealed)
}

func TestFreeze_CyclicReferences(t *testing.T) {
	s := newSchema(t, "1.0")
	root := s.add(domain.NoElement, domain.KindNamespace, "Root")
	node := s.add(root, domain.KindModel, "Node")
	next := s.add(node, domain.KindProperty, "next")
	owner := s.add(root, domain.KindModel, "Owner")
	pets := s.add(owner, domain.KindProperty, "pets")
	s.ref(next, node)
	s.ref(pets, node)
	s.ref(node, owner)
	s.ref(owner, node)

	_, err := s.freeze()
	require.NoError(t, err)
}

func TestFreeze_MissingInputs(t *testing.T) {
	reg, err := domain.NewRegistry([]string{"1.0"})
	require.NoError(t, err)

	_, err = freeze.Freeze(domain.NewGraph(), domain.NewLifecycle(reg), nil)
	require.ErrorIs(t, err, domain.ErrConfig)

	_, err = freeze.Freeze(nil, domain.NewLifecycle(reg), reg)
	require.ErrorIs(t, err, domain.ErrGraphIntegrity)

	_, err = freeze.FreezeSchema(nil)
	require.ErrorIs(t, err, domain.ErrGraphIntegrity)
}

func TestFreeze_Structure(t *testing.T) {
	t.Run("empty graph", func(t *testing.T) {
		s := newSchema(t, "1.0")
		diags := s.diagnostics()
		require.Len(t, diags, 1)
		assert.ErrorIs(t, diags[0], domain.ErrGraphIntegrity)
	})

	t.Run("foreign registry", func(t *testing.T) {
		s := newSchema(t, "1.0")
		s.add(domain.NoElement, domain.KindNamespace, "Root")
		other, err := domain.NewRegistry([]string{"1.0"})
		require.NoError(t, err)

		_, err = freeze.Freeze(s.g, s.lc, other)
		require.ErrorIs(t, err, domain.ErrConfig)
		assert.False(t, s.g.Sealed())
	})

	t.Run("events for unknown element", func(t *testing.T) {
		s := newSchema(t, "1.0")
		s.add(domain.NoElement, domain.KindNamespace, "Root")
		require.NoError(t, s.lc.Record(domain.ElementID(9), domain.Added("1.0")))

		diags := s.diagnostics()
		require.Len(t, diags, 1)
		assert.ErrorIs(t, diags[0], domain.ErrGraphIntegrity)
		assert.Equal(t, uint32(9), metadata(t, diags[0])["element"])
	})
}

func TestFreeze_UnknownVersion(t *testing.T) {
	s := newSchema(t, "1.0", "2.0")
	root := s.add(domain.NoElement, domain.KindNamespace, "Root")
	s.add(root, domain.KindModel, "Pet", domain.Added("3.0"))

	diags := s.diagnostics()
	require.Len(t, diags, 1)
	assert.ErrorIs(t, diags[0], domain.ErrUnknownVersion)
	meta := metadata(t, diags[0])
	assert.Equal(t, "Root.Pet", meta["element"])
	assert.Equal(t, "added", meta["event"])
}

func TestFreeze_UnorderedRemoval(t *testing.T) {
	tests := []struct {
		name           string
		added, removed string
	}{
		{"same version", "2.0", "2.0"},
		{"removed first", "2.0", "1.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSchema(t, "1.0", "2.0", "3.0")
			root := s.add(domain.NoElement, domain.KindNamespace, "Root")
			s.add(root, domain.KindModel, "Pet", domain.Added(tt.added), domain.Removed(tt.removed))

			diags := s.diagnostics()
			require.Len(t, diags, 1, "unordered elements are not also reported as orphans")
			assert.ErrorIs(t, diags[0], domain.ErrUnorderedRemoval)
			meta := metadata(t, diags[0])
			assert.Equal(t, tt.added, meta["added"])
			assert.Equal(t, tt.removed, meta["removed"])
		})
	}
}

func TestFreeze_DuplicateLifecycleEvent(t *testing.T) {
	s := newSchema(t, "1.0", "2.0", "3.0")
	root := s.add(domain.NoElement, domain.KindNamespace, "Root")
	s.add(root, domain.KindModel, "Pet",
		domain.Added("1.0"), domain.Removed("2.0"), domain.Added("3.0"))

	diags := s.diagnostics()
	require.Len(t, diags, 1)
	assert.ErrorIs(t, diags[0], domain.ErrDuplicateLifecycleEvent)
	meta := metadata(t, diags[0])
	assert.Equal(t, "1.0", meta["first"])
	assert.Equal(t, "3.0", meta["version"])
}

func TestFreeze_RedundantRename(t *testing.T) {
	t.Run("same as current name", func(t *testing.T) {
		s := newSchema(t, "1.0", "2.0")
		root := s.add(domain.NoElement, domain.KindNamespace, "Root")
		s.add(root, domain.KindModel, "Pet", domain.Renamed("2.0", "Pet"))

		diags := s.diagnostics()
		require.Len(t, diags, 1)
		assert.ErrorIs(t, diags[0], domain.ErrRedundantRename)
	})

	t.Run("back to previous rename", func(t *testing.T) {
		s := newSchema(t, "1.0", "2.0", "3.0")
		root := s.add(domain.NoElement, domain.KindNamespace, "Root")
		s.add(root, domain.KindModel, "Pet",
			domain.Renamed("2.0", "Animal"), domain.Renamed("3.0", "Animal"))

		diags := s.diagnostics()
		require.Len(t, diags, 1)
		assert.ErrorIs(t, diags[0], domain.ErrRedundantRename)
		assert.Equal(t, "3.0", metadata(t, diags[0])["version"])
	})

	t.Run("recorded out of version order", func(t *testing.T) {
		s := newSchema(t, "1.0", "2.0", "3.0")
		root := s.add(domain.NoElement, domain.KindNamespace, "Root")
		pet := s.add(root, domain.KindModel, "Pet",
			domain.Renamed("3.0", "Creature"), domain.Renamed("2.0", "Animal"))

		b, err := s.freeze()
		require.NoError(t, err)
		name, err := b.EffectiveName(pet, "2.0")
		require.NoError(t, err)
		assert.Equal(t, "Animal", name)
		name, err = b.EffectiveName(pet, "3.0")
		require.NoError(t, err)
		assert.Equal(t, "Creature", name)
	})

	t.Run("out of order back to the name in effect", func(t *testing.T) {
		s := newSchema(t, "1.0", "2.0", "3.0")
		root := s.add(domain.NoElement, domain.KindNamespace, "Root")
		s.add(root, domain.KindModel, "Pet",
			domain.Renamed("3.0", "Animal"), domain.Renamed("2.0", "Animal"))

		diags := s.diagnostics()
		require.Len(t, diags, 1)
		assert.ErrorIs(t, diags[0], domain.ErrRedundantRename)
		assert.Equal(t, "3.0", metadata(t, diags[0])["version"])
	})

	t.Run("two renames in one version", func(t *testing.T) {
		s := newSchema(t, "1.0", "2.0")
		root := s.add(domain.NoElement, domain.KindNamespace, "Root")
		s.add(root, domain.KindModel, "Pet",
			domain.Renamed("2.0", "Animal"), domain.Renamed("2.0", "Creature"))

		diags := s.diagnostics()
		require.Len(t, diags, 1)
		assert.ErrorIs(t, diags[0], domain.ErrRedundantRename)
		meta := metadata(t, diags[0])
		assert.Equal(t, "2.0", meta["version"])
		assert.Equal(t, "Creature", meta["name"])
	})

	t.Run("rename back to the declared name", func(t *testing.T) {
		s := newSchema(t, "1.0", "2.0", "3.0")
		root := s.add(domain.NoElement, domain.KindNamespace, "Root")
		s.add(root, domain.KindModel, "Pet",
			domain.Renamed("2.0", "Animal"), domain.Renamed("3.0", "Pet"))

		_, err := s.freeze()
		require.NoError(t, err)
	})
}

func TestFreeze_Orphans(t *testing.T) {
	t.Run("child added before parent", func(t *testing.T) {
		s := newSchema(t, "1.0", "2.0")
		root := s.add(domain.NoElement, domain.KindNamespace, "Root")
		pet := s.add(root, domain.KindModel, "Pet", domain.Added("2.0"))
		s.add(pet, domain.KindProperty, "name", domain.Added("1.0"))

		diags := s.diagnostics()
		require.Len(t, diags, 1)
		assert.ErrorIs(t, diags[0], domain.ErrOrphanedElement)
		meta := metadata(t, diags[0])
		assert.Equal(t, "Root.Pet.name", meta["element"])
		assert.Equal(t, "Root.Pet", meta["parent"])
		assert.Equal(t, "1.0", meta["version"])
	})

	t.Run("child outlives parent", func(t *testing.T) {
		s := newSchema(t, "1.0", "2.0", "3.0")
		root := s.add(domain.NoElement, domain.KindNamespace, "Root")
		pet := s.add(root, domain.KindModel, "Pet", domain.Removed("2.0"))
		s.add(pet, domain.KindProperty, "name", domain.Removed("3.0"))

		diags := s.diagnostics()
		require.Len(t, diags, 1)
		assert.ErrorIs(t, diags[0], domain.ErrOrphanedElement)
		assert.Equal(t, "2.0", metadata(t, diags[0])["version"])
	})

	t.Run("unbounded child inherits presence", func(t *testing.T) {
		s := newSchema(t, "1.0", "2.0", "3.0")
		root := s.add(domain.NoElement, domain.KindNamespace, "Root")
		pet := s.add(root, domain.KindModel, "Pet", domain.Added("2.0"), domain.Removed("3.0"))
		s.add(pet, domain.KindProperty, "name")
		s.add(pet, domain.KindProperty, "tag", domain.Added("2.0"))

		_, err := s.freeze()
		require.NoError(t, err)
	})
}

func TestFreeze_DanglingReference(t *testing.T) {
	// An operation available from 1.0 references a model added in 2.0.
	s := newSchema(t, "1.0", "2.0")
	root := s.add(domain.NoElement, domain.KindNamespace, "Root")
	x := s.add(root, domain.KindOperation, "X", domain.Added("1.0"))
	y := s.add(root, domain.KindModel, "Y", domain.Added("2.0"))
	s.ref(x, y)

	diags := s.diagnostics()
	require.Len(t, diags, 1)
	assert.ErrorIs(t, diags[0], domain.ErrDanglingReference)
	meta := metadata(t, diags[0])
	assert.Equal(t, "Root.X", meta["element"])
	assert.Equal(t, "Root.Y", meta["reference"])
	assert.Equal(t, "1.0", meta["version"])
}

func TestFreeze_DanglingReference_Removed(t *testing.T) {
	s := newSchema(t, "1.0", "2.0", "3.0")
	root := s.add(domain.NoElement, domain.KindNamespace, "Root")
	owner := s.add(root, domain.KindModel, "Owner")
	pets := s.add(owner, domain.KindProperty, "pets")
	pet := s.add(root, domain.KindModel, "Pet", domain.Removed("2.0"))
	s.ref(pets, pet)

	diags := s.diagnostics()
	require.Len(t, diags, 2, "one per version the reference dangles in")
	assert.Equal(t, "2.0", metadata(t, diags[0])["version"])
	assert.Equal(t, "3.0", metadata(t, diags[1])["version"])
}

func TestFreeze_DanglingReference_ThroughAncestor(t *testing.T) {
	// The target has no lifecycle of its own but its model is added later.
	s := newSchema(t, "1.0", "2.0")
	root := s.add(domain.NoElement, domain.KindNamespace, "Root")
	status := s.add(root, domain.KindEnumType, "Status", domain.Added("2.0"))
	active := s.add(status, domain.KindEnumMember, "active")
	op := s.add(root, domain.KindOperation, "list")
	filter := s.add(op, domain.KindParameter, "filter")
	s.ref(filter, active)

	diags := s.diagnostics()
	require.Len(t, diags, 1)
	assert.ErrorIs(t, diags[0], domain.ErrDanglingReference)
	assert.Equal(t, "1.0", metadata(t, diags[0])["version"])
}

func TestFreeze_NameCollision(t *testing.T) {
	s := newSchema(t, "1.0", "2.0")
	root := s.add(domain.NoElement, domain.KindNamespace, "Root")
	s.add(root, domain.KindModel, "Pet")
	s.add(root, domain.KindModel, "LegacyPet", domain.Renamed("2.0", "Pet"))

	diags := s.diagnostics()
	require.Len(t, diags, 1)
	assert.ErrorIs(t, diags[0], domain.ErrNameCollision)
	meta := metadata(t, diags[0])
	assert.Equal(t, "Root", meta["parent"])
	assert.Equal(t, "Pet", meta["name"])
	assert.Equal(t, "Root.Pet, Root.LegacyPet", meta["elements"])
	assert.Equal(t, "2.0", meta["version"])
}

func TestFreeze_NameCollision_AbsentSiblingIgnored(t *testing.T) {
	s := newSchema(t, "1.0", "2.0")
	root := s.add(domain.NoElement, domain.KindNamespace, "Root")
	s.add(root, domain.KindModel, "Pet", domain.Removed("2.0"))
	s.add(root, domain.KindModel, "Animal", domain.Renamed("2.0", "Pet"))

	_, err := s.freeze()
	require.NoError(t, err)
}

func TestFreeze_ReportsEveryProblem(t *testing.T) {
	s := newSchema(t, "1.0", "2.0")
	root := s.add(domain.NoElement, domain.KindNamespace, "Root")
	x := s.add(root, domain.KindOperation, "X")
	y := s.add(root, domain.KindModel, "Y", domain.Added("2.0"))
	s.ref(x, y)
	s.add(root, domain.KindModel, "Z", domain.Renamed("2.0", "Y"))
	s.add(root, domain.KindModel, "W", domain.Added("2.0"), domain.Removed("1.0"))

	b, err := s.freeze()
	require.Error(t, err)
	assert.Nil(t, b)
	assert.False(t, s.g.Sealed(), "a rejected schema stays mutable")

	require.ErrorIs(t, err, domain.ErrDanglingReference)
	require.ErrorIs(t, err, domain.ErrNameCollision)
	require.ErrorIs(t, err, domain.ErrUnorderedRemoval)

	var diags *domain.DiagnosticsError
	require.True(t, errors.As(err, &diags))
	assert.Equal(t, 3, diags.Len())
}

func TestFreezeSchema(t *testing.T) {
	s := newSchema(t, "1.0")
	s.add(domain.NoElement, domain.KindNamespace, "Root")

	b, err := freeze.FreezeSchema(&domain.Schema{Registry: s.reg, Graph: s.g, Lifecycle: s.lc})
	require.NoError(t, err)
	assert.Same(t, s.g, b.Graph())
	assert.Same(t, s.lc, b.Lifecycle())
	assert.Same(t, s.reg, b.Registry())
}
