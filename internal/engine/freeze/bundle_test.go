package freeze_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lineage/internal/core/domain"
)

func TestBundle_Queries(t *testing.T) {
	s := newSchema(t, "1.0", "2.0", "3.0")
	root := s.add(domain.NoElement, domain.KindNamespace, "Root")
	pet := s.add(root, domain.KindModel, "Pet", domain.Added("2.0"))
	age := s.add(pet, domain.KindProperty, "years", domain.Renamed("3.0", "age"))

	b, err := s.freeze()
	require.NoError(t, err)

	present, err := b.IsPresent(age, "1.0")
	require.NoError(t, err)
	assert.True(t, present, "own window has no bounds")

	included, err := b.Includes(age, "1.0")
	require.NoError(t, err)
	assert.False(t, included, "parent is absent")

	included, err = b.Includes(age, "2.0")
	require.NoError(t, err)
	assert.True(t, included)

	name, err := b.EffectiveName(age, "2.0")
	require.NoError(t, err)
	assert.Equal(t, "years", name)

	name, err = b.EffectiveName(age, "3.0")
	require.NoError(t, err)
	assert.Equal(t, "age", name)

	v, err := b.Resolve("3.0")
	require.NoError(t, err)
	assert.Equal(t, 2, v.Ordinal())
}

func TestBundle_Errors(t *testing.T) {
	s := newSchema(t, "1.0")
	root := s.add(domain.NoElement, domain.KindNamespace, "Root")

	b, err := s.freeze()
	require.NoError(t, err)

	_, err = b.IsPresent(root, "9.9")
	require.ErrorIs(t, err, domain.ErrUnknownVersion)
	_, err = b.Includes(domain.ElementID(42), "1.0")
	require.ErrorIs(t, err, domain.ErrGraphIntegrity)
	_, err = b.EffectiveName(domain.ElementID(42), "1.0")
	require.ErrorIs(t, err, domain.ErrGraphIntegrity)
}
