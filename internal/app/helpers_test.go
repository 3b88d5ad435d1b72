package app_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/lineage/internal/core/domain"
	"go.trai.ch/lineage/internal/engine/freeze"
)

func mustFreeze(t *testing.T, s *domain.Schema) *freeze.Bundle {
	t.Helper()
	b, err := freeze.FreezeSchema(s)
	require.NoError(t, err)
	return b
}
