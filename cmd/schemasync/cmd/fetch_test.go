package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/closeops/schemasync/pkg/schema"
)

func TestResolveKindsDefaultsToAll(t *testing.T) {
	kinds, err := resolveKinds(nil)
	require.NoError(t, err)
	assert.Equal(t, schema.Kinds(), kinds)
}

func TestResolveKindsNamed(t *testing.T) {
	kinds, err := resolveKinds([]string{"lead_status", "activity_type"})
	require.NoError(t, err)
	assert.Equal(t, []schema.Kind{schema.KindLeadStatus, schema.KindActivityType}, kinds)
}

func TestResolveKindsRejectsUnknown(t *testing.T) {
	_, err := resolveKinds([]string{"lead_custom_field", "bogus"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
}
