package refmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/closeops/schemasync/pkg/schema"
)

func TestRegisterAndResolve(t *testing.T) {
	m := New()
	m.Register(schema.KindActivityType, "at_prod_1", "at_dev_9")

	got, ok := m.Resolve(schema.KindActivityType, "at_prod_1")
	require.True(t, ok)
	assert.Equal(t, "at_dev_9", got)
}

func TestResolveMissIsNotAnError(t *testing.T) {
	m := New()

	got, ok := m.Resolve(schema.KindActivityType, "at_prod_404")
	assert.False(t, ok)
	assert.Empty(t, got)
}

func TestScopedByKind(t *testing.T) {
	m := New()
	m.Register(schema.KindActivityType, "id_1", "dev_1")

	_, ok := m.Resolve(schema.KindLeadStatus, "id_1")
	assert.False(t, ok, "mappings must not leak across kinds")
}

func TestEmptySourceIDIgnored(t *testing.T) {
	m := New()
	m.Register(schema.KindActivityType, "", "dev_1")
	assert.Zero(t, m.Len(schema.KindActivityType))
}

func TestMappingsReturnsCopy(t *testing.T) {
	m := New()
	m.Register(schema.KindActivityType, "a", "b")

	snapshot := m.Mappings(schema.KindActivityType)
	snapshot["a"] = "tampered"

	got, _ := m.Resolve(schema.KindActivityType, "a")
	assert.Equal(t, "b", got)

	assert.Nil(t, m.Mappings(schema.KindLeadStatus))
}
