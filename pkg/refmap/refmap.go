// Package refmap maintains scoped translation tables from source-environment
// entity IDs to target-environment entity IDs. Cross-entity foreign keys in
// Close are environment-local (an activity custom field embeds the ID of its
// activity type), so an entity crossing environments needs its references
// translated, never copied through.
//
// A map is built during the reference-target kind's reconciliation pass and
// is read-only once dependent kinds are processed; that ordering is enforced
// by the reconciler, not here.
package refmap

import "github.com/closeops/schemasync/pkg/schema"

// Map translates source-environment IDs to target-environment IDs, scoped
// by kind. The zero value is not usable; call New.
type Map struct {
	entries map[schema.Kind]map[string]string
}

// New creates an empty reference map. A map lives for one reconciliation
// run and is discarded afterwards.
func New() *Map {
	return &Map{entries: make(map[schema.Kind]map[string]string)}
}

// Register records that sourceID in the source environment corresponds to
// targetID in the target environment for the given kind. Registering the
// same sourceID again overwrites the previous mapping.
func (m *Map) Register(kind schema.Kind, sourceID, targetID string) {
	if sourceID == "" {
		return
	}
	scoped, ok := m.entries[kind]
	if !ok {
		scoped = make(map[string]string)
		m.entries[kind] = scoped
	}
	scoped[sourceID] = targetID
}

// Resolve returns the target-environment ID for a source-environment ID.
// A miss is a first-class result, not an error: dependents treat it as
// "skip this entity" rather than failing the run.
func (m *Map) Resolve(kind schema.Kind, sourceID string) (string, bool) {
	scoped, ok := m.entries[kind]
	if !ok {
		return "", false
	}
	targetID, ok := scoped[sourceID]
	return targetID, ok
}

// Len returns the number of registered mappings for a kind.
func (m *Map) Len(kind schema.Kind) int {
	return len(m.entries[kind])
}

// Mappings returns a copy of the kind's translation table for reporting.
func (m *Map) Mappings(kind schema.Kind) map[string]string {
	scoped, ok := m.entries[kind]
	if !ok {
		return nil
	}
	out := make(map[string]string, len(scoped))
	for k, v := range scoped {
		out[k] = v
	}
	return out
}
