package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/closeops/schemasync/pkg/schema"
)

func statuses(labels ...string) []schema.Status {
	out := make([]schema.Status, len(labels))
	for i, l := range labels {
		out[i] = schema.Status{ID: "stat_" + l, Label: l}
	}
	return out
}

func labels(ss []schema.Status) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = s.Label
	}
	return out
}

func TestSplit(t *testing.T) {
	source := statuses("New", "Qualified")
	target := statuses("New", "Old")

	p := Split(source, target)

	assert.Equal(t, []string{"Qualified"}, labels(p.OnlyInSource))
	assert.Equal(t, []string{"Old"}, labels(p.OnlyInTarget))
	require.Len(t, p.InBoth, 1)
	assert.Equal(t, "New", p.InBoth[0].Source.Label)
	assert.Equal(t, "New", p.InBoth[0].Target.Label)
}

func TestSplitCarriesBothSidesOfAMatch(t *testing.T) {
	source := []schema.ActivityType{{ID: "at_prod_1", Name: "Call"}}
	target := []schema.ActivityType{{ID: "at_dev_9", Name: "Call"}}

	p := Split(source, target)

	require.Len(t, p.InBoth, 1)
	assert.Equal(t, "at_prod_1", p.InBoth[0].Source.ID)
	assert.Equal(t, "at_dev_9", p.InBoth[0].Target.ID)
}

func TestSplitCompleteness(t *testing.T) {
	tests := []struct {
		name   string
		source []string
		target []string
	}{
		{"disjoint", []string{"A", "B"}, []string{"C", "D"}},
		{"identical", []string{"A", "B"}, []string{"A", "B"}},
		{"overlap", []string{"A", "B", "C"}, []string{"B", "C", "D"}},
		{"empty source", nil, []string{"A"}},
		{"empty target", []string{"A"}, nil},
		{"both empty", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Split(statuses(tt.source...), statuses(tt.target...))
			assert.Equal(t, len(tt.source), p.SourceCount())
			assert.Equal(t, len(tt.target), p.TargetCount())
		})
	}
}

func TestSplitIsCaseSensitiveAndExact(t *testing.T) {
	source := statuses("Qualified", "Trial ")
	target := statuses("qualified", "Trial")

	p := Split(source, target)

	// No normalization of case or whitespace: nothing matches.
	assert.Len(t, p.OnlyInSource, 2)
	assert.Len(t, p.OnlyInTarget, 2)
	assert.Empty(t, p.InBoth)
}

func TestSplitPreservesRetrievalOrder(t *testing.T) {
	source := statuses("C", "A", "B")
	target := statuses("Z", "Y")

	p := Split(source, target)

	assert.Equal(t, []string{"C", "A", "B"}, labels(p.OnlyInSource))
	assert.Equal(t, []string{"Z", "Y"}, labels(p.OnlyInTarget))
}

func TestSplitDuplicateKeys(t *testing.T) {
	source := statuses("A", "A")
	target := statuses("A")

	p := Split(source, target)

	// First source occurrence matches, the duplicate stays source-only.
	require.Len(t, p.InBoth, 1)
	assert.Equal(t, []string{"A"}, labels(p.OnlyInSource))
	assert.Empty(t, p.OnlyInTarget)
	assert.Equal(t, 2, p.SourceCount())
	assert.Equal(t, 1, p.TargetCount())
}
