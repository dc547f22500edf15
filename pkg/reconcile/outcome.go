package reconcile

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/closeops/schemasync/pkg/schema"
)

// OutcomeType is the terminal state of one entity's reconciliation.
// An entity moves from pending to exactly one of these; outcomes are
// never revisited or retried within a run.
type OutcomeType string

const (
	// OutcomeCreated indicates the entity was created in the target.
	OutcomeCreated OutcomeType = "created"
	// OutcomeSkipped indicates the entity was deliberately not created.
	OutcomeSkipped OutcomeType = "skipped"
	// OutcomeRemoved indicates a target-only entity was deleted.
	OutcomeRemoved OutcomeType = "removed"
	// OutcomeFailed indicates the create or delete call errored.
	OutcomeFailed OutcomeType = "failed"
)

// Skip reasons recorded on OutcomeSkipped outcomes.
const (
	ReasonAlreadyExists      = "already exists"
	ReasonMissingActivityRef = "missing activity type reference"
	ReasonUnmappedActivity   = "unmapped activity type"
)

// Outcome records the terminal result for one entity considered during a
// pass. SourceID/TargetID are environment-local and never comparable to
// each other.
type Outcome struct {
	Kind     schema.Kind `json:"kind"`
	Key      string      `json:"key"`
	SourceID string      `json:"source_id,omitempty"`
	TargetID string      `json:"target_id,omitempty"`
	Type     OutcomeType `json:"outcome"`
	Reason   string      `json:"reason,omitempty"`
	Error    string      `json:"error,omitempty"`
}

// Counts aggregates outcome totals for reporting.
type Counts struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Removed int `json:"removed"`
	Failed  int `json:"failed"`
}

// Add folds another Counts into this one.
func (c *Counts) Add(o Counts) {
	c.Created += o.Created
	c.Skipped += o.Skipped
	c.Removed += o.Removed
	c.Failed += o.Failed
}

// String returns a compact human-readable summary.
func (c Counts) String() string {
	parts := []string{
		fmt.Sprintf("%d created", c.Created),
		fmt.Sprintf("%d skipped", c.Skipped),
	}
	if c.Removed > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", c.Removed))
	}
	if c.Failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", c.Failed))
	}
	return strings.Join(parts, ", ")
}

// KindReport is the append-only outcome ledger for one kind's pass.
type KindReport struct {
	Kind     schema.Kind
	Outcomes []Outcome
	Warnings []string
	// Mapping holds the source→target ID translations built during the
	// pass. Only populated for reference-target kinds (activity types).
	Mapping map[string]string
}

func (r *KindReport) add(o Outcome) {
	o.Kind = r.Kind
	r.Outcomes = append(r.Outcomes, o)
}

func (r *KindReport) warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// Counts returns the aggregate totals for the pass.
func (r *KindReport) Counts() Counts {
	var c Counts
	for _, o := range r.Outcomes {
		switch o.Type {
		case OutcomeCreated:
			c.Created++
		case OutcomeSkipped:
			c.Skipped++
		case OutcomeRemoved:
			c.Removed++
		case OutcomeFailed:
			c.Failed++
		}
	}
	return c
}

// ByType returns the outcomes with the given terminal state, in ledger
// order.
func (r *KindReport) ByType(t OutcomeType) []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Type == t {
			out = append(out, o)
		}
	}
	return out
}

// kindArtifact is the persisted ledger shape for one kind:
// {created, skipped, failed, removed?, mapping?}.
type kindArtifact struct {
	Kind     string            `json:"kind"`
	Created  []Outcome         `json:"created"`
	Skipped  []Outcome         `json:"skipped"`
	Failed   []Outcome         `json:"failed"`
	Removed  []Outcome         `json:"removed,omitempty"`
	Mapping  map[string]string `json:"mapping,omitempty"`
	Warnings []string          `json:"warnings,omitempty"`
}

// MarshalJSON renders the ledger grouped by outcome type.
func (r *KindReport) MarshalJSON() ([]byte, error) {
	artifact := kindArtifact{
		Kind:     r.Kind.String(),
		Created:  emptyNotNil(r.ByType(OutcomeCreated)),
		Skipped:  emptyNotNil(r.ByType(OutcomeSkipped)),
		Failed:   emptyNotNil(r.ByType(OutcomeFailed)),
		Mapping:  r.Mapping,
		Warnings: r.Warnings,
	}
	if r.Kind.Mirrored() {
		artifact.Removed = emptyNotNil(r.ByType(OutcomeRemoved))
	}
	return json.Marshal(artifact)
}

func emptyNotNil(outcomes []Outcome) []Outcome {
	if outcomes == nil {
		return []Outcome{}
	}
	return outcomes
}
