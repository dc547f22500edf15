package reconcile

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/closeops/schemasync/pkg/schema"
)

// Result is the outcome ledger of one full reconciliation run: one
// KindReport per pass, in execution order, plus run metadata.
type Result struct {
	RunID      string        `json:"run_id"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	DryRun     bool          `json:"dry_run"`
	Reports    []*KindReport `json:"kinds"`
}

func newResult(dryRun bool) *Result {
	return &Result{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		DryRun:    dryRun,
	}
}

func (r *Result) finish() {
	r.FinishedAt = time.Now()
}

// report returns the ledger for a kind, creating it on first use.
func (r *Result) report(kind schema.Kind) *KindReport {
	for _, rep := range r.Reports {
		if rep.Kind == kind {
			return rep
		}
	}
	rep := &KindReport{Kind: kind}
	r.Reports = append(r.Reports, rep)
	return rep
}

// Report returns the ledger for a kind, or nil if the kind had no pass.
func (r *Result) Report(kind schema.Kind) *KindReport {
	for _, rep := range r.Reports {
		if rep.Kind == kind {
			return rep
		}
	}
	return nil
}

// Totals aggregates outcome counts across all passes.
func (r *Result) Totals() Counts {
	var c Counts
	for _, rep := range r.Reports {
		c.Add(rep.Counts())
	}
	return c
}

// HasWarnings reports whether any pass degraded on a fetch failure.
func (r *Result) HasWarnings() bool {
	for _, rep := range r.Reports {
		if len(rep.Warnings) > 0 {
			return true
		}
	}
	return false
}

// HasFailures reports whether any entity's create or delete call failed.
func (r *Result) HasFailures() bool {
	return r.Totals().Failed > 0
}

// Summary returns a human-readable one-line summary of the run.
func (r *Result) Summary() string {
	totals := r.Totals()
	var b strings.Builder
	if r.DryRun {
		b.WriteString("Dry run: ")
	} else {
		b.WriteString("Sync complete: ")
	}
	b.WriteString(totals.String())
	if r.HasWarnings() {
		var n int
		for _, rep := range r.Reports {
			n += len(rep.Warnings)
		}
		b.WriteString(fmt.Sprintf(" (%d warnings)", n))
	}
	return b.String()
}
