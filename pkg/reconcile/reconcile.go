// Package reconcile implements the engine that brings a development
// organization's configuration schema in line with production. It runs
// one pass per entity kind in a fixed dependency order, partitions each
// kind's source and target collections by natural key, creates what is
// missing, removes orphaned statuses, and translates environment-local
// activity type references through a scoped ID map.
//
// Failures are local: a fetch failure degrades one kind to empty-set
// semantics, a create or delete failure marks one entity failed. Nothing
// aborts the run once it has started.
package reconcile

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/closeops/schemasync/pkg/logging"
	"github.com/closeops/schemasync/pkg/matcher"
	"github.com/closeops/schemasync/pkg/refmap"
	"github.com/closeops/schemasync/pkg/schema"
)

// DefaultDelay is the pause after every mutating call, matching the
// Close API's request-rate expectations.
const DefaultDelay = 500 * time.Millisecond

// Reconciler drives one source→target reconciliation run.
type Reconciler struct {
	source Accessor
	target Accessor
	refs   *refmap.Map
	delay  time.Duration
	sleep  func(time.Duration)
	dryRun bool
	log    zerolog.Logger
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithDelay sets the pause inserted after every mutating call.
func WithDelay(d time.Duration) Option {
	return func(r *Reconciler) {
		r.delay = d
	}
}

// WithDryRun records would-be outcomes without issuing create or delete
// calls.
func WithDryRun(dryRun bool) Option {
	return func(r *Reconciler) {
		r.dryRun = dryRun
	}
}

// WithLogger sets the logger for per-entity progress output.
func WithLogger(log zerolog.Logger) Option {
	return func(r *Reconciler) {
		r.log = log
	}
}

// WithSleep replaces the sleep function used for rate-limit pauses.
// Tests use this to run instantly.
func WithSleep(sleep func(time.Duration)) Option {
	return func(r *Reconciler) {
		r.sleep = sleep
	}
}

// New creates a Reconciler between a source and target environment.
func New(source, target Accessor, opts ...Option) *Reconciler {
	r := &Reconciler{
		source: source,
		target: target,
		refs:   refmap.New(),
		delay:  DefaultDelay,
		sleep:  time.Sleep,
		log:    *logging.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes all passes sequentially in dependency order: activity
// types first (populating the reference map), then the custom field
// scopes, then the mirrored status lists. Mutating calls are issued one
// at a time with a fixed pause between them; there is no concurrency and
// no retry. The returned Result is the complete outcome ledger.
func (r *Reconciler) Run(ctx context.Context) *Result {
	res := newResult(r.dryRun)

	r.reconcileActivityTypes(ctx, res)
	for _, kind := range schema.CustomFieldKinds() {
		r.reconcileCustomFields(ctx, res, kind)
	}
	r.reconcileStatuses(ctx, res, schema.KindLeadStatus)
	r.reconcileStatuses(ctx, res, schema.KindOpportunityStatus)

	res.finish()
	r.log.Info().
		Str("run_id", res.RunID).
		Bool("dry_run", res.DryRun).
		Msg(res.Summary())
	return res
}

// pause waits out the rate-limit delay after a mutating call.
func (r *Reconciler) pause() {
	if r.delay > 0 {
		r.sleep(r.delay)
	}
}

// fetchWarn records a fetch failure as a pass warning. The caller
// continues with an empty collection.
func (r *Reconciler) fetchWarn(rep *KindReport, err error) {
	r.log.Warn().Err(err).Str("kind", rep.Kind.String()).Msg("fetch failed, treating collection as empty")
	rep.warn(err.Error())
}

// reconcileActivityTypes runs the activity type pass. It must complete
// before any activity custom field is considered: every mapping the
// dependent pass consults is registered here, for created entities and
// for entities already present in the target alike.
func (r *Reconciler) reconcileActivityTypes(ctx context.Context, res *Result) {
	rep := res.report(schema.KindActivityType)

	src, err := r.source.ListActivityTypes(ctx)
	if err != nil {
		r.fetchWarn(rep, err)
	}
	dst, err := r.target.ListActivityTypes(ctx)
	if err != nil {
		r.fetchWarn(rep, err)
	}

	p := matcher.Split(src, dst)

	for _, pair := range p.InBoth {
		r.refs.Register(schema.KindActivityType, pair.Source.ID, pair.Target.ID)
		rep.add(Outcome{
			Key:      pair.Source.Name,
			SourceID: pair.Source.ID,
			TargetID: pair.Target.ID,
			Type:     OutcomeSkipped,
			Reason:   ReasonAlreadyExists,
		})
	}

	for _, at := range p.OnlyInSource {
		if r.dryRun {
			// Dry runs register an empty target ID so dependent fields
			// still resolve as creatable.
			r.refs.Register(schema.KindActivityType, at.ID, "")
			rep.add(Outcome{Key: at.Name, SourceID: at.ID, Type: OutcomeCreated})
			continue
		}

		r.log.Info().Str("name", at.Name).Msg("creating custom activity type")
		created, err := r.target.CreateActivityType(ctx, at.CreatePayload())
		if err != nil {
			r.log.Error().Err(err).Str("name", at.Name).Msg("failed to create activity type")
			rep.add(Outcome{Key: at.Name, SourceID: at.ID, Type: OutcomeFailed, Error: err.Error()})
		} else {
			r.refs.Register(schema.KindActivityType, at.ID, created.ID)
			rep.add(Outcome{Key: at.Name, SourceID: at.ID, TargetID: created.ID, Type: OutcomeCreated})
		}
		r.pause()
	}

	rep.Mapping = r.refs.Mappings(schema.KindActivityType)
	r.logPass(rep)
}

// reconcileCustomFields runs one custom field scope's pass. Custom fields
// are additive-only: target-only fields may have records attached and are
// left alone.
func (r *Reconciler) reconcileCustomFields(ctx context.Context, res *Result, kind schema.Kind) {
	rep := res.report(kind)

	src, err := r.source.ListCustomFields(ctx, kind)
	if err != nil {
		r.fetchWarn(rep, err)
	}
	dst, err := r.target.ListCustomFields(ctx, kind)
	if err != nil {
		r.fetchWarn(rep, err)
	}

	p := matcher.Split(src, dst)

	for _, pair := range p.InBoth {
		rep.add(Outcome{
			Key:      pair.Source.Name,
			SourceID: pair.Source.ID,
			TargetID: pair.Target.ID,
			Type:     OutcomeSkipped,
			Reason:   ReasonAlreadyExists,
		})
	}

	for _, f := range p.OnlyInSource {
		payload := f.CreatePayload()

		if kind == schema.KindActivityCustomField {
			if f.CustomActivityTypeID == "" {
				rep.add(Outcome{Key: f.Name, SourceID: f.ID, Type: OutcomeSkipped, Reason: ReasonMissingActivityRef})
				continue
			}
			targetTypeID, ok := r.refs.Resolve(schema.KindActivityType, f.CustomActivityTypeID)
			if !ok {
				r.log.Warn().Str("name", f.Name).Str("activity_type_id", f.CustomActivityTypeID).
					Msg("skipping field with unmapped activity type")
				rep.add(Outcome{Key: f.Name, SourceID: f.ID, Type: OutcomeSkipped, Reason: ReasonUnmappedActivity})
				continue
			}
			payload.CustomActivityTypeID = targetTypeID
		}

		if r.dryRun {
			rep.add(Outcome{Key: f.Name, SourceID: f.ID, Type: OutcomeCreated})
			continue
		}

		r.log.Info().Str("kind", kind.String()).Str("name", f.Name).Msg("creating custom field")
		created, err := r.target.CreateCustomField(ctx, kind, payload)
		if err != nil {
			r.log.Error().Err(err).Str("name", f.Name).Msg("failed to create custom field")
			rep.add(Outcome{Key: f.Name, SourceID: f.ID, Type: OutcomeFailed, Error: err.Error()})
		} else {
			rep.add(Outcome{Key: f.Name, SourceID: f.ID, TargetID: created.ID, Type: OutcomeCreated})
		}
		r.pause()
	}

	r.logPass(rep)
}

// reconcileStatuses runs one mirrored status list's pass: create what the
// target is missing, then delete what production no longer has. A fetch
// failure on either side skips the whole pass; deleting against an
// unknown target set is never safe.
func (r *Reconciler) reconcileStatuses(ctx context.Context, res *Result, kind schema.Kind) {
	rep := res.report(kind)

	src, err := r.source.ListStatuses(ctx, kind)
	if err != nil {
		r.fetchWarn(rep, err)
		return
	}
	dst, err := r.target.ListStatuses(ctx, kind)
	if err != nil {
		r.fetchWarn(rep, err)
		return
	}

	p := matcher.Split(src, dst)

	for _, pair := range p.InBoth {
		rep.add(Outcome{
			Key:      pair.Source.Label,
			SourceID: pair.Source.ID,
			TargetID: pair.Target.ID,
			Type:     OutcomeSkipped,
			Reason:   ReasonAlreadyExists,
		})
	}

	for _, s := range p.OnlyInSource {
		if r.dryRun {
			rep.add(Outcome{Key: s.Label, SourceID: s.ID, Type: OutcomeCreated})
			continue
		}

		r.log.Info().Str("kind", kind.String()).Str("label", s.Label).Msg("creating status")
		created, err := r.target.CreateStatus(ctx, kind, s.CreatePayload(kind))
		if err != nil {
			r.log.Error().Err(err).Str("label", s.Label).Msg("failed to create status")
			rep.add(Outcome{Key: s.Label, SourceID: s.ID, Type: OutcomeFailed, Error: err.Error()})
		} else {
			rep.add(Outcome{Key: s.Label, SourceID: s.ID, TargetID: created.ID, Type: OutcomeCreated})
		}
		r.pause()
	}

	for _, s := range p.OnlyInTarget {
		if r.dryRun {
			rep.add(Outcome{Key: s.Label, TargetID: s.ID, Type: OutcomeRemoved})
			continue
		}

		r.log.Info().Str("kind", kind.String()).Str("label", s.Label).Msg("removing status")
		if err := r.target.DeleteStatus(ctx, kind, s.ID); err != nil {
			r.log.Error().Err(err).Str("label", s.Label).Msg("failed to remove status")
			rep.add(Outcome{Key: s.Label, TargetID: s.ID, Type: OutcomeFailed, Error: err.Error()})
		} else {
			rep.add(Outcome{Key: s.Label, TargetID: s.ID, Type: OutcomeRemoved})
		}
		r.pause()
	}

	r.logPass(rep)
}

// logPass emits the per-kind aggregate counts at the end of a pass.
func (r *Reconciler) logPass(rep *KindReport) {
	counts := rep.Counts()
	r.log.Info().
		Str("kind", rep.Kind.String()).
		Int("created", counts.Created).
		Int("skipped", counts.Skipped).
		Int("removed", counts.Removed).
		Int("failed", counts.Failed).
		Msg("pass complete")
}
