package report

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/closeops/schemasync/pkg/reconcile"
	"github.com/closeops/schemasync/pkg/schema"
)

// Snapshotter wraps an Accessor and persists every successfully fetched
// collection as a snapshot artifact. Wrapped around the production
// accessor, a sync run leaves behind the exact collections it reconciled
// from. Snapshot write failures are logged, never propagated; artifact
// persistence must not fail a run.
type Snapshotter struct {
	inner  reconcile.Accessor
	writer *Writer
	log    zerolog.Logger
}

// NewSnapshotter wraps inner so its list results are persisted via w.
func NewSnapshotter(inner reconcile.Accessor, w *Writer, log zerolog.Logger) *Snapshotter {
	return &Snapshotter{inner: inner, writer: w, log: log}
}

func (s *Snapshotter) snapshot(kind schema.Kind, collection any) {
	if err := s.writer.WriteSnapshot(kind, collection); err != nil {
		s.log.Warn().Err(err).Str("kind", kind.String()).Msg("failed to write snapshot")
	}
}

// ListCustomFields implements reconcile.Accessor.
func (s *Snapshotter) ListCustomFields(ctx context.Context, kind schema.Kind) ([]schema.CustomField, error) {
	fields, err := s.inner.ListCustomFields(ctx, kind)
	if err != nil {
		return nil, err
	}
	s.snapshot(kind, fields)
	return fields, nil
}

// ListActivityTypes implements reconcile.Accessor.
func (s *Snapshotter) ListActivityTypes(ctx context.Context) ([]schema.ActivityType, error) {
	types, err := s.inner.ListActivityTypes(ctx)
	if err != nil {
		return nil, err
	}
	s.snapshot(schema.KindActivityType, types)
	return types, nil
}

// ListStatuses implements reconcile.Accessor.
func (s *Snapshotter) ListStatuses(ctx context.Context, kind schema.Kind) ([]schema.Status, error) {
	statuses, err := s.inner.ListStatuses(ctx, kind)
	if err != nil {
		return nil, err
	}
	s.snapshot(kind, statuses)
	return statuses, nil
}

// CreateCustomField implements reconcile.Accessor.
func (s *Snapshotter) CreateCustomField(ctx context.Context, kind schema.Kind, p schema.CustomFieldPayload) (schema.CustomField, error) {
	return s.inner.CreateCustomField(ctx, kind, p)
}

// CreateActivityType implements reconcile.Accessor.
func (s *Snapshotter) CreateActivityType(ctx context.Context, p schema.ActivityTypePayload) (schema.ActivityType, error) {
	return s.inner.CreateActivityType(ctx, p)
}

// CreateStatus implements reconcile.Accessor.
func (s *Snapshotter) CreateStatus(ctx context.Context, kind schema.Kind, p schema.StatusPayload) (schema.Status, error) {
	return s.inner.CreateStatus(ctx, kind, p)
}

// DeleteStatus implements reconcile.Accessor.
func (s *Snapshotter) DeleteStatus(ctx context.Context, kind schema.Kind, id string) error {
	return s.inner.DeleteStatus(ctx, kind, id)
}
