package report

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/closeops/schemasync/pkg/logging"
	"github.com/closeops/schemasync/pkg/schema"
)

type stubAccessor struct {
	statuses []schema.Status
	err      error
}

func (s *stubAccessor) ListCustomFields(context.Context, schema.Kind) ([]schema.CustomField, error) {
	return nil, s.err
}

func (s *stubAccessor) ListActivityTypes(context.Context) ([]schema.ActivityType, error) {
	return nil, s.err
}

func (s *stubAccessor) ListStatuses(context.Context, schema.Kind) ([]schema.Status, error) {
	return s.statuses, s.err
}

func (s *stubAccessor) CreateCustomField(context.Context, schema.Kind, schema.CustomFieldPayload) (schema.CustomField, error) {
	return schema.CustomField{}, nil
}

func (s *stubAccessor) CreateActivityType(context.Context, schema.ActivityTypePayload) (schema.ActivityType, error) {
	return schema.ActivityType{}, nil
}

func (s *stubAccessor) CreateStatus(context.Context, schema.Kind, schema.StatusPayload) (schema.Status, error) {
	return schema.Status{}, nil
}

func (s *stubAccessor) DeleteStatus(context.Context, schema.Kind, string) error {
	return nil
}

func TestSnapshotterPersistsFetchedCollections(t *testing.T) {
	w := NewWriter(t.TempDir())
	inner := &stubAccessor{statuses: []schema.Status{{ID: "s_1", Label: "New"}}}
	s := NewSnapshotter(inner, w, logging.Nop)

	got, err := s.ListStatuses(context.Background(), schema.KindLeadStatus)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = os.Stat(w.SnapshotPath(schema.KindLeadStatus))
	assert.NoError(t, err)
}

func TestSnapshotterSkipsFailedFetches(t *testing.T) {
	w := NewWriter(t.TempDir())
	inner := &stubAccessor{err: os.ErrDeadlineExceeded}
	s := NewSnapshotter(inner, w, logging.Nop)

	_, err := s.ListActivityTypes(context.Background())
	require.Error(t, err)

	_, statErr := os.Stat(w.SnapshotPath(schema.KindActivityType))
	assert.True(t, os.IsNotExist(statErr))
}
