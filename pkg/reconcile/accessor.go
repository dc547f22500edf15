package reconcile

import (
	"context"

	"github.com/closeops/schemasync/pkg/schema"
)

// Accessor is the remote collection capability the reconciler drives for
// one environment: list, create, and delete against the configuration
// resources of a single Close organization. There is intentionally no
// update operation; entities present in both environments are never
// reconciled attribute-by-attribute.
//
// internal/closeapi provides the production implementation; tests supply
// in-memory fakes.
type Accessor interface {
	ListCustomFields(ctx context.Context, kind schema.Kind) ([]schema.CustomField, error)
	ListActivityTypes(ctx context.Context) ([]schema.ActivityType, error)
	ListStatuses(ctx context.Context, kind schema.Kind) ([]schema.Status, error)

	CreateCustomField(ctx context.Context, kind schema.Kind, p schema.CustomFieldPayload) (schema.CustomField, error)
	CreateActivityType(ctx context.Context, p schema.ActivityTypePayload) (schema.ActivityType, error)
	CreateStatus(ctx context.Context, kind schema.Kind, p schema.StatusPayload) (schema.Status, error)

	DeleteStatus(ctx context.Context, kind schema.Kind, id string) error
}
