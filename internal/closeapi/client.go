// Package closeapi provides a typed accessor over the Close CRM
// configuration endpoints consumed by schemasync: custom field scopes,
// custom activity types, and lead/opportunity status lists. The accessor
// deliberately exposes list, create, and delete only; reconciliation is
// create-or-skip by design, so no update call exists.
package closeapi

import (
	"context"

	"github.com/closeops/schemasync/internal/transport"
	"github.com/closeops/schemasync/pkg/errors"
	"github.com/closeops/schemasync/pkg/logging"
	"github.com/closeops/schemasync/pkg/schema"
)

// Client accesses the configuration resources of one Close organization.
type Client struct {
	transport *transport.Client
	env       string
}

// New creates a client for one environment. env labels the organization
// in logs and errors ("production", "development").
func New(env, apiKey string, opts ...transport.Option) *Client {
	return &Client{
		transport: transport.New(env, apiKey, opts...),
		env:       env,
	}
}

// Env returns the environment label this client is bound to.
func (c *Client) Env() string {
	return c.env
}

// list fetches one kind's collection and decodes the standard Close list
// envelope. Zero entities is an empty slice, not an error.
func list[T any](ctx context.Context, c *Client, kind schema.Kind) ([]T, error) {
	resp, err := c.transport.Get(ctx, kind.Path())
	if err != nil {
		return nil, errors.WrapFetch(kind.String(), c.env, err)
	}

	var envelope schema.ListResponse[T]
	if err := transport.DecodeResponse(c.env, resp, &envelope); err != nil {
		return nil, errors.WrapFetch(kind.String(), c.env, err)
	}

	if envelope.HasMore {
		// Single-page fetch mirrors the Close config endpoints' behavior
		// for realistic org sizes; a truncated collection is surfaced
		// rather than silently partial.
		logging.Ctx(ctx).Warn().
			Str("env", c.env).
			Str("kind", kind.String()).
			Msg("collection reports more pages than fetched")
	}

	return envelope.Data, nil
}

// ListCustomFields fetches all custom fields of one scope kind.
func (c *Client) ListCustomFields(ctx context.Context, kind schema.Kind) ([]schema.CustomField, error) {
	if !kind.IsCustomField() {
		return nil, &errors.ValidationError{Field: "kind", Message: "not a custom field kind: " + kind.String()}
	}
	return list[schema.CustomField](ctx, c, kind)
}

// ListActivityTypes fetches all custom activity types.
func (c *Client) ListActivityTypes(ctx context.Context) ([]schema.ActivityType, error) {
	return list[schema.ActivityType](ctx, c, schema.KindActivityType)
}

// ListStatuses fetches a lead or opportunity status list.
func (c *Client) ListStatuses(ctx context.Context, kind schema.Kind) ([]schema.Status, error) {
	if !kind.IsStatus() {
		return nil, &errors.ValidationError{Field: "kind", Message: "not a status kind: " + kind.String()}
	}
	return list[schema.Status](ctx, c, kind)
}

// CreateCustomField creates a custom field in this organization and
// returns the created record with its new environment-local ID.
func (c *Client) CreateCustomField(ctx context.Context, kind schema.Kind, p schema.CustomFieldPayload) (schema.CustomField, error) {
	var created schema.CustomField
	if !kind.IsCustomField() {
		return created, &errors.ValidationError{Field: "kind", Message: "not a custom field kind: " + kind.String()}
	}
	resp, err := c.transport.Post(ctx, kind.Path(), p)
	if err != nil {
		return created, err
	}
	if err := transport.DecodeResponse(c.env, resp, &created); err != nil {
		return created, err
	}
	return created, nil
}

// CreateActivityType creates a custom activity type in this organization.
func (c *Client) CreateActivityType(ctx context.Context, p schema.ActivityTypePayload) (schema.ActivityType, error) {
	var created schema.ActivityType
	resp, err := c.transport.Post(ctx, schema.KindActivityType.Path(), p)
	if err != nil {
		return created, err
	}
	if err := transport.DecodeResponse(c.env, resp, &created); err != nil {
		return created, err
	}
	return created, nil
}

// CreateStatus creates a lead or opportunity status in this organization.
func (c *Client) CreateStatus(ctx context.Context, kind schema.Kind, p schema.StatusPayload) (schema.Status, error) {
	var created schema.Status
	if !kind.IsStatus() {
		return created, &errors.ValidationError{Field: "kind", Message: "not a status kind: " + kind.String()}
	}
	resp, err := c.transport.Post(ctx, kind.Path(), p)
	if err != nil {
		return created, err
	}
	if err := transport.DecodeResponse(c.env, resp, &created); err != nil {
		return created, err
	}
	return created, nil
}

// DeleteStatus removes a status by its environment-local ID.
func (c *Client) DeleteStatus(ctx context.Context, kind schema.Kind, id string) error {
	if !kind.IsStatus() {
		return &errors.ValidationError{Field: "kind", Message: "not a status kind: " + kind.String()}
	}
	resp, err := c.transport.Delete(ctx, kind.Path()+id+"/")
	if err != nil {
		return err
	}
	return transport.DecodeResponse(c.env, resp, nil)
}
