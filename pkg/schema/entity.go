package schema

// Entity is implemented by every configuration record schemasync handles.
// EntityID returns the environment-local opaque ID; IDs are stable within
// one environment and never comparable across environments. Key returns
// the natural key used to match entities across environments: name for
// custom fields and activity types, label for statuses. Matching is
// case-sensitive and exact.
type Entity interface {
	EntityID() string
	Key() string
}

// ListResponse is the Close API list envelope.
type ListResponse[T any] struct {
	Data    []T  `json:"data"`
	HasMore bool `json:"has_more"`
}

// CustomField represents a custom field definition as fetched from the
// Close API. Fetched entities are read-only; creation payloads are
// synthesized with CreatePayload.
type CustomField struct {
	ID                     string   `json:"id"`
	Name                   string   `json:"name"`
	Type                   string   `json:"type"`
	Description            string   `json:"description,omitempty"`
	Choices                []string `json:"choices,omitempty"`
	AcceptsMultipleValues  bool     `json:"accepts_multiple_values,omitempty"`
	Required               bool     `json:"required,omitempty"`
	EditableWithRoles      []string `json:"editable_with_roles,omitempty"`
	ReferencedCustomTypeID string   `json:"referenced_custom_type_id,omitempty"`
	BackReferenceIsVisible *bool    `json:"back_reference_is_visible,omitempty"`
	CustomActivityTypeID   string   `json:"custom_activity_type_id,omitempty"`
}

// EntityID implements Entity.
func (f CustomField) EntityID() string { return f.ID }

// Key implements Entity. Custom fields match by name.
func (f CustomField) Key() string { return f.Name }

// CustomFieldPayload is the body for a custom field creation call.
// Optional attributes use omitempty (pointers where the backend treats
// explicit false differently from absent) so attributes the source never
// set are omitted from the request, not sent as null or empty.
type CustomFieldPayload struct {
	Name                   string   `json:"name"`
	Type                   string   `json:"type"`
	Description            string   `json:"description,omitempty"`
	Choices                []string `json:"choices,omitempty"`
	AcceptsMultipleValues  bool     `json:"accepts_multiple_values,omitempty"`
	Required               bool     `json:"required,omitempty"`
	EditableWithRoles      []string `json:"editable_with_roles,omitempty"`
	ReferencedCustomTypeID string   `json:"referenced_custom_type_id,omitempty"`
	BackReferenceIsVisible *bool    `json:"back_reference_is_visible,omitempty"`
	CustomActivityTypeID   string   `json:"custom_activity_type_id,omitempty"`
}

// CreatePayload synthesizes a creation payload from a fetched field,
// copying optional attributes only when present. CustomActivityTypeID is
// deliberately NOT copied: it is an environment-local foreign key and must
// be translated through the activity type reference map by the caller.
func (f CustomField) CreatePayload() CustomFieldPayload {
	return CustomFieldPayload{
		Name:                   f.Name,
		Type:                   f.Type,
		Description:            f.Description,
		Choices:                f.Choices,
		AcceptsMultipleValues:  f.AcceptsMultipleValues,
		Required:               f.Required,
		EditableWithRoles:      f.EditableWithRoles,
		ReferencedCustomTypeID: f.ReferencedCustomTypeID,
		BackReferenceIsVisible: f.BackReferenceIsVisible,
	}
}

// ActivityType represents a custom activity type as fetched from the
// Close API. Activity types are referenced by activity-scoped custom
// fields, which makes them the reference target of the only cross-kind
// dependency in the system.
type ActivityType struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Description       string   `json:"description,omitempty"`
	APICreateOnly     *bool    `json:"api_create_only,omitempty"`
	EditableWithRoles []string `json:"editable_with_roles,omitempty"`
}

// EntityID implements Entity.
func (a ActivityType) EntityID() string { return a.ID }

// Key implements Entity. Activity types match by name.
func (a ActivityType) Key() string { return a.Name }

// ActivityTypePayload is the body for an activity type creation call.
type ActivityTypePayload struct {
	Name              string   `json:"name"`
	Description       string   `json:"description,omitempty"`
	APICreateOnly     *bool    `json:"api_create_only,omitempty"`
	EditableWithRoles []string `json:"editable_with_roles,omitempty"`
}

// CreatePayload synthesizes a creation payload from a fetched activity
// type, copying optional attributes only when present. APICreateOnly is a
// tri-state: an explicit false is carried, an absent value is omitted.
func (a ActivityType) CreatePayload() ActivityTypePayload {
	return ActivityTypePayload{
		Name:              a.Name,
		Description:       a.Description,
		APICreateOnly:     a.APICreateOnly,
		EditableWithRoles: a.EditableWithRoles,
	}
}

// StatusTypeActive is the default opportunity status type applied when the
// source omits one.
const StatusTypeActive = "active"

// Status represents a lead or opportunity status. Type is only populated
// for opportunity statuses (active, won, lost).
type Status struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type,omitempty"`
}

// EntityID implements Entity.
func (s Status) EntityID() string { return s.ID }

// Key implements Entity. Statuses match by label.
func (s Status) Key() string { return s.Label }

// StatusPayload is the body for a status creation call.
type StatusPayload struct {
	Label string `json:"label"`
	Type  string `json:"type,omitempty"`
}

// CreatePayload synthesizes a creation payload from a fetched status.
// Lead statuses carry only the label; opportunity statuses also carry the
// status type, defaulting to active when the source omits it.
func (s Status) CreatePayload(kind Kind) StatusPayload {
	p := StatusPayload{Label: s.Label}
	if kind == KindOpportunityStatus {
		p.Type = s.Type
		if p.Type == "" {
			p.Type = StatusTypeActive
		}
	}
	return p
}
