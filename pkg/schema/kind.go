// Package schema defines the Close CRM configuration entities that
// schemasync reconciles between organizations: custom fields, custom
// activity types, and lead/opportunity status lists.
package schema

// Kind identifies one type of configuration entity being reconciled.
type Kind string

// All reconciled entity kinds.
const (
	KindLeadCustomField        Kind = "lead_custom_field"
	KindContactCustomField     Kind = "contact_custom_field"
	KindOpportunityCustomField Kind = "opportunity_custom_field"
	KindActivityCustomField    Kind = "activity_custom_field"
	KindSharedCustomField      Kind = "shared_custom_field"
	KindActivityType           Kind = "activity_type"
	KindLeadStatus             Kind = "lead_status"
	KindOpportunityStatus      Kind = "opportunity_status"
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	return string(k)
}

// Path returns the Close API resource path for the kind's collection.
func (k Kind) Path() string {
	switch k {
	case KindLeadCustomField:
		return "custom_field/lead/"
	case KindContactCustomField:
		return "custom_field/contact/"
	case KindOpportunityCustomField:
		return "custom_field/opportunity/"
	case KindActivityCustomField:
		return "custom_field/activity/"
	case KindSharedCustomField:
		return "custom_field/shared/"
	case KindActivityType:
		return "custom_activity/"
	case KindLeadStatus:
		return "status/lead/"
	case KindOpportunityStatus:
		return "status/opportunity/"
	}
	return ""
}

// IsCustomField reports whether the kind is one of the custom field scopes.
func (k Kind) IsCustomField() bool {
	switch k {
	case KindLeadCustomField, KindContactCustomField, KindOpportunityCustomField,
		KindActivityCustomField, KindSharedCustomField:
		return true
	}
	return false
}

// IsStatus reports whether the kind is a status list.
func (k Kind) IsStatus() bool {
	return k == KindLeadStatus || k == KindOpportunityStatus
}

// Mirrored reports whether the kind's target membership must mirror the
// source exactly. Statuses are a closed enumerated list, so target-only
// entries are removed; custom fields and activity types are additive-only
// because target-side records may already reference them.
func (k Kind) Mirrored() bool {
	return k.IsStatus()
}

// Kinds returns all kinds in reconciliation dependency order: activity
// types strictly before activity custom fields, statuses last.
func Kinds() []Kind {
	return []Kind{
		KindActivityType,
		KindLeadCustomField,
		KindContactCustomField,
		KindOpportunityCustomField,
		KindActivityCustomField,
		KindSharedCustomField,
		KindLeadStatus,
		KindOpportunityStatus,
	}
}

// CustomFieldKinds returns the custom field kinds in reconciliation order.
func CustomFieldKinds() []Kind {
	return []Kind{
		KindLeadCustomField,
		KindContactCustomField,
		KindOpportunityCustomField,
		KindActivityCustomField,
		KindSharedCustomField,
	}
}
