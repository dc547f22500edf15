package schema

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindPaths(t *testing.T) {
	tests := []struct {
		kind Kind
		path string
	}{
		{KindLeadCustomField, "custom_field/lead/"},
		{KindContactCustomField, "custom_field/contact/"},
		{KindOpportunityCustomField, "custom_field/opportunity/"},
		{KindActivityCustomField, "custom_field/activity/"},
		{KindSharedCustomField, "custom_field/shared/"},
		{KindActivityType, "custom_activity/"},
		{KindLeadStatus, "status/lead/"},
		{KindOpportunityStatus, "status/opportunity/"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.path, tt.kind.Path())
		})
	}
}

func TestKindsDependencyOrder(t *testing.T) {
	kinds := Kinds()
	require.Len(t, kinds, 8)

	typeIdx, fieldIdx := -1, -1
	for i, k := range kinds {
		switch k {
		case KindActivityType:
			typeIdx = i
		case KindActivityCustomField:
			fieldIdx = i
		}
	}
	require.NotEqual(t, -1, typeIdx)
	require.NotEqual(t, -1, fieldIdx)

	// Activity types must be reconciled before the fields that reference them.
	assert.Less(t, typeIdx, fieldIdx)
}

func TestMirroredKinds(t *testing.T) {
	assert.True(t, KindLeadStatus.Mirrored())
	assert.True(t, KindOpportunityStatus.Mirrored())
	assert.False(t, KindActivityType.Mirrored())
	for _, k := range CustomFieldKinds() {
		assert.False(t, k.Mirrored(), "custom field kinds are additive-only")
	}
}

func TestCustomFieldCreatePayloadOmitsAbsentAttributes(t *testing.T) {
	f := CustomField{
		ID:   "cf_prod_1",
		Name: "Region",
		Type: "choices",
	}

	body, err := json.Marshal(f.CreatePayload())
	require.NoError(t, err)

	s := string(body)
	assert.Contains(t, s, `"name":"Region"`)
	assert.Contains(t, s, `"type":"choices"`)
	for _, key := range []string{"description", "choices", "required",
		"accepts_multiple_values", "editable_with_roles",
		"referenced_custom_type_id", "back_reference_is_visible"} {
		assert.NotContains(t, s, key, "absent attributes must be omitted, not sent empty")
	}
}

func TestCustomFieldCreatePayloadCarriesExplicitFalseBackReference(t *testing.T) {
	hidden := false
	f := CustomField{
		ID:                     "cf_prod_2",
		Name:                   "Account",
		Type:                   "custom_object",
		ReferencedCustomTypeID: "cot_prod_9",
		BackReferenceIsVisible: &hidden,
	}

	body, err := json.Marshal(f.CreatePayload())
	require.NoError(t, err)

	// Explicit false is meaningful to the backend and must survive.
	assert.Contains(t, string(body), `"back_reference_is_visible":false`)
	assert.Contains(t, string(body), `"referenced_custom_type_id":"cot_prod_9"`)
}

func TestCustomFieldCreatePayloadNeverCopiesActivityTypeID(t *testing.T) {
	f := CustomField{
		ID:                   "cf_prod_3",
		Name:                 "Call Outcome",
		Type:                 "text",
		CustomActivityTypeID: "actitype_prod_1",
	}

	p := f.CreatePayload()
	assert.Empty(t, p.CustomActivityTypeID,
		"environment-local activity type IDs must be translated, never copied")

	body, err := json.Marshal(p)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(body), "actitype_prod_1"))
}

func TestActivityTypeCreatePayloadTriState(t *testing.T) {
	plain := ActivityType{ID: "at_1", Name: "Call"}
	body, err := json.Marshal(plain.CreatePayload())
	require.NoError(t, err)
	assert.NotContains(t, string(body), "api_create_only")

	off := false
	explicit := ActivityType{ID: "at_2", Name: "Meeting", APICreateOnly: &off}
	body, err = json.Marshal(explicit.CreatePayload())
	require.NoError(t, err)
	assert.Contains(t, string(body), `"api_create_only":false`)
}

func TestStatusCreatePayload(t *testing.T) {
	lead := Status{ID: "stat_1", Label: "Qualified"}
	p := lead.CreatePayload(KindLeadStatus)
	assert.Equal(t, StatusPayload{Label: "Qualified"}, p)

	opp := Status{ID: "stat_2", Label: "Won", Type: "won"}
	p = opp.CreatePayload(KindOpportunityStatus)
	assert.Equal(t, StatusPayload{Label: "Won", Type: "won"}, p)

	// Opportunity statuses default to active when the source omits the type.
	untyped := Status{ID: "stat_3", Label: "Negotiating"}
	p = untyped.CreatePayload(KindOpportunityStatus)
	assert.Equal(t, StatusTypeActive, p.Type)

	body, err := json.Marshal(lead.CreatePayload(KindLeadStatus))
	require.NoError(t, err)
	assert.NotContains(t, string(body), "type", "lead status payloads carry only the label")
}
