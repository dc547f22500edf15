package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/closeops/schemasync/pkg/reconcile"
	"github.com/closeops/schemasync/pkg/schema"
)

func TestParseFormat(t *testing.T) {
	for _, valid := range []string{"table", "JSON", "yaml", ""} {
		_, err := ParseFormat(valid)
		assert.NoError(t, err, valid)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestKindTitle(t *testing.T) {
	assert.Equal(t, "Lead Custom Field", KindTitle(schema.KindLeadCustomField))
	assert.Equal(t, "Activity Type", KindTitle(schema.KindActivityType))
}

func TestJSONFormatterRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatJSON)

	require.NoError(t, f.Format(&buf, []schema.Status{{ID: "s_1", Label: "New"}}))

	var got []schema.Status
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "New", got[0].Label)
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatYAML)

	require.NoError(t, f.Format(&buf, map[string]string{"label": "New"}))
	assert.Contains(t, buf.String(), "label: New")
}

func TestTableFormatterResult(t *testing.T) {
	res := &reconcile.Result{
		Reports: []*reconcile.KindReport{
			{
				Kind: schema.KindLeadStatus,
				Outcomes: []reconcile.Outcome{
					{Key: "New", Type: reconcile.OutcomeCreated},
					{Key: "Old", Type: reconcile.OutcomeRemoved},
				},
				Warnings: []string{"fetch degraded"},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, res))

	out := buf.String()
	assert.Contains(t, out, "Lead Status")
	assert.Contains(t, out, "Total")
	assert.Contains(t, out, "1 created")
	assert.Contains(t, out, "warning: lead_status: fetch degraded")
}

func TestTableFormatterSnapshots(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatTable)

	fields := []schema.CustomField{{ID: "cf_1", Name: "Priority", Type: "choices"}}
	require.NoError(t, f.Format(&buf, fields))
	assert.Contains(t, buf.String(), "Priority")

	buf.Reset()
	require.NoError(t, f.Format(&buf, []schema.ActivityType{{ID: "at_1", Name: "Call"}}))
	assert.Contains(t, buf.String(), "Call")
}

func TestTableFormatterFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, map[string]int{"n": 1}))
	assert.True(t, strings.Contains(buf.String(), `"n": 1`))
}
