// Package output provides formatters for command output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/closeops/schemasync/pkg/reconcile"
	"github.com/closeops/schemasync/pkg/schema"
)

// Format types for output.
type Format string

const (
	// FormatTable represents table output format.
	FormatTable Format = "table"
	// FormatJSON represents JSON output format.
	FormatJSON Format = "json"
	// FormatYAML represents YAML output format.
	FormatYAML Format = "yaml"
)

// Formatter interface for all output types.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// NewFormatter creates the appropriate formatter for a format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return &TableFormatter{}
	}
}

// JSONFormatter outputs JSON format.
type JSONFormatter struct {
	Indent string
}

// Format implements the Formatter interface for JSON output.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	if f.Indent != "" {
		encoder.SetIndent("", f.Indent)
	}
	return encoder.Encode(data)
}

// YAMLFormatter outputs YAML format.
type YAMLFormatter struct{}

// Format outputs data in YAML format.
func (f *YAMLFormatter) Format(w io.Writer, data any) error {
	yamlData, err := yaml.MarshalWithOptions(data,
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return err
	}
	_, err = w.Write(yamlData)
	return err
}

// TableFormatter renders run results and snapshots as terminal tables.
// Data it has no table shape for falls back to JSON.
type TableFormatter struct{}

// Format outputs data in table format.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	switch v := data.(type) {
	case *reconcile.Result:
		return f.formatResult(w, v)
	case Data:
		return f.render(w, v)
	case []schema.CustomField:
		return f.render(w, customFieldTable(v))
	case []schema.ActivityType:
		return f.render(w, activityTypeTable(v))
	case []schema.Status:
		return f.render(w, statusTable(v))
	default:
		jsonFormatter := &JSONFormatter{Indent: "  "}
		return jsonFormatter.Format(w, data)
	}
}

// formatResult renders the per-kind outcome counts with a totals row,
// followed by any fetch warnings.
func (f *TableFormatter) formatResult(w io.Writer, res *reconcile.Result) error {
	data := Data{
		Headers: []string{"Kind", "Created", "Skipped", "Removed", "Failed"},
	}
	for _, rep := range res.Reports {
		c := rep.Counts()
		removed := "-"
		if rep.Kind.Mirrored() {
			removed = strconv.Itoa(c.Removed)
		}
		data.Rows = append(data.Rows, []string{
			KindTitle(rep.Kind),
			strconv.Itoa(c.Created),
			strconv.Itoa(c.Skipped),
			removed,
			strconv.Itoa(c.Failed),
		})
	}
	totals := res.Totals()
	data.Rows = append(data.Rows, []string{
		"Total",
		strconv.Itoa(totals.Created),
		strconv.Itoa(totals.Skipped),
		strconv.Itoa(totals.Removed),
		strconv.Itoa(totals.Failed),
	})

	if err := f.render(w, data); err != nil {
		return err
	}

	fmt.Fprintln(w, res.Summary())
	for _, rep := range res.Reports {
		for _, warning := range rep.Warnings {
			fmt.Fprintf(w, "warning: %s: %s\n", rep.Kind, warning)
		}
	}
	return nil
}

func (f *TableFormatter) render(w io.Writer, data Data) error {
	table := tablewriter.NewTable(w)

	if len(data.Headers) > 0 {
		headers := make([]any, len(data.Headers))
		for i, h := range data.Headers {
			headers[i] = h
		}
		table.Header(headers...)
	}

	for _, row := range data.Rows {
		rowData := make([]any, len(row))
		for i, cell := range row {
			rowData[i] = cell
		}
		if err := table.Append(rowData...); err != nil {
			return err
		}
	}

	return table.Render()
}

// Data represents data formatted for table output.
type Data struct {
	Headers []string
	Rows    [][]string
}

func customFieldTable(fields []schema.CustomField) Data {
	data := Data{Headers: []string{"ID", "Name", "Type", "Activity Type"}}
	for _, f := range fields {
		data.Rows = append(data.Rows, []string{f.ID, f.Name, f.Type, f.CustomActivityTypeID})
	}
	return data
}

func activityTypeTable(types []schema.ActivityType) Data {
	data := Data{Headers: []string{"ID", "Name"}}
	for _, at := range types {
		data.Rows = append(data.Rows, []string{at.ID, at.Name})
	}
	return data
}

func statusTable(statuses []schema.Status) Data {
	data := Data{Headers: []string{"ID", "Label", "Type"}}
	for _, s := range statuses {
		data.Rows = append(data.Rows, []string{s.ID, s.Label, s.Type})
	}
	return data
}

// KindTitle renders a kind identifier as a display title, e.g.
// "lead_custom_field" becomes "Lead Custom Field".
func KindTitle(kind schema.Kind) string {
	caser := cases.Title(language.English)
	return caser.String(strings.ReplaceAll(kind.String(), "_", " "))
}

// DetectFormat auto-detects format based on terminal and environment.
func DetectFormat(explicitFormat string) Format {
	if explicitFormat != "" {
		return Format(strings.ToLower(explicitFormat))
	}

	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return FormatTable
	}

	// Default to JSON for pipes/redirects
	return FormatJSON
}

// ParseFormat converts string to Format with validation.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(s))
	switch format {
	case FormatTable, FormatJSON, FormatYAML, "":
		return format, nil
	default:
		return "", fmt.Errorf("invalid format %q: must be one of: table, json, yaml", s)
	}
}
