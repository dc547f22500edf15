package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/closeops/schemasync/internal/closeapi"
	"github.com/closeops/schemasync/internal/config"
	"github.com/closeops/schemasync/internal/report"
	"github.com/closeops/schemasync/pkg/errors"
	"github.com/closeops/schemasync/pkg/schema"
)

var fetchNoSave bool

// fetchCmd represents the fetch command.
var fetchCmd = &cobra.Command{
	Use:   "fetch [kind...]",
	Short: "Fetch configuration collections from the production organization",
	Long: `Fetch downloads the production organization's configuration
collections and writes each one as a JSON snapshot under the data
directory. With no arguments every kind is fetched; otherwise only the
named kinds are.

Known kinds:
  lead_custom_field, contact_custom_field, opportunity_custom_field,
  activity_custom_field, shared_custom_field, activity_type,
  lead_status, opportunity_status`,
	Example: `  schemasync fetch
  schemasync fetch lead_custom_field
  schemasync fetch activity_type lead_status -o json`,
	Args: cobra.ArbitraryArgs,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().BoolVar(&fetchNoSave, "no-save", false, "print collections without writing snapshot files")
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	if cfg.ProductionAPIKey == "" {
		return errors.NewAuthenticationError("production", config.EnvProductionKey+" not set")
	}

	kinds, err := resolveKinds(args)
	if err != nil {
		return err
	}

	client := newClient("production", cfg.ProductionAPIKey, cfg)
	writer := report.NewWriter(cfg.OutputDir)
	f := formatter()

	for _, kind := range kinds {
		collection, err := fetchKind(cmd.Context(), client, kind)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			continue
		}

		if !fetchNoSave {
			if err := saveSnapshot(writer, kind, collection); err != nil {
				return err
			}
			fmt.Printf("Saved %s\n", writer.SnapshotPath(kind))
		}
		if err := f.Format(os.Stdout, collection); err != nil {
			return err
		}
	}

	return nil
}

// resolveKinds maps command arguments to kinds, defaulting to all of
// them in dependency order.
func resolveKinds(args []string) ([]schema.Kind, error) {
	if len(args) == 0 {
		return schema.Kinds(), nil
	}

	known := make(map[schema.Kind]bool)
	for _, k := range schema.Kinds() {
		known[k] = true
	}

	kinds := make([]schema.Kind, 0, len(args))
	for _, arg := range args {
		kind := schema.Kind(arg)
		if !known[kind] {
			return nil, fmt.Errorf("unknown kind %q", arg)
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

func fetchKind(ctx context.Context, client *closeapi.Client, kind schema.Kind) (any, error) {
	switch {
	case kind.IsCustomField():
		return client.ListCustomFields(ctx, kind)
	case kind.IsStatus():
		return client.ListStatuses(ctx, kind)
	default:
		return client.ListActivityTypes(ctx)
	}
}

func saveSnapshot(w *report.Writer, kind schema.Kind, collection any) error {
	return w.WriteSnapshot(kind, collection)
}
