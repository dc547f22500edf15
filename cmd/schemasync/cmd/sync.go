package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/closeops/schemasync/internal/report"
	"github.com/closeops/schemasync/pkg/logging"
	"github.com/closeops/schemasync/pkg/reconcile"
)

var (
	syncAutoApprove bool
	syncDryRun      bool
	syncDelay       time.Duration
	syncNoSnapshot  bool
)

// syncCmd represents the sync command.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile the development organization against production",
	Long: `Sync fetches the configuration schema of both organizations and
reconciles development against production, one kind at a time:

1. Custom activity types: create missing ones and build the ID mapping
2. Custom fields (all scopes): create missing ones, translating
   activity type references through the mapping
3. Lead and opportunity statuses: mirror production exactly, creating
   missing statuses and removing ones production no longer has

Entities already present in development are skipped; their attributes
are never modified. Each create or delete is followed by a short pause
to stay inside the API's rate limits. The full outcome ledger is
written to the data directory as sync_results.json.`,
	Example: `  schemasync sync --dry-run
  schemasync sync -y
  schemasync sync --delay 250ms --data-dir ./artifacts`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().BoolVarP(&syncAutoApprove, "yes", "y", false, "skip the confirmation prompt")
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "show what would change without making modifications")
	syncCmd.Flags().DurationVar(&syncDelay, "delay", 0, "pause after each mutating call (default 500ms)")
	syncCmd.Flags().BoolVar(&syncNoSnapshot, "no-snapshot", false, "skip writing production snapshot files")
}

func runSync(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if !syncDryRun && !syncAutoApprove {
		if err := confirmSync(); err != nil {
			return err
		}
	}

	writer := report.NewWriter(cfg.OutputDir)
	log := logging.Ctx(cmd.Context())

	var source reconcile.Accessor = newClient("production", cfg.ProductionAPIKey, cfg)
	if !syncNoSnapshot {
		source = report.NewSnapshotter(source, writer, *log)
	}
	target := newClient("development", cfg.DevelopmentAPIKey, cfg)

	delay := cfg.Delay
	if syncDelay > 0 {
		delay = syncDelay
	}

	rec := reconcile.New(source, target,
		reconcile.WithDelay(delay),
		reconcile.WithDryRun(syncDryRun),
		reconcile.WithLogger(*log),
	)
	res := rec.Run(cmd.Context())

	if err := writer.WriteResult(res); err != nil {
		return err
	}

	if err := formatter().Format(os.Stdout, res); err != nil {
		return err
	}

	if res.HasFailures() {
		return fmt.Errorf("sync finished with %d failed entities", res.Totals().Failed)
	}
	return nil
}

// confirmSync prompts before mutating the development organization.
// Non-interactive runs must pass --yes explicitly.
func confirmSync() error {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return fmt.Errorf("refusing to sync without confirmation; pass --yes to proceed non-interactively")
	}

	fmt.Print("This will modify the development organization. Continue? (y/N): ")
	var response string
	if _, err := fmt.Scanln(&response); err != nil {
		response = "n"
	}
	response = strings.ToLower(strings.TrimSpace(response))
	if response != "y" && response != "yes" {
		fmt.Println("Sync cancelled")
		return fmt.Errorf("aborted by user")
	}
	return nil
}
