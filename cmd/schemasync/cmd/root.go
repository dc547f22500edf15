// Package cmd implements the schemasync command tree.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/closeops/schemasync/internal/closeapi"
	"github.com/closeops/schemasync/internal/cmd/output"
	"github.com/closeops/schemasync/internal/config"
	"github.com/closeops/schemasync/internal/transport"
	"github.com/closeops/schemasync/pkg/logging"
)

var (
	configFile   string
	flagVerbose  bool
	flagQuiet    bool
	flagNoColor  bool
	flagOutput   string
	flagBaseURL  string
	flagDataDir  string

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
	// BuiltBy is the build system identifier.
	BuiltBy = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "schemasync",
	Short: "Sync Close CRM configuration schema between organizations",
	Long: `Schemasync replicates the configuration schema of a production Close
organization into a development organization: custom field definitions
for every scope, custom activity types, and lead/opportunity status
lists.

Custom fields and activity types are additive (missing ones are created,
existing ones are left untouched); status lists are mirrored exactly,
including removal of statuses production no longer has. Activity custom
fields have their activity type references translated to the
development organization's own IDs.

Credentials come from CLOSE_API_KEY_PROD and CLOSE_API_KEY_DEV, set in
the environment or a .env file.`,
	PersistentPreRunE: setupCommand,
}

// Execute adds all child commands to the root command and runs it with a
// signal-aware context.
func Execute(version, commit, date, builtBy string) {
	Version = version
	Commit = commit
	Date = date
	BuiltBy = builtBy

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.schemasync.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress informational output")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "output format: table, json, yaml (default: auto-detect)")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "Close API base URL override (for mock servers)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "directory for snapshot and result artifacts (default: data)")

	if err := viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose")); err != nil {
		panic(fmt.Sprintf("Failed to bind verbose flag: %v", err))
	}
	if err := viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet")); err != nil {
		panic(fmt.Sprintf("Failed to bind quiet flag: %v", err))
	}
}

// initConfig wires the environment into viper and configures logging.
// All env plumbing (.env files, AutomaticEnv, key bindings, config file
// search) lives in internal/config.
func initConfig() {
	config.BindEnvironment(configFile)

	if flagVerbose && viper.ConfigFileUsed() != "" {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	configureLogging()
}

// setupCommand is called before any command runs. It resolves the output
// format and puts the configured logger on the command context so lower
// layers can pull it with logging.Ctx.
func setupCommand(cmd *cobra.Command, _ []string) error {
	if flagOutput == "" {
		flagOutput = string(output.DetectFormat(""))
	}
	if _, err := output.ParseFormat(flagOutput); err != nil {
		return err
	}

	cmd.SetContext(logging.WithLogger(cmd.Context(), logging.Default()))
	return nil
}

// loadSettings builds the effective configuration for a command run.
func loadSettings() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	cfg.UpdateFromFlags(flagVerbose, flagQuiet, flagNoColor, flagOutput)
	if flagBaseURL != "" {
		cfg.BaseURL = flagBaseURL
	}
	if flagDataDir != "" {
		cfg.OutputDir = flagDataDir
	}
	return cfg, nil
}

// newClient builds an API client for one environment, honoring any base
// URL override.
func newClient(env, apiKey string, cfg *config.Config) *closeapi.Client {
	var opts []transport.Option
	if cfg.BaseURL != "" {
		opts = append(opts, transport.WithBaseURL(cfg.BaseURL))
	}
	return closeapi.New(env, apiKey, opts...)
}

// formatter returns the output formatter selected by flags or terminal
// detection.
func formatter() output.Formatter {
	return output.NewFormatter(output.Format(flagOutput))
}

// configureLogging sets up the logging system based on configuration.
func configureLogging() {
	level := zerolog.InfoLevel
	if flagVerbose || viper.GetBool("verbose") {
		level = zerolog.DebugLevel
	}
	if flagQuiet || viper.GetBool("quiet") {
		level = zerolog.WarnLevel
	}
	if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
		if parsed, err := zerolog.ParseLevel(envLevel); err == nil {
			level = parsed
		}
	}

	cfg := &logging.Config{
		Level:     level.String(),
		Format:    os.Getenv("LOG_FORMAT"),
		Output:    os.Getenv("LOG_OUTPUT"),
		NoColor:   flagNoColor,
		AddCaller: level <= zerolog.DebugLevel,
	}
	if cfg.Format == "" {
		cfg.Format = "auto"
	}
	if cfg.Output == "" {
		cfg.Output = "stderr"
	}

	logging.Configure(cfg)
}
