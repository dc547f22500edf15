// Package config loads schemasync settings from .env files, environment
// variables, and an optional config file. Credentials for both Close
// organizations are the only required values; everything else has a
// working default.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/closeops/schemasync/pkg/errors"
	"github.com/closeops/schemasync/pkg/reconcile"
)

// Environment variable names for the two organizations' API keys.
const (
	EnvProductionKey  = "CLOSE_API_KEY_PROD"
	EnvDevelopmentKey = "CLOSE_API_KEY_DEV"
)

// DefaultOutputDir is where fetched snapshots and the results ledger
// are written.
const DefaultOutputDir = "data"

// Config holds the application configuration loaded from all sources.
type Config struct {
	// Credentials
	ProductionAPIKey  string
	DevelopmentAPIKey string

	// Optional base URL override, shared by both environments. Used
	// against mock servers in integration setups.
	BaseURL string

	// Sync behavior
	Delay     time.Duration
	OutputDir string

	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Output  string

	// Logging configuration
	LogLevel  string
	LogFormat string
}

// BindEnvironment wires viper to the process environment: .env files,
// AutomaticEnv, explicit bindings for the credential keys, and the
// config file (an explicit path, or a search for ~/.schemasync.yaml).
// It runs once during CLI initialization; Load assumes it has run.
func BindEnvironment(configFile string) {
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	for _, key := range []string{EnvProductionKey, EnvDevelopmentKey, "CLOSE_BASE_URL"} {
		_ = viper.BindEnv(key)
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".schemasync")
	}
	_ = viper.ReadInConfig()
}

// Load builds the configuration in order of precedence:
//  1. Command-line flags (applied by cobra after parsing)
//  2. Environment variables
//  3. .env files (.env.local overrides .env)
//  4. Config file (~/.schemasync.yaml)
//  5. Defaults
func Load() (*Config, error) {
	cfg := &Config{
		ProductionAPIKey:  viper.GetString(EnvProductionKey),
		DevelopmentAPIKey: viper.GetString(EnvDevelopmentKey),
		BaseURL:           viper.GetString("CLOSE_BASE_URL"),

		Delay:     viper.GetDuration("delay"),
		OutputDir: viper.GetString("output_dir"),

		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),
		Output:  viper.GetString("output"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
	}

	if cfg.Delay == 0 {
		cfg.Delay = reconcile.DefaultDelay
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}

	return cfg, nil
}

// Validate checks that both organizations' credentials are present.
// Missing credentials are the one condition that aborts before any
// request is made.
func (c *Config) Validate() error {
	if c.ProductionAPIKey == "" {
		return errors.NewAuthenticationError("production", EnvProductionKey+" not set")
	}
	if c.DevelopmentAPIKey == "" {
		return errors.NewAuthenticationError("development", EnvDevelopmentKey+" not set")
	}
	return nil
}

// UpdateFromFlags applies parsed command flags, which take precedence
// over env vars and config file values.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, output string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if output != "" {
		c.Output = output
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
