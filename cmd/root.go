package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hexwood/tagscout/config"
	"github.com/hexwood/tagscout/filter"
	"github.com/hexwood/tagscout/guardian"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *guardian.Client
	presets *filter.Presets

	appVersion = "dev"
	buildTime  = "unknown"

	// Command flags
	apiKey         string
	filterExpr     string
	presetName     string
	outputFormat   string
	showDetails    bool
	showReferences bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tagscout",
	Short: "Search and filter Guardian content tags from the command line",
	Long: `tagscout searches the Guardian Open Platform tag directory and narrows
the results with filter expressions over tag type, section and external
references.`,
	PersistentPreRunE: initializeApp,
}

// SetVersion sets the version information from build-time variables
func SetVersion(version, built string) {
	appVersion = version
	buildTime = built
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "API key (overrides config)")
}

// initializeApp initializes the configuration and clients
func initializeApp(cmd *cobra.Command, args []string) error {
	// Commands that manage the installation itself must work before any
	// configuration exists.
	switch cmd.Name() {
	case "init", "version", "selfupdate":
		return nil
	}

	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Override the configured key from the command line if specified
	if cmd.Flags().Changed("api-key") {
		cfg.API.Key = apiKey
	}

	if cfg.API.Key == "" {
		logger.Debug().Msg("No API key configured, sending requests without credentials")
	}

	// Create API client
	client = guardian.NewClient(cfg.API.Key, logger,
		guardian.WithBaseURL(cfg.API.BaseURL),
		guardian.WithTimeout(cfg.API.Timeout),
		guardian.WithBatchConcurrency(cfg.Search.Concurrency),
	)

	// Compile filter presets
	presets = filter.NewPresets()
	if err := presets.RegisterAll(cfg.Filter.Presets); err != nil {
		return fmt.Errorf("failed to load filter presets: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format. Color only when stderr is a real terminal.
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// getFilterExpression determines the filter expression to use
func getFilterExpression() (string, error) {
	// Priority: command line filter > preset > config default
	if filterExpr != "" {
		return filterExpr, nil
	}

	if presetName != "" {
		if f, ok := presets.Get(presetName); ok {
			return f.String(), nil
		}
		if names := presets.Names(); len(names) > 0 {
			return "", fmt.Errorf("preset '%s' not found in config (available: %s)", presetName, strings.Join(names, ", "))
		}
		return "", fmt.Errorf("preset '%s' not found in config", presetName)
	}

	return cfg.Filter.Default, nil
}
