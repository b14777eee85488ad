package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/hexwood/tagscout/guardian"
)

// placeholderKey is the key value written by WriteDefault. A config that
// still carries it fails validation.
const placeholderKey = "your-api-key-here"

// Load loads the configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check the XDG config directory
		v.AddConfigPath(filepath.Join(xdg.ConfigHome, "tagscout"))

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".tagscout"))
		}

		// Check /etc
		v.AddConfigPath("/etc/tagscout/")
	}

	// Read config file. The API accepts keyless requests, so a missing
	// file is not fatal and the defaults apply.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("api.base_url", guardian.DefaultBaseURL)
	v.SetDefault("api.timeout", 30*time.Second)

	// Search defaults
	v.SetDefault("search.concurrency", guardian.DefaultBatchConcurrency)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)

	// Output defaults
	v.SetDefault("output.format", "tree")
	v.SetDefault("output.show_details", false)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}

	if cfg.API.Key == placeholderKey {
		return fmt.Errorf("api.key is still the placeholder, set a real key or remove it")
	}

	if cfg.API.Timeout < 0 {
		return fmt.Errorf("api.timeout cannot be negative")
	}

	if cfg.Search.Concurrency < 1 {
		return fmt.Errorf("search.concurrency must be at least 1")
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	// Validate output format
	validOutputs := map[string]bool{
		"tree":     true,
		"json":     true,
		"yaml":     true,
		"markdown": true,
	}
	if !validOutputs[cfg.Output.Format] {
		return fmt.Errorf("invalid output format: %s", cfg.Output.Format)
	}

	return nil
}

// DefaultPath returns the preferred location for a new config file
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "tagscout", "config.yaml")
}

// defaultConfigTemplate is the starter file written by WriteDefault.
// It must stay parseable by Load.
const defaultConfigTemplate = `# tagscout configuration
#
# Register for an API key at https://open-platform.theguardian.com/access/
# and replace the placeholder below. Without a key requests run
# unauthenticated against the public endpoint, within tighter rate limits.

api:
  base_url: https://content.guardianapis.com
  # Set your key here, or leave empty for keyless access.
  key: ""
  timeout: 30s

search:
  # How many terms are searched at once by multi-term invocations.
  concurrency: 5

filter:
  # Expression applied when no --filter flag is given. Empty matches all.
  default: ""
  # Named expressions, selectable with --preset <name>.
  presets:
    contributors: Type == "contributor"
    sectioned: hasSection()
    football-teams: hasReference("pa-football-team")

logging:
  level: info      # debug, info, warn, error
  format: console  # console, json
  color: true

output:
  format: tree        # tree, json, yaml, markdown
  show_details: false # include URLs and contributor bios in tree output
`

// WriteDefault renders the starter configuration to path. It refuses to
// overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("configuration file already exists: %s", path)
	}

	// Create parent directories if needed
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(defaultConfigTemplate), 0o600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	return nil
}
