package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hexwood/tagscout/config"
)

var (
	initOutput string
	initForce  bool
)

// initCmd writes a starter configuration file
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration file",
	Long: `Write a commented starter configuration file with the default settings.

The file is placed in the XDG config directory unless --output names
another location.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVarP(&initOutput, "output", "o", "", "path for the generated config file")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := initOutput
	if path == "" {
		path = config.DefaultPath()
	}

	if initForce {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove existing config: %w", err)
		}
	}

	if err := config.WriteDefault(path); err != nil {
		return err
	}

	fmt.Printf("Created %s\n", path)
	fmt.Println("Set api.key to your Open Platform key, or leave it empty for keyless access.")
	return nil
}
