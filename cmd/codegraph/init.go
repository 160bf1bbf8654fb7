package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"codegraph/internal/config"
	"codegraph/internal/logging"
)

var (
	initForce bool
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Initialize codegraph configuration",
	Long:  "Creates a .codegraph/ directory with default configuration under the scan root",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Force reinitialization (removes existing .codegraph directory)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	logger := logging.NewLogger(logging.Config{
		Format: logging.HumanFormat,
		Level:  logging.InfoLevel,
	})

	root := mustResolveRoot(args)
	cfgDir := filepath.Join(root, config.ConfigDirName)

	if _, statErr := os.Stat(cfgDir); statErr == nil {
		if !initForce {
			// Idempotent behavior: already initialized is success
			fmt.Println("codegraph already initialized.")
			fmt.Printf("Configuration at: %s\n", filepath.Join(cfgDir, "config.json"))
			fmt.Println("\nRun 'codegraph init --force' to reinitialize.")
			return nil
		}
		if removeErr := os.RemoveAll(cfgDir); removeErr != nil {
			return fmt.Errorf("failed to remove existing %s directory: %w", config.ConfigDirName, removeErr)
		}
		logger.Info("Removed existing config directory", map[string]interface{}{
			"path": cfgDir,
		})
	}

	cfg := config.DefaultConfig()
	if err := cfg.Save(root); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Println("codegraph initialized.")
	fmt.Printf("Configuration at: %s\n", filepath.Join(cfgDir, "config.json"))
	fmt.Printf("\nDeclare third-party includes in %s to silence\nresolution attempts for them.\n",
		filepath.Join(cfgDir, config.ExternalsDeclarationFile))
	return nil
}
