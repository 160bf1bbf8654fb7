package main

import (
	"codegraph/internal/version"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "codegraph",
	Short: "codegraph - C++ dependency graph explorer",
	Long: `codegraph scans a C++ codebase, extracts includes and declarations from
every file, and assembles a dependency graph enriched with hierarchy levels
and community detection. The graph can be summarized, exported to JSON, YAML
or SCIP, and rendered as an interactive 3D visualization.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("codegraph version {{.Version}}\n")
}
