package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"codegraph/internal/graph"
)

var (
	graphFormat string
	graphTopN   int
)

var graphCmd = &cobra.Command{
	Use:   "graph [path]",
	Short: "Build the dependency graph and print its statistics",
	Long: `Graph runs the full pipeline: scan, include resolution, hierarchy levels,
and community detection. Prints summary statistics including the most
depended-on files.

Examples:
  codegraph graph .
  codegraph graph --top 10 ~/src/engine
  codegraph graph --format=json .`,
	Args: cobra.MaximumNArgs(1),
	Run:  runGraph,
}

func init() {
	graphCmd.Flags().StringVar(&graphFormat, "format", "human", "Output format (json, human)")
	graphCmd.Flags().IntVar(&graphTopN, "top", 0, "Ranking list length (0 uses the configured default)")
	rootCmd.AddCommand(graphCmd)
}

func runGraph(cmd *cobra.Command, args []string) {
	start := time.Now()
	logger := newLogger(graphFormat)
	root := mustResolveRoot(args)
	cfg := loadConfigOrDefault(root, logger)

	g, err := buildGraph(newContext(), root, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building graph for %s: %v\n", root, err)
		os.Exit(1)
	}

	topN := graphTopN
	if topN <= 0 {
		topN = cfg.Analysis.TopN
	}

	resp := &GraphResponse{
		Root:       root,
		Stats:      graph.ComputeStats(g, topN),
		DurationMs: time.Since(start).Milliseconds(),
	}

	out, err := FormatResponse(resp, OutputFormat(graphFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(out)
}
