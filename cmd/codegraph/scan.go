package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	scanFormat string
)

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Scan a C++ codebase and report what was found",
	Long: `Scan walks the directory tree, parses every C++ file, and reports file
counts. Results are cached in .codegraph/cache.db keyed by content hash, so
subsequent scans only re-parse modified files.

Examples:
  codegraph scan .
  codegraph scan --format=json ~/src/engine`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanFormat, "format", "human", "Output format (json, human)")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) {
	start := time.Now()
	logger := newLogger(scanFormat)
	root := mustResolveRoot(args)
	cfg := loadConfigOrDefault(root, logger)

	records, hits, err := scanFiles(newContext(), root, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning %s: %v\n", root, err)
		os.Exit(1)
	}

	resp := &ScanResponse{
		Root:       root,
		Files:      len(records),
		CacheHits:  hits,
		DurationMs: time.Since(start).Milliseconds(),
	}
	for _, rec := range records {
		if rec.IsHeader {
			resp.Headers++
		} else {
			resp.Sources++
		}
	}

	out, err := FormatResponse(resp, OutputFormat(scanFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(out)
}
