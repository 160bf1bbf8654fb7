package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"codegraph/internal/export"
	"codegraph/internal/graph"
)

var (
	exportFormat   string
	exportOutput   string
	exportCompress bool
	exportCLIForm  string
)

var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Export the dependency graph to JSON, YAML, or SCIP",
	Long: `Export builds the dependency graph and serializes it: a full snapshot with
nodes, edges, statistics, and run metadata. JSON and YAML snapshots can be
gzip-compressed; SCIP output is a binary protobuf index.

Examples:
  codegraph export --output graph.json .
  codegraph export --export-format yaml --compress --output graph.yaml.gz .
  codegraph export --export-format scip --output index.scip ~/src/engine`,
	Args: cobra.MaximumNArgs(1),
	Run:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "export-format", "json", "Snapshot format (json, yaml, scip)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path (defaults to graph.<format>)")
	exportCmd.Flags().BoolVar(&exportCompress, "compress", false, "Gzip-compress the snapshot (json and yaml only)")
	exportCmd.Flags().StringVar(&exportCLIForm, "format", "human", "Command output format (json, human)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) {
	start := time.Now()
	logger := newLogger(exportCLIForm)
	root := mustResolveRoot(args)
	cfg := loadConfigOrDefault(root, logger)

	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	g, err := buildGraph(newContext(), root, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building graph for %s: %v\n", root, err)
		os.Exit(1)
	}

	output := exportOutput
	if output == "" {
		output = "graph." + string(format)
		if exportCompress && format != export.FormatSCIP {
			output += ".gz"
		}
	}

	snapshot := export.NewSnapshot(g, graph.ComputeStats(g, cfg.Analysis.TopN), root)
	if err := snapshot.WriteFile(output, format, exportCompress); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing export: %v\n", err)
		os.Exit(1)
	}

	resp := &ExportResponse{
		Root:       root,
		Output:     output,
		Format:     string(format),
		Compressed: format != export.FormatSCIP && (exportCompress || strings.HasSuffix(output, ".gz")),
		Nodes:      g.NumNodes(),
		Edges:      g.NumEdges(),
		DurationMs: time.Since(start).Milliseconds(),
	}

	out, err := FormatResponse(resp, OutputFormat(exportCLIForm))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(out)
}
