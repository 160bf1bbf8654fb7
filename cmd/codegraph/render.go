package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"codegraph/internal/render"
)

var (
	renderOutput string
	renderTitle  string
	renderOpen   bool
	renderFormat string
)

var renderCmd = &cobra.Command{
	Use:   "render [path]",
	Short: "Generate the interactive 3D visualization",
	Long: `Render builds the dependency graph and writes a standalone HTML page with
an interactive 3D force-directed view: node size tracks line count, colors
track communities, and the hierarchy toggle pins nodes to their include
level.

Examples:
  codegraph render .
  codegraph render --output deps.html --open ~/src/engine`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "graph.html", "Output HTML path")
	renderCmd.Flags().StringVar(&renderTitle, "title", "Code Graph", "Page title")
	renderCmd.Flags().BoolVar(&renderOpen, "open", false, "Open the result in the default browser")
	renderCmd.Flags().StringVar(&renderFormat, "format", "human", "Command output format (json, human)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) {
	start := time.Now()
	logger := newLogger(renderFormat)
	root := mustResolveRoot(args)
	cfg := loadConfigOrDefault(root, logger)

	g, err := buildGraph(newContext(), root, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building graph for %s: %v\n", root, err)
		os.Exit(1)
	}

	if err := render.Render(g, renderOutput, renderTitle); err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering visualization: %v\n", err)
		os.Exit(1)
	}

	opened := false
	if renderOpen {
		if err := render.OpenBrowser(renderOutput); err != nil {
			logger.Warn("Failed to open browser", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			opened = true
		}
	}

	resp := &RenderResponse{
		Root:       root,
		Output:     renderOutput,
		Nodes:      g.NumNodes(),
		Edges:      g.NumEdges(),
		Opened:     opened,
		DurationMs: time.Since(start).Milliseconds(),
	}

	out, err := FormatResponse(resp, OutputFormat(renderFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(out)
}
