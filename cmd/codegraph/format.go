package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"codegraph/internal/graph"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

// ScanResponse is the scan command's output.
type ScanResponse struct {
	Root       string `json:"root"`
	Files      int    `json:"files"`
	Headers    int    `json:"headers"`
	Sources    int    `json:"sources"`
	CacheHits  int    `json:"cacheHits"`
	DurationMs int64  `json:"durationMs"`
}

// GraphResponse is the graph command's output.
type GraphResponse struct {
	Root       string      `json:"root"`
	Stats      graph.Stats `json:"stats"`
	DurationMs int64       `json:"durationMs"`
}

// ExportResponse is the export command's output.
type ExportResponse struct {
	Root       string `json:"root"`
	Output     string `json:"output"`
	Format     string `json:"format"`
	Compressed bool   `json:"compressed"`
	Nodes      int    `json:"nodes"`
	Edges      int    `json:"edges"`
	DurationMs int64  `json:"durationMs"`
}

// RenderResponse is the render command's output.
type RenderResponse struct {
	Root       string `json:"root"`
	Output     string `json:"output"`
	Nodes      int    `json:"nodes"`
	Edges      int    `json:"edges"`
	Opened     bool   `json:"opened"`
	DurationMs int64  `json:"durationMs"`
}

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *ScanResponse:
		return formatScanHuman(v)
	case *GraphResponse:
		return formatGraphHuman(v)
	case *ExportResponse:
		return formatExportHuman(v)
	case *RenderResponse:
		return formatRenderHuman(v)
	default:
		// For unknown types, fall back to JSON
		return formatJSON(resp)
	}
}

func formatScanHuman(resp *ScanResponse) (string, error) {
	var b strings.Builder

	b.WriteString("Scan Results\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")
	b.WriteString(fmt.Sprintf("Root: %s\n", resp.Root))
	b.WriteString(fmt.Sprintf("Files: %d (%d headers, %d sources)\n", resp.Files, resp.Headers, resp.Sources))
	b.WriteString(fmt.Sprintf("Cache Hits: %d\n", resp.CacheHits))
	b.WriteString(fmt.Sprintf("Duration: %dms\n", resp.DurationMs))

	return b.String(), nil
}

func formatGraphHuman(resp *GraphResponse) (string, error) {
	var b strings.Builder
	s := resp.Stats

	b.WriteString("Dependency Graph\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")
	b.WriteString(fmt.Sprintf("Root: %s\n", resp.Root))
	b.WriteString(fmt.Sprintf("Files: %d (%d headers, %d sources)\n", s.TotalFiles, s.Headers, s.Sources))
	b.WriteString(fmt.Sprintf("Dependencies: %d\n", s.TotalDependencies))
	b.WriteString(fmt.Sprintf("Max Level: %d\n", s.MaxLevel))
	b.WriteString(fmt.Sprintf("Communities: %d\n", s.Communities))

	if len(s.MostDepended) > 0 {
		b.WriteString("\nMost Depended On:\n")
		for i, d := range s.MostDepended {
			b.WriteString(fmt.Sprintf("  %d. %s (%d)\n", i+1, d.ID, d.Degree))
		}
	}
	if len(s.MostDependencies) > 0 {
		b.WriteString("\nMost Dependencies:\n")
		for i, d := range s.MostDependencies {
			b.WriteString(fmt.Sprintf("  %d. %s (%d)\n", i+1, d.ID, d.Degree))
		}
	}

	b.WriteString(fmt.Sprintf("\nDuration: %dms\n", resp.DurationMs))

	return b.String(), nil
}

func formatExportHuman(resp *ExportResponse) (string, error) {
	var b strings.Builder

	b.WriteString("Export Complete\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")
	b.WriteString(fmt.Sprintf("Root: %s\n", resp.Root))
	b.WriteString(fmt.Sprintf("Output: %s\n", resp.Output))
	format := resp.Format
	if resp.Compressed {
		format += " (gzip)"
	}
	b.WriteString(fmt.Sprintf("Format: %s\n", format))
	b.WriteString(fmt.Sprintf("Nodes: %d, Edges: %d\n", resp.Nodes, resp.Edges))
	b.WriteString(fmt.Sprintf("Duration: %dms\n", resp.DurationMs))

	return b.String(), nil
}

func formatRenderHuman(resp *RenderResponse) (string, error) {
	var b strings.Builder

	b.WriteString("Visualization Generated\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")
	b.WriteString(fmt.Sprintf("Root: %s\n", resp.Root))
	b.WriteString(fmt.Sprintf("Output: %s\n", resp.Output))
	b.WriteString(fmt.Sprintf("Nodes: %d, Edges: %d\n", resp.Nodes, resp.Edges))
	if resp.Opened {
		b.WriteString("Opened in browser.\n")
	}
	b.WriteString(fmt.Sprintf("Duration: %dms\n", resp.DurationMs))

	return b.String(), nil
}
