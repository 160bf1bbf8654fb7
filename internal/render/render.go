// Package render generates the interactive 3D visualization: a standalone
// HTML page driving 3d-force-graph with the serialized dependency graph.
package render

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"codegraph/internal/graph"
)

//go:embed template.html
var pageTemplate string

// payloadNode is one node in the 3d-force-graph JSON payload.
type payloadNode struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Path       string   `json:"path"`
	IsHeader   bool     `json:"isHeader"`
	Classes    []string `json:"classes"`
	Structs    []string `json:"structs"`
	Functions  []string `json:"functions"`
	Complexity int      `json:"complexity"`
	Level      int      `json:"level"`
	Community  int      `json:"community"`
	LineCount  int      `json:"lineCount"`
	Radius     float64  `json:"radius"`
}

type payloadLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
	Weight int    `json:"weight"`
}

type payloadMetadata struct {
	MaxLevel       int `json:"maxLevel"`
	NumCommunities int `json:"numCommunities"`
	MaxInDegree    int `json:"maxInDegree"`
}

type payload struct {
	Nodes    []payloadNode   `json:"nodes"`
	Links    []payloadLink   `json:"links"`
	Metadata payloadMetadata `json:"metadata"`
}

// nodeRadius scales visual node size linearly with line count: 100 lines
// renders at radius 5, 500 at 25. Files under 10 lines get the floor.
func nodeRadius(lineCount int) float64 {
	lines := lineCount
	if lines < 10 {
		lines = 10
	}
	return math.Round(float64(lines)/20*100) / 100
}

// buildPayload converts the graph to the 3d-force-graph data shape.
func buildPayload(g *graph.Graph) payload {
	p := payload{
		Nodes: make([]payloadNode, 0, g.NumNodes()),
		Links: make([]payloadLink, 0, g.NumEdges()),
	}

	maxLevel := g.MaxLevel()
	if maxLevel < 1 {
		maxLevel = 1
	}
	p.Metadata = payloadMetadata{
		MaxLevel:       maxLevel,
		NumCommunities: g.CommunityCount(),
	}

	for i, n := range g.Nodes() {
		p.Nodes = append(p.Nodes, payloadNode{
			ID:         n.ID,
			Name:       n.Name,
			Path:       n.Path,
			IsHeader:   n.IsHeader,
			Classes:    n.Classes,
			Structs:    n.Structs,
			Functions:  n.Functions,
			Complexity: n.Complexity,
			Level:      n.Level,
			Community:  n.Community,
			LineCount:  n.LineCount,
			Radius:     nodeRadius(n.LineCount),
		})
		if d := g.InDegree(i); d > p.Metadata.MaxInDegree {
			p.Metadata.MaxInDegree = d
		}
	}

	for _, e := range g.Edges() {
		p.Links = append(p.Links, payloadLink{
			Source: e.Source,
			Target: e.Target,
			Type:   e.Type,
			Weight: e.Weight,
		})
	}

	return p
}

// Render writes the visualization HTML for g to outPath.
func Render(g *graph.Graph, outPath, title string) error {
	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return fmt.Errorf("parse page template: %w", err)
	}

	data, err := json.Marshal(buildPayload(g))
	if err != nil {
		return fmt.Errorf("marshal graph payload: %w", err)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	return tmpl.Execute(f, struct {
		Title     string
		GraphData template.JS
	}{
		Title:     title,
		GraphData: template.JS(data),
	})
}

// OpenBrowser opens the rendered page in the default browser.
func OpenBrowser(htmlPath string) error {
	abs, err := filepath.Abs(htmlPath)
	if err != nil {
		return err
	}
	url := "file://" + filepath.ToSlash(abs)

	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
