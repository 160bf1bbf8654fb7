package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codegraph/internal/graph"
)

func testGraph() *graph.Graph {
	g := graph.NewGraph()
	g.AddNode(&graph.Node{
		ID:        "core/Engine.h",
		Name:      "Engine",
		Path:      "core/Engine.h",
		IsHeader:  true,
		Classes:   []string{"Engine"},
		LineCount: 200,
		Community: 1,
	})
	g.AddNode(&graph.Node{
		ID:        "main.cpp",
		Name:      "main",
		Path:      "main.cpp",
		LineCount: 30,
	})
	g.AddEdge("main.cpp", "core/Engine.h")
	graph.ComputeLevels(g)
	return g
}

func TestRenderWritesStandalonePage(t *testing.T) {
	out := filepath.Join(t.TempDir(), "graph.html")
	if err := Render(testGraph(), out, "My Project"); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	html := string(data)

	for _, want := range []string{
		"<title>My Project</title>",
		"core/Engine.h",
		"main.cpp",
		"3d-force-graph",
		"ForceGraph3D",
		`"community":1`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered page missing %q", want)
		}
	}
}

func TestNodeRadius(t *testing.T) {
	tests := []struct {
		lines int
		want  float64
	}{
		{100, 5},
		{500, 25},
		{0, 0.5},  // floor at 10 lines
		{10, 0.5},
		{130, 6.5},
	}
	for _, tt := range tests {
		if got := nodeRadius(tt.lines); got != tt.want {
			t.Errorf("nodeRadius(%d) = %v, want %v", tt.lines, got, tt.want)
		}
	}
}

func TestBuildPayload(t *testing.T) {
	p := buildPayload(testGraph())

	if len(p.Nodes) != 2 || len(p.Links) != 1 {
		t.Fatalf("payload has %d nodes, %d links; want 2, 1", len(p.Nodes), len(p.Links))
	}
	if p.Metadata.MaxLevel != 1 || p.Metadata.MaxInDegree != 1 {
		t.Errorf("metadata = %+v, want maxLevel 1, maxInDegree 1", p.Metadata)
	}
	if p.Metadata.NumCommunities != 2 {
		t.Errorf("numCommunities = %d, want 2", p.Metadata.NumCommunities)
	}
	if p.Links[0].Weight != 1 {
		t.Errorf("link weight = %d, want target in-degree 1", p.Links[0].Weight)
	}
}

func TestBuildPayloadEmptyGraphMaxLevelFloor(t *testing.T) {
	p := buildPayload(graph.NewGraph())
	if p.Metadata.MaxLevel != 1 {
		t.Errorf("maxLevel = %d for empty graph, want floor of 1", p.Metadata.MaxLevel)
	}
}
