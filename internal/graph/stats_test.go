package graph

import (
	"testing"

	"codegraph/internal/parser"
)

func TestComputeStats(t *testing.T) {
	files := []*parser.FileRecord{
		{Path: "/src/Common.h", IsHeader: true},
		{Path: "/src/a.cpp", Includes: []string{"Common.h"}},
		{Path: "/src/b.cpp", Includes: []string{"Common.h"}},
	}
	g := build(files)
	ComputeLevels(g)

	stats := ComputeStats(g, 5)

	if stats.TotalFiles != 3 || stats.TotalDependencies != 2 {
		t.Errorf("totals = %d files, %d deps; want 3, 2", stats.TotalFiles, stats.TotalDependencies)
	}
	if stats.Headers != 1 || stats.Sources != 2 {
		t.Errorf("split = %d headers, %d sources; want 1, 2", stats.Headers, stats.Sources)
	}
	if stats.MaxLevel != 1 {
		t.Errorf("MaxLevel = %d, want 1", stats.MaxLevel)
	}

	if len(stats.MostDepended) == 0 || stats.MostDepended[0].ID != "Common.h" || stats.MostDepended[0].Degree != 2 {
		t.Errorf("MostDepended = %v, want Common.h with degree 2 first", stats.MostDepended)
	}
	if len(stats.MostDependencies) == 0 || stats.MostDependencies[0].Degree != 1 {
		t.Errorf("MostDependencies = %v, want a source with degree 1 first", stats.MostDependencies)
	}
}

func TestComputeStatsTopNTruncates(t *testing.T) {
	files := []*parser.FileRecord{
		{Path: "/src/A.h"},
		{Path: "/src/B.h"},
		{Path: "/src/C.h"},
	}
	g := build(files)

	stats := ComputeStats(g, 2)
	if len(stats.MostDepended) != 2 {
		t.Errorf("len(MostDepended) = %d, want 2", len(stats.MostDepended))
	}
}

func TestRankByDegreeTieBreaksOnNodeOrder(t *testing.T) {
	files := []*parser.FileRecord{
		{Path: "/src/A.h"},
		{Path: "/src/B.h"},
	}
	g := build(files)

	ranked := g.rankByDegree(2, g.InDegree)
	if ranked[0].ID != "A.h" || ranked[1].ID != "B.h" {
		t.Errorf("tie break order = %v, want scan order", ranked)
	}
}
