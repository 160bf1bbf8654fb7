package graph

// Stats summarizes the dependency graph for reporting.
type Stats struct {
	TotalFiles        int          `json:"totalFiles" yaml:"totalFiles"`
	TotalDependencies int          `json:"totalDependencies" yaml:"totalDependencies"`
	Headers           int          `json:"headers" yaml:"headers"`
	Sources           int          `json:"sources" yaml:"sources"`
	MaxLevel          int          `json:"maxLevel" yaml:"maxLevel"`
	Communities       int          `json:"communities" yaml:"communities"`
	MostDepended      []NodeDegree `json:"mostDepended" yaml:"mostDepended"`
	MostDependencies  []NodeDegree `json:"mostDependencies" yaml:"mostDependencies"`
}

// ComputeStats derives summary statistics. topN bounds the ranking lists.
func ComputeStats(g *Graph, topN int) Stats {
	stats := Stats{
		TotalFiles:        g.NumNodes(),
		TotalDependencies: g.NumEdges(),
		MaxLevel:          g.MaxLevel(),
		Communities:       g.CommunityCount(),
	}

	for _, n := range g.Nodes() {
		if n.IsHeader {
			stats.Headers++
		} else {
			stats.Sources++
		}
	}

	stats.MostDepended = g.rankByDegree(topN, g.InDegree)
	stats.MostDependencies = g.rankByDegree(topN, g.OutDegree)

	return stats
}
