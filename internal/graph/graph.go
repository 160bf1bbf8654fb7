// Package graph builds the file dependency graph: one node per scanned
// file, one edge per resolved include, enriched with hierarchy levels and
// in-degree weights.
package graph

import "sort"

// EdgeTypeInclude is the edge type tag for include dependencies.
const EdgeTypeInclude = "include"

// Node is one file in the dependency graph. Identity is the root-relative
// path. Symbol lists and complexity are copied from the File Record at
// construction and never mutated; Level and Community are written exactly
// once during enrichment.
type Node struct {
	ID         string   `json:"id" yaml:"id"`
	Name       string   `json:"name" yaml:"name"`
	Path       string   `json:"path" yaml:"path"`
	IsHeader   bool     `json:"isHeader" yaml:"isHeader"`
	Classes    []string `json:"classes" yaml:"classes"`
	Structs    []string `json:"structs" yaml:"structs"`
	Functions  []string `json:"functions" yaml:"functions"`
	GlobalVars []string `json:"globalVars" yaml:"globalVars"`
	Complexity int      `json:"complexity" yaml:"complexity"`
	LineCount  int      `json:"lineCount" yaml:"lineCount"`
	Level      int      `json:"level" yaml:"level"`
	Community  int      `json:"community" yaml:"community"`
}

// Edge is a directed dependency: Source textually includes a file that
// resolves to Target. Weight is the target's in-degree at the time the
// edge list is materialized.
type Edge struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
	Type   string `json:"type" yaml:"type"`
	Weight int    `json:"weight" yaml:"weight"`
}

type edgeKey struct {
	src, dst int
}

// Graph is a simple directed graph over file nodes. Node order is insertion
// order (scan order), which keeps every traversal deterministic.
type Graph struct {
	nodes   []*Node
	nodeIdx map[string]int

	out [][]int // adjacency by node index, insertion order
	in  [][]int

	edgeSet map[edgeKey]bool
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodeIdx: make(map[string]int),
		edgeSet: make(map[edgeKey]bool),
	}
}

// AddNode adds a node and returns its index. A node whose ID is already
// present is not added again; the existing index is returned.
func (g *Graph) AddNode(n *Node) int {
	if idx, ok := g.nodeIdx[n.ID]; ok {
		return idx
	}
	idx := len(g.nodes)
	g.nodes = append(g.nodes, n)
	g.nodeIdx[n.ID] = idx
	g.out = append(g.out, nil)
	g.in = append(g.in, nil)
	return idx
}

// AddEdge adds a directed edge between two existing nodes. Duplicate
// ordered pairs are ignored; self-edges are permitted. Returns false if
// either endpoint is unknown or the edge already exists.
func (g *Graph) AddEdge(source, target string) bool {
	srcIdx, ok := g.nodeIdx[source]
	if !ok {
		return false
	}
	dstIdx, ok := g.nodeIdx[target]
	if !ok {
		return false
	}

	key := edgeKey{src: srcIdx, dst: dstIdx}
	if g.edgeSet[key] {
		return false
	}
	g.edgeSet[key] = true

	g.out[srcIdx] = append(g.out[srcIdx], dstIdx)
	g.in[dstIdx] = append(g.in[dstIdx], srcIdx)
	return true
}

// HasNode checks whether a node ID exists.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodeIdx[id]
	return ok
}

// NodeByID returns the node with the given ID, or nil.
func (g *Graph) NodeByID(id string) *Node {
	if idx, ok := g.nodeIdx[id]; ok {
		return g.nodes[idx]
	}
	return nil
}

// Nodes returns all nodes in insertion (scan) order. The slice is shared;
// callers must not reorder it.
func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// NumNodes returns the node count.
func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

// NumEdges returns the edge count.
func (g *Graph) NumEdges() int {
	return len(g.edgeSet)
}

// OutNeighbors returns the indices this node points to, in edge insertion
// order. The slice is shared; callers must not mutate it.
func (g *Graph) OutNeighbors(i int) []int {
	return g.out[i]
}

// OutDegree returns the number of outgoing edges of node i.
func (g *Graph) OutDegree(i int) int {
	return len(g.out[i])
}

// InDegree returns the number of incoming edges of node i.
func (g *Graph) InDegree(i int) int {
	return len(g.in[i])
}

// Edges materializes the edge list in deterministic order: by source node
// insertion order, then edge insertion order.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, len(g.edgeSet))
	for srcIdx, targets := range g.out {
		for _, dstIdx := range targets {
			edges = append(edges, Edge{
				Source: g.nodes[srcIdx].ID,
				Target: g.nodes[dstIdx].ID,
				Type:   EdgeTypeInclude,
				Weight: g.InDegree(dstIdx),
			})
		}
	}
	return edges
}

// MaxLevel returns the highest node level, or 0 for an empty graph.
func (g *Graph) MaxLevel() int {
	max := 0
	for _, n := range g.nodes {
		if n.Level > max {
			max = n.Level
		}
	}
	return max
}

// CommunityCount returns the number of distinct community ids.
func (g *Graph) CommunityCount() int {
	seen := make(map[int]bool)
	for _, n := range g.nodes {
		seen[n.Community] = true
	}
	return len(seen)
}

// rankByDegree returns up to n node IDs ranked by the given degree
// function, descending, ties broken by node order.
func (g *Graph) rankByDegree(n int, degree func(int) int) []NodeDegree {
	ranked := make([]NodeDegree, len(g.nodes))
	for i, node := range g.nodes {
		ranked[i] = NodeDegree{ID: node.ID, Degree: degree(i), order: i}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		if ranked[a].Degree != ranked[b].Degree {
			return ranked[a].Degree > ranked[b].Degree
		}
		return ranked[a].order < ranked[b].order
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// NodeDegree pairs a node ID with a degree count for rankings.
type NodeDegree struct {
	ID     string `json:"id" yaml:"id"`
	Degree int    `json:"degree" yaml:"degree"`

	order int
}
