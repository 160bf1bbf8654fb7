package community

import (
	"math/rand"

	"codegraph/internal/graph"
)

const (
	// DefaultMaxIterations bounds local-move passes within one level.
	DefaultMaxIterations = 50

	// DefaultResolution controls community granularity. Higher values
	// produce smaller, more granular communities.
	DefaultResolution = 1.0

	// minGain is the smallest modularity improvement worth a move.
	minGain = 1e-9
)

// Options configures the Louvain partitioner.
type Options struct {
	MaxIterations int
	Resolution    float64
}

// Validate applies defaults for unset or invalid values.
func (o *Options) Validate() {
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.Resolution <= 0 {
		o.Resolution = DefaultResolution
	}
}

// Louvain detects communities by modularity optimization over the undirected
// view of the dependency graph. Each level shuffles the visit order with a
// seeded source and greedily moves nodes into the neighboring community with
// the best modularity gain, then collapses communities into super-nodes and
// repeats until no move improves modularity. Deterministic for a fixed graph
// and seed: candidate communities are scanned in neighbor order, never in
// map order.
type Louvain struct {
	opts Options
}

// NewLouvain creates a Louvain partitioner.
func NewLouvain(opts Options) *Louvain {
	opts.Validate()
	return &Louvain{opts: opts}
}

// Partition implements Partitioner.
func (l *Louvain) Partition(g *graph.Graph, seed int64) map[string]int {
	n := g.NumNodes()
	result := make(map[string]int, n)
	if n == 0 {
		return result
	}

	lg := undirectedView(g)
	rng := rand.New(rand.NewSource(seed))

	// assignment[i] is the community of original node i, updated as levels
	// collapse.
	assignment := make([]int, n)
	for i := range assignment {
		assignment[i] = i
	}

	for {
		comm, moved := l.oneLevel(lg, rng)
		if !moved {
			break
		}

		comm, numComms := renumber(comm)
		for i := range assignment {
			assignment[i] = comm[assignment[i]]
		}

		if numComms == lg.n {
			break
		}
		lg = lg.collapse(comm, numComms)
	}

	for i, node := range g.Nodes() {
		result[node.ID] = assignment[i]
	}
	return result
}

// halfEdge is one endpoint's view of an undirected edge.
type halfEdge struct {
	to     int
	weight float64
}

// levelGraph is the weighted undirected graph at one aggregation level.
type levelGraph struct {
	n         int
	neighbors [][]halfEdge // excludes self-loops, ascending by to
	selfLoop  []float64
	degree    []float64 // weighted degree, self-loops counted twice
	m2        float64   // sum of all degrees (2m)
}

// undirectedView builds the level-0 graph. Reciprocal directed edges
// collapse to a single undirected edge of weight 1.
func undirectedView(g *graph.Graph) *levelGraph {
	n := g.NumNodes()
	lg := &levelGraph{
		n:         n,
		neighbors: make([][]halfEdge, n),
		selfLoop:  make([]float64, n),
		degree:    make([]float64, n),
	}

	type pair struct{ a, b int }
	seen := make(map[pair]bool)

	for i := 0; i < n; i++ {
		for _, j := range g.OutNeighbors(i) {
			a, b := i, j
			if a > b {
				a, b = b, a
			}
			if seen[pair{a, b}] {
				continue
			}
			seen[pair{a, b}] = true

			if i == j {
				lg.selfLoop[i]++
				continue
			}
			lg.neighbors[i] = append(lg.neighbors[i], halfEdge{to: j, weight: 1})
			lg.neighbors[j] = append(lg.neighbors[j], halfEdge{to: i, weight: 1})
		}
	}

	for i := 0; i < n; i++ {
		d := 2 * lg.selfLoop[i]
		for _, e := range lg.neighbors[i] {
			d += e.weight
		}
		lg.degree[i] = d
		lg.m2 += d
	}
	return lg
}

// oneLevel runs greedy local moves on lg until a full pass makes no move or
// MaxIterations passes complete. Returns the per-node community labels and
// whether any node moved.
func (l *Louvain) oneLevel(lg *levelGraph, rng *rand.Rand) ([]int, bool) {
	comm := make([]int, lg.n)
	commTotal := make([]float64, lg.n) // sum of degrees per community
	for i := 0; i < lg.n; i++ {
		comm[i] = i
		commTotal[i] = lg.degree[i]
	}

	if lg.m2 == 0 {
		return comm, false
	}

	order := make([]int, lg.n)
	for i := range order {
		order[i] = i
	}
	rng.Shuffle(len(order), func(a, b int) {
		order[a], order[b] = order[b], order[a]
	})

	movedAny := false
	links := make(map[int]float64, 16)

	for pass := 0; pass < l.opts.MaxIterations; pass++ {
		moved := false

		for _, u := range order {
			current := comm[u]

			// Edge weight from u to each neighboring community, scanned in
			// neighbor order for a deterministic tie-break.
			candidates := candidates(lg.neighbors[u], comm, links)

			commTotal[current] -= lg.degree[u]

			best := current
			bestGain := links[current] - l.opts.Resolution*lg.degree[u]*commTotal[current]/lg.m2
			for _, c := range candidates {
				if c == current {
					continue
				}
				gain := links[c] - l.opts.Resolution*lg.degree[u]*commTotal[c]/lg.m2
				if gain > bestGain+minGain {
					bestGain = gain
					best = c
				}
			}

			commTotal[best] += lg.degree[u]
			if best != current {
				comm[u] = best
				moved = true
				movedAny = true
			}
		}

		if !moved {
			break
		}
	}

	return comm, movedAny
}

// candidates fills links with u's edge weight into each neighboring
// community and returns the community labels in first-appearance order.
// links is reused across calls to avoid churn.
func candidates(edges []halfEdge, comm []int, links map[int]float64) []int {
	for k := range links {
		delete(links, k)
	}
	order := make([]int, 0, len(edges))
	for _, e := range edges {
		c := comm[e.to]
		if _, ok := links[c]; !ok {
			order = append(order, c)
		}
		links[c] += e.weight
	}
	return order
}

// renumber maps community labels to a dense 0..k-1 range by first appearance
// in node order. Returns the rewritten labels and the community count.
func renumber(comm []int) ([]int, int) {
	dense := make(map[int]int, len(comm))
	for i, c := range comm {
		id, ok := dense[c]
		if !ok {
			id = len(dense)
			dense[c] = id
		}
		comm[i] = id
	}
	return comm, len(dense)
}

// collapse builds the next aggregation level: one super-node per community,
// inter-community weights summed, intra-community weight folded into
// self-loops.
func (lg *levelGraph) collapse(comm []int, numComms int) *levelGraph {
	next := &levelGraph{
		n:         numComms,
		neighbors: make([][]halfEdge, numComms),
		selfLoop:  make([]float64, numComms),
		degree:    make([]float64, numComms),
	}

	weights := make([]map[int]float64, numComms)
	for i := range weights {
		weights[i] = make(map[int]float64)
	}

	for u := 0; u < lg.n; u++ {
		cu := comm[u]
		next.selfLoop[cu] += lg.selfLoop[u]
		for _, e := range lg.neighbors[u] {
			cv := comm[e.to]
			if cu == cv {
				// Each undirected intra-community edge is seen from both
				// endpoints; halve to count it once.
				next.selfLoop[cu] += e.weight / 2
				continue
			}
			weights[cu][cv] += e.weight
		}
	}

	for cu := 0; cu < numComms; cu++ {
		// Deterministic neighbor order: ascending community id.
		for cv := 0; cv < numComms; cv++ {
			if w, ok := weights[cu][cv]; ok {
				next.neighbors[cu] = append(next.neighbors[cu], halfEdge{to: cv, weight: w})
			}
		}
		d := 2 * next.selfLoop[cu]
		for _, e := range next.neighbors[cu] {
			d += e.weight
		}
		next.degree[cu] = d
		next.m2 += d
	}

	return next
}
