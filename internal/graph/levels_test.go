package graph

import "testing"

// makeGraph builds a graph from id lists and edges.
func makeGraph(t *testing.T, ids []string, edges [][2]string) *Graph {
	t.Helper()
	g := NewGraph()
	for _, id := range ids {
		g.AddNode(&Node{ID: id})
	}
	for _, e := range edges {
		if !g.AddEdge(e[0], e[1]) {
			t.Fatalf("AddEdge(%q, %q) failed", e[0], e[1])
		}
	}
	return g
}

func level(t *testing.T, g *Graph, id string) int {
	t.Helper()
	n := g.NodeByID(id)
	if n == nil {
		t.Fatalf("no node %q", id)
	}
	return n.Level
}

func TestComputeLevelsLeafIsZero(t *testing.T) {
	g := makeGraph(t, []string{"a"}, nil)
	ComputeLevels(g)
	if got := level(t, g, "a"); got != 0 {
		t.Errorf("leaf level = %d, want 0", got)
	}
}

func TestComputeLevelsChain(t *testing.T) {
	g := makeGraph(t, []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}})
	ComputeLevels(g)

	want := map[string]int{"c": 0, "b": 1, "a": 2}
	for id, w := range want {
		if got := level(t, g, id); got != w {
			t.Errorf("level(%s) = %d, want %d", id, got, w)
		}
	}
	if g.MaxLevel() != 2 {
		t.Errorf("MaxLevel() = %d, want 2", g.MaxLevel())
	}
}

func TestComputeLevelsDiamond(t *testing.T) {
	g := makeGraph(t, []string{"top", "l", "r", "base"}, [][2]string{
		{"top", "l"}, {"top", "r"}, {"l", "base"}, {"r", "base"},
	})
	ComputeLevels(g)

	if got := level(t, g, "base"); got != 0 {
		t.Errorf("level(base) = %d, want 0", got)
	}
	if got := level(t, g, "top"); got != 2 {
		t.Errorf("level(top) = %d, want 2", got)
	}
}

func TestComputeLevelsDeepestSuccessorWins(t *testing.T) {
	// a depends on both a leaf and a chain of depth 2.
	g := makeGraph(t, []string{"a", "leaf", "m", "base"}, [][2]string{
		{"a", "leaf"}, {"a", "m"}, {"m", "base"},
	})
	ComputeLevels(g)

	if got := level(t, g, "a"); got != 2 {
		t.Errorf("level(a) = %d, want 2 (1 + deepest successor)", got)
	}
}

func TestComputeLevelsSelfInclude(t *testing.T) {
	g := makeGraph(t, []string{"a"}, [][2]string{{"a", "a"}})
	ComputeLevels(g)

	// The cycle occurrence contributes depth 0; the node still counts its
	// outgoing edge.
	if got := level(t, g, "a"); got != 1 {
		t.Errorf("level(a) = %d, want 1", got)
	}
}

func TestComputeLevelsMutualIncludeTerminates(t *testing.T) {
	g := makeGraph(t, []string{"a", "b"}, [][2]string{{"a", "b"}, {"b", "a"}})
	ComputeLevels(g)

	for _, id := range []string{"a", "b"} {
		if got := level(t, g, id); got < 0 || got > 2 {
			t.Errorf("level(%s) = %d, want a small non-negative value", id, got)
		}
	}
}

func TestComputeLevelsLargeCycleWithTail(t *testing.T) {
	// Cycle a->b->c->a with a tail c->leaf. Must terminate and keep the
	// leaf at 0.
	g := makeGraph(t, []string{"a", "b", "c", "leaf"}, [][2]string{
		{"a", "b"}, {"b", "c"}, {"c", "a"}, {"c", "leaf"},
	})
	ComputeLevels(g)

	if got := level(t, g, "leaf"); got != 0 {
		t.Errorf("level(leaf) = %d, want 0", got)
	}
	for _, id := range []string{"a", "b", "c"} {
		if got := level(t, g, id); got < 1 {
			t.Errorf("level(%s) = %d, want >= 1 (has outgoing edges)", id, got)
		}
	}
}
