package graph

// ComputeLevels assigns every node its depth in the include hierarchy:
// leaves (no outgoing edges) are level 0 and a node sits one above the
// deepest of its dependencies. Cycles are broken by treating a node already
// on the current path as depth 0 for that occurrence, so construction
// terminates on any graph, including self-includes and mutual includes.
//
// The traversal is an iterative depth-first walk with an explicit frame
// stack, so deep or adversarially cyclic graphs cannot exhaust the
// goroutine stack.
func ComputeLevels(g *Graph) {
	n := g.NumNodes()
	levels := make([]int, n)
	done := make([]bool, n)
	visiting := make([]bool, n)

	for i := 0; i < n; i++ {
		if !done[i] {
			computeLevelFrom(g, i, levels, done, visiting)
		}
	}

	for i, node := range g.nodes {
		node.Level = levels[i]
	}
}

// frame is one in-flight node on the traversal stack.
type frame struct {
	node int
	next int // index into out-neighbors not yet visited
	best int // max level seen among visited successors
}

// computeLevelFrom finalizes the level of start and every node reachable
// from it that completes during this walk.
func computeLevelFrom(g *Graph, start int, levels []int, done, visiting []bool) {
	stack := []frame{{node: start}}
	visiting[start] = true

	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		succs := g.out[f.node]

		if f.next < len(succs) {
			s := succs[f.next]
			f.next++

			switch {
			case done[s]:
				if levels[s] > f.best {
					f.best = levels[s]
				}
			case visiting[s]:
				// Cycle on the current path: this occurrence counts as
				// depth 0 and the node's own level is not finalized here.
			default:
				visiting[s] = true
				stack = append(stack, frame{node: s})
			}
			continue
		}

		// All successors visited: finalize.
		level := 0
		if len(succs) > 0 {
			level = 1 + f.best
		}
		levels[f.node] = level
		done[f.node] = true
		visiting[f.node] = false
		stack = stack[:len(stack)-1]

		if len(stack) > 0 {
			parent := &stack[len(stack)-1]
			if level > parent.best {
				parent.best = level
			}
		}
	}
}
