package crdt

import (
	"fmt"

	"github.com/dominikbraun/graph"
	"github.com/emicklei/dot"
)

// visibleEdges calls f for every currently valid directed edge.
func (g *LWWGraph[E, T]) visibleEdges(f func(from, to E)) {
	for from, es := range g.edges {
		for to := range es.add {
			if g.ContainsEdge(from, to) {
				f(from, to)
			}
		}
	}
}

// Materialize builds a plain directed graph out of the currently visible
// vertices and edges, usable with the algorithms shipped by
// dominikbraun/graph. The result is a snapshot of derived state only; the
// CRDT history is not carried over and the receiver is not mutated.
func (g *LWWGraph[E, T]) Materialize() (graph.Graph[E, E], error) {
	res := graph.New(func(e E) E { return e }, graph.Directed())

	for e := range g.vertices.add {
		if !g.vertices.Contains(e) {
			continue
		}
		if err := res.AddVertex(e); err != nil {
			return nil, fmt.Errorf("materialize vertex %v: %w", e, err)
		}
	}

	var err error
	g.visibleEdges(func(from, to E) {
		if err != nil {
			return
		}
		if e := res.AddEdge(from, to); e != nil {
			err = fmt.Errorf("materialize edge %v -> %v: %w", from, to, e)
		}
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// DOT renders the currently visible graph in Graphviz DOT notation.
// Vertex keys are formatted with fmt.Sprint as node identifiers.
func (g *LWWGraph[E, T]) DOT() string {
	res := dot.NewGraph(dot.Directed)

	for e := range g.vertices.add {
		if g.vertices.Contains(e) {
			res.Node(fmt.Sprint(e))
		}
	}

	g.visibleEdges(func(from, to E) {
		res.Edge(res.Node(fmt.Sprint(from)), res.Node(fmt.Sprint(to)))
	})

	return res.String()
}
