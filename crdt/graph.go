package crdt

import (
	"cmp"

	mapset "github.com/deckarep/golang-set/v2"

	"lwwgraph/packages/utils"
)

// LWWGraph is a state-based Last-Writer-Wins directed graph. It stores
// vertex keys and edges between them, no payload data.
//
// Vertices live in one LWWSet; edges live in one LWWSet of destination
// keys per source key. An edge entry never owns its endpoints: removing a
// vertex leaves the incident edge history in place and only changes which
// edges ContainsEdge reports as valid. Like the sets it is built from,
// the graph keeps its whole history, so Merge stays commutative,
// associative and idempotent.
type LWWGraph[E comparable, T cmp.Ordered] struct {
	vertices *LWWSet[E, T]
	edges    map[E]*LWWSet[E, T]
}

// NewLWWGraph returns an empty graph.
func NewLWWGraph[E comparable, T cmp.Ordered]() *LWWGraph[E, T] {
	return &LWWGraph[E, T]{
		vertices: NewLWWSet[E, T](),
		edges:    make(map[E]*LWWSet[E, T]),
	}
}

// AddVertex records an add of vertex e at time t.
func (g *LWWGraph[E, T]) AddVertex(e E, t T) {
	g.vertices.Add(e, t)
}

// RemoveVertex records a removal of vertex e at time t. Edges incident to
// e are not touched; they become invisible through ContainsEdge for as
// long as their add timestamp does not exceed t.
func (g *LWWGraph[E, T]) RemoveVertex(e E, t T) {
	g.vertices.Remove(e, t)
}

// ContainsVertex reports whether vertex e is currently in the graph.
func (g *LWWGraph[E, T]) ContainsVertex(e E) bool {
	return g.vertices.Contains(e)
}

// edgesFrom returns the edge set of the given source vertex, creating it
// on first touch.
func (g *LWWGraph[E, T]) edgesFrom(from E) *LWWSet[E, T] {
	es, ok := g.edges[from]
	if !ok {
		es = NewLWWSet[E, T]()
		g.edges[from] = es
	}
	return es
}

// AddEdge records an add of the directed edge from -> to at time t. The
// endpoints need not be in the graph yet; the edge simply stays invalid
// until vertex adds with compatible timestamps are observed.
func (g *LWWGraph[E, T]) AddEdge(from, to E, t T) {
	g.edgesFrom(from).Add(to, t)
}

// RemoveEdge records a removal of the directed edge from -> to at time t.
func (g *LWWGraph[E, T]) RemoveEdge(from, to E, t T) {
	g.edgesFrom(from).Remove(to, t)
}

// ContainsEdge reports whether the directed edge from -> to is currently
// valid. Validity requires all of:
//
//  1. the structural edge set of from contains to,
//  2. both endpoints pass ContainsVertex,
//  3. no endpoint has a removal at or after the edge's add timestamp
//     (a vertex removal invalidates every edge added no later than it),
//  4. the edge's add timestamp is at least both endpoints' add
//     timestamps (an edge cannot predate its vertices; equal timestamps
//     count as concurrent and are allowed).
//
// The comparison operators differ deliberately between rules 3 and 4;
// changing either one changes which edges survive concurrent updates at
// tied timestamps.
func (g *LWWGraph[E, T]) ContainsEdge(from, to E) bool {
	es, ok := g.edges[from]
	if !ok || !es.Contains(to) {
		return false
	}

	if !g.ContainsVertex(from) || !g.ContainsVertex(to) {
		return false
	}

	at := es.add[to]

	if rt, ok := g.vertices.remove[from]; ok && at <= rt {
		return false
	}
	if rt, ok := g.vertices.remove[to]; ok && at <= rt {
		return false
	}

	return at >= g.vertices.add[from] && at >= g.vertices.add[to]
}

// Merge folds the other graph's history into g: the vertex sets are
// joined, then every edge set of the other graph is joined into the local
// one for the same source, creating it if absent. The other graph is only
// read.
func (g *LWWGraph[E, T]) Merge(other *LWWGraph[E, T]) {
	g.vertices.Merge(other.vertices)

	for from, es := range other.edges {
		g.edgesFrom(from).Merge(es)
	}
}

// AllConnectedVertices returns the distinct neighbors of e over currently
// valid edges, in either direction. There is no reverse index, so the
// scan costs O(total structural edges).
func (g *LWWGraph[E, T]) AllConnectedVertices(e E) mapset.Set[E] {
	res := mapset.NewSet[E]()

	for from, es := range g.edges {
		if from == e {
			for to := range es.add {
				if g.ContainsEdge(from, to) {
					res.Add(to)
				}
			}
		} else if es.AddExist(e) && g.ContainsEdge(from, e) {
			res.Add(from)
		}
	}

	return res
}

// AnyPath searches for a path over directed, currently valid edges and
// returns the shortest sequence of vertices from from to to inclusive.
// When from == to the path is the single vertex itself. A nil slice means
// an endpoint is absent or no valid path exists. With several shortest
// paths, which one is returned depends on map iteration order.
//
// Iterative breadth-first search; a source with no recorded outgoing
// edges is an empty adjacency, not an error.
func (g *LWWGraph[E, T]) AnyPath(from, to E) []E {
	if !g.ContainsVertex(from) || !g.ContainsVertex(to) {
		return nil
	}

	queue := utils.NewQueue[E]()
	previous := map[E]E{from: from}

	queue.Enqueue(from)

	for {
		e, ok := queue.Dequeue()
		if !ok {
			break
		}

		if e == to {
			var path []E
			for ; e != from; e = previous[e] {
				path = append(path, e)
			}
			path = append(path, e)

			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}

			return path
		}

		es, ok := g.edges[e]
		if !ok {
			continue
		}
		for next := range es.add {
			if _, seen := previous[next]; !seen && g.ContainsEdge(e, next) {
				previous[next] = e
				queue.Enqueue(next)
			}
		}
	}

	return nil
}

// Equal reports whether both graphs hold exactly the same vertex sets and
// edge-set mappings. Raw state, not derived visibility: two replicas
// compare equal only once their merges have propagated both ways.
func (g *LWWGraph[E, T]) Equal(other *LWWGraph[E, T]) bool {
	if !g.vertices.Equal(other.vertices) {
		return false
	}
	if len(g.edges) != len(other.edges) {
		return false
	}
	for from, es := range g.edges {
		oes, ok := other.edges[from]
		if !ok || !es.Equal(oes) {
			return false
		}
	}
	return true
}
