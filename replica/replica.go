package replica

import (
	"cmp"
	"log"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"

	"lwwgraph/packages/crdt"
)

// Replica owns one LWW-Graph instance and serializes every access to it.
// The graph itself has no internal locking; the intended deployment is
// one mutator per replica with merges run by a coordinator, and this
// wrapper is that mutual exclusion. Timestamps stay caller-supplied: the
// replica does not generate or exchange clocks.
type Replica[E comparable, T cmp.Ordered] struct {
	id    string
	mu    sync.Mutex
	graph *crdt.LWWGraph[E, T]
}

// NewReplica returns a replica with an empty graph.
func NewReplica[E comparable, T cmp.Ordered](id string) *Replica[E, T] {
	return &Replica[E, T]{
		id:    id,
		graph: crdt.NewLWWGraph[E, T](),
	}
}

func (r *Replica[E, T]) ID() string {
	return r.id
}

func (r *Replica[E, T]) AddVertex(e E, t T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.graph.AddVertex(e, t)
}

func (r *Replica[E, T]) RemoveVertex(e E, t T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.graph.RemoveVertex(e, t)
}

func (r *Replica[E, T]) AddEdge(from, to E, t T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.graph.AddEdge(from, to, t)
}

func (r *Replica[E, T]) RemoveEdge(from, to E, t T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.graph.RemoveEdge(from, to, t)
}

func (r *Replica[E, T]) ContainsVertex(e E) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.graph.ContainsVertex(e)
}

func (r *Replica[E, T]) ContainsEdge(from, to E) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.graph.ContainsEdge(from, to)
}

func (r *Replica[E, T]) AllConnectedVertices(e E) mapset.Set[E] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.graph.AllConnectedVertices(e)
}

func (r *Replica[E, T]) AnyPath(from, to E) []E {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.graph.AnyPath(from, to)
}

// DOT renders the replica's currently visible graph in Graphviz notation.
func (r *Replica[E, T]) DOT() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.graph.DOT()
}

// lockPair locks both replicas in a deterministic order keyed on their
// ids, so concurrent merges between the same pair cannot deadlock.
func (r *Replica[E, T]) lockPair(other *Replica[E, T]) func() {
	if r == other {
		r.mu.Lock()
		return r.mu.Unlock
	}
	first, second := r, other
	if second.id < first.id {
		first, second = second, first
	}
	first.mu.Lock()
	second.mu.Lock()
	return func() {
		second.mu.Unlock()
		first.mu.Unlock()
	}
}

// Merge folds the other replica's state into this one. The other replica
// is only read, so its raw state catches up only once it merges back.
func (r *Replica[E, T]) Merge(other *Replica[E, T]) {
	unlock := r.lockPair(other)
	defer unlock()

	r.graph.Merge(other.graph)
	log.Println("[ REPLICA", r.id, "] MERGED STATE FROM", other.id)
}

// Sync merges both directions so the two replicas end up with identical
// raw state.
func (r *Replica[E, T]) Sync(other *Replica[E, T]) {
	unlock := r.lockPair(other)
	defer unlock()

	r.graph.Merge(other.graph)
	other.graph.Merge(r.graph)
	log.Println("[ REPLICA", r.id, "] SYNCED WITH", other.id)
}

// Equal reports whether both replicas hold structurally equal graphs.
func (r *Replica[E, T]) Equal(other *Replica[E, T]) bool {
	unlock := r.lockPair(other)
	defer unlock()

	return r.graph.Equal(other.graph)
}
