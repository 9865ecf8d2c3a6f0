package replica

import (
	"math/rand"
	"reflect"
	"strconv"
	"sync"
	"testing"
	"testing/quick"

	"github.com/jmcvetta/randutil"
	"github.com/stretchr/testify/require"
)

type graphOp struct {
	kind int // 0 add vertex, 1 remove vertex, 2 add edge, 3 remove edge
	from int
	to   int
	time int
}

func applyOp(r *Replica[int, int], o graphOp) {
	switch o.kind {
	case 0:
		r.AddVertex(o.from, o.time)
	case 1:
		r.RemoveVertex(o.from, o.time)
	case 2:
		r.AddEdge(o.from, o.to, o.time)
	case 3:
		r.RemoveEdge(o.from, o.to, o.time)
	}
}

// Replicas mutated independently on their own goroutines must hold
// identical raw state after everyone has exchanged state both ways.
func TestReplicaConvergence(t *testing.T) {

	property := func(history [][]graphOp) bool {
		replicas := make([]*Replica[int, int], len(history))
		for i := range replicas {
			replicas[i] = NewReplica[int, int](strconv.Itoa(i))
		}

		var wg sync.WaitGroup
		for i := range replicas {
			wg.Add(1)
			go func(r *Replica[int, int], ops []graphOp) {
				defer wg.Done()
				for _, o := range ops {
					applyOp(r, o)
				}
			}(replicas[i], history[i])
		}
		wg.Wait()

		// Two gossip rounds through replica 0: the first makes replica 0
		// complete, the second spreads the complete state back out.
		for round := 0; round < 2; round++ {
			for _, r := range replicas[1:] {
				r.Sync(replicas[0])
			}
		}

		for _, r := range replicas[1:] {
			if !r.Equal(replicas[0]) {
				return false
			}
		}
		return true
	}

	// Generator producing a random operation history per replica.
	gen := func(vals []reflect.Value, _ *rand.Rand) {
		numReplicas, _ := randutil.IntRange(2, 6)
		history := make([][]graphOp, numReplicas)
		for i := range history {
			numOps, _ := randutil.IntRange(5, 40)
			ops := make([]graphOp, numOps)
			for j := range ops {
				kind, _ := randutil.IntRange(0, 4)
				from, _ := randutil.IntRange(0, 8)
				to, _ := randutil.IntRange(0, 8)
				time, _ := randutil.IntRange(0, 50)
				ops[j] = graphOp{kind: kind, from: from, to: to, time: time}
			}
			history[i] = ops
		}
		vals[0] = reflect.ValueOf(history)
	}

	require.NoError(t, quick.Check(property, &quick.Config{
		MaxCount: 25,
		Values:   gen,
	}))
}

func TestReplicaMergeIsDirectional(t *testing.T) {
	a := NewReplica[string, int]("a")
	b := NewReplica[string, int]("b")

	a.AddVertex("x", 1)
	b.AddVertex("y", 2)

	a.Merge(b)

	require.True(t, a.ContainsVertex("x"))
	require.True(t, a.ContainsVertex("y"))
	require.False(t, b.ContainsVertex("x"))
	require.False(t, a.Equal(b))

	b.Merge(a)
	require.True(t, a.Equal(b))
}

func TestReplicaSyncConverges(t *testing.T) {
	a := NewReplica[string, int]("a")
	b := NewReplica[string, int]("b")

	a.AddVertex("x", 1)
	a.AddVertex("y", 1)
	a.AddEdge("x", "y", 2)

	b.AddVertex("x", 1)
	b.RemoveVertex("y", 3)

	a.Sync(b)

	require.True(t, a.Equal(b))
	require.True(t, a.ContainsVertex("x"))
	require.False(t, a.ContainsVertex("y"))
	require.False(t, a.ContainsEdge("x", "y"))
}

func TestReplicaSelfSyncIsIdempotent(t *testing.T) {
	a := NewReplica[string, int]("a")
	a.AddVertex("x", 1)
	a.AddEdge("x", "x", 2)

	reference := NewReplica[string, int]("ref")
	reference.Merge(a)

	a.Sync(a)
	require.True(t, a.Equal(reference))
}

// Merges issued concurrently from both sides must not deadlock and must
// still converge, since lockPair orders the locks by replica id.
func TestReplicaConcurrentMerges(t *testing.T) {
	a := NewReplica[int, int]("a")
	b := NewReplica[int, int]("b")

	for i := 0; i < 10; i++ {
		a.AddVertex(i, i)
		b.AddVertex(100+i, i)
		b.AddEdge(100+i, 100+i, i+1)
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			a.Merge(b)
		}()
		go func() {
			defer wg.Done()
			b.Merge(a)
		}()
	}
	wg.Wait()

	require.True(t, a.Equal(b))
}
