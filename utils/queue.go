package utils

import "sync"

// Queue is a FIFO queue.
type Queue[V any] struct {
	q  []V
	mu sync.Mutex
}

// NewQueue returns a new empty queue
func NewQueue[V any]() *Queue[V] {
	return &Queue[V]{}
}

func (queue *Queue[V]) Enqueue(element V) {
	queue.mu.Lock()
	defer queue.mu.Unlock()
	queue.q = append(queue.q, element) // Simply append to enqueue.
}

// Dequeue pops the front of the queue. The second return value is false
// on underflow.
func (queue *Queue[V]) Dequeue() (V, bool) {
	queue.mu.Lock()
	defer queue.mu.Unlock()
	var zero V
	if len(queue.q) == 0 {
		return zero, false
	}
	element := queue.q[0]
	queue.q[0] = zero // Drop the reference once it is dequeued.
	queue.q = queue.q[1:]
	return element, true
}

func (queue *Queue[V]) Len() int {
	queue.mu.Lock()
	defer queue.mu.Unlock()
	return len(queue.q)
}
