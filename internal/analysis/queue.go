package analysis

import (
	"container/heap"
	"context"
	"sync"
	"time"
)

// Task priorities. Lower numbers are served first; values between the
// named tiers are allowed.
const (
	PriorityStop       = 0
	PriorityUrgent     = 1
	PriorityBackground = 10
)

type taskKind int

const (
	kindWork taskKind = iota
	kindStop
)

type task[T any] struct {
	kind       taskKind
	priority   int
	seq        uint64
	enqueuedAt time.Time
	path       string
	payload    T
	index      int
}

// taskHeap orders by priority, then by enqueue sequence.
type taskHeap[T any] []*task[T]

func (h taskHeap[T]) Len() int { return len(h) }

func (h taskHeap[T]) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	return h[i].seq < h[j].seq
}

func (h taskHeap[T]) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *taskHeap[T]) Push(x any) {
	t := x.(*task[T])
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *taskHeap[T]) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

// priorityQueue is a blocking priority queue shared by one consumer and any
// number of producers.
type priorityQueue[T any] struct {
	mu     sync.Mutex
	items  taskHeap[T]
	seq    uint64
	notify chan struct{}
	now    func() time.Time
}

func newPriorityQueue[T any]() *priorityQueue[T] {
	return &priorityQueue[T]{
		notify: make(chan struct{}, 1),
		now:    time.Now,
	}
}

func (q *priorityQueue[T]) push(path string, priority int, payload T) {
	q.pushTask(&task[T]{kind: kindWork, priority: priority, path: path, payload: payload})
}

// pushStop enqueues the typed stop message ahead of all work.
func (q *priorityQueue[T]) pushStop() {
	q.pushTask(&task[T]{kind: kindStop, priority: PriorityStop})
}

func (q *priorityQueue[T]) pushTask(t *task[T]) {
	q.mu.Lock()
	q.seq++
	t.seq = q.seq
	t.enqueuedAt = q.now()
	heap.Push(&q.items, t)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// promote raises the urgency of a queued task for path. It returns false
// when no such task is queued or the queued task is already as urgent.
// The task keeps its sequence number, so FIFO order within the new band
// follows the original enqueue order.
func (q *priorityQueue[T]) promote(path string, priority int) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, t := range q.items {
		if t.kind != kindWork || t.path != path {
			continue
		}
		if t.priority <= priority {
			return false
		}
		t.priority = priority
		heap.Fix(&q.items, t.index)
		return true
	}
	return false
}

// pop removes the most urgent task. When the queue is empty it waits up to
// wait for a push and reports false if none arrives or ctx ends.
func (q *priorityQueue[T]) pop(ctx context.Context, wait time.Duration) (*task[T], bool) {
	timer := time.NewTimer(wait)
	defer timer.Stop()

	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			t := heap.Pop(&q.items).(*task[T])
			q.mu.Unlock()
			return t, true
		}
		q.mu.Unlock()

		select {
		case <-q.notify:
		case <-timer.C:
			return nil, false
		case <-ctx.Done():
			return nil, false
		}
	}
}

// size returns the number of queued work tasks.
func (q *priorityQueue[T]) size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := 0
	for _, t := range q.items {
		if t.kind == kindWork {
			n++
		}
	}
	return n
}

func (q *priorityQueue[T]) contains(path string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, t := range q.items {
		if t.kind == kindWork && t.path == path {
			return true
		}
	}
	return false
}
