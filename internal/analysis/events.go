package analysis

import "sync"

// EventKind identifies an asynchronous cache signal.
type EventKind string

const (
	// EventAnalyzed is emitted when a document analysis lands in the cache.
	EventAnalyzed EventKind = "analyzed"
	// EventSuggestionsReady is emitted when filename suggestions were attached to a record.
	EventSuggestionsReady EventKind = "suggestions_ready"
)

// Event is a cache signal for one document.
type Event struct {
	Kind EventKind `json:"kind"`
	Path string    `json:"path"`
}

const subscriberBuffer = 64

// broadcaster fans events out to subscribers. Slow subscribers lose events
// instead of blocking the workers.
type broadcaster struct {
	mu     sync.Mutex
	subs   map[int]chan Event
	next   int
	closed bool
}

func newBroadcaster() *broadcaster {
	return &broadcaster{subs: make(map[int]chan Event)}
}

func (b *broadcaster) subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.next
	b.next++
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub)
			}
		})
	}
}

func (b *broadcaster) publish(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

func (b *broadcaster) close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
