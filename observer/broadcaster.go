// Package observer broadcasts "event created" and "event attested"
// notifications to any subscribed read-side, so an external REST API
// can invalidate caches without polling the persistence port.
package observer

import (
	"sync"

	"github.com/olivia-oracle/olivia/event"
	"github.com/olivia-oracle/olivia/metrics"
)

// Kind distinguishes the two notification shapes the engine emits.
type Kind int

const (
	EventCreated Kind = iota
	EventAttested
)

// Notification is one broadcast item.
type Notification struct {
	Kind Kind
	ID   event.ID
}

// subscriberBuffer bounds how many pending notifications a slow
// subscriber may accumulate before it starts losing them. Subscribers
// are best-effort by design (§4.G): a slow reader must never be able
// to block the engine.
const subscriberBuffer = 64

// Broadcaster is a multi-producer, multi-consumer best-effort fanout.
// Publish is always non-blocking: a full subscriber channel drops the
// notification for that subscriber rather than stalling the caller.
type Broadcaster struct {
	metrics *metrics.Metrics

	mu          sync.Mutex
	subscribers map[chan Notification]struct{}
}

// NewBroadcaster returns an empty Broadcaster. m may be nil.
func NewBroadcaster(m *metrics.Metrics) *Broadcaster {
	return &Broadcaster{
		metrics:     m,
		subscribers: make(map[chan Notification]struct{}),
	}
}

// Subscribe registers a new subscriber and returns its channel and an
// unsubscribe function. Callers must call unsubscribe when done, or
// the channel (and its goroutine's hold on it) leaks.
func (b *Broadcaster) Subscribe() (<-chan Notification, func()) {
	ch := make(chan Notification, subscriberBuffer)
	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	b.mu.Unlock()

	unsubscribe := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subscribers[ch]; ok {
			delete(b.subscribers, ch)
			close(ch)
		}
	}
	return ch, unsubscribe
}

// Publish fans n out to every current subscriber. A nil Broadcaster is
// a valid no-op receiver, so components that construct their engine
// without wiring an observer do not need a guard check.
func (b *Broadcaster) Publish(n Notification) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subscribers {
		select {
		case ch <- n:
		default:
			b.metrics.IncSubscriberDrops()
		}
	}
}
