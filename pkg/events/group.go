package events

import "sync"

// Group ties a set of subscriptions to one subscriber's lifetime: subscribe
// through the group when the subscriber attaches and Close it when the
// subscriber detaches.
type Group struct {
	bus    *Bus
	mu     sync.Mutex
	subs   []*Subscription
	closed bool
}

// Group starts a new subscription group on b.
func (b *Bus) Group() *Group {
	return &Group{bus: b}
}

// Subscribe registers handler and tracks the subscription. On a closed group
// the returned subscription is already released.
func (g *Group) Subscribe(topic Topic, handler Handler) *Subscription {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		sub := &Subscription{topic: topic}
		sub.released.Store(true)
		return sub
	}
	sub := g.bus.Subscribe(topic, handler)
	g.subs = append(g.subs, sub)
	return sub
}

// Len returns the number of subscriptions still active in the group.
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, sub := range g.subs {
		if sub.Active() {
			n++
		}
	}
	return n
}

// Close releases every subscription in the group. Idempotent.
func (g *Group) Close() {
	g.mu.Lock()
	subs := g.subs
	g.subs = nil
	g.closed = true
	g.mu.Unlock()
	for _, sub := range subs {
		sub.Unsubscribe()
	}
}
