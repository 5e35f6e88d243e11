// Package events is a topic-keyed publish/subscribe bus used to signal across
// screens that hold no references to each other. Handlers run synchronously on
// the publishing goroutine, in subscription order.
package events

import (
	"fmt"
	"sync"
	"sync/atomic"

	"tableflip.dev/sobok/pkg/log"
)

// Topic names a stream of payloads.
type Topic string

// Handler receives one published payload. Handlers must not block; hand any
// I/O off to another goroutine.
type Handler func(topic Topic, payload any)

// Bus holds the handler registry. The zero value is not usable; call NewBus.
type Bus struct {
	mu   sync.Mutex
	next uint64
	subs map[Topic][]*Subscription
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Topic][]*Subscription)}
}

// Subscription is the handle returned by Subscribe. Its owner must call
// Unsubscribe before it goes away; Group does this for a whole lifetime.
type Subscription struct {
	bus      *Bus
	topic    Topic
	id       uint64
	handler  Handler
	released atomic.Bool
}

// Topic returns the subscribed topic.
func (s *Subscription) Topic() Topic {
	return s.topic
}

// Active reports whether the handler is still registered.
func (s *Subscription) Active() bool {
	return s != nil && !s.released.Load()
}

// Unsubscribe removes the handler. Safe to call more than once, and safe to
// call from inside a handler; a released handler is never invoked again, even
// by a publish already in progress.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.released.Swap(true) {
		return
	}
	if s.bus != nil {
		s.bus.remove(s)
	}
}

// Subscribe registers handler for topic.
func (b *Bus) Subscribe(topic Topic, handler Handler) *Subscription {
	sub := &Subscription{bus: b, topic: topic, handler: handler}
	if handler == nil {
		sub.released.Store(true)
		return sub
	}
	b.mu.Lock()
	b.next++
	sub.id = b.next
	b.subs[topic] = append(b.subs[topic], sub)
	b.mu.Unlock()
	return sub
}

// HandlerError reports a handler that panicked during Publish.
type HandlerError struct {
	Topic          Topic
	SubscriptionID uint64
	Recovered      any
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("events: handler %d for %q panicked: %v", e.SubscriptionID, e.Topic, e.Recovered)
}

// Delivery summarises one Publish call.
type Delivery struct {
	Invoked  int
	Failures []*HandlerError
}

// Publish invokes every handler registered for topic, in subscription order.
// A panicking handler is recovered and recorded; the remaining handlers still
// run.
func (b *Bus) Publish(topic Topic, payload any) Delivery {
	b.mu.Lock()
	handlers := append([]*Subscription(nil), b.subs[topic]...)
	b.mu.Unlock()

	var d Delivery
	for _, sub := range handlers {
		if !sub.Active() {
			continue
		}
		d.Invoked++
		if err := invoke(sub, topic, payload); err != nil {
			log.Error("events: handler failed", err, "topic", topic)
			d.Failures = append(d.Failures, err)
		}
	}
	return d
}

// Count returns the number of active subscriptions for topic.
func (b *Bus) Count(topic Topic) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[topic])
}

func invoke(sub *Subscription, topic Topic, payload any) (err *HandlerError) {
	defer func() {
		if r := recover(); r != nil {
			err = &HandlerError{Topic: topic, SubscriptionID: sub.id, Recovered: r}
		}
	}()
	sub.handler(topic, payload)
	return nil
}

func (b *Bus) remove(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := b.subs[sub.topic]
	for i, candidate := range list {
		if candidate == sub {
			// Copy so publishes holding the old slice are unaffected.
			next := make([]*Subscription, 0, len(list)-1)
			next = append(next, list[:i]...)
			next = append(next, list[i+1:]...)
			if len(next) == 0 {
				delete(b.subs, sub.topic)
			} else {
				b.subs[sub.topic] = next
			}
			return
		}
	}
}
