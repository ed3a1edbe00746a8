package events

import (
	"sync"
	"time"
)

type Signal string

const (
	SignalCartChanged     Signal = "cart-changed"
	SignalWishlistChanged Signal = "wishlist-changed"
)

// Event tells subscribers that something changed for a user. It carries no
// delta; consumers re-fetch current state.
type Event struct {
	Signal Signal    `json:"signal"`
	UserID string    `json:"user_id"`
	At     time.Time `json:"at"`
}

// Broker fans events out to subscribers. Publish never blocks: a subscriber
// whose buffer is full misses the event, which is fine for a
// re-fetch-on-signal contract.
type Broker struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]*Subscription
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[int]*Subscription),
	}
}

// Subscription is a handle on a broker feed. Close it on teardown or the
// broker keeps delivering into its buffer.
type Subscription struct {
	id     int
	ch     chan Event
	broker *Broker
	once   sync.Once
}

func (s *Subscription) C() <-chan Event {
	return s.ch
}

func (s *Subscription) Close() {
	s.once.Do(func() {
		s.broker.unsubscribe(s.id)
		close(s.ch)
	})
}

func (b *Broker) Subscribe(buffer int) *Subscription {
	if buffer < 1 {
		buffer = 1
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &Subscription{
		id:     b.nextID,
		ch:     make(chan Event, buffer),
		broker: b,
	}
	b.subs[sub.id] = sub
	return sub
}

func (b *Broker) unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, id)
}

func (b *Broker) Publish(signal Signal, userID string) {
	evt := Event{
		Signal: signal,
		UserID: userID,
		At:     time.Now(),
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subs {
		select {
		case sub.ch <- evt:
		default:
			// Slow subscriber, drop.
		}
	}
}
