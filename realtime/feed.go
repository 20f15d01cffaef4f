package realtime

import "sync"

// OrderUpdate is one change-feed event for the orders collection.
type OrderUpdate struct {
	OrderID       string `json:"orderId"`
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus,omitempty"`
}

type subscription struct {
	orderID string // "" subscribes to every update
	fn      func(OrderUpdate)
}

// Feed fans order updates out to in-process subscribers. Both the checkout
// payment watcher (filtered by order id) and the tracking panels
// (unfiltered) hang off it; publishers are the AMQP consumer and tests.
type Feed struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]subscription
}

func NewFeed() *Feed {
	return &Feed{subs: make(map[int]subscription)}
}

// Subscribe registers fn for updates matching orderID (empty matches all)
// and returns the cancel function. Cancel is idempotent and must be called
// on every exit path of the subscriber.
func (f *Feed) Subscribe(orderID string, fn func(OrderUpdate)) (cancel func()) {
	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.subs[id] = subscription{orderID: orderID, fn: fn}
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs, id)
			f.mu.Unlock()
		})
	}
}

// Publish delivers the update to matching subscribers. Callbacks run
// outside the feed lock so a subscriber may cancel itself while handling.
func (f *Feed) Publish(u OrderUpdate) {
	f.mu.Lock()
	fns := make([]func(OrderUpdate), 0, len(f.subs))
	for _, s := range f.subs {
		if s.orderID == "" || s.orderID == u.OrderID {
			fns = append(fns, s.fn)
		}
	}
	f.mu.Unlock()

	for _, fn := range fns {
		fn(u)
	}
}
