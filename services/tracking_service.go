package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/digitalpersonal/guarafood-app-sub001/entity"
	"github.com/digitalpersonal/guarafood-app-sub001/realtime"
	"github.com/digitalpersonal/guarafood-app-sub001/repository"
)

// TrackingDeps are the collaborators of the order-tracking panels.
type TrackingDeps struct {
	Orders   OrderClient
	Repo     *repository.TrackingRepository
	Feed     *realtime.Feed
	Notifier Notifier
	Log      *logrus.Logger

	// Poll intervals; the short one applies while any tracked order is
	// awaiting payment. Defaults: 10s / 30s.
	ActiveInterval time.Duration
	IdleInterval   time.Duration
}

func (d *TrackingDeps) activeInterval() time.Duration {
	if d.ActiveInterval > 0 {
		return d.ActiveInterval
	}
	return 10 * time.Second
}

func (d *TrackingDeps) idleInterval() time.Duration {
	if d.IdleInterval > 0 {
		return d.IdleInterval
	}
	return 30 * time.Second
}

// TrackingManager hands out one running panel per device key.
type TrackingManager struct {
	deps *TrackingDeps

	mu     sync.Mutex
	panels map[string]*TrackingPanel
}

func NewTrackingManager(deps *TrackingDeps) *TrackingManager {
	return &TrackingManager{deps: deps, panels: make(map[string]*TrackingPanel)}
}

func (m *TrackingManager) Panel(deviceKey string) *TrackingPanel {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.panels[deviceKey]; ok {
		return p
	}
	p := newTrackingPanel(deviceKey, m.deps)
	p.Start()
	m.panels[deviceKey] = p
	return p
}

func (m *TrackingManager) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, p := range m.panels {
		p.Stop()
		delete(m.panels, k)
	}
}

// TrackingPanel follows the tracked/active order set of one device: it
// polls, listens to the realtime feed, diffs statuses to decide when to
// chime and toast, and never mutates order status itself.
type TrackingPanel struct {
	deviceKey string
	deps      *TrackingDeps

	mu          sync.Mutex
	known       map[string]string // order id -> last seen status
	orders      []entity.Order    // last non-terminal snapshot
	activeCount int

	stop        chan struct{}
	stopOnce    sync.Once
	unsubscribe func()
}

func newTrackingPanel(deviceKey string, deps *TrackingDeps) *TrackingPanel {
	return &TrackingPanel{
		deviceKey: deviceKey,
		deps:      deps,
		known:     make(map[string]string),
		stop:      make(chan struct{}),
	}
}

// Start performs the initial refresh, subscribes to the change feed (any
// orders-collection update is a cue to re-fetch, filtered against the
// tracked id set) and launches the poll loop.
func (p *TrackingPanel) Start() {
	p.Refresh(context.Background())

	p.unsubscribe = p.deps.Feed.Subscribe("", func(u realtime.OrderUpdate) {
		if p.tracks(u.OrderID) {
			p.Refresh(context.Background())
		}
	})

	go p.loop()
}

func (p *TrackingPanel) loop() {
	for {
		select {
		case <-p.stop:
			return
		case <-time.After(p.interval()):
			p.Refresh(context.Background())
		}
	}
}

// interval shortens while any tracked order awaits payment.
func (p *TrackingPanel) interval() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, st := range p.known {
		if st == entity.StatusAwaitingPayment {
			return p.deps.activeInterval()
		}
	}
	return p.deps.idleInterval()
}

func (p *TrackingPanel) tracks(orderID string) bool {
	ids, err := p.deps.Repo.TrackedIDs(p.deviceKey)
	if err != nil {
		return false
	}
	for _, id := range ids {
		if id == orderID {
			return true
		}
	}
	return false
}

// Refresh re-fetches every tracked order and diffs against the previous
// snapshot: a changed status chimes and toasts; a grown active count
// chimes. It is idempotent and safe to call concurrently from the timer,
// the feed and UI triggers; fetch failures are logged and skipped.
func (p *TrackingPanel) Refresh(ctx context.Context) {
	ids, err := p.deps.Repo.TrackedIDs(p.deviceKey)
	if err != nil {
		p.deps.Log.Warnf("tracking: load tracked ids: %v", err)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if len(ids) == 0 {
		p.known = make(map[string]string)
		p.orders = nil
		p.activeCount = 0
		return
	}

	fetched, err := p.deps.Orders.ListByIDs(ctx, ids)
	if err != nil {
		p.deps.Log.Warnf("tracking: fetch orders: %v", err)
		return
	}

	active := make([]entity.Order, 0, len(fetched))
	known := make(map[string]string, len(fetched))
	statusChanged := false
	for _, o := range fetched {
		known[o.ID] = o.Status
		if !entity.StatusTerminal(o.Status) {
			active = append(active, o)
		}
		if prev, ok := p.known[o.ID]; ok && prev != o.Status {
			statusChanged = true
			p.deps.Notifier.Toast(p.deviceKey, fmt.Sprintf("Pedido #%d: %s", o.OrderNumber, o.Status))
		}
	}
	if statusChanged || len(active) > p.activeCount {
		p.deps.Notifier.Chime(p.deviceKey)
	}

	p.known = known
	p.orders = active
	p.activeCount = len(active)
}

// Orders returns the last non-terminal snapshot.
func (p *TrackingPanel) Orders() []entity.Order {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]entity.Order(nil), p.orders...)
}

// Untrack removes the order from the persisted id set and the snapshot.
func (p *TrackingPanel) Untrack(orderID string) error {
	if err := p.deps.Repo.RemoveTrackedID(p.deviceKey, orderID); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.known, orderID)
	out := p.orders[:0]
	for _, o := range p.orders {
		if o.ID != orderID {
			out = append(out, o)
		}
	}
	p.orders = out
	if p.activeCount > len(out) {
		p.activeCount = len(out)
	}
	return nil
}

// NotifyOrdersChanged is the cross-component "orders changed" cue.
func (p *TrackingPanel) NotifyOrdersChanged(ctx context.Context) { p.Refresh(ctx) }

// HandleFocus re-fetches when the storefront window regains focus.
func (p *TrackingPanel) HandleFocus(ctx context.Context) { p.Refresh(ctx) }

// Stop cancels the poll loop and the feed subscription.
func (p *TrackingPanel) Stop() {
	p.stopOnce.Do(func() {
		close(p.stop)
		if p.unsubscribe != nil {
			p.unsubscribe()
		}
	})
}
