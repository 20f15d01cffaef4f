package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscribe_FilteredByOrderID(t *testing.T) {
	f := NewFeed()

	var got []OrderUpdate
	cancel := f.Subscribe("o1", func(u OrderUpdate) { got = append(got, u) })
	defer cancel()

	f.Publish(OrderUpdate{OrderID: "o1", Status: "Novo Pedido"})
	f.Publish(OrderUpdate{OrderID: "o2", Status: "Novo Pedido"})

	assert.Len(t, got, 1)
	assert.Equal(t, "o1", got[0].OrderID)
}

func TestSubscribe_EmptyOrderIDMatchesAll(t *testing.T) {
	f := NewFeed()

	var got []OrderUpdate
	cancel := f.Subscribe("", func(u OrderUpdate) { got = append(got, u) })
	defer cancel()

	f.Publish(OrderUpdate{OrderID: "o1"})
	f.Publish(OrderUpdate{OrderID: "o2"})

	assert.Len(t, got, 2)
}

func TestCancel_IsIdempotent(t *testing.T) {
	f := NewFeed()

	var got int
	cancel := f.Subscribe("o1", func(OrderUpdate) { got++ })
	cancel()
	cancel()

	f.Publish(OrderUpdate{OrderID: "o1"})
	assert.Zero(t, got)
}

func TestSubscriber_CanCancelItselfDuringPublish(t *testing.T) {
	f := NewFeed()

	var got int
	var cancel func()
	cancel = f.Subscribe("o1", func(OrderUpdate) {
		got++
		cancel()
	})

	f.Publish(OrderUpdate{OrderID: "o1"})
	f.Publish(OrderUpdate{OrderID: "o1"})

	assert.Equal(t, 1, got)
}
