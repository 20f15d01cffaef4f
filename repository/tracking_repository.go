package repository

import (
	"github.com/digitalpersonal/guarafood-app-sub001/entity"
)

const historyLimit = 50

// TrackingRepository persists the set of tracked/active order ids and the
// local order history per device key.
type TrackingRepository struct{ KV *KVRepository }

func NewTrackingRepository(kv *KVRepository) *TrackingRepository {
	return &TrackingRepository{KV: kv}
}

func trackedKey(deviceKey string) string { return "tracked-orders:" + deviceKey }
func historyKey(deviceKey string) string { return "order-history:" + deviceKey }

func (r *TrackingRepository) TrackedIDs(deviceKey string) ([]string, error) {
	var ids []string
	found, err := r.KV.Get(trackedKey(deviceKey), &ids)
	if err != nil {
		return nil, err
	}
	if !found || ids == nil {
		return []string{}, nil
	}
	return ids, nil
}

// AddTrackedID registers an order id; duplicates are ignored.
func (r *TrackingRepository) AddTrackedID(deviceKey, orderID string) error {
	ids, err := r.TrackedIDs(deviceKey)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id == orderID {
			return nil
		}
	}
	return r.KV.Set(trackedKey(deviceKey), append(ids, orderID))
}

func (r *TrackingRepository) RemoveTrackedID(deviceKey, orderID string) error {
	ids, err := r.TrackedIDs(deviceKey)
	if err != nil {
		return err
	}
	out := ids[:0]
	for _, id := range ids {
		if id != orderID {
			out = append(out, id)
		}
	}
	return r.KV.Set(trackedKey(deviceKey), out)
}

// AppendHistory records a finalized order locally, newest first, capped.
func (r *TrackingRepository) AppendHistory(deviceKey string, o *entity.Order) error {
	orders, err := r.History(deviceKey)
	if err != nil {
		return err
	}
	orders = append([]entity.Order{*o}, orders...)
	if len(orders) > historyLimit {
		orders = orders[:historyLimit]
	}
	return r.KV.Set(historyKey(deviceKey), orders)
}

func (r *TrackingRepository) History(deviceKey string) ([]entity.Order, error) {
	var orders []entity.Order
	found, err := r.KV.Get(historyKey(deviceKey), &orders)
	if err != nil {
		return nil, err
	}
	if !found || orders == nil {
		return []entity.Order{}, nil
	}
	return orders, nil
}
