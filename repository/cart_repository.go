package repository

import (
	"github.com/digitalpersonal/guarafood-app-sub001/entity"
)

// CartRepository persists the full cart ledger per device key. Every cart
// mutation writes the whole ledger back; reads hydrate it or start empty.
type CartRepository struct{ KV *KVRepository }

func NewCartRepository(kv *KVRepository) *CartRepository { return &CartRepository{KV: kv} }

func cartKey(deviceKey string) string { return "cart:" + deviceKey }

// Load hydrates the ledger; corrupt or missing data yields an empty cart.
func (r *CartRepository) Load(deviceKey string) ([]entity.CartItem, error) {
	var items []entity.CartItem
	found, err := r.KV.Get(cartKey(deviceKey), &items)
	if err != nil {
		return nil, err
	}
	if !found || items == nil {
		return []entity.CartItem{}, nil
	}
	return items, nil
}

func (r *CartRepository) Save(deviceKey string, items []entity.CartItem) error {
	return r.KV.Set(cartKey(deviceKey), items)
}

func (r *CartRepository) Clear(deviceKey string) error {
	return r.KV.Delete(cartKey(deviceKey))
}
