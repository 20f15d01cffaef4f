package services

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/digitalpersonal/guarafood-app-sub001/entity"
	"github.com/digitalpersonal/guarafood-app-sub001/repository"
)

var ErrCartItemNotFound = errors.New("item não está no carrinho")

// CartService maintains the ordered cart ledger per device key. Every
// mutation persists the full ledger; totals are derived on read, never
// cached.
type CartService struct {
	Repo *repository.CartRepository
	Log  *logrus.Logger
}

func NewCartService(repo *repository.CartRepository, log *logrus.Logger) *CartService {
	return &CartService{Repo: repo, Log: log}
}

// Get hydrates the cart; corrupt storage degrades to an empty cart.
func (s *CartService) Get(deviceKey string) (*entity.Cart, error) {
	items, err := s.Repo.Load(deviceKey)
	if err != nil {
		return nil, err
	}
	return &entity.Cart{Items: items}, nil
}

// AddItem puts a plain catalog item in the cart under the key
// "item-<id>", merging into an existing row by incrementing quantity.
func (s *CartService) AddItem(deviceKey string, m *entity.MenuItem) (*entity.Cart, error) {
	line := entity.CartItem{
		ID:            "item-" + m.ID,
		Name:          m.Name,
		Price:         m.Price,
		BasePrice:     m.Price,
		Quantity:      1,
		OriginalPrice: m.OriginalPrice,
		PromotionName: m.ActivePromotion,
	}
	return s.add(deviceKey, line)
}

// AddCombo puts a combo in the cart under "combo-<id>".
func (s *CartService) AddCombo(deviceKey string, cb *entity.Combo) (*entity.Cart, error) {
	line := entity.CartItem{
		ID:            "combo-" + cb.ID,
		Name:          cb.Name,
		Price:         cb.Price,
		BasePrice:     cb.Price,
		Quantity:      1,
		OriginalPrice: cb.OriginalPrice,
		PromotionName: cb.ActivePromotion,
	}
	return s.add(deviceKey, line)
}

// AddConfigured adds a line that already carries a finalized composite key
// from the item configurator. Identical configurations merge; different
// configurations of the same base item stay distinct rows.
func (s *CartService) AddConfigured(deviceKey string, line *entity.CartItem) (*entity.Cart, error) {
	if line.Quantity <= 0 {
		line.Quantity = 1
	}
	return s.add(deviceKey, *line)
}

func (s *CartService) add(deviceKey string, line entity.CartItem) (*entity.Cart, error) {
	items, err := s.Repo.Load(deviceKey)
	if err != nil {
		return nil, err
	}
	merged := false
	for i := range items {
		if items[i].ID == line.ID {
			items[i].Quantity += line.Quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, line)
	}
	if err := s.Repo.Save(deviceKey, items); err != nil {
		return nil, err
	}
	return &entity.Cart{Items: items}, nil
}

// Remove deletes the row; absent ids are a no-op.
func (s *CartService) Remove(deviceKey, id string) (*entity.Cart, error) {
	items, err := s.Repo.Load(deviceKey)
	if err != nil {
		return nil, err
	}
	out := items[:0]
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	if err := s.Repo.Save(deviceKey, out); err != nil {
		return nil, err
	}
	return &entity.Cart{Items: out}, nil
}

// SetQuantity replaces the row's quantity; n <= 0 removes the row.
func (s *CartService) SetQuantity(deviceKey, id string, n int) (*entity.Cart, error) {
	if n <= 0 {
		return s.Remove(deviceKey, id)
	}
	items, err := s.Repo.Load(deviceKey)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			items[i].Quantity = n
			if err := s.Repo.Save(deviceKey, items); err != nil {
				return nil, err
			}
			return &entity.Cart{Items: items}, nil
		}
	}
	return nil, ErrCartItemNotFound
}

// SetNotes stores free-text notes on the row.
func (s *CartService) SetNotes(deviceKey, id, text string) (*entity.Cart, error) {
	items, err := s.Repo.Load(deviceKey)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			items[i].Notes = text
			if err := s.Repo.Save(deviceKey, items); err != nil {
				return nil, err
			}
			return &entity.Cart{Items: items}, nil
		}
	}
	return nil, ErrCartItemNotFound
}

// Clear empties the ledger.
func (s *CartService) Clear(deviceKey string) error {
	return s.Repo.Clear(deviceKey)
}
