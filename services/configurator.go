package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/digitalpersonal/guarafood-app-sub001/entity"
)

var (
	ErrUnknownSize  = errors.New("tamanho não disponível")
	ErrUnknownAddon = errors.New("adicional não disponível")
	ErrUnknownHalf  = errors.New("sabor de metade não disponível")
)

// Selection is what the customization modal collected for one item.
type Selection struct {
	Quantity       int
	Notes          string
	SizeName       string
	AddonIDs       []string
	HalfItemID     string
	MarmitaChoices []string
}

// ConfigContext resolves references in a selection against catalog data.
type ConfigContext struct {
	Addons map[string]entity.Addon
	Items  map[string]entity.MenuItem
}

// BuildCartItem normalizes a customized item into a cart line with a
// deterministic composite key. Pizza halves dispatch on IsPizza and
// marmita choices on IsMarmita; açaí needs no flag of its own, its
// customization is entirely size tiers plus generic add-ons (IsAcai, like
// IsDailySpecial, is listing data for the storefront UI). A selection
// with no customization yields the plain "item-<id>" key so it merges
// with uncustomized adds of the same item.
func BuildCartItem(item *entity.MenuItem, sel Selection, cc *ConfigContext) (*entity.CartItem, error) {
	qty := sel.Quantity
	if qty <= 0 {
		qty = 1
	}

	line := entity.CartItem{
		Name:          item.Name,
		BasePrice:     item.Price,
		Quantity:      qty,
		Notes:         sel.Notes,
		OriginalPrice: item.OriginalPrice,
		PromotionName: item.ActivePromotion,
	}
	keyParts := []string{"item-" + item.ID}
	price := item.Price

	if sel.SizeName != "" {
		sz, ok := findSize(item.Sizes, sel.SizeName)
		if !ok {
			return nil, ErrUnknownSize
		}
		price = sz.Price
		line.BasePrice = sz.Price
		line.SizeName = sz.Name
		keyParts = append(keyParts, "size="+sz.Name)
	}

	if item.IsPizza && sel.HalfItemID != "" {
		other, ok := cc.Items[sel.HalfItemID]
		if !ok || !other.IsPizza {
			return nil, ErrUnknownHalf
		}
		// Half-and-half pizzas price at the more expensive half.
		if other.Price > price {
			price = other.Price
		}
		line.Halves = []string{item.Name, other.Name}
		line.Name = fmt.Sprintf("%s / %s", item.Name, other.Name)
		keyParts = append(keyParts, "half="+sel.HalfItemID)
	}

	if len(sel.AddonIDs) > 0 {
		ids := append([]string(nil), sel.AddonIDs...)
		sort.Strings(ids)
		for _, id := range ids {
			ad, ok := cc.Addons[id]
			if !ok || !allowsAddon(item, id) {
				return nil, ErrUnknownAddon
			}
			price += ad.Price
			line.SelectedAddons = append(line.SelectedAddons, ad.Name)
		}
		keyParts = append(keyParts, "addons="+strings.Join(ids, "+"))
	}

	if item.IsMarmita && len(sel.MarmitaChoices) > 0 {
		choices := append([]string(nil), sel.MarmitaChoices...)
		sort.Strings(choices)
		line.SelectedAddons = append(line.SelectedAddons, choices...)
		keyParts = append(keyParts, "opts="+strings.Join(choices, "+"))
	}

	line.Price = price
	line.ID = strings.Join(keyParts, "::")
	return &line, nil
}

func findSize(sizes []entity.Size, name string) (entity.Size, bool) {
	for _, s := range sizes {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return entity.Size{}, false
}

func allowsAddon(item *entity.MenuItem, addonID string) bool {
	for _, id := range item.AvailableAddonIDs {
		if id == addonID {
			return true
		}
	}
	return false
}
