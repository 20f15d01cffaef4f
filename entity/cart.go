package entity

// CartItem is one row of the cart ledger. ID is the derived key:
// "item-<id>", "combo-<id>" or a composite key from the item configurator;
// distinct configurations of the same base item get distinct keys.
type CartItem struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Price          int64    `json:"price"`
	BasePrice      int64    `json:"basePrice"`
	Quantity       int      `json:"quantity"`
	Notes          string   `json:"notes,omitempty"`
	SelectedAddons []string `json:"selectedAddons,omitempty"`
	SizeName       string   `json:"sizeName,omitempty"`
	Halves         []string `json:"halves,omitempty"`
	OriginalPrice  int64    `json:"originalPrice,omitempty"`
	PromotionName  string   `json:"promotionName,omitempty"`
}

// Cart is an ordered ledger of line items.
type Cart struct {
	Items []CartItem `json:"items"`
}

// TotalItems is the sum of quantities over all rows.
func (c *Cart) TotalItems() int {
	var n int
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// TotalPrice is the sum of price*quantity over all rows, in centavos.
func (c *Cart) TotalPrice() int64 {
	var total int64
	for _, it := range c.Items {
		total += it.Price * int64(it.Quantity)
	}
	return total
}
