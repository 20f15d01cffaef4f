package entity

// Combo bundles multiple catalog items at a fixed bundle price.
type Combo struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Price           int64    `json:"price"`
	OriginalPrice   int64    `json:"originalPrice,omitempty"`
	ActivePromotion string   `json:"activePromotion,omitempty"`
	MenuItemIDs     []string `json:"menuItemIds"`
	RestaurantID    string   `json:"restaurantId"`
}
