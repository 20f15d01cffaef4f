package entity

// Addon is referenced by id from menu items during customization.
type Addon struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Price        int64  `json:"price"`
	RestaurantID string `json:"restaurantId"`
}
