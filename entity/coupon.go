package entity

const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// Coupon is a restaurant-scoped discount code. DiscountValue is a whole
// percentage for "percentage" coupons and centavos for "fixed" ones.
// ExpirationDate is "YYYY-MM-DD", valid through the end of that day.
type Coupon struct {
	Code           string `json:"code"`
	DiscountType   string `json:"discountType"`
	DiscountValue  int64  `json:"discountValue"`
	MinOrderValue  int64  `json:"minOrderValue"`
	ExpirationDate string `json:"expirationDate,omitempty"`
	IsActive       bool   `json:"isActive"`
	RestaurantID   string `json:"restaurantId"`
}
