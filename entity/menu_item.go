package entity

// Size is one price tier of a menu item (e.g. açaí 300ml/500ml/700ml).
type Size struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// MenuItem is immutable reference data fetched per restaurant from the
// catalog service. Prices are in centavos.
type MenuItem struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Category      string `json:"category,omitempty"`
	Price         int64  `json:"price"`
	OriginalPrice int64  `json:"originalPrice,omitempty"`

	ActivePromotion string `json:"activePromotion,omitempty"`

	IsPizza         bool `json:"isPizza,omitempty"`
	IsAcai          bool `json:"isAcai,omitempty"`
	IsMarmita       bool `json:"isMarmita,omitempty"`
	IsDailySpecial  bool `json:"isDailySpecial,omitempty"`
	IsWeeklySpecial bool `json:"isWeeklySpecial,omitempty"`
	Hidden          bool `json:"hidden,omitempty"`

	Sizes             []Size   `json:"sizes,omitempty"`
	AvailableAddonIDs []string `json:"availableAddonIds,omitempty"`
	AvailableDays     []string `json:"availableDays,omitempty"`
	MarmitaOptions    []string `json:"marmitaOptions,omitempty"`

	RestaurantID string `json:"restaurantId"`
}
