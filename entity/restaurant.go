package entity

// Restaurant is reference data from the catalog service, including the
// pieces checkout needs: delivery fee, payment-method allow-list, the
// manual pix fallback key and the operating-hours schedule.
type Restaurant struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`

	DeliveryFee    int64    `json:"deliveryFee"`
	PaymentMethods []string `json:"paymentMethods,omitempty"`

	// PixKey, when set, enables the manual pix fallback path.
	PixKey string `json:"pixKey,omitempty"`

	// Flat open/close fallback used when Hours is absent.
	OpeningTime string `json:"openingTime,omitempty"`
	ClosingTime string `json:"closingTime,omitempty"`

	Hours *WeeklyHours `json:"hours,omitempty"`
}

// AllowsPayment reports whether the method is on the restaurant's
// allow-list. An empty allow-list allows nothing.
func (r *Restaurant) AllowsPayment(method string) bool {
	for _, m := range r.PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}
