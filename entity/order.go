package entity

import "time"

// Order status names as displayed to the customer, with their ordinal
// position on the progress bar.
const (
	StatusAwaitingPayment = "Aguardando Pagamento"
	StatusNew             = "Novo Pedido"
	StatusPreparing       = "Preparando"
	StatusOutForDelivery  = "A Caminho"
	StatusDelivered       = "Entregue"
	StatusCancelled       = "Cancelado"
)

// StatusOrdinal maps a status to its progress-bar position. Cancelled and
// unknown statuses map to 0.
func StatusOrdinal(status string) int {
	switch status {
	case StatusAwaitingPayment:
		return 0
	case StatusNew:
		return 1
	case StatusPreparing:
		return 2
	case StatusOutForDelivery:
		return 3
	case StatusDelivered:
		return 4
	}
	return 0
}

// StatusTerminal reports whether the order lifecycle has ended.
func StatusTerminal(status string) bool {
	return status == StatusDelivered || status == StatusCancelled
}

// Address is the delivery address snapshot stored on the order.
type Address struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	District   string `json:"district"`
	City       string `json:"city"`
	Complement string `json:"complement,omitempty"`
	Reference  string `json:"reference,omitempty"`
}

// Complete reports whether the fields required for delivery are present.
func (a *Address) Complete() bool {
	if a == nil {
		return false
	}
	return a.Street != "" && a.Number != "" && a.District != "" && a.City != ""
}

// OrderPayload is what the storefront submits to the order and payment
// services; server-assigned fields live on Order.
type OrderPayload struct {
	CustomerName   string     `json:"customerName"`
	CustomerPhone  string     `json:"customerPhone"`
	DeliveryMethod string     `json:"deliveryMethod"`
	Address        *Address   `json:"address,omitempty"`
	Packaging      bool       `json:"packaging,omitempty"`
	Items          []CartItem `json:"items"`
	Subtotal       int64      `json:"subtotal"`
	Discount       int64      `json:"discount"`
	DeliveryFee    int64      `json:"deliveryFee"`
	Total          int64      `json:"total"`
	PaymentMethod  string     `json:"paymentMethod"`
	CouponCode     string     `json:"couponCode,omitempty"`
	RestaurantID   string     `json:"restaurantId"`
	RestaurantName string     `json:"restaurantName,omitempty"`
}

// Order is the persisted order as returned by the order service. The
// storefront never mutates it; status transitions come from the
// fulfillment side.
type Order struct {
	ID          string    `json:"id"`
	OrderNumber int       `json:"orderNumber"`
	CreatedAt   time.Time `json:"createdAt"`
	Status      string    `json:"status"`

	CustomerName   string     `json:"customerName"`
	CustomerPhone  string     `json:"customerPhone"`
	DeliveryMethod string     `json:"deliveryMethod"`
	Address        *Address   `json:"address,omitempty"`
	Packaging      bool       `json:"packaging,omitempty"`
	Items          []CartItem `json:"items"`

	Subtotal    int64 `json:"subtotal"`
	Discount    int64 `json:"discount"`
	DeliveryFee int64 `json:"deliveryFee"`
	Total       int64 `json:"total"`

	PaymentMethod string `json:"paymentMethod"`
	PaymentStatus string `json:"paymentStatus,omitempty"`
	CouponCode    string `json:"couponCode,omitempty"`

	RestaurantID    string `json:"restaurantId"`
	RestaurantName  string `json:"restaurantName,omitempty"`
	RestaurantPhone string `json:"restaurantPhone,omitempty"`
}
