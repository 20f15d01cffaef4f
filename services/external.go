package services

import (
	"context"

	"github.com/digitalpersonal/guarafood-app-sub001/entity"
)

// OrderClient is the order-creation/lookup contract of the platform.
type OrderClient interface {
	Create(ctx context.Context, p *entity.OrderPayload) (*entity.Order, error)
	ListByIDs(ctx context.Context, ids []string) ([]entity.Order, error)
}

// PaymentClient creates automated pix payment intents.
type PaymentClient interface {
	CreateIntent(ctx context.Context, p *entity.OrderPayload) (*entity.PixIntent, error)
}

// CouponClient validates a code against a restaurant's coupons.
type CouponClient interface {
	Validate(ctx context.Context, restaurantID, code string) (*entity.Coupon, error)
}

// Notifier delivers the chime and toast cues to a storefront client.
type Notifier interface {
	Chime(deviceKey string)
	Toast(deviceKey, message string)
}

// NopNotifier discards all cues.
type NopNotifier struct{}

func (NopNotifier) Chime(string)         {}
func (NopNotifier) Toast(string, string) {}
