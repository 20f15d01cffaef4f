package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/digitalpersonal/guarafood-app-sub001/clients"
	"github.com/digitalpersonal/guarafood-app-sub001/entity"
)

var (
	ErrCouponInvalid  = errors.New("cupom inválido")
	ErrCouponExpired  = errors.New("cupom expirado")
	ErrCouponMinOrder = errors.New("pedido abaixo do mínimo do cupom")
)

type CouponService struct {
	Coupons CouponClient
	Log     *logrus.Logger
}

func NewCouponService(coupons CouponClient, log *logrus.Logger) *CouponService {
	return &CouponService{Coupons: coupons, Log: log}
}

// Validate resolves a code against the restaurant's coupons and checks it
// for the given subtotal at the given time. Expiration is inclusive
// through the end of the expiration day.
func (s *CouponService) Validate(ctx context.Context, restaurantID, code string, subtotal int64, now time.Time) (*entity.Coupon, error) {
	c, err := s.Coupons.Validate(ctx, restaurantID, code)
	if err != nil {
		if errors.Is(err, clients.ErrNotFound) {
			return nil, ErrCouponInvalid
		}
		return nil, err
	}
	if !c.IsActive {
		return nil, ErrCouponInvalid
	}
	if c.ExpirationDate != "" {
		if day, perr := time.ParseInLocation("2006-01-02", c.ExpirationDate, now.Location()); perr == nil {
			endOfDay := day.AddDate(0, 0, 1)
			if !now.Before(endOfDay) {
				return nil, ErrCouponExpired
			}
		}
	}
	if subtotal < c.MinOrderValue {
		return nil, ErrCouponMinOrder
	}
	return c, nil
}

// Discount computes the coupon's discount off the raw subtotal, clamped so
// subtotal - discount never goes negative. Percentage coupons compute off
// the subtotal alone; the delivery fee never enters the base.
func Discount(c *entity.Coupon, subtotal int64) int64 {
	if c == nil || subtotal <= 0 {
		return 0
	}
	var d int64
	switch c.DiscountType {
	case entity.DiscountPercentage:
		d = subtotal * c.DiscountValue / 100
	case entity.DiscountFixed:
		d = c.DiscountValue
	}
	if d < 0 {
		d = 0
	}
	if d > subtotal {
		d = subtotal
	}
	return d
}
