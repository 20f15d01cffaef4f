package clients

import (
	"context"
	"net/url"

	"github.com/digitalpersonal/guarafood-app-sub001/entity"
)

type CouponClient struct{ *Client }

func NewCouponClient(c *Client) *CouponClient { return &CouponClient{Client: c} }

// Validate looks a code up against the restaurant's coupons. Unknown codes
// come back as ErrNotFound.
func (c *CouponClient) Validate(ctx context.Context, restaurantID, code string) (*entity.Coupon, error) {
	q := url.Values{}
	q.Set("restaurantId", restaurantID)
	q.Set("code", code)
	var out entity.Coupon
	if err := c.get(ctx, "/coupons/validate?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
