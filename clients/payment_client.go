package clients

import (
	"context"

	"github.com/digitalpersonal/guarafood-app-sub001/entity"
)

type PaymentClient struct{ *Client }

func NewPaymentClient(c *Client) *PaymentClient { return &PaymentClient{Client: c} }

// CreateIntent asks the payment service to create an automated pix intent
// for the order payload. The platform persists the order in
// awaiting-payment state and later flips its status through the realtime
// change feed once payment is captured.
func (c *PaymentClient) CreateIntent(ctx context.Context, p *entity.OrderPayload) (*entity.PixIntent, error) {
	var out entity.PixIntent
	if err := c.post(ctx, "/payments/pix", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
