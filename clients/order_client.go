package clients

import (
	"context"
	"net/url"
	"strings"

	"github.com/digitalpersonal/guarafood-app-sub001/entity"
)

type OrderClient struct{ *Client }

func NewOrderClient(c *Client) *OrderClient { return &OrderClient{Client: c} }

// Create submits the order payload; the platform assigns id, number,
// timestamp and initial status.
func (c *OrderClient) Create(ctx context.Context, p *entity.OrderPayload) (*entity.Order, error) {
	var out entity.Order
	if err := c.post(ctx, "/orders", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListByIDs fetches current state for the given order ids. Ids unknown to
// the platform are simply absent from the result.
func (c *OrderClient) ListByIDs(ctx context.Context, ids []string) ([]entity.Order, error) {
	if len(ids) == 0 {
		return []entity.Order{}, nil
	}
	q := url.Values{}
	q.Set("ids", strings.Join(ids, ","))
	var out []entity.Order
	err := c.get(ctx, "/orders?"+q.Encode(), &out)
	return out, err
}
