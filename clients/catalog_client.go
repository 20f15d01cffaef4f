package clients

import (
	"context"
	"net/url"

	"github.com/digitalpersonal/guarafood-app-sub001/entity"
)

// Menu is the categorized menu of one restaurant: items plus combos.
type Menu struct {
	Items  []entity.MenuItem `json:"items"`
	Combos []entity.Combo    `json:"combos"`
}

type CatalogClient struct{ *Client }

func NewCatalogClient(c *Client) *CatalogClient { return &CatalogClient{Client: c} }

func (c *CatalogClient) Restaurants(ctx context.Context) ([]entity.Restaurant, error) {
	var out []entity.Restaurant
	err := c.get(ctx, "/restaurants", &out)
	return out, err
}

func (c *CatalogClient) Restaurant(ctx context.Context, id string) (*entity.Restaurant, error) {
	var out entity.Restaurant
	if err := c.get(ctx, "/restaurants/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Menu fetches items and combos; includeHidden also returns hidden and
// special items normally filtered from the storefront listing.
func (c *CatalogClient) Menu(ctx context.Context, restaurantID string, includeHidden bool) (*Menu, error) {
	path := "/restaurants/" + url.PathEscape(restaurantID) + "/menu"
	if includeHidden {
		path += "?includeHidden=true"
	}
	var out Menu
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *CatalogClient) Addons(ctx context.Context, restaurantID string) ([]entity.Addon, error) {
	var out []entity.Addon
	err := c.get(ctx, "/restaurants/"+url.PathEscape(restaurantID)+"/addons", &out)
	return out, err
}

func (c *CatalogClient) Banners(ctx context.Context) ([]entity.Banner, error) {
	var out []entity.Banner
	err := c.get(ctx, "/banners", &out)
	return out, err
}
