package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/digitalpersonal/guarafood-app-sub001/clients"
	"github.com/digitalpersonal/guarafood-app-sub001/entity"
	"github.com/digitalpersonal/guarafood-app-sub001/pkg/resp"
	"github.com/digitalpersonal/guarafood-app-sub001/services"
	"github.com/digitalpersonal/guarafood-app-sub001/utils"
)

type CartController struct {
	Cart    *services.CartService
	Catalog *clients.CatalogClient
	Log     *logrus.Logger
}

func NewCartController(cart *services.CartService, catalog *clients.CatalogClient, log *logrus.Logger) *CartController {
	return &CartController{Cart: cart, Catalog: catalog, Log: log}
}

type cartView struct {
	Items      []entity.CartItem `json:"items"`
	TotalItems int               `json:"totalItems"`
	TotalPrice int64             `json:"totalPrice"`
}

func viewCart(cart *entity.Cart) cartView {
	return cartView{Items: cart.Items, TotalItems: cart.TotalItems(), TotalPrice: cart.TotalPrice()}
}

// GET /cart
func (ctl *CartController) Get(c *gin.Context) {
	cart, err := ctl.Cart.Get(utils.DeviceKey(c))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, viewCart(cart))
}

type addToCartReq struct {
	RestaurantID string `json:"restaurantId" binding:"required"`
	Kind         string `json:"kind" binding:"required,oneof=item combo configured"`
	ItemID       string `json:"itemId"`
	ComboID      string `json:"comboId"`
	Selection    struct {
		Quantity       int      `json:"quantity"`
		Notes          string   `json:"notes"`
		SizeName       string   `json:"sizeName"`
		AddonIDs       []string `json:"addonIds"`
		HalfItemID     string   `json:"halfItemId"`
		MarmitaChoices []string `json:"marmitaChoices"`
	} `json:"selection"`
}

// POST /cart/items
func (ctl *CartController) Add(c *gin.Context) {
	var req addToCartReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	deviceKey := utils.DeviceKey(c)
	ctx := c.Request.Context()

	menu, err := ctl.Catalog.Menu(ctx, req.RestaurantID, true)
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	switch req.Kind {
	case "combo":
		for i := range menu.Combos {
			if menu.Combos[i].ID == req.ComboID {
				cart, err := ctl.Cart.AddCombo(deviceKey, &menu.Combos[i])
				if err != nil {
					resp.ServerError(c, err)
					return
				}
				resp.Created(c, viewCart(cart))
				return
			}
		}
		resp.NotFound(c, "combo não encontrado")
		return

	case "item", "configured":
		var item *entity.MenuItem
		for i := range menu.Items {
			if menu.Items[i].ID == req.ItemID {
				item = &menu.Items[i]
				break
			}
		}
		if item == nil {
			resp.NotFound(c, "item não encontrado")
			return
		}

		if req.Kind == "item" {
			cart, err := ctl.Cart.AddItem(deviceKey, item)
			if err != nil {
				resp.ServerError(c, err)
				return
			}
			resp.Created(c, viewCart(cart))
			return
		}

		addons, err := ctl.Catalog.Addons(ctx, req.RestaurantID)
		if err != nil {
			resp.ServerError(c, err)
			return
		}
		cc := &services.ConfigContext{
			Addons: make(map[string]entity.Addon, len(addons)),
			Items:  make(map[string]entity.MenuItem, len(menu.Items)),
		}
		for _, a := range addons {
			cc.Addons[a.ID] = a
		}
		for _, it := range menu.Items {
			cc.Items[it.ID] = it
		}

		line, err := services.BuildCartItem(item, services.Selection{
			Quantity:       req.Selection.Quantity,
			Notes:          req.Selection.Notes,
			SizeName:       req.Selection.SizeName,
			AddonIDs:       req.Selection.AddonIDs,
			HalfItemID:     req.Selection.HalfItemID,
			MarmitaChoices: req.Selection.MarmitaChoices,
		}, cc)
		if err != nil {
			resp.BadRequest(c, err.Error())
			return
		}
		cart, err := ctl.Cart.AddConfigured(deviceKey, line)
		if err != nil {
			resp.ServerError(c, err)
			return
		}
		resp.Created(c, viewCart(cart))
	}
}

type updateCartItemReq struct {
	Quantity *int    `json:"quantity"`
	Notes    *string `json:"notes"`
}

// PATCH /cart/items/:id
func (ctl *CartController) Update(c *gin.Context) {
	var req updateCartItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	deviceKey := utils.DeviceKey(c)
	id := c.Param("id")

	var cart *entity.Cart
	var err error
	if req.Quantity != nil {
		cart, err = ctl.Cart.SetQuantity(deviceKey, id, *req.Quantity)
		if err != nil {
			ctl.fail(c, err)
			return
		}
	}
	if req.Notes != nil {
		cart, err = ctl.Cart.SetNotes(deviceKey, id, *req.Notes)
		if err != nil {
			ctl.fail(c, err)
			return
		}
	}
	if cart == nil {
		resp.BadRequest(c, "nada para atualizar")
		return
	}
	resp.OK(c, viewCart(cart))
}

// DELETE /cart/items/:id
func (ctl *CartController) Remove(c *gin.Context) {
	cart, err := ctl.Cart.Remove(utils.DeviceKey(c), c.Param("id"))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, viewCart(cart))
}

// DELETE /cart
func (ctl *CartController) Clear(c *gin.Context) {
	if err := ctl.Cart.Clear(utils.DeviceKey(c)); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, viewCart(&entity.Cart{Items: []entity.CartItem{}}))
}

func (ctl *CartController) fail(c *gin.Context, err error) {
	if errors.Is(err, services.ErrCartItemNotFound) {
		resp.NotFound(c, err.Error())
		return
	}
	resp.ServerError(c, err)
}
