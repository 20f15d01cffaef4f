package controllers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/digitalpersonal/guarafood-app-sub001/clients"
	"github.com/digitalpersonal/guarafood-app-sub001/entity"
	"github.com/digitalpersonal/guarafood-app-sub001/pkg/resp"
	"github.com/digitalpersonal/guarafood-app-sub001/services"
)

type CatalogController struct {
	Catalog *clients.CatalogClient
	Log     *logrus.Logger
}

func NewCatalogController(catalog *clients.CatalogClient, log *logrus.Logger) *CatalogController {
	return &CatalogController{Catalog: catalog, Log: log}
}

type restaurantView struct {
	entity.Restaurant
	IsOpen bool `json:"isOpen"`
}

// GET /restaurants
func (ctl *CatalogController) List(c *gin.Context) {
	rs, err := ctl.Catalog.Restaurants(c.Request.Context())
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	now := time.Now()
	out := make([]restaurantView, 0, len(rs))
	for i := range rs {
		out = append(out, restaurantView{Restaurant: rs[i], IsOpen: services.IsOpen(&rs[i], now)})
	}
	resp.OK(c, out)
}

// GET /restaurants/:id
func (ctl *CatalogController) Detail(c *gin.Context) {
	r, err := ctl.Catalog.Restaurant(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, clients.ErrNotFound) {
			resp.NotFound(c, "restaurante não encontrado")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, restaurantView{Restaurant: *r, IsOpen: services.IsOpen(r, time.Now())})
}

// GET /restaurants/:id/menu?includeHidden=true
func (ctl *CatalogController) Menu(c *gin.Context) {
	includeHidden := c.Query("includeHidden") == "true"
	m, err := ctl.Catalog.Menu(c.Request.Context(), c.Param("id"), includeHidden)
	if err != nil {
		if errors.Is(err, clients.ErrNotFound) {
			resp.NotFound(c, "restaurante não encontrado")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, m)
}

// GET /restaurants/:id/addons
func (ctl *CatalogController) Addons(c *gin.Context) {
	as, err := ctl.Catalog.Addons(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, as)
}

// GET /banners
func (ctl *CatalogController) Banners(c *gin.Context) {
	bs, err := ctl.Catalog.Banners(c.Request.Context())
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, bs)
}
