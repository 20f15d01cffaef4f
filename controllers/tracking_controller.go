package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/digitalpersonal/guarafood-app-sub001/entity"
	"github.com/digitalpersonal/guarafood-app-sub001/pkg/resp"
	"github.com/digitalpersonal/guarafood-app-sub001/repository"
	"github.com/digitalpersonal/guarafood-app-sub001/services"
	"github.com/digitalpersonal/guarafood-app-sub001/utils"
)

type TrackingController struct {
	Manager      *services.TrackingManager
	Profiles     *repository.ProfileRepository
	Tracking     *repository.TrackingRepository
	SupportPhone string
	Log          *logrus.Logger
}

func NewTrackingController(m *services.TrackingManager, profiles *repository.ProfileRepository, tracking *repository.TrackingRepository, supportPhone string, log *logrus.Logger) *TrackingController {
	return &TrackingController{Manager: m, Profiles: profiles, Tracking: tracking, SupportPhone: supportPhone, Log: log}
}

type trackedOrderView struct {
	entity.Order
	Progress int `json:"progress"`
}

// GET /tracking returns the panel's current non-terminal orders with their
// progress-bar ordinal.
func (ctl *TrackingController) Panel(c *gin.Context) {
	p := ctl.Manager.Panel(utils.DeviceKey(c))
	orders := p.Orders()
	out := make([]trackedOrderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, trackedOrderView{Order: o, Progress: entity.StatusOrdinal(o.Status)})
	}
	resp.OK(c, out)
}

// POST /tracking/refresh: the window-focus / orders-changed cue.
func (ctl *TrackingController) Refresh(c *gin.Context) {
	p := ctl.Manager.Panel(utils.DeviceKey(c))
	p.Refresh(c.Request.Context())
	ctl.Panel(c)
}

// DELETE /tracking/:orderId
func (ctl *TrackingController) Untrack(c *gin.Context) {
	p := ctl.Manager.Panel(utils.DeviceKey(c))
	if err := p.Untrack(c.Param("orderId")); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, nil)
}

// GET /orders/history
func (ctl *TrackingController) History(c *gin.Context) {
	orders, err := ctl.Tracking.History(utils.DeviceKey(c))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, orders)
}

// GET /favorites
func (ctl *TrackingController) Favorites(c *gin.Context) {
	ids, err := ctl.Profiles.Favorites(utils.DeviceKey(c))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, ids)
}

type favoritesReq struct {
	IDs []string `json:"ids"`
}

// PUT /favorites
func (ctl *TrackingController) SaveFavorites(c *gin.Context) {
	var req favoritesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := ctl.Profiles.SaveFavorites(utils.DeviceKey(c), req.IDs); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, req.IDs)
}

// GET /support-link?message= builds the prefilled wa.me deep link.
func (ctl *TrackingController) SupportLink(c *gin.Context) {
	msg := c.Query("message")
	if msg == "" {
		msg = "Olá! Preciso de ajuda com meu pedido."
	}
	resp.OK(c, gin.H{"url": utils.WhatsAppLink(ctl.SupportPhone, msg)})
}
