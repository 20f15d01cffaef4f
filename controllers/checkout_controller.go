package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/digitalpersonal/guarafood-app-sub001/clients"
	"github.com/digitalpersonal/guarafood-app-sub001/middlewares"
	"github.com/digitalpersonal/guarafood-app-sub001/pkg/resp"
	"github.com/digitalpersonal/guarafood-app-sub001/services"
	"github.com/digitalpersonal/guarafood-app-sub001/utils"
)

type CheckoutController struct {
	Manager *services.CheckoutManager
	Catalog *clients.CatalogClient
	Log     *logrus.Logger
}

func NewCheckoutController(m *services.CheckoutManager, catalog *clients.CatalogClient, log *logrus.Logger) *CheckoutController {
	return &CheckoutController{Manager: m, Catalog: catalog, Log: log}
}

type openCheckoutReq struct {
	RestaurantID string `json:"restaurantId" binding:"required"`
}

// POST /checkout. Opening checkout always starts a fresh session at
// SUMMARY; a previous session for the device is torn down.
func (ctl *CheckoutController) Open(c *gin.Context) {
	var req openCheckoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	r, err := ctl.Catalog.Restaurant(c.Request.Context(), req.RestaurantID)
	if err != nil {
		if errors.Is(err, clients.ErrNotFound) {
			resp.NotFound(c, "restaurante não encontrado")
			return
		}
		resp.ServerError(c, err)
		return
	}
	s := ctl.Manager.Open(utils.DeviceKey(c), r)
	ctl.snapshot(c, s)
}

// GET /checkout
func (ctl *CheckoutController) State(c *gin.Context) {
	s, err := ctl.Manager.Session(utils.DeviceKey(c))
	if err != nil {
		resp.NotFound(c, err.Error())
		return
	}
	ctl.snapshot(c, s)
}

// POST /checkout/advance
func (ctl *CheckoutController) Advance(c *gin.Context) {
	s, err := ctl.Manager.Session(utils.DeviceKey(c))
	if err != nil {
		resp.NotFound(c, err.Error())
		return
	}
	if err := s.Advance(); err != nil {
		middlewares.RecordCheckoutOperation("advance", false)
		ctl.fail(c, err)
		return
	}
	middlewares.RecordCheckoutOperation("advance", true)
	ctl.snapshot(c, s)
}

type couponReq struct {
	Code string `json:"code" binding:"required"`
}

// POST /checkout/coupon
func (ctl *CheckoutController) ApplyCoupon(c *gin.Context) {
	s, err := ctl.Manager.Session(utils.DeviceKey(c))
	if err != nil {
		resp.NotFound(c, err.Error())
		return
	}
	var req couponReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := s.ApplyCoupon(c.Request.Context(), req.Code); err != nil {
		ctl.fail(c, err)
		return
	}
	ctl.snapshot(c, s)
}

// DELETE /checkout/coupon
func (ctl *CheckoutController) RemoveCoupon(c *gin.Context) {
	s, err := ctl.Manager.Session(utils.DeviceKey(c))
	if err != nil {
		resp.NotFound(c, err.Error())
		return
	}
	s.RemoveCoupon()
	ctl.snapshot(c, s)
}

// GET /checkout/profile?name=: best-effort autofill for a returning
// customer; an empty result is not an error.
func (ctl *CheckoutController) Autofill(c *gin.Context) {
	s, err := ctl.Manager.Session(utils.DeviceKey(c))
	if err != nil {
		resp.NotFound(c, err.Error())
		return
	}
	resp.OK(c, s.AutofillProfile(c.Query("name")))
}

// POST /checkout/details
func (ctl *CheckoutController) SubmitDetails(c *gin.Context) {
	s, err := ctl.Manager.Session(utils.DeviceKey(c))
	if err != nil {
		resp.NotFound(c, err.Error())
		return
	}
	var d services.CustomerDetails
	if err := c.ShouldBindJSON(&d); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := s.SubmitDetails(c.Request.Context(), d); err != nil {
		middlewares.RecordCheckoutOperation("submit", false)
		ctl.fail(c, err)
		return
	}
	middlewares.RecordCheckoutOperation("submit", true)
	ctl.snapshot(c, s)
}

// POST /checkout/pix/confirm: the self-reported manual payment path.
func (ctl *CheckoutController) ConfirmManualPayment(c *gin.Context) {
	s, err := ctl.Manager.Session(utils.DeviceKey(c))
	if err != nil {
		resp.NotFound(c, err.Error())
		return
	}
	if err := s.ConfirmManualPayment(c.Request.Context()); err != nil {
		middlewares.RecordCheckoutOperation("manual-pix", false)
		ctl.fail(c, err)
		return
	}
	middlewares.RecordCheckoutOperation("manual-pix", true)
	ctl.snapshot(c, s)
}

// POST /checkout/back
func (ctl *CheckoutController) Back(c *gin.Context) {
	s, err := ctl.Manager.Session(utils.DeviceKey(c))
	if err != nil {
		resp.NotFound(c, err.Error())
		return
	}
	if err := s.Back(); err != nil {
		ctl.fail(c, err)
		return
	}
	ctl.snapshot(c, s)
}

// DELETE /checkout
func (ctl *CheckoutController) Close(c *gin.Context) {
	ctl.Manager.Close(utils.DeviceKey(c))
	resp.OK(c, nil)
}

func (ctl *CheckoutController) snapshot(c *gin.Context, s *services.CheckoutSession) {
	st, err := s.Snapshot()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, st)
}

func (ctl *CheckoutController) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCartEmpty),
		errors.Is(err, services.ErrMissingFields),
		errors.Is(err, services.ErrIncompleteAddress),
		errors.Is(err, services.ErrPaymentNotAllowed),
		errors.Is(err, services.ErrInvalidStep),
		errors.Is(err, services.ErrManualPixNotConfigured),
		errors.Is(err, services.ErrCouponInvalid),
		errors.Is(err, services.ErrCouponExpired),
		errors.Is(err, services.ErrCouponMinOrder):
		resp.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrRestaurantClosed),
		errors.Is(err, services.ErrPaymentUnavailable):
		resp.Conflict(c, err.Error())
	default:
		ctl.Log.Errorf("checkout: %v", err)
		resp.ServerError(c, err)
	}
}
