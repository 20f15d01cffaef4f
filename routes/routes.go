package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/digitalpersonal/guarafood-app-sub001/clients"
	"github.com/digitalpersonal/guarafood-app-sub001/controllers"
	"github.com/digitalpersonal/guarafood-app-sub001/middlewares"
	"github.com/digitalpersonal/guarafood-app-sub001/repository"
	"github.com/digitalpersonal/guarafood-app-sub001/services"
	"github.com/digitalpersonal/guarafood-app-sub001/ws"
)

// Deps is everything the HTTP surface hangs off.
type Deps struct {
	Catalog  *clients.CatalogClient
	Cart     *services.CartService
	Checkout *services.CheckoutManager
	Tracking *services.TrackingManager

	TrackingRepo *repository.TrackingRepository
	ProfileRepo  *repository.ProfileRepository

	Hub          *ws.TrackingHub
	SupportPhone string
	Log          *logrus.Logger
}

func RegisterRoutes(r *gin.Engine, d *Deps) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	catalogCtrl := controllers.NewCatalogController(d.Catalog, d.Log)
	cartCtrl := controllers.NewCartController(d.Cart, d.Catalog, d.Log)
	checkoutCtrl := controllers.NewCheckoutController(d.Checkout, d.Catalog, d.Log)
	trackingCtrl := controllers.NewTrackingController(d.Tracking, d.ProfileRepo, d.TrackingRepo, d.SupportPhone, d.Log)

	// Catalog (public)
	r.GET("/restaurants", catalogCtrl.List)
	r.GET("/restaurants/:id", catalogCtrl.Detail)
	r.GET("/restaurants/:id/menu", catalogCtrl.Menu)
	r.GET("/restaurants/:id/addons", catalogCtrl.Addons)
	r.GET("/banners", catalogCtrl.Banners)

	// Everything below is scoped to one storefront device.
	s := r.Group("/", middlewares.SessionMiddleware())
	{
		s.GET("/cart", cartCtrl.Get)
		s.POST("/cart/items", cartCtrl.Add)
		s.PATCH("/cart/items/:id", cartCtrl.Update)
		s.DELETE("/cart/items/:id", cartCtrl.Remove)
		s.DELETE("/cart", cartCtrl.Clear)

		s.POST("/checkout", checkoutCtrl.Open)
		s.GET("/checkout", checkoutCtrl.State)
		s.POST("/checkout/advance", checkoutCtrl.Advance)
		s.POST("/checkout/coupon", checkoutCtrl.ApplyCoupon)
		s.DELETE("/checkout/coupon", checkoutCtrl.RemoveCoupon)
		s.GET("/checkout/profile", checkoutCtrl.Autofill)
		s.POST("/checkout/details", checkoutCtrl.SubmitDetails)
		s.POST("/checkout/pix/confirm", checkoutCtrl.ConfirmManualPayment)
		s.POST("/checkout/back", checkoutCtrl.Back)
		s.DELETE("/checkout", checkoutCtrl.Close)

		s.GET("/tracking", trackingCtrl.Panel)
		s.POST("/tracking/refresh", trackingCtrl.Refresh)
		s.DELETE("/tracking/:orderId", trackingCtrl.Untrack)

		s.GET("/orders/history", trackingCtrl.History)
		s.GET("/favorites", trackingCtrl.Favorites)
		s.PUT("/favorites", trackingCtrl.SaveFavorites)
		s.GET("/support-link", trackingCtrl.SupportLink)

		s.GET("/ws/tracking", d.Hub.HandleWebSocket)
	}
}
