package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/digitalpersonal/guarafood-app-sub001/clients"
	"github.com/digitalpersonal/guarafood-app-sub001/configs"
	"github.com/digitalpersonal/guarafood-app-sub001/middlewares"
	"github.com/digitalpersonal/guarafood-app-sub001/realtime"
	"github.com/digitalpersonal/guarafood-app-sub001/repository"
	"github.com/digitalpersonal/guarafood-app-sub001/routes"
	"github.com/digitalpersonal/guarafood-app-sub001/services"
	"github.com/digitalpersonal/guarafood-app-sub001/utils"
	"github.com/digitalpersonal/guarafood-app-sub001/ws"
)

func main() {
	cfg := configs.LoadConfig()
	log := utils.NewLogger()

	// Durable local storage
	configs.ConnectionDB(cfg.DBSource)
	configs.SetupDatabase()
	kv := repository.NewKVRepository(configs.DB())
	cartRepo := repository.NewCartRepository(kv)
	trackingRepo := repository.NewTrackingRepository(kv)
	profileRepo := repository.NewProfileRepository(kv)

	// Platform clients
	base := clients.New(cfg.PlatformBaseURL, cfg.PlatformAPIKey, log)
	catalog := clients.NewCatalogClient(base)
	coupons := clients.NewCouponClient(base)
	orders := clients.NewOrderClient(base)
	payments := clients.NewPaymentClient(base)

	// Realtime change feed: AMQP in, websocket out.
	feed := realtime.NewFeed()
	if cfg.AMQPUrl != "" {
		consumer, err := realtime.NewConsumer(cfg.AMQPUrl, cfg.OrderEventsQueue, feed, log)
		if err != nil {
			log.Warnf("order-events consumer unavailable, polling only: %v", err)
		} else {
			defer consumer.Close()
			if err := consumer.Start(); err != nil {
				log.Warnf("order-events consumer failed to start: %v", err)
			}
		}
	}
	hub := ws.NewTrackingHub(log)
	go hub.Run()

	// Services
	cart := services.NewCartService(cartRepo, log)
	couponSvc := services.NewCouponService(coupons, log)
	checkout := services.NewCheckoutManager(&services.CheckoutDeps{
		Cart:       cart,
		Coupons:    couponSvc,
		Orders:     orders,
		Payments:   payments,
		Profiles:   profileRepo,
		Tracking:   trackingRepo,
		Feed:       feed,
		Notifier:   hub,
		Log:        log,
		PixTimeout: cfg.PixTimeout,
	})
	tracking := services.NewTrackingManager(&services.TrackingDeps{
		Orders:   orders,
		Repo:     trackingRepo,
		Feed:     feed,
		Notifier: hub,
		Log:      log,
	})
	defer tracking.StopAll()

	// HTTP
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware())
	r.Use(middlewares.PrometheusMiddleware())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.RegisterRoutes(r, &routes.Deps{
		Catalog:      catalog,
		Cart:         cart,
		Checkout:     checkout,
		Tracking:     tracking,
		TrackingRepo: trackingRepo,
		ProfileRepo:  profileRepo,
		Hub:          hub,
		SupportPhone: cfg.SupportPhone,
		Log:          log,
	})

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Infof("storefront running at %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
