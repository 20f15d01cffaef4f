package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/digitalpersonal/guarafood-app-sub001/clients"
	"github.com/digitalpersonal/guarafood-app-sub001/entity"
	"github.com/digitalpersonal/guarafood-app-sub001/middlewares"
	"github.com/digitalpersonal/guarafood-app-sub001/realtime"
	"github.com/digitalpersonal/guarafood-app-sub001/repository"
	"github.com/digitalpersonal/guarafood-app-sub001/routes"
	"github.com/digitalpersonal/guarafood-app-sub001/services"
	"github.com/digitalpersonal/guarafood-app-sub001/utils"
	"github.com/digitalpersonal/guarafood-app-sub001/ws"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubPlatform fakes the hosted platform: catalog, coupons, orders and
// pix payments.
type stubPlatform struct {
	mu     sync.Mutex
	orders map[string]entity.Order
	seq    int
}

func newStubPlatform() *stubPlatform {
	return &stubPlatform{orders: make(map[string]entity.Order)}
}

func (sp *stubPlatform) server() *httptest.Server {
	mux := http.NewServeMux()

	restaurant := entity.Restaurant{
		ID:             "r1",
		Name:           "GuaraFood Marmitas",
		Phone:          "(11) 98888-7777",
		DeliveryFee:    500,
		PaymentMethods: []string{"Pix", "Dinheiro"},
		PixKey:         "pix@guarafood.com.br",
	}
	menu := clients.Menu{Items: []entity.MenuItem{
		{ID: "m1", Name: "Marmita Grande", Price: 2500, RestaurantID: "r1"},
	}}

	mux.HandleFunc("/restaurants/r1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, restaurant)
	})
	mux.HandleFunc("/restaurants/r1/menu", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, menu)
	})
	mux.HandleFunc("/restaurants/r1/addons", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []entity.Addon{})
	})
	mux.HandleFunc("/coupons/validate", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("code") != "DEZ" {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, entity.Coupon{
			Code: "DEZ", DiscountType: entity.DiscountPercentage,
			DiscountValue: 10, IsActive: true, RestaurantID: "r1",
		})
	})
	mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		sp.mu.Lock()
		defer sp.mu.Unlock()
		switch r.Method {
		case http.MethodPost:
			var p entity.OrderPayload
			if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			sp.seq++
			o := entity.Order{
				ID:            fmt.Sprintf("o-%d", sp.seq),
				OrderNumber:   100 + sp.seq,
				CreatedAt:     time.Now(),
				Status:        entity.StatusNew,
				CustomerName:  p.CustomerName,
				Items:         p.Items,
				Subtotal:      p.Subtotal,
				Discount:      p.Discount,
				DeliveryFee:   p.DeliveryFee,
				Total:         p.Total,
				PaymentMethod: p.PaymentMethod,
				RestaurantID:  p.RestaurantID,
			}
			sp.orders[o.ID] = o
			writeJSON(w, o)
		case http.MethodGet:
			var out []entity.Order
			for _, id := range strings.Split(r.URL.Query().Get("ids"), ",") {
				if o, ok := sp.orders[id]; ok {
					out = append(out, o)
				}
			}
			writeJSON(w, out)
		}
	})
	mux.HandleFunc("/payments/pix", func(w http.ResponseWriter, r *http.Request) {
		sp.mu.Lock()
		defer sp.mu.Unlock()
		sp.seq++
		id := fmt.Sprintf("o-%d", sp.seq)
		sp.orders[id] = entity.Order{ID: id, OrderNumber: 100 + sp.seq, Status: entity.StatusAwaitingPayment}
		writeJSON(w, entity.PixIntent{
			OrderID: id, OrderNumber: 100 + sp.seq,
			Code: "00020126pixcopypaste", ExpiresIn: 300,
		})
	})

	return httptest.NewServer(mux)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

var integrationDBSeq atomic.Int64

func newStorefront(t *testing.T) (*gin.Engine, *realtime.Feed) {
	t.Helper()

	platform := newStubPlatform()
	srv := platform.server()
	t.Cleanup(srv.Close)

	dsn := fmt.Sprintf("file:storefront%d?mode=memory&cache=shared", integrationDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&repository.KVEntry{}))

	log := utils.NewLogger()
	kv := repository.NewKVRepository(db)
	cartRepo := repository.NewCartRepository(kv)
	trackingRepo := repository.NewTrackingRepository(kv)
	profileRepo := repository.NewProfileRepository(kv)

	base := clients.New(srv.URL, "", log)
	catalog := clients.NewCatalogClient(base)

	feed := realtime.NewFeed()
	hub := ws.NewTrackingHub(log)
	go hub.Run()

	cart := services.NewCartService(cartRepo, log)
	checkout := services.NewCheckoutManager(&services.CheckoutDeps{
		Cart:     cart,
		Coupons:  services.NewCouponService(clients.NewCouponClient(base), log),
		Orders:   clients.NewOrderClient(base),
		Payments: clients.NewPaymentClient(base),
		Profiles: profileRepo,
		Tracking: trackingRepo,
		Feed:     feed,
		Notifier: hub,
		Log:      log,
	})
	tracking := services.NewTrackingManager(&services.TrackingDeps{
		Orders:   clients.NewOrderClient(base),
		Repo:     trackingRepo,
		Feed:     feed,
		Notifier: hub,
		Log:      log,
	})
	t.Cleanup(tracking.StopAll)

	r := gin.New()
	r.Use(middlewares.CORSMiddleware())
	routes.RegisterRoutes(r, &routes.Deps{
		Catalog:      catalog,
		Cart:         cart,
		Checkout:     checkout,
		Tracking:     tracking,
		TrackingRepo: trackingRepo,
		ProfileRepo:  profileRepo,
		Hub:          hub,
		SupportPhone: "(11) 97777-6666",
		Log:          log,
	})
	return r, feed
}

type envelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func call(t *testing.T, r *gin.Engine, deviceKey, method, path string, body any) (int, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if deviceKey != "" {
		req.Header.Set("X-Device-Key", deviceKey)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w.Code, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

type cartBody struct {
	Items      []entity.CartItem `json:"items"`
	TotalItems int               `json:"totalItems"`
	TotalPrice int64             `json:"totalPrice"`
}

func TestSessionMiddleware_RequiresDeviceKey(t *testing.T) {
	r, _ := newStorefront(t)

	code, env := call(t, r, "", http.MethodGet, "/cart", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, env.OK)
}

func TestCheckoutFlow_CashOrder(t *testing.T) {
	r, _ := newStorefront(t)
	dev := "it-cash"

	addReq := gin.H{"restaurantId": "r1", "kind": "item", "itemId": "m1"}
	for i := 0; i < 3; i++ {
		code, _ := call(t, r, dev, http.MethodPost, "/cart/items", addReq)
		require.Equal(t, http.StatusCreated, code)
	}

	code, env := call(t, r, dev, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, code)
	cart := decode[cartBody](t, env.Data)
	assert.Equal(t, 3, cart.TotalItems)
	assert.Equal(t, int64(7500), cart.TotalPrice)
	require.Len(t, cart.Items, 1)

	code, env = call(t, r, dev, http.MethodPost, "/checkout", gin.H{"restaurantId": "r1"})
	require.Equal(t, http.StatusOK, code)
	st := decode[services.State](t, env.Data)
	assert.Equal(t, services.StepSummary, st.Step)

	code, env = call(t, r, dev, http.MethodPost, "/checkout/advance", nil)
	require.Equal(t, http.StatusOK, code)
	st = decode[services.State](t, env.Data)
	assert.Equal(t, services.StepDetails, st.Step)

	code, env = call(t, r, dev, http.MethodPost, "/checkout/coupon", gin.H{"code": "DEZ"})
	require.Equal(t, http.StatusOK, code)
	st = decode[services.State](t, env.Data)
	assert.Equal(t, int64(750), st.Totals.Discount)
	assert.Equal(t, int64(7250), st.Totals.Total)

	code, _ = call(t, r, dev, http.MethodPost, "/checkout/coupon", gin.H{"code": "NADA"})
	assert.Equal(t, http.StatusBadRequest, code)

	details := gin.H{
		"name": "Maria Silva", "phone": "11 91234-5678",
		"deliveryMethod": "delivery",
		"address": gin.H{
			"street": "Rua A", "number": "10",
			"district": "Centro", "city": "Guará",
		},
		"paymentMethod": "Dinheiro",
	}
	code, env = call(t, r, dev, http.MethodPost, "/checkout/details", details)
	require.Equal(t, http.StatusOK, code)
	st = decode[services.State](t, env.Data)
	assert.Equal(t, services.StepSuccess, st.Step)
	require.NotNil(t, st.Order)
	assert.Equal(t, int64(7250), st.Order.Total)
	assert.Contains(t, st.WhatsAppLink, "wa.me/5511988887777")

	// The ledger resets and the order lands in history and tracking.
	code, env = call(t, r, dev, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0, decode[cartBody](t, env.Data).TotalItems)

	code, env = call(t, r, dev, http.MethodGet, "/orders/history", nil)
	require.Equal(t, http.StatusOK, code)
	history := decode[[]entity.Order](t, env.Data)
	require.Len(t, history, 1)
	assert.Equal(t, st.Order.ID, history[0].ID)

	code, env = call(t, r, dev, http.MethodGet, "/tracking", nil)
	require.Equal(t, http.StatusOK, code)
	panel := decode[[]struct {
		entity.Order
		Progress int `json:"progress"`
	}](t, env.Data)
	require.Len(t, panel, 1)
	assert.Equal(t, 1, panel[0].Progress)
}

func TestCheckoutFlow_PixConfirmedByFeed(t *testing.T) {
	r, feed := newStorefront(t)
	dev := "it-pix"

	code, _ := call(t, r, dev, http.MethodPost, "/cart/items",
		gin.H{"restaurantId": "r1", "kind": "item", "itemId": "m1"})
	require.Equal(t, http.StatusCreated, code)

	code, _ = call(t, r, dev, http.MethodPost, "/checkout", gin.H{"restaurantId": "r1"})
	require.Equal(t, http.StatusOK, code)
	code, _ = call(t, r, dev, http.MethodPost, "/checkout/advance", nil)
	require.Equal(t, http.StatusOK, code)

	details := gin.H{
		"name": "João Souza", "phone": "11 95555-4444",
		"deliveryMethod": "pickup",
		"paymentMethod":  "Pix",
	}
	code, env := call(t, r, dev, http.MethodPost, "/checkout/details", details)
	require.Equal(t, http.StatusOK, code)
	st := decode[services.State](t, env.Data)
	require.Equal(t, services.StepPixPayment, st.Step)
	require.NotNil(t, st.Intent)
	assert.NotEmpty(t, st.Intent.Code)
	assert.Greater(t, st.RemainingSecs, 0)

	feed.Publish(realtime.OrderUpdate{OrderID: st.Intent.OrderID, Status: entity.StatusNew})

	code, env = call(t, r, dev, http.MethodGet, "/checkout", nil)
	require.Equal(t, http.StatusOK, code)
	st = decode[services.State](t, env.Data)
	assert.Equal(t, services.StepSuccess, st.Step)
	require.NotNil(t, st.Order)
	assert.Equal(t, entity.StatusNew, st.Order.Status)
}

func TestCheckoutFlow_ConfiguredItemsStayDistinct(t *testing.T) {
	r, _ := newStorefront(t)
	dev := "it-config"

	plain := gin.H{"restaurantId": "r1", "kind": "item", "itemId": "m1"}
	noted := gin.H{
		"restaurantId": "r1", "kind": "configured", "itemId": "m1",
		"selection": gin.H{"quantity": 1, "notes": "sem feijão"},
	}
	code, _ := call(t, r, dev, http.MethodPost, "/cart/items", plain)
	require.Equal(t, http.StatusCreated, code)
	code, env := call(t, r, dev, http.MethodPost, "/cart/items", noted)
	require.Equal(t, http.StatusCreated, code)

	// No size/addons/halves selected, so the configured line carries the
	// plain key and merges with the simple add.
	cart := decode[cartBody](t, env.Data)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)

	code, env = call(t, r, dev, http.MethodDelete, "/cart/items/"+cart.Items[0].ID, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, decode[cartBody](t, env.Data).Items)
}

func TestFavoritesAndSupportLink(t *testing.T) {
	r, _ := newStorefront(t)
	dev := "it-fav"

	code, env := call(t, r, dev, http.MethodPut, "/favorites", gin.H{"ids": []string{"m1"}})
	require.Equal(t, http.StatusOK, code)

	code, env = call(t, r, dev, http.MethodGet, "/favorites", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"m1"}, decode[[]string](t, env.Data))

	code, env = call(t, r, dev, http.MethodGet, "/support-link", nil)
	require.Equal(t, http.StatusOK, code)
	link := decode[map[string]string](t, env.Data)
	assert.Contains(t, link["url"], "wa.me/5511977776666")
}
