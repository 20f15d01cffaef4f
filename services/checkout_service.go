package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/digitalpersonal/guarafood-app-sub001/entity"
	"github.com/digitalpersonal/guarafood-app-sub001/realtime"
	"github.com/digitalpersonal/guarafood-app-sub001/repository"
	"github.com/digitalpersonal/guarafood-app-sub001/utils"
)

// Checkout steps. Failure has no dedicated step; errors surface inline and
// leave the session where it was.
type Step string

const (
	StepSummary    Step = "SUMMARY"
	StepDetails    Step = "DETAILS"
	StepPixPayment Step = "PIX_PAYMENT"
	StepSuccess    Step = "SUCCESS"
)

// PaymentPix is the automated instant-payment method on restaurant
// allow-lists.
const PaymentPix = "Pix"

var (
	ErrCartEmpty               = errors.New("carrinho vazio")
	ErrRestaurantClosed        = errors.New("restaurante fechado no momento")
	ErrInvalidStep             = errors.New("ação indisponível nesta etapa")
	ErrMissingFields           = errors.New("nome, telefone e forma de pagamento são obrigatórios")
	ErrIncompleteAddress       = errors.New("endereço incompleto para entrega")
	ErrPaymentNotAllowed       = errors.New("forma de pagamento não aceita pelo restaurante")
	ErrPaymentUnavailable      = errors.New("não foi possível gerar o pagamento Pix")
	ErrNoCheckoutSession       = errors.New("nenhum checkout em andamento")
	ErrManualPixNotConfigured  = errors.New("chave Pix manual não configurada")
	ErrPaymentAlreadyConfirmed = errors.New("pagamento já confirmado")
)

const (
	DeliveryMethodDelivery = "delivery"
	DeliveryMethodPickup   = "pickup"
)

// CustomerDetails is what the DETAILS step collects.
type CustomerDetails struct {
	Name           string          `json:"name"`
	Phone          string          `json:"phone"`
	DeliveryMethod string          `json:"deliveryMethod"`
	Address        *entity.Address `json:"address,omitempty"`
	Packaging      bool            `json:"packaging,omitempty"`
	PaymentMethod  string          `json:"paymentMethod"`
	ChangeFor      int64           `json:"changeFor,omitempty"`
}

// Totals is the derived pricing breakdown shown from SUMMARY onward.
// Total is always max(0, subtotal-discount) + deliveryFee.
type Totals struct {
	Subtotal    int64 `json:"subtotal"`
	Discount    int64 `json:"discount"`
	DeliveryFee int64 `json:"deliveryFee"`
	Total       int64 `json:"total"`
}

// CheckoutDeps are the collaborators one checkout session works against.
type CheckoutDeps struct {
	Cart     *CartService
	Coupons  *CouponService
	Orders   OrderClient
	Payments PaymentClient
	Profiles *repository.ProfileRepository
	Tracking *repository.TrackingRepository
	Feed     *realtime.Feed
	Notifier Notifier
	Log      *logrus.Logger

	// Now is the clock; nil means time.Now. PixTimeout defaults to 300s.
	Now        func() time.Time
	PixTimeout time.Duration
}

func (d *CheckoutDeps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d *CheckoutDeps) pixTimeout() time.Duration {
	if d.PixTimeout > 0 {
		return d.PixTimeout
	}
	return 300 * time.Second
}

// CheckoutManager owns at most one live session per device key. Opening
// checkout always builds a fresh session at SUMMARY; nothing carries over
// between independent checkout sessions.
type CheckoutManager struct {
	deps *CheckoutDeps

	mu       sync.Mutex
	sessions map[string]*CheckoutSession
}

func NewCheckoutManager(deps *CheckoutDeps) *CheckoutManager {
	return &CheckoutManager{deps: deps, sessions: make(map[string]*CheckoutSession)}
}

func (m *CheckoutManager) Open(deviceKey string, r *entity.Restaurant) *CheckoutSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.sessions[deviceKey]; ok {
		old.Teardown()
	}
	s := &CheckoutSession{deviceKey: deviceKey, restaurant: r, deps: m.deps, step: StepSummary}
	m.sessions[deviceKey] = s
	return s
}

func (m *CheckoutManager) Session(deviceKey string) (*CheckoutSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[deviceKey]
	if !ok {
		return nil, ErrNoCheckoutSession
	}
	return s, nil
}

// Close tears the session down and forgets it.
func (m *CheckoutManager) Close(deviceKey string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[deviceKey]; ok {
		s.Teardown()
		delete(m.sessions, deviceKey)
	}
}

// CheckoutSession is the linear wizard over SUMMARY, DETAILS, PIX_PAYMENT
// and SUCCESS for one device.
type CheckoutSession struct {
	mu sync.Mutex

	deviceKey  string
	restaurant *entity.Restaurant
	deps       *CheckoutDeps

	step    Step
	details CustomerDetails

	coupon     *entity.Coupon
	couponCode string

	intent         *entity.PixIntent
	manualFallback bool
	deadline       time.Time
	countdown      *time.Timer
	unsubscribe    func()
	timedOut       bool

	finalOrder   *entity.Order
	whatsappLink string
}

func (s *CheckoutSession) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

func (s *CheckoutSession) Restaurant() *entity.Restaurant { return s.restaurant }

// Totals recomputes the breakdown from the current cart, coupon and
// delivery method. Discount is clamped so the total never goes negative;
// pickup waives the delivery fee.
func (s *CheckoutSession) Totals() (Totals, error) {
	cart, err := s.deps.Cart.Get(s.deviceKey)
	if err != nil {
		return Totals{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalsLocked(cart), nil
}

func (s *CheckoutSession) totalsLocked(cart *entity.Cart) Totals {
	subtotal := cart.TotalPrice()
	discount := Discount(s.coupon, subtotal)
	fee := s.restaurant.DeliveryFee
	if s.details.DeliveryMethod == DeliveryMethodPickup {
		fee = 0
	}
	return Totals{
		Subtotal:    subtotal,
		Discount:    discount,
		DeliveryFee: fee,
		Total:       subtotal - discount + fee,
	}
}

// Advance moves SUMMARY to DETAILS. It requires a non-empty cart and that
// the restaurant is currently open.
func (s *CheckoutSession) Advance() error {
	cart, err := s.deps.Cart.Get(s.deviceKey)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != StepSummary {
		return ErrInvalidStep
	}
	if cart.TotalItems() == 0 {
		return ErrCartEmpty
	}
	if !IsOpen(s.restaurant, s.deps.now()) {
		return ErrRestaurantClosed
	}
	s.step = StepDetails
	return nil
}

// ApplyCoupon validates the code against the restaurant and the current
// subtotal. Failures leave the applied-coupon state untouched.
func (s *CheckoutSession) ApplyCoupon(ctx context.Context, code string) error {
	cart, err := s.deps.Cart.Get(s.deviceKey)
	if err != nil {
		return err
	}
	c, err := s.deps.Coupons.Validate(ctx, s.restaurant.ID, code, cart.TotalPrice(), s.deps.now())
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.coupon = c
	s.couponCode = code
	s.mu.Unlock()
	return nil
}

func (s *CheckoutSession) RemoveCoupon() {
	s.mu.Lock()
	s.coupon = nil
	s.couponCode = ""
	s.mu.Unlock()
}

func (s *CheckoutSession) Coupon() *entity.Coupon {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coupon
}

// AutofillProfile matches a previously saved local profile by name,
// best-effort convenience for returning customers.
func (s *CheckoutSession) AutofillProfile(name string) *entity.CustomerProfile {
	p, err := s.deps.Profiles.FindProfile(s.deviceKey, name)
	if err != nil {
		s.deps.Log.Warnf("profile lookup failed: %v", err)
		return nil
	}
	return p
}

// SubmitDetails validates the form and routes by payment method: Pix goes
// through the automated intent into PIX_PAYMENT (or the manual fallback);
// everything else submits the order directly and lands on SUCCESS. On
// order-creation failure the cart is preserved for retry.
func (s *CheckoutSession) SubmitDetails(ctx context.Context, d CustomerDetails) error {
	cart, err := s.deps.Cart.Get(s.deviceKey)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != StepDetails {
		return ErrInvalidStep
	}
	if strings.TrimSpace(d.Name) == "" || strings.TrimSpace(d.Phone) == "" || d.PaymentMethod == "" {
		return ErrMissingFields
	}
	if d.DeliveryMethod == "" {
		d.DeliveryMethod = DeliveryMethodDelivery
	}
	if d.DeliveryMethod == DeliveryMethodDelivery && !d.Address.Complete() {
		return ErrIncompleteAddress
	}
	if !s.restaurant.AllowsPayment(d.PaymentMethod) {
		return ErrPaymentNotAllowed
	}
	s.details = d

	payload := s.payloadLocked(cart)

	if d.PaymentMethod == PaymentPix {
		intent, err := s.deps.Payments.CreateIntent(ctx, payload)
		if err != nil {
			if s.restaurant.PixKey != "" {
				s.deps.Log.Warnf("pix intent failed, falling back to manual key: %v", err)
				s.manualFallback = true
				s.step = StepPixPayment
				return nil
			}
			return ErrPaymentUnavailable
		}
		s.intent = intent
		s.step = StepPixPayment
		s.startPaymentWatchLocked()
		return nil
	}

	order, err := s.deps.Orders.Create(ctx, payload)
	if err != nil {
		return err
	}
	s.finishLocked(order)
	return nil
}

// payloadLocked snapshots cart, details and totals into an order payload.
func (s *CheckoutSession) payloadLocked(cart *entity.Cart) *entity.OrderPayload {
	t := s.totalsLocked(cart)
	label := s.details.PaymentMethod
	if s.details.ChangeFor > 0 && isCashLike(label) {
		label += " (troco para " + utils.FormatBRL(s.details.ChangeFor) + ")"
	}
	var addr *entity.Address
	if s.details.DeliveryMethod == DeliveryMethodDelivery {
		addr = s.details.Address
	}
	return &entity.OrderPayload{
		CustomerName:   s.details.Name,
		CustomerPhone:  s.details.Phone,
		DeliveryMethod: s.details.DeliveryMethod,
		Address:        addr,
		Packaging:      s.details.Packaging,
		Items:          append([]entity.CartItem(nil), cart.Items...),
		Subtotal:       t.Subtotal,
		Discount:       t.Discount,
		DeliveryFee:    t.DeliveryFee,
		Total:          t.Total,
		PaymentMethod:  label,
		CouponCode:     s.couponCode,
		RestaurantID:   s.restaurant.ID,
		RestaurantName: s.restaurant.Name,
	}
}

// startPaymentWatchLocked arms the 300s countdown and the passive status
// subscription. The first transition to "Novo Pedido" on the intent's
// order confirms payment.
func (s *CheckoutSession) startPaymentWatchLocked() {
	s.timedOut = false
	s.deadline = s.deps.now().Add(s.deps.pixTimeout())
	s.countdown = time.AfterFunc(s.deps.pixTimeout(), s.onCountdownExpired)
	s.unsubscribe = s.deps.Feed.Subscribe(s.intent.OrderID, s.onOrderUpdate)
}

func (s *CheckoutSession) onCountdownExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != StepPixPayment {
		return
	}
	// Timeout surfaces an error but forces no state change; the manual
	// fallback path stays usable when configured. The countdown and the
	// status subscription are done for this session: a late confirmation
	// must not fire cues or finalize the order.
	s.timedOut = true
	s.stopPaymentLocked()
}

func (s *CheckoutSession) onOrderUpdate(u realtime.OrderUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != StepPixPayment || s.intent == nil || u.OrderID != s.intent.OrderID {
		return
	}
	if u.Status != entity.StatusNew {
		return
	}
	order := &entity.Order{
		ID:              s.intent.OrderID,
		OrderNumber:     s.intent.OrderNumber,
		CreatedAt:       s.deps.now(),
		Status:          entity.StatusNew,
		PaymentStatus:   "paid",
		CustomerName:    s.details.Name,
		CustomerPhone:   s.details.Phone,
		DeliveryMethod:  s.details.DeliveryMethod,
		Address:         s.details.Address,
		Packaging:       s.details.Packaging,
		PaymentMethod:   PaymentPix,
		CouponCode:      s.couponCode,
		RestaurantID:    s.restaurant.ID,
		RestaurantName:  s.restaurant.Name,
		RestaurantPhone: s.restaurant.Phone,
	}
	if cart, err := s.deps.Cart.Get(s.deviceKey); err == nil {
		t := s.totalsLocked(cart)
		order.Items = cart.Items
		order.Subtotal = t.Subtotal
		order.Discount = t.Discount
		order.DeliveryFee = t.DeliveryFee
		order.Total = t.Total
	}
	s.deps.Notifier.Toast(s.deviceKey, "Pagamento confirmado!")
	s.finishLocked(order)
}

// ConfirmManualPayment is the self-reported "I paid" path against the
// restaurant's fixed pix key; it submits the order with no automated
// verification.
func (s *CheckoutSession) ConfirmManualPayment(ctx context.Context) error {
	cart, err := s.deps.Cart.Get(s.deviceKey)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != StepPixPayment {
		return ErrInvalidStep
	}
	if s.restaurant.PixKey == "" {
		return ErrManualPixNotConfigured
	}
	payload := s.payloadLocked(cart)
	payload.PaymentMethod = "Pix (manual)"
	order, err := s.deps.Orders.Create(ctx, payload)
	if err != nil {
		return err
	}
	s.finishLocked(order)
	return nil
}

// Back leaves PIX_PAYMENT for DETAILS, cancelling the countdown and the
// status subscription and clearing payment-intent state.
func (s *CheckoutSession) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != StepPixPayment {
		return ErrInvalidStep
	}
	s.stopPaymentLocked()
	s.intent = nil
	s.manualFallback = false
	s.timedOut = false
	s.step = StepDetails
	return nil
}

// Teardown cancels any pending countdown and subscription. Safe to call
// on every exit route, repeatedly.
func (s *CheckoutSession) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopPaymentLocked()
}

func (s *CheckoutSession) stopPaymentLocked() {
	if s.countdown != nil {
		s.countdown.Stop()
		s.countdown = nil
	}
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// finishLocked runs the SUCCESS hooks: record the order locally, register
// it as tracked, save the customer profile, clear the cart and build the
// support deep link. Persistence here is best effort.
func (s *CheckoutSession) finishLocked(order *entity.Order) {
	s.stopPaymentLocked()

	if order.Status == "" {
		order.Status = entity.StatusNew
	}
	if err := s.deps.Tracking.AppendHistory(s.deviceKey, order); err != nil {
		s.deps.Log.Warnf("record order history: %v", err)
	}
	if err := s.deps.Tracking.AddTrackedID(s.deviceKey, order.ID); err != nil {
		s.deps.Log.Warnf("track order: %v", err)
	}
	profile := &entity.CustomerProfile{Name: s.details.Name, Phone: s.details.Phone, Address: s.details.Address}
	if err := s.deps.Profiles.SaveProfile(s.deviceKey, profile); err != nil {
		s.deps.Log.Warnf("save customer profile: %v", err)
	}
	if err := s.deps.Cart.Clear(s.deviceKey); err != nil {
		s.deps.Log.Warnf("clear cart: %v", err)
	}

	s.finalOrder = order
	s.whatsappLink = utils.WhatsAppLink(s.restaurant.Phone, utils.OrderConfirmationMessage(order))
	s.step = StepSuccess
}

func isCashLike(method string) bool {
	m := strings.ToLower(method)
	return strings.Contains(m, "dinheiro") || strings.Contains(m, "cash")
}

// State is the renderable snapshot of a session.
type State struct {
	Step           Step              `json:"step"`
	Totals         Totals            `json:"totals"`
	Coupon         *entity.Coupon    `json:"coupon,omitempty"`
	Intent         *entity.PixIntent `json:"intent,omitempty"`
	ManualPixKey   string            `json:"manualPixKey,omitempty"`
	ManualFallback bool              `json:"manualFallback"`
	TimedOut       bool              `json:"timedOut"`
	RemainingSecs  int               `json:"remainingSeconds"`
	Order          *entity.Order     `json:"order,omitempty"`
	WhatsAppLink   string            `json:"whatsappLink,omitempty"`
}

// Snapshot renders the session for the UI.
func (s *CheckoutSession) Snapshot() (*State, error) {
	cart, err := s.deps.Cart.Get(s.deviceKey)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	st := &State{
		Step:           s.step,
		Totals:         s.totalsLocked(cart),
		Coupon:         s.coupon,
		Intent:         s.intent,
		ManualFallback: s.manualFallback,
		TimedOut:       s.timedOut,
		Order:          s.finalOrder,
		WhatsAppLink:   s.whatsappLink,
	}
	if s.step == StepPixPayment {
		st.ManualPixKey = s.restaurant.PixKey
		if !s.manualFallback && !s.deadline.IsZero() {
			if rem := int(s.deadline.Sub(s.deps.now()).Seconds()); rem > 0 {
				st.RemainingSecs = rem
			}
		}
	}
	return st, nil
}
