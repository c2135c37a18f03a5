// Package cart is the storefront's client-side cart: it mirrors the server
// cart, reconciles the anonymous session with the logged-in user and decides
// where checkout goes.
//
// The server is the only source of truth. Every successful mutating call
// replaces the local cart with the server's answer; every failure collapses it
// to the empty placeholder. Calls are not queued or de-duplicated, so with
// concurrent calls the last response to arrive wins.
package cart

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/localstore"
	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/models"
	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/notify"
	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/session"
	"go.uber.org/zap"
)

type Config struct {
	BaseURL     string // backend root, e.g. http://localhost:8080
	LoginURL    string // page unauthenticated shoppers are sent to
	CheckoutURL string // page authenticated shoppers proceed to
	Timeout     time.Duration
}

type State int

const (
	StateAnonymous State = iota
	StateMigrating
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateMigrating:
		return "migrating"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

type Option func(*Service)

func WithHTTPClient(c *http.Client) Option {
	return func(s *Service) { s.http = c }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// Service is safe for concurrent use.
type Service struct {
	cfg      Config
	http     *http.Client
	store    localstore.Store
	notifier notify.Notifier
	logger   *zap.Logger
	now      func() time.Time

	mu        sync.Mutex
	cart      models.Cart
	migrating bool
}

func NewService(cfg Config, store localstore.Store, notifier notify.Notifier, logger *zap.Logger, opts ...Option) *Service {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if notifier == nil {
		notifier = notify.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		cfg:      cfg,
		http:     &http.Client{Timeout: cfg.Timeout},
		store:    store,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
		cart:     models.EmptyCart(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Cart returns a copy of the current client-side cart.
func (s *Service) Cart() models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyCart(s.cart)
}

func (s *Service) State() State {
	s.mu.Lock()
	migrating := s.migrating
	s.mu.Unlock()
	if migrating {
		return StateMigrating
	}
	if s.IsUserAuthenticated() {
		return StateAuthenticated
	}
	return StateAnonymous
}

// IsUserAuthenticated decodes the stored token's exp claim locally. The
// signature is not checked: this only avoids sending a token the server
// would reject, it is not an access control.
func (s *Service) IsUserAuthenticated() bool {
	token, ok, err := s.store.Get(session.KeyAuthToken)
	if err != nil || !ok {
		return false
	}
	return session.IsTokenLive(token, s.now())
}

// LoadCart fetches the current cart.
func (s *Service) LoadCart(ctx context.Context) (models.Cart, error) {
	return s.call(ctx, "load cart", http.MethodGet, "/api/Cart", nil, "")
}

func (s *Service) AddItem(ctx context.Context, productID string, quantity int, flavor, size string) (models.Cart, error) {
	body := models.AddItemRequest{ProductID: productID, Quantity: quantity, Flavor: flavor, Size: size}
	return s.call(ctx, "add item", http.MethodPost, "/api/Cart/items", body, "Product added to cart")
}

// UpdateItemQuantity sets the quantity of a line; below 1 it removes the line.
func (s *Service) UpdateItemQuantity(ctx context.Context, productID string, quantity int) (models.Cart, error) {
	if quantity < 1 {
		return s.RemoveItem(ctx, productID)
	}
	body := models.UpdateItemRequest{Quantity: quantity}
	return s.call(ctx, "update item", http.MethodPut, "/api/Cart/items/"+url.PathEscape(productID), body, "")
}

func (s *Service) RemoveItem(ctx context.Context, productID string) (models.Cart, error) {
	return s.call(ctx, "remove item", http.MethodDelete, "/api/Cart/items/"+url.PathEscape(productID), nil, "Item removed from cart")
}

func (s *Service) ClearCart(ctx context.Context) (models.Cart, error) {
	return s.call(ctx, "clear cart", http.MethodDelete, "/api/Cart", nil, "Cart cleared")
}

// Logout forgets the bearer token and the local cart.
func (s *Service) Logout() error {
	if err := s.store.Remove(session.KeyAuthToken); err != nil {
		return err
	}
	s.replace(models.EmptyCart())
	return nil
}

// call runs one cart round trip and applies replace-on-success / collapse-on-failure.
func (s *Service) call(ctx context.Context, op, method, path string, body any, success string) (models.Cart, error) {
	id, err := s.currentIdentity()
	if err != nil {
		s.fail(op, err)
		return models.EmptyCart(), err
	}

	var cart models.Cart
	if err := s.do(ctx, id, method, path, body, &cart); err != nil {
		s.fail(op, err)
		return models.EmptyCart(), err
	}

	s.replace(cart)
	if success != "" {
		s.notifier.Toast(notify.LevelSuccess, success)
	}
	return copyCart(cart), nil
}

// replace installs cart as the client state and refreshes the badge.
func (s *Service) replace(cart models.Cart) {
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	s.mu.Lock()
	s.cart = cart
	s.mu.Unlock()
	s.notifier.Badge(cart.TotalItems)
}

// fail collapses the cart to the empty placeholder, hides the badge and
// tells the shopper. Nothing is retried.
func (s *Service) fail(op string, err error) {
	s.logger.Error("❌ cart "+op+" failed", zap.Error(err))
	s.replace(models.EmptyCart())
	s.notifier.Toast(notify.LevelError, userMessage(err))
}

func copyCart(c models.Cart) models.Cart {
	out := c
	out.Items = append([]models.CartItem{}, c.Items...)
	return out
}
