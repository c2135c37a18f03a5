package cart

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/models"
	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/notify"
	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/session"
	"go.uber.org/zap"
)

type CheckoutAction int

const (
	RedirectToLogin CheckoutAction = iota
	ProceedToCheckout
)

// CheckoutDecision tells the caller where the shopper goes next.
type CheckoutDecision struct {
	Action CheckoutAction
	URL    string
}

// HandleCheckout branches on the local authentication check. Anonymous
// shoppers are sent to login with the migration flag and the checkout page
// saved as post-login redirect.
func (s *Service) HandleCheckout() (CheckoutDecision, error) {
	if s.Cart().TotalItems == 0 {
		s.notifier.Toast(notify.LevelWarning, "Your cart is empty")
		return CheckoutDecision{}, ErrEmptyCart
	}

	if s.IsUserAuthenticated() {
		return CheckoutDecision{Action: ProceedToCheckout, URL: s.cfg.CheckoutURL}, nil
	}

	if err := s.store.Set(session.KeyNeedsCartMigration, "true"); err != nil {
		return CheckoutDecision{}, err
	}
	if err := s.store.Set(session.KeyRedirectAfterLogin, s.cfg.CheckoutURL); err != nil {
		return CheckoutDecision{}, err
	}
	s.notifier.Toast(notify.LevelInfo, "Please log in to complete your purchase")
	return CheckoutDecision{Action: RedirectToLogin, URL: loginURL(s.cfg.LoginURL, s.cfg.CheckoutURL)}, nil
}

// Checkout places the order for the authenticated user's cart.
func (s *Service) Checkout(ctx context.Context, req models.CheckoutRequest) (models.Order, error) {
	if !s.IsUserAuthenticated() {
		return models.Order{}, ErrNotAuthenticated
	}
	id, err := s.currentIdentity()
	if err != nil {
		s.fail("checkout", err)
		return models.Order{}, err
	}

	var order models.Order
	if err := s.do(ctx, id, http.MethodPost, "/api/Cart/checkout", req, &order); err != nil {
		s.fail("checkout", err)
		return models.Order{}, err
	}

	s.replace(models.EmptyCart())
	s.logger.Info("📦 order placed", zap.Uint("order_id", order.ID), zap.Float64("total", order.TotalAmount))
	s.notifier.Toast(notify.LevelSuccess, fmt.Sprintf("Order #%d placed", order.ID))
	return order, nil
}

func loginURL(login, returnTo string) string {
	sep := "?"
	if strings.Contains(login, "?") {
		sep = "&"
	}
	return login + sep + "returnUrl=" + url.QueryEscape(returnTo)
}
