package cart

import (
	"context"
	"net/http"

	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/models"
	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/notify"
	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/session"
	"go.uber.org/zap"
)

// Login exchanges credentials for a bearer token and completes the login.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	var resp models.LoginResponse
	body := models.LoginRequest{Email: email, Password: password}
	if err := s.do(ctx, identity{}, http.MethodPost, "/api/Auth/login", body, &resp); err != nil {
		s.logger.Error("❌ login failed", zap.Error(err))
		s.notifier.Toast(notify.LevelError, userMessage(err))
		return "", err
	}
	return s.CompleteLogin(ctx, resp.Token)
}

// CompleteLogin makes token the authoritative identity. When a checkout
// parked the shopper with needsCartMigration set, the anonymous cart is
// migrated now; otherwise the user's cart is loaded. It returns the
// post-login redirect saved by HandleCheckout, if any, and clears it.
func (s *Service) CompleteLogin(ctx context.Context, token string) (string, error) {
	if !session.IsTokenLive(token, s.now()) {
		return "", ErrInvalidToken
	}
	if err := s.store.Set(session.KeyAuthToken, token); err != nil {
		return "", err
	}

	redirect, _, err := s.store.Get(session.KeyRedirectAfterLogin)
	if err != nil {
		return "", err
	}
	if redirect != "" {
		if err := s.store.Remove(session.KeyRedirectAfterLogin); err != nil {
			return "", err
		}
	}

	if s.needsMigration() {
		_, err = s.MigrateCart(ctx)
	} else {
		_, err = s.LoadCart(ctx)
	}

	// The anonymous session ends with the login, migrated or not.
	if rmErr := s.store.Remove(session.KeySessionID); rmErr != nil && err == nil {
		err = rmErr
	}
	return redirect, err
}

func (s *Service) needsMigration() bool {
	v, ok, err := s.store.Get(session.KeyNeedsCartMigration)
	return err == nil && ok && v == "true"
}

// MigrateCart merges the anonymous session's cart into the logged-in user's
// cart. It runs at most once per flagged login: the flag and the anonymous
// session id are dropped before the request goes out, whatever its outcome.
// Without the flag it returns the current cart untouched.
func (s *Service) MigrateCart(ctx context.Context) (models.Cart, error) {
	if !s.IsUserAuthenticated() {
		return models.EmptyCart(), ErrNotAuthenticated
	}

	s.mu.Lock()
	if s.migrating || !s.needsMigration() {
		cart := copyCart(s.cart)
		s.mu.Unlock()
		return cart, nil
	}
	sessionID, _, err := s.store.Get(session.KeySessionID)
	if err == nil {
		err = s.store.Remove(session.KeyNeedsCartMigration)
	}
	if err == nil {
		err = s.store.Remove(session.KeySessionID)
	}
	if err != nil {
		s.mu.Unlock()
		return s.Cart(), err
	}
	s.migrating = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.migrating = false
		s.mu.Unlock()
	}()

	if sessionID == "" {
		return s.LoadCart(ctx)
	}

	id, err := s.currentIdentity()
	if err != nil {
		s.fail("migrate", err)
		return models.EmptyCart(), err
	}

	var cart models.Cart
	body := models.MigrateRequest{SessionID: session.GUID(sessionID)}
	if err := s.do(ctx, id, http.MethodPost, "/api/Cart/migrate", body, &cart); err != nil {
		s.fail("migrate", err)
		return models.EmptyCart(), err
	}

	s.replace(cart)
	s.logger.Info("🔀 anonymous cart migrated", zap.Int("items", cart.TotalItems))
	if cart.TotalItems > 0 {
		s.notifier.Toast(notify.LevelSuccess, "Your cart was saved to your account")
	}
	return copyCart(cart), nil
}
