package cartControllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/database"
	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/middleware"
	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/models"
	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/session"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// POST /api/Cart/migrate
//
// Merges the anonymous cart named by the session GUID into the caller's cart.
// Quantities of products present in both carts are summed.
func MigrateCart(store database.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.MigrateRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			businessError(c, http.StatusBadRequest, "Invalid input", err.Error())
			return
		}
		sessionID := session.FromGUID(input.SessionID)
		if !session.IsID(sessionID) {
			businessError(c, http.StatusBadRequest, "Invalid session", "sessionId must be a GUID")
			return
		}

		userID := c.GetString(middleware.KeyUserID)
		cart, err := store.MergeCarts(c.Request.Context(), sessionID, userID)
		if err != nil {
			internalError(c, logger, "Failed to migrate cart", err)
			return
		}

		logger.Info("🔀 cart migrated",
			zap.String("user_id", userID),
			zap.String("session_id", sessionID),
			zap.Int("items", cart.TotalItems))
		c.JSON(http.StatusOK, cart)
	}
}

// POST /api/Cart/checkout
func Checkout(store database.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.CheckoutRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			businessError(c, http.StatusBadRequest, "Invalid input", err.Error())
			return
		}

		userID := c.GetString(middleware.KeyUserID)
		cart, err := store.GetCart(c.Request.Context(), userID)
		if err != nil {
			internalError(c, logger, "Failed to fetch cart", err)
			return
		}
		if len(cart.Items) == 0 {
			businessError(c, http.StatusBadRequest, "Cart is empty", "add items before checking out")
			return
		}

		order, err := store.CreateOrder(c.Request.Context(), models.NewOrderFromCart(userID, cart, input, time.Now()))
		if err != nil {
			internalError(c, logger, "Failed to place order", err)
			return
		}

		logger.Info("📦 order placed", zap.Uint("order_id", order.ID), zap.String("user_id", userID),
			zap.Float64("total", order.TotalAmount))
		c.JSON(http.StatusCreated, order)
	}
}

// GET /admin/orders
func ListOrders(store database.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := store.ListOrders(c.Request.Context(), c.Query("user_id"))
		if err != nil {
			internalError(c, logger, "Failed to fetch orders", err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
