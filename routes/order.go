package routes

import (
	"net/http"

	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func SetupOrderRoutes(r *gin.Engine, deps Deps) {
	orders := r.Group("/api/Order")
	orders.Use(middleware.Identify(deps.Issuer), middleware.RequireUser)
	{
		// Fetch the caller's orders
		orders.GET("", func(c *gin.Context) {
			list, err := deps.Store.ListOrders(c.Request.Context(), c.GetString(middleware.KeyUserID))
			if err != nil {
				deps.Logger.Error("❌ Failed to fetch orders", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
				return
			}
			c.JSON(http.StatusOK, list)
		})
	}
}
