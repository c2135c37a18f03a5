package routes

import (
	cartControllers "github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/controllers/cart"
	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/middleware"
	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes registers all “/admin/*” endpoints. Requires API‐Key middleware.
func SetupAdminRoutes(r *gin.Engine, deps Deps) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey(deps.AdminAPIKey))
	{
		adminGroup.GET("/carts/:owner_id", cartControllers.GetAdminCart(deps.Store, deps.Logger))
		adminGroup.GET("/orders", cartControllers.ListOrders(deps.Store, deps.Logger))
	}
}
