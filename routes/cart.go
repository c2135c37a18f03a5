package routes

import (
	cartControllers "github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/controllers/cart"
	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/middleware"
	"github.com/gin-gonic/gin"
)

// SetupCartRoutes registers all “/api/Cart/*” endpoints.
func SetupCartRoutes(r *gin.Engine, deps Deps) {
	cartGroup := r.Group("/api/Cart")
	cartGroup.Use(middleware.Identify(deps.Issuer))
	{
		cartGroup.GET("", cartControllers.GetCart(deps.Store, deps.Logger))                         // GET /api/Cart
		cartGroup.DELETE("", cartControllers.ClearCart(deps.Store, deps.Logger))                    // DELETE /api/Cart
		cartGroup.POST("/items", cartControllers.AddItem(deps.Store, deps.Logger))                  // POST /api/Cart/items
		cartGroup.PUT("/items/:product_id", cartControllers.UpdateItem(deps.Store, deps.Logger))    // PUT /api/Cart/items/:product_id
		cartGroup.DELETE("/items/:product_id", cartControllers.RemoveItem(deps.Store, deps.Logger)) // DELETE /api/Cart/items/:product_id
		cartGroup.POST("/migrate", middleware.RequireUser, cartControllers.MigrateCart(deps.Store, deps.Logger))
		cartGroup.POST("/checkout", middleware.RequireUser, cartControllers.Checkout(deps.Store, deps.Logger))
	}
}
