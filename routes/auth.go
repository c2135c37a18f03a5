package routes

import (
	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/auth"
	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes registers all “/api/Auth/*” endpoints.
func SetupAuthRoutes(r *gin.Engine, deps Deps) {
	authGroup := r.Group("/api/Auth")
	{
		authGroup.POST("/login", auth.LoginHandler(deps.Issuer, deps.Logger))
	}
}
