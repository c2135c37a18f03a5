package routes

import (
	"time"

	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/auth"
	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/database"
	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/session"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps is everything the route groups need.
type Deps struct {
	Store       database.Store
	Issuer      *auth.Issuer
	AdminAPIKey string
	Logger      *zap.Logger
}

// SetupRoutes is the single entry‐point that wires up Auth, Cart, Order and Admin route groups.
func SetupRoutes(r *gin.Engine, deps Deps) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY", session.Header},
		ExposeHeaders:    []string{"Content-Length", session.Header},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 1️⃣ Public Auth routes (no middleware)
	SetupAuthRoutes(r, deps)

	// 2️⃣ Cart routes (anonymous session or JWT)
	SetupCartRoutes(r, deps)

	// 3️⃣ Order routes (JWT)
	SetupOrderRoutes(r, deps)

	// 4️⃣ Admin routes (API‐Key‐protected)
	SetupAdminRoutes(r, deps)
}

// NewRouter builds a gin engine with the full route table.
func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	SetupRoutes(r, deps)
	return r
}
