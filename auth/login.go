package auth

import (
	"net/http"
	"strings"

	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// POST /api/Auth/login
//
// Any e-mail with a non-empty password logs in; the e-mail becomes the user id.
func LoginHandler(issuer *Issuer, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Message: "Invalid login request",
				Errors:  []string{err.Error()},
			})
			return
		}

		userID := strings.ToLower(strings.TrimSpace(req.Email))
		token, exp, err := issuer.Issue(userID, "user")
		if err != nil {
			logger.Error("❌ token generation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		logger.Info("🔑 user logged in", zap.String("user_id", userID))
		c.JSON(http.StatusOK, models.LoginResponse{Token: token, ExpiresAt: exp.Unix()})
	}
}
