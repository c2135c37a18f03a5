package middleware

import (
	"net/http"
	"strings"

	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/auth"
	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/models"
	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/session"
	"github.com/gin-gonic/gin"
)

// Context keys set by Identify.
const (
	KeyOwnerID   = "owner_id"
	KeyUserID    = "user_id"
	KeySessionID = "session_id"
)

// Identify resolves who a cart request belongs to. A bearer token must be
// valid; without one the caller is anonymous and gets a session id, either
// the well-formed one it sent or a freshly issued one, echoed back in the
// X-Session-Id response header.
func Identify(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader("Authorization"); header != "" {
			tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			userID, err := issuer.Verify(tokenString)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
				return
			}
			c.Set(KeyUserID, userID)
			c.Set(KeyOwnerID, userID)
			c.Next()
			return
		}

		sessionID := c.GetHeader(session.Header)
		if !session.IsID(sessionID) {
			sessionID = session.NewID()
		}
		c.Header(session.Header, sessionID)
		c.Set(KeySessionID, sessionID)
		c.Set(KeyOwnerID, sessionID)
		c.Next()
	}
}

// RequireUser rejects anonymous callers. Must run after Identify.
func RequireUser(c *gin.Context) {
	if c.GetString(KeyUserID) == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
			Message: "Authentication required",
			Errors:  []string{"login required"},
		})
		return
	}
	c.Next()
}
