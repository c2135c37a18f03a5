package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/auth"
	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/session"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(issuer *auth.Issuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Identify(issuer))
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(KeyOwnerID))
	})
	r.GET("/private", RequireUser, func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(KeyUserID))
	})
	return r
}

func TestIdentifyIssuesSessionWhenMissingOrMalformed(t *testing.T) {
	r := newRouter(auth.NewIssuer("secret", time.Hour))

	for _, sent := range []string{"", "session_bogus"} {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if sent != "" {
			req.Header.Set(session.Header, sent)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		issued := w.Header().Get(session.Header)
		assert.True(t, session.IsID(issued))
		assert.NotEqual(t, sent, issued)
		assert.Equal(t, issued, w.Body.String())
	}
}

func TestIdentifyKeepsWellFormedSession(t *testing.T) {
	r := newRouter(auth.NewIssuer("secret", time.Hour))
	id := session.NewID()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(session.Header, id)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, id, w.Header().Get(session.Header))
	assert.Equal(t, id, w.Body.String())
}

func TestIdentifyBearer(t *testing.T) {
	issuer := auth.NewIssuer("secret", time.Hour)
	r := newRouter(issuer)
	token, _, err := issuer.Issue("u1", "user")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", w.Body.String())
	assert.Empty(t, w.Header().Get(session.Header))

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer nope")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireUserRejectsAnonymous(t *testing.T) {
	r := newRouter(auth.NewIssuer("secret", time.Hour))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"errors"`)
}

func TestValidateAPIKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", ValidateAPIKey("k"), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("X-API-KEY", "k")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
