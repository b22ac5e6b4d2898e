package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(200, gin.H{
			"userId":   c.GetUint("userId"),
			"linkedId": c.GetUint("linkedId"),
			"role":     c.GetString("role"),
		})
	})
	return r
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthMiddlewareSetsPrincipal(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "test-secret")
	r := authTestRouter()

	token := signToken(t, "test-secret", jwt.MapClaims{
		"id":       float64(3),
		"linkedId": float64(7),
		"role":     "customer",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), `"linkedId":7`)
	assert.Contains(t, w.Body.String(), `"role":"customer"`)
}

func TestAuthMiddlewareRejectsTokenMissingClaims(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "test-secret")
	r := authTestRouter()

	// Signed with the right secret but shaped like a refresh token: no
	// linkedId claim. Must 401, not panic.
	token := signToken(t, "test-secret", jwt.MapClaims{
		"id":   float64(3),
		"role": "customer",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, 401, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token claims")
}

func TestAuthMiddlewareRejectsMissingAndBadTokens(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "test-secret")
	r := authTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, 401, w.Code)

	token := signToken(t, "wrong-secret", jwt.MapClaims{
		"id":       float64(3),
		"linkedId": float64(7),
		"role":     "customer",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, 401, w.Code)
}
