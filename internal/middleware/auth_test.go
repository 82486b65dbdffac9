package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(secret string) *gin.Engine {
	r := gin.New()
	r.POST("/runs", BearerAuth(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func signToken(t *testing.T, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return signed
}

func TestBearerAuthRejectsMissingHeader(t *testing.T) {
	r := newAuthRouter("secret")
	req := httptest.NewRequest(http.MethodPost, "/runs", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestBearerAuthRejectsWrongSecret(t *testing.T) {
	r := newAuthRouter("secret")
	req := httptest.NewRequest(http.MethodPost, "/runs", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "wrong"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestBearerAuthAcceptsValidToken(t *testing.T) {
	r := newAuthRouter("secret")
	req := httptest.NewRequest(http.MethodPost, "/runs", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "secret"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
