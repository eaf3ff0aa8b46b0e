package public

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/petshop-next/internal/config"
	"github.com/petshop-next/internal/provider"

	"github.com/gin-gonic/gin"
)

func newRefreshCookieTestHandler() *Handler {
	cfg := &config.Config{}
	cfg.Auth.RefreshCookieName = "petshop_refresh"
	cfg.Auth.RefreshExpireDays = 7
	return New(&provider.Container{Config: cfg})
}

func TestRefreshCookieScopedToAuthPath(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newRefreshCookieTestHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	h.setRefreshCookie(c, "valor-del-token")

	cookie := w.Header().Get("Set-Cookie")
	if !strings.Contains(cookie, "Path=/api/v1/auth") {
		t.Fatalf("expected cookie scoped to auth path, got %q", cookie)
	}
	if !strings.Contains(cookie, "HttpOnly") {
		t.Fatalf("expected HttpOnly cookie, got %q", cookie)
	}

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	h.clearRefreshCookie(c)

	cleared := w.Header().Get("Set-Cookie")
	if !strings.Contains(cleared, "Path=/api/v1/auth") {
		t.Fatalf("expected clearing cookie on auth path, got %q", cleared)
	}
	if !strings.Contains(cleared, "Max-Age=0") {
		t.Fatalf("expected expired clearing cookie, got %q", cleared)
	}
}
