package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/petshop-next/internal/config"
	"github.com/petshop-next/internal/models"
	"github.com/petshop-next/internal/repository"
	"github.com/petshop-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false)
	if got != "https://a.example.com" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w2, req2)
	generated := w2.Header().Get(requestIDHeader)
	if generated == "" {
		t.Fatalf("generated request id should not be empty")
	}
	if resp := strings.TrimSpace(generated); resp == "" {
		t.Fatalf("generated request id should not be blank")
	}
}

func TestJWTAuthMiddlewareMissingSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(JWTAuthMiddleware("", nil))
	r.GET("/admin/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("status_code want 401 got %d", resp.StatusCode)
	}
}

const userAuthTestSecret = "user-auth-middleware-test-secret-0123456789"

func setupUserAuthMiddlewareTest(t *testing.T) (*models.User, *repository.GormUserRepository, *service.TokenService) {
	t.Helper()
	dsn := fmt.Sprintf("file:middleware_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	user := &models.User{
		Email:        "laura@example.com",
		PasswordHash: "x",
		IsActive:     true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.Auth.SecretKey = userAuthTestSecret
	cfg.Auth.AccessExpireMinutes = 15
	return user, repository.NewUserRepository(db), service.NewTokenService(cfg)
}

func newUserAuthTestRouter(userRepo *repository.GormUserRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", UserJWTAuthMiddleware(userAuthTestSecret, userRepo), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetUint("user_id")})
	})
	r.GET("/cart", OptionalUserJWTMiddleware(userAuthTestSecret, userRepo), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetUint("user_id")})
	})
	return r
}

func decodeEnvelopeStatus(t *testing.T, body []byte) int {
	t.Helper()
	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	return resp.StatusCode
}

func TestUserJWTAuthMiddleware(t *testing.T) {
	user, userRepo, tokens := setupUserAuthMiddlewareTest(t)
	r := newUserAuthTestRouter(userRepo)

	accessToken, _, err := tokens.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("generate access token failed: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	r.ServeHTTP(w, req)
	var ok map[string]uint
	if err := json.Unmarshal(w.Body.Bytes(), &ok); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if ok["user_id"] != user.ID {
		t.Fatalf("user_id want %d got %d", user.ID, ok["user_id"])
	}

	// 缺少令牌
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	r.ServeHTTP(w, req)
	if status := decodeEnvelopeStatus(t, w.Body.Bytes()); status != 401 {
		t.Fatalf("missing token status_code want 401 got %d", status)
	}

	// 令牌版本失效
	if dbErr := userRepo.UpdateColumns(user.ID, map[string]interface{}{"token_version": user.TokenVersion + 1}); dbErr != nil {
		t.Fatalf("bump token version failed: %v", dbErr)
	}
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	r.ServeHTTP(w, req)
	if status := decodeEnvelopeStatus(t, w.Body.Bytes()); status != 401 {
		t.Fatalf("stale token status_code want 401 got %d", status)
	}
}

func TestOptionalUserJWTMiddleware(t *testing.T) {
	user, userRepo, tokens := setupUserAuthMiddlewareTest(t)
	r := newUserAuthTestRouter(userRepo)

	// 匿名请求放行，无用户上下文
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("anonymous status want 200 got %d", w.Code)
	}
	var anon map[string]uint
	if err := json.Unmarshal(w.Body.Bytes(), &anon); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if anon["user_id"] != 0 {
		t.Fatalf("anonymous user_id want 0 got %d", anon["user_id"])
	}

	// 有效令牌注入用户
	accessToken, _, err := tokens.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("generate access token failed: %v", err)
	}
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	r.ServeHTTP(w, req)
	var authed map[string]uint
	if err := json.Unmarshal(w.Body.Bytes(), &authed); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if authed["user_id"] != user.ID {
		t.Fatalf("user_id want %d got %d", user.ID, authed["user_id"])
	}

	// 坏令牌按匿名处理
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("garbage token status want 200 got %d", w.Code)
	}
}
