package service

import (
	"errors"
	"testing"
	"time"

	"github.com/petshop-next/internal/config"
	"github.com/petshop-next/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

func newTestTokenService() *TokenService {
	cfg := &config.Config{}
	cfg.Auth.SecretKey = "token-service-test-secret-key-0123456789"
	cfg.Auth.CodeHashSecret = "token-service-test-code-secret"
	cfg.Auth.AccessExpireMinutes = 15
	cfg.Auth.RefreshExpireDays = 7
	return NewTokenService(cfg)
}

func TestTokenServiceAccessTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService()
	user := &models.User{ID: 42, Email: "token@example.com", TokenVersion: 3}

	token, expiresAt, err := svc.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("generate access token failed: %v", err)
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("expected future expiry, got %v", expiresAt)
	}

	claims, err := svc.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("parse access token failed: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "token@example.com" || claims.TokenVersion != 3 {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestTokenServiceParseRejectsWrongSecret(t *testing.T) {
	svc := newTestTokenService()
	other := newTestTokenService()
	other.cfg.Auth.SecretKey = "another-secret-key-totally-different-000"

	token, _, err := svc.GenerateAccessToken(&models.User{ID: 1, Email: "a@example.com"})
	if err != nil {
		t.Fatalf("generate access token failed: %v", err)
	}
	if _, err := other.ParseAccessToken(token); err == nil {
		t.Fatalf("expected parse error with wrong secret")
	}
}

func TestTokenServiceParseRejectsExpired(t *testing.T) {
	svc := newTestTokenService()

	past := time.Now().Add(-time.Hour)
	claims := UserJWTClaims{
		UserID: 7,
		Email:  "expired@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(past),
			IssuedAt:  jwt.NewNumericDate(past.Add(-15 * time.Minute)),
			NotBefore: jwt.NewNumericDate(past.Add(-15 * time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(svc.cfg.Auth.SecretKey))
	if err != nil {
		t.Fatalf("sign token failed: %v", err)
	}

	if _, err := svc.ParseAccessToken(token); !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected jwt.ErrTokenExpired, got %v", err)
	}
}

func TestTokenServiceRefreshTokenHash(t *testing.T) {
	svc := newTestTokenService()

	token, hash, err := svc.NewRefreshToken()
	if err != nil {
		t.Fatalf("new refresh token failed: %v", err)
	}
	if token == "" || hash == "" {
		t.Fatalf("expected non-empty token and hash")
	}
	if svc.HashRefreshToken(token) != hash {
		t.Fatalf("hash mismatch for issued token")
	}

	again, _, err := svc.NewRefreshToken()
	if err != nil {
		t.Fatalf("new refresh token failed: %v", err)
	}
	if again == token {
		t.Fatalf("expected unique refresh tokens")
	}
}

func TestTokenServiceVerifyCodeMatches(t *testing.T) {
	svc := newTestTokenService()

	hash := svc.HashVerifyCode("123456")
	if !svc.VerifyCodeMatches(hash, "123456") {
		t.Fatalf("expected matching code to verify")
	}
	if svc.VerifyCodeMatches(hash, "654321") {
		t.Fatalf("expected mismatched code to fail")
	}
}

func TestTokenServiceRefreshExpiry(t *testing.T) {
	svc := newTestTokenService()
	now := time.Now()

	expiry := svc.RefreshExpiry(now)
	if got := expiry.Sub(now); got != 7*24*time.Hour {
		t.Fatalf("expected 7 day expiry, got %v", got)
	}
}
