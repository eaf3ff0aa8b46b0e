package service

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"time"

	"github.com/petshop-next/internal/config"
	"github.com/petshop-next/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService 用户令牌签发服务：短时访问 JWT + 不透明刷新令牌。
type TokenService struct {
	cfg *config.Config
}

// NewTokenService 创建令牌服务
func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{cfg: cfg}
}

// UserJWTClaims 用户访问令牌声明
type UserJWTClaims struct {
	UserID       uint   `json:"user_id"`
	Email        string `json:"email"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// GenerateAccessToken 生成用户访问令牌（HS256）
func (s *TokenService) GenerateAccessToken(user *models.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(time.Duration(s.resolveAccessExpireMinutes()) * time.Minute)
	claims := UserJWTClaims{
		UserID:       user.ID,
		Email:        user.Email,
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.Auth.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseAccessToken 解析用户访问令牌
func (s *TokenService) ParseAccessToken(tokenString string) (*UserJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &UserJWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.Auth.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*UserJWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("无效的 token")
}

// NewRefreshToken 生成不透明刷新令牌：返回（传输用原文，落库用摘要）。
// 原文为 32 字节随机数的 base64url 编码（无填充），落库只存 SHA-256 摘要。
func (s *TokenService) NewRefreshToken() (string, string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", "", err
	}
	token := base64.RawURLEncoding.EncodeToString(raw)
	return token, s.HashRefreshToken(token), nil
}

// HashRefreshToken 计算刷新令牌摘要（SHA-256 十六进制）
func (s *TokenService) HashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// RefreshExpiry 计算刷新令牌过期时间
func (s *TokenService) RefreshExpiry(now time.Time) time.Time {
	return now.Add(time.Duration(s.resolveRefreshExpireDays()) * 24 * time.Hour)
}

// HashVerifyCode 计算验证码摘要（HMAC-SHA256 十六进制）
func (s *TokenService) HashVerifyCode(code string) string {
	mac := hmac.New(sha256.New, []byte(s.cfg.Auth.CodeHashSecret))
	mac.Write([]byte(code))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyCodeMatches 恒定时间比较验证码与落库摘要
func (s *TokenService) VerifyCodeMatches(storedHash, code string) bool {
	expected := s.HashVerifyCode(code)
	return subtle.ConstantTimeCompare([]byte(storedHash), []byte(expected)) == 1
}

func (s *TokenService) resolveAccessExpireMinutes() int {
	if s.cfg.Auth.AccessExpireMinutes <= 0 {
		return 15
	}
	return s.cfg.Auth.AccessExpireMinutes
}

func (s *TokenService) resolveRefreshExpireDays() int {
	if s.cfg.Auth.RefreshExpireDays <= 0 {
		return 7
	}
	return s.cfg.Auth.RefreshExpireDays
}
