package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/petshop-next/internal/config"
	"github.com/petshop-next/internal/models"
	"github.com/petshop-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupUserAuthServiceTest(t *testing.T) (*UserAuthService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:user_auth_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.VerificationCode{},
		&models.RefreshToken{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	cfg := &config.Config{}
	cfg.Auth.SecretKey = "user-auth-service-test-secret-key-0123456789"
	cfg.Auth.CodeHashSecret = "user-auth-service-test-code-secret"
	cfg.Auth.AccessExpireMinutes = 15
	cfg.Auth.RefreshExpireDays = 7
	cfg.Auth.LockoutMaxAttempts = 3
	cfg.Auth.LockoutMinutes = 15
	cfg.Security.PasswordPolicy = config.PasswordPolicyConfig{
		MinLength:     10,
		RequireUpper:  true,
		RequireLower:  true,
		RequireNumber: true,
	}
	cfg.Email.VerifyCode = config.VerifyCodeConfig{
		ExpireMinutes:       10,
		MaxAttempts:         5,
		Length:              6,
		ResendWindowMinutes: 60,
		ResendMaxInWindow:   3,
	}

	userRepo := repository.NewUserRepository(db)
	codeRepo := repository.NewVerificationCodeRepository(db)
	refreshRepo := repository.NewRefreshTokenRepository(db)
	tokenService := NewTokenService(cfg)
	return NewUserAuthService(cfg, userRepo, codeRepo, refreshRepo, tokenService, nil), db
}

const testUserPassword = "Contrasena123"

func registerTestUser(t *testing.T, svc *UserAuthService, email string) *models.User {
	t.Helper()
	user, err := svc.Register(RegisterInput{
		Email:    email,
		Password: testUserPassword,
		Name:     "Laura Gómez",
		Cedula:   "1020304050",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	return user
}

// overrideVerifyCode 把最近一条验证码记录的摘要改成已知验证码
func overrideVerifyCode(t *testing.T, svc *UserAuthService, db *gorm.DB, userID uint, code string) {
	t.Helper()
	if err := db.Model(&models.VerificationCode{}).
		Where("user_id = ? AND purpose = ?", userID, "register").
		Update("code_hash", svc.tokenService.HashVerifyCode(code)).Error; err != nil {
		t.Fatalf("override code hash failed: %v", err)
	}
}

func activateTestUser(t *testing.T, svc *UserAuthService, db *gorm.DB, user *models.User) {
	t.Helper()
	overrideVerifyCode(t, svc, db, user.ID, "654321")
	if _, err := svc.VerifyEmail(user.Email, "654321"); err != nil {
		t.Fatalf("verify email failed: %v", err)
	}
}

func TestUserAuthServiceRegister(t *testing.T) {
	svc, db := setupUserAuthServiceTest(t)

	user := registerTestUser(t, svc, "Laura@Example.com")
	if user.Email != "laura@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.IsActive {
		t.Fatalf("new user should be inactive until email verification")
	}
	if user.Locale != "es-CO" {
		t.Fatalf("expected default locale es-CO, got %q", user.Locale)
	}

	var codeCount int64
	if err := db.Model(&models.VerificationCode{}).Where("user_id = ?", user.ID).Count(&codeCount).Error; err != nil {
		t.Fatalf("count verification codes failed: %v", err)
	}
	if codeCount != 1 {
		t.Fatalf("expected 1 verification code, got %d", codeCount)
	}

	if _, err := svc.Register(RegisterInput{
		Email:    "laura@example.com",
		Password: testUserPassword,
		Name:     "Otra Persona",
	}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestUserAuthServiceRegisterWeakPassword(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	_, err := svc.Register(RegisterInput{
		Email:    "weak@example.com",
		Password: "corta1",
		Name:     "Weak",
	})
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestUserAuthServiceRegisterInvalidPetPreference(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	_, err := svc.Register(RegisterInput{
		Email:         "pets@example.com",
		Password:      testUserPassword,
		Name:          "Pets",
		PetPreference: "birds",
	})
	if !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected ErrMissingField for unsupported pet preference, got %v", err)
	}
}

func TestUserAuthServiceVerifyEmail(t *testing.T) {
	svc, db := setupUserAuthServiceTest(t)
	user := registerTestUser(t, svc, "verify@example.com")

	if _, err := svc.VerifyEmail(user.Email, "000000"); !errors.Is(err, ErrVerifyCodeInvalid) {
		t.Fatalf("expected ErrVerifyCodeInvalid for wrong code, got %v", err)
	}

	overrideVerifyCode(t, svc, db, user.ID, "123456")
	verified, err := svc.VerifyEmail(user.Email, "123456")
	if err != nil {
		t.Fatalf("verify email failed: %v", err)
	}
	if !verified.IsActive || verified.EmailVerifiedAt == nil {
		t.Fatalf("expected user active with verified_at set")
	}

	// 已激活账号重复验证：幂等成功，不改状态
	again, err := svc.VerifyEmail(user.Email, "000000")
	if err != nil {
		t.Fatalf("repeat verify on active account failed: %v", err)
	}
	if !again.IsActive {
		t.Fatalf("expected account to stay active")
	}
	if again.EmailVerifiedAt == nil {
		t.Fatalf("expected email_verified_at preserved")
	}
}

func TestUserAuthServiceVerifyCodeAttemptsExceeded(t *testing.T) {
	svc, db := setupUserAuthServiceTest(t)
	svc.cfg.Email.VerifyCode.MaxAttempts = 2
	user := registerTestUser(t, svc, "attempts@example.com")

	for i := 0; i < 2; i++ {
		if _, err := svc.VerifyEmail(user.Email, "999999"); !errors.Is(err, ErrVerifyCodeInvalid) {
			t.Fatalf("expected ErrVerifyCodeInvalid, got %v", err)
		}
	}

	// 即便提交正确验证码，超过尝试上限也拒绝
	overrideVerifyCode(t, svc, db, user.ID, "123456")
	if _, err := svc.VerifyEmail(user.Email, "123456"); !errors.Is(err, ErrVerifyCodeAttemptsExceeded) {
		t.Fatalf("expected ErrVerifyCodeAttemptsExceeded, got %v", err)
	}
}

func TestUserAuthServiceResendCodeRateLimited(t *testing.T) {
	svc, db := setupUserAuthServiceTest(t)
	svc.cfg.Email.VerifyCode.ResendMaxInWindow = 3
	user := registerTestUser(t, svc, "resend@example.com")

	// 注册的首发占一次，窗口内还剩两次重发
	if err := svc.ResendCode(user.Email); err != nil {
		t.Fatalf("first resend failed: %v", err)
	}
	if err := svc.ResendCode(user.Email); err != nil {
		t.Fatalf("second resend failed: %v", err)
	}
	if err := svc.ResendCode(user.Email); !errors.Is(err, ErrResendRateLimited) {
		t.Fatalf("expected ErrResendRateLimited, got %v", err)
	}

	// 未过期的验证码原地刷新，不新增记录
	var records []models.VerificationCode
	if err := db.Where("user_id = ?", user.ID).Find(&records).Error; err != nil {
		t.Fatalf("load verification codes failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 verification code row, got %d", len(records))
	}
	if records[0].ResendCount != 3 {
		t.Fatalf("expected resend_count 3, got %d", records[0].ResendCount)
	}
}

func TestUserAuthServiceResendCodeRefreshResetsAttempts(t *testing.T) {
	svc, db := setupUserAuthServiceTest(t)
	user := registerTestUser(t, svc, "resend-attempts@example.com")

	// 先输错两次验证码
	for i := 0; i < 2; i++ {
		if _, err := svc.VerifyEmail(user.Email, "000000"); !errors.Is(err, ErrVerifyCodeInvalid) {
			t.Fatalf("expected ErrVerifyCodeInvalid, got %v", err)
		}
	}

	if err := svc.ResendCode(user.Email); err != nil {
		t.Fatalf("resend failed: %v", err)
	}

	var record models.VerificationCode
	if err := db.Where("user_id = ?", user.ID).First(&record).Error; err != nil {
		t.Fatalf("load verification code failed: %v", err)
	}
	if record.AttemptCount != 0 {
		t.Fatalf("expected attempt_count reset to 0, got %d", record.AttemptCount)
	}

	// 刷新后新验证码可以正常激活账号
	overrideVerifyCode(t, svc, db, user.ID, "246810")
	if _, err := svc.VerifyEmail(user.Email, "246810"); err != nil {
		t.Fatalf("verify with refreshed code failed: %v", err)
	}
}

func TestUserAuthServiceResendCodeWindowReopens(t *testing.T) {
	svc, db := setupUserAuthServiceTest(t)
	svc.cfg.Email.VerifyCode.ResendMaxInWindow = 1
	user := registerTestUser(t, svc, "resend-window@example.com")

	if err := svc.ResendCode(user.Email); !errors.Is(err, ErrResendRateLimited) {
		t.Fatalf("expected ErrResendRateLimited, got %v", err)
	}

	// 把发送时间挪出窗口后允许再发
	stale := time.Now().Add(-2 * time.Hour)
	if err := db.Model(&models.VerificationCode{}).Where("user_id = ?", user.ID).
		Update("sent_at", stale).Error; err != nil {
		t.Fatalf("age sent_at failed: %v", err)
	}
	if err := svc.ResendCode(user.Email); err != nil {
		t.Fatalf("resend after window failed: %v", err)
	}
}

func TestUserAuthServiceLogin(t *testing.T) {
	svc, db := setupUserAuthServiceTest(t)
	user := registerTestUser(t, svc, "login@example.com")

	// 未验证邮箱：密码正确也不允许登录
	if _, _, err := svc.Login(user.Email, testUserPassword, "127.0.0.1", "test"); !errors.Is(err, ErrAccountNotVerified) {
		t.Fatalf("expected ErrAccountNotVerified, got %v", err)
	}

	activateTestUser(t, svc, db, user)

	logged, tokens, err := svc.Login(user.Email, testUserPassword, "127.0.0.1", "test")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Fatalf("expected both tokens issued")
	}
	if logged.LastLoginAt == nil {
		t.Fatalf("expected last_login_at set")
	}

	var tokenCount int64
	if err := db.Model(&models.RefreshToken{}).Where("user_id = ?", user.ID).Count(&tokenCount).Error; err != nil {
		t.Fatalf("count refresh tokens failed: %v", err)
	}
	if tokenCount != 1 {
		t.Fatalf("expected 1 refresh token, got %d", tokenCount)
	}
}

func TestUserAuthServiceLoginUnknownEmail(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	// 账号不存在与密码错误返回同一错误
	if _, _, err := svc.Login("nadie@example.com", "whatever", "", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUserAuthServiceLoginLockout(t *testing.T) {
	svc, db := setupUserAuthServiceTest(t)
	user := registerTestUser(t, svc, "lockout@example.com")
	activateTestUser(t, svc, db, user)

	for i := 0; i < 3; i++ {
		if _, _, err := svc.Login(user.Email, "ClaveIncorrecta1", "", ""); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i+1, err)
		}
	}

	// 达到阈值后锁定，正确密码也被拒绝
	if _, _, err := svc.Login(user.Email, testUserPassword, "", ""); !errors.Is(err, ErrAccountLocked) {
		t.Fatalf("expected ErrAccountLocked, got %v", err)
	}
}

func TestUserAuthServiceLoginFailureCountAtomic(t *testing.T) {
	svc, db := setupUserAuthServiceTest(t)
	user := registerTestUser(t, svc, "atomic@example.com")
	activateTestUser(t, svc, db, user)

	// 两次都用同一份过期快照（内存里 failed_login_attempts 仍为 0），
	// 数据库自增保证计数不丢
	now := time.Now()
	stale := *user
	if err := svc.recordLoginFailure(&stale, now); err != nil {
		t.Fatalf("first failure failed: %v", err)
	}
	if err := svc.recordLoginFailure(&stale, now); err != nil {
		t.Fatalf("second failure failed: %v", err)
	}

	var stored models.User
	if err := db.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("load user failed: %v", err)
	}
	if stored.FailedLoginAttempts != 2 {
		t.Fatalf("expected 2 failed attempts recorded, got %d", stored.FailedLoginAttempts)
	}
}

func TestUserAuthServiceLockoutExpires(t *testing.T) {
	svc, db := setupUserAuthServiceTest(t)
	user := registerTestUser(t, svc, "lockout-expiry@example.com")
	activateTestUser(t, svc, db, user)

	for i := 0; i < 3; i++ {
		if _, _, err := svc.Login(user.Email, "ClaveIncorrecta1", "", ""); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i+1, err)
		}
	}
	if _, _, err := svc.Login(user.Email, testUserPassword, "", ""); !errors.Is(err, ErrAccountLocked) {
		t.Fatalf("expected ErrAccountLocked, got %v", err)
	}

	// 锁定期过后允许登录，登录成功清零计数与锁定时间
	past := time.Now().Add(-time.Minute)
	if err := db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("locked_until", past).Error; err != nil {
		t.Fatalf("expire lock failed: %v", err)
	}
	if _, _, err := svc.Login(user.Email, testUserPassword, "", ""); err != nil {
		t.Fatalf("login after lock expiry failed: %v", err)
	}

	var stored models.User
	if err := db.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("load user failed: %v", err)
	}
	if stored.FailedLoginAttempts != 0 || stored.LockedUntil != nil {
		t.Fatalf("expected failure state cleared after login, got attempts=%d locked_until=%v",
			stored.FailedLoginAttempts, stored.LockedUntil)
	}
}

func TestUserAuthServiceRefresh(t *testing.T) {
	svc, db := setupUserAuthServiceTest(t)
	user := registerTestUser(t, svc, "refresh@example.com")
	activateTestUser(t, svc, db, user)

	_, tokens, err := svc.Login(user.Email, testUserPassword, "", "")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	refreshed, accessToken, expiresAt, err := svc.Refresh(tokens.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if refreshed.ID != user.ID || accessToken == "" || !expiresAt.After(time.Now()) {
		t.Fatalf("unexpected refresh result")
	}

	// 不轮换：同一刷新令牌可重复使用
	if _, _, _, err := svc.Refresh(tokens.RefreshToken); err != nil {
		t.Fatalf("second refresh failed: %v", err)
	}

	if _, _, _, err := svc.Refresh("token-inexistente"); !errors.Is(err, ErrRefreshTokenInvalid) {
		t.Fatalf("expected ErrRefreshTokenInvalid, got %v", err)
	}
}

func TestUserAuthServiceLogoutRevokesToken(t *testing.T) {
	svc, db := setupUserAuthServiceTest(t)
	user := registerTestUser(t, svc, "logout@example.com")
	activateTestUser(t, svc, db, user)

	_, tokens, err := svc.Login(user.Email, testUserPassword, "", "")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	svc.Logout(tokens.RefreshToken)

	if _, _, _, err := svc.Refresh(tokens.RefreshToken); !errors.Is(err, ErrRefreshTokenInvalid) {
		t.Fatalf("expected ErrRefreshTokenInvalid after logout, got %v", err)
	}
}

func TestUserAuthServiceUpdateProfile(t *testing.T) {
	svc, db := setupUserAuthServiceTest(t)
	user := registerTestUser(t, svc, "profile@example.com")
	activateTestUser(t, svc, db, user)

	if _, err := svc.UpdateProfile(user.ID, UpdateProfileInput{}); !errors.Is(err, ErrProfileEmpty) {
		t.Fatalf("expected ErrProfileEmpty, got %v", err)
	}

	phone := " 3101234567 "
	preference := "Cats"
	updated, err := svc.UpdateProfile(user.ID, UpdateProfileInput{
		Phone:         &phone,
		PetPreference: &preference,
	})
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}
	if updated.Phone != "3101234567" {
		t.Fatalf("expected trimmed phone, got %q", updated.Phone)
	}
	if updated.PetPreference != "cats" {
		t.Fatalf("expected normalized preference, got %q", updated.PetPreference)
	}
}

func TestUserAuthServiceChangePassword(t *testing.T) {
	svc, db := setupUserAuthServiceTest(t)
	user := registerTestUser(t, svc, "password@example.com")
	activateTestUser(t, svc, db, user)

	_, tokens, err := svc.Login(user.Email, testUserPassword, "", "")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.ChangePassword(user.ID, "ClaveIncorrecta1", "NuevaClave123"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
	if err := svc.ChangePassword(user.ID, testUserPassword, "corta"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}

	if err := svc.ChangePassword(user.ID, testUserPassword, "NuevaClave123"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	// 修改密码后旧刷新令牌全部吊销
	if _, _, _, err := svc.Refresh(tokens.RefreshToken); !errors.Is(err, ErrRefreshTokenInvalid) {
		t.Fatalf("expected refresh token revoked, got %v", err)
	}

	var stored models.User
	if err := db.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("load user failed: %v", err)
	}
	if stored.TokenVersion != user.TokenVersion+1 {
		t.Fatalf("expected token version bump, got %d", stored.TokenVersion)
	}

	if _, _, err := svc.Login(user.Email, "NuevaClave123", "", ""); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestUserAuthServicePurgeExpiredCredentials(t *testing.T) {
	svc, db := setupUserAuthServiceTest(t)
	user := registerTestUser(t, svc, "purge@example.com")

	expired := time.Now().Add(-time.Hour)
	if err := db.Model(&models.VerificationCode{}).Where("user_id = ?", user.ID).
		Update("expires_at", expired).Error; err != nil {
		t.Fatalf("expire code failed: %v", err)
	}
	if err := db.Create(&models.RefreshToken{
		UserID:    user.ID,
		TokenHash: "stale-hash",
		ExpiresAt: expired,
	}).Error; err != nil {
		t.Fatalf("create stale token failed: %v", err)
	}

	codes, tokens, err := svc.PurgeExpiredCredentials(time.Now())
	if err != nil {
		t.Fatalf("purge failed: %v", err)
	}
	if codes != 1 || tokens != 1 {
		t.Fatalf("expected 1 code and 1 token purged, got %d/%d", codes, tokens)
	}
}
