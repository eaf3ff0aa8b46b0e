package service

import (
	"context"
	"crypto/rand"
	"math/big"
	"net/mail"
	"strings"
	"time"

	"github.com/petshop-next/internal/cache"
	"github.com/petshop-next/internal/config"
	"github.com/petshop-next/internal/constants"
	"github.com/petshop-next/internal/logger"
	"github.com/petshop-next/internal/models"
	"github.com/petshop-next/internal/queue"
	"github.com/petshop-next/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserAuthService 用户认证服务
type UserAuthService struct {
	cfg          *config.Config
	userRepo     repository.UserRepository
	codeRepo     repository.VerificationCodeRepository
	refreshRepo  repository.RefreshTokenRepository
	tokenService *TokenService
	queueClient  *queue.Client
}

// NewUserAuthService 创建用户认证服务
func NewUserAuthService(cfg *config.Config, userRepo repository.UserRepository, codeRepo repository.VerificationCodeRepository, refreshRepo repository.RefreshTokenRepository, tokenService *TokenService, queueClient *queue.Client) *UserAuthService {
	return &UserAuthService{
		cfg:          cfg,
		userRepo:     userRepo,
		codeRepo:     codeRepo,
		refreshRepo:  refreshRepo,
		tokenService: tokenService,
		queueClient:  queueClient,
	}
}

// RegisterInput 注册请求参数
type RegisterInput struct {
	Email           string
	Password        string
	Name            string
	Cedula          string
	Phone           string
	ShippingAddress string
	PetPreference   string
	Locale          string
}

// LoginTokens 登录签发的令牌对
type LoginTokens struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// Register 用户注册
// 新用户处于未激活状态，需邮箱验证码激活后才能登录。
func (s *UserAuthService) Register(input RegisterInput) (*models.User, error) {
	normalized, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrMissingField
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
		return nil, err
	}
	preference := strings.ToLower(strings.TrimSpace(input.PetPreference))
	if preference != "" && !isPetPreferenceSupported(preference) {
		return nil, ErrMissingField
	}

	exist, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	locale := strings.TrimSpace(input.Locale)
	if locale == "" {
		locale = constants.LocaleEsCO
	}
	user := &models.User{
		Email:           normalized,
		PasswordHash:    string(hashedPassword),
		Name:            name,
		Cedula:          strings.TrimSpace(input.Cedula),
		Phone:           strings.TrimSpace(input.Phone),
		ShippingAddress: strings.TrimSpace(input.ShippingAddress),
		PetPreference:   preference,
		Locale:          locale,
		IsActive:        false,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	code, err := randomNumericCode(resolveCodeLength(s.cfg.Email.VerifyCode))
	if err != nil {
		return nil, err
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		record := &models.VerificationCode{
			UserID:      user.ID,
			Email:       normalized,
			Purpose:     constants.VerifyPurposeRegister,
			CodeHash:    s.tokenService.HashVerifyCode(code),
			ExpiresAt:   now.Add(time.Duration(resolveExpireMinutes(s.cfg.Email.VerifyCode)) * time.Minute),
			ResendCount: 1,
			SentAt:      now,
			CreatedAt:   now,
		}
		return tx.Create(record).Error
	})
	if err != nil {
		return nil, err
	}

	s.enqueueVerifyCodeEmail(user, code)
	return user, nil
}

// VerifyEmail 邮箱验证码激活账号
func (s *UserAuthService) VerifyEmail(email, code string) (*models.User, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrVerifyCodeInvalid
	}
	// 已激活账号重复验证按成功处理，不改任何状态
	if user.IsActive {
		return user, nil
	}

	record, err := s.checkVerifyCode(user.ID, constants.VerifyPurposeRegister, code)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.VerificationCode{}).Where("id = ?", record.ID).Update("used_at", now).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
			"is_active":         true,
			"email_verified_at": now,
			"updated_at":        now,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	user.IsActive = true
	user.EmailVerifiedAt = &now
	user.UpdatedAt = now
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))
	return user, nil
}

// ResendCode 重发注册验证码
// 滑动窗口限流：窗口内重发次数达到上限后拒绝。
func (s *UserAuthService) ResendCode(email string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	if user.IsActive {
		return ErrAlreadyVerified
	}

	now := time.Now()
	window := time.Duration(resolveResendWindowMinutes(s.cfg.Email.VerifyCode)) * time.Minute
	sent, err := s.codeRepo.SumResendCountSince(user.ID, constants.VerifyPurposeRegister, now.Add(-window))
	if err != nil {
		return err
	}
	if sent >= resolveResendMaxInWindow(s.cfg.Email.VerifyCode) {
		return ErrResendRateLimited
	}

	code, err := randomNumericCode(resolveCodeLength(s.cfg.Email.VerifyCode))
	if err != nil {
		return err
	}
	codeHash := s.tokenService.HashVerifyCode(code)
	expiresAt := now.Add(time.Duration(resolveExpireMinutes(s.cfg.Email.VerifyCode)) * time.Minute)

	// 未过期的旧验证码原地刷新，过期或不存在时才新建记录
	latest, err := s.codeRepo.GetLatest(user.ID, constants.VerifyPurposeRegister)
	if err != nil {
		return err
	}
	if latest != nil && latest.ExpiresAt.After(now) {
		if err := s.codeRepo.RefreshForResend(latest.ID, codeHash, expiresAt, now); err != nil {
			return err
		}
	} else {
		record := &models.VerificationCode{
			UserID:      user.ID,
			Email:       normalized,
			Purpose:     constants.VerifyPurposeRegister,
			CodeHash:    codeHash,
			ExpiresAt:   expiresAt,
			ResendCount: 1,
			SentAt:      now,
			CreatedAt:   now,
		}
		if err := s.codeRepo.Create(record); err != nil {
			return err
		}
	}

	s.enqueueVerifyCodeEmail(user, code)
	return nil
}

// Login 用户登录
// 失败提示统一为 ErrInvalidCredentials，不区分账号不存在与密码错误；
// 激活状态在密码校验通过之后才检查。
func (s *UserAuthService) Login(email, password, clientIP, userAgent string) (*models.User, *LoginTokens, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrInvalidCredentials
	}

	now := time.Now()
	if user.IsLocked(now) {
		return nil, nil, ErrAccountLocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if err := s.recordLoginFailure(user, now); err != nil {
			return nil, nil, err
		}
		return nil, nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, nil, ErrAccountNotVerified
	}

	accessToken, accessExpiresAt, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, nil, err
	}
	refreshToken, refreshHash, err := s.tokenService.NewRefreshToken()
	if err != nil {
		return nil, nil, err
	}
	refreshExpiresAt := s.tokenService.RefreshExpiry(now)

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
			"failed_login_attempts": 0,
			"locked_until":          nil,
			"last_login_at":         now,
			"updated_at":            now,
		}).Error; err != nil {
			return err
		}
		return tx.Create(&models.RefreshToken{
			UserID:    user.ID,
			TokenHash: refreshHash,
			ExpiresAt: refreshExpiresAt,
			ClientIP:  clientIP,
			UserAgent: userAgent,
			CreatedAt: now,
			UpdatedAt: now,
		}).Error
	})
	if err != nil {
		return nil, nil, err
	}

	user.FailedLoginAttempts = 0
	user.LockedUntil = nil
	user.LastLoginAt = &now
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))

	return user, &LoginTokens{
		AccessToken:      accessToken,
		AccessExpiresAt:  accessExpiresAt,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshExpiresAt,
	}, nil
}

// Refresh 刷新访问令牌
// 刷新令牌不轮换：同一令牌在有效期内可重复使用。
func (s *UserAuthService) Refresh(refreshToken string) (*models.User, string, time.Time, error) {
	trimmed := strings.TrimSpace(refreshToken)
	if trimmed == "" {
		return nil, "", time.Time{}, ErrRefreshTokenInvalid
	}
	record, err := s.refreshRepo.GetByHash(s.tokenService.HashRefreshToken(trimmed))
	if err != nil {
		return nil, "", time.Time{}, err
	}
	now := time.Now()
	if record == nil || !record.Usable(now) {
		return nil, "", time.Time{}, ErrRefreshTokenInvalid
	}

	user, err := s.userRepo.GetByID(record.UserID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil || !user.IsActive {
		return nil, "", time.Time{}, ErrRefreshTokenInvalid
	}

	accessToken, expiresAt, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, accessToken, expiresAt, nil
}

// Logout 注销登录
// 尽力吊销刷新令牌；无论令牌是否有效，注销本身都视为成功。
func (s *UserAuthService) Logout(refreshToken string) {
	trimmed := strings.TrimSpace(refreshToken)
	if trimmed == "" {
		return
	}
	record, err := s.refreshRepo.GetByHash(s.tokenService.HashRefreshToken(trimmed))
	if err != nil || record == nil {
		return
	}
	if err := s.refreshRepo.Revoke(record.ID); err != nil {
		logger.Warnw("revoke_refresh_token_failed", "token_id", record.ID, "error", err)
	}
}

// GetUserByID 获取用户信息
func (s *UserAuthService) GetUserByID(id uint) (*models.User, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// UpdateProfileInput 资料更新参数，nil 字段保持不变
type UpdateProfileInput struct {
	Name            *string
	Phone           *string
	ShippingAddress *string
	PetPreference   *string
	Locale          *string
}

// UpdateProfile 更新用户资料
func (s *UserAuthService) UpdateProfile(userID uint, input UpdateProfileInput) (*models.User, error) {
	if userID == 0 {
		return nil, ErrNotFound
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	updated := false
	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		if trimmed != "" {
			user.Name = trimmed
			updated = true
		}
	}
	if input.Phone != nil {
		user.Phone = strings.TrimSpace(*input.Phone)
		updated = true
	}
	if input.ShippingAddress != nil {
		user.ShippingAddress = strings.TrimSpace(*input.ShippingAddress)
		updated = true
	}
	if input.PetPreference != nil {
		preference := strings.ToLower(strings.TrimSpace(*input.PetPreference))
		if preference != "" && !isPetPreferenceSupported(preference) {
			return nil, ErrMissingField
		}
		user.PetPreference = preference
		updated = true
	}
	if input.Locale != nil {
		trimmed := strings.TrimSpace(*input.Locale)
		if trimmed != "" {
			user.Locale = trimmed
			updated = true
		}
	}
	if !updated {
		return nil, ErrProfileEmpty
	}

	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword 登录态修改密码
// 成功后递增 TokenVersion 并吊销所有刷新令牌，已签发的访问令牌随之失效。
func (s *UserAuthService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	if userID == 0 {
		return ErrNotFound
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidPassword
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, newPassword); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now()
	user.PasswordHash = string(hashedPassword)
	user.TokenVersion++
	user.TokenInvalidBefore = &now
	user.UpdatedAt = now
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(user).Error; err != nil {
			return err
		}
		return tx.Model(&models.RefreshToken{}).Where("user_id = ? AND revoked = ?", user.ID, false).Update("revoked", true).Error
	})
	if err != nil {
		return err
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))
	return nil
}

// PurgeExpiredCredentials 清理过期验证码与失效刷新令牌
func (s *UserAuthService) PurgeExpiredCredentials(now time.Time) (int64, int64, error) {
	codes, err := s.codeRepo.DeleteExpiredBefore(now)
	if err != nil {
		return 0, 0, err
	}
	tokens, err := s.refreshRepo.DeleteStaleBefore(now)
	if err != nil {
		return codes, 0, err
	}
	return codes, tokens, nil
}

// checkVerifyCode 校验验证码：过期、次数上限、摘要比对依次检查
func (s *UserAuthService) checkVerifyCode(userID uint, purpose, code string) (*models.VerificationCode, error) {
	record, err := s.codeRepo.GetLatest(userID, purpose)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrVerifyCodeInvalid
	}

	now := time.Now()
	if record.ExpiresAt.Before(now) {
		return nil, ErrVerifyCodeExpired
	}
	maxAttempts := resolveMaxAttempts(s.cfg.Email.VerifyCode)
	if maxAttempts > 0 && record.AttemptCount >= maxAttempts {
		return nil, ErrVerifyCodeAttemptsExceeded
	}
	if !s.tokenService.VerifyCodeMatches(record.CodeHash, strings.TrimSpace(code)) {
		_ = s.codeRepo.IncrementAttempt(record.ID)
		return nil, ErrVerifyCodeInvalid
	}
	return record, nil
}

// recordLoginFailure 记录一次失败并在达到阈值时锁定账号
// 计数走数据库原子自增，并发失败不丢更新。
func (s *UserAuthService) recordLoginFailure(user *models.User, now time.Time) error {
	return models.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
			"failed_login_attempts": gorm.Expr("failed_login_attempts + 1"),
			"updated_at":            now,
		}).Error; err != nil {
			return err
		}
		var fresh models.User
		if err := tx.Select("failed_login_attempts").Take(&fresh, user.ID).Error; err != nil {
			return err
		}
		if fresh.FailedLoginAttempts < resolveLockoutMaxAttempts(s.cfg.Auth) {
			return nil
		}
		lockedUntil := now.Add(time.Duration(resolveLockoutMinutes(s.cfg.Auth)) * time.Minute)
		return tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
			"failed_login_attempts": 0,
			"locked_until":          lockedUntil,
		}).Error
	})
}

func (s *UserAuthService) enqueueVerifyCodeEmail(user *models.User, code string) {
	if s.queueClient == nil {
		return
	}
	err := s.queueClient.EnqueueVerifyCodeEmail(queue.VerifyCodeEmailPayload{
		UserID:  user.ID,
		Email:   user.Email,
		Code:    code,
		Purpose: constants.VerifyPurposeRegister,
		Locale:  user.Locale,
	})
	if err != nil {
		logger.Warnw("enqueue_verify_code_email_failed", "user_id", user.ID, "error", err)
	}
}

func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", ErrInvalidEmail
	}
	return normalized, nil
}

// NormalizeEmail 统一邮箱格式
func NormalizeEmail(email string) (string, error) {
	return normalizeEmail(email)
}

func isPetPreferenceSupported(preference string) bool {
	switch preference {
	case constants.PetPreferenceDogs, constants.PetPreferenceCats, constants.PetPreferenceBoth:
		return true
	default:
		return false
	}
}

func randomNumericCode(length int) (string, error) {
	if length <= 0 {
		length = 6
	}
	digits := make([]byte, 0, length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits = append(digits, byte('0'+n.Int64()))
	}
	return string(digits), nil
}

func resolveCodeLength(cfg config.VerifyCodeConfig) int {
	if cfg.Length <= 0 {
		return 6
	}
	return cfg.Length
}

func resolveExpireMinutes(cfg config.VerifyCodeConfig) int {
	if cfg.ExpireMinutes <= 0 {
		return 10
	}
	return cfg.ExpireMinutes
}

func resolveMaxAttempts(cfg config.VerifyCodeConfig) int {
	if cfg.MaxAttempts <= 0 {
		return 5
	}
	return cfg.MaxAttempts
}

func resolveResendWindowMinutes(cfg config.VerifyCodeConfig) int {
	if cfg.ResendWindowMinutes <= 0 {
		return 60
	}
	return cfg.ResendWindowMinutes
}

func resolveResendMaxInWindow(cfg config.VerifyCodeConfig) int {
	if cfg.ResendMaxInWindow <= 0 {
		return 3
	}
	return cfg.ResendMaxInWindow
}

func resolveLockoutMaxAttempts(cfg config.AuthConfig) int {
	if cfg.LockoutMaxAttempts <= 0 {
		return 5
	}
	return cfg.LockoutMaxAttempts
}

func resolveLockoutMinutes(cfg config.AuthConfig) int {
	if cfg.LockoutMinutes <= 0 {
		return 15
	}
	return cfg.LockoutMinutes
}
