package public

import (
	"errors"
	"strings"

	"github.com/petshop-next/internal/constants"
	"github.com/petshop-next/internal/http/response"
	"github.com/petshop-next/internal/i18n"
	"github.com/petshop-next/internal/models"
	"github.com/petshop-next/internal/service"

	"github.com/gin-gonic/gin"
)

// UserRegisterRequest 注册请求
type UserRegisterRequest struct {
	Email           string `json:"email" binding:"required"`
	Password        string `json:"password" binding:"required"`
	Name            string `json:"name" binding:"required"`
	Cedula          string `json:"cedula"`
	Phone           string `json:"phone"`
	ShippingAddress string `json:"shipping_address"`
	PetPreference   string `json:"pet_preference"`
}

// UserRegister 用户注册：创建未激活账户并发送邮箱验证码。
func (h *Handler) UserRegister(c *gin.Context) {
	var req UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	locale := i18n.ResolveLocale(c)
	user, err := h.UserAuthService.Register(service.RegisterInput{
		Email:           req.Email,
		Password:        req.Password,
		Name:            req.Name,
		Cedula:          req.Cedula,
		Phone:           req.Phone,
		ShippingAddress: req.ShippingAddress,
		PetPreference:   req.PetPreference,
		Locale:          locale,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, "error.invalid_email", nil)
		case errors.Is(err, service.ErrMissingField):
			respondError(c, response.CodeBadRequest, "error.missing_field", nil)
		case errors.Is(err, service.ErrEmailExists):
			respondError(c, response.CodeBadRequest, "error.email_exists", nil)
		case errors.Is(err, service.ErrWeakPassword):
			if perr, ok := err.(interface {
				Key() string
				Args() []interface{}
			}); ok {
				msg := i18n.Sprintf(locale, perr.Key(), perr.Args()...)
				respondErrorWithMsg(c, response.CodeBadRequest, msg, nil)
				return
			}
			respondError(c, response.CodeBadRequest, "error.weak_password", nil)
		default:
			respondError(c, response.CodeInternal, "error.register_failed", err)
		}
		return
	}

	response.Success(c, gin.H{
		"message": i18n.T(locale, "msg.register_ok"),
		"user":    userProfilePayload(user),
	})
}

// UserVerifyEmailRequest 邮箱验证请求
type UserVerifyEmailRequest struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// UserVerifyEmail 校验注册验证码并激活账户。
func (h *Handler) UserVerifyEmail(c *gin.Context) {
	var req UserVerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, err := h.UserAuthService.VerifyEmail(req.Email, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, "error.invalid_email", nil)
		case errors.Is(err, service.ErrVerifyCodeExpired):
			respondError(c, response.CodeBadRequest, "error.verify_code_expired", nil)
		case errors.Is(err, service.ErrVerifyCodeAttemptsExceeded):
			respondError(c, response.CodeBadRequest, "error.verify_code_attempts_exceeded", nil)
		case errors.Is(err, service.ErrVerifyCodeInvalid):
			respondError(c, response.CodeBadRequest, "error.verify_code_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.verify_failed", err)
		}
		return
	}

	locale := i18n.ResolveLocale(c)
	response.Success(c, gin.H{
		"message": i18n.T(locale, "msg.verify_ok"),
		"user":    userProfilePayload(user),
	})
}

// UserResendCodeRequest 重发验证码请求
type UserResendCodeRequest struct {
	Email          string                `json:"email" binding:"required"`
	CaptchaPayload CaptchaPayloadRequest `json:"captcha_payload"`
}

// UserResendCode 重发注册验证码，窗口内限流。
func (h *Handler) UserResendCode(c *gin.Context) {
	var req UserResendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if h.CaptchaService != nil {
		if captchaErr := h.CaptchaService.Verify(constants.CaptchaSceneRegisterSendCode, req.CaptchaPayload.ToServicePayload()); captchaErr != nil {
			switch {
			case errors.Is(captchaErr, service.ErrCaptchaRequired):
				respondError(c, response.CodeBadRequest, "error.captcha_required", nil)
			case errors.Is(captchaErr, service.ErrCaptchaInvalid):
				respondError(c, response.CodeBadRequest, "error.captcha_invalid", nil)
			default:
				respondError(c, response.CodeInternal, "error.internal", captchaErr)
			}
			return
		}
	}

	if err := h.UserAuthService.ResendCode(req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, "error.invalid_email", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.user_not_found", nil)
		case errors.Is(err, service.ErrAlreadyVerified):
			respondError(c, response.CodeBadRequest, "error.already_verified", nil)
		case errors.Is(err, service.ErrResendRateLimited):
			respondError(c, response.CodeTooManyRequests, "error.rate_limited", nil)
		default:
			respondError(c, response.CodeInternal, "error.resend_failed", err)
		}
		return
	}

	locale := i18n.ResolveLocale(c)
	response.Success(c, gin.H{"message": i18n.T(locale, "msg.resend_ok")})
}

// UserLoginRequest 登录请求
type UserLoginRequest struct {
	Email          string                `json:"email" binding:"required"`
	Password       string                `json:"password" binding:"required"`
	CaptchaPayload CaptchaPayloadRequest `json:"captcha_payload"`
}

// UserLogin 用户登录：签发访问令牌与刷新令牌。
// 登录成功后合并匿名会话购物车；合并失败不影响登录结果。
func (h *Handler) UserLogin(c *gin.Context) {
	var req UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if h.CaptchaService != nil {
		if captchaErr := h.CaptchaService.Verify(constants.CaptchaSceneLogin, req.CaptchaPayload.ToServicePayload()); captchaErr != nil {
			switch {
			case errors.Is(captchaErr, service.ErrCaptchaRequired):
				respondError(c, response.CodeBadRequest, "error.captcha_required", nil)
			case errors.Is(captchaErr, service.ErrCaptchaInvalid):
				respondError(c, response.CodeBadRequest, "error.captcha_invalid", nil)
			default:
				respondError(c, response.CodeInternal, "error.internal", captchaErr)
			}
			return
		}
	}

	user, tokens, err := h.UserAuthService.Login(req.Email, req.Password, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAccountLocked):
			respondError(c, response.CodeUnauthorized, "error.account_locked", nil)
		case errors.Is(err, service.ErrAccountNotVerified):
			respondError(c, response.CodeUnauthorized, "error.account_not_verified", nil)
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, response.CodeUnauthorized, "error.invalid_credentials", nil)
		default:
			respondError(c, response.CodeInternal, "error.login_failed", err)
		}
		return
	}

	if sessionID := strings.TrimSpace(c.GetHeader("X-Session-ID")); sessionID != "" {
		if mergeErr := h.CartService.MergeSessionCart(sessionID, user.ID); mergeErr != nil {
			requestLog(c).Warnw("login_cart_merge_failed",
				"user_id", user.ID,
				"error", mergeErr,
			)
		}
	}

	h.setRefreshCookie(c, tokens.RefreshToken)

	response.Success(c, gin.H{
		"access_token":       tokens.AccessToken,
		"access_expires_at":  tokens.AccessExpiresAt,
		"refresh_token":      tokens.RefreshToken,
		"refresh_expires_at": tokens.RefreshExpiresAt,
		"user":               userProfilePayload(user),
	})
}

// UserRefreshRequest 刷新访问令牌请求
type UserRefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// UserRefresh 使用刷新令牌换取新的访问令牌（刷新令牌本身不轮换）。
func (h *Handler) UserRefresh(c *gin.Context) {
	var req UserRefreshRequest
	_ = c.ShouldBindJSON(&req)

	refreshToken := h.resolveRefreshToken(c, req.RefreshToken)
	if refreshToken == "" {
		respondError(c, response.CodeUnauthorized, "error.token_invalid", nil)
		return
	}

	user, accessToken, expiresAt, err := h.UserAuthService.Refresh(refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRefreshTokenInvalid):
			respondError(c, response.CodeUnauthorized, "error.token_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.refresh_failed", err)
		}
		return
	}

	response.Success(c, gin.H{
		"access_token":      accessToken,
		"access_expires_at": expiresAt,
		"user":              userProfilePayload(user),
	})
}

// UserLogoutRequest 注销请求
type UserLogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// UserLogout 注销：吊销刷新令牌。幂等，始终返回成功。
func (h *Handler) UserLogout(c *gin.Context) {
	var req UserLogoutRequest
	_ = c.ShouldBindJSON(&req)

	if refreshToken := h.resolveRefreshToken(c, req.RefreshToken); refreshToken != "" {
		h.UserAuthService.Logout(refreshToken)
	}
	h.clearRefreshCookie(c)

	locale := i18n.ResolveLocale(c)
	response.Success(c, gin.H{"message": i18n.T(locale, "msg.logout_ok")})
}

// UserProfile 获取当前用户资料。
func (h *Handler) UserProfile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	user, err := h.UserAuthService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.user_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.Success(c, gin.H{"user": userProfilePayload(user)})
}

// UserUpdateProfileRequest 更新资料请求：仅更新提交的字段
type UserUpdateProfileRequest struct {
	Name            *string `json:"name"`
	Phone           *string `json:"phone"`
	ShippingAddress *string `json:"shipping_address"`
	PetPreference   *string `json:"pet_preference"`
	Locale          *string `json:"locale"`
}

// UserUpdateProfile 更新当前用户资料。
func (h *Handler) UserUpdateProfile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req UserUpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, err := h.UserAuthService.UpdateProfile(userID, service.UpdateProfileInput{
		Name:            req.Name,
		Phone:           req.Phone,
		ShippingAddress: req.ShippingAddress,
		PetPreference:   req.PetPreference,
		Locale:          req.Locale,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProfileEmpty):
			respondError(c, response.CodeBadRequest, "error.profile_empty", nil)
		case errors.Is(err, service.ErrMissingField):
			respondError(c, response.CodeBadRequest, "error.missing_field", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.user_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.profile_update_failed", err)
		}
		return
	}

	response.Success(c, gin.H{"user": userProfilePayload(user)})
}

// UserChangePasswordRequest 修改密码请求
type UserChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// UserChangePassword 修改当前用户密码并吊销已有会话。
func (h *Handler) UserChangePassword(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req UserChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.UserAuthService.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPassword):
			respondError(c, response.CodeBadRequest, "error.invalid_password", nil)
		case errors.Is(err, service.ErrWeakPassword):
			locale := i18n.ResolveLocale(c)
			if perr, ok := err.(interface {
				Key() string
				Args() []interface{}
			}); ok {
				msg := i18n.Sprintf(locale, perr.Key(), perr.Args()...)
				respondErrorWithMsg(c, response.CodeBadRequest, msg, nil)
				return
			}
			respondError(c, response.CodeBadRequest, "error.weak_password", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.user_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.update_failed", err)
		}
		return
	}
	h.clearRefreshCookie(c)

	response.Success(c, gin.H{"changed": true})
}

// resolveRefreshToken 优先取请求体，退回配置的刷新令牌 Cookie。
func (h *Handler) resolveRefreshToken(c *gin.Context, bodyToken string) string {
	if token := strings.TrimSpace(bodyToken); token != "" {
		return token
	}
	cookieName := h.Config.Auth.RefreshCookieName
	if cookieName == "" {
		return ""
	}
	cookie, err := c.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(cookie)
}

// refreshCookiePath 刷新令牌只在认证接口下携带
const refreshCookiePath = "/api/v1/auth"

func (h *Handler) setRefreshCookie(c *gin.Context, token string) {
	cookieName := h.Config.Auth.RefreshCookieName
	if cookieName == "" {
		return
	}
	maxAge := h.Config.Auth.RefreshExpireDays * 24 * 3600
	if maxAge <= 0 {
		maxAge = 7 * 24 * 3600
	}
	c.SetCookie(cookieName, token, maxAge, refreshCookiePath, h.Config.Auth.RefreshCookieDomain, h.Config.Auth.RefreshCookieSecure, true)
}

func (h *Handler) clearRefreshCookie(c *gin.Context) {
	cookieName := h.Config.Auth.RefreshCookieName
	if cookieName == "" {
		return
	}
	c.SetCookie(cookieName, "", -1, refreshCookiePath, h.Config.Auth.RefreshCookieDomain, h.Config.Auth.RefreshCookieSecure, true)
}

func userProfilePayload(user *models.User) gin.H {
	return gin.H{
		"id":                user.ID,
		"email":             user.Email,
		"name":              user.Name,
		"cedula":            user.Cedula,
		"phone":             user.Phone,
		"shipping_address":  user.ShippingAddress,
		"pet_preference":    user.PetPreference,
		"locale":            user.Locale,
		"is_active":         user.IsActive,
		"email_verified_at": user.EmailVerifiedAt,
		"last_login_at":     user.LastLoginAt,
		"created_at":        user.CreatedAt,
	}
}
