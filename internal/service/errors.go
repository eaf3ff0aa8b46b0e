package service

import "errors"

// 服务层统一错误，处理器据此映射响应码与文案。
var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrMissingField       = errors.New("missing required field")
	ErrEmailExists        = errors.New("email already registered")
	ErrWeakPassword       = errors.New("password does not meet policy")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrAccountLocked      = errors.New("account temporarily locked")
	ErrAccountNotVerified = errors.New("account email not verified")
	ErrAlreadyVerified    = errors.New("account already verified")
	ErrProfileEmpty       = errors.New("no profile fields to update")

	ErrVerifyCodeInvalid          = errors.New("verification code invalid")
	ErrVerifyCodeExpired          = errors.New("verification code expired")
	ErrVerifyCodeAttemptsExceeded = errors.New("verification code attempts exceeded")
	ErrResendRateLimited          = errors.New("verification code resend rate limited")
	ErrInvalidVerifyPurpose       = errors.New("unsupported verify purpose")

	ErrRefreshTokenInvalid = errors.New("refresh token invalid")

	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")

	ErrCategoryExists       = errors.New("category name already exists")
	ErrCategoryInUse        = errors.New("category still has products")
	ErrSubcategoryMismatch  = errors.New("subcategory does not belong to category")
	ErrProductInvalid       = errors.New("invalid product data")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrCartEmpty            = errors.New("cart is empty")
	ErrQuantityInvalid      = errors.New("quantity must be greater than zero")
	ErrRestockRateLimited   = errors.New("restock rate limited")
	ErrShippingAddressShort = errors.New("shipping address too short")
	ErrPhoneInvalid         = errors.New("phone number invalid")
	ErrOrderStatusInvalid   = errors.New("order status invalid")
	ErrOrderTransition      = errors.New("order status transition not allowed")
	ErrCarouselFull         = errors.New("carousel image limit reached")
	ErrCarouselOrderTaken   = errors.New("carousel display order already in use")
	ErrAdminExists          = errors.New("admin already exists")

	ErrCaptchaRequired      = errors.New("captcha required")
	ErrCaptchaInvalid       = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid = errors.New("captcha config invalid")
)
