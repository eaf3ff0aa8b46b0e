package service

import (
	"strings"
	"unicode"

	"github.com/petshop-next/internal/config"
)

// specialChars 可接受的特殊字符集合
const specialChars = "!@#$%^&*()_+-=[]{}|;:,.<>?"

type passwordPolicyError struct {
	key  string
	args []interface{}
}

func (e passwordPolicyError) Error() string {
	return e.key
}

func (e passwordPolicyError) Is(target error) bool {
	return target == ErrWeakPassword
}

func (e passwordPolicyError) Key() string {
	return e.key
}

func (e passwordPolicyError) Args() []interface{} {
	return e.args
}

// validatePassword 校验密码策略；任一条不满足都返回同一文案，避免泄露细节。
func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	minLength := policy.MinLength
	if minLength <= 0 {
		minLength = 10
	}
	policyErr := passwordPolicyError{key: "error.password_policy", args: []interface{}{minLength}}

	if len([]rune(password)) < minLength {
		return policyErr
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		case strings.ContainsRune(specialChars, r):
			hasSpecial = true
		}
	}

	if policy.RequireUpper && !hasUpper {
		return policyErr
	}
	if policy.RequireLower && !hasLower {
		return policyErr
	}
	if policy.RequireNumber && !hasNumber {
		return policyErr
	}
	if policy.RequireSpecial && !hasSpecial {
		return policyErr
	}

	return nil
}
