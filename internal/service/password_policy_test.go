package service

import (
	"errors"
	"testing"

	"github.com/petshop-next/internal/config"
)

func TestValidatePassword(t *testing.T) {
	policy := config.PasswordPolicyConfig{
		MinLength:     10,
		RequireUpper:  true,
		RequireLower:  true,
		RequireNumber: true,
	}

	cases := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "valid", password: "Contrasena123", wantErr: false},
		{name: "too short", password: "Abc123", wantErr: true},
		{name: "missing upper", password: "contrasena123", wantErr: true},
		{name: "missing lower", password: "CONTRASENA123", wantErr: true},
		{name: "missing number", password: "Contrasenaxyz", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validatePassword(policy, tc.password)
			if tc.wantErr && !errors.Is(err, ErrWeakPassword) {
				t.Fatalf("expected ErrWeakPassword, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("expected valid password, got %v", err)
			}
		})
	}
}

func TestValidatePasswordSpecialChars(t *testing.T) {
	policy := config.PasswordPolicyConfig{MinLength: 8, RequireSpecial: true}

	if err := validatePassword(policy, "clave!segura"); err != nil {
		t.Fatalf("expected special char accepted, got %v", err)
	}
	if err := validatePassword(policy, "clavesegura"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword without special char, got %v", err)
	}
}

func TestPasswordPolicyErrorCarriesMessageKey(t *testing.T) {
	err := validatePassword(config.PasswordPolicyConfig{MinLength: 12}, "corta")
	if err == nil {
		t.Fatalf("expected error")
	}

	keyed, ok := err.(interface {
		Key() string
		Args() []interface{}
	})
	if !ok {
		t.Fatalf("expected keyed policy error, got %T", err)
	}
	if keyed.Key() != "error.password_policy" {
		t.Fatalf("unexpected key %q", keyed.Key())
	}
	if len(keyed.Args()) != 1 || keyed.Args()[0] != 12 {
		t.Fatalf("unexpected args %v", keyed.Args())
	}
}

func TestValidatePasswordDefaultMinLength(t *testing.T) {
	// 未配置时默认最小长度为 10
	if err := validatePassword(config.PasswordPolicyConfig{}, "novecar12"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected 9 char password rejected by default policy, got %v", err)
	}
	if err := validatePassword(config.PasswordPolicyConfig{}, "diezcarac12"); err != nil {
		t.Fatalf("expected password accepted, got %v", err)
	}
}
