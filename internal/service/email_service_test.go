package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/petshop-next/internal/config"
	"github.com/petshop-next/internal/i18n"
)

func TestNormalizeLocale(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "es-CO", want: i18n.DefaultLocale},
		{in: "es", want: i18n.DefaultLocale},
		{in: "", want: i18n.DefaultLocale},
		{in: "EN", want: "en-US"},
		{in: "en-us", want: "en-US"},
		{in: "fr-FR", want: i18n.DefaultLocale},
	}
	for _, tc := range cases {
		if got := normalizeLocale(tc.in); got != tc.want {
			t.Fatalf("normalize locale %q: want %q got %q", tc.in, tc.want, got)
		}
	}
}

func TestSendVerifyCodeDisabled(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{Enabled: false})
	err := svc.SendVerifyCode("laura@example.com", "123456", "es-CO")
	if !errors.Is(err, ErrEmailServiceDisabled) {
		t.Fatalf("expected ErrEmailServiceDisabled, got %v", err)
	}
}

func TestSendVerifyCodeNotConfigured(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{Enabled: true})
	err := svc.SendVerifyCode("laura@example.com", "123456", "es-CO")
	if !errors.Is(err, ErrEmailServiceNotConfigured) {
		t.Fatalf("expected ErrEmailServiceNotConfigured, got %v", err)
	}
}

func TestSendVerifyCodeInvalidRecipient(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{
		Enabled: true,
		Host:    "smtp.example.com",
		Port:    587,
		From:    "tienda@example.com",
	})
	err := svc.SendVerifyCode("not-an-address", "123456", "es-CO")
	if !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestBuildEmailMessage(t *testing.T) {
	msg := buildEmailMessage("tienda@example.com", "laura@example.com", "Código de verificación", "Tu código es 123456")
	headers, body, found := strings.Cut(msg, "\r\n\r\n")
	if !found {
		t.Fatalf("message missing header separator")
	}
	if !strings.Contains(headers, "From: tienda@example.com") {
		t.Fatalf("missing From header: %s", headers)
	}
	if !strings.Contains(headers, "To: laura@example.com") {
		t.Fatalf("missing To header: %s", headers)
	}
	if !strings.Contains(headers, "Content-Type: text/plain; charset=UTF-8") {
		t.Fatalf("missing content type: %s", headers)
	}
	// 非 ASCII 主题需 Q 编码
	if !strings.Contains(headers, "Subject: =?UTF-8?q?") {
		t.Fatalf("subject should be q-encoded: %s", headers)
	}
	if body != "Tu código es 123456" {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestBuildFromAddress(t *testing.T) {
	if got := buildFromAddress("tienda@example.com", ""); got != "tienda@example.com" {
		t.Fatalf("bare address want unchanged, got %q", got)
	}
	got := buildFromAddress("tienda@example.com", "PetShop")
	if !strings.Contains(got, "PetShop") || !strings.Contains(got, "<tienda@example.com>") {
		t.Fatalf("named address malformed: %q", got)
	}
}

func TestIsEmailRecipientRejected(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "no such user", err: errors.New("550 no such user here"), want: true},
		{name: "mailbox unavailable", err: errors.New("mailbox unavailable"), want: true},
		{name: "550 rcpt", err: errors.New("550 5.1.1 rcpt refused"), want: true},
		{name: "connection refused", err: errors.New("dial tcp: connection refused"), want: false},
		{name: "550 unrelated", err: errors.New("550 policy violation"), want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isEmailRecipientRejected(tc.err); got != tc.want {
				t.Fatalf("want %v got %v", tc.want, got)
			}
		})
	}
}
