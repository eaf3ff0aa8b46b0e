package authz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

func TestEnforceAdminWithRolePolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("catalog_editor", "/admin/products/:id", "GET"); err != nil {
		t.Fatalf("grant role policy failed: %v", err)
	}
	if err := svc.SetAdminRoles(1, []string{"catalog_editor"}); err != nil {
		t.Fatalf("set admin roles failed: %v", err)
	}

	allow, err := svc.EnforceAdmin(1, "/api/v1/admin/products/42", "get")
	if err != nil {
		t.Fatalf("enforce allow failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected allow=true")
	}

	allow, err = svc.EnforceAdmin(1, "/api/v1/admin/products/42", "POST")
	if err != nil {
		t.Fatalf("enforce deny failed: %v", err)
	}
	if allow {
		t.Fatalf("expected allow=false")
	}
}

func TestSetAdminRolesOverride(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("order_clerk", "/admin/orders", "GET"); err != nil {
		t.Fatalf("grant order_clerk policy failed: %v", err)
	}
	if err := svc.GrantRolePolicy("stock_keeper", "/admin/inventory/movements", "GET"); err != nil {
		t.Fatalf("grant stock_keeper policy failed: %v", err)
	}

	if err := svc.SetAdminRoles(2, []string{"order_clerk"}); err != nil {
		t.Fatalf("set first role failed: %v", err)
	}
	roles, err := svc.GetAdminRoles(2)
	if err != nil {
		t.Fatalf("get roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:order_clerk" {
		t.Fatalf("roles want [role:order_clerk], got=%v", roles)
	}

	if err := svc.SetAdminRoles(2, []string{"stock_keeper"}); err != nil {
		t.Fatalf("set second role failed: %v", err)
	}
	roles, err = svc.GetAdminRoles(2)
	if err != nil {
		t.Fatalf("get roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:stock_keeper" {
		t.Fatalf("roles want [role:stock_keeper], got=%v", roles)
	}

	allow, err := svc.EnforceAdmin(2, "/admin/orders", "GET")
	if err != nil {
		t.Fatalf("enforce old role failed: %v", err)
	}
	if allow {
		t.Fatalf("expected old role permission removed")
	}

	allow, err = svc.EnforceAdmin(2, "/admin/inventory/movements", "GET")
	if err != nil {
		t.Fatalf("enforce new role failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected new role permission granted")
	}
}

func TestNormalizeObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "/api/v1/admin/orders/:id", want: "/admin/orders/:id"},
		{in: "/admin/orders/:id", want: "/admin/orders/:id"},
		{in: "admin/carousel", want: "/admin/carousel"},
		{in: "/api/v1", want: "/"},
		{in: "", want: "/"},
	}
	for _, item := range cases {
		got := NormalizeObject(item.in)
		if got != item.want {
			t.Fatalf("normalize object failed, in=%q want=%q got=%q", item.in, item.want, got)
		}
	}
}

func TestBootstrapBuiltinRoles(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}

	roles, err := svc.ListRoles()
	if err != nil {
		t.Fatalf("list roles failed: %v", err)
	}
	wantRoles := map[string]bool{
		"role:readonly_auditor": true,
		"role:ops":              true,
		"role:support":          true,
	}
	for _, role := range roles {
		delete(wantRoles, role)
	}
	if len(wantRoles) != 0 {
		t.Fatalf("builtin roles missing: %v", wantRoles)
	}

	// ops 管全目录与库存
	if err := svc.SetAdminRoles(3, []string{"ops"}); err != nil {
		t.Fatalf("set admin roles failed: %v", err)
	}
	allow, err := svc.EnforceAdmin(3, "/admin/inventory/restock", "POST")
	if err != nil {
		t.Fatalf("enforce ops restock failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected ops allowed to restock")
	}

	// 继承 readonly_auditor：可读订单，不可改状态
	allow, err = svc.EnforceAdmin(3, "/admin/orders", "GET")
	if err != nil {
		t.Fatalf("enforce inherited readonly failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected inherited readonly permission")
	}
	allow, err = svc.EnforceAdmin(3, "/admin/orders/7/status", "PUT")
	if err != nil {
		t.Fatalf("enforce ops order status failed: %v", err)
	}
	if allow {
		t.Fatalf("expected ops denied order status change")
	}

	// support 管订单与用户
	if err := svc.SetAdminRoles(4, []string{"support"}); err != nil {
		t.Fatalf("set support roles failed: %v", err)
	}
	allow, err = svc.EnforceAdmin(4, "/admin/orders/7/status", "PUT")
	if err != nil {
		t.Fatalf("enforce support order status failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected support allowed to change order status")
	}
	allow, err = svc.EnforceAdmin(4, "/admin/products", "POST")
	if err != nil {
		t.Fatalf("enforce support product write failed: %v", err)
	}
	if allow {
		t.Fatalf("expected support denied product writes")
	}
}
