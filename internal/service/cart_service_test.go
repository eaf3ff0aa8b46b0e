package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/petshop-next/internal/models"
	"github.com/petshop-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:cart_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Subcategory{},
		&models.Product{},
		&models.CartItem{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	cartRepo := repository.NewCartRepository(db)
	productRepo := repository.NewProductRepository(db)
	return NewCartService(cartRepo, productRepo, nil), db
}

func createCartTestProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int, active bool) *models.Product {
	t.Helper()
	category := models.Category{Name: "cat-" + name, IsActive: true}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := &models.Product{
		CategoryID:    category.ID,
		Name:          name,
		Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(price)),
		StockQuantity: stock,
		IsActive:      active,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestCartServiceAddItem(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "concentrado", 145000, 10, true)
	owner := repository.ForSession("session-1")

	item, err := svc.AddItem(owner, product.ID, 2)
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if item.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", item.Quantity)
	}

	// 重复添加累加数量
	item, err = svc.AddItem(owner, product.ID, 3)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if item.Quantity != 5 {
		t.Fatalf("expected accumulated quantity 5, got %d", item.Quantity)
	}

	// 超出库存拒绝
	if _, err := svc.AddItem(owner, product.ID, 6); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
}

func TestCartServiceAddItemValidation(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	inactive := createCartTestProduct(t, db, "inactivo", 1000, 10, false)
	owner := repository.ForUser(7)

	if _, err := svc.AddItem(owner, inactive.ID, 0); !errors.Is(err, ErrQuantityInvalid) {
		t.Fatalf("expected ErrQuantityInvalid, got %v", err)
	}
	if _, err := svc.AddItem(owner, inactive.ID, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for inactive product, got %v", err)
	}
	if _, err := svc.AddItem(owner, 9999, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing product, got %v", err)
	}
}

func TestCartServiceUpdateQuantity(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "arena", 52000, 4, true)
	owner := repository.ForUser(3)

	if _, err := svc.AddItem(owner, product.ID, 1); err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	item, err := svc.UpdateQuantity(owner, product.ID, 4)
	if err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}
	if item.Quantity != 4 {
		t.Fatalf("expected quantity 4, got %d", item.Quantity)
	}

	if _, err := svc.UpdateQuantity(owner, product.ID, 5); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if _, err := svc.UpdateQuantity(owner, product.ID, 0); !errors.Is(err, ErrQuantityInvalid) {
		t.Fatalf("expected ErrQuantityInvalid, got %v", err)
	}
	if _, err := svc.UpdateQuantity(owner, 9999, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCartServiceRemoveAndClear(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	first := createCartTestProduct(t, db, "collar", 28000, 10, true)
	second := createCartTestProduct(t, db, "pelota", 32000, 10, true)
	owner := repository.ForUser(5)

	if _, err := svc.AddItem(owner, first.ID, 1); err != nil {
		t.Fatalf("add first failed: %v", err)
	}
	if _, err := svc.AddItem(owner, second.ID, 2); err != nil {
		t.Fatalf("add second failed: %v", err)
	}

	if err := svc.RemoveItem(owner, first.ID); err != nil {
		t.Fatalf("remove item failed: %v", err)
	}
	if err := svc.RemoveItem(owner, first.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second remove, got %v", err)
	}

	if err := svc.Clear(owner); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	summary, err := svc.Get(owner)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(summary.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(summary.Items))
	}
}

func TestCartServiceGetTotals(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	first := createCartTestProduct(t, db, "lata", 6500, 20, true)
	second := createCartTestProduct(t, db, "shampoo", 24000, 20, true)
	owner := repository.ForSession("session-totals")

	if _, err := svc.AddItem(owner, first.ID, 3); err != nil {
		t.Fatalf("add first failed: %v", err)
	}
	if _, err := svc.AddItem(owner, second.ID, 1); err != nil {
		t.Fatalf("add second failed: %v", err)
	}

	summary, err := svc.Get(owner)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if summary.TotalItems != 4 {
		t.Fatalf("expected 4 total items, got %d", summary.TotalItems)
	}
	want := decimal.NewFromInt(43500)
	if !summary.TotalAmount.Decimal.Equal(want) {
		t.Fatalf("expected total %s, got %s", want, summary.TotalAmount.Decimal)
	}
}

func TestCartServiceMergeSessionCart(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	shared := createCartTestProduct(t, db, "compartido", 10000, 5, true)
	only := createCartTestProduct(t, db, "solo-sesion", 8000, 10, true)
	sessionOwner := repository.ForSession("merge-session")
	userOwner := repository.ForUser(11)

	if _, err := svc.AddItem(userOwner, shared.ID, 3); err != nil {
		t.Fatalf("user add failed: %v", err)
	}
	if _, err := svc.AddItem(sessionOwner, shared.ID, 4); err != nil {
		t.Fatalf("session add failed: %v", err)
	}
	if _, err := svc.AddItem(sessionOwner, only.ID, 2); err != nil {
		t.Fatalf("session add failed: %v", err)
	}

	if err := svc.MergeSessionCart("merge-session", 11); err != nil {
		t.Fatalf("merge failed: %v", err)
	}

	summary, err := svc.Get(userOwner)
	if err != nil {
		t.Fatalf("get user cart failed: %v", err)
	}
	quantities := map[uint]int{}
	for _, item := range summary.Items {
		quantities[item.ProductID] = item.Quantity
	}
	// 共有商品 3+4 超过库存 5，截断到 5
	if quantities[shared.ID] != 5 {
		t.Fatalf("expected merged quantity clamped to 5, got %d", quantities[shared.ID])
	}
	if quantities[only.ID] != 2 {
		t.Fatalf("expected session-only quantity 2, got %d", quantities[only.ID])
	}

	sessionSummary, err := svc.Get(sessionOwner)
	if err != nil {
		t.Fatalf("get session cart failed: %v", err)
	}
	if len(sessionSummary.Items) != 0 {
		t.Fatalf("expected session cart cleared after merge, got %d items", len(sessionSummary.Items))
	}
}

func TestCartServiceMergeNoopWithoutSession(t *testing.T) {
	svc, _ := setupCartServiceTest(t)

	if err := svc.MergeSessionCart("", 1); err != nil {
		t.Fatalf("expected noop merge, got %v", err)
	}
	if err := svc.MergeSessionCart("session", 0); err != nil {
		t.Fatalf("expected noop merge, got %v", err)
	}
}
