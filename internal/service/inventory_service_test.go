package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/petshop-next/internal/config"
	"github.com/petshop-next/internal/constants"
	"github.com/petshop-next/internal/models"
	"github.com/petshop-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupInventoryServiceTest(t *testing.T) (*InventoryService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:inventory_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Subcategory{},
		&models.Product{},
		&models.InventoryMovement{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	cfg := &config.Config{}
	cfg.Inventory.LowStockThreshold = 5
	cfg.Inventory.RestockWindowMinutes = 60
	cfg.Inventory.RestockMaxInWindow = 2

	inventoryRepo := repository.NewInventoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	return NewInventoryService(cfg, inventoryRepo, productRepo, nil), db
}

func createInventoryTestProduct(t *testing.T, db *gorm.DB, stock int) *models.Product {
	t.Helper()
	category := models.Category{Name: fmt.Sprintf("cat-%d", time.Now().UnixNano()), IsActive: true}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := &models.Product{
		CategoryID:    category.ID,
		Name:          fmt.Sprintf("producto-%d", time.Now().UnixNano()),
		Price:         models.NewMoneyFromDecimal(decimal.NewFromInt(10000)),
		StockQuantity: stock,
		IsActive:      true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestInventoryServiceRestock(t *testing.T) {
	svc, db := setupInventoryServiceTest(t)
	product := createInventoryTestProduct(t, db, 3)
	adminID := uint(1)

	movement, err := svc.Restock(product.ID, 7, "pedido proveedor", &adminID)
	if err != nil {
		t.Fatalf("restock failed: %v", err)
	}
	if movement.Type != constants.InventoryMovementRestock || movement.Quantity != 7 || movement.StockAfter != 10 {
		t.Fatalf("unexpected movement: %+v", movement)
	}

	var stored models.Product
	if err := db.First(&stored, product.ID).Error; err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	if stored.StockQuantity != 10 {
		t.Fatalf("expected stock 10, got %d", stored.StockQuantity)
	}
}

func TestInventoryServiceRestockValidation(t *testing.T) {
	svc, db := setupInventoryServiceTest(t)
	product := createInventoryTestProduct(t, db, 0)

	if _, err := svc.Restock(product.ID, 0, "", nil); !errors.Is(err, ErrQuantityInvalid) {
		t.Fatalf("expected ErrQuantityInvalid, got %v", err)
	}
	if _, err := svc.Restock(product.ID, -3, "", nil); !errors.Is(err, ErrQuantityInvalid) {
		t.Fatalf("expected ErrQuantityInvalid for negative, got %v", err)
	}
	if _, err := svc.Restock(9999, 1, "", nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInventoryServiceRestockRateLimited(t *testing.T) {
	svc, db := setupInventoryServiceTest(t)
	product := createInventoryTestProduct(t, db, 0)

	if _, err := svc.Restock(product.ID, 1, "", nil); err != nil {
		t.Fatalf("first restock failed: %v", err)
	}
	if _, err := svc.Restock(product.ID, 1, "", nil); err != nil {
		t.Fatalf("second restock failed: %v", err)
	}
	if _, err := svc.Restock(product.ID, 1, "", nil); !errors.Is(err, ErrRestockRateLimited) {
		t.Fatalf("expected ErrRestockRateLimited, got %v", err)
	}

	// 窗口限流按商品计，另一个商品不受影响
	other := createInventoryTestProduct(t, db, 0)
	if _, err := svc.Restock(other.ID, 1, "", nil); err != nil {
		t.Fatalf("restock other product failed: %v", err)
	}
}

func TestInventoryServiceAdjust(t *testing.T) {
	svc, db := setupInventoryServiceTest(t)
	product := createInventoryTestProduct(t, db, 10)

	movement, err := svc.Adjust(product.ID, -4, "conteo físico", nil)
	if err != nil {
		t.Fatalf("adjust failed: %v", err)
	}
	if movement.Type != constants.InventoryMovementAdjustment || movement.StockAfter != 6 {
		t.Fatalf("unexpected movement: %+v", movement)
	}

	if _, err := svc.Adjust(product.ID, 0, "", nil); !errors.Is(err, ErrQuantityInvalid) {
		t.Fatalf("expected ErrQuantityInvalid for zero, got %v", err)
	}

	// 不允许调整到负库存
	if _, err := svc.Adjust(product.ID, -7, "", nil); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	var stored models.Product
	if err := db.First(&stored, product.ID).Error; err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	if stored.StockQuantity != 6 {
		t.Fatalf("expected stock unchanged at 6, got %d", stored.StockQuantity)
	}
}

func TestInventoryServiceListMovements(t *testing.T) {
	svc, db := setupInventoryServiceTest(t)
	product := createInventoryTestProduct(t, db, 0)

	if _, err := svc.Restock(product.ID, 5, "", nil); err != nil {
		t.Fatalf("restock failed: %v", err)
	}
	if _, err := svc.Adjust(product.ID, -1, "", nil); err != nil {
		t.Fatalf("adjust failed: %v", err)
	}

	movements, total, err := svc.ListMovements(repository.MovementListFilter{ProductID: product.ID, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list movements failed: %v", err)
	}
	if total != 2 || len(movements) != 2 {
		t.Fatalf("expected 2 movements, got total=%d len=%d", total, len(movements))
	}

	restocks, total, err := svc.ListMovements(repository.MovementListFilter{ProductID: product.ID, Type: constants.InventoryMovementRestock, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list restocks failed: %v", err)
	}
	if total != 1 || restocks[0].Type != constants.InventoryMovementRestock {
		t.Fatalf("unexpected restock listing: total=%d", total)
	}
}

func TestInventoryServiceListLowStock(t *testing.T) {
	svc, db := setupInventoryServiceTest(t)
	low := createInventoryTestProduct(t, db, 2)
	createInventoryTestProduct(t, db, 50)

	products, err := svc.ListLowStock()
	if err != nil {
		t.Fatalf("list low stock failed: %v", err)
	}
	if len(products) != 1 || products[0].ID != low.ID {
		t.Fatalf("expected only low stock product, got %d entries", len(products))
	}
}
