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
	"gorm.io/gorm"
)

func setupProductServiceTest(t *testing.T) (*ProductService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:product_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Subcategory{},
		&models.Product{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	cfg := &config.Config{}
	cfg.Inventory.LowStockThreshold = 5

	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	return NewProductService(cfg, productRepo, categoryRepo, nil), db
}

func createProductTestCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, IsActive: true}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	return category
}

func TestProductServiceCreate(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	category := createProductTestCategory(t, db, "Alimentos")

	stock := 40
	product, err := svc.Create(ProductInput{
		CategoryID:    category.ID,
		Name:          " Concentrado premium ",
		Description:   "Croquetas de pollo",
		Price:         "145000",
		WeightGrams:   10000,
		StockQuantity: &stock,
		Images:        []string{"https://cdn.example.com/p1.jpg"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if product.Name != "Concentrado premium" || product.StockQuantity != 40 || !product.IsActive {
		t.Fatalf("unexpected product: %+v", product)
	}
}

func TestProductServiceCreateValidation(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	category := createProductTestCategory(t, db, "Alimentos")

	cases := []struct {
		name  string
		input ProductInput
		want  error
	}{
		{name: "empty name", input: ProductInput{CategoryID: category.ID, Name: " ", Price: "1"}, want: ErrProductInvalid},
		{name: "bad price", input: ProductInput{CategoryID: category.ID, Name: "X", Price: "gratis"}, want: ErrProductInvalid},
		{name: "negative price", input: ProductInput{CategoryID: category.ID, Name: "X", Price: "-5"}, want: ErrProductInvalid},
		{name: "negative weight", input: ProductInput{CategoryID: category.ID, Name: "X", Price: "1", WeightGrams: -1}, want: ErrProductInvalid},
		{name: "missing category", input: ProductInput{CategoryID: 9999, Name: "X", Price: "1"}, want: ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(tc.input); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	negative := -1
	if _, err := svc.Create(ProductInput{CategoryID: category.ID, Name: "X", Price: "1", StockQuantity: &negative}); !errors.Is(err, ErrProductInvalid) {
		t.Fatalf("expected ErrProductInvalid for negative stock, got %v", err)
	}
}

func TestProductServiceSubcategoryMismatch(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	first := createProductTestCategory(t, db, "Alimentos")
	second := createProductTestCategory(t, db, "Higiene")

	sub := models.Subcategory{CategoryID: second.ID, Name: "Arena", IsActive: true}
	if err := db.Create(&sub).Error; err != nil {
		t.Fatalf("create subcategory failed: %v", err)
	}

	// 子分类属于另一个分类
	if _, err := svc.Create(ProductInput{
		CategoryID:    first.ID,
		SubcategoryID: &sub.ID,
		Name:          "Producto",
		Price:         "1000",
	}); !errors.Is(err, ErrSubcategoryMismatch) {
		t.Fatalf("expected ErrSubcategoryMismatch, got %v", err)
	}

	// 匹配时通过
	if _, err := svc.Create(ProductInput{
		CategoryID:    second.ID,
		SubcategoryID: &sub.ID,
		Name:          "Arena fina",
		Price:         "52000",
	}); err != nil {
		t.Fatalf("create with matching subcategory failed: %v", err)
	}
}

func TestProductServiceUpdate(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	category := createProductTestCategory(t, db, "Accesorios")

	product, err := svc.Create(ProductInput{CategoryID: category.ID, Name: "Collar", Price: "28000"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	inactive := false
	updated, err := svc.Update(product.ID, ProductInput{
		CategoryID: category.ID,
		Name:       "Collar reflectivo",
		Price:      "30000",
		IsActive:   &inactive,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Collar reflectivo" || updated.IsActive {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	// 未传库存时保持原值
	if updated.StockQuantity != product.StockQuantity {
		t.Fatalf("expected stock unchanged, got %d", updated.StockQuantity)
	}

	if _, err := svc.Update(9999, ProductInput{CategoryID: category.ID, Name: "X", Price: "1"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProductServiceGetPublicByID(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	category := createProductTestCategory(t, db, "Alimentos")

	inactive := false
	hidden, err := svc.Create(ProductInput{CategoryID: category.ID, Name: "Oculto", Price: "1000", IsActive: &inactive})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.GetPublicByID(hidden.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for inactive product, got %v", err)
	}

	visible, err := svc.Create(ProductInput{CategoryID: category.ID, Name: "Visible", Price: "1000"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	got, err := svc.GetPublicByID(visible.ID)
	if err != nil {
		t.Fatalf("get public failed: %v", err)
	}
	if got.Category.ID != category.ID {
		t.Fatalf("expected category preloaded")
	}
}

func TestProductServiceDelete(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	category := createProductTestCategory(t, db, "Higiene")

	product, err := svc.Create(ProductInput{CategoryID: category.ID, Name: "Shampoo", Price: "24000"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Delete(product.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(product.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestProductServiceStockStatus(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	cases := []struct {
		stock int
		want  string
	}{
		{stock: 0, want: constants.ProductStockStatusOutOfStock},
		{stock: 5, want: constants.ProductStockStatusLowStock},
		{stock: 6, want: constants.ProductStockStatusInStock},
	}
	for _, tc := range cases {
		product := &models.Product{StockQuantity: tc.stock}
		if got := svc.StockStatus(product); got != tc.want {
			t.Fatalf("stock %d: expected %q, got %q", tc.stock, tc.want, got)
		}
	}
}

func TestProductServiceListFilters(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	food := createProductTestCategory(t, db, "Alimentos")
	hygiene := createProductTestCategory(t, db, "Higiene")

	zero := 0
	ten := 10
	if _, err := svc.Create(ProductInput{CategoryID: food.ID, Name: "Concentrado perro", Price: "145000", StockQuantity: &ten}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(ProductInput{CategoryID: hygiene.ID, Name: "Shampoo avena", Price: "24000", StockQuantity: &zero}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	byCategory, total, err := svc.List(repository.ProductListFilter{CategoryID: food.ID, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list by category failed: %v", err)
	}
	if total != 1 || byCategory[0].Name != "Concentrado perro" {
		t.Fatalf("unexpected category filter result: total=%d", total)
	}

	inStock, total, err := svc.List(repository.ProductListFilter{InStockOnly: true, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list in stock failed: %v", err)
	}
	if total != 1 || inStock[0].Name != "Concentrado perro" {
		t.Fatalf("unexpected in-stock filter result: total=%d", total)
	}

	bySearch, total, err := svc.List(repository.ProductListFilter{Search: "avena", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list by search failed: %v", err)
	}
	if total != 1 || bySearch[0].Name != "Shampoo avena" {
		t.Fatalf("unexpected search result: total=%d", total)
	}
}
