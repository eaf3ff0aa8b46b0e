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

func setupCategoryServiceTest(t *testing.T) (*CategoryService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:category_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
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
	return NewCategoryService(repository.NewCategoryRepository(db)), db
}

func TestCategoryServiceCreate(t *testing.T) {
	svc, _ := setupCategoryServiceTest(t)

	category, err := svc.Create(CategoryInput{Name: " Alimentos ", Description: "Comida para mascotas"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if category.Name != "Alimentos" || !category.IsActive {
		t.Fatalf("unexpected category: %+v", category)
	}

	if _, err := svc.Create(CategoryInput{Name: "  "}); !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}

	// 名称不区分大小写去重
	if _, err := svc.Create(CategoryInput{Name: "alimentos"}); !errors.Is(err, ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists, got %v", err)
	}
}

func TestCategoryServiceUpdate(t *testing.T) {
	svc, _ := setupCategoryServiceTest(t)

	first, err := svc.Create(CategoryInput{Name: "Alimentos"})
	if err != nil {
		t.Fatalf("create first failed: %v", err)
	}
	second, err := svc.Create(CategoryInput{Name: "Higiene"})
	if err != nil {
		t.Fatalf("create second failed: %v", err)
	}

	inactive := false
	updated, err := svc.Update(first.ID, CategoryInput{Name: "Alimentos y snacks", IsActive: &inactive})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Alimentos y snacks" || updated.IsActive {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	// 撞前一个分类的名称
	if _, err := svc.Update(second.ID, CategoryInput{Name: "ALIMENTOS Y SNACKS"}); !errors.Is(err, ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists, got %v", err)
	}

	if _, err := svc.Update(9999, CategoryInput{Name: "Otra"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCategoryServiceDelete(t *testing.T) {
	svc, db := setupCategoryServiceTest(t)

	category, err := svc.Create(CategoryInput{Name: "Accesorios"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	product := models.Product{
		CategoryID: category.ID,
		Name:       "Collar",
		Price:      models.NewMoneyFromDecimal(decimal.NewFromInt(28000)),
		IsActive:   true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	// 分类下仍有商品时拒绝删除
	if err := svc.Delete(category.ID); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}

	if err := db.Delete(&product).Error; err != nil {
		t.Fatalf("delete product failed: %v", err)
	}
	if err := svc.Delete(category.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(category.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestCategoryServiceSubcategories(t *testing.T) {
	svc, _ := setupCategoryServiceTest(t)

	category, err := svc.Create(CategoryInput{Name: "Alimentos"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	sub, err := svc.CreateSubcategory(SubcategoryInput{
		CategoryID:  category.ID,
		Name:        "Alimento seco perro",
		Description: " Croquetas y concentrados ",
	})
	if err != nil {
		t.Fatalf("create subcategory failed: %v", err)
	}
	if sub.CategoryID != category.ID || !sub.IsActive {
		t.Fatalf("unexpected subcategory: %+v", sub)
	}
	if sub.Description != "Croquetas y concentrados" {
		t.Fatalf("description want trimmed value, got %q", sub.Description)
	}

	// 同一分类下名称去重
	if _, err := svc.CreateSubcategory(SubcategoryInput{CategoryID: category.ID, Name: "ALIMENTO SECO PERRO"}); !errors.Is(err, ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists, got %v", err)
	}
	if _, err := svc.CreateSubcategory(SubcategoryInput{CategoryID: 9999, Name: "Otro"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// 不同分类下同名允许
	other, err := svc.Create(CategoryInput{Name: "Higiene"})
	if err != nil {
		t.Fatalf("create other category failed: %v", err)
	}
	if _, err := svc.CreateSubcategory(SubcategoryInput{CategoryID: other.ID, Name: "Alimento seco perro"}); err != nil {
		t.Fatalf("expected same name allowed across categories, got %v", err)
	}

	subs, err := svc.ListSubcategories(category.ID, false)
	if err != nil {
		t.Fatalf("list subcategories failed: %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("expected 1 subcategory, got %d", len(subs))
	}

	updated, err := svc.UpdateSubcategory(sub.ID, SubcategoryInput{Name: "Alimento seco gato", Description: "Húmedo y seco"})
	if err != nil {
		t.Fatalf("update subcategory failed: %v", err)
	}
	if updated.Name != "Alimento seco gato" {
		t.Fatalf("unexpected updated name %q", updated.Name)
	}
	if updated.Description != "Húmedo y seco" {
		t.Fatalf("unexpected updated description %q", updated.Description)
	}

	if err := svc.DeleteSubcategory(sub.ID); err != nil {
		t.Fatalf("delete subcategory failed: %v", err)
	}
	if err := svc.DeleteSubcategory(sub.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCategoryServiceSubcategoryDeleteInUse(t *testing.T) {
	svc, db := setupCategoryServiceTest(t)

	category, err := svc.Create(CategoryInput{Name: "Alimentos"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	sub, err := svc.CreateSubcategory(SubcategoryInput{CategoryID: category.ID, Name: "Canina"})
	if err != nil {
		t.Fatalf("create subcategory failed: %v", err)
	}

	product := models.Product{
		CategoryID:    category.ID,
		SubcategoryID: &sub.ID,
		Name:          "Concentrado",
		Price:         models.NewMoneyFromDecimal(decimal.NewFromInt(145000)),
		IsActive:      true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	if err := svc.DeleteSubcategory(sub.ID); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}
}

func TestCategoryServiceList(t *testing.T) {
	svc, _ := setupCategoryServiceTest(t)

	inactive := false
	if _, err := svc.Create(CategoryInput{Name: "Visible"}); err != nil {
		t.Fatalf("create visible failed: %v", err)
	}
	if _, err := svc.Create(CategoryInput{Name: "Oculta", IsActive: &inactive}); err != nil {
		t.Fatalf("create hidden failed: %v", err)
	}

	active, err := svc.List(true)
	if err != nil {
		t.Fatalf("list active failed: %v", err)
	}
	if len(active) != 1 || active[0].Name != "Visible" {
		t.Fatalf("expected only active category, got %d", len(active))
	}

	all, err := svc.List(false)
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(all))
	}
}
