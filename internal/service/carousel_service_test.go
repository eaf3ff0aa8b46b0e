package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/petshop-next/internal/config"
	"github.com/petshop-next/internal/models"
	"github.com/petshop-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCarouselServiceTest(t *testing.T) (*CarouselService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:carousel_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.CarouselImage{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	cfg := &config.Config{}
	cfg.Carousel.MaxImages = 3

	repo := repository.NewCarouselRepository(db)
	return NewCarouselService(cfg, repo, nil), db
}

func TestCarouselServiceCreate(t *testing.T) {
	svc, _ := setupCarouselServiceTest(t)

	image, err := svc.Create(CarouselInput{
		Title:     "Temporada de cachorros",
		Image:     "https://cdn.example.com/banner1.jpg",
		LinkURL:   "/products",
		SortOrder: 1,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !image.IsActive {
		t.Fatalf("expected image active by default")
	}

	if _, err := svc.Create(CarouselInput{Image: "", SortOrder: 2}); !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}

	// 展示顺序唯一
	if _, err := svc.Create(CarouselInput{Image: "https://cdn.example.com/dup.jpg", SortOrder: 1}); !errors.Is(err, ErrCarouselOrderTaken) {
		t.Fatalf("expected ErrCarouselOrderTaken, got %v", err)
	}

	// 展示顺序必须落在 1..max 区间
	if _, err := svc.Create(CarouselInput{Image: "https://cdn.example.com/out.jpg", SortOrder: 4}); !errors.Is(err, ErrCarouselOrderTaken) {
		t.Fatalf("expected ErrCarouselOrderTaken for out of range, got %v", err)
	}
	if _, err := svc.Create(CarouselInput{Image: "https://cdn.example.com/out.jpg", SortOrder: 0}); !errors.Is(err, ErrCarouselOrderTaken) {
		t.Fatalf("expected ErrCarouselOrderTaken for zero, got %v", err)
	}
}

func TestCarouselServiceCreateFull(t *testing.T) {
	svc, _ := setupCarouselServiceTest(t)

	for order := 1; order <= 3; order++ {
		if _, err := svc.Create(CarouselInput{
			Image:     fmt.Sprintf("https://cdn.example.com/banner%d.jpg", order),
			SortOrder: order,
		}); err != nil {
			t.Fatalf("create %d failed: %v", order, err)
		}
	}

	if _, err := svc.Create(CarouselInput{Image: "https://cdn.example.com/extra.jpg", SortOrder: 2}); !errors.Is(err, ErrCarouselFull) {
		t.Fatalf("expected ErrCarouselFull, got %v", err)
	}
}

func TestCarouselServiceUpdate(t *testing.T) {
	svc, _ := setupCarouselServiceTest(t)

	first, err := svc.Create(CarouselInput{Image: "https://cdn.example.com/a.jpg", SortOrder: 1})
	if err != nil {
		t.Fatalf("create first failed: %v", err)
	}
	second, err := svc.Create(CarouselInput{Image: "https://cdn.example.com/b.jpg", SortOrder: 2})
	if err != nil {
		t.Fatalf("create second failed: %v", err)
	}

	// 保留自己的顺序不算冲突
	inactive := false
	updated, err := svc.Update(first.ID, CarouselInput{
		Title:     "Actualizado",
		Image:     "https://cdn.example.com/a2.jpg",
		SortOrder: 1,
		IsActive:  &inactive,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Title != "Actualizado" || updated.IsActive {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	// 占用他人顺序冲突
	if _, err := svc.Update(second.ID, CarouselInput{Image: "https://cdn.example.com/b.jpg", SortOrder: 1}); !errors.Is(err, ErrCarouselOrderTaken) {
		t.Fatalf("expected ErrCarouselOrderTaken, got %v", err)
	}

	if _, err := svc.Update(9999, CarouselInput{Image: "https://cdn.example.com/x.jpg", SortOrder: 3}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCarouselServiceDeleteFreesSlot(t *testing.T) {
	svc, _ := setupCarouselServiceTest(t)

	image, err := svc.Create(CarouselInput{Image: "https://cdn.example.com/a.jpg", SortOrder: 1})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Delete(image.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(image.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}

	// 删除后顺序位可复用
	if _, err := svc.Create(CarouselInput{Image: "https://cdn.example.com/b.jpg", SortOrder: 1}); err != nil {
		t.Fatalf("create after delete failed: %v", err)
	}
}

func TestCarouselServiceListPublic(t *testing.T) {
	svc, _ := setupCarouselServiceTest(t)

	inactive := false
	if _, err := svc.Create(CarouselInput{Image: "https://cdn.example.com/on.jpg", SortOrder: 2}); err != nil {
		t.Fatalf("create active failed: %v", err)
	}
	if _, err := svc.Create(CarouselInput{Image: "https://cdn.example.com/off.jpg", SortOrder: 1, IsActive: &inactive}); err != nil {
		t.Fatalf("create inactive failed: %v", err)
	}

	public, err := svc.ListPublic()
	if err != nil {
		t.Fatalf("list public failed: %v", err)
	}
	if len(public) != 1 || public[0].SortOrder != 2 {
		t.Fatalf("expected only active image, got %d entries", len(public))
	}

	all, err := svc.ListAdmin()
	if err != nil {
		t.Fatalf("list admin failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 images for admin, got %d", len(all))
	}
}
