package main

import (
	"fmt"

	"github.com/petshop-next/internal/config"
	"github.com/petshop-next/internal/logger"
	"github.com/petshop-next/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加分类与子分类
	categories := []models.Category{
		{
			Name:        "Alimentos",
			Description: "Alimento seco y húmedo para perros y gatos",
			IsActive:    true,
			SortOrder:   300,
			Subcategories: []models.Subcategory{
				{Name: "Alimento seco perro", IsActive: true},
				{Name: "Alimento seco gato", IsActive: true},
				{Name: "Alimento húmedo", IsActive: true},
			},
		},
		{
			Name:        "Accesorios",
			Description: "Collares, correas, camas y juguetes",
			IsActive:    true,
			SortOrder:   200,
			Subcategories: []models.Subcategory{
				{Name: "Collares y correas", IsActive: true},
				{Name: "Juguetes", IsActive: true},
			},
		},
		{
			Name:        "Higiene",
			Description: "Shampoo, arena sanitaria y cuidado",
			IsActive:    true,
			SortOrder:   100,
			Subcategories: []models.Subcategory{
				{Name: "Arena sanitaria", IsActive: true},
				{Name: "Shampoo y cuidado", IsActive: true},
			},
		},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("name = ?", cat.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Name, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Name)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Name)
		}
	}

	// 获取分类与子分类 ID
	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Preload("Subcategories").Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	subcategoryIDs := map[string]uint{}
	for _, cat := range categoryList {
		categoryIDs[cat.Name] = cat.ID
		for _, sub := range cat.Subcategories {
			subcategoryIDs[sub.Name] = sub.ID
		}
	}
	foodID := categoryIDs["Alimentos"]
	accessoriesID := categoryIDs["Accesorios"]
	hygieneID := categoryIDs["Higiene"]

	subID := func(name string) *uint {
		if id, ok := subcategoryIDs[name]; ok {
			return &id
		}
		return nil
	}

	// 添加商品
	products := []models.Product{
		{
			Name:          "Concentrado premium para perro adulto 10kg",
			Description:   "Croquetas con proteína de pollo y arroz, para razas medianas y grandes.",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(145000)),
			WeightGrams:   10000,
			StockQuantity: 40,
			CategoryID:    foodID,
			SubcategoryID: subID("Alimento seco perro"),
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1589924691995-400dc9ecc119?w=800",
			}),
			IsActive:  true,
			SortOrder: 300,
		},
		{
			Name:          "Alimento para gato esterilizado 3kg",
			Description:   "Fórmula baja en calorías con control de bolas de pelo.",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(68000)),
			WeightGrams:   3000,
			StockQuantity: 25,
			CategoryID:    foodID,
			SubcategoryID: subID("Alimento seco gato"),
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1574158622682-e40e69881006?w=800",
			}),
			IsActive:  true,
			SortOrder: 280,
		},
		{
			Name:          "Lata de comida húmeda para gato 155g",
			Description:   "Trozos de atún en salsa, sin colorantes artificiales.",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(6500)),
			WeightGrams:   155,
			StockQuantity: 120,
			CategoryID:    foodID,
			SubcategoryID: subID("Alimento húmedo"),
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1571566882372-1598d88abd90?w=800",
			}),
			IsActive:  true,
			SortOrder: 260,
		},
		{
			Name:          "Collar reflectivo ajustable",
			Description:   "Collar de nylon con banda reflectiva, tallas S a L.",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(28000)),
			WeightGrams:   80,
			StockQuantity: 60,
			CategoryID:    accessoriesID,
			SubcategoryID: subID("Collares y correas"),
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1601758228041-f3b2795255f1?w=800",
			}),
			IsActive:  true,
			SortOrder: 240,
		},
		{
			Name:          "Pelota dispensadora de premios",
			Description:   "Juguete interactivo de caucho resistente para perros.",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(32000)),
			WeightGrams:   200,
			StockQuantity: 3,
			CategoryID:    accessoriesID,
			SubcategoryID: subID("Juguetes"),
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1535930891776-0c2dfb7fda1a?w=800",
			}),
			IsActive:  true,
			SortOrder: 220,
		},
		{
			Name:          "Arena aglomerante para gato 10kg",
			Description:   "Arena de bentonita con control de olores, libre de polvo.",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(52000)),
			WeightGrams:   10000,
			StockQuantity: 35,
			CategoryID:    hygieneID,
			SubcategoryID: subID("Arena sanitaria"),
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1548802673-380ab8ebc7b7?w=800",
			}),
			IsActive:  true,
			SortOrder: 200,
		},
		{
			Name:          "Shampoo hipoalergénico 500ml",
			Description:   "Shampoo de avena para piel sensible, pH balanceado.",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(24000)),
			WeightGrams:   500,
			StockQuantity: 0,
			CategoryID:    hygieneID,
			SubcategoryID: subID("Shampoo y cuidado"),
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1583511655857-d19b40a7a54e?w=800",
			}),
			IsActive:  true,
			SortOrder: 180,
		},
	}

	for _, prod := range products {
		if prod.CategoryID == 0 {
			stdLog.Printf("Skip product %s: category_id missing", prod.Name)
			continue
		}
		var existing models.Product
		if err := models.DB.Where("name = ?", prod.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&prod).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", prod.Name, err)
			} else {
				stdLog.Printf("Created product: %s", prod.Name)
			}
		} else {
			existing.Description = prod.Description
			existing.Price = prod.Price
			existing.WeightGrams = prod.WeightGrams
			existing.CategoryID = prod.CategoryID
			existing.SubcategoryID = prod.SubcategoryID
			existing.Images = prod.Images
			existing.IsActive = prod.IsActive
			existing.SortOrder = prod.SortOrder
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update product %s: %v", prod.Name, err)
			} else {
				stdLog.Printf("Updated product: %s", prod.Name)
			}
		}
	}

	// 添加首页轮播图
	carousels := []models.CarouselImage{
		{
			Title:     "Temporada de cachorros",
			Image:     "https://images.unsplash.com/photo-1450778869180-41d0601e046e?auto=format&fit=crop&w=1920&q=80",
			LinkURL:   "/products?category=alimentos",
			SortOrder: 1,
			IsActive:  true,
		},
		{
			Title:     "Accesorios con descuento",
			Image:     "https://images.unsplash.com/photo-1583337130417-3346a1be7dee?auto=format&fit=crop&w=1920&q=80",
			LinkURL:   "/products?category=accesorios",
			SortOrder: 2,
			IsActive:  true,
		},
		{
			Title:     "Higiene y cuidado",
			Image:     "https://images.unsplash.com/photo-1576201836106-db1758fd1c97?auto=format&fit=crop&w=1920&q=80",
			LinkURL:   "/products?category=higiene",
			SortOrder: 3,
			IsActive:  false,
		},
	}

	for _, banner := range carousels {
		var existing models.CarouselImage
		if err := models.DB.Where("title = ?", banner.Title).First(&existing).Error; err != nil {
			if err := models.DB.Create(&banner).Error; err != nil {
				stdLog.Printf("Failed to create carousel %s: %v", banner.Title, err)
			} else {
				stdLog.Printf("Created carousel: %s", banner.Title)
			}
		} else {
			existing.Image = banner.Image
			existing.LinkURL = banner.LinkURL
			existing.SortOrder = banner.SortOrder
			existing.IsActive = banner.IsActive
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update carousel %s: %v", banner.Title, err)
			} else {
				stdLog.Printf("Updated carousel: %s", banner.Title)
			}
		}
	}

	fmt.Println("\n✅ Test data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 3 Categories with subcategories")
	fmt.Println("- 7 Products (incluye uno agotado y uno con poco stock)")
	fmt.Println("- 3 Carousel images")
}
