package repository

import (
	"errors"

	"github.com/petshop-next/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	GetByID(id uint) (*models.Product, error)
	GetByIDWithCategory(id uint) (*models.Product, error)
	List(filter ProductListFilter) ([]models.Product, int64, error)
	ListHome(limit int) ([]models.Product, error)
	ListLowStock(threshold int) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// GetByID 根据 ID 获取商品
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetByIDWithCategory 根据 ID 获取商品（含分类信息）
func (r *GormProductRepository) GetByIDWithCategory(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Category").Preload("Subcategory").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// List 商品列表
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	query := r.db.Model(&models.Product{})

	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if filter.CategoryID > 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.SubcategoryID > 0 {
		query = query.Where("subcategory_id = ?", filter.SubcategoryID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		operator := likeOperator(r.db)
		query = query.Where("name "+operator+" ? OR description "+operator+" ?", like, like)
	}
	if filter.PriceMin != "" {
		query = query.Where("price >= ?", filter.PriceMin)
	}
	if filter.PriceMax != "" {
		query = query.Where("price <= ?", filter.PriceMax)
	}
	if filter.InStockOnly {
		query = query.Where("stock_quantity > 0")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.WithCategory {
		query = query.Preload("Category").Preload("Subcategory")
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	products := make([]models.Product, 0)
	if err := query.Order("sort_order ASC, id DESC").Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// ListHome 首页商品流（上架且有库存）
func (r *GormProductRepository) ListHome(limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = 12
	}
	products := make([]models.Product, 0, limit)
	err := r.db.Where("is_active = ? AND stock_quantity > 0", true).
		Order("sort_order ASC, id DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// ListLowStock 低库存商品列表
func (r *GormProductRepository) ListLowStock(threshold int) ([]models.Product, error) {
	products := make([]models.Product, 0)
	err := r.db.Where("is_active = ? AND stock_quantity <= ?", true, threshold).
		Order("stock_quantity ASC, id ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update 更新商品
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// Delete 删除商品（软删除）
func (r *GormProductRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}
