package repository

import (
	"errors"

	"github.com/petshop-next/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository 商品分类数据访问接口
type CategoryRepository interface {
	GetByID(id uint) (*models.Category, error)
	GetByName(name string) (*models.Category, error)
	List(onlyActive, withSubcategories bool) ([]models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id uint) error
	CountProducts(id uint) (int64, error)

	GetSubcategoryByID(id uint) (*models.Subcategory, error)
	GetSubcategoryByName(categoryID uint, name string) (*models.Subcategory, error)
	ListSubcategories(categoryID uint, onlyActive bool) ([]models.Subcategory, error)
	CreateSubcategory(sub *models.Subcategory) error
	UpdateSubcategory(sub *models.Subcategory) error
	DeleteSubcategory(id uint) error
	CountSubcategoryProducts(id uint) (int64, error)
}

// GormCategoryRepository GORM 实现
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓库
func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// GetByID 根据 ID 获取分类
func (r *GormCategoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// GetByName 根据名称获取分类（大小写不敏感）
func (r *GormCategoryRepository) GetByName(name string) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("LOWER(name) = LOWER(?)", name).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// List 获取分类列表
func (r *GormCategoryRepository) List(onlyActive, withSubcategories bool) ([]models.Category, error) {
	query := r.db.Model(&models.Category{})
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	if withSubcategories {
		if onlyActive {
			query = query.Preload("Subcategories", "is_active = ?", true)
		} else {
			query = query.Preload("Subcategories")
		}
	}

	categories := make([]models.Category, 0)
	if err := query.Order("sort_order ASC, id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Create 创建分类
func (r *GormCategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

// Update 更新分类
func (r *GormCategoryRepository) Update(category *models.Category) error {
	return r.db.Save(category).Error
}

// Delete 删除分类（软删除）
func (r *GormCategoryRepository) Delete(id uint) error {
	return r.db.Delete(&models.Category{}, id).Error
}

// CountProducts 统计分类下的商品数
func (r *GormCategoryRepository) CountProducts(id uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Where("category_id = ?", id).Count(&count).Error
	return count, err
}

// GetSubcategoryByID 根据 ID 获取子分类
func (r *GormCategoryRepository) GetSubcategoryByID(id uint) (*models.Subcategory, error) {
	var sub models.Subcategory
	if err := r.db.First(&sub, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

// GetSubcategoryByName 根据分类与名称获取子分类（大小写不敏感）
func (r *GormCategoryRepository) GetSubcategoryByName(categoryID uint, name string) (*models.Subcategory, error) {
	var sub models.Subcategory
	if err := r.db.Where("category_id = ? AND LOWER(name) = LOWER(?)", categoryID, name).
		First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

// ListSubcategories 获取子分类列表
func (r *GormCategoryRepository) ListSubcategories(categoryID uint, onlyActive bool) ([]models.Subcategory, error) {
	query := r.db.Model(&models.Subcategory{})
	if categoryID > 0 {
		query = query.Where("category_id = ?", categoryID)
	}
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}

	subs := make([]models.Subcategory, 0)
	if err := query.Order("id ASC").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// CreateSubcategory 创建子分类
func (r *GormCategoryRepository) CreateSubcategory(sub *models.Subcategory) error {
	return r.db.Create(sub).Error
}

// UpdateSubcategory 更新子分类
func (r *GormCategoryRepository) UpdateSubcategory(sub *models.Subcategory) error {
	return r.db.Save(sub).Error
}

// DeleteSubcategory 删除子分类（软删除）
func (r *GormCategoryRepository) DeleteSubcategory(id uint) error {
	return r.db.Delete(&models.Subcategory{}, id).Error
}

// CountSubcategoryProducts 统计子分类下的商品数
func (r *GormCategoryRepository) CountSubcategoryProducts(id uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Where("subcategory_id = ?", id).Count(&count).Error
	return count, err
}
