package repository

import (
	"errors"

	"github.com/petshop-next/internal/models"

	"gorm.io/gorm"
)

// CarouselRepository 首页轮播图数据访问接口
type CarouselRepository interface {
	GetByID(id uint) (*models.CarouselImage, error)
	GetBySortOrder(sortOrder int) (*models.CarouselImage, error)
	List(onlyActive bool) ([]models.CarouselImage, error)
	Count() (int64, error)
	Create(image *models.CarouselImage) error
	Update(image *models.CarouselImage) error
	Delete(id uint) error
}

// GormCarouselRepository GORM 实现
type GormCarouselRepository struct {
	db *gorm.DB
}

// NewCarouselRepository 创建轮播图仓库
func NewCarouselRepository(db *gorm.DB) *GormCarouselRepository {
	return &GormCarouselRepository{db: db}
}

// GetByID 根据 ID 获取轮播图
func (r *GormCarouselRepository) GetByID(id uint) (*models.CarouselImage, error) {
	var image models.CarouselImage
	if err := r.db.First(&image, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &image, nil
}

// GetBySortOrder 根据展示顺序获取轮播图
func (r *GormCarouselRepository) GetBySortOrder(sortOrder int) (*models.CarouselImage, error) {
	var image models.CarouselImage
	if err := r.db.Where("sort_order = ?", sortOrder).First(&image).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &image, nil
}

// List 轮播图列表（按展示顺序）
func (r *GormCarouselRepository) List(onlyActive bool) ([]models.CarouselImage, error) {
	query := r.db.Model(&models.CarouselImage{})
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	images := make([]models.CarouselImage, 0)
	if err := query.Order("sort_order ASC").Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

// Count 统计轮播图数量
func (r *GormCarouselRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.CarouselImage{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create 创建轮播图
func (r *GormCarouselRepository) Create(image *models.CarouselImage) error {
	return r.db.Create(image).Error
}

// Update 更新轮播图
func (r *GormCarouselRepository) Update(image *models.CarouselImage) error {
	return r.db.Save(image).Error
}

// Delete 删除轮播图（软删除）
func (r *GormCarouselRepository) Delete(id uint) error {
	return r.db.Delete(&models.CarouselImage{}, id).Error
}
