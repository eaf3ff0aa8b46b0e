package repository

import (
	"time"

	"github.com/petshop-next/internal/models"

	"gorm.io/gorm"
)

// InventoryRepository 库存流水数据访问接口
type InventoryRepository interface {
	CreateMovement(movement *models.InventoryMovement) error
	ListMovements(filter MovementListFilter) ([]models.InventoryMovement, int64, error)
	CountRestocksSince(productID uint, since time.Time) (int64, error)
}

// GormInventoryRepository GORM 实现
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository 创建库存流水仓库
func NewInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// CreateMovement 创建库存流水
func (r *GormInventoryRepository) CreateMovement(movement *models.InventoryMovement) error {
	return r.db.Create(movement).Error
}

// ListMovements 库存流水列表（按时间倒序）
func (r *GormInventoryRepository) ListMovements(filter MovementListFilter) ([]models.InventoryMovement, int64, error) {
	query := r.db.Model(&models.InventoryMovement{})

	if filter.ProductID > 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	movements := make([]models.InventoryMovement, 0)
	if err := query.Order("created_at DESC, id DESC").Find(&movements).Error; err != nil {
		return nil, 0, err
	}
	return movements, total, nil
}

// CountRestocksSince 统计窗口内某商品的入库次数
func (r *GormInventoryRepository) CountRestocksSince(productID uint, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.InventoryMovement{}).
		Where("product_id = ? AND type = ? AND created_at >= ?", productID, "restock", since).
		Count(&count).Error
	return count, err
}
