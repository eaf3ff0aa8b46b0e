package repository

import (
	"errors"

	"github.com/petshop-next/internal/models"

	"gorm.io/gorm"
)

// CartOwner 购物车归属：登录用户或匿名会话
type CartOwner struct {
	UserID    uint
	SessionID string
}

// ForUser 登录用户归属
func ForUser(userID uint) CartOwner {
	return CartOwner{UserID: userID}
}

// ForSession 匿名会话归属
func ForSession(sessionID string) CartOwner {
	return CartOwner{SessionID: sessionID}
}

// CartRepository 购物车数据访问接口
type CartRepository interface {
	ListByOwner(owner CartOwner) ([]models.CartItem, error)
	GetByOwnerAndProduct(owner CartOwner, productID uint) (*models.CartItem, error)
	Create(item *models.CartItem) error
	UpdateQuantity(id uint, quantity int) error
	DeleteByOwnerAndProduct(owner CartOwner, productID uint) error
	ClearByOwner(owner CartOwner) error
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

func ownerScope(query *gorm.DB, owner CartOwner) *gorm.DB {
	return query.Where("user_id = ? AND session_id = ?", owner.UserID, owner.SessionID)
}

// ListByOwner 获取购物车项
func (r *GormCartRepository) ListByOwner(owner CartOwner) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := ownerScope(r.db.Preload("Product"), owner).
		Order("updated_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetByOwnerAndProduct 获取单个购物车项
func (r *GormCartRepository) GetByOwnerAndProduct(owner CartOwner, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := ownerScope(r.db, owner).Where("product_id = ?", productID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Create 创建购物车项
func (r *GormCartRepository) Create(item *models.CartItem) error {
	return r.db.Create(item).Error
}

// UpdateQuantity 更新购物车项数量
func (r *GormCartRepository) UpdateQuantity(id uint, quantity int) error {
	return r.db.Model(&models.CartItem{}).
		Where("id = ?", id).
		Update("quantity", quantity).Error
}

// DeleteByOwnerAndProduct 删除购物车项
func (r *GormCartRepository) DeleteByOwnerAndProduct(owner CartOwner, productID uint) error {
	return ownerScope(r.db, owner).Where("product_id = ?", productID).Delete(&models.CartItem{}).Error
}

// ClearByOwner 清空购物车
func (r *GormCartRepository) ClearByOwner(owner CartOwner) error {
	return ownerScope(r.db, owner).Delete(&models.CartItem{}).Error
}
