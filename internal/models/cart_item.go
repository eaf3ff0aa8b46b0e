package models

import (
	"time"

	"gorm.io/gorm"
)

// CartItem 购物车项
// 归属用户（user_id > 0）或匿名会话（session_id 非空），二者取其一。
type CartItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                                              // 主键
	UserID    uint           `gorm:"not null;default:0;uniqueIndex:idx_cart_owner_product" json:"user_id"`              // 用户ID（匿名为 0）
	SessionID string         `gorm:"type:varchar(64);not null;default:'';uniqueIndex:idx_cart_owner_product" json:"session_id"` // 匿名会话ID
	ProductID uint           `gorm:"not null;uniqueIndex:idx_cart_owner_product" json:"product_id"`                     // 商品ID
	Quantity  int            `gorm:"not null" json:"quantity"`                                                          // 数量
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                                                           // 创建时间
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`                                                           // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                                                    // 软删除时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
