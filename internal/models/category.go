package models

import (
	"time"

	"gorm.io/gorm"
)

// Category 商品分类表
type Category struct {
	ID          uint           `gorm:"primarykey" json:"id"`                               // 主键
	Name        string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"` // 名称（服务层保证大小写不敏感唯一）
	Description string         `gorm:"type:varchar(500)" json:"description"`               // 描述
	IsActive    bool           `gorm:"not null;index" json:"is_active"`                    // 是否启用
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`                  // 排序权重
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                         // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                     // 软删除时间

	Subcategories []Subcategory `gorm:"foreignKey:CategoryID" json:"subcategories,omitempty"` // 子分类
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}

// Subcategory 商品子分类表
type Subcategory struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                                          // 主键
	CategoryID  uint           `gorm:"not null;index;uniqueIndex:idx_subcategory_category_name" json:"category_id"`   // 所属分类
	Name        string         `gorm:"type:varchar(100);not null;uniqueIndex:idx_subcategory_category_name" json:"name"` // 名称
	Description string         `gorm:"type:varchar(500)" json:"description"`                                          // 描述
	IsActive    bool           `gorm:"not null;index" json:"is_active"`                                               // 是否启用
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`                                             // 排序权重
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                                       // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                                                    // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                                                // 软删除时间
}

// TableName 指定表名
func (Subcategory) TableName() string {
	return "subcategories"
}
