package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID            uint           `gorm:"primarykey" json:"id"`                         // 主键
	CategoryID    uint           `gorm:"not null;index" json:"category_id"`            // 分类ID
	SubcategoryID *uint          `gorm:"index" json:"subcategory_id,omitempty"`        // 子分类ID
	Name          string         `gorm:"type:varchar(100);not null;index" json:"name"` // 名称
	Description   string         `gorm:"type:text" json:"description"`                 // 描述
	Price         Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`
	WeightGrams   int            `gorm:"not null;default:0" json:"weight_grams"`  // 净重（克）
	StockQuantity int            `gorm:"not null;default:0" json:"stock_quantity"` // 当前库存
	Images        StringArray    `gorm:"type:json" json:"images"`                 // 图片 URL 数组
	IsActive      bool           `gorm:"not null;index" json:"is_active"`         // 是否上架
	SortOrder     int            `gorm:"default:0;index" json:"sort_order"`       // 排序权重
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                 // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                              // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                          // 软删除时间

	// 关联
	Category    Category     `gorm:"foreignKey:CategoryID" json:"category,omitempty"`       // 分类信息
	Subcategory *Subcategory `gorm:"foreignKey:SubcategoryID" json:"subcategory,omitempty"` // 子分类信息
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// StockStatus 根据低库存阈值返回库存状态
func (p *Product) StockStatus(lowStockThreshold int) string {
	switch {
	case p.StockQuantity <= 0:
		return "out_of_stock"
	case p.StockQuantity <= lowStockThreshold:
		return "low_stock"
	default:
		return "in_stock"
	}
}
