package models

import (
	"time"

	"gorm.io/gorm"
)

// CarouselImage 首页轮播图
// 上限与展示顺序唯一性由服务层保证（软删除行不占位）。
type CarouselImage struct {
	ID        uint           `gorm:"primarykey" json:"id"`                    // 主键
	Title     string         `gorm:"type:varchar(120);not null" json:"title"` // 标题
	Image     string         `gorm:"type:varchar(500);not null" json:"image"` // 图片 URL
	LinkURL   string         `gorm:"type:varchar(1000)" json:"link_url"`      // 跳转链接
	SortOrder int            `gorm:"not null;index" json:"sort_order"`        // 展示顺序（1-5）
	IsActive  bool           `gorm:"not null;index" json:"is_active"`         // 是否启用
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                 // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                              // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                          // 软删除
}

// TableName 指定表名
func (CarouselImage) TableName() string {
	return "carousel_images"
}
