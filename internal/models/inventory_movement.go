package models

import "time"

// InventoryMovement 库存流水表
type InventoryMovement struct {
	ID         uint      `gorm:"primarykey" json:"id"`                        // 主键
	ProductID  uint      `gorm:"index;not null" json:"product_id"`            // 商品ID
	Type       string    `gorm:"type:varchar(20);index;not null" json:"type"` // 流水类型（restock/sale/adjustment）
	Quantity   int       `gorm:"not null" json:"quantity"`                    // 变动数量（入库为正，出库为负）
	StockAfter int       `gorm:"not null" json:"stock_after"`                 // 变动后库存
	Note       string    `gorm:"type:varchar(255)" json:"note"`               // 备注
	AdminID    *uint     `gorm:"index" json:"admin_id,omitempty"`             // 操作管理员
	CreatedAt  time.Time `gorm:"index" json:"created_at"`                     // 创建时间
}

// TableName 指定表名
func (InventoryMovement) TableName() string {
	return "inventory_movements"
}
