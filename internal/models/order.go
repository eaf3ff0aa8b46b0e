package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID              uint           `gorm:"primarykey" json:"id"`                         // 主键
	OrderNo         string         `gorm:"uniqueIndex;not null" json:"order_no"`         // 订单编号
	UserID          uint           `gorm:"index;not null" json:"user_id"`                // 用户ID
	RecipientName   string         `gorm:"type:varchar(120);not null" json:"recipient_name"` // 收件人
	ShippingAddress string         `gorm:"type:varchar(255);not null" json:"shipping_address"` // 收货地址
	Phone           string         `gorm:"type:varchar(20);not null" json:"phone"`       // 联系电话
	Status          string         `gorm:"index;not null" json:"status"`                 // 订单状态（pending/shipped/delivered/canceled）
	TotalAmount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"` // 订单总额
	ClientIP        string         `gorm:"type:varchar(64)" json:"client_ip,omitempty"`  // 下单客户端IP
	ShippedAt       *time.Time     `gorm:"index" json:"shipped_at"`                      // 发货时间
	DeliveredAt     *time.Time     `gorm:"index" json:"delivered_at"`                    // 送达时间
	CanceledAt      *time.Time     `gorm:"index" json:"canceled_at"`                     // 取消时间
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                      // 创建时间
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                      // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                               // 软删除时间

	Items      []OrderItem      `gorm:"foreignKey:OrderID" json:"items,omitempty"`       // 订单项
	StatusLogs []OrderStatusLog `gorm:"foreignKey:OrderID" json:"status_logs,omitempty"` // 状态变更记录
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// OrderItem 订单项表（商品快照）
type OrderItem struct {
	ID          uint           `gorm:"primarykey" json:"id"`                              // 主键
	OrderID     uint           `gorm:"index;not null" json:"order_id"`                    // 订单ID
	ProductID   uint           `gorm:"index;not null" json:"product_id"`                  // 商品ID
	ProductName string         `gorm:"type:varchar(100);not null" json:"product_name"`    // 商品名称快照
	UnitPrice   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"` // 单价快照
	Quantity    int            `gorm:"not null" json:"quantity"`                          // 数量
	TotalPrice  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"` // 小计
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                           // 创建时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                    // 软删除时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}

// OrderStatusLog 订单状态变更审计记录
type OrderStatusLog struct {
	ID         uint      `gorm:"primarykey" json:"id"`                              // 主键
	OrderID    uint      `gorm:"index;not null" json:"order_id"`                    // 订单ID
	FromStatus string    `gorm:"type:varchar(20);not null" json:"from_status"`      // 原状态
	ToStatus   string    `gorm:"type:varchar(20);not null" json:"to_status"`        // 新状态
	AdminID    *uint     `gorm:"index" json:"admin_id,omitempty"`                   // 操作管理员
	Note       string    `gorm:"type:varchar(255)" json:"note"`                     // 备注
	CreatedAt  time.Time `gorm:"index" json:"created_at"`                           // 创建时间
}

// TableName 指定表名
func (OrderStatusLog) TableName() string {
	return "order_status_logs"
}
