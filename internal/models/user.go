package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表
type User struct {
	ID                  uint           `gorm:"primarykey" json:"id"`                      // 主键
	Email               string         `gorm:"uniqueIndex;not null" json:"email"`         // 邮箱（统一小写存储）
	PasswordHash        string         `gorm:"not null" json:"-"`                         // 密码哈希（不返回给前端）
	Name                string         `gorm:"type:varchar(120);not null" json:"name"`    // 姓名
	Cedula              string         `gorm:"type:varchar(20);index" json:"cedula"`      // 身份证号
	Phone               string         `gorm:"type:varchar(20)" json:"phone"`             // 联系电话
	ShippingAddress     string         `gorm:"type:varchar(255)" json:"shipping_address"` // 收货地址
	PetPreference       string         `gorm:"type:varchar(10)" json:"pet_preference"`    // 宠物偏好（dogs/cats/both）
	Locale              string         `gorm:"default:'es-CO'" json:"locale"`             // 语言偏好
	IsActive            bool           `gorm:"not null;default:false;index" json:"is_active"`
	EmailVerifiedAt     *time.Time     `json:"email_verified_at"`           // 邮箱验证时间
	FailedLoginAttempts int            `gorm:"not null;default:0" json:"-"` // 连续登录失败次数
	LockedUntil         *time.Time     `gorm:"index" json:"-"`              // 锁定截止时间
	TokenVersion        uint64         `gorm:"not null;default:0" json:"-"` // Token 版本（用于全量失效）
	TokenInvalidBefore  *time.Time     `gorm:"index" json:"-"`              // 该时间点前签发的 Token 失效
	LastLoginAt         *time.Time     `json:"last_login_at"`               // 最后登录时间
	CreatedAt           time.Time      `gorm:"index" json:"created_at"`     // 创建时间
	UpdatedAt           time.Time      `gorm:"index" json:"updated_at"`     // 更新时间
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`              // 软删除时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// IsLocked 判断当前是否处于锁定期内
func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && u.LockedUntil.After(now)
}
