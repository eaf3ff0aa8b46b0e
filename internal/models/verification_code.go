package models

import (
	"time"

	"gorm.io/gorm"
)

// VerificationCode 邮箱验证码记录
// 验证码本身不落库，只保存 HMAC-SHA256 摘要。
type VerificationCode struct {
	ID           uint           `gorm:"primarykey" json:"id"`           // 主键
	UserID       uint           `gorm:"index;not null" json:"user_id"`  // 关联用户ID
	Email        string         `gorm:"index;not null" json:"email"`    // 发送目标邮箱
	Purpose      string         `gorm:"index;not null" json:"purpose"`  // 用途（register/reset）
	CodeHash     string         `gorm:"not null" json:"-"`              // 验证码摘要
	ExpiresAt    time.Time      `gorm:"index" json:"expires_at"`        // 过期时间
	UsedAt       *time.Time     `gorm:"index" json:"used_at"`           // 使用时间
	AttemptCount int            `gorm:"default:0" json:"attempt_count"` // 校验失败次数
	ResendCount  int            `gorm:"default:0" json:"resend_count"`  // 重发计数（限流窗口内求和）
	SentAt       time.Time      `gorm:"index" json:"sent_at"`           // 发送时间
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`        // 创建时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                 // 软删除时间
}

// TableName 指定表名
func (VerificationCode) TableName() string {
	return "verification_codes"
}
