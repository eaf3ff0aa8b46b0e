package models

import "time"

// RefreshToken 刷新令牌记录
// 令牌原文只经手不落库，持久化 SHA-256 摘要。
type RefreshToken struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                 // 主键
	UserID    uint      `gorm:"index;not null" json:"user_id"`                        // 关联用户ID
	TokenHash string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"-"`       // 令牌摘要
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`                     // 过期时间
	Revoked   bool      `gorm:"not null;default:false;index" json:"revoked"`          // 是否已吊销
	ClientIP  string    `gorm:"type:varchar(64)" json:"client_ip,omitempty"`          // 签发时客户端IP
	UserAgent string    `gorm:"type:varchar(255)" json:"user_agent,omitempty"`        // 签发时 User-Agent
	CreatedAt time.Time `gorm:"index" json:"created_at"`                              // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                           // 更新时间
}

// TableName 指定表名
func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

// Usable 判断令牌是否仍可用
func (t *RefreshToken) Usable(now time.Time) bool {
	return !t.Revoked && t.ExpiresAt.After(now)
}
