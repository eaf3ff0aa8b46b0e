package repository

import (
	"errors"
	"time"

	"github.com/petshop-next/internal/models"

	"gorm.io/gorm"
)

// RefreshTokenRepository 刷新令牌数据访问接口
type RefreshTokenRepository interface {
	Create(token *models.RefreshToken) error
	GetByHash(tokenHash string) (*models.RefreshToken, error)
	Revoke(id uint) error
	RevokeAllForUser(userID uint) error
	DeleteStaleBefore(cutoff time.Time) (int64, error)
}

// GormRefreshTokenRepository GORM 实现
type GormRefreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository 创建刷新令牌仓库
func NewRefreshTokenRepository(db *gorm.DB) *GormRefreshTokenRepository {
	return &GormRefreshTokenRepository{db: db}
}

// Create 创建刷新令牌
func (r *GormRefreshTokenRepository) Create(token *models.RefreshToken) error {
	return r.db.Create(token).Error
}

// GetByHash 根据摘要获取刷新令牌
func (r *GormRefreshTokenRepository) GetByHash(tokenHash string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	if err := r.db.Where("token_hash = ?", tokenHash).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &token, nil
}

// Revoke 吊销单个刷新令牌
func (r *GormRefreshTokenRepository) Revoke(id uint) error {
	return r.db.Model(&models.RefreshToken{}).
		Where("id = ?", id).
		Update("revoked", true).Error
}

// RevokeAllForUser 吊销用户全部刷新令牌
func (r *GormRefreshTokenRepository) RevokeAllForUser(userID uint) error {
	return r.db.Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Update("revoked", true).Error
}

// DeleteStaleBefore 清理过期或吊销的旧令牌，返回删除行数
func (r *GormRefreshTokenRepository) DeleteStaleBefore(cutoff time.Time) (int64, error) {
	result := r.db.
		Where("expires_at < ? OR (revoked = ? AND updated_at < ?)", cutoff, true, cutoff).
		Delete(&models.RefreshToken{})
	return result.RowsAffected, result.Error
}
