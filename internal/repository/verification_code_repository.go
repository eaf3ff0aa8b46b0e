package repository

import (
	"errors"
	"time"

	"github.com/petshop-next/internal/models"

	"gorm.io/gorm"
)

// VerificationCodeRepository 邮箱验证码数据访问接口
type VerificationCodeRepository interface {
	Create(code *models.VerificationCode) error
	GetLatest(userID uint, purpose string) (*models.VerificationCode, error)
	MarkUsed(id uint, usedAt time.Time) error
	IncrementAttempt(id uint) error
	SumResendCountSince(userID uint, purpose string, since time.Time) (int, error)
	RefreshForResend(id uint, codeHash string, expiresAt, sentAt time.Time) error
	DeleteExpiredBefore(cutoff time.Time) (int64, error)
}

// GormVerificationCodeRepository GORM 实现
type GormVerificationCodeRepository struct {
	db *gorm.DB
}

// NewVerificationCodeRepository 创建邮箱验证码仓库
func NewVerificationCodeRepository(db *gorm.DB) *GormVerificationCodeRepository {
	return &GormVerificationCodeRepository{db: db}
}

// Create 创建验证码记录
func (r *GormVerificationCodeRepository) Create(code *models.VerificationCode) error {
	return r.db.Create(code).Error
}

// GetLatest 获取用户最新的未使用验证码记录
func (r *GormVerificationCodeRepository) GetLatest(userID uint, purpose string) (*models.VerificationCode, error) {
	var record models.VerificationCode
	if err := r.db.Where("user_id = ? AND purpose = ? AND used_at IS NULL", userID, purpose).
		Order("sent_at desc, id desc").
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// MarkUsed 标记验证码已使用
func (r *GormVerificationCodeRepository) MarkUsed(id uint, usedAt time.Time) error {
	return r.db.Model(&models.VerificationCode{}).
		Where("id = ?", id).
		Update("used_at", usedAt).Error
}

// IncrementAttempt 增加校验失败次数
func (r *GormVerificationCodeRepository) IncrementAttempt(id uint) error {
	return r.db.Model(&models.VerificationCode{}).
		Where("id = ?", id).
		UpdateColumn("attempt_count", gorm.Expr("attempt_count + 1")).Error
}

// SumResendCountSince 统计窗口内的重发计数之和（含初始发送）
func (r *GormVerificationCodeRepository) SumResendCountSince(userID uint, purpose string, since time.Time) (int, error) {
	var total int64
	err := r.db.Model(&models.VerificationCode{}).
		Where("user_id = ? AND purpose = ? AND sent_at >= ?", userID, purpose, since).
		Select("COALESCE(SUM(resend_count), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return int(total), nil
}

// RefreshForResend 重发时原地刷新验证码：换摘要、续期、重发计数加一、失败次数清零
func (r *GormVerificationCodeRepository) RefreshForResend(id uint, codeHash string, expiresAt, sentAt time.Time) error {
	return r.db.Model(&models.VerificationCode{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"code_hash":     codeHash,
			"expires_at":    expiresAt,
			"sent_at":       sentAt,
			"attempt_count": 0,
			"resend_count":  gorm.Expr("resend_count + 1"),
		}).Error
}

// DeleteExpiredBefore 清理过期验证码，返回删除行数
func (r *GormVerificationCodeRepository) DeleteExpiredBefore(cutoff time.Time) (int64, error) {
	result := r.db.Unscoped().
		Where("expires_at < ?", cutoff).
		Delete(&models.VerificationCode{})
	return result.RowsAffected, result.Error
}
