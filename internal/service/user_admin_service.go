package service

import (
	"context"
	"time"

	"github.com/petshop-next/internal/cache"
	"github.com/petshop-next/internal/models"
	"github.com/petshop-next/internal/repository"

	"gorm.io/gorm"
)

// UserAdminService 后台客户管理服务
type UserAdminService struct {
	userRepo  repository.UserRepository
	orderRepo repository.OrderRepository
}

// NewUserAdminService 创建客户管理服务
func NewUserAdminService(userRepo repository.UserRepository, orderRepo repository.OrderRepository) *UserAdminService {
	return &UserAdminService{
		userRepo:  userRepo,
		orderRepo: orderRepo,
	}
}

// List 分页查询客户
func (s *UserAdminService) List(filter repository.UserListFilter) ([]models.User, int64, error) {
	return s.userRepo.List(filter)
}

// GetDetail 客户详情及其订单
func (s *UserAdminService) GetDetail(userID uint) (*models.User, []models.Order, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrNotFound
	}
	orders, _, err := s.orderRepo.List(repository.OrderListFilter{UserID: userID, PageSize: 50})
	if err != nil {
		return nil, nil, err
	}
	return user, orders, nil
}

// SetActive 启用/停用客户
// 停用时递增 TokenVersion 并吊销刷新令牌，已签发的访问令牌随之失效。
func (s *UserAdminService) SetActive(userID uint, active bool) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	if user.IsActive == active {
		return user, nil
	}

	now := time.Now()
	user.IsActive = active
	user.UpdatedAt = now
	if !active {
		user.TokenVersion++
		user.TokenInvalidBefore = &now
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(user).Error; err != nil {
			return err
		}
		if active {
			return nil
		}
		return tx.Model(&models.RefreshToken{}).
			Where("user_id = ? AND revoked = ?", user.ID, false).
			Update("revoked", true).Error
	})
	if err != nil {
		return nil, err
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))
	return user, nil
}
