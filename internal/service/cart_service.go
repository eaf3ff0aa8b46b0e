package service

import (
	"github.com/petshop-next/internal/logger"
	"github.com/petshop-next/internal/models"
	"github.com/petshop-next/internal/queue"
	"github.com/petshop-next/internal/repository"

	"gorm.io/gorm"
)

// CartService 购物车业务服务
// 购物车归属用户或匿名会话，登录时匿名车并入用户车。
type CartService struct {
	repo        repository.CartRepository
	productRepo repository.ProductRepository
	queueClient *queue.Client
}

// NewCartService 创建购物车服务
func NewCartService(repo repository.CartRepository, productRepo repository.ProductRepository, queueClient *queue.Client) *CartService {
	return &CartService{
		repo:        repo,
		productRepo: productRepo,
		queueClient: queueClient,
	}
}

// CartSummary 购物车汇总
type CartSummary struct {
	Items       []models.CartItem `json:"items"`
	TotalItems  int               `json:"total_items"`
	TotalAmount models.Money      `json:"total_amount"`
}

// Get 获取购物车汇总
func (s *CartService) Get(owner repository.CartOwner) (*CartSummary, error) {
	items, err := s.repo.ListByOwner(owner)
	if err != nil {
		return nil, err
	}
	summary := &CartSummary{Items: items}
	for _, item := range items {
		summary.TotalItems += item.Quantity
		if item.Product != nil {
			summary.TotalAmount = summary.TotalAmount.AddMoney(item.Product.Price.MulInt(item.Quantity))
		}
	}
	return summary, nil
}

// AddItem 添加商品到购物车
// 商品已在购物车中时累加数量；合计数量不能超过当前库存。
func (s *CartService) AddItem(owner repository.CartOwner, productID uint, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, ErrQuantityInvalid
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrNotFound
	}

	existing, err := s.repo.GetByOwnerAndProduct(owner, productID)
	if err != nil {
		return nil, err
	}

	total := quantity
	if existing != nil {
		total += existing.Quantity
	}
	if total > product.StockQuantity {
		return nil, ErrInsufficientStock
	}

	var item *models.CartItem
	if existing != nil {
		if err := s.repo.UpdateQuantity(existing.ID, total); err != nil {
			return nil, err
		}
		existing.Quantity = total
		item = existing
	} else {
		item = &models.CartItem{
			UserID:    owner.UserID,
			SessionID: owner.SessionID,
			ProductID: productID,
			Quantity:  quantity,
		}
		if err := s.repo.Create(item); err != nil {
			return nil, err
		}
	}

	s.publishCartChanged(owner, productID, item.Quantity, "upsert")
	return item, nil
}

// UpdateQuantity 修改购物车项数量
func (s *CartService) UpdateQuantity(owner repository.CartOwner, productID uint, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, ErrQuantityInvalid
	}
	item, err := s.repo.GetByOwnerAndProduct(owner, productID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	if quantity > product.StockQuantity {
		return nil, ErrInsufficientStock
	}

	if err := s.repo.UpdateQuantity(item.ID, quantity); err != nil {
		return nil, err
	}
	item.Quantity = quantity
	s.publishCartChanged(owner, productID, quantity, "upsert")
	return item, nil
}

// RemoveItem 移除购物车项
func (s *CartService) RemoveItem(owner repository.CartOwner, productID uint) error {
	item, err := s.repo.GetByOwnerAndProduct(owner, productID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrNotFound
	}
	if err := s.repo.DeleteByOwnerAndProduct(owner, productID); err != nil {
		return err
	}
	s.publishCartChanged(owner, productID, 0, "remove")
	return nil
}

// Clear 清空购物车
func (s *CartService) Clear(owner repository.CartOwner) error {
	if err := s.repo.ClearByOwner(owner); err != nil {
		return err
	}
	s.publishCartChanged(owner, 0, 0, "clear")
	return nil
}

// MergeSessionCart 登录后把匿名会话购物车并入用户购物车
// 同一商品数量累加并按库存截断，合并后删除会话车。失败不影响登录流程。
func (s *CartService) MergeSessionCart(sessionID string, userID uint) error {
	if sessionID == "" || userID == 0 {
		return nil
	}
	sessionOwner := repository.ForSession(sessionID)
	userOwner := repository.ForUser(userID)

	sessionItems, err := s.repo.ListByOwner(sessionOwner)
	if err != nil {
		return err
	}
	if len(sessionItems) == 0 {
		return nil
	}

	return models.DB.Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		for _, sessionItem := range sessionItems {
			product, err := s.productRepo.GetByID(sessionItem.ProductID)
			if err != nil {
				return err
			}
			if product == nil || !product.IsActive {
				continue
			}

			quantity := sessionItem.Quantity
			userItem, err := txRepo.GetByOwnerAndProduct(userOwner, sessionItem.ProductID)
			if err != nil {
				return err
			}
			if userItem != nil {
				quantity += userItem.Quantity
			}
			if quantity > product.StockQuantity {
				quantity = product.StockQuantity
			}
			if quantity <= 0 {
				continue
			}

			if userItem != nil {
				if err := txRepo.UpdateQuantity(userItem.ID, quantity); err != nil {
					return err
				}
			} else {
				item := &models.CartItem{
					UserID:    userID,
					ProductID: sessionItem.ProductID,
					Quantity:  quantity,
				}
				if err := txRepo.Create(item); err != nil {
					return err
				}
			}
		}
		return txRepo.ClearByOwner(sessionOwner)
	})
}

func (s *CartService) publishCartChanged(owner repository.CartOwner, productID uint, quantity int, action string) {
	if s.queueClient == nil {
		return
	}
	err := s.queueClient.EnqueueCartItemChanged(queue.CartItemChangedPayload{
		UserID:    owner.UserID,
		SessionID: owner.SessionID,
		ProductID: productID,
		Quantity:  quantity,
		Action:    action,
	})
	if err != nil {
		logger.Warnw("enqueue_cart_item_changed_failed", "product_id", productID, "action", action, "error", err)
	}
}
