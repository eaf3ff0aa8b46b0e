package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
	"unicode"

	"github.com/petshop-next/internal/constants"
	"github.com/petshop-next/internal/logger"
	"github.com/petshop-next/internal/models"
	"github.com/petshop-next/internal/queue"
	"github.com/petshop-next/internal/repository"

	"gorm.io/gorm"
)

// OrderService 订单业务服务
type OrderService struct {
	repo             repository.OrderRepository
	cartRepo         repository.CartRepository
	productRepo      repository.ProductRepository
	inventoryService *InventoryService
	queueClient      *queue.Client
}

// NewOrderService 创建订单服务
func NewOrderService(repo repository.OrderRepository, cartRepo repository.CartRepository, productRepo repository.ProductRepository, inventoryService *InventoryService, queueClient *queue.Client) *OrderService {
	return &OrderService{
		repo:             repo,
		cartRepo:         cartRepo,
		productRepo:      productRepo,
		inventoryService: inventoryService,
		queueClient:      queueClient,
	}
}

// CreateOrderInput 下单输入
type CreateOrderInput struct {
	RecipientName   string
	ShippingAddress string
	Phone           string
	ClientIP        string
}

// CreateFromCart 从用户购物车下单
// 校验库存、扣减库存、写销售流水、生成订单并清空购物车，全部在一个事务内完成。
func (s *OrderService) CreateFromCart(userID uint, input CreateOrderInput) (*models.Order, error) {
	if userID == 0 {
		return nil, ErrNotFound
	}
	recipient := strings.TrimSpace(input.RecipientName)
	if recipient == "" {
		return nil, ErrMissingField
	}
	address := strings.TrimSpace(input.ShippingAddress)
	if len([]rune(address)) < 10 {
		return nil, ErrShippingAddressShort
	}
	phone := strings.TrimSpace(input.Phone)
	if !isPhoneValid(phone) {
		return nil, ErrPhoneInvalid
	}

	owner := repository.ForUser(userID)
	cartItems, err := s.cartRepo.ListByOwner(owner)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrCartEmpty
	}

	now := time.Now()
	order := &models.Order{
		OrderNo:         generateOrderNo(),
		UserID:          userID,
		RecipientName:   recipient,
		ShippingAddress: address,
		Phone:           phone,
		Status:          constants.OrderStatusPending,
		ClientIP:        strings.TrimSpace(input.ClientIP),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	var movements []*models.InventoryMovement
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		var total models.Money
		items := make([]models.OrderItem, 0, len(cartItems))
		for _, cartItem := range cartItems {
			product, err := s.productRepo.GetByID(cartItem.ProductID)
			if err != nil {
				return err
			}
			if product == nil || !product.IsActive {
				return ErrNotFound
			}

			result := tx.Model(&models.Product{}).
				Where("id = ? AND stock_quantity >= ?", cartItem.ProductID, cartItem.Quantity).
				Update("stock_quantity", gorm.Expr("stock_quantity - ?", cartItem.Quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrInsufficientStock
			}

			var stockAfter int
			if err := tx.Model(&models.Product{}).Where("id = ?", cartItem.ProductID).
				Select("stock_quantity").Scan(&stockAfter).Error; err != nil {
				return err
			}
			movement := &models.InventoryMovement{
				ProductID:  cartItem.ProductID,
				Type:       constants.InventoryMovementSale,
				Quantity:   -cartItem.Quantity,
				StockAfter: stockAfter,
				CreatedAt:  now,
			}
			if err := tx.Create(movement).Error; err != nil {
				return err
			}
			movements = append(movements, movement)

			subtotal := product.Price.MulInt(cartItem.Quantity)
			items = append(items, models.OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				UnitPrice:   product.Price,
				Quantity:    cartItem.Quantity,
				TotalPrice:  subtotal,
				CreatedAt:   now,
			})
			total = total.AddMoney(subtotal)
		}

		order.TotalAmount = total
		order.Items = items
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.OrderStatusLog{
			OrderID:    order.ID,
			FromStatus: "",
			ToStatus:   constants.OrderStatusPending,
			CreatedAt:  now,
		}).Error; err != nil {
			return err
		}
		return s.cartRepo.WithTx(tx).ClearByOwner(owner)
	})
	if err != nil {
		return nil, err
	}

	if s.inventoryService != nil {
		for _, movement := range movements {
			s.inventoryService.NotifySale(movement)
		}
	}
	s.publishStatusEmail(order.ID, order.Status)
	return order, nil
}

// GetByID 获取订单详情（含订单项与状态记录）
func (s *OrderService) GetByID(id uint) (*models.Order, error) {
	order, err := s.repo.GetByIDWithItems(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

// GetForUser 获取用户自己的订单详情
func (s *OrderService) GetForUser(userID, orderID uint) (*models.Order, error) {
	order, err := s.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrNotFound
	}
	return order, nil
}

// List 分页查询订单
func (s *OrderService) List(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.repo.List(filter)
}

// UpdateStatus 管理员变更订单状态
// 只允许合法流转；变更写入状态记录并推送通知邮件任务。
func (s *OrderService) UpdateStatus(orderID uint, newStatus string, adminID *uint, note string) (*models.Order, error) {
	normalized := strings.ToLower(strings.TrimSpace(newStatus))
	if !IsOrderStatusValid(normalized) {
		return nil, ErrOrderStatusInvalid
	}

	order, err := s.repo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	if !CanTransitionOrderStatus(order.Status, normalized) {
		return nil, ErrOrderTransition
	}

	now := time.Now()
	fromStatus := order.Status
	order.Status = normalized
	order.UpdatedAt = now
	switch normalized {
	case constants.OrderStatusShipped:
		order.ShippedAt = &now
	case constants.OrderStatusDelivered:
		order.DeliveredAt = &now
	case constants.OrderStatusCanceled:
		order.CanceledAt = &now
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.Update(order); err != nil {
			return err
		}
		return txRepo.CreateStatusLog(&models.OrderStatusLog{
			OrderID:    order.ID,
			FromStatus: fromStatus,
			ToStatus:   normalized,
			AdminID:    adminID,
			Note:       strings.TrimSpace(note),
			CreatedAt:  now,
		})
	})
	if err != nil {
		return nil, err
	}

	s.publishStatusEmail(order.ID, normalized)
	return order, nil
}

// ListStatusLogs 查询订单状态变更记录
func (s *OrderService) ListStatusLogs(orderID uint) ([]models.OrderStatusLog, error) {
	return s.repo.ListStatusLogs(orderID)
}

func (s *OrderService) publishStatusEmail(orderID uint, status string) {
	if s.queueClient == nil {
		return
	}
	err := s.queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
		OrderID: orderID,
		Status:  status,
	})
	if err != nil {
		logger.Warnw("enqueue_order_status_email_failed", "order_id", orderID, "status", status, "error", err)
	}
}

func isPhoneValid(phone string) bool {
	if len(phone) < 7 || len(phone) > 16 {
		return false
	}
	digits := 0
	for i, r := range phone {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' && i == 0:
		default:
			return false
		}
	}
	return digits >= 7 && digits <= 15
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("PS%s%s", now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(n.String())
	}
	return b.String()
}
