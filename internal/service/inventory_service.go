package service

import (
	"strings"
	"time"

	"github.com/petshop-next/internal/config"
	"github.com/petshop-next/internal/constants"
	"github.com/petshop-next/internal/logger"
	"github.com/petshop-next/internal/models"
	"github.com/petshop-next/internal/queue"
	"github.com/petshop-next/internal/repository"

	"gorm.io/gorm"
)

// InventoryService 库存业务服务
type InventoryService struct {
	cfg         *config.Config
	repo        repository.InventoryRepository
	productRepo repository.ProductRepository
	queueClient *queue.Client
}

// NewInventoryService 创建库存服务
func NewInventoryService(cfg *config.Config, repo repository.InventoryRepository, productRepo repository.ProductRepository, queueClient *queue.Client) *InventoryService {
	return &InventoryService{
		cfg:         cfg,
		repo:        repo,
		productRepo: productRepo,
		queueClient: queueClient,
	}
}

// Restock 商品进货
// 同一商品在窗口期内的进货次数受限，流水与库存在同一事务内落库。
func (s *InventoryService) Restock(productID uint, quantity int, note string, adminID *uint) (*models.InventoryMovement, error) {
	if quantity <= 0 {
		return nil, ErrQuantityInvalid
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}

	now := time.Now()
	window := time.Duration(s.restockWindowMinutes()) * time.Minute
	count, err := s.repo.CountRestocksSince(productID, now.Add(-window))
	if err != nil {
		return nil, err
	}
	if count >= int64(s.restockMaxInWindow()) {
		return nil, ErrRestockRateLimited
	}

	movement := &models.InventoryMovement{
		ProductID: productID,
		Type:      constants.InventoryMovementRestock,
		Quantity:  quantity,
		Note:      strings.TrimSpace(note),
		AdminID:   adminID,
		CreatedAt: now,
	}
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).Where("id = ?", productID).
			Update("stock_quantity", gorm.Expr("stock_quantity + ?", quantity)).Error; err != nil {
			return err
		}
		var stockAfter int
		if err := tx.Model(&models.Product{}).Where("id = ?", productID).
			Select("stock_quantity").Scan(&stockAfter).Error; err != nil {
			return err
		}
		movement.StockAfter = stockAfter
		return tx.Create(movement).Error
	})
	if err != nil {
		return nil, err
	}

	s.publishInventorySync(movement)
	return movement, nil
}

// Adjust 库存盘点调整
// quantity 为带符号的调整量，调整后的库存不允许为负。
func (s *InventoryService) Adjust(productID uint, quantity int, note string, adminID *uint) (*models.InventoryMovement, error) {
	if quantity == 0 {
		return nil, ErrQuantityInvalid
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	if product.StockQuantity+quantity < 0 {
		return nil, ErrInsufficientStock
	}

	movement := &models.InventoryMovement{
		ProductID: productID,
		Type:      constants.InventoryMovementAdjustment,
		Quantity:  quantity,
		Note:      strings.TrimSpace(note),
		AdminID:   adminID,
		CreatedAt: time.Now(),
	}
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Product{}).
			Where("id = ? AND stock_quantity + ? >= 0", productID, quantity).
			Update("stock_quantity", gorm.Expr("stock_quantity + ?", quantity))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInsufficientStock
		}
		var stockAfter int
		if err := tx.Model(&models.Product{}).Where("id = ?", productID).
			Select("stock_quantity").Scan(&stockAfter).Error; err != nil {
			return err
		}
		movement.StockAfter = stockAfter
		return tx.Create(movement).Error
	})
	if err != nil {
		return nil, err
	}

	s.publishInventorySync(movement)
	s.maybePublishLowStockAlert(productID, movement.StockAfter)
	return movement, nil
}

// ListMovements 分页查询库存流水
func (s *InventoryService) ListMovements(filter repository.MovementListFilter) ([]models.InventoryMovement, int64, error) {
	return s.repo.ListMovements(filter)
}

// ListLowStock 低库存商品列表
func (s *InventoryService) ListLowStock() ([]models.Product, error) {
	return s.productRepo.ListLowStock(s.lowStockThreshold())
}

// NotifySale 销售出库后的同步与告警（由订单服务在扣减库存后调用）
func (s *InventoryService) NotifySale(movement *models.InventoryMovement) {
	s.publishInventorySync(movement)
	s.maybePublishLowStockAlert(movement.ProductID, movement.StockAfter)
}

func (s *InventoryService) publishInventorySync(movement *models.InventoryMovement) {
	if s.queueClient == nil || movement == nil {
		return
	}
	err := s.queueClient.EnqueueInventorySync(queue.InventorySyncPayload{
		ProductID:  movement.ProductID,
		StockAfter: movement.StockAfter,
		Movement:   movement.Type,
	})
	if err != nil {
		logger.Warnw("enqueue_inventory_sync_failed", "product_id", movement.ProductID, "error", err)
	}
}

func (s *InventoryService) maybePublishLowStockAlert(productID uint, stockAfter int) {
	threshold := s.lowStockThreshold()
	if s.queueClient == nil || stockAfter > threshold {
		return
	}
	err := s.queueClient.EnqueueInventoryAlert(queue.InventoryAlertPayload{
		ProductID: productID,
		Stock:     stockAfter,
		Threshold: threshold,
	})
	if err != nil {
		logger.Warnw("enqueue_inventory_alert_failed", "product_id", productID, "error", err)
	}
}

func (s *InventoryService) lowStockThreshold() int {
	if s.cfg == nil || s.cfg.Inventory.LowStockThreshold <= 0 {
		return 5
	}
	return s.cfg.Inventory.LowStockThreshold
}

func (s *InventoryService) restockWindowMinutes() int {
	if s.cfg == nil || s.cfg.Inventory.RestockWindowMinutes <= 0 {
		return 60
	}
	return s.cfg.Inventory.RestockWindowMinutes
}

func (s *InventoryService) restockMaxInWindow() int {
	if s.cfg == nil || s.cfg.Inventory.RestockMaxInWindow <= 0 {
		return 10
	}
	return s.cfg.Inventory.RestockMaxInWindow
}
