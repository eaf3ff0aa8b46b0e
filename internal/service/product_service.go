package service

import (
	"strings"

	"github.com/petshop-next/internal/config"
	"github.com/petshop-next/internal/constants"
	"github.com/petshop-next/internal/logger"
	"github.com/petshop-next/internal/models"
	"github.com/petshop-next/internal/queue"
	"github.com/petshop-next/internal/repository"
)

// ProductService 商品业务服务
type ProductService struct {
	cfg          *config.Config
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	queueClient  *queue.Client
}

// NewProductService 创建商品服务
func NewProductService(cfg *config.Config, repo repository.ProductRepository, categoryRepo repository.CategoryRepository, queueClient *queue.Client) *ProductService {
	return &ProductService{
		cfg:          cfg,
		repo:         repo,
		categoryRepo: categoryRepo,
		queueClient:  queueClient,
	}
}

// ProductInput 创建/更新商品输入
type ProductInput struct {
	CategoryID    uint
	SubcategoryID *uint
	Name          string
	Description   string
	Price         string
	WeightGrams   int
	StockQuantity *int
	Images        []string
	IsActive      *bool
	SortOrder     int
}

// List 分页查询商品
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.repo.List(filter)
}

// ListHome 首页商品列表
func (s *ProductService) ListHome(limit int) ([]models.Product, error) {
	return s.repo.ListHome(limit)
}

// GetByID 根据 ID 获取商品
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	product, err := s.repo.GetByIDWithCategory(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// GetPublicByID 获取上架商品
func (s *ProductService) GetPublicByID(id uint) (*models.Product, error) {
	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, ErrNotFound
	}
	return product, nil
}

// Create 创建商品
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	entity, err := s.buildProductEntity(input, nil)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(entity); err != nil {
		return nil, err
	}
	s.publishCatalogSync(entity.ID, constants.CatalogActionUpsert)
	return entity, nil
}

// Update 更新商品
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	entity, err := s.buildProductEntity(input, existing)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(entity); err != nil {
		return nil, err
	}
	s.publishCatalogSync(entity.ID, constants.CatalogActionUpsert)
	return entity, nil
}

// Delete 删除商品
func (s *ProductService) Delete(id uint) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.publishCatalogSync(id, constants.CatalogActionDelete)
	return nil
}

// StockStatus 查询商品库存状态标签
func (s *ProductService) StockStatus(product *models.Product) string {
	return product.StockStatus(s.lowStockThreshold())
}

func (s *ProductService) buildProductEntity(input ProductInput, existing *models.Product) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrProductInvalid
	}
	price, err := models.NewMoneyFromString(strings.TrimSpace(input.Price))
	if err != nil {
		return nil, ErrProductInvalid
	}
	if price.IsNegative() {
		return nil, ErrProductInvalid
	}
	if input.WeightGrams < 0 {
		return nil, ErrProductInvalid
	}

	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	if input.SubcategoryID != nil {
		sub, err := s.categoryRepo.GetSubcategoryByID(*input.SubcategoryID)
		if err != nil {
			return nil, err
		}
		if sub == nil {
			return nil, ErrNotFound
		}
		if sub.CategoryID != input.CategoryID {
			return nil, ErrSubcategoryMismatch
		}
	}

	entity := existing
	if entity == nil {
		entity = &models.Product{IsActive: true}
	}
	entity.CategoryID = input.CategoryID
	entity.SubcategoryID = input.SubcategoryID
	entity.Name = name
	entity.Description = strings.TrimSpace(input.Description)
	entity.Price = price
	entity.WeightGrams = input.WeightGrams
	entity.SortOrder = input.SortOrder
	if input.StockQuantity != nil {
		if *input.StockQuantity < 0 {
			return nil, ErrProductInvalid
		}
		entity.StockQuantity = *input.StockQuantity
	}
	if input.Images != nil {
		entity.Images = models.StringArray(input.Images)
	}
	if input.IsActive != nil {
		entity.IsActive = *input.IsActive
	}
	return entity, nil
}

func (s *ProductService) lowStockThreshold() int {
	if s.cfg == nil || s.cfg.Inventory.LowStockThreshold <= 0 {
		return 5
	}
	return s.cfg.Inventory.LowStockThreshold
}

func (s *ProductService) publishCatalogSync(productID uint, action string) {
	if s.queueClient == nil {
		return
	}
	err := s.queueClient.EnqueueCatalogSync(queue.CatalogSyncPayload{
		ProductID: productID,
		Action:    action,
	})
	if err != nil {
		logger.Warnw("enqueue_catalog_sync_failed", "product_id", productID, "action", action, "error", err)
	}
}
