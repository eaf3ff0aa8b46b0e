package provider

import (
	"github.com/petshop-next/internal/authz"
	"github.com/petshop-next/internal/cache"
	"github.com/petshop-next/internal/config"
	"github.com/petshop-next/internal/logger"
	"github.com/petshop-next/internal/models"
	"github.com/petshop-next/internal/queue"
	"github.com/petshop-next/internal/repository"
	"github.com/petshop-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo            repository.AdminRepository
	UserRepo             repository.UserRepository
	VerificationCodeRepo repository.VerificationCodeRepository
	RefreshTokenRepo     repository.RefreshTokenRepository
	CategoryRepo         repository.CategoryRepository
	ProductRepo          repository.ProductRepository
	InventoryRepo        repository.InventoryRepository
	CartRepo             repository.CartRepository
	OrderRepo            repository.OrderRepository
	CarouselRepo         repository.CarouselRepository
	AuthzAuditLogRepo    repository.AuthzAuditLogRepository

	// Services
	AuthzService      *authz.Service
	AuthService       *service.AuthService
	TokenService      *service.TokenService
	UserAuthService   *service.UserAuthService
	UserAdminService  *service.UserAdminService
	EmailService      *service.EmailService
	CaptchaService    *service.CaptchaService
	CategoryService   *service.CategoryService
	ProductService    *service.ProductService
	InventoryService  *service.InventoryService
	CartService       *service.CartService
	OrderService      *service.OrderService
	CarouselService   *service.CarouselService
	AuthzAuditService *service.AuthzAuditService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.VerificationCodeRepo = repository.NewVerificationCodeRepository(db)
	c.RefreshTokenRepo = repository.NewRefreshTokenRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.InventoryRepo = repository.NewInventoryRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.CarouselRepo = repository.NewCarouselRepository(db)
	c.AuthzAuditLogRepo = repository.NewAuthzAuditLogRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.TokenService = service.NewTokenService(c.Config)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo, c.VerificationCodeRepo, c.RefreshTokenRepo, c.TokenService, c.QueueClient)
	c.UserAdminService = service.NewUserAdminService(c.UserRepo, c.OrderRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.ProductService = service.NewProductService(c.Config, c.ProductRepo, c.CategoryRepo, c.QueueClient)
	c.InventoryService = service.NewInventoryService(c.Config, c.InventoryRepo, c.ProductRepo, c.QueueClient)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo, c.QueueClient)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.CartRepo, c.ProductRepo, c.InventoryService, c.QueueClient)
	c.CarouselService = service.NewCarouselService(c.Config, c.CarouselRepo, c.QueueClient)
	c.AuthzAuditService = service.NewAuthzAuditService(c.AuthzAuditLogRepo)
}
