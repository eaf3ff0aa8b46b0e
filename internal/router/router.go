package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/petshop-next/internal/authz"
	"github.com/petshop-next/internal/cache"
	"github.com/petshop-next/internal/config"
	"github.com/petshop-next/internal/constants"
	adminhandlers "github.com/petshop-next/internal/http/handlers/admin"
	publichandlers "github.com/petshop-next/internal/http/handlers/public"
	"github.com/petshop-next/internal/http/response"
	"github.com/petshop-next/internal/logger"
	"github.com/petshop-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（商品与轮播图片）
	r.Static("/uploads", "./uploads")

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/home", publicHandler.GetHome)
			public.GET("/carousel", publicHandler.ListCarousel)
			public.GET("/categories", publicHandler.ListCategories)
			public.GET("/products", publicHandler.ListProducts)
			public.GET("/products/:id", publicHandler.GetProduct)
			public.GET("/captcha/image", publicHandler.GetCaptcha)
		}

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.UserRegister)
			auth.POST("/verify-email", publicHandler.UserVerifyEmail)
			auth.POST("/resend-code", publicHandler.UserResendCode)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
			auth.POST("/refresh", publicHandler.UserRefresh)
			auth.POST("/logout", publicHandler.UserLogout)
		}

		// 购物车：匿名会话（X-Session-ID）或登录用户
		cart := apiV1.Group("/cart")
		cart.Use(OptionalUserJWTMiddleware(cfg.Auth.SecretKey, c.UserRepo))
		{
			cart.GET("", publicHandler.GetCart)
			cart.POST("/items", publicHandler.AddCartItem)
			cart.PUT("/items/:product_id", publicHandler.UpdateCartItem)
			cart.DELETE("/items/:product_id", publicHandler.RemoveCartItem)
			cart.DELETE("", publicHandler.ClearCart)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.Auth.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.UserProfile)
			user.PUT("/me/profile", publicHandler.UserUpdateProfile)
			user.PUT("/me/password", publicHandler.UserChangePassword)
			user.POST("/orders", publicHandler.CreateOrder)
			user.GET("/orders", publicHandler.ListMyOrders)
			user.GET("/orders/:id", publicHandler.GetMyOrder)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.AdminLogin)

			// 需要鉴权的接口
			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo), AdminRBACMiddleware(c.AuthzService))
			{
				authorized.GET("/me", adminHandler.AdminProfile)
				authorized.PUT("/password", adminHandler.UpdateAdminPassword)

				// 分类管理
				authorized.GET("/categories", adminHandler.GetAdminCategories)
				authorized.POST("/categories", adminHandler.CreateAdminCategory)
				authorized.PUT("/categories/:id", adminHandler.UpdateAdminCategory)
				authorized.DELETE("/categories/:id", adminHandler.DeleteAdminCategory)
				authorized.GET("/categories/:id/subcategories", adminHandler.ListAdminSubcategories)
				authorized.POST("/categories/:id/subcategories", adminHandler.CreateAdminSubcategory)
				authorized.PUT("/subcategories/:id", adminHandler.UpdateAdminSubcategory)
				authorized.DELETE("/subcategories/:id", adminHandler.DeleteAdminSubcategory)

				// 商品管理
				authorized.GET("/products", adminHandler.GetAdminProducts)
				authorized.GET("/products/:id", adminHandler.GetAdminProduct)
				authorized.POST("/products", adminHandler.CreateAdminProduct)
				authorized.PUT("/products/:id", adminHandler.UpdateAdminProduct)
				authorized.DELETE("/products/:id", adminHandler.DeleteAdminProduct)

				// 库存管理
				authorized.POST("/inventory/restock", adminHandler.RestockProduct)
				authorized.POST("/inventory/adjust", adminHandler.AdjustStock)
				authorized.GET("/inventory/movements", adminHandler.ListInventoryMovements)
				authorized.GET("/inventory/low-stock", adminHandler.ListLowStockProducts)

				// 订单管理
				authorized.GET("/orders", adminHandler.GetAdminOrders)
				authorized.GET("/orders/:id", adminHandler.GetAdminOrder)
				authorized.PUT("/orders/:id/status", adminHandler.UpdateAdminOrderStatus)

				// 用户管理
				authorized.GET("/users", adminHandler.GetAdminUsers)
				authorized.GET("/users/:id", adminHandler.GetAdminUser)
				authorized.PUT("/users/:id/active", adminHandler.SetAdminUserActive)

				// 轮播管理
				authorized.GET("/carousel", adminHandler.GetAdminCarousel)
				authorized.POST("/carousel", adminHandler.CreateAdminCarousel)
				authorized.PUT("/carousel/:id", adminHandler.UpdateAdminCarousel)
				authorized.DELETE("/carousel/:id", adminHandler.DeleteAdminCarousel)

				// 权限管理
				authorized.GET("/authz/me", adminHandler.GetAuthzMe)
				authorized.GET("/authz/roles", adminHandler.ListAuthzRoles)
				authorized.GET("/authz/admins", adminHandler.ListAuthzAdmins)
				authorized.GET("/authz/audit-logs", adminHandler.ListAuthzAuditLogs)
				authorized.POST("/authz/admins", adminHandler.CreateAuthzAdmin)
				authorized.PUT("/authz/admins/:id", adminHandler.UpdateAuthzAdmin)
				authorized.DELETE("/authz/admins/:id", adminHandler.DeleteAuthzAdmin)
				authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildAdminPermissionCatalog(r))
				})
				authorized.POST("/authz/roles", adminHandler.CreateAuthzRole)
				authorized.DELETE("/authz/roles/:role", adminHandler.DeleteAuthzRole)
				authorized.GET("/authz/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
				authorized.POST("/authz/policies", adminHandler.GrantAuthzPolicy)
				authorized.DELETE("/authz/policies", adminHandler.RevokeAuthzPolicy)
				authorized.GET("/authz/admins/:id/roles", adminHandler.GetAuthzAdminRoles)
				authorized.PUT("/authz/admins/:id/roles", adminHandler.SetAuthzAdminRoles)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
			continue
		}
		if item.Path == "/api/v1/admin/login" {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	if segments[1] == "authz" {
		return "authz"
	}
	return segments[1]
}
