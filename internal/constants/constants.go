package constants

// 订单状态常量
const (
	OrderStatusPending   = "pending"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCanceled  = "canceled"
)

// 库存流水类型常量
const (
	InventoryMovementRestock    = "restock"
	InventoryMovementSale       = "sale"
	InventoryMovementAdjustment = "adjustment"
)

// 商品库存状态常量
const (
	ProductStockStatusInStock    = "in_stock"
	ProductStockStatusLowStock   = "low_stock"
	ProductStockStatusOutOfStock = "out_of_stock"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
	UserStatusLocked   = "locked"
)

// 用户宠物偏好常量
const (
	PetPreferenceDogs = "dogs"
	PetPreferenceCats = "cats"
	PetPreferenceBoth = "both"
)

// 验证码用途常量
const (
	VerifyPurposeRegister = "register"
	VerifyPurposeReset    = "reset"
)

// 验证码提供方常量
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// 验证码校验场景常量
const (
	CaptchaSceneLogin            = "login"
	CaptchaSceneRegisterSendCode = "register_send_code"
	CaptchaSceneAdminLogin       = "admin_login"
)

// 管理员角色常量
const (
	AdminRoleSuper   = "super"
	AdminRoleOps     = "ops"
	AdminRoleSupport = "support"
)

// 队列常量
const (
	QueueDefault         = "default"
	TaskEmailVerifyCode  = "email:verify_code"
	TaskEmailOrderStatus = "email:order_status"
	TaskCatalogSync      = "catalog:sync"
	TaskInventorySync    = "inventory:sync"
	TaskInventoryAlert   = "inventory:low_stock"
	TaskCartItemChanged  = "cart:item_changed"
	TaskCarouselChanged  = "carousel:changed"
)

// 目录同步动作常量
const (
	CatalogActionUpsert = "upsert"
	CatalogActionDelete = "delete"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "ps"
)

// 轮播图数量上限
const (
	CarouselMaxImages = 5
)

// 站点语言常量
const (
	LocaleEsCO = "es-CO"
	LocaleEnUS = "en-US"
)

// 支持的站点语言顺序（含回退顺序）
var SupportedLocales = []string{LocaleEsCO, LocaleEnUS}
