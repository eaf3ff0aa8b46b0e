package queue

import (
	"encoding/json"

	"github.com/petshop-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskEmailVerifyCode 注册验证码邮件任务
	TaskEmailVerifyCode = constants.TaskEmailVerifyCode
	// TaskEmailOrderStatus 订单状态邮件通知任务
	TaskEmailOrderStatus = constants.TaskEmailOrderStatus
	// TaskCatalogSync 商品目录同步任务
	TaskCatalogSync = constants.TaskCatalogSync
	// TaskInventorySync 库存同步任务
	TaskInventorySync = constants.TaskInventorySync
	// TaskInventoryAlert 低库存告警任务
	TaskInventoryAlert = constants.TaskInventoryAlert
	// TaskCartItemChanged 购物车变更任务
	TaskCartItemChanged = constants.TaskCartItemChanged
	// TaskCarouselChanged 轮播图变更任务
	TaskCarouselChanged = constants.TaskCarouselChanged
)

// VerifyCodeEmailPayload 验证码邮件任务载荷
// 邮件内容由 worker 端根据用户 locale 渲染，验证码明文只经队列传递
type VerifyCodeEmailPayload struct {
	UserID  uint   `json:"user_id"`
	Email   string `json:"email"`
	Code    string `json:"code"`
	Purpose string `json:"purpose"`
	Locale  string `json:"locale"`
}

// OrderStatusEmailPayload 订单状态邮件任务载荷
type OrderStatusEmailPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// CatalogSyncPayload 商品目录同步任务载荷
type CatalogSyncPayload struct {
	ProductID uint   `json:"product_id"`
	Action    string `json:"action"`
}

// InventorySyncPayload 库存同步任务载荷
type InventorySyncPayload struct {
	ProductID  uint   `json:"product_id"`
	StockAfter int    `json:"stock_after"`
	Movement   string `json:"movement"`
}

// InventoryAlertPayload 低库存告警任务载荷
type InventoryAlertPayload struct {
	ProductID uint `json:"product_id"`
	Stock     int  `json:"stock"`
	Threshold int  `json:"threshold"`
}

// CartItemChangedPayload 购物车变更任务载荷
type CartItemChangedPayload struct {
	UserID    uint   `json:"user_id"`
	SessionID string `json:"session_id"`
	ProductID uint   `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Action    string `json:"action"`
}

// CarouselChangedPayload 轮播图变更任务载荷
type CarouselChangedPayload struct {
	ImageID uint   `json:"image_id"`
	Action  string `json:"action"`
}

// NewVerifyCodeEmailTask 创建验证码邮件任务
func NewVerifyCodeEmailTask(payload VerifyCodeEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskEmailVerifyCode, body), nil
}

// NewOrderStatusEmailTask 创建订单状态邮件任务
func NewOrderStatusEmailTask(payload OrderStatusEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskEmailOrderStatus, body), nil
}

// NewCatalogSyncTask 创建商品目录同步任务
func NewCatalogSyncTask(payload CatalogSyncPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCatalogSync, body), nil
}

// NewInventorySyncTask 创建库存同步任务
func NewInventorySyncTask(payload InventorySyncPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskInventorySync, body), nil
}

// NewInventoryAlertTask 创建低库存告警任务
func NewInventoryAlertTask(payload InventoryAlertPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskInventoryAlert, body), nil
}

// NewCartItemChangedTask 创建购物车变更任务
func NewCartItemChangedTask(payload CartItemChangedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCartItemChanged, body), nil
}

// NewCarouselChangedTask 创建轮播图变更任务
func NewCarouselChangedTask(payload CarouselChangedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCarouselChanged, body), nil
}
