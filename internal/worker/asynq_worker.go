package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hibiken/asynq"

	"github.com/petshop-next/internal/logger"
	"github.com/petshop-next/internal/provider"
	"github.com/petshop-next/internal/queue"
	"github.com/petshop-next/internal/service"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建任务消费者
func NewConsumer(container *provider.Container) *Consumer {
	return &Consumer{Container: container}
}

// Register 注册任务处理函数
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}

	mux.HandleFunc(queue.TaskEmailVerifyCode, c.handleVerifyCodeEmail)
	mux.HandleFunc(queue.TaskEmailOrderStatus, c.handleOrderStatusEmail)
	mux.HandleFunc(queue.TaskCatalogSync, c.handleCatalogSync)
	mux.HandleFunc(queue.TaskInventorySync, c.handleInventorySync)
	mux.HandleFunc(queue.TaskInventoryAlert, c.handleInventoryAlert)
	mux.HandleFunc(queue.TaskCartItemChanged, c.handleCartItemChanged)
	mux.HandleFunc(queue.TaskCarouselChanged, c.handleCarouselChanged)
}

func (c *Consumer) handleVerifyCodeEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_verify_code_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.VerifyCodeEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_verify_code_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.Email == "" || payload.Code == "" {
		logger.Debugw("worker_verify_code_email_skip_invalid_payload", "user_id", payload.UserID)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_verify_code_email_skip_email_service_nil", "user_id", payload.UserID)
		return nil
	}

	if err := c.EmailService.SendVerifyCode(payload.Email, payload.Code, payload.Locale); err != nil {
		logger.Warnw("worker_verify_code_email_send_failed",
			"user_id", payload.UserID,
			"purpose", payload.Purpose,
			"error", err)
		return err
	}

	logger.Debugw("worker_verify_code_email_sent", "user_id", payload.UserID, "purpose", payload.Purpose)
	return nil
}

func (c *Consumer) handleOrderStatusEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_status_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderStatusEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_status_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_status_email_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}

	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_status_email_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_status_email_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}

	user, err := c.UserRepo.GetByID(order.UserID)
	if err != nil {
		logger.Warnw("worker_order_status_email_fetch_user_failed", "order_id", order.ID, "user_id", order.UserID, "error", err)
		return err
	}
	if user == nil || user.Email == "" {
		logger.Debugw("worker_order_status_email_skip_empty_receiver", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_order_status_email_skip_email_service_nil", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}

	status := payload.Status
	if status == "" {
		status = order.Status
	}
	input := service.OrderStatusEmailInput{
		OrderNo: order.OrderNo,
		Status:  status,
		Amount:  order.TotalAmount,
	}
	if err := c.EmailService.SendOrderStatusEmail(user.Email, input, user.Locale); err != nil {
		logger.Warnw("worker_order_status_email_send_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"status", status,
			"error", err)
		return err
	}

	logger.Debugw("worker_order_status_email_sent", "order_id", order.ID, "order_no", order.OrderNo, "status", status)
	return nil
}

func (c *Consumer) handleCatalogSync(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_catalog_sync_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.CatalogSyncPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_catalog_sync_unmarshal_failed", "error", err)
		return err
	}
	if payload.ProductID == 0 {
		logger.Debugw("worker_catalog_sync_skip_invalid_payload", "product_id", payload.ProductID)
		return nil
	}

	body := map[string]interface{}{
		"type":       "catalog",
		"product_id": payload.ProductID,
		"action":     payload.Action,
	}
	if err := c.postSyncWebhook(ctx, body); err != nil {
		logger.Warnw("worker_catalog_sync_failed", "product_id", payload.ProductID, "action", payload.Action, "error", err)
		return err
	}
	logger.Debugw("worker_catalog_sync_done", "product_id", payload.ProductID, "action", payload.Action)
	return nil
}

func (c *Consumer) handleInventorySync(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_inventory_sync_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.InventorySyncPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_inventory_sync_unmarshal_failed", "error", err)
		return err
	}
	if payload.ProductID == 0 {
		logger.Debugw("worker_inventory_sync_skip_invalid_payload", "product_id", payload.ProductID)
		return nil
	}

	body := map[string]interface{}{
		"type":        "inventory",
		"product_id":  payload.ProductID,
		"stock_after": payload.StockAfter,
		"movement":    payload.Movement,
	}
	if err := c.postSyncWebhook(ctx, body); err != nil {
		logger.Warnw("worker_inventory_sync_failed", "product_id", payload.ProductID, "movement", payload.Movement, "error", err)
		return err
	}
	logger.Debugw("worker_inventory_sync_done", "product_id", payload.ProductID, "movement", payload.Movement)
	return nil
}

func (c *Consumer) handleInventoryAlert(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_inventory_alert_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.InventoryAlertPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_inventory_alert_unmarshal_failed", "error", err)
		return err
	}
	if payload.ProductID == 0 {
		logger.Debugw("worker_inventory_alert_skip_invalid_payload", "product_id", payload.ProductID)
		return nil
	}

	alertEmail := ""
	if c.Config != nil {
		alertEmail = c.Config.Inventory.AlertEmail
	}
	if alertEmail == "" {
		logger.Debugw("worker_inventory_alert_skip_no_receiver", "product_id", payload.ProductID)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_inventory_alert_skip_email_service_nil", "product_id", payload.ProductID)
		return nil
	}

	if err := c.EmailService.SendInventoryAlert(alertEmail, payload.ProductID, payload.Stock, payload.Threshold); err != nil {
		logger.Warnw("worker_inventory_alert_send_failed",
			"product_id", payload.ProductID,
			"stock", payload.Stock,
			"threshold", payload.Threshold,
			"error", err)
		return err
	}

	logger.Debugw("worker_inventory_alert_sent", "product_id", payload.ProductID, "stock", payload.Stock)
	return nil
}

func (c *Consumer) handleCartItemChanged(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_cart_item_changed_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.CartItemChangedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_cart_item_changed_unmarshal_failed", "error", err)
		return err
	}

	logger.Debugw("worker_cart_item_changed",
		"user_id", payload.UserID,
		"session_id", payload.SessionID,
		"product_id", payload.ProductID,
		"quantity", payload.Quantity,
		"action", payload.Action)
	return nil
}

func (c *Consumer) handleCarouselChanged(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_carousel_changed_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.CarouselChangedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_carousel_changed_unmarshal_failed", "error", err)
		return err
	}

	logger.Debugw("worker_carousel_changed", "image_id", payload.ImageID, "action", payload.Action)
	return nil
}

// postSyncWebhook 推送同步事件到外部 webhook，未配置地址时跳过
func (c *Consumer) postSyncWebhook(ctx context.Context, body map[string]interface{}) error {
	if c.Config == nil || c.Config.Sync.WebhookURL == "" {
		logger.Debugw("worker_sync_webhook_skip_no_url")
		return nil
	}

	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	timeout := time.Duration(c.Config.Sync.TimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.Config.Sync.WebhookURL, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sync webhook returned status %d", resp.StatusCode)
	}
	return nil
}
