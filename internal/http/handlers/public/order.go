package public

import (
	"errors"
	"strconv"

	"github.com/petshop-next/internal/http/response"
	"github.com/petshop-next/internal/repository"
	"github.com/petshop-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateOrderRequest 下单请求
type CreateOrderRequest struct {
	RecipientName   string `json:"recipient_name" binding:"required"`
	ShippingAddress string `json:"shipping_address" binding:"required"`
	Phone           string `json:"phone" binding:"required"`
}

// CreateOrder 从购物车创建订单：校验收货信息并在事务内扣减库存。
func (h *Handler) CreateOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	order, err := h.OrderService.CreateFromCart(userID, service.CreateOrderInput{
		RecipientName:   req.RecipientName,
		ShippingAddress: req.ShippingAddress,
		Phone:           req.Phone,
		ClientIP:        c.ClientIP(),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingField):
			respondError(c, response.CodeBadRequest, "error.missing_field", nil)
		case errors.Is(err, service.ErrShippingAddressShort):
			respondError(c, response.CodeBadRequest, "error.shipping_address_invalid", nil)
		case errors.Is(err, service.ErrPhoneInvalid):
			respondError(c, response.CodeBadRequest, "error.phone_invalid", nil)
		case errors.Is(err, service.ErrCartEmpty):
			respondError(c, response.CodeBadRequest, "error.cart_empty", nil)
		case errors.Is(err, service.ErrInsufficientStock):
			respondError(c, response.CodeBadRequest, "error.insufficient_stock", nil)
		default:
			respondError(c, response.CodeInternal, "error.create_failed", err)
		}
		return
	}

	response.Success(c, gin.H{"order": order})
}

// ListMyOrders 当前用户订单列表
func (h *Handler) ListMyOrders(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	orders, total, err := h.OrderService.List(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
		Status:   c.Query("status"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.list_failed", err)
		return
	}

	response.Success(c, gin.H{
		"orders":    orders,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetMyOrder 当前用户订单详情（含订单项与状态记录）
func (h *Handler) GetMyOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	order, err := h.OrderService.GetForUser(userID, uint(orderID))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.Success(c, gin.H{"order": order})
}
