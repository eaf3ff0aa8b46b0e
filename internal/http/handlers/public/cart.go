package public

import (
	"errors"
	"strconv"

	"github.com/petshop-next/internal/http/response"
	"github.com/petshop-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetCart 获取购物车汇总
func (h *Handler) GetCart(c *gin.Context) {
	owner, ok := resolveCartOwner(c)
	if !ok {
		return
	}

	summary, err := h.CartService.Get(owner)
	if err != nil {
		respondError(c, response.CodeInternal, "error.list_failed", err)
		return
	}
	response.Success(c, summary)
}

// CartItemRequest 购物车项请求
type CartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// AddCartItem 添加商品到购物车
func (h *Handler) AddCartItem(c *gin.Context) {
	owner, ok := resolveCartOwner(c)
	if !ok {
		return
	}

	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	item, err := h.CartService.AddItem(owner, req.ProductID, req.Quantity)
	if err != nil {
		h.respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"item": item})
}

// UpdateCartItem 修改购物车内商品数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	owner, ok := resolveCartOwner(c)
	if !ok {
		return
	}

	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	var req struct {
		Quantity int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	item, err := h.CartService.UpdateQuantity(owner, uint(productID), req.Quantity)
	if err != nil {
		h.respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"item": item})
}

// RemoveCartItem 从购物车移除商品
func (h *Handler) RemoveCartItem(c *gin.Context) {
	owner, ok := resolveCartOwner(c)
	if !ok {
		return
	}

	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.CartService.RemoveItem(owner, uint(productID)); err != nil {
		h.respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"removed": true})
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	owner, ok := resolveCartOwner(c)
	if !ok {
		return
	}

	if err := h.CartService.Clear(owner); err != nil {
		respondError(c, response.CodeInternal, "error.delete_failed", err)
		return
	}
	response.Success(c, gin.H{"cleared": true})
}

func (h *Handler) respondCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrQuantityInvalid):
		respondError(c, response.CodeBadRequest, "error.quantity_invalid", nil)
	case errors.Is(err, service.ErrInsufficientStock):
		respondError(c, response.CodeBadRequest, "error.insufficient_stock", nil)
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "error.cart_item_not_found", nil)
	default:
		respondError(c, response.CodeInternal, "error.internal", err)
	}
}
