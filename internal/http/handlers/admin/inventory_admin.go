package admin

import (
	"errors"
	"strconv"

	"github.com/petshop-next/internal/http/response"
	"github.com/petshop-next/internal/repository"
	"github.com/petshop-next/internal/service"

	"github.com/gin-gonic/gin"
)

// RestockRequest 入库请求
type RestockRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
	Note      string `json:"note"`
}

// RestockProduct 商品入库：数量必须为正，窗口内限流。
func (h *Handler) RestockProduct(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	var req RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	movement, err := h.InventoryService.Restock(req.ProductID, req.Quantity, req.Note, &adminID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuantityInvalid):
			respondError(c, response.CodeBadRequest, "error.restock_quantity_invalid", nil)
		case errors.Is(err, service.ErrRestockRateLimited):
			respondError(c, response.CodeTooManyRequests, "error.restock_rate_limited", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.save_failed", err)
		}
		return
	}

	response.Success(c, gin.H{"movement": movement})
}

// AdjustStockRequest 库存调整请求（有符号数量）
type AdjustStockRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
	Note      string `json:"note"`
}

// AdjustStock 库存调整：正负皆可，不允许调成负库存。
func (h *Handler) AdjustStock(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	movement, err := h.InventoryService.Adjust(req.ProductID, req.Quantity, req.Note, &adminID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuantityInvalid):
			respondError(c, response.CodeBadRequest, "error.quantity_invalid", nil)
		case errors.Is(err, service.ErrInsufficientStock):
			respondError(c, response.CodeBadRequest, "error.insufficient_stock", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.save_failed", err)
		}
		return
	}

	response.Success(c, gin.H{"movement": movement})
}

// ListInventoryMovements 库存流水列表
func (h *Handler) ListInventoryMovements(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	productID, _ := strconv.ParseUint(c.Query("product_id"), 10, 32)

	movements, total, err := h.InventoryService.ListMovements(repository.MovementListFilter{
		Page:      page,
		PageSize:  pageSize,
		ProductID: uint(productID),
		Type:      c.Query("type"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.list_failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, movements, pagination)
}

// ListLowStockProducts 低库存商品列表
func (h *Handler) ListLowStockProducts(c *gin.Context) {
	products, err := h.InventoryService.ListLowStock()
	if err != nil {
		respondError(c, response.CodeInternal, "error.list_failed", err)
		return
	}
	response.Success(c, gin.H{"products": products})
}
