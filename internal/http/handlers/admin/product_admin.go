package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/petshop-next/internal/http/response"
	"github.com/petshop-next/internal/repository"
	"github.com/petshop-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductRequest 商品请求
type ProductRequest struct {
	CategoryID    uint     `json:"category_id" binding:"required"`
	SubcategoryID *uint    `json:"subcategory_id"`
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	Price         string   `json:"price" binding:"required"`
	WeightGrams   int      `json:"weight_grams"`
	StockQuantity *int     `json:"stock_quantity"`
	Images        []string `json:"images"`
	IsActive      *bool    `json:"is_active"`
	SortOrder     int      `json:"sort_order"`
}

func (r ProductRequest) toServiceInput() service.ProductInput {
	return service.ProductInput{
		CategoryID:    r.CategoryID,
		SubcategoryID: r.SubcategoryID,
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		WeightGrams:   r.WeightGrams,
		StockQuantity: r.StockQuantity,
		Images:        r.Images,
		IsActive:      r.IsActive,
		SortOrder:     r.SortOrder,
	}
}

// GetAdminProducts 商品列表 (Admin)
func (h *Handler) GetAdminProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 32)
	subcategoryID, _ := strconv.ParseUint(c.Query("subcategory_id"), 10, 32)

	products, total, err := h.ProductService.List(repository.ProductListFilter{
		Page:          page,
		PageSize:      pageSize,
		CategoryID:    uint(categoryID),
		SubcategoryID: uint(subcategoryID),
		Search:        strings.TrimSpace(c.Query("search")),
		InStockOnly:   c.Query("in_stock") == "true",
		WithCategory:  true,
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
	response.SuccessWithPage(c, products, pagination)
}

// GetAdminProduct 商品详情 (Admin)
func (h *Handler) GetAdminProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.ProductService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.Success(c, gin.H{
		"product":      product,
		"stock_status": h.ProductService.StockStatus(product),
	})
}

// CreateAdminProduct 创建商品
func (h *Handler) CreateAdminProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	product, err := h.ProductService.Create(req.toServiceInput())
	if err != nil {
		h.respondProductError(c, err, "error.create_failed")
		return
	}
	response.Success(c, gin.H{"product": product})
}

// UpdateAdminProduct 更新商品
func (h *Handler) UpdateAdminProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	product, err := h.ProductService.Update(id, req.toServiceInput())
	if err != nil {
		h.respondProductError(c, err, "error.update_failed")
		return
	}
	response.Success(c, gin.H{"product": product})
}

// DeleteAdminProduct 删除商品
func (h *Handler) DeleteAdminProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.ProductService.Delete(id); err != nil {
		h.respondProductError(c, err, "error.delete_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func (h *Handler) respondProductError(c *gin.Context, err error, fallbackKey string) {
	switch {
	case errors.Is(err, service.ErrProductInvalid):
		respondError(c, response.CodeBadRequest, "error.product_invalid", nil)
	case errors.Is(err, service.ErrSubcategoryMismatch):
		respondError(c, response.CodeBadRequest, "error.subcategory_mismatch", nil)
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "error.not_found", nil)
	default:
		respondError(c, response.CodeInternal, fallbackKey, err)
	}
}
