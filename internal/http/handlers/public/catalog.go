package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/petshop-next/internal/http/response"
	"github.com/petshop-next/internal/models"
	"github.com/petshop-next/internal/repository"
	"github.com/petshop-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListCategories 获取启用的分类及子分类
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.List(true)
	if err != nil {
		respondError(c, response.CodeInternal, "error.list_failed", err)
		return
	}
	response.Success(c, gin.H{"categories": categories})
}

// ListProducts 商品列表：支持分类、子分类、关键字、价格区间与仅有货过滤
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 32)
	subcategoryID, _ := strconv.ParseUint(c.Query("subcategory_id"), 10, 32)
	inStockOnly := c.Query("in_stock") == "true" || c.Query("in_stock") == "1"

	products, total, err := h.ProductService.List(repository.ProductListFilter{
		Page:          page,
		PageSize:      pageSize,
		CategoryID:    uint(categoryID),
		SubcategoryID: uint(subcategoryID),
		Search:        strings.TrimSpace(c.Query("search")),
		PriceMin:      strings.TrimSpace(c.Query("price_min")),
		PriceMax:      strings.TrimSpace(c.Query("price_max")),
		InStockOnly:   inStockOnly,
		OnlyActive:    true,
		WithCategory:  true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.list_failed", err)
		return
	}

	items := make([]gin.H, 0, len(products))
	for i := range products {
		items = append(items, h.productPayload(&products[i]))
	}

	response.Success(c, gin.H{
		"products":  items,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetProduct 商品详情（仅上架商品）
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	product, err := h.ProductService.GetPublicByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.Success(c, gin.H{"product": h.productPayload(product)})
}

// GetHome 首页数据：轮播图与推荐商品
func (h *Handler) GetHome(c *gin.Context) {
	images, err := h.CarouselService.ListPublic()
	if err != nil {
		respondError(c, response.CodeInternal, "error.list_failed", err)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "8"))
	products, err := h.ProductService.ListHome(limit)
	if err != nil {
		respondError(c, response.CodeInternal, "error.list_failed", err)
		return
	}

	items := make([]gin.H, 0, len(products))
	for i := range products {
		items = append(items, h.productPayload(&products[i]))
	}

	response.Success(c, gin.H{
		"carousel": images,
		"products": items,
	})
}

// ListCarousel 获取启用的轮播图（按展示顺序）
func (h *Handler) ListCarousel(c *gin.Context) {
	images, err := h.CarouselService.ListPublic()
	if err != nil {
		respondError(c, response.CodeInternal, "error.list_failed", err)
		return
	}
	response.Success(c, gin.H{"carousel": images})
}

// productPayload 商品响应载荷：附带库存状态标签
func (h *Handler) productPayload(product *models.Product) gin.H {
	return gin.H{
		"id":             product.ID,
		"category_id":    product.CategoryID,
		"subcategory_id": product.SubcategoryID,
		"name":           product.Name,
		"description":    product.Description,
		"price":          product.Price,
		"weight_grams":   product.WeightGrams,
		"stock_quantity": product.StockQuantity,
		"stock_status":   h.ProductService.StockStatus(product),
		"images":         product.Images,
		"sort_order":     product.SortOrder,
		"category":       product.Category,
		"subcategory":    product.Subcategory,
	}
}
