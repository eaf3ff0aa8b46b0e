package admin

import (
	"errors"
	"strconv"

	"github.com/petshop-next/internal/http/response"
	"github.com/petshop-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryRequest 分类请求
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
	IsActive    *bool  `json:"is_active"`
}

func (r CategoryRequest) toServiceInput() service.CategoryInput {
	return service.CategoryInput{
		Name:        r.Name,
		Description: r.Description,
		SortOrder:   r.SortOrder,
		IsActive:    r.IsActive,
	}
}

// GetAdminCategories 获取分类列表（含未启用）
func (h *Handler) GetAdminCategories(c *gin.Context) {
	categories, err := h.CategoryService.List(false)
	if err != nil {
		respondError(c, response.CodeInternal, "error.list_failed", err)
		return
	}
	response.Success(c, gin.H{"categories": categories})
}

// CreateAdminCategory 创建分类
func (h *Handler) CreateAdminCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	category, err := h.CategoryService.Create(req.toServiceInput())
	if err != nil {
		h.respondCategoryError(c, err, "error.create_failed")
		return
	}
	response.Success(c, gin.H{"category": category})
}

// UpdateAdminCategory 更新分类
func (h *Handler) UpdateAdminCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	category, err := h.CategoryService.Update(id, req.toServiceInput())
	if err != nil {
		h.respondCategoryError(c, err, "error.update_failed")
		return
	}
	response.Success(c, gin.H{"category": category})
}

// DeleteAdminCategory 删除分类（有商品时拒绝）
func (h *Handler) DeleteAdminCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.CategoryService.Delete(id); err != nil {
		h.respondCategoryError(c, err, "error.delete_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// SubcategoryRequest 子分类请求
type SubcategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
	IsActive    *bool  `json:"is_active"`
}

// ListAdminSubcategories 获取分类下的子分类
func (h *Handler) ListAdminSubcategories(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	subcategories, err := h.CategoryService.ListSubcategories(categoryID, false)
	if err != nil {
		h.respondCategoryError(c, err, "error.list_failed")
		return
	}
	response.Success(c, gin.H{"subcategories": subcategories})
}

// CreateAdminSubcategory 在分类下创建子分类
func (h *Handler) CreateAdminSubcategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req SubcategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	subcategory, err := h.CategoryService.CreateSubcategory(service.SubcategoryInput{
		CategoryID:  categoryID,
		Name:        req.Name,
		Description: req.Description,
		SortOrder:   req.SortOrder,
		IsActive:    req.IsActive,
	})
	if err != nil {
		h.respondCategoryError(c, err, "error.create_failed")
		return
	}
	response.Success(c, gin.H{"subcategory": subcategory})
}

// UpdateAdminSubcategory 更新子分类
func (h *Handler) UpdateAdminSubcategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req SubcategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	subcategory, err := h.CategoryService.UpdateSubcategory(id, service.SubcategoryInput{
		Name:        req.Name,
		Description: req.Description,
		SortOrder:   req.SortOrder,
		IsActive:    req.IsActive,
	})
	if err != nil {
		h.respondCategoryError(c, err, "error.update_failed")
		return
	}
	response.Success(c, gin.H{"subcategory": subcategory})
}

// DeleteAdminSubcategory 删除子分类（有商品时拒绝）
func (h *Handler) DeleteAdminSubcategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.CategoryService.DeleteSubcategory(id); err != nil {
		h.respondCategoryError(c, err, "error.delete_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func (h *Handler) respondCategoryError(c *gin.Context, err error, fallbackKey string) {
	switch {
	case errors.Is(err, service.ErrMissingField):
		respondError(c, response.CodeBadRequest, "error.missing_field", nil)
	case errors.Is(err, service.ErrCategoryExists):
		respondError(c, response.CodeBadRequest, "error.category_exists", nil)
	case errors.Is(err, service.ErrCategoryInUse):
		respondError(c, response.CodeBadRequest, "error.category_in_use", nil)
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "error.not_found", nil)
	default:
		respondError(c, response.CodeInternal, fallbackKey, err)
	}
}

// parseIDParam 解析路径中的数字 ID
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return 0, false
	}
	return uint(id), true
}
