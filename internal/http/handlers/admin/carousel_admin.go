package admin

import (
	"errors"

	"github.com/petshop-next/internal/http/response"
	"github.com/petshop-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CarouselRequest 轮播图请求
type CarouselRequest struct {
	Title     string `json:"title"`
	Image     string `json:"image" binding:"required"`
	LinkURL   string `json:"link_url"`
	SortOrder int    `json:"sort_order" binding:"required"`
	IsActive  *bool  `json:"is_active"`
}

func (r CarouselRequest) toServiceInput() service.CarouselInput {
	return service.CarouselInput{
		Title:     r.Title,
		Image:     r.Image,
		LinkURL:   r.LinkURL,
		SortOrder: r.SortOrder,
		IsActive:  r.IsActive,
	}
}

// GetAdminCarousel 轮播图列表（含未启用）
func (h *Handler) GetAdminCarousel(c *gin.Context) {
	images, err := h.CarouselService.ListAdmin()
	if err != nil {
		respondError(c, response.CodeInternal, "error.list_failed", err)
		return
	}
	response.Success(c, gin.H{"carousel": images})
}

// CreateAdminCarousel 新增轮播图（上限与展示顺序唯一性由服务校验）
func (h *Handler) CreateAdminCarousel(c *gin.Context) {
	var req CarouselRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	image, err := h.CarouselService.Create(req.toServiceInput())
	if err != nil {
		h.respondCarouselError(c, err, "error.create_failed")
		return
	}
	response.Success(c, gin.H{"image": image})
}

// UpdateAdminCarousel 更新轮播图
func (h *Handler) UpdateAdminCarousel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CarouselRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	image, err := h.CarouselService.Update(id, req.toServiceInput())
	if err != nil {
		h.respondCarouselError(c, err, "error.update_failed")
		return
	}
	response.Success(c, gin.H{"image": image})
}

// DeleteAdminCarousel 删除轮播图
func (h *Handler) DeleteAdminCarousel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.CarouselService.Delete(id); err != nil {
		h.respondCarouselError(c, err, "error.delete_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func (h *Handler) respondCarouselError(c *gin.Context, err error, fallbackKey string) {
	switch {
	case errors.Is(err, service.ErrMissingField):
		respondError(c, response.CodeBadRequest, "error.missing_field", nil)
	case errors.Is(err, service.ErrCarouselFull):
		respondError(c, response.CodeBadRequest, "error.carousel_full", nil)
	case errors.Is(err, service.ErrCarouselOrderTaken):
		respondError(c, response.CodeBadRequest, "error.carousel_order_taken", nil)
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "error.carousel_not_found", nil)
	default:
		respondError(c, response.CodeInternal, fallbackKey, err)
	}
}
