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

// GetAdminUsers 用户列表 (Admin)
func (h *Handler) GetAdminUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
	}
	switch c.Query("is_active") {
	case "true", "1":
		active := true
		filter.IsActive = &active
	case "false", "0":
		active := false
		filter.IsActive = &active
	}

	users, total, err := h.UserAdminService.List(filter)
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
	response.SuccessWithPage(c, users, pagination)
}

// GetAdminUser 用户详情 (Admin)：含近期订单
func (h *Handler) GetAdminUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, orders, err := h.UserAdminService.GetDetail(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.user_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.Success(c, gin.H{
		"user":   user,
		"orders": orders,
	})
}

// SetUserActiveRequest 用户启用/停用请求
type SetUserActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// SetAdminUserActive 启用或停用用户；停用会吊销该用户全部会话。
func (h *Handler) SetAdminUserActive(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req SetUserActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsActive == nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, err := h.UserAdminService.SetActive(id, *req.IsActive)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.user_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}

	response.Success(c, gin.H{"user": user})
}
