package public

import (
	"strings"

	handlershared "github.com/petshop-next/internal/http/handlers/shared"
	"github.com/petshop-next/internal/http/response"
	"github.com/petshop-next/internal/repository"

	"github.com/gin-gonic/gin"
)

func getContextUintWithKeys(c *gin.Context, key, invalidKey, typeInvalidKey string) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, key, invalidKey, typeInvalidKey)
}

func getUserID(c *gin.Context) (uint, bool) {
	return getContextUintWithKeys(c, "user_id", "error.user_id_invalid", "error.user_id_type_invalid")
}

// resolveCartOwner 解析购物车归属：已登录用户优先，否则取匿名会话头。
// 两者都缺失时返回错误响应并报告 false。
func resolveCartOwner(c *gin.Context) (repository.CartOwner, bool) {
	if value, exists := c.Get("user_id"); exists {
		switch v := value.(type) {
		case uint:
			return repository.ForUser(v), true
		case int:
			if v > 0 {
				return repository.ForUser(uint(v)), true
			}
		}
	}
	sessionID := strings.TrimSpace(c.GetHeader("X-Session-ID"))
	if sessionID != "" {
		return repository.ForSession(sessionID), true
	}
	respondError(c, response.CodeBadRequest, "error.session_required", nil)
	return repository.CartOwner{}, false
}
