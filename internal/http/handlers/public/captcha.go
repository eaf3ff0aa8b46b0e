package public

import (
	"github.com/petshop-next/internal/constants"
	"github.com/petshop-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetCaptcha 生成图片验证码挑战
func (h *Handler) GetCaptcha(c *gin.Context) {
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		respondError(c, response.CodeInternal, "error.captcha_generate_failed", err)
		return
	}

	response.Success(c, gin.H{
		"captcha_id":   challenge.CaptchaID,
		"image_base64": challenge.ImageBase64,
		"scenes": gin.H{
			"login":              h.CaptchaService.Enabled(constants.CaptchaSceneLogin),
			"register_send_code": h.CaptchaService.Enabled(constants.CaptchaSceneRegisterSendCode),
		},
	})
}
