package public

import handlershared "github.com/petshop-next/internal/http/handlers/shared"

// CaptchaPayloadRequest 验证码请求载荷（请求体字段复用共享定义）。
type CaptchaPayloadRequest = handlershared.CaptchaPayloadRequest
