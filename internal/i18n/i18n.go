package i18n

import (
	"fmt"
	"strings"

	"github.com/petshop-next/internal/constants"

	"github.com/gin-gonic/gin"
)

// DefaultLocale 默认站点语言
const DefaultLocale = constants.LocaleEsCO

// ResolveLocale 从请求头解析站点语言，未命中时回退默认语言
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if v := strings.TrimSpace(c.GetHeader("X-Locale")); v != "" {
		if locale, ok := matchLocale(v); ok {
			return locale
		}
	}
	accept := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(accept, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" {
			continue
		}
		if locale, ok := matchLocale(tag); ok {
			return locale
		}
	}
	return DefaultLocale
}

// T 返回对应语言的文案，键不存在时回退其他语言，最终回退键名
func T(locale, key string) string {
	if msg, ok := lookup(locale, key); ok {
		return msg
	}
	for _, fallback := range constants.SupportedLocales {
		if fallback == locale {
			continue
		}
		if msg, ok := lookup(fallback, key); ok {
			return msg
		}
	}
	return key
}

// Sprintf 返回格式化后的对应语言文案
func Sprintf(locale, key string, args ...interface{}) string {
	msg := T(locale, key)
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

func matchLocale(tag string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(tag))
	for _, locale := range constants.SupportedLocales {
		if strings.EqualFold(locale, normalized) {
			return locale, true
		}
	}
	// 仅语言前缀匹配，如 es / en
	base := strings.SplitN(normalized, "-", 2)[0]
	for _, locale := range constants.SupportedLocales {
		if strings.HasPrefix(strings.ToLower(locale), base+"-") {
			return locale, true
		}
	}
	return "", false
}

func lookup(locale, key string) (string, bool) {
	catalog, ok := catalogs[locale]
	if !ok {
		return "", false
	}
	msg, ok := catalog[key]
	return msg, ok
}
