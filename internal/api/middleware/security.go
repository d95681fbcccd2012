package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// htmxOrigin 浏览器端 htmx 脚本来源
const htmxOrigin = "https://unpkg.com"

// contentPolicy 页面只加载自身资源与 htmx 脚本；事件回传走同源 XHR
var contentPolicy = strings.Join([]string{
	"default-src 'self'",
	"script-src 'self' " + htmxOrigin,
	"connect-src 'self'",
	"style-src 'self' 'unsafe-inline'",
	"img-src 'self' data:",
	"form-action 'self'",
	"frame-ancestors 'none'",
	"base-uri 'self'",
}, "; ")

// SecurityHeaders 页面层安全响应头
//
// 页面与事件响应都携带会话内状态，一律 no-store；
// hsts 为 true（Cookie 仅走 HTTPS）时追加 Strict-Transport-Security。
func SecurityHeaders(hsts bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Content-Security-Policy", contentPolicy)
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "same-origin")
		h.Set("Cache-Control", "no-store")
		h.Add("Vary", "HX-Request")
		if hsts {
			h.Set("Strict-Transport-Security", "max-age=31536000")
		}

		c.Next()
	}
}
