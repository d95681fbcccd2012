package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"exam-portal/web/pkg/response"
)

// BodyLimit 请求体大小限制中间件
// maxBytes: 允许的最大请求体字节数（如 1<<20 = 1MB）
// 表单在进入处理器前解析，超限时直接返回 413
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil {
			c.Next()
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)

		if err := c.Request.ParseForm(); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
			} else {
				response.BadRequest(c, 10001, "表单格式无效")
			}
			c.Abort()
			return
		}

		c.Next()
	}
}
