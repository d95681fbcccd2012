package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"exam-portal/web/internal/api/middleware"
	"exam-portal/web/internal/app"
	"exam-portal/web/internal/page"
	"exam-portal/web/internal/repository"
	apperrors "exam-portal/web/pkg/errors"
	"exam-portal/web/pkg/response"
)

// MustGetApp 从 Gin 上下文中安全提取会话外壳。
// 如果 Session 中间件未正确注入，返回 false 并写入 500 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetApp(c *gin.Context) (*app.App, bool) {
	v, exists := c.Get(middleware.AppKey)
	if !exists {
		response.InternalError(c)
		return nil, false
	}
	a, ok := v.(*app.App)
	if !ok || a == nil {
		response.InternalError(c)
		return nil, false
	}
	return a, true
}

// GetSessionAllDay 当前 Cookie 是否为全天会话
func GetSessionAllDay(c *gin.Context) bool {
	return c.GetBool(middleware.AllDayKey)
}

// MustGetCareer 校验会话已登录且拥有路径中 :id 指定的 role 学籍。
// 成功时返回学籍 ID 与携带后端令牌的 context；失败时写入 400/401/403 响应。
func MustGetCareer(c *gin.Context, a *app.App, role string) (int64, context.Context, bool) {
	params := page.Params{"id": c.Param("id")}
	id, err := params.ID("id")
	if err != nil {
		response.BadRequest(c, 10001, err.Error())
		return 0, nil, false
	}

	identity := a.Identity()
	if identity == nil {
		response.Unauthorized(c, 10002, apperrors.ErrUnauthenticated.Error())
		return 0, nil, false
	}
	career, ok := identity.Career(id)
	if !ok || career.Role != role {
		response.Forbidden(c, 10003, "无权访问该学籍")
		return 0, nil, false
	}

	return id, repository.WithToken(c.Request.Context(), identity.Token), true
}
