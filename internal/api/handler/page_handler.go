package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"exam-portal/web/internal/api/middleware"
	"exam-portal/web/internal/app"
	"exam-portal/web/internal/page"
	"exam-portal/web/pkg/dom"
	"exam-portal/web/pkg/response"
)

// htmx 响应头
const (
	hxRedirect  = "HX-Redirect"
	hxRefresh   = "HX-Refresh"
	hxRetarget  = "HX-Retarget"
	hxReswap    = "HX-Reswap"
	contentHTML = "text/html; charset=utf-8"
)

// PageHandler 页面访问与界面事件的 HTTP 处理器
type PageHandler struct {
	cookie *middleware.SessionCookie
	logger *zap.Logger
}

// NewPageHandler 创建 PageHandler
func NewPageHandler(cookie *middleware.SessionCookie, logger *zap.Logger) *PageHandler {
	return &PageHandler{cookie: cookie, logger: logger}
}

// Visit 渲染请求路径对应的页面
// GET /*（未被其他路由匹配的路径）
func (h *PageHandler) Visit(c *gin.Context) {
	a, ok := MustGetApp(c)
	if !ok {
		return
	}

	res := a.Visit(c.Request.Context(), c.Request.URL.Path)
	if res.Navigation != nil {
		c.Redirect(http.StatusSeeOther, res.Navigation.Path)
		return
	}

	status := http.StatusOK
	if res.Outcome == page.Failed {
		status = http.StatusInternalServerError
	}
	c.HTML(status, "layout", a.View().Snapshot())
}

// Event 分发浏览器回传的界面事件
// POST /ui/events  表单字段 _target、_event 及事件所在表单的全部字段
//
// 响应：
//   - 处理器发出跳转 → HX-Redirect
//   - 就地更新 → 内容区 HTML，HX-Retarget 到 #content
//   - 目标已不在当前视图 → HX-Refresh 重新加载
func (h *PageHandler) Event(c *gin.Context) {
	a, ok := MustGetApp(c)
	if !ok {
		return
	}

	if err := c.Request.ParseForm(); err != nil {
		response.BadRequest(c, 10001, "表单格式无效")
		return
	}
	form := c.Request.PostForm
	ev := dom.Event{Type: form.Get("_event"), Target: form.Get("_target"), Form: form}
	if ev.Type == "" || ev.Target == "" {
		response.BadRequest(c, 10001, "缺少事件目标")
		return
	}

	res, err := a.Dispatch(c.Request.Context(), ev)
	if errors.Is(err, app.ErrNoHandler) {
		h.logger.Debug("事件目标已失效",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("target", ev.Target),
			zap.String("event", ev.Type),
		)
		c.Header(hxRefresh, "true")
		c.Status(http.StatusOK)
		return
	}

	h.syncCookie(c, a)

	if res.Navigation != nil {
		c.Header(hxRedirect, res.Navigation.Path)
		c.Status(http.StatusOK)
		return
	}

	c.Header(hxRetarget, "#content")
	c.Header(hxReswap, "innerHTML")
	c.Data(http.StatusOK, contentHTML, []byte(a.View().ContentHTML()))
}

// syncCookie 登录身份的全天标记与 Cookie 不一致时重新签发
func (h *PageHandler) syncCookie(c *gin.Context, a *app.App) {
	identity := a.Identity()
	allDay := identity != nil && identity.AllDay
	if allDay == GetSessionAllDay(c) {
		return
	}
	if err := h.cookie.Issue(c, a.ID(), allDay); err != nil {
		h.logger.Error("重新签发会话令牌失败", zap.Error(err))
	}
}
