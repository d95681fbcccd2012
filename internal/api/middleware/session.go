package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"exam-portal/web/config"
	"exam-portal/web/internal/app"
	"exam-portal/web/pkg/jwt"
	"exam-portal/web/pkg/response"
)

// 上下文键
const (
	AppKey    = "app"
	AllDayKey = "session_all_day"
)

// SessionCookie 会话 Cookie 的签发与解析
type SessionCookie struct {
	jwtMgr *jwt.Manager
	cfg    config.CookieConfig
}

// NewSessionCookie 创建 SessionCookie
func NewSessionCookie(jwtMgr *jwt.Manager, cfg config.CookieConfig) *SessionCookie {
	return &SessionCookie{jwtMgr: jwtMgr, cfg: cfg}
}

// Issue 为会话 ID 签发令牌并写入 Cookie；allDay 决定有效期
func (s *SessionCookie) Issue(c *gin.Context, sid string, allDay bool) error {
	token, exp, err := s.jwtMgr.GenerateSessionToken(sid, allDay)
	if err != nil {
		return err
	}
	c.SetSameSite(sameSite(s.cfg.SameSite))
	c.SetCookie(s.cfg.Name, token, int(time.Until(exp).Seconds()), "/", s.cfg.Domain, s.cfg.Secure, true)
	c.Set(AllDayKey, allDay)
	return nil
}

// read 解析请求中的会话 Cookie；缺失或无效时返回空 sid
func (s *SessionCookie) read(c *gin.Context) (sid string, allDay bool, err error) {
	raw, err := c.Cookie(s.cfg.Name)
	if err != nil || raw == "" {
		return "", false, nil
	}
	claims, err := s.jwtMgr.ParseToken(raw)
	if err != nil {
		return "", false, err
	}
	return claims.SessionID, claims.AllDay, nil
}

func sameSite(v string) http.SameSite {
	switch strings.ToLower(v) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// Session 会话中间件
// 由 Cookie 中的会话令牌定位会话外壳；令牌缺失、过期或无效时开启新会话并签发 Cookie
func Session(reg *app.Registry, cookie *SessionCookie, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, allDay, err := cookie.read(c)
		if err != nil {
			logger.Debug("会话令牌无效，开启新会话",
				zap.String("request_id", GetRequestID(c)),
				zap.Error(err),
			)
		}

		if sid == "" {
			sid = jwt.NewSessionID()
			if err := cookie.Issue(c, sid, false); err != nil {
				logger.Error("签发会话令牌失败", zap.Error(err))
				response.InternalError(c)
				c.Abort()
				return
			}
		} else {
			c.Set(AllDayKey, allDay)
		}

		c.Set(AppKey, reg.Get(c.Request.Context(), sid))

		c.Next()
	}
}
