package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"exam-portal/web/config"
)

var (
	ErrTokenExpired = errors.New("token 已过期")
	ErrTokenInvalid = errors.New("token 无效")
)

const issuer = "exam-portal"

// Claims 会话 Cookie 中的声明
type Claims struct {
	SessionID string `json:"sid"`
	AllDay    bool   `json:"all_day,omitempty"`
	jwtv5.RegisteredClaims
}

// Manager 会话令牌管理器
type Manager struct {
	secret    []byte
	ttl       time.Duration
	ttlAllDay time.Duration
}

// NewManager 创建会话令牌管理器
func NewManager(cfg *config.SessionConfig) *Manager {
	return &Manager{
		secret:    []byte(cfg.Secret),
		ttl:       cfg.TTL,
		ttlAllDay: cfg.TTLAllDay,
	}
}

// TTL 返回会话有效期；allDay 为 true 时使用更长的有效期
func (m *Manager) TTL(allDay bool) time.Duration {
	if allDay {
		return m.ttlAllDay
	}
	return m.ttl
}

// NewSessionID 生成新的会话 ID
func NewSessionID() string {
	return uuid.NewString()
}

// GenerateSessionToken 为会话 ID 签发令牌
func (m *Manager) GenerateSessionToken(sessionID string, allDay bool) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(m.TTL(allDay))
	claims := Claims{
		SessionID: sessionID,
		AllDay:    allDay,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(exp),
			Issuer:    issuer,
		},
	}

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseToken 解析并验证会话令牌
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwtv5.ParseWithClaims(tokenString, &Claims{}, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	}, jwtv5.WithIssuer(issuer))

	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
