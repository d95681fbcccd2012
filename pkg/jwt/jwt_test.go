package jwt

import (
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"

	"exam-portal/web/config"
)

func newTestManager() *Manager {
	return NewManager(&config.SessionConfig{
		Secret:    "test-secret-key-for-unit-testing-2026",
		TTL:       2 * time.Hour,
		TTLAllDay: 24 * time.Hour,
	})
}

func TestGenerateAndParseSessionToken(t *testing.T) {
	m := newTestManager()
	sid := NewSessionID()

	token, exp, err := m.GenerateSessionToken(sid, false)
	if err != nil {
		t.Fatalf("GenerateSessionToken 失败: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken 失败: %v", err)
	}
	if claims.SessionID != sid {
		t.Errorf("期望 SessionID=%s，实际=%s", sid, claims.SessionID)
	}
	if claims.AllDay {
		t.Error("期望 AllDay=false")
	}
	if ttl := time.Until(exp); ttl < 119*time.Minute || ttl > 121*time.Minute {
		t.Errorf("默认 TTL 期望约2h，实际=%v", ttl)
	}
}

func TestGenerateSessionToken_AllDay(t *testing.T) {
	m := newTestManager()

	token, _, err := m.GenerateSessionToken("sid-1", true)
	if err != nil {
		t.Fatalf("GenerateSessionToken 失败: %v", err)
	}
	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken 失败: %v", err)
	}
	if !claims.AllDay {
		t.Error("期望 AllDay=true")
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 23*time.Hour || ttl > 25*time.Hour {
		t.Errorf("all-day TTL 期望约24h，实际=%v", ttl)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	m := newTestManager()
	token, _, _ := m.GenerateSessionToken("sid-1", false)

	other := NewManager(&config.SessionConfig{
		Secret:    "another-secret-key-for-testing-0000",
		TTL:       time.Hour,
		TTLAllDay: time.Hour,
	})
	if _, err := other.ParseToken(token); err != ErrTokenInvalid {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}

func TestParseToken_Expired(t *testing.T) {
	m := newTestManager()
	claims := Claims{
		SessionID: "sid-1",
		RegisteredClaims: jwtv5.RegisteredClaims{
			ExpiresAt: jwtv5.NewNumericDate(time.Now().Add(-time.Minute)),
			Issuer:    issuer,
		},
	}
	token, err := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		t.Fatalf("签发测试令牌失败: %v", err)
	}

	if _, err := m.ParseToken(token); err != ErrTokenExpired {
		t.Errorf("期望 ErrTokenExpired，实际: %v", err)
	}
}

func TestParseToken_Garbage(t *testing.T) {
	m := newTestManager()
	if _, err := m.ParseToken("not-a-token"); err != ErrTokenInvalid {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}
