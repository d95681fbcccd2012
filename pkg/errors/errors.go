package errors

import "errors"

// ErrUnauthenticated 会话中没有已登录的身份
var ErrUnauthenticated = errors.New("未登录或会话已过期")

// ErrSessionNotFound 会话不存在（已过期或被清理）
var ErrSessionNotFound = errors.New("会话不存在")
