package repository

import (
	"errors"
	"fmt"
)

// Result 数据访问调用的统一返回信封。
// Err 非空表示调用失败，此时 Data 必须忽略；
// Err 为空而 Data 为零值表示调用完成但业务上未成功。
type Result[T any] struct {
	Data T
	Err  error
}

// Ok 构造成功信封
func Ok[T any](v T) Result[T] {
	return Result[T]{Data: v}
}

// Fail 构造失败信封
func Fail[T any](err error) Result[T] {
	return Result[T]{Err: err}
}

// Failed 调用是否失败
func (r Result[T]) Failed() bool {
	return r.Err != nil
}

// ErrTransport 与考试后端通信失败（网络、超时、响应无法解码）
var ErrTransport = errors.New("考试后端通信失败")

// APIError 考试后端返回的业务错误
type APIError struct {
	Status  int
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("考试后端错误 (status=%d code=%d): %s", e.Status, e.Code, e.Message)
}

// Message 提取可展示给用户的错误文本
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
