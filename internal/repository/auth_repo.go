package repository

import (
	"context"
	"net/http"

	"exam-portal/web/internal/model"
)

// AuthRepository 登录/登出数据访问接口
type AuthRepository interface {
	Login(ctx context.Context, personCode, password string, allDay bool) Result[*model.Identity]
	Logout(ctx context.Context) Result[bool]
}

type authRepo struct {
	c *Client
}

// NewAuthRepo 创建 AuthRepository 实例
func NewAuthRepo(c *Client) AuthRepository {
	return &authRepo{c: c}
}

type loginRequest struct {
	PersonCode string `json:"personCode"`
	Password   string `json:"password"`
	AllDay     bool   `json:"allDay"`
}

func (r *authRepo) Login(ctx context.Context, personCode, password string, allDay bool) Result[*model.Identity] {
	res := call[*model.Identity](ctx, r.c, http.MethodPost, "/login", loginRequest{
		PersonCode: personCode,
		Password:   password,
		AllDay:     allDay,
	})
	if res.Err == nil && res.Data != nil {
		res.Data.AllDay = allDay
	}
	return res
}

func (r *authRepo) Logout(ctx context.Context) Result[bool] {
	return call[bool](ctx, r.c, http.MethodPost, "/logout", nil)
}
