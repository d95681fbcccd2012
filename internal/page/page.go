package page

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"exam-portal/web/internal/model"
	"exam-portal/web/internal/repository"
	"exam-portal/web/internal/templates"
	"exam-portal/web/internal/view"
)

// Outcome 一次 Show 调用的终态
type Outcome int

const (
	// Rendered 内容区已提交
	Rendered Outcome = iota
	// Redirected 已发出跳转，内容区未被修改
	Redirected
	// Superseded 调用被更新的页面调用取代，结果被丢弃
	Superseded
	// Failed 渲染失败且没有可跳转的回退页面
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Rendered:
		return "rendered"
	case Redirected:
		return "redirected"
	case Superseded:
		return "superseded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Page 页面：由外壳以路由参数调用
type Page interface {
	Show(ctx context.Context, params Params) Outcome
}

// Navigator 页面跳转，路径相对于页面自身的路由解析
type Navigator interface {
	// NavigateTo 新增历史记录并渲染目标页面
	NavigateTo(ctx context.Context, path string)
	// RedirectTo 替换当前历史记录（失败恢复时使用）
	RedirectTo(ctx context.Context, path string)
}

// Session 当前会话的登录身份
type Session interface {
	Identity() *model.Identity
	Login(ctx context.Context, personCode, password string, allDay bool) repository.Result[*model.Identity]
	Logout(ctx context.Context)
}

// Env 页面调用所需的全部协作者
type Env struct {
	View      *view.State
	Templates templates.Loader
	Repo      *repository.Repository
	Nav       Navigator
	Session   Session
	Logger    *zap.Logger
	Now       func() time.Time
	// Career 路由所属的学籍，显示在学籍栏
	Career *model.Career
}

func (e *Env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// ErrBadParam 路由参数缺失或不是合法数字
var ErrBadParam = errors.New("路由参数无效")

var (
	// ErrNoIdentity 会话中没有登录身份
	ErrNoIdentity = errors.New("未登录")
	// ErrNoData 后端调用成功但没有返回数据
	ErrNoData = errors.New("后端未返回数据")
)

// ParamError 路由参数解析错误
type ParamError struct {
	Name  string
	Value string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("路由参数 %s=%q 无效", e.Name, e.Value)
}

func (e *ParamError) Unwrap() error {
	return ErrBadParam
}

// Params 路由参数（已解码的字符串）
type Params map[string]string

// ID 解析正整数 ID 参数
func (p Params) ID(name string) (int64, error) {
	raw := p[name]
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || n <= 0 {
		return 0, &ParamError{Name: name, Value: raw}
	}
	return n, nil
}

// Year 解析年份参数
func (p Params) Year(name string) (int, error) {
	raw := p[name]
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 || n > 9999 {
		return 0, &ParamError{Name: name, Value: raw}
	}
	return n, nil
}

// Kind 页面种类
type Kind int

const (
	KindDefault Kind = iota
	KindLogin
	KindLogout
	KindCareers
	KindCurrentYear
	KindStudentExams
	KindProfessorExams
	KindStudentExamRegistration
	KindProfEditExam
	KindProfExamRegistrations
	KindRecords
)

// New 按种类创建页面
func New(kind Kind, env *Env) Page {
	switch kind {
	case KindLogin:
		return &LoginPage{env: env}
	case KindLogout:
		return &LogoutPage{env: env}
	case KindCareers:
		return &CareersPage{env: env}
	case KindCurrentYear:
		return &CurrentYearPage{env: env}
	case KindStudentExams:
		return newStudentExamsPage(env)
	case KindProfessorExams:
		return newProfessorExamsPage(env)
	case KindStudentExamRegistration:
		return &StudentExamRegistrationPage{env: env}
	case KindProfEditExam:
		return &ProfEditExamPage{env: env}
	case KindProfExamRegistrations:
		return &ProfExamRegistrationsPage{env: env}
	case KindRecords:
		return &RecordsPage{env: env}
	default:
		return &DefaultPage{env: env}
	}
}
