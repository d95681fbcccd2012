package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"exam-portal/web/internal/model"
	"exam-portal/web/internal/page"
	"exam-portal/web/internal/repository"
	"exam-portal/web/internal/templates"
	"exam-portal/web/internal/view"
	apperrors "exam-portal/web/pkg/errors"
	"exam-portal/web/pkg/dom"
)

// ErrNoHandler 事件目标上没有已挂载的处理器（页面已切换或元素已移除）
var ErrNoHandler = errors.New("事件没有对应的处理器")

// Deps 所有会话共享的依赖
type Deps struct {
	Templates templates.Loader
	Repo      *repository.Repository
	Store     SessionStore
	Logger    *zap.Logger
	Now       func() time.Time
}

func (d *Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// Result 一次页面访问或事件处理的结果
type Result struct {
	Outcome    page.Outcome
	Navigation *Navigation
}

// App 一个浏览器会话的应用外壳：视图、登录身份与页面调度
type App struct {
	id     string
	deps   *Deps
	view   *view.State
	logger *zap.Logger

	restored sync.Once

	mu       sync.Mutex
	identity *model.Identity
	lastSeen time.Time
}

// New 创建会话外壳
func New(id string, deps *Deps) *App {
	return &App{
		id:       id,
		deps:     deps,
		view:     view.New(),
		logger:   deps.Logger.With(zap.String("session", shortID(id))),
		lastSeen: deps.now(),
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// ID 会话 ID
func (a *App) ID() string {
	return a.id
}

// View 会话视图
func (a *App) View() *view.State {
	return a.view
}

func (a *App) touch() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastSeen = a.deps.now()
}

func (a *App) idleSince() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastSeen
}

// Visit 按路由调用页面
func (a *App) Visit(ctx context.Context, path string) Result {
	a.touch()

	route, params, ok := Match(path)
	if !ok {
		if canonical, ok := Canonical(path); ok {
			return redirect(canonical)
		}
	}

	identity := a.Identity()
	if route.Auth && identity == nil {
		return redirect("/login")
	}

	var career *model.Career
	if route.Career {
		c, ok := a.ownedCareer(identity, params)
		if !ok {
			a.logger.Warn("访问不属于当前身份的学籍", zap.String("path", path))
			return redirect("/inside/careers")
		}
		career = &c
	}

	ctx, s := withSink(ctx)
	if identity != nil {
		ctx = repository.WithToken(ctx, identity.Token)
	}
	env := &page.Env{
		View:      a.view,
		Templates: a.deps.Templates,
		Repo:      a.deps.Repo,
		Nav:       navigator{base: path},
		Session:   a,
		Logger:    a.logger,
		Now:       a.deps.Now,
		Career:    career,
	}
	out := page.New(route.Kind, env).Show(ctx, params)
	a.logger.Debug("页面访问", zap.String("path", path), zap.Stringer("outcome", out))
	return Result{Outcome: out, Navigation: s.take()}
}

func redirect(path string) Result {
	return Result{Outcome: page.Redirected, Navigation: &Navigation{Path: path, Replace: true}}
}

func (a *App) ownedCareer(identity *model.Identity, params page.Params) (model.Career, bool) {
	id, err := params.ID("id")
	if err != nil {
		return model.Career{}, false
	}
	c, ok := identity.Career(id)
	if !ok || c.Role != params["role"] {
		return model.Career{}, false
	}
	return c, true
}

// Dispatch 把浏览器回传的事件交给已挂载的处理器
func (a *App) Dispatch(ctx context.Context, ev dom.Event) (Result, error) {
	a.touch()

	h, ok := a.view.Handler(dom.Key{ID: ev.Target, Type: ev.Type})
	if !ok {
		return Result{}, ErrNoHandler
	}

	ctx, s := withSink(ctx)
	if identity := a.Identity(); identity != nil {
		ctx = repository.WithToken(ctx, identity.Token)
	}
	h(ctx, ev)
	return Result{Outcome: page.Rendered, Navigation: s.take()}, nil
}

// Identity 当前登录身份，未登录时为 nil
func (a *App) Identity() *model.Identity {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.identity
}

func (a *App) setIdentity(identity *model.Identity) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.identity = identity
}

// Login 登录并保存会话身份
func (a *App) Login(ctx context.Context, personCode, password string, allDay bool) repository.Result[*model.Identity] {
	res := a.deps.Repo.Auth.Login(ctx, personCode, password, allDay)
	if res.Failed() {
		return res
	}
	if res.Data == nil {
		return repository.Fail[*model.Identity](page.ErrNoData)
	}
	a.setIdentity(res.Data)
	if err := a.deps.Store.Save(ctx, a.id, res.Data); err != nil {
		a.logger.Warn("保存会话失败", zap.Error(err))
	}
	a.logger.Info("用户登录", zap.String("person_code", res.Data.User.PersonCode), zap.Bool("all_day", allDay))
	return res
}

// Logout 注销后端令牌并清除会话身份
func (a *App) Logout(ctx context.Context) {
	identity := a.Identity()
	if identity == nil {
		return
	}
	res := a.deps.Repo.Auth.Logout(repository.WithToken(ctx, identity.Token))
	if res.Failed() {
		a.logger.Warn("后端登出失败", zap.Error(res.Err))
	}
	a.setIdentity(nil)
	if err := a.deps.Store.Delete(ctx, a.id); err != nil {
		a.logger.Warn("删除会话失败", zap.Error(err))
	}
}

// restore 从会话存储恢复身份
func (a *App) restore(ctx context.Context) {
	identity, err := a.deps.Store.Load(ctx, a.id)
	switch {
	case err == nil:
		a.setIdentity(identity)
	case errors.Is(err, apperrors.ErrSessionNotFound):
	default:
		a.logger.Warn("读取会话失败", zap.Error(err))
	}
}
