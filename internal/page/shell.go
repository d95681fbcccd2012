package page

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"exam-portal/web/internal/repository"
	"exam-portal/web/internal/view"
	"exam-portal/web/pkg/dom"
)

// shell 一次页面调用的公共流程：签发令牌、清理外围区域、失败跳转、原子提交
type shell struct {
	env   *Env
	title string
	tok   view.Token
}

func begin(env *Env, title string) *shell {
	s := &shell{env: env, title: title, tok: env.View.Begin(title)}
	if env.Career != nil {
		_ = env.View.ShowCareer(s.tok, *env.Career)
	}
	return s
}

func (s *shell) logger() *zap.Logger {
	return s.env.Logger.With(zap.String("page", s.title))
}

func (s *shell) clearChrome() {
	_ = s.env.View.ClearCareer(s.tok)
	_ = s.env.View.ClearBackLink(s.tok)
}

func (s *shell) clearBackLink() {
	_ = s.env.View.ClearBackLink(s.tok)
}

func (s *shell) backLink(text, href string) {
	_ = s.env.View.ShowBackLink(s.tok, text, href)
}

// fail 记录错误并跳转到回退页面；调用已被取代时不跳转
func (s *shell) fail(ctx context.Context, err error, fallback string) Outcome {
	if !s.env.View.Current(s.tok) {
		s.logger().Debug("页面调用已被取代", zap.Error(err))
		return Superseded
	}
	s.logger().Error("页面渲染失败", zap.String("fallback", fallback), zap.Error(err))
	s.env.Nav.RedirectTo(ctx, fallback)
	return Redirected
}

// commit 原子替换内容区
func (s *shell) commit(frags ...*dom.Fragment) Outcome {
	if err := s.env.View.Commit(s.tok, frags...); err != nil {
		return s.stale(err)
	}
	return Rendered
}

// append 追加到内容区
func (s *shell) append(frag *dom.Fragment) Outcome {
	if err := s.env.View.Append(s.tok, frag); err != nil {
		return s.stale(err)
	}
	return Rendered
}

func (s *shell) stale(err error) Outcome {
	if errors.Is(err, view.ErrStale) {
		s.logger().Debug("丢弃过期的提交")
	}
	return Superseded
}

// fetchPair 并发获取模板与数据，两者都成功才返回
func fetchPair[T any](ctx context.Context, env *Env, name string, fetch func(context.Context) repository.Result[T]) (*dom.Fragment, T, error) {
	var (
		frag *dom.Fragment
		res  repository.Result[T]
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		f, err := env.Templates.Get(gctx, name)
		if err != nil {
			return err
		}
		frag = f
		return nil
	})
	g.Go(func() error {
		res = fetch(gctx)
		return res.Err
	})
	if err := g.Wait(); err != nil {
		var zero T
		return nil, zero, err
	}
	return frag, res.Data, nil
}

// report 检查变更调用的信封：失败记录错误，业务未成功记录警告
func report(logger *zap.Logger, op string, res repository.Result[bool]) {
	switch {
	case res.Failed():
		logger.Error("操作失败", zap.String("op", op), zap.Error(res.Err))
	case !res.Data:
		logger.Warn("Operation did not succeed", zap.String("op", op))
	}
}
