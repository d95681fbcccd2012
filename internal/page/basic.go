package page

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"exam-portal/web/internal/repository"
	"exam-portal/web/internal/view"
	"exam-portal/web/pkg/dom"
)

// DefaultPage 未匹配任何路由时显示
type DefaultPage struct {
	env *Env
}

func (p *DefaultPage) Show(ctx context.Context, _ Params) Outcome {
	s := begin(p.env, "Not Found")
	section := dom.Element("section")
	dom.SetText(section, "PAGE NOT FOUND")
	return s.commit(dom.NewFragment(section))
}

// LoginPage 登录表单
type LoginPage struct {
	env *Env
}

func (p *LoginPage) Show(ctx context.Context, _ Params) Outcome {
	s := begin(p.env, "Login")
	s.clearChrome()

	frag, err := p.env.Templates.Get(ctx, "login")
	if err == nil {
		var v *loginView
		if v, err = bindLogin(frag); err == nil {
			frag.On(v.form, dom.EventSubmit, p.submit(s, v))
			return s.commit(frag)
		}
	}
	// 登录页没有回退页面
	s.logger().Error("登录页渲染失败", zap.Error(err))
	return Failed
}

func (p *LoginPage) submit(s *shell, v *loginView) dom.Handler {
	return func(ctx context.Context, ev dom.Event) {
		res := p.env.Session.Login(ctx, ev.Value("person_code"), ev.Value("password"), ev.Checked("all_day"))
		if res.Err == nil {
			p.env.Nav.NavigateTo(ctx, "/inside/careers")
			return
		}
		s.logger().Error("登录失败", zap.Error(res.Err))
		p.env.View.Do(func() { dom.SetText(v.errorBox, repository.Message(res.Err)) })
	}
}

// LogoutPage 清除会话身份后跳转到登录页
type LogoutPage struct {
	env *Env
}

func (p *LogoutPage) Show(ctx context.Context, _ Params) Outcome {
	begin(p.env, "Logout")
	p.env.Session.Logout(ctx)
	p.env.Nav.RedirectTo(ctx, "/login")
	return Redirected
}

// CurrentYearPage 学籍入口：跳转到当前年份的考试列表
type CurrentYearPage struct {
	env *Env
}

func (p *CurrentYearPage) Show(ctx context.Context, params Params) Outcome {
	s := begin(p.env, "Exams")
	if _, err := params.ID("id"); err != nil {
		return s.fail(ctx, err, "/inside/careers")
	}
	p.env.Nav.RedirectTo(ctx, strconv.Itoa(p.env.now().Year()))
	return Redirected
}

// CareersPage 当前身份的学籍列表
type CareersPage struct {
	env *Env
}

func (p *CareersPage) Show(ctx context.Context, _ Params) Outcome {
	s := begin(p.env, "Careers")
	s.clearChrome()

	identity := p.env.Session.Identity()
	if identity == nil {
		return s.fail(ctx, ErrNoIdentity, "/login")
	}
	frag, err := p.env.Templates.Get(ctx, "careers")
	if err != nil {
		return s.fail(ctx, err, "/login")
	}
	v, err := bindCareers(frag)
	if err != nil {
		return s.fail(ctx, err, "/login")
	}

	for _, c := range identity.Careers {
		tr := dom.InsertRow(v.tbody)
		textCell(tr, itoa(c.ID))
		role := textCell(tr, view.Capitalize(c.Role))
		if c.Major != nil {
			textCell(tr, *c.Major)
		} else {
			dom.SetAttr(role, "colspan", "2")
		}
		linkCell(tr, c.Role+"/"+itoa(c.ID)+"/")
	}
	return s.commit(frag)
}
