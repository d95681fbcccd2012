package page

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"exam-portal/web/internal/model"
)

func content(t *testing.T, f *fixture) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(f.env.View.ContentHTML()))
	if err != nil {
		t.Fatalf("解析内容区失败: %v", err)
	}
	return doc
}

func TestParams_ID(t *testing.T) {
	p := Params{"id": "12", "bad": "abc", "neg": "-1"}

	if n, err := p.ID("id"); err != nil || n != 12 {
		t.Errorf("期望 12，实际=%d err=%v", n, err)
	}
	for _, name := range []string{"bad", "neg", "missing"} {
		_, err := p.ID(name)
		var pe *ParamError
		if !errors.Is(err, ErrBadParam) || !errors.As(err, &pe) || pe.Name != name {
			t.Errorf("ID(%q) 期望 ParamError，实际: %v", name, err)
		}
	}
}

func TestDefaultPage(t *testing.T) {
	f := newFixture(t)
	if out := New(KindDefault, f.env).Show(context.Background(), nil); out != Rendered {
		t.Fatalf("期望 Rendered，实际=%v", out)
	}
	if !strings.Contains(f.env.View.ContentHTML(), "PAGE NOT FOUND") {
		t.Error("期望显示 PAGE NOT FOUND")
	}
}

func TestLoginPage_SubmitSuccess(t *testing.T) {
	f := newFixture(t)
	New(KindLogin, f.env).Show(context.Background(), nil)

	f.dispatch(t, "loginForm", "submit", map[string][]string{
		"person_code": {"10712345"}, "password": {"pw"}, "all_day": {"true"},
	})

	if len(f.nav.navigated) != 1 || f.nav.navigated[0] != "/inside/careers" {
		t.Errorf("登录成功应跳转到 /inside/careers，实际=%v", f.nav.navigated)
	}
	if !f.session.identity.AllDay {
		t.Error("all_day 勾选应传递给登录")
	}
}

func TestLoginPage_SubmitError(t *testing.T) {
	f := newFixture(t)
	f.session.loginErr = errBackend
	New(KindLogin, f.env).Show(context.Background(), nil)

	f.dispatch(t, "loginForm", "submit", map[string][]string{"person_code": {"x"}, "password": {"y"}})

	if len(f.nav.navigated) != 0 {
		t.Errorf("登录失败不应跳转，实际=%v", f.nav.navigated)
	}
	if got := content(t, f).Find("#login_error").Text(); got != "backend down" {
		t.Errorf("错误区应显示后端信息，实际=%q", got)
	}
}

func TestLoginPage_TemplateFailure(t *testing.T) {
	f := newFixture(t)
	f.env.Templates = &failingLoader{next: f.env.Templates, fail: "login"}

	if out := New(KindLogin, f.env).Show(context.Background(), nil); out != Failed {
		t.Errorf("期望 Failed，实际=%v", out)
	}
	if len(f.nav.redirects) != 0 {
		t.Error("登录页失败不应跳转")
	}
}

func TestLogoutPage(t *testing.T) {
	f := newFixture(t)
	f.session.identity = &model.Identity{}

	if out := New(KindLogout, f.env).Show(context.Background(), nil); out != Redirected {
		t.Fatalf("期望 Redirected，实际=%v", out)
	}
	if !f.session.loggedOut || f.nav.redirects[0] != "/login" {
		t.Errorf("期望登出并跳转 /login，实际 redirects=%v", f.nav.redirects)
	}
}

func TestCurrentYearPage(t *testing.T) {
	f := newFixture(t)
	New(KindCurrentYear, f.env).Show(context.Background(), Params{"role": "student", "id": "5"})

	if len(f.nav.redirects) != 1 || f.nav.redirects[0] != "2026" {
		t.Errorf("期望跳转到当前年份，实际=%v", f.nav.redirects)
	}
}

func TestCareersPage(t *testing.T) {
	f := newFixture(t)
	major := "Computer Engineering"
	f.session.identity = &model.Identity{Careers: []model.Career{
		{ID: 1, Role: "student", Major: &major},
		{ID: 2, Role: "professor"},
	}}

	if out := New(KindCareers, f.env).Show(context.Background(), nil); out != Rendered {
		t.Fatalf("期望 Rendered，实际=%v", out)
	}
	rows := content(t, f).Find("#careers_tbody tr")
	if rows.Length() != 2 {
		t.Fatalf("期望 2 行，实际=%d", rows.Length())
	}
	if got := rows.Eq(0).Find("td").Eq(1).Text(); got != "Student" {
		t.Errorf("角色应首字母大写，实际=%q", got)
	}
	if span, _ := rows.Eq(1).Find("td").Eq(1).Attr("colspan"); span != "2" {
		t.Errorf("无专业时角色列应跨两列，实际=%q", span)
	}
	if href, _ := rows.Eq(1).Find("a").Attr("href"); href != "professor/2/" {
		t.Errorf("链接不符，实际=%q", href)
	}
}

func TestCareersPage_NoIdentity(t *testing.T) {
	f := newFixture(t)
	if out := New(KindCareers, f.env).Show(context.Background(), nil); out != Redirected {
		t.Fatalf("期望 Redirected，实际=%v", out)
	}
	if f.nav.redirects[0] != "/login" {
		t.Errorf("期望跳转 /login，实际=%v", f.nav.redirects)
	}
}
