package app

import (
	"strings"

	"exam-portal/web/internal/page"
)

// Route 页面路由；Pattern 中以 ":" 开头的段为参数，末尾斜杠有意义
type Route struct {
	Pattern string
	Kind    page.Kind
	// Auth 需要登录
	Auth bool
	// Role 固定的学籍角色；为空时取自 :role 参数
	Role string
	// Career 路由中的 :id 必须是当前身份的学籍
	Career bool
}

var routes = []Route{
	{Pattern: "/login", Kind: page.KindLogin},
	{Pattern: "/logout", Kind: page.KindLogout},
	{Pattern: "/inside/careers", Kind: page.KindCareers, Auth: true},
	{Pattern: "/inside/:role/:id/", Kind: page.KindCurrentYear, Auth: true, Career: true},
	{Pattern: "/inside/student/:id/:year", Kind: page.KindStudentExams, Auth: true, Role: "student", Career: true},
	{Pattern: "/inside/professor/:id/:year", Kind: page.KindProfessorExams, Auth: true, Role: "professor", Career: true},
	{Pattern: "/inside/student/:id/exam/:examId/", Kind: page.KindStudentExamRegistration, Auth: true, Role: "student", Career: true},
	{Pattern: "/inside/professor/:id/exam/:examId/", Kind: page.KindProfExamRegistrations, Auth: true, Role: "professor", Career: true},
	{Pattern: "/inside/professor/:id/exam/:examId/reg/:studentId", Kind: page.KindProfEditExam, Auth: true, Role: "professor", Career: true},
	{Pattern: "/inside/professor/:id/exam/:examId/records", Kind: page.KindRecords, Auth: true, Role: "professor", Career: true},
}

var notFound = Route{Pattern: "", Kind: page.KindDefault}

// Match 按路由表匹配路径，返回路由与参数
func Match(path string) (Route, page.Params, bool) {
	segs := strings.Split(path, "/")
	for _, r := range routes {
		if params, ok := matchPattern(r.Pattern, segs); ok {
			if r.Role != "" {
				params["role"] = r.Role
			}
			return r, params, true
		}
	}
	return notFound, page.Params{}, false
}

func matchPattern(pattern string, segs []string) (page.Params, bool) {
	want := strings.Split(pattern, "/")
	if len(want) != len(segs) {
		return nil, false
	}
	params := page.Params{}
	for i, w := range want {
		switch {
		case strings.HasPrefix(w, ":"):
			if segs[i] == "" {
				return nil, false
			}
			params[w[1:]] = segs[i]
		case w != segs[i]:
			return nil, false
		}
	}
	return params, true
}

// Canonical 路径缺少末尾斜杠而补上后可以匹配时，返回补全后的路径
func Canonical(path string) (string, bool) {
	if strings.HasSuffix(path, "/") {
		return "", false
	}
	if _, _, ok := Match(path + "/"); ok {
		return path + "/", true
	}
	return "", false
}
