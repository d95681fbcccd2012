package view

import (
	"errors"
	htmltemplate "html/template"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/net/html"

	"exam-portal/web/internal/model"
	"exam-portal/web/pkg/dom"
)

// ErrStale 调用令牌已被更新的页面调用取代，写入被丢弃
var ErrStale = errors.New("页面调用已过期")

// Token 一次页面调用的令牌，由 Begin 签发
type Token uint64

// Snapshot 各区域的序列化结果，供布局模板渲染
type Snapshot struct {
	Title    string
	Career   htmltemplate.HTML
	BackLink htmltemplate.HTML
	Content  htmltemplate.HTML
}

// State 一个会话的可见视图：标题、学籍栏、返回链接与内容区。
// 只有持有最新令牌的页面调用可以写入；事件处理器通过 Do 修改已挂载的节点。
type State struct {
	mu       sync.Mutex
	seq      Token
	title    string
	career   *html.Node
	backLink *html.Node
	content  *html.Node
	handlers map[dom.Key]dom.Handler
}

// New 创建空视图
func New() *State {
	return &State{
		career:   dom.Element("div"),
		backLink: dom.Element("div"),
		content:  dom.Element("div"),
		handlers: make(map[dom.Key]dom.Handler),
	}
}

// Begin 开始一次页面调用：签发新令牌并设置标题，之前签发的令牌全部失效
func (s *State) Begin(title string) Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.title = title
	return s.seq
}

// Current 令牌是否仍是最新一次调用
func (s *State) Current(t Token) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return t == s.seq
}

// ClearBackLink 清空返回链接
func (s *State) ClearBackLink(t Token) error {
	return s.write(t, func() { dom.RemoveChildren(s.backLink) })
}

// ShowBackLink 显示返回链接，href 相对当前页面
func (s *State) ShowBackLink(t Token, text, href string) error {
	return s.write(t, func() {
		a := dom.Element("a", "class", "back-link", "href", href)
		dom.SetText(a, "← "+text)
		dom.ReplaceChildren(s.backLink, a)
	})
}

// ClearCareer 清空学籍栏
func (s *State) ClearCareer(t Token) error {
	return s.write(t, func() { dom.RemoveChildren(s.career) })
}

// ShowCareer 在学籍栏显示当前学籍
func (s *State) ShowCareer(t Token, c model.Career) error {
	return s.write(t, func() {
		span := dom.Element("span", "class", "career")
		dom.SetText(span, CareerLabel(c))
		dom.ReplaceChildren(s.career, span)
	})
}

// CareerLabel 学籍的展示文本，如 "Student 12 · Computer Engineering"
func CareerLabel(c model.Career) string {
	var b strings.Builder
	b.WriteString(Capitalize(c.Role))
	b.WriteByte(' ')
	b.WriteString(strconv.FormatInt(c.ID, 10))
	if c.Major != nil && *c.Major != "" {
		b.WriteString(" · ")
		b.WriteString(*c.Major)
	}
	return b.String()
}

// Capitalize 首字母大写
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Commit 用片段整体替换内容区，并以片段注册的处理器替换当前处理器
func (s *State) Commit(t Token, frags ...*dom.Fragment) error {
	return s.write(t, func() {
		dom.RemoveChildren(s.content)
		s.handlers = make(map[dom.Key]dom.Handler)
		for _, f := range frags {
			s.attach(f)
		}
	})
}

// Append 把片段追加到内容区末尾，保留已有处理器
func (s *State) Append(t Token, frag *dom.Fragment) error {
	return s.write(t, func() { s.attach(frag) })
}

func (s *State) attach(f *dom.Fragment) {
	for k, h := range f.Handlers() {
		s.handlers[k] = h
	}
	dom.Append(s.content, f.Detach()...)
}

func (s *State) write(t Token, fn func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t != s.seq {
		return ErrStale
	}
	fn()
	return nil
}

// Do 在视图锁内修改已挂载的节点（事件处理器中的就地重绘）
func (s *State) Do(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// Handler 查找事件处理器；目标元素必须仍在内容区中
func (s *State) Handler(k dom.Key) (dom.Handler, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.handlers[k]
	if !ok || dom.FindByID(s.content, k.ID) == nil {
		return nil, false
	}
	return h, true
}

// Snapshot 序列化全部区域
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Title:    s.title,
		Career:   htmltemplate.HTML(dom.InnerHTML(s.career)),
		BackLink: htmltemplate.HTML(dom.InnerHTML(s.backLink)),
		Content:  htmltemplate.HTML(dom.InnerHTML(s.content)),
	}
}

// ContentHTML 内容区 HTML（就地重绘时只回传内容区）
func (s *State) ContentHTML() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return dom.InnerHTML(s.content)
}
