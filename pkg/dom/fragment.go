package dom

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync/atomic"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrMissingElement 片段中缺少指定 id 的元素
var ErrMissingElement = errors.New("片段缺少元素")

var autoID atomic.Uint64

// Fragment 游离的可克隆子树，填充完成后整体挂载到视图
type Fragment struct {
	root     *html.Node
	handlers map[Key]Handler
}

// NewFragment 创建空片段
func NewFragment(nodes ...*html.Node) *Fragment {
	f := &Fragment{
		root:     &html.Node{Type: html.DocumentNode},
		handlers: make(map[Key]Handler),
	}
	Append(f.root, nodes...)
	return f
}

// ParseFragment 以 <body> 为上下文解析 HTML 片段
func ParseFragment(r io.Reader) (*Fragment, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(r, ctx)
	if err != nil {
		return nil, fmt.Errorf("解析片段失败: %w", err)
	}
	return NewFragment(nodes...), nil
}

// Clone 深拷贝片段内容，事件处理器不随之复制
func (f *Fragment) Clone() *Fragment {
	c := NewFragment()
	for n := f.root.FirstChild; n != nil; n = n.NextSibling {
		c.root.AppendChild(Clone(n))
	}
	return c
}

// Root 片段容器节点
func (f *Fragment) Root() *html.Node {
	return f.root
}

// GetElementByID 按 id 查找元素，不存在时返回 nil
func (f *Fragment) GetElementByID(id string) *html.Node {
	return FindByID(f.root, id)
}

// MustElement 按 id 查找元素，不存在时返回 ErrMissingElement
func (f *Fragment) MustElement(id string) (*html.Node, error) {
	if n := f.GetElementByID(id); n != nil {
		return n, nil
	}
	return nil, fmt.Errorf("%w: #%s", ErrMissingElement, id)
}

// On 为元素注册事件处理器；元素没有 id 时自动分配
func (f *Fragment) On(el *html.Node, typ string, h Handler) {
	id := ID(el)
	if id == "" {
		id = "ev-" + strconv.FormatUint(autoID.Add(1), 10)
		SetAttr(el, "id", id)
	}
	Bind(el, typ)
	f.handlers[Key{ID: id, Type: typ}] = h
}

// Handlers 已注册的事件处理器
func (f *Fragment) Handlers() map[Key]Handler {
	return f.handlers
}

// Detach 取出片段的顶层节点，片段随之清空
func (f *Fragment) Detach() []*html.Node {
	var nodes []*html.Node
	for n := f.root.FirstChild; n != nil; n = f.root.FirstChild {
		f.root.RemoveChild(n)
		nodes = append(nodes, n)
	}
	return nodes
}

// Render 序列化片段内容
func (f *Fragment) Render(w io.Writer) error {
	return RenderChildren(w, f.root)
}

// String 片段 HTML
func (f *Fragment) String() string {
	return InnerHTML(f.root)
}
