package dom

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element 创建元素节点，attrs 为 key, value 交替排列
func Element(tag string, attrs ...string) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for i := 0; i+1 < len(attrs); i += 2 {
		SetAttr(n, attrs[i], attrs[i+1])
	}
	return n
}

// Text 创建文本节点
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Attr 读取属性
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr 设置属性，已存在则覆盖
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// DelAttr 删除属性
func DelAttr(n *html.Node, key string) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		kept = append(kept, a)
	}
	n.Attr = kept
}

// ID 返回元素 id
func ID(n *html.Node) string {
	id, _ := Attr(n, "id")
	return id
}

// Append 追加子节点；已挂载在其他父节点下的子节点先被摘下
func Append(parent *html.Node, children ...*html.Node) {
	for _, c := range children {
		if c.Parent != nil {
			c.Parent.RemoveChild(c)
		}
		parent.AppendChild(c)
	}
}

// Remove 将节点从父节点摘下
func Remove(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// RemoveChildren 清空子节点
func RemoveChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
}

// ReplaceChildren 用 children 替换全部子节点
func ReplaceChildren(n *html.Node, children ...*html.Node) {
	RemoveChildren(n)
	Append(n, children...)
}

// SetText 替换为文本内容，换行渲染为 <br>
func SetText(n *html.Node, s string) {
	RemoveChildren(n)
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			n.AppendChild(Element("br"))
		}
		if line != "" {
			n.AppendChild(Text(line))
		}
	}
}

// TextContent 拼接全部后代文本，<br> 视为换行
func TextContent(n *html.Node) string {
	var b strings.Builder
	Walk(n, func(c *html.Node) bool {
		switch {
		case c.Type == html.TextNode:
			b.WriteString(c.Data)
		case c.Type == html.ElementNode && c.DataAtom == atom.Br:
			b.WriteByte('\n')
		}
		return true
	})
	return b.String()
}

// InsertRow 在表格（或 tbody）末尾追加一行
func InsertRow(table *html.Node) *html.Node {
	tr := Element("tr")
	table.AppendChild(tr)
	return tr
}

// InsertCell 在行末尾追加单元格
func InsertCell(tr *html.Node) *html.Node {
	td := Element("td")
	tr.AppendChild(td)
	return td
}

// Walk 先序遍历，fn 返回 false 时跳过该节点的子树
func Walk(n *html.Node, fn func(*html.Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		Walk(c, fn)
	}
}

// FindByID 在子树中按 id 查找元素
func FindByID(root *html.Node, id string) *html.Node {
	var found *html.Node
	Walk(root, func(n *html.Node) bool {
		if found != nil {
			return false
		}
		if n.Type == html.ElementNode && ID(n) == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// Contains 判断 n 是否位于 root 子树中
func Contains(root, n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p == root {
			return true
		}
	}
	return false
}

// Clone 深拷贝节点（不含父节点与兄弟节点）
func Clone(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(Clone(child))
	}
	return c
}

// Render 序列化节点
func Render(w io.Writer, nodes ...*html.Node) error {
	for _, n := range nodes {
		if err := html.Render(w, n); err != nil {
			return err
		}
	}
	return nil
}

// RenderChildren 序列化 n 的全部子节点
func RenderChildren(w io.Writer, n *html.Node) error {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(w, c); err != nil {
			return err
		}
	}
	return nil
}

// InnerHTML 返回子节点序列化结果
func InnerHTML(n *html.Node) string {
	var buf bytes.Buffer
	_ = RenderChildren(&buf, n)
	return buf.String()
}
