package dom

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// EventEndpoint 浏览器回传界面事件的地址
var EventEndpoint = "/ui/events"

// 事件类型
const (
	EventSubmit = "submit"
	EventClick  = "click"
)

// Event 浏览器回传的界面事件
type Event struct {
	Type   string
	Target string
	Form   url.Values
}

// Value 读取表单字段
func (e Event) Value(name string) string {
	return e.Form.Get(name)
}

// Checked 复选框是否勾选（未勾选的复选框不会随表单提交）
func (e Event) Checked(name string) bool {
	v := e.Form.Get(name)
	return v != "" && v != "false"
}

// Int 读取整数表单字段，空值与非法值视为 0
func (e Event) Int(name string) int {
	n, err := strconv.Atoi(strings.TrimSpace(e.Form.Get(name)))
	if err != nil {
		return 0
	}
	return n
}

// Handler 事件处理函数
type Handler func(ctx context.Context, ev Event)

// Key 事件处理器索引（元素 id + 事件类型）
type Key struct {
	ID   string
	Type string
}

// Bind 为元素声明回传属性，浏览器端据此把事件 POST 到 EventEndpoint
func Bind(el *html.Node, typ string) {
	id := ID(el)
	vals, _ := json.Marshal(map[string]string{"_target": id, "_event": typ})
	SetAttr(el, "data-event", typ)
	SetAttr(el, "hx-post", EventEndpoint)
	SetAttr(el, "hx-trigger", typ)
	SetAttr(el, "hx-vals", string(vals))
	if typ != EventSubmit {
		SetAttr(el, "hx-include", "closest form")
	}
}
