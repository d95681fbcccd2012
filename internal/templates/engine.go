package templates

import (
	"context"
	"embed"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"io/fs"
	"os"
	"path"
	"sync"

	"go.uber.org/zap"

	"exam-portal/web/pkg/dom"
)

//go:embed html/*.html
var fragmentsFS embed.FS

//go:embed layout.html
var layoutSource string

// ErrTemplateNotFound 模板不存在
var ErrTemplateNotFound = errors.New("模板不存在")

// Loader 模板片段加载器：按名称返回可独立填充的片段副本
type Loader interface {
	Get(ctx context.Context, name string) (*dom.Fragment, error)
}

// Engine 基于文件系统的模板片段加载器，解析结果按名称缓存
type Engine struct {
	fsys   fs.FS
	logger *zap.Logger

	mu    sync.RWMutex
	cache map[string]*dom.Fragment
}

// NewEngine 创建加载器；dir 为空时使用内置模板
func NewEngine(dir string, logger *zap.Logger) (*Engine, error) {
	var fsys fs.FS
	if dir == "" {
		sub, err := fs.Sub(fragmentsFS, "html")
		if err != nil {
			return nil, fmt.Errorf("加载内置模板失败: %w", err)
		}
		fsys = sub
	} else {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("模板目录不可用: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("模板目录不可用: %s 不是目录", dir)
		}
		fsys = os.DirFS(dir)
	}
	return &Engine{
		fsys:   fsys,
		logger: logger,
		cache:  make(map[string]*dom.Fragment),
	}, nil
}

// Get 返回模板片段的深拷贝
func (e *Engine) Get(ctx context.Context, name string) (*dom.Fragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.RLock()
	frag, ok := e.cache[name]
	e.mu.RUnlock()
	if ok {
		return frag.Clone(), nil
	}

	frag, err := e.load(name)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.cache[name] = frag
	e.mu.Unlock()

	return frag.Clone(), nil
}

func (e *Engine) load(name string) (*dom.Fragment, error) {
	if !fs.ValidPath(name) || path.Base(name) != name {
		return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	f, err := e.fsys.Open(name + ".html")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
		}
		return nil, fmt.Errorf("读取模板 %q 失败: %w", name, err)
	}
	defer f.Close()

	frag, err := dom.ParseFragment(f)
	if err != nil {
		return nil, fmt.Errorf("模板 %q: %w", name, err)
	}
	e.logger.Debug("模板已加载", zap.String("name", name))
	return frag, nil
}

// Layout 页面外壳模板（标题、学籍、返回链接、内容区）
func Layout() (*htmltemplate.Template, error) {
	return htmltemplate.New("layout").Parse(layoutSource)
}
