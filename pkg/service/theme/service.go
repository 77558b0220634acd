/*
 * @Description: 主题色 CSS 变量服务
 * @Author: 安知鱼
 * @Date: 2025-09-18 11:00:00
 * @LastEditTime: 2025-10-24 14:05:51
 * @LastEditors: 安知鱼
 */
package theme

import (
	"fmt"
	"log"
	"regexp"
	"strings"
	"sync"

	"github.com/anzhiyu-c/anheyu-site/internal/configdef"
	"github.com/anzhiyu-c/anheyu-site/pkg/constant"
	"github.com/anzhiyu-c/anheyu-site/pkg/cssvar"
	"github.com/anzhiyu-c/anheyu-site/pkg/siteconfig"
)

const (
	// RootSelector 主题变量挂载的选择器
	RootSelector = ":root"

	VarTheme   = "--anzhiyu-theme"
	VarMain    = "--anzhiyu-main"
	VarThemeOp = "--anzhiyu-theme-op"

	// 主题色半透明版本使用的透明度后缀
	themeOpAlpha = "23"
)

var (
	hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	// 变量名只允许 -- 开头的 CSS 自定义属性名
	varNamePattern = regexp.MustCompile(`^--[A-Za-z0-9_-]+$`)
)

// Service 维护站点的主题 CSS 变量
type Service interface {
	// Refresh 根据站点配置重新计算主题变量
	Refresh(cfg siteconfig.Data)
	// Stylesheet 返回当前主题变量的样式表
	Stylesheet() string
	// Preview 临时应用 overrides 后渲染样式表，结束后恢复原状态。值为空表示移除该变量。
	Preview(overrides map[string]string) (string, error)
}

type service struct {
	mu    sync.RWMutex
	props *cssvar.PropertyMap
}

// NewService 创建主题服务，初始使用默认主题色
func NewService() Service {
	s := &service{props: cssvar.NewPropertyMap(nil)}
	s.Refresh(configdef.WithDefaults(nil))
	return s
}

// Variables 根据主题色计算主题变量
func Variables(themeColor string) map[string]string {
	color := strings.TrimSpace(themeColor)
	if color == "" {
		color, _ = configdef.Value(constant.KeyThemeColor)
	}
	vars := map[string]string{
		VarTheme: color,
		VarMain:  color,
	}
	if hexColorPattern.MatchString(color) {
		vars[VarThemeOp] = color + themeOpAlpha
	}
	return vars
}

func (s *service) Refresh(cfg siteconfig.Data) {
	vars := Variables(cfg.String(constant.KeyThemeColor.String()))
	s.mu.Lock()
	s.props.Replace(vars)
	s.mu.Unlock()
	log.Printf("[Theme] 主题变量已刷新: %s=%s", VarTheme, vars[VarTheme])
}

func (s *service) Stylesheet() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.props.Render(RootSelector)
}

func (s *service) Preview(overrides map[string]string) (string, error) {
	names := make([]string, 0, len(overrides))
	for name, value := range overrides {
		if !varNamePattern.MatchString(name) {
			return "", fmt.Errorf("%w: %q", constant.ErrInvalidCSSVariable, name)
		}
		if strings.ContainsAny(value, ";{}<>") {
			return "", fmt.Errorf("%w: %q 的值包含非法字符", constant.ErrInvalidCSSVariable, name)
		}
		names = append(names, name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := cssvar.Take(names, s.props)
	for name, value := range overrides {
		if strings.TrimSpace(value) == "" {
			s.props.RemoveProperty(name)
			continue
		}
		s.props.SetProperty(name, strings.TrimSpace(value))
	}
	css := s.props.Render(RootSelector)
	cssvar.Restore(snapshot, s.props)
	return css, nil
}
