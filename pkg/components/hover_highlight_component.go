package components

import "github.com/decker502/virtuallab/pkg/scene"

// HoverHighlightComponent 悬停高亮组件
// 通过修改部件自发光颜色实现持续高亮（不闪烁）
//
// Originals 记录每个部件第一次被修改前的自发光颜色；
// 同一部件只记录一次，之后的高亮/清除循环都恢复到这个值。
type HoverHighlightComponent struct {
	Originals map[*scene.Part]scene.Color

	// Color 当前施加的颜色
	Color scene.Color

	// IsActive 是否正在施加颜色
	IsActive bool
}
