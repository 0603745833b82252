package components

import "github.com/decker502/virtuallab/pkg/types"

// InteractableComponent 标记实体为可交互道具
// 身份在资源加载完成后注册时确定，之后不再改变
type InteractableComponent struct {
	Identity types.ObjectIdentity

	// IsDraggable 当前是否可被拖拽
	// 仅在门控步骤为 armDrag 且被点击后置为 true，碰撞推进后复位
	IsDraggable bool

	// IsHighlighted 当前是否处于悬停高亮状态（每次指针移动重新计算）
	IsHighlighted bool
}
