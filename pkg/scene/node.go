// Package scene 提供实验场景的最小场景图
//
// 交互逻辑只通过 Node 接口访问场景对象（位置、旋转、可见性、遍历部件），
// 不依赖具体的渲染实现。Model 是 Node 的默认实现：由若干长方体部件组成的道具。
package scene

import (
	"github.com/decker502/virtuallab/pkg/math3d"
)

// Color 以 0xRRGGBB 表示的颜色
type Color uint32

// RGB 拆分为 0-255 的三个分量
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Part 道具的一个可渲染部件（长方体）
type Part struct {
	Name string

	// Bounds 部件在道具局部坐标中的包围盒
	Bounds math3d.Box3

	// Color 基础颜色
	Color Color

	// Emissive 自发光颜色，悬停高亮通过修改此值实现
	Emissive Color
}

// Node 可定位、可遍历的场景节点
type Node interface {
	Name() string

	Position() math3d.Vec3
	SetPosition(p math3d.Vec3)

	Rotation() math3d.Quat
	SetRotation(q math3d.Quat)

	Visible() bool
	SetVisible(visible bool)

	// Transform 局部到世界的变换（渲染使用）
	Transform() math3d.Transform

	// Traverse 按声明顺序访问每个部件
	Traverse(fn func(p *Part))

	// PartWorldBounds 返回部件在世界坐标中的包围盒
	PartWorldBounds(p *Part) math3d.Box3

	// WorldBounds 返回整个节点在世界坐标中的包围盒
	WorldBounds() math3d.Box3
}
