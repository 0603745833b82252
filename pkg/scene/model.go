package scene

import (
	"github.com/decker502/virtuallab/pkg/math3d"
)

// Model 由长方体部件组成的道具模型
type Model struct {
	name      string
	transform math3d.Transform
	visible   bool
	parts     []*Part
}

// NewModel 创建道具模型，初始为单位变换且可见
func NewModel(name string, parts []*Part) *Model {
	return &Model{
		name:      name,
		transform: math3d.IdentityTransform(),
		visible:   true,
		parts:     parts,
	}
}

func (m *Model) Name() string { return m.name }

// SetName 修改名称（克隆出的第二只手套使用）
func (m *Model) SetName(name string) { m.name = name }

func (m *Model) Position() math3d.Vec3     { return m.transform.Position }
func (m *Model) SetPosition(p math3d.Vec3) { m.transform.Position = p }

func (m *Model) Rotation() math3d.Quat     { return m.transform.Rotation }
func (m *Model) SetRotation(q math3d.Quat) { m.transform.Rotation = q.Normalize() }

func (m *Model) Scale() math3d.Vec3     { return m.transform.Scale }
func (m *Model) SetScale(s math3d.Vec3) { m.transform.Scale = s }

func (m *Model) Visible() bool           { return m.visible }
func (m *Model) SetVisible(visible bool) { m.visible = visible }

// Transform 返回模型的局部到世界变换
func (m *Model) Transform() math3d.Transform {
	return m.transform
}

// Traverse 按声明顺序访问每个部件
func (m *Model) Traverse(fn func(p *Part)) {
	for _, p := range m.parts {
		fn(p)
	}
}

// PartWorldBounds 返回部件在世界坐标中的包围盒
func (m *Model) PartWorldBounds(p *Part) math3d.Box3 {
	return p.Bounds.Transform(m.transform)
}

// WorldBounds 返回所有部件世界包围盒的并集
func (m *Model) WorldBounds() math3d.Box3 {
	box := math3d.EmptyBox()
	for _, p := range m.parts {
		box = box.Union(m.PartWorldBounds(p))
	}
	return box
}

// Clone 深拷贝模型，部件各自独立（高亮互不影响）
func (m *Model) Clone() *Model {
	parts := make([]*Part, len(m.parts))
	for i, p := range m.parts {
		cp := *p
		parts[i] = &cp
	}
	return &Model{
		name:      m.name,
		transform: m.transform,
		visible:   m.visible,
		parts:     parts,
	}
}
