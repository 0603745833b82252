package math3d

import "math"

// PerspectiveCamera 透视镜头
// 镜头朝向由 Position 和 Target 决定，Up 为参考上方向
type PerspectiveCamera struct {
	Position Vec3
	Target   Vec3
	Up       Vec3

	FOV  float64 // 垂直视场角（度）
	Near float64
	Far  float64

	// 视口尺寸（像素），用于屏幕坐标与射线的换算
	Width  float64
	Height float64
}

// NewPerspectiveCamera 创建镜头
func NewPerspectiveCamera(fov, near, far, width, height float64) *PerspectiveCamera {
	return &PerspectiveCamera{
		Up:     Vec3{0, 1, 0},
		FOV:    fov,
		Near:   near,
		Far:    far,
		Width:  width,
		Height: height,
	}
}

// LookAt 设置镜头观察点
func (c *PerspectiveCamera) LookAt(target Vec3) {
	c.Target = target
}

// SetViewport 更新视口尺寸（窗口大小变化时调用）
func (c *PerspectiveCamera) SetViewport(width, height float64) {
	c.Width = width
	c.Height = height
}

// Aspect 视口宽高比
func (c *PerspectiveCamera) Aspect() float64 {
	if c.Height <= 0 {
		return 1
	}
	return c.Width / c.Height
}

// Basis 返回镜头空间的三个世界坐标轴：右、上、后（-视线方向）
func (c *PerspectiveCamera) Basis() (right, up, back Vec3) {
	forward := c.Target.Sub(c.Position).Normalize()
	right = forward.Cross(c.Up).Normalize()
	if right.Length() < Epsilon {
		// 视线与 Up 平行时退化，取任意右方向
		right = Vec3{1, 0, 0}
	}
	up = right.Cross(forward)
	back = forward.Scale(-1)
	return right, up, back
}

// Quaternion 镜头在世界坐标中的朝向
func (c *PerspectiveCamera) Quaternion() Quat {
	right, up, back := c.Basis()
	return QuatFromBasis(right, up, back).Normalize()
}

// LocalToWorld 将镜头空间的点变换到世界坐标
func (c *PerspectiveCamera) LocalToWorld(local Vec3) Vec3 {
	right, up, back := c.Basis()
	return c.Position.
		Add(right.Scale(local.X)).
		Add(up.Scale(local.Y)).
		Add(back.Scale(local.Z))
}

// WorldToLocal 将世界坐标点变换到镜头空间
func (c *PerspectiveCamera) WorldToLocal(p Vec3) Vec3 {
	right, up, back := c.Basis()
	d := p.Sub(c.Position)
	return Vec3{d.Dot(right), d.Dot(up), d.Dot(back)}
}

// Project 将世界坐标点投影到屏幕
// 返回屏幕坐标与视线方向深度；点在近裁剪面之前时 ok 为 false
func (c *PerspectiveCamera) Project(p Vec3) (sx, sy, depth float64, ok bool) {
	local := c.WorldToLocal(p)
	depth = -local.Z
	if depth < c.Near || depth > c.Far {
		return 0, 0, depth, false
	}

	f := 1 / math.Tan(c.FOV*math.Pi/360)
	ndcX := local.X * f / (c.Aspect() * depth)
	ndcY := local.Y * f / depth

	sx = (ndcX + 1) / 2 * c.Width
	sy = (1 - ndcY) / 2 * c.Height
	return sx, sy, depth, true
}

// ScreenRay 由屏幕坐标生成拾取射线
func (c *PerspectiveCamera) ScreenRay(sx, sy float64) Ray {
	ndcX := sx/c.Width*2 - 1
	ndcY := -(sy/c.Height*2 - 1)
	tanHalf := math.Tan(c.FOV * math.Pi / 360)

	right, up, back := c.Basis()
	dir := right.Scale(ndcX * tanHalf * c.Aspect()).
		Add(up.Scale(ndcY * tanHalf)).
		Add(back.Scale(-1))

	return Ray{Origin: c.Position, Direction: dir.Normalize()}
}
