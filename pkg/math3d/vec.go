// Package math3d 提供实验场景使用的最小三维数学工具
//
// 坐标系约定：右手坐标系，Y 轴向上，镜头空间中 -Z 为视线方向。
// 所有类型均为值类型，方法不修改接收者。
package math3d

import "math"

// Epsilon 浮点比较容差
const Epsilon = 1e-9

// Vec2 二维向量（拖拽偏移使用 X/Z 平面分量）
type Vec2 struct {
	X, Y float64
}

// Vec3 三维向量
type Vec3 struct {
	X, Y, Z float64
}

// V3 构造三维向量的便捷函数
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Mul 分量相乘（用于缩放）
func (v Vec3) Mul(o Vec3) Vec3 {
	return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize 返回单位向量；零向量原样返回
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l < Epsilon {
		return v
	}
	return v.Scale(1 / l)
}

// Clamp 将每个分量限制在 [min, max] 范围内
func (v Vec3) Clamp(min, max Vec3) Vec3 {
	return Vec3{
		math.Max(min.X, math.Min(max.X, v.X)),
		math.Max(min.Y, math.Min(max.Y, v.Y)),
		math.Max(min.Z, math.Min(max.Z, v.Z)),
	}
}

// ApproxEqual 在给定容差内比较两个向量
func (v Vec3) ApproxEqual(o Vec3, tol float64) bool {
	return math.Abs(v.X-o.X) <= tol && math.Abs(v.Y-o.Y) <= tol && math.Abs(v.Z-o.Z) <= tol
}

// ApproxEqual 在给定容差内比较两个二维向量
func (v Vec2) ApproxEqual(o Vec2, tol float64) bool {
	return math.Abs(v.X-o.X) <= tol && math.Abs(v.Y-o.Y) <= tol
}
