package math3d

import "math"

// Ray 射线：Origin + t*Direction (t >= 0)
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// At 返回射线上参数 t 处的点
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// IntersectBox 射线与包围盒求交（slab 算法）
// 返回最近交点的参数 t；射线起点在盒内时返回 0
func (r Ray) IntersectBox(b Box3) (float64, bool) {
	if b.IsEmpty() {
		return 0, false
	}

	tMin := math.Inf(-1)
	tMax := math.Inf(1)

	origin := [3]float64{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float64{r.Direction.X, r.Direction.Y, r.Direction.Z}
	lo := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}

	for i := 0; i < 3; i++ {
		if math.Abs(dir[i]) < Epsilon {
			// 射线与该轴平行，起点必须落在 slab 内
			if origin[i] < lo[i] || origin[i] > hi[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / dir[i]
		t1 := (lo[i] - origin[i]) * inv
		t2 := (hi[i] - origin[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}

	if tMax < 0 {
		return 0, false
	}
	if tMin < 0 {
		return 0, true
	}
	return tMin, true
}

// Plane 平面：Normal·p + Constant = 0
type Plane struct {
	Normal   Vec3
	Constant float64
}

// HorizontalPlane 返回高度为 y 的水平面（法线朝上）
func HorizontalPlane(y float64) Plane {
	return Plane{Normal: Vec3{0, 1, 0}, Constant: -y}
}

// DistanceToPoint 点到平面的有符号距离
func (p Plane) DistanceToPoint(v Vec3) float64 {
	return p.Normal.Dot(v) + p.Constant
}

// IntersectPlane 射线与平面求交
// 射线平行于平面或交点在射线起点之后时返回 false
func (r Ray) IntersectPlane(p Plane) (Vec3, bool) {
	denom := p.Normal.Dot(r.Direction)
	if math.Abs(denom) < Epsilon {
		if math.Abs(p.DistanceToPoint(r.Origin)) < Epsilon {
			return r.Origin, true
		}
		return Vec3{}, false
	}

	t := -(r.Origin.Dot(p.Normal) + p.Constant) / denom
	if t < 0 {
		return Vec3{}, false
	}
	return r.At(t), true
}
