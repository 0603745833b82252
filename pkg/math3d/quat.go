package math3d

import "math"

// Quat 单位四元数，表示旋转
type Quat struct {
	X, Y, Z, W float64
}

// QuatIdentity 返回不旋转的四元数
func QuatIdentity() Quat {
	return Quat{W: 1}
}

// QuatFromEuler 按 XYZ 顺序由欧拉角（弧度）构造四元数
func QuatFromEuler(x, y, z float64) Quat {
	c1, s1 := math.Cos(x/2), math.Sin(x/2)
	c2, s2 := math.Cos(y/2), math.Sin(y/2)
	c3, s3 := math.Cos(z/2), math.Sin(z/2)

	return Quat{
		X: s1*c2*c3 + c1*s2*s3,
		Y: c1*s2*c3 - s1*c2*s3,
		Z: c1*c2*s3 + s1*s2*c3,
		W: c1*c2*c3 - s1*s2*s3,
	}
}

// QuatFromAxisAngle 由旋转轴（需为单位向量）和角度构造四元数
func QuatFromAxisAngle(axis Vec3, angle float64) Quat {
	s := math.Sin(angle / 2)
	return Quat{X: axis.X * s, Y: axis.Y * s, Z: axis.Z * s, W: math.Cos(angle / 2)}
}

// QuatFromBasis 由正交基（三个列向量）构造四元数
func QuatFromBasis(xAxis, yAxis, zAxis Vec3) Quat {
	m11, m12, m13 := xAxis.X, yAxis.X, zAxis.X
	m21, m22, m23 := xAxis.Y, yAxis.Y, zAxis.Y
	m31, m32, m33 := xAxis.Z, yAxis.Z, zAxis.Z

	trace := m11 + m22 + m33
	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1)
		return Quat{
			W: 0.25 / s,
			X: (m32 - m23) * s,
			Y: (m13 - m31) * s,
			Z: (m21 - m12) * s,
		}
	case m11 > m22 && m11 > m33:
		s := 2 * math.Sqrt(1+m11-m22-m33)
		return Quat{
			W: (m32 - m23) / s,
			X: 0.25 * s,
			Y: (m12 + m21) / s,
			Z: (m13 + m31) / s,
		}
	case m22 > m33:
		s := 2 * math.Sqrt(1+m22-m11-m33)
		return Quat{
			W: (m13 - m31) / s,
			X: (m12 + m21) / s,
			Y: 0.25 * s,
			Z: (m23 + m32) / s,
		}
	default:
		s := 2 * math.Sqrt(1+m33-m11-m22)
		return Quat{
			W: (m21 - m12) / s,
			X: (m13 + m31) / s,
			Y: (m23 + m32) / s,
			Z: 0.25 * s,
		}
	}
}

// Mul 返回 q*b（先应用 b 再应用 q）
func (q Quat) Mul(b Quat) Quat {
	return Quat{
		X: q.X*b.W + q.W*b.X + q.Y*b.Z - q.Z*b.Y,
		Y: q.Y*b.W + q.W*b.Y + q.Z*b.X - q.X*b.Z,
		Z: q.Z*b.W + q.W*b.Z + q.X*b.Y - q.Y*b.X,
		W: q.W*b.W - q.X*b.X - q.Y*b.Y - q.Z*b.Z,
	}
}

// Normalize 返回单位四元数
func (q Quat) Normalize() Quat {
	l := math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if l < Epsilon {
		return QuatIdentity()
	}
	return Quat{q.X / l, q.Y / l, q.Z / l, q.W / l}
}

// Rotate 用四元数旋转向量
func (q Quat) Rotate(v Vec3) Vec3 {
	ix := q.W*v.X + q.Y*v.Z - q.Z*v.Y
	iy := q.W*v.Y + q.Z*v.X - q.X*v.Z
	iz := q.W*v.Z + q.X*v.Y - q.Y*v.X
	iw := -q.X*v.X - q.Y*v.Y - q.Z*v.Z

	return Vec3{
		X: ix*q.W + iw*-q.X + iy*-q.Z - iz*-q.Y,
		Y: iy*q.W + iw*-q.Y + iz*-q.X - ix*-q.Z,
		Z: iz*q.W + iw*-q.Z + ix*-q.Y - iy*-q.X,
	}
}
