package math3d

// Transform 平移、旋转、缩放组合（应用顺序：缩放 → 旋转 → 平移）
type Transform struct {
	Position Vec3
	Rotation Quat
	Scale    Vec3
}

// IdentityTransform 返回单位变换
func IdentityTransform() Transform {
	return Transform{
		Rotation: QuatIdentity(),
		Scale:    Vec3{1, 1, 1},
	}
}

// Apply 将局部坐标点变换到父坐标系
func (t Transform) Apply(p Vec3) Vec3 {
	return t.Position.Add(t.Rotation.Rotate(p.Mul(t.Scale)))
}

// ApplyDirection 变换方向向量（不含平移和缩放）
func (t Transform) ApplyDirection(d Vec3) Vec3 {
	return t.Rotation.Rotate(d)
}
