package components

import "github.com/decker502/virtuallab/pkg/math3d"

// FollowCameraComponent 道具跟随镜头（戴上的手套）
// Active 时每帧把节点放到镜头空间的固定偏移处
type FollowCameraComponent struct {
	// Offset 镜头空间位置偏移（-Z 为镜头前方）
	Offset math3d.Vec3

	// RotationOffset 镜头空间旋转偏移
	RotationOffset math3d.Quat

	Active bool
}
