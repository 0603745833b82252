package components

import "github.com/decker502/virtuallab/pkg/math3d"

// CameraComponent 场景镜头及其环绕控制
// 场景中只有一个镜头实体
type CameraComponent struct {
	Camera   *math3d.PerspectiveCamera
	Controls *math3d.OrbitControls

	// Bounds 镜头位置活动范围（房间内）
	Bounds math3d.Box3
}
