package systems

import (
	"github.com/decker502/virtuallab/pkg/components"
	"github.com/decker502/virtuallab/pkg/config"
	"github.com/decker502/virtuallab/pkg/ecs"
	"github.com/decker502/virtuallab/pkg/math3d"
)

// OrbitCameraSystem 管理场景镜头的环绕观察
// 指针拖动空白处旋转镜头，滚轮缩放，镜头位置限制在房间包围盒内
type OrbitCameraSystem struct {
	entityManager *ecs.EntityManager
	cameraEntity  ecs.EntityID

	// Sensitivity 旋转灵敏度倍数（来自设置）
	Sensitivity float64
}

// NewOrbitCameraSystem 创建镜头实体与环绕控制
func NewOrbitCameraSystem(em *ecs.EntityManager, cfg config.CameraConfig, width, height float64) *OrbitCameraSystem {
	cam := math3d.NewPerspectiveCamera(cfg.FOV, cfg.Near, cfg.Far, width, height)
	cam.Position = cfg.Position.Vec3()
	cam.LookAt(cfg.Target.Vec3())

	controls := math3d.NewOrbitControls(cam)
	controls.EnableDamping = cfg.Damping
	controls.MinDistance = cfg.MinDistance
	controls.MaxDistance = cfg.MaxDistance

	s := &OrbitCameraSystem{entityManager: em, Sensitivity: 1}
	s.cameraEntity = em.CreateEntity()
	ecs.AddComponent(em, s.cameraEntity, &components.CameraComponent{
		Camera:   cam,
		Controls: controls,
		Bounds:   cfg.Bounds(),
	})
	return s
}

func (s *OrbitCameraSystem) component() *components.CameraComponent {
	c, _ := ecs.GetComponent[*components.CameraComponent](s.entityManager, s.cameraEntity)
	return c
}

// Camera 场景镜头
func (s *OrbitCameraSystem) Camera() *math3d.PerspectiveCamera {
	return s.component().Camera
}

// Controls 环绕控制器（拖拽道具时由交互路由禁用）
func (s *OrbitCameraSystem) Controls() *math3d.OrbitControls {
	return s.component().Controls
}

// Rotate 按指针位移（像素）旋转
func (s *OrbitCameraSystem) Rotate(dx, dy float64) {
	s.component().Controls.Rotate(dx*s.Sensitivity, dy*s.Sensitivity)
}

// Zoom 按滚轮增量缩放
func (s *OrbitCameraSystem) Zoom(wheel float64) {
	s.component().Controls.Zoom(wheel)
}

// Update 应用环绕控制并限制镜头位置
func (s *OrbitCameraSystem) Update(dt float64) {
	c := s.component()
	c.Controls.Update()
	c.Camera.Position = c.Camera.Position.Clamp(c.Bounds.Min, c.Bounds.Max)
}
