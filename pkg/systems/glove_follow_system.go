package systems

import (
	"github.com/decker502/virtuallab/pkg/components"
	"github.com/decker502/virtuallab/pkg/ecs"
)

// GloveFollowSystem 戴上的手套每帧跟随镜头
// 位置为镜头空间偏移，朝向为镜头朝向叠加旋转偏移
type GloveFollowSystem struct {
	entityManager *ecs.EntityManager
}

// NewGloveFollowSystem 创建跟随系统
func NewGloveFollowSystem(em *ecs.EntityManager) *GloveFollowSystem {
	return &GloveFollowSystem{entityManager: em}
}

// Update 更新所有激活的跟随实体
func (s *GloveFollowSystem) Update(dt float64) {
	cameras := ecs.GetEntitiesWith1[*components.CameraComponent](s.entityManager)
	if len(cameras) == 0 {
		return
	}
	camComp, _ := ecs.GetComponent[*components.CameraComponent](s.entityManager, cameras[0])
	cam := camComp.Camera
	camRot := cam.Quaternion()

	for _, id := range ecs.GetEntitiesWith2[*components.FollowCameraComponent, *components.NodeComponent](s.entityManager) {
		follow, _ := ecs.GetComponent[*components.FollowCameraComponent](s.entityManager, id)
		if !follow.Active {
			continue
		}
		nc, _ := ecs.GetComponent[*components.NodeComponent](s.entityManager, id)
		nc.Node.SetPosition(cam.LocalToWorld(follow.Offset))
		nc.Node.SetRotation(camRot.Mul(follow.RotationOffset))
	}
}

// Release 停止所有跟随，道具留在当前位置（实验完成时调用）
func (s *GloveFollowSystem) Release() {
	for _, id := range ecs.GetEntitiesWith1[*components.FollowCameraComponent](s.entityManager) {
		follow, _ := ecs.GetComponent[*components.FollowCameraComponent](s.entityManager, id)
		follow.Active = false
	}
}
