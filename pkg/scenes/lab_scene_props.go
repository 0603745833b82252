package scenes

import (
	"log"

	"github.com/decker502/virtuallab/pkg/assets"
	"github.com/decker502/virtuallab/pkg/components"
	"github.com/decker502/virtuallab/pkg/config"
	"github.com/decker502/virtuallab/pkg/ecs"
	"github.com/decker502/virtuallab/pkg/math3d"
	"github.com/decker502/virtuallab/pkg/scene"
	"github.com/decker502/virtuallab/pkg/types"
)

// onPropLoaded 返回道具加载完成后的回调：摆放模型并注册到交互路由
// 加载失败的道具不注册，对应身份的点击将不会命中
func (s *LabScene) onPropLoaded(prop config.PropConfig) assets.LoadCallback {
	return func(model *scene.Model, err error) {
		if err != nil {
			log.Printf("[LabScene] Prop %s unavailable: %v", prop.Asset, err)
			return
		}

		if prop.Name != "" {
			model.SetName(prop.Name)
		}
		model.SetPosition(prop.Position.Vec3())
		model.SetRotation(prop.Rotation.EulerQuat())
		model.SetScale(math3d.V3(prop.Scale, prop.Scale, prop.Scale))
		model.SetVisible(!prop.Hidden)

		if !prop.Interactive() {
			id := s.entityManager.CreateEntity()
			ecs.AddComponent(s.entityManager, id, &components.NodeComponent{Node: model})
			return
		}

		id := s.router.RegisterInteractable(model, prop.Identity)
		if prop.Follow != nil {
			ecs.AddComponent(s.entityManager, id, &components.FollowCameraComponent{
				Offset:         prop.Follow.Offset.Vec3(),
				RotationOffset: prop.Follow.Rotation.EulerQuat(),
			})
		}

		if prop.Identity == types.IdentityFinalResult {
			s.finalResults = append(s.finalResults, model)
			// 实验在结果模型加载完成前就已结束
			if s.completed {
				model.SetVisible(true)
			}
		}
	}
}

// onStepComplete 步骤推进后的场景反应
func (s *LabScene) onStepComplete(flag string) {
	if flag != config.CompleteFlag {
		log.Printf("[LabScene] Step %s completed", flag)
		return
	}

	s.completed = true
	for _, node := range s.finalResults {
		node.SetVisible(true)
	}
	log.Printf("[LabScene] Experiment complete after %.1fs", s.elapsed)

	if s.opts.Progress != nil {
		if err := s.opts.Progress.RecordCompletion(s.elapsed); err != nil {
			log.Printf("[LabScene] Warning: %v", err)
		}
	}
}
