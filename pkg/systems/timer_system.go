package systems

import (
	"log"

	"github.com/decker502/virtuallab/pkg/components"
	"github.com/decker502/virtuallab/pkg/ecs"
)

// TimerSystem 驱动一次性计时器
// 计时完成后调用 OnReady 并销毁计时器实体
type TimerSystem struct {
	entityManager *ecs.EntityManager
}

// NewTimerSystem 创建计时器系统
func NewTimerSystem(em *ecs.EntityManager) *TimerSystem {
	return &TimerSystem{entityManager: em}
}

// After 创建一个 seconds 秒后触发的计时器
func (s *TimerSystem) After(name string, seconds float64, onReady func()) ecs.EntityID {
	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &components.TimerComponent{
		Name:       name,
		TargetTime: seconds,
		OnReady:    onReady,
	})
	return id
}

// Update 推进所有计时器
func (s *TimerSystem) Update(dt float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.TimerComponent](s.entityManager) {
		timer, _ := ecs.GetComponent[*components.TimerComponent](s.entityManager, id)
		if timer.IsReady {
			continue
		}

		timer.CurrentTime += dt
		if timer.CurrentTime < timer.TargetTime {
			continue
		}

		timer.IsReady = true
		log.Printf("[TimerSystem] Timer %s fired after %.2fs", timer.Name, timer.CurrentTime)
		if timer.OnReady != nil {
			timer.OnReady()
		}
		s.entityManager.DestroyEntity(id)
	}
	s.entityManager.RemoveMarkedEntities()
}
