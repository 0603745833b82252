package systems

import (
	"log"

	"github.com/decker502/virtuallab/pkg/components"
	"github.com/decker502/virtuallab/pkg/ecs"
	"github.com/decker502/virtuallab/pkg/math3d"
	"github.com/decker502/virtuallab/pkg/types"
)

// DragState 拖拽子状态
// 按下可拖拽道具时创建，释放或碰撞推进步骤时结束
type DragState struct {
	Active bool
	Held   ecs.EntityID

	// PointerGroundOffset 道具位置与指针在参考平面投影点之差（XZ）
	PointerGroundOffset math3d.Vec2

	// height 拖拽期间保持不变的道具高度
	height float64
}

// DragState 返回拖拽状态快照
func (r *InteractionRouter) DragState() DragState {
	return r.drag
}

// IsDragging 是否正在拖拽道具
func (r *InteractionRouter) IsDragging() bool {
	return r.drag.Active
}

// OnPointerDown 按下时尝试开始拖拽
// 只拾取可拖拽实体，且当前门控必须是该实体的 armDrag
// 返回是否开始拖拽（未开始时指针拖动交给镜头环绕）
func (r *InteractionRouter) OnPointerDown(p Pointer) bool {
	if r.drag.Active {
		return true
	}

	id, _, ok := r.pick(p, func(c *components.InteractableComponent) bool { return c.IsDraggable })
	if !ok {
		return false
	}

	inter, _ := ecs.GetComponent[*components.InteractableComponent](r.entityManager, id)
	step, gate, ok := r.currentGate()
	if !ok || gate.Effect != types.EffectArmDrag || gate.Identity != inter.Identity {
		log.Printf("[InteractionRouter] %v is not draggable at step %s", inter.Identity, step.Flag)
		return false
	}

	ground, ok := r.projectToDragPlane(p)
	if !ok {
		return false
	}

	node := r.nodeOf(id)
	pos := node.Position()
	r.drag = DragState{
		Active:              true,
		Held:                id,
		PointerGroundOffset: math3d.Vec2{X: pos.X - ground.X, Y: pos.Z - ground.Z},
		height:              pos.Y,
	}
	if r.orbit != nil {
		r.orbit.SetEnabled(false)
	}
	log.Printf("[InteractionRouter] Start dragging %s", node.Name())
	return true
}

// OnPointerDrag 拖拽中移动指针
// 道具保持高度不变跟随指针；与拖拽目标包围盒重叠时推进当前步骤
func (r *InteractionRouter) OnPointerDrag(p Pointer) {
	if !r.drag.Active {
		return
	}

	node := r.nodeOf(r.drag.Held)
	if node == nil {
		r.endDrag()
		return
	}

	if ground, ok := r.projectToDragPlane(p); ok {
		node.SetPosition(math3d.Vec3{
			X: ground.X + r.drag.PointerGroundOffset.X,
			Y: r.drag.height,
			Z: ground.Z + r.drag.PointerGroundOffset.Y,
		})
	}

	step, gate, ok := r.currentGate()
	if !ok || gate.Effect != types.EffectArmDrag {
		// 步骤已被其他途径推进
		r.endDrag()
		return
	}

	held := node.WorldBounds()
	for _, target := range r.byIdentity[gate.DragTarget] {
		targetNode := r.nodeOf(target)
		if targetNode == nil || !targetNode.Visible() {
			continue
		}
		if !held.Intersects(targetNode.WorldBounds()) {
			continue
		}

		log.Printf("[InteractionRouter] %s reached %s", node.Name(), targetNode.Name())
		r.disarm(r.drag.Held)
		r.endDrag()
		r.steps.Advance(step.Flag)
		return
	}
}

// OnPointerUp 释放指针，结束拖拽（无其他副作用）
func (r *InteractionRouter) OnPointerUp() {
	if r.drag.Active {
		r.endDrag()
	}
}

func (r *InteractionRouter) endDrag() {
	r.drag = DragState{}
	if r.orbit != nil {
		r.orbit.SetEnabled(true)
	}
}

// projectToDragPlane 指针射线与拖拽参考平面的交点
func (r *InteractionRouter) projectToDragPlane(p Pointer) (math3d.Vec3, bool) {
	ray := r.rays.ScreenRay(p.X, p.Y)
	return ray.IntersectPlane(math3d.HorizontalPlane(r.cfg.DragPlaneY))
}
